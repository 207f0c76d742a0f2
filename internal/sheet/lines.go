package sheet

import (
	"fmt"
	"os"
	"strings"
)

// ReadLines reads a plain text candidate list, one value per line.
// Blank lines are skipped and CRLF endings are accepted.
func ReadLines(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}

	var values []string
	for _, line := range splitLines(string(content)) {
		if line = strings.TrimSpace(line); line != "" {
			values = append(values, line)
		}
	}
	return values, nil
}

// splitLines splits on \n and drops \r, without producing a trailing empty line
func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r", "")
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
