package chunker

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"codeberg.org/snonux/abbrevkit/internal/archive"
)

// FileName returns the name of the chunk file with the given 1-based index
func FileName(index int) string {
	return fmt.Sprintf("output_chunk_%d.json", index)
}

// WriteOptions controls how an existing output directory is handled
type WriteOptions struct {
	// Archive moves an existing output directory aside instead of deleting it
	Archive bool
}

// WriteResult describes a completed chunk write
type WriteResult struct {
	Files      []string
	ArchivedTo string
}

// Encode renders records as indented JSON without escaping non-ASCII or
// HTML characters
func Encode(records []Record) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteChunks writes one JSON file per group into dir. Files are written
// into a staging directory first; dir is only replaced once every chunk has
// been written.
func WriteChunks(dir string, groups [][]string, opts WriteOptions) (res WriteResult, err error) {
	dir = filepath.Clean(dir)
	parent := filepath.Dir(dir)
	if err := os.MkdirAll(parent, 0755); err != nil {
		return res, fmt.Errorf("failed to create output directory: %w", err)
	}

	staging, err := os.MkdirTemp(parent, "."+filepath.Base(dir)+".*")
	if err != nil {
		return res, fmt.Errorf("failed to create staging directory: %w", err)
	}
	defer func() {
		if err != nil {
			os.RemoveAll(staging)
		}
	}()

	names := make([]string, 0, len(groups))
	for i, group := range groups {
		data, err := Encode(Records(group))
		if err != nil {
			return res, fmt.Errorf("failed to encode chunk %d: %w", i+1, err)
		}
		name := FileName(i + 1)
		if err := os.WriteFile(filepath.Join(staging, name), data, 0644); err != nil {
			return res, fmt.Errorf("failed to write chunk %d: %w", i+1, err)
		}
		names = append(names, name)
	}

	if _, statErr := os.Stat(dir); statErr == nil {
		if opts.Archive {
			res.ArchivedTo, err = archive.ArchiveDir(dir)
			if err != nil {
				return res, err
			}
		} else if err := os.RemoveAll(dir); err != nil {
			return res, fmt.Errorf("failed to remove previous output: %w", err)
		}
	}

	if err := os.Rename(staging, dir); err != nil {
		return res, fmt.Errorf("failed to move chunks into place: %w", err)
	}
	if err := os.Chmod(dir, 0755); err != nil {
		return res, fmt.Errorf("failed to set output directory permissions: %w", err)
	}

	for _, name := range names {
		res.Files = append(res.Files, filepath.Join(dir, name))
	}
	return res, nil
}

// ReadChunk loads the records of one chunk file
func ReadChunk(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read chunk: %w", err)
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode chunk %s: %w", filepath.Base(path), err)
	}
	return records, nil
}
