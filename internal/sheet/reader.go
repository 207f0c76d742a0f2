package sheet

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadTable loads one sheet of a workbook, or a whole CSV/TSV file, into a
// Table. The first row is the header. An empty sheetName selects the first
// sheet of a workbook and is ignored for delimited files.
func ReadTable(path, sheetName string) (Table, error) {
	if _, err := os.Stat(path); err != nil {
		return Table{}, fmt.Errorf("input file %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return readWorkbook(path, sheetName)
	case ".csv":
		return readDelimited(path, ',')
	case ".tsv":
		return readDelimited(path, '\t')
	default:
		return Table{}, fmt.Errorf("unsupported table file type: %s", filepath.Base(path))
	}
}

// ReadValues returns the raw values of one column of an input file.
// Plain text files (.txt or no extension) yield one value per non-blank line.
func ReadValues(path, sheetName, column string) ([]string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".txt" || ext == "" {
		return ReadLines(path)
	}

	table, err := ReadTable(path, sheetName)
	if err != nil {
		return nil, err
	}
	return table.Column(column)
}

func readWorkbook(path, sheetName string) (Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("failed to open workbook %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Table{}, fmt.Errorf("%w: workbook %s has no sheets", ErrMissingSheet, filepath.Base(path))
	}

	if sheetName == "" {
		sheetName = sheets[0]
	} else if !contains(sheets, sheetName) {
		return Table{}, fmt.Errorf("%w: %q in %s (available: %s)",
			ErrMissingSheet, sheetName, filepath.Base(path), strings.Join(sheets, ", "))
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return Table{}, fmt.Errorf("failed to read rows of sheet %q: %w", sheetName, err)
	}

	return buildTable(sheetName, rows), nil
}

func readDelimited(path string, comma rune) (Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return Table{}, fmt.Errorf("failed to open %s: %w", filepath.Base(path), err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = comma
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}

	return buildTable(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)), rows), nil
}

// buildTable splits off the header and pads or trims data rows to its width
func buildTable(name string, rows [][]string) Table {
	t := Table{Name: name}
	if len(rows) == 0 {
		return t
	}

	t.Header = make([]string, len(rows[0]))
	for i, h := range rows[0] {
		t.Header[i] = strings.TrimSpace(h)
	}

	t.Rows = make([][]any, 0, len(rows)-1)
	for _, row := range rows[1:] {
		cells := make([]any, len(t.Header))
		for i := range cells {
			if i < len(row) {
				cells[i] = row[i]
			} else {
				cells[i] = ""
			}
		}
		t.Rows = append(t.Rows, cells)
	}
	return t
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
