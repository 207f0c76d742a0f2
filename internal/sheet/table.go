package sheet

import (
	"errors"
	"fmt"
	"strconv"
)

// NullText is the text an empty cell is coerced to when read as a value
const NullText = "nan"

var (
	// ErrMissingSheet is returned when a workbook lacks the requested sheet
	ErrMissingSheet = errors.New("sheet not found")
	// ErrMissingColumn is returned when a table lacks the requested column
	ErrMissingColumn = errors.New("column not found")
)

// Table is one sheet worth of data: a header row followed by data rows.
// Cells read from disk are strings; cells produced by the pipeline may be
// ints, floats or strings.
type Table struct {
	Name   string
	Header []string
	Rows   [][]any
}

// NewTable builds a table with a single column holding the given values
func NewTable(name, column string, values []string) Table {
	rows := make([][]any, len(values))
	for i, v := range values {
		rows[i] = []any{v}
	}
	return Table{Name: name, Header: []string{column}, Rows: rows}
}

// ColumnIndex returns the position of a header cell
func (t Table) ColumnIndex(column string) (int, error) {
	for i, h := range t.Header {
		if h == column {
			return i, nil
		}
	}
	if t.Name != "" {
		return -1, fmt.Errorf("%w: %q in sheet %q", ErrMissingColumn, column, t.Name)
	}
	return -1, fmt.Errorf("%w: %q", ErrMissingColumn, column)
}

// Column returns every value of a column coerced to its string form.
// Empty or absent cells become NullText.
func (t Table) Column(column string) ([]string, error) {
	idx, err := t.ColumnIndex(column)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		var cell any
		if idx < len(row) {
			cell = row[idx]
		}
		out[i] = CellText(cell)
	}
	return out, nil
}

// AppendColumns returns a copy of the table with extra columns appended.
// values must hold one slice per row, each as long as columns.
func (t Table) AppendColumns(columns []string, values [][]any) (Table, error) {
	if len(values) != len(t.Rows) {
		return Table{}, fmt.Errorf("column values for %d rows, table has %d", len(values), len(t.Rows))
	}
	out := Table{
		Name:   t.Name,
		Header: append(append([]string{}, t.Header...), columns...),
		Rows:   make([][]any, len(t.Rows)),
	}
	for i, row := range t.Rows {
		if len(values[i]) != len(columns) {
			return Table{}, fmt.Errorf("row %d: got %d values for %d columns", i+1, len(values[i]), len(columns))
		}
		padded := make([]any, len(t.Header), len(out.Header))
		copy(padded, row)
		for j := len(row); j < len(t.Header); j++ {
			padded[j] = ""
		}
		out.Rows[i] = append(padded, values[i]...)
	}
	return out, nil
}

// CellText converts a cell to text the way values are read back for processing
func CellText(cell any) string {
	switch v := cell.(type) {
	case nil:
		return NullText
	case string:
		if v == "" {
			return NullText
		}
		return v
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}
