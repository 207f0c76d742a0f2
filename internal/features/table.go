package features

import (
	"codeberg.org/snonux/abbrevkit/internal/sheet"
)

// AppendToTable extracts features for every value of column and appends the
// attribute columns to the table. Row order is preserved.
func AppendToTable(t sheet.Table, column string) (sheet.Table, []Vector, error) {
	abbreviations, err := t.Column(column)
	if err != nil {
		return sheet.Table{}, nil, err
	}

	vectors := ExtractAll(abbreviations)
	values := make([][]any, len(vectors))
	for i, v := range vectors {
		values[i] = v.Values()
	}

	out, err := t.AppendColumns(Columns(), values)
	if err != nil {
		return sheet.Table{}, nil, err
	}
	return out, vectors, nil
}
