package sheet

import (
	"errors"
	"reflect"
	"testing"
)

func TestNewTable(t *testing.T) {
	table := NewTable("Соответствуют", "Аббревиатура", []string{"ВУЗ", "МГУ"})

	if table.Name != "Соответствуют" {
		t.Errorf("Name = %q", table.Name)
	}
	if !reflect.DeepEqual(table.Header, []string{"Аббревиатура"}) {
		t.Errorf("Header = %v", table.Header)
	}
	want := [][]any{{"ВУЗ"}, {"МГУ"}}
	if !reflect.DeepEqual(table.Rows, want) {
		t.Errorf("Rows = %v, want %v", table.Rows, want)
	}
}

func TestColumn(t *testing.T) {
	table := Table{
		Name:   "data",
		Header: []string{"id", "Аббревиатура"},
		Rows: [][]any{
			{"1", "МГУ"},
			{"2", ""},
			{"3"},
			{"4", 42},
			{"5", 1.5},
			{"6", nil},
		},
	}

	got, err := table.Column("Аббревиатура")
	if err != nil {
		t.Fatalf("Column failed: %v", err)
	}
	want := []string{"МГУ", NullText, NullText, "42", "1.5", NullText}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Column() = %v, want %v", got, want)
	}
}

func TestColumn_Missing(t *testing.T) {
	table := Table{Name: "data", Header: []string{"id"}}
	_, err := table.Column("Аббревиатура")
	if !errors.Is(err, ErrMissingColumn) {
		t.Fatalf("expected ErrMissingColumn, got %v", err)
	}
}

func TestAppendColumns(t *testing.T) {
	table := Table{
		Name:   "data",
		Header: []string{"a", "b"},
		Rows:   [][]any{{"x"}, {"y", "z"}},
	}

	out, err := table.AppendColumns([]string{"c"}, [][]any{{1}, {2}})
	if err != nil {
		t.Fatalf("AppendColumns failed: %v", err)
	}
	if !reflect.DeepEqual(out.Header, []string{"a", "b", "c"}) {
		t.Errorf("Header = %v", out.Header)
	}
	want := [][]any{{"x", "", 1}, {"y", "z", 2}}
	if !reflect.DeepEqual(out.Rows, want) {
		t.Errorf("Rows = %v, want %v", out.Rows, want)
	}

	if _, err := table.AppendColumns([]string{"c"}, [][]any{{1}}); err == nil {
		t.Error("expected error for mismatched row count")
	}
	if _, err := table.AppendColumns([]string{"c"}, [][]any{{1, 2}, {3}}); err == nil {
		t.Error("expected error for mismatched value count")
	}
}

func TestCellText(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, NullText},
		{"", NullText},
		{"МГУ", "МГУ"},
		{7, "7"},
		{0.25, "0.25"},
		{true, "true"},
		{int64(9), "9"},
	}
	for _, tt := range tests {
		if got := CellText(tt.in); got != tt.want {
			t.Errorf("CellText(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
