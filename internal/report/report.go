// Package report renders run summaries and feature listings as text tables.
package report

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"codeberg.org/snonux/abbrevkit/internal/features"
)

// Alignment of a table column
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Render draws a rounded table. Short rows are padded with empty cells.
func Render(headers []string, rows [][]string, aligns []Alignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := range headers {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == AlignRight {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

// Summary is a list of name/count pairs, rendered in insertion order
type Summary struct {
	Title string
	items [][2]string
}

// NewSummary starts a summary table
func NewSummary(title string) *Summary {
	return &Summary{Title: title}
}

// Add appends a counted item
func (s *Summary) Add(name string, count int) *Summary {
	s.items = append(s.items, [2]string{name, strconv.Itoa(count)})
	return s
}

// AddText appends a free text item
func (s *Summary) AddText(name, value string) *Summary {
	s.items = append(s.items, [2]string{name, value})
	return s
}

// Render draws the summary
func (s *Summary) Render() string {
	rows := make([][]string, len(s.items))
	for i, item := range s.items {
		rows[i] = []string{item[0], item[1]}
	}
	return Render([]string{s.Title, ""}, rows, []Alignment{AlignLeft, AlignRight})
}

// Features renders one row per abbreviation with all attribute columns
func Features(abbreviations []string, vectors []features.Vector) string {
	headers := append([]string{"abbreviation"}, features.Columns()...)
	aligns := make([]Alignment, len(headers))
	for i := 1; i < len(aligns); i++ {
		aligns[i] = AlignRight
	}

	rows := make([][]string, len(vectors))
	for i, v := range vectors {
		rows[i] = []string{
			abbreviations[i],
			strconv.Itoa(v.VowelCount),
			strconv.Itoa(v.ConsonantCount),
			strconv.Itoa(v.MaxConsecutiveVowels),
			strconv.Itoa(v.MaxConsecutiveConsonants),
			strconv.Itoa(v.PatternVowelConsonant),
			strconv.Itoa(v.PatternConsonantVowel),
			strconv.Itoa(v.PatternVowelConsonantVowel),
			strconv.Itoa(v.PatternConsonantVowelConsonant),
			strconv.FormatFloat(v.VowelConsonantRatio, 'f', 3, 64),
			v.FirstLetterType,
			v.LastLetterType,
		}
	}
	return Render(headers, rows, aligns)
}
