// Package sheet reads and writes the tabular files exchanged between the
// pipeline stages. Workbooks are handled with excelize; CSV, TSV and plain
// text inputs are accepted for the raw candidate list.
package sheet
