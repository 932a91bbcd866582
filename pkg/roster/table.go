// Package roster models loosely structured input tables and binds logical
// fields to the concrete column labels present in them.
package roster

import (
	"fmt"
	"strings"
)

// Row maps a column label to its raw cell text. An absent label reads as "".
type Row map[string]string

// Get returns the raw value of column, or "" when absent.
func (r Row) Get(column string) string {
	return r[column]
}

// Clone returns a shallow copy of the row.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Table is an ordered sequence of rows with the header labels as read from
// the source, in source order.
type Table struct {
	Name    string
	Columns []string
	Rows    []Row
	// Lines holds the 1-based source line of each row. When nil, rows are
	// taken to follow a header on line 1 with nothing skipped.
	Lines []int
}

// NewTable builds a table from a header row and positional records. Records
// shorter than the header are padded with "", longer ones are truncated.
// Blank header labels become "Unnamed: <index>" and repeated labels get a
// ".<n>" suffix so every column stays addressable.
func NewTable(name string, header []string, records [][]string) *Table {
	header = uniqueLabels(header)
	t := &Table{
		Name:    name,
		Columns: header,
		Rows:    make([]Row, 0, len(records)),
	}
	for _, rec := range records {
		row := make(Row, len(header))
		for i, col := range header {
			if i < len(rec) {
				row[col] = rec[i]
			} else {
				row[col] = ""
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Line returns the 1-based source line of row i.
func (t *Table) Line(i int) int {
	if i >= 0 && i < len(t.Lines) {
		return t.Lines[i]
	}
	return i + 2
}

// Empty reports whether the table has no rows.
func (t *Table) Empty() bool {
	return t.Len() == 0
}

// Values returns the raw values of column in row order.
func (t *Table) Values(column string) []string {
	out := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row.Get(column)
	}
	return out
}

// Subset returns a table with the same columns holding the given rows.
// The subset carries no line numbers.
func (t *Table) Subset(rows []Row) *Table {
	return &Table{
		Name:    t.Name,
		Columns: append([]string(nil), t.Columns...),
		Rows:    rows,
	}
}

func uniqueLabels(header []string) []string {
	out := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, h := range header {
		label := h
		if strings.TrimSpace(label) == "" {
			label = fmt.Sprintf("Unnamed: %d", i)
		}
		if n, dup := seen[label]; dup {
			seen[label] = n + 1
			label = fmt.Sprintf("%s.%d", label, n+1)
		} else {
			seen[label] = 0
		}
		out[i] = label
	}
	return out
}
