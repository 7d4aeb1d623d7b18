// Package table holds the in-memory record table produced by the loaders
// and mutated by the normalizer.
package table

import "slices"

// DefaultPreviewRows is the number of rows printed by a preview.
const DefaultPreviewRows = 10

// Record is a single row, keyed by column name. A nil value means the cell is missing.
type Record map[string]any

// Table is an ordered sequence of records sharing one header.
type Table struct {
	// Columns in header order.
	Columns []string
	// Rows in source order.
	Rows []Record
}

// New creates an empty table with the given header.
func New(columns []string) *Table {
	return &Table{
		Columns: slices.Clone(columns),
	}
}

// Append adds a row at the end of the table.
func (t *Table) Append(r Record) {
	t.Rows = append(t.Rows, r)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// HasColumn reports whether name is part of the header.
func (t *Table) HasColumn(name string) bool {
	return slices.Contains(t.Columns, name)
}

// Head returns the first n rows, or every row when the table is shorter.
func (t *Table) Head(n int) []Record {
	if n < 0 {
		n = 0
	}
	return t.Rows[:min(n, len(t.Rows))]
}

// Value returns the cell at row i, column name, and whether it is present.
func (t *Table) Value(i int, name string) (any, bool) {
	v, ok := t.Rows[i][name]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}
