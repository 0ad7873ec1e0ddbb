// Package tabular reads and writes column-labelled flat files (CSV and XLSX)
// as header-indexed tables.
package tabular

import (
	"github.com/rotisserie/eris"
)

// Table is an in-memory flat file: a header row and string cells.
type Table struct {
	Header []string
	Rows   [][]string
	index  map[string]int
}

// New creates an empty table with the given columns.
func New(header ...string) *Table {
	t := &Table{Header: append([]string(nil), header...)}
	t.reindex()
	return t
}

func (t *Table) reindex() {
	t.index = make(map[string]int, len(t.Header))
	for i, h := range t.Header {
		if _, dup := t.index[h]; !dup {
			t.index[h] = i
		}
	}
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.Rows) }

// Col returns the position of a column, or -1.
func (t *Table) Col(name string) int {
	if t.index == nil {
		t.reindex()
	}
	if i, ok := t.index[name]; ok {
		return i
	}
	return -1
}

// Has reports whether the column exists.
func (t *Table) Has(name string) bool { return t.Col(name) >= 0 }

// Require returns an error naming the first missing column.
func (t *Table) Require(cols ...string) error {
	for _, c := range cols {
		if !t.Has(c) {
			return eris.Errorf("tabular: missing column %q", c)
		}
	}
	return nil
}

// Get returns a cell by column name. Missing columns and short rows read as "".
func (t *Table) Get(row int, name string) string {
	i := t.Col(name)
	if i < 0 || i >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][i]
}

// AddColumn appends a column (if absent) and pads every row.
func (t *Table) AddColumn(name string) int {
	if i := t.Col(name); i >= 0 {
		return i
	}
	t.Header = append(t.Header, name)
	t.index[name] = len(t.Header) - 1
	for r := range t.Rows {
		t.Rows[r] = pad(t.Rows[r], len(t.Header))
	}
	return len(t.Header) - 1
}

// Set writes a cell, adding the column when needed.
func (t *Table) Set(row int, name, value string) {
	i := t.AddColumn(name)
	t.Rows[row] = pad(t.Rows[row], len(t.Header))
	t.Rows[row][i] = value
}

// Append adds a row, padded or truncated to the header width.
func (t *Table) Append(row []string) {
	r := make([]string, len(t.Header))
	copy(r, row)
	t.Rows = append(t.Rows, r)
}

// AppendMap adds a row from column values; unknown columns are ignored.
func (t *Table) AppendMap(values map[string]string) {
	r := make([]string, len(t.Header))
	for k, v := range values {
		if i := t.Col(k); i >= 0 {
			r[i] = v
		}
	}
	t.Rows = append(t.Rows, r)
}

// Column returns every value of a column in row order.
func (t *Table) Column(name string) []string {
	out := make([]string, len(t.Rows))
	for r := range t.Rows {
		out[r] = t.Get(r, name)
	}
	return out
}

func pad(row []string, n int) []string {
	for len(row) < n {
		row = append(row, "")
	}
	return row
}
