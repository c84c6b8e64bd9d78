// Package table defines the ordered-column text table that flows between
// pipeline stages. All cells are strings; the empty string is the uniform
// representation for a missing value. Column order is significant and is
// preserved by every operation.
//
// Stages never mutate a table they received: transforming operations return a
// new Table (sharing no row storage with the input), so an earlier stage's
// output remains valid after later stages run.
package table

import (
	"fmt"
	"strings"
)

// Table is a rectangular grid of text cells with labeled, ordered columns.
// Every row has exactly len(Columns) cells.
type Table struct {
	Columns []string
	Rows    [][]string
}

// New returns an empty table with the given column labels.
func New(columns []string) Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return Table{Columns: cols}
}

// FromRows builds a headerless table from raw decoded rows. Columns are
// labeled col_0..col_{n-1} where n is the widest row; narrower rows are
// padded with empty cells so the grid stays rectangular.
func FromRows(rows [][]string) Table {
	width := 0
	for _, r := range rows {
		if len(r) > width {
			width = len(r)
		}
	}
	cols := make([]string, width)
	for i := range cols {
		cols[i] = fmt.Sprintf("col_%d", i)
	}
	t := Table{Columns: cols, Rows: make([][]string, 0, len(rows))}
	for _, r := range rows {
		t.Rows = append(t.Rows, fitRow(r, width))
	}
	return t
}

// fitRow pads or truncates a row to exactly n cells.
func fitRow(row []string, n int) []string {
	cp := make([]string, n)
	copy(cp, row)
	return cp
}

// Clone returns a deep copy sharing no storage with t.
func (t Table) Clone() Table {
	out := New(t.Columns)
	out.Rows = make([][]string, len(t.Rows))
	for i, r := range t.Rows {
		out.Rows[i] = fitRow(r, len(t.Columns))
	}
	return out
}

// NumRows returns the number of data rows.
func (t Table) NumRows() int { return len(t.Rows) }

// NumCols returns the number of columns.
func (t Table) NumCols() int { return len(t.Columns) }

// IsEmpty reports whether the table has no data rows.
func (t Table) IsEmpty() bool { return len(t.Rows) == 0 }

// ColumnIndex returns the position of the named column, or -1.
func (t Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the named column exists.
func (t Table) HasColumn(name string) bool { return t.ColumnIndex(name) >= 0 }

// Cell returns the cell at row i in the named column, or "" when the column
// does not exist.
func (t Table) Cell(i int, name string) string {
	j := t.ColumnIndex(name)
	if j < 0 || i < 0 || i >= len(t.Rows) {
		return ""
	}
	return t.Rows[i][j]
}

// AppendRow adds a row, padding or truncating it to the table width. The
// receiver is a builder-style pointer method; it is the only mutating entry
// point and is used while a stage assembles its own output.
func (t *Table) AppendRow(cells []string) {
	t.Rows = append(t.Rows, fitRow(cells, len(t.Columns)))
}

// RenameColumnAt returns a copy of t with column i relabeled. Out-of-range
// positions return t unchanged.
func (t Table) RenameColumnAt(i int, name string) Table {
	if i < 0 || i >= len(t.Columns) {
		return t
	}
	out := t.Clone()
	out.Columns[i] = name
	return out
}

// RenameColumns returns a copy of t with every column label present in the
// mapping replaced by its mapped name. Labels not in the mapping keep their
// name.
func (t Table) RenameColumns(mapping map[string]string) Table {
	out := t.Clone()
	for i, c := range out.Columns {
		if n, ok := mapping[c]; ok && n != "" {
			out.Columns[i] = n
		}
	}
	return out
}

// Select returns a copy of t containing only the named columns, in the given
// order. Names absent from t become all-empty columns.
func (t Table) Select(names []string) Table {
	out := New(names)
	idx := make([]int, len(names))
	for k, n := range names {
		idx[k] = t.ColumnIndex(n)
	}
	for _, row := range t.Rows {
		cells := make([]string, len(names))
		for k, j := range idx {
			if j >= 0 {
				cells[k] = row[j]
			}
		}
		out.Rows = append(out.Rows, cells)
	}
	return out
}

// InsertColumn returns a copy of t with a new column spliced in at position
// pos, filled by calling value with each 0-based row index.
func (t Table) InsertColumn(pos int, name string, value func(i int) string) Table {
	if pos < 0 {
		pos = 0
	}
	if pos > len(t.Columns) {
		pos = len(t.Columns)
	}
	cols := make([]string, 0, len(t.Columns)+1)
	cols = append(cols, t.Columns[:pos]...)
	cols = append(cols, name)
	cols = append(cols, t.Columns[pos:]...)

	out := New(cols)
	for i, row := range t.Rows {
		cells := make([]string, 0, len(cols))
		cells = append(cells, row[:pos]...)
		cells = append(cells, value(i))
		cells = append(cells, row[pos:]...)
		out.Rows = append(out.Rows, cells)
	}
	return out
}

// AppendConstColumn returns a copy of t with a constant-valued column added
// at the end.
func (t Table) AppendConstColumn(name, value string) Table {
	return t.InsertColumn(len(t.Columns), name, func(int) string { return value })
}

// MapColumn returns a copy of t with fn applied to every cell of the named
// column. When the column does not exist, t is returned unchanged.
func (t Table) MapColumn(name string, fn func(string) string) Table {
	j := t.ColumnIndex(name)
	if j < 0 {
		return t
	}
	out := t.Clone()
	for _, row := range out.Rows {
		row[j] = fn(row[j])
	}
	return out
}

// RowText joins the non-empty cells of row i with single spaces. It is the
// canonical flattening used for marker and metadata phrase scans.
func (t Table) RowText(i int) string {
	if i < 0 || i >= len(t.Rows) {
		return ""
	}
	parts := make([]string, 0, len(t.Rows[i]))
	for _, c := range t.Rows[i] {
		if strings.TrimSpace(c) != "" {
			parts = append(parts, c)
		}
	}
	return strings.Join(parts, " ")
}

// Union merges the column sets of ts in first-seen order and concatenates all
// rows, filling cells for columns a source table lacks with empty strings.
// Row order is table order, then source row order within each table.
func Union(ts []Table) Table {
	var cols []string
	seen := map[string]struct{}{}
	for _, t := range ts {
		for _, c := range t.Columns {
			if _, ok := seen[c]; !ok {
				seen[c] = struct{}{}
				cols = append(cols, c)
			}
		}
	}
	out := New(cols)
	for _, t := range ts {
		idx := make([]int, len(cols))
		for k, c := range cols {
			idx[k] = t.ColumnIndex(c)
		}
		for _, row := range t.Rows {
			cells := make([]string, len(cols))
			for k, j := range idx {
				if j >= 0 {
					cells[k] = row[j]
				}
			}
			out.Rows = append(out.Rows, cells)
		}
	}
	return out
}
