package table

import (
	"reflect"
	"testing"
)

/*
TestFromRows verifies headerless construction:

  - Columns are synthesized as col_0..col_{n-1} from the widest row.
  - Narrow rows are padded with empty cells so the grid is rectangular.
*/
func TestFromRows(t *testing.T) {
	got := FromRows([][]string{
		{"a", "b", "c"},
		{"d"},
		{},
	})

	wantCols := []string{"col_0", "col_1", "col_2"}
	if !reflect.DeepEqual(got.Columns, wantCols) {
		t.Fatalf("columns = %v, want %v", got.Columns, wantCols)
	}
	wantRows := [][]string{
		{"a", "b", "c"},
		{"d", "", ""},
		{"", "", ""},
	}
	if !reflect.DeepEqual(got.Rows, wantRows) {
		t.Fatalf("rows = %v, want %v", got.Rows, wantRows)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	orig := New([]string{"a", "b"})
	orig.AppendRow([]string{"1", "2"})

	cp := orig.Clone()
	cp.Rows[0][0] = "changed"
	cp.Columns[0] = "z"

	if orig.Rows[0][0] != "1" || orig.Columns[0] != "a" {
		t.Fatalf("mutating clone leaked into original: %+v", orig)
	}
}

func TestSelectMissingColumnIsEmpty(t *testing.T) {
	src := New([]string{"a", "b"})
	src.AppendRow([]string{"1", "2"})

	got := src.Select([]string{"b", "missing", "a"})
	wantCols := []string{"b", "missing", "a"}
	if !reflect.DeepEqual(got.Columns, wantCols) {
		t.Fatalf("columns = %v, want %v", got.Columns, wantCols)
	}
	wantRow := []string{"2", "", "1"}
	if !reflect.DeepEqual(got.Rows[0], wantRow) {
		t.Fatalf("row = %v, want %v", got.Rows[0], wantRow)
	}
}

func TestInsertColumnFront(t *testing.T) {
	src := New([]string{"a"})
	src.AppendRow([]string{"x"})
	src.AppendRow([]string{"y"})

	got := src.InsertColumn(0, "id", func(i int) string {
		return []string{"1", "2"}[i]
	})

	if !reflect.DeepEqual(got.Columns, []string{"id", "a"}) {
		t.Fatalf("columns = %v", got.Columns)
	}
	if !reflect.DeepEqual(got.Rows, [][]string{{"1", "x"}, {"2", "y"}}) {
		t.Fatalf("rows = %v", got.Rows)
	}
	// Source untouched.
	if len(src.Columns) != 1 {
		t.Fatalf("source mutated: %v", src.Columns)
	}
}

func TestRowTextSkipsEmptyCells(t *testing.T) {
	src := New([]string{"a", "b", "c"})
	src.AppendRow([]string{"GRUPO", "", "ECONÔMICO"})

	if got := src.RowText(0); got != "GRUPO ECONÔMICO" {
		t.Fatalf("RowText = %q", got)
	}
}

/*
TestUnion verifies column-set union semantics used by consolidation:

  - Columns merge in first-seen order across tables.
  - Cells for columns a table lacks become empty strings.
  - Row order is table order, then source order.
*/
func TestUnion(t *testing.T) {
	a := New([]string{"x", "y"})
	a.AppendRow([]string{"1", "2"})

	b := New([]string{"y", "z"})
	b.AppendRow([]string{"3", "4"})

	got := Union([]Table{a, b})

	if !reflect.DeepEqual(got.Columns, []string{"x", "y", "z"}) {
		t.Fatalf("columns = %v", got.Columns)
	}
	want := [][]string{
		{"1", "2", ""},
		{"", "3", "4"},
	}
	if !reflect.DeepEqual(got.Rows, want) {
		t.Fatalf("rows = %v, want %v", got.Rows, want)
	}
}
