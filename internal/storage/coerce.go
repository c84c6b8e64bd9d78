// internal/storage/coerce.go
//
// Per-value coercion from the all-text consolidated table into typed driver
// values. The logical kind of each column (from the TableDef) decides the Go
// type; the empty string is NULL for every kind.

package storage

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Giomelox/Be-Analytic-ETL/internal/ddl"
	"github.com/Giomelox/Be-Analytic-ETL/internal/table"
)

var dateLayouts = []string{"2006-01-02", "2006-01"}

var timestampLayouts = []string{"2006-01-02 15:04:05", time.RFC3339}

// CoerceRows converts every cell of t into a typed value according to the
// column kinds in def. Column order follows def.Columns, which must name a
// subset of t's columns in matching order; a cell that cannot be parsed into
// its column's kind is an error (a fatal load condition for the batch).
func CoerceRows(def ddl.TableDef, t table.Table) ([][]any, error) {
	idx := make([]int, len(def.Columns))
	for k, c := range def.Columns {
		j := t.ColumnIndex(c.Name)
		if j < 0 {
			return nil, fmt.Errorf("storage: table has no column %q", c.Name)
		}
		idx[k] = j
	}

	out := make([][]any, 0, len(t.Rows))
	for i, row := range t.Rows {
		vals := make([]any, len(def.Columns))
		for k, c := range def.Columns {
			v, err := CoerceValue(c.SQLType, row[idx[k]])
			if err != nil {
				return nil, fmt.Errorf("storage: row %d column %q: %w", i, c.Name, err)
			}
			vals[k] = v
		}
		out = append(out, vals)
	}
	return out, nil
}

// CoerceValue converts one text cell into the driver value for a logical
// kind. The empty string becomes nil (SQL NULL) regardless of kind.
func CoerceValue(kind, s string) (any, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	switch kind {
	case "integer", "bigint":
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse integer %q: %w", s, err)
		}
		return n, nil
	case "real":
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("parse real %q: %w", s, err)
		}
		return f, nil
	case "boolean":
		switch strings.ToLower(s) {
		case "true", "t":
			return true, nil
		case "false", "f":
			return false, nil
		}
		return nil, fmt.Errorf("parse boolean %q", s)
	case "date":
		for _, layout := range dateLayouts {
			if ts, err := time.Parse(layout, s); err == nil {
				return ts, nil
			}
		}
		return nil, fmt.Errorf("parse date %q", s)
	case "timestamp":
		for _, layout := range timestampLayouts {
			if ts, err := time.Parse(layout, s); err == nil {
				return ts, nil
			}
		}
		return nil, fmt.Errorf("parse timestamp %q", s)
	default:
		return s, nil
	}
}
