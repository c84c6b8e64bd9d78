// Package ddl contains SQLite-specific helpers for generating DDL.
//
// SQLite uses dynamic typing, so the mapping prefers canonical affinities:
// integer-ish kinds become INTEGER, reals REAL, and date/time kinds TEXT
// holding ISO-8601 strings.
package ddl

import (
	"strings"

	gddl "github.com/Giomelox/Be-Analytic-ETL/internal/ddl"
)

// MapType maps a logical kind into a SQLite column type.
func MapType(kind string) string {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "int", "integer", "bigint":
		return "INTEGER"
	case "bool", "boolean":
		return "INTEGER" // 0/1
	case "real", "float", "double":
		return "REAL"
	case "date", "timestamp", "datetime", "timestamptz":
		return "TEXT" // ISO-8601 strings
	default:
		return "TEXT"
	}
}

// MapDef returns a copy of def with every logical kind replaced by its SQLite
// affinity. SQLite accepts unquoted lowercase identifiers, so the result can
// go straight to the generic renderer.
func MapDef(def gddl.TableDef) gddl.TableDef {
	out := gddl.TableDef{FQN: def.FQN, Columns: make([]gddl.ColumnDef, len(def.Columns))}
	for i, c := range def.Columns {
		c.SQLType = MapType(c.SQLType)
		out.Columns[i] = c
	}
	return out
}
