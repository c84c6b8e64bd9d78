// internal/ddl/infer.go
//
// Schema inference for the consolidated observation table: each output
// column gets a logical kind from a fixed by-name map, falling back to
// inference over the column's value domain. Backends translate the logical
// kinds into dialect types.

package ddl

import (
	"strconv"
	"strings"
	"time"

	"github.com/Giomelox/Be-Analytic-ETL/internal/table"
)

// knownColumnKinds is the fixed logical type map for the published schema.
// Columns outside this map are inferred from their values.
var knownColumnKinds = map[string]string{
	"id":              "integer",
	"grupo_economico": "text",
	"servico":         "text",
	"mes_referencia":  "date",
	"valor":           "real",
	"tipo_servico":    "text",
}

// FromTable derives a TableDef for the consolidated table. The id column is
// the primary key and NOT NULL; every other column is nullable because the
// sources legitimately carry missing values.
func FromTable(t table.Table, fqn string) TableDef {
	defs := make([]ColumnDef, 0, len(t.Columns))
	for j, name := range t.Columns {
		kind, ok := knownColumnKinds[name]
		if !ok {
			kind = InferColumnKind(columnValues(t, j))
		}
		defs = append(defs, ColumnDef{
			Name:       name,
			SQLType:    kind,
			Nullable:   name != "id",
			PrimaryKey: name == "id",
		})
	}
	return TableDef{FQN: fqn, Columns: defs}
}

func columnValues(t table.Table, j int) []string {
	vals := make([]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		vals = append(vals, row[j])
	}
	return vals
}

var (
	timestampLayouts = []string{
		"2006-01-02 15:04:05",
		time.RFC3339,
	}
	dateLayouts = []string{
		"2006-01-02",
		"2006-01",
	}
)

// InferColumnKind guesses a logical kind among bigint, boolean, real, date,
// timestamp and text. Every non-empty value must satisfy the narrower kind;
// an all-empty column is text. Inferred integer columns get the widest
// integer kind because nothing bounds their value domain.
func InferColumnKind(values []string) string {
	nonEmpty := nonEmptyTrimmed(values)
	if len(nonEmpty) == 0 {
		return "text"
	}
	if allMatch(nonEmpty, isInt) {
		return "bigint"
	}
	if allMatch(nonEmpty, isBool) {
		return "boolean"
	}
	// Distinguish float from int to keep ints as integer.
	if allMatch(nonEmpty, isFloat) {
		return "real"
	}

	allDate := true
	anyTime := false
	for _, v := range nonEmpty {
		ok, hasTime := parseDateOrTimestamp(v)
		if !ok {
			allDate = false
			break
		}
		if hasTime {
			anyTime = true
		}
	}
	if allDate {
		if anyTime {
			return "timestamp"
		}
		return "date"
	}
	return "text"
}

func nonEmptyTrimmed(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func allMatch(values []string, pred func(string) bool) bool {
	for _, v := range values {
		if !pred(v) {
			return false
		}
	}
	return true
}

func isInt(s string) bool {
	_, err := strconv.ParseInt(s, 10, 64)
	return err == nil
}

func isBool(s string) bool {
	switch strings.ToLower(s) {
	case "true", "false", "t", "f":
		return true
	}
	return false
}

// isFloat accepts decimal or scientific notation floats. Values that parse as
// int are NOT floats, so integer columns stay integer.
func isFloat(s string) bool {
	if isInt(s) {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// parseDateOrTimestamp tries timestamp layouts first, then date layouts, and
// reports whether a time component was present.
func parseDateOrTimestamp(s string) (ok bool, hasTime bool) {
	for _, layout := range timestampLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true, true
		}
	}
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true, false
		}
	}
	return false, false
}
