// Package ddl contains Postgres-specific helpers for generating DDL.
//
// It maps the logical column kinds of the generic table definition into
// Postgres types and renders CREATE/DROP statements with Postgres-style
// quoting (double-quoted identifiers, escaped quotes).
package ddl

import (
	"fmt"
	"strings"

	gddl "github.com/Giomelox/Be-Analytic-ETL/internal/ddl"
)

// MapType maps a logical kind into a Postgres SQL type.
//
//	"integer"   -> INTEGER
//	"real"      -> DOUBLE PRECISION
//	"boolean"   -> BOOLEAN
//	"date"      -> DATE
//	"timestamp" -> TIMESTAMPTZ
//	everything else -> TEXT
func MapType(kind string) string {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "int", "integer":
		return "INTEGER"
	case "bigint":
		return "BIGINT"
	case "real", "float", "double":
		return "DOUBLE PRECISION"
	case "bool", "boolean":
		return "BOOLEAN"
	case "date":
		return "DATE"
	case "timestamp", "timestamptz":
		return "TIMESTAMPTZ"
	default:
		return "TEXT"
	}
}

// MapDef returns a copy of def with every logical kind replaced by its
// Postgres type.
func MapDef(def gddl.TableDef) gddl.TableDef {
	out := gddl.TableDef{FQN: def.FQN, Columns: make([]gddl.ColumnDef, len(def.Columns))}
	for i, c := range def.Columns {
		c.SQLType = MapType(c.SQLType)
		out.Columns[i] = c
	}
	return out
}

// BuildCreateTableSQL renders a Postgres CREATE TABLE statement for def.
// Identifiers are double-quoted; primary-key columns are always NOT NULL.
func BuildCreateTableSQL(def gddl.TableDef) (string, error) {
	fqn := strings.TrimSpace(def.FQN)
	if fqn == "" {
		return "", fmt.Errorf("postgres ddl: table FQN must not be empty")
	}
	if len(def.Columns) == 0 {
		return "", fmt.Errorf("postgres ddl: at least one column is required")
	}

	cols := make([]string, 0, len(def.Columns)+1)
	pks := make([]string, 0, len(def.Columns))

	for _, c := range def.Columns {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return "", fmt.Errorf("postgres ddl: column with empty name in table %s", fqn)
		}
		typ := strings.TrimSpace(c.SQLType)
		if typ == "" {
			return "", fmt.Errorf("postgres ddl: column %s missing SQLType", name)
		}

		var sb strings.Builder
		sb.WriteString(QuoteIdent(name))
		sb.WriteByte(' ')
		sb.WriteString(typ)

		if !c.Nullable || c.PrimaryKey {
			sb.WriteString(" NOT NULL")
		}
		if d := strings.TrimSpace(c.Default); d != "" {
			sb.WriteString(" DEFAULT ")
			sb.WriteString(d)
		}

		cols = append(cols, sb.String())
		if c.PrimaryKey {
			pks = append(pks, QuoteIdent(name))
		}
	}

	if len(pks) > 0 {
		cols = append(cols, fmt.Sprintf("PRIMARY KEY (%s)", strings.Join(pks, ", ")))
	}

	return fmt.Sprintf(
		"CREATE TABLE %s (\n  %s\n);",
		QuoteFQN(fqn),
		strings.Join(cols, ",\n  "),
	), nil
}

// BuildDropTableSQL renders the destructive drop that precedes table
// recreation. CASCADE removes dependent views left over from earlier runs.
func BuildDropTableSQL(fqn string) string {
	return fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE;", QuoteFQN(fqn))
}

// QuoteIdent quotes a single identifier segment for Postgres.
func QuoteIdent(id string) string {
	return `"` + strings.ReplaceAll(id, `"`, `""`) + `"`
}

// QuoteFQN quotes a possibly schema-qualified name like "public.dados_ida"
// to `"public"."dados_ida"`. Empty segments are ignored.
func QuoteFQN(f string) string {
	parts := strings.Split(f, ".")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		out = append(out, QuoteIdent(p))
	}
	return strings.Join(out, ".")
}
