// Package ddl defines a small, backend-agnostic model for SQL DDL and helpers
// to render simple CREATE TABLE statements from that model.
//
// The package stays generic: identifiers are emitted as-is, no dialect
// clauses such as IF NOT EXISTS are inserted, and ColumnDef.Default is
// treated as a raw SQL expression. Backend packages map logical kinds to
// dialect types first (internal/storage/sqlite/ddl delegates here after
// MapDef; internal/storage/postgres/ddl renders its own quoted form).
package ddl

import (
	"fmt"
	"strings"
)

// BuildCreateTableSQL renders a CREATE TABLE statement from a TableDef.
//
// Each column renders as:
//
//	<Name> <SQLType> [NOT NULL] [DEFAULT <Default>]
//
// Columns with PrimaryKey set are collected into a trailing
// PRIMARY KEY (<cols>) clause.
func BuildCreateTableSQL(t TableDef) (string, error) {
	fqn := strings.TrimSpace(t.FQN)
	if fqn == "" {
		return "", fmt.Errorf("ddl: table FQN must not be empty")
	}
	if len(t.Columns) == 0 {
		return "", fmt.Errorf("ddl: at least one column is required")
	}

	var pks []string
	var b strings.Builder
	b.WriteString("CREATE TABLE ")
	b.WriteString(fqn)
	b.WriteString(" (")

	for i, c := range t.Columns {
		line, err := renderColumn(c)
		if err != nil {
			return "", fmt.Errorf("%w in table %s", err, fqn)
		}
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString("\n  ")
		b.WriteString(line)
		if c.PrimaryKey {
			pks = append(pks, strings.TrimSpace(c.Name))
		}
	}

	if len(pks) > 0 {
		b.WriteString(",\n  PRIMARY KEY (")
		b.WriteString(strings.Join(pks, ", "))
		b.WriteByte(')')
	}
	b.WriteString("\n);")

	return b.String(), nil
}

// renderColumn renders one column definition line.
func renderColumn(c ColumnDef) (string, error) {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return "", fmt.Errorf("ddl: column with empty name")
	}
	typ := strings.TrimSpace(c.SQLType)
	if typ == "" {
		return "", fmt.Errorf("ddl: column %s missing SQLType", name)
	}

	parts := []string{name, typ}
	if !c.Nullable {
		parts = append(parts, "NOT NULL")
	}
	if def := strings.TrimSpace(c.Default); def != "" {
		parts = append(parts, "DEFAULT", def)
	}
	return strings.Join(parts, " "), nil
}
