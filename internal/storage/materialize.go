// internal/storage/materialize.go

package storage

import (
	"context"

	"github.com/Giomelox/Be-Analytic-ETL/internal/ddl"
	"github.com/Giomelox/Be-Analytic-ETL/internal/table"
)

// Materialize maps the consolidated table onto a relational schema and
// replaces the destination table through repo: the column kinds come from
// ddl.FromTable, every cell is coerced to its typed driver value, and the
// backend runs the destructive create plus bulk load in one transaction.
func Materialize(ctx context.Context, repo Repository, t table.Table, fqn string) (int64, error) {
	def := ddl.FromTable(t, fqn)
	rows, err := CoerceRows(def, t)
	if err != nil {
		return 0, err
	}
	return repo.Replace(ctx, def, rows)
}
