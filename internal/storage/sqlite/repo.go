// Package sqlite implements the SQLite storage backend using database/sql.
// SQLite has no bulk-load API like Postgres COPY; a prepared INSERT inside a
// transaction keeps performance acceptable for this dataset's volumes.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	gddl "github.com/Giomelox/Be-Analytic-ETL/internal/ddl"
	"github.com/Giomelox/Be-Analytic-ETL/internal/storage"
	sqliteddl "github.com/Giomelox/Be-Analytic-ETL/internal/storage/sqlite/ddl"
)

// Config holds SQLite repository configuration.
type Config struct {
	// DSN is a SQLite connection string or file path, e.g.
	// "file:ida.db?cache=shared" or "ida.db".
	DSN string
	// Table is the target table name. SQLite has no schemas; dotted names
	// are passed through unchanged.
	Table string
	// BatchSize caps rows per insert batch.
	BatchSize int
}

// Repository is a SQLite-backed implementation of storage.Repository.
type Repository struct {
	db  *sql.DB
	cfg Config
}

// NewRepository opens a SQLite connection and returns a Repository plus a
// close function for cleanup.
func NewRepository(ctx context.Context, cfg Config) (*Repository, func(), error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, nil, fmt.Errorf("sqlite: DSN must not be empty")
	}

	db, err := sql.Open("sqlite", cfg.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("sqlite: open: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("sqlite: ping: %w", err)
	}

	closeFn := func() { db.Close() }
	return &Repository{db: db, cfg: cfg}, closeFn, nil
}

// Replace drops and recreates the target table from def and inserts rows via
// a prepared statement, all in one transaction.
func (r *Repository) Replace(ctx context.Context, def gddl.TableDef, rows [][]any) (int64, error) {
	if def.FQN == "" {
		def.FQN = r.cfg.Table
	}

	createSQL, err := gddl.BuildCreateTableSQL(sqliteddl.MapDef(def))
	if err != nil {
		return 0, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("sqlite: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+def.FQN); err != nil {
		return 0, fmt.Errorf("sqlite: drop table: %w", err)
	}
	if _, err := tx.ExecContext(ctx, createSQL); err != nil {
		return 0, fmt.Errorf("sqlite: create table: %w", err)
	}

	columns := make([]string, len(def.Columns))
	placeholders := make([]string, len(def.Columns))
	for i, c := range def.Columns {
		columns[i] = c.Name
		placeholders[i] = "?"
	}
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		def.FQN,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
	))
	if err != nil {
		return 0, fmt.Errorf("sqlite: prepare insert: %w", err)
	}
	defer stmt.Close()

	copyFn := func(ctx context.Context, cols []string, batch [][]any) (int64, error) {
		var inserted int64
		for _, row := range batch {
			if len(row) != len(cols) {
				return inserted, fmt.Errorf("sqlite: row length %d != columns length %d", len(row), len(cols))
			}
			if _, err := stmt.ExecContext(ctx, row...); err != nil {
				return inserted, fmt.Errorf("sqlite: insert: %w", err)
			}
			inserted++
		}
		return inserted, nil
	}

	total, err := storage.LoadBatches(ctx, columns, rows, r.cfg.BatchSize, copyFn)
	if err != nil {
		return total, err
	}

	if err := tx.Commit(); err != nil {
		return total, fmt.Errorf("sqlite: commit: %w", err)
	}
	log.Printf("sqlite: replaced %s with %d rows", def.FQN, total)
	return total, nil
}
