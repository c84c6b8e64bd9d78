// Package postgres implements the Postgres storage backend using pgx v5.
// Replace runs the whole materialization (drop, create, COPY) inside one
// transaction, so a failed load leaves the previous table untouched.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	gddl "github.com/Giomelox/Be-Analytic-ETL/internal/ddl"
	"github.com/Giomelox/Be-Analytic-ETL/internal/storage"
	pgddl "github.com/Giomelox/Be-Analytic-ETL/internal/storage/postgres/ddl"
)

// Config holds Postgres repository configuration.
type Config struct {
	DSN       string // connection string for pgxpool
	Table     string // fully qualified target table name, e.g. "public.dados_ida"
	BatchSize int    // rows per COPY call
}

// Repository is a Postgres-backed implementation of storage.Repository.
type Repository struct {
	pool *pgxpool.Pool
	cfg  Config
}

// NewRepository constructs a Repository and returns a close function for
// cleanup.
func NewRepository(ctx context.Context, cfg Config) (*Repository, func(), error) {
	pool, err := pgxpool.New(ctx, cfg.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("pgxpool: %w", err)
	}
	closeFn := func() { pool.Close() }
	return &Repository{pool: pool, cfg: cfg}, closeFn, nil
}

// Replace drops the target table, recreates it from def, and bulk-loads rows
// with COPY, all inside a single transaction committed at the end. Any error
// rolls the transaction back, leaving whatever table existed before.
func (r *Repository) Replace(ctx context.Context, def gddl.TableDef, rows [][]any) (int64, error) {
	if def.FQN == "" {
		def.FQN = r.cfg.Table
	}

	createSQL, err := pgddl.BuildCreateTableSQL(pgddl.MapDef(def))
	if err != nil {
		return 0, err
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, pgddl.BuildDropTableSQL(def.FQN)); err != nil {
		return 0, fmt.Errorf("drop table: %w", err)
	}
	if _, err := tx.Exec(ctx, createSQL); err != nil {
		return 0, fmt.Errorf("create table: %w", err)
	}

	columns := make([]string, len(def.Columns))
	for i, c := range def.Columns {
		columns[i] = c.Name
	}

	ident := splitFQN(def.FQN)
	copyFn := func(ctx context.Context, cols []string, batch [][]any) (int64, error) {
		n, err := tx.CopyFrom(ctx, ident, cols, pgx.CopyFromRows(batch))
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Detail != "" {
				return n, fmt.Errorf("copy: %s (%s)", pgErr.Detail, pgErr.SQLState())
			}
			return n, fmt.Errorf("copy: %w", err)
		}
		return n, nil
	}

	total, err := storage.LoadBatches(ctx, columns, rows, r.cfg.BatchSize, copyFn)
	if err != nil {
		return total, err
	}

	if err := tx.Commit(ctx); err != nil {
		return total, fmt.Errorf("commit: %w", err)
	}
	log.Printf("postgres: replaced %s with %d rows", def.FQN, total)
	return total, nil
}

// EnsureDatabase connects with the admin DSN and creates dbName when it does
// not exist. CREATE DATABASE cannot run inside a transaction, so this is a
// separate step before the repository opens its own pool.
func EnsureDatabase(ctx context.Context, adminDSN, dbName string) error {
	if strings.TrimSpace(dbName) == "" {
		return fmt.Errorf("postgres: database name must not be empty")
	}

	conn, err := pgx.Connect(ctx, adminDSN)
	if err != nil {
		return fmt.Errorf("postgres: admin connect: %w", err)
	}
	defer conn.Close(ctx)

	var exists bool
	err = conn.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)", dbName,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("postgres: check database: %w", err)
	}
	if exists {
		return nil
	}

	if _, err := conn.Exec(ctx, "CREATE DATABASE "+pgddl.QuoteIdent(dbName)); err != nil {
		return fmt.Errorf("postgres: create database %s: %w", dbName, err)
	}
	log.Printf("postgres: created database %s", dbName)
	return nil
}

// splitFQN converts "schema.table" into a pgx.Identifier {"schema","table"}.
// If no dot is present, returns {"table"}.
func splitFQN(fqn string) pgx.Identifier {
	parts := strings.Split(fqn, ".")
	id := make(pgx.Identifier, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			id = append(id, p)
		}
	}
	return id
}
