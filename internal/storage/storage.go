// Package storage contains the storage-agnostic contracts for materializing
// the consolidated table into a relational backend.
//
// Concrete backends (postgres, sqlite) register a factory at init time; the
// CLI obtains a Repository via storage.New without importing a backend
// directly. Importing internal/storage/all as a blank import enables every
// built-in backend.
package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/Giomelox/Be-Analytic-ETL/internal/ddl"
)

// Config selects and configures a storage backend.
type Config struct {
	// Kind names a registered backend, e.g. "postgres" or "sqlite".
	Kind string
	// DSN is the backend connection string.
	DSN string
	// Table is the destination table name; dotted form for backends with
	// schemas (e.g. "public.dados_ida").
	Table string
	// BatchSize caps how many rows each bulk-insert call carries.
	// Defaults to 5000 when <= 0.
	BatchSize int
}

// DefaultBatchSize is applied when Config.BatchSize is not positive.
const DefaultBatchSize = 5000

// Repository is the relational sink for the consolidated table. Replace is
// destructive: the target table is dropped, recreated from def, and loaded
// with rows inside a single transaction that rolls back on any failure.
type Repository interface {
	Replace(ctx context.Context, def ddl.TableDef, rows [][]any) (int64, error)
	Close()
}

// Factory constructs a Repository for a Config.
type Factory func(ctx context.Context, cfg Config) (Repository, error)

var (
	regMu     sync.RWMutex
	factories = map[string]Factory{}
)

// Register registers (or replaces) the factory for a storage kind. It is
// called from backend packages' init functions.
func Register(kind string, fn Factory) {
	regMu.Lock()
	defer regMu.Unlock()
	factories[kind] = fn
}

// New opens a Repository for cfg.Kind. The set of available kinds is decided
// by which backend packages the binary imports.
func New(ctx context.Context, cfg Config) (Repository, error) {
	regMu.RLock()
	fn, ok := factories[cfg.Kind]
	regMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("storage: no backend registered for kind=%q", cfg.Kind)
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	return fn(ctx, cfg)
}
