// Adapter wiring the Postgres backend into the storage-agnostic factory.
// Registering at init time lets callers open repositories via storage.New
// without importing this package directly.
package postgres

import (
	"context"

	"github.com/Giomelox/Be-Analytic-ETL/internal/storage"
)

// newRepository is a test hook that points to NewRepository by default.
var newRepository = NewRepository

// wrappedRepo pairs the concrete Repository with the close function returned
// by NewRepository so the storage.Repository interface can expose Close.
type wrappedRepo struct {
	*Repository
	closeFn func()
}

var _ storage.Repository = (*wrappedRepo)(nil)

func (w *wrappedRepo) Close() {
	if w.closeFn != nil {
		w.closeFn()
	}
}

func init() {
	storage.Register("postgres", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		repo, closeFn, err := newRepository(ctx, Config{
			DSN:       cfg.DSN,
			Table:     cfg.Table,
			BatchSize: cfg.BatchSize,
		})
		if err != nil {
			return nil, err
		}
		return &wrappedRepo{Repository: repo, closeFn: closeFn}, nil
	})
}
