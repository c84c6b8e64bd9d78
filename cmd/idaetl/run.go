package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Giomelox/Be-Analytic-ETL/internal/catalog"
	"github.com/Giomelox/Be-Analytic-ETL/internal/config"
	"github.com/Giomelox/Be-Analytic-ETL/internal/consolidate"
	"github.com/Giomelox/Be-Analytic-ETL/internal/datasource/httpds"
	"github.com/Giomelox/Be-Analytic-ETL/internal/metrics"
	"github.com/Giomelox/Be-Analytic-ETL/internal/pipeline"
	"github.com/Giomelox/Be-Analytic-ETL/internal/storage"
	"github.com/Giomelox/Be-Analytic-ETL/internal/storage/postgres"
	"github.com/Giomelox/Be-Analytic-ETL/internal/table"
)

// runOptions carries the resolved run parameters from the CLI layer.
type runOptions struct {
	cfg config.Config

	// baseURL overrides the catalog API root. Empty means the public portal.
	baseURL string

	dataset     string
	outPath     string
	storageKind string // postgres, sqlite, none
	dsn         string // overrides the DSN built from cfg
	verbose     bool
}

// Function variables used to introduce test seams.
var (
	newRepositoryFn = func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		return storage.New(ctx, cfg)
	}

	ensureDatabaseFn = postgres.EnsureDatabase
)

// run executes the full job: discover → download → reshape → consolidate →
// write artifact → load. Individual resources fail soft (logged, counted,
// skipped); the run fails only when discovery fails, no resource survives, or
// the artifact or the database load cannot be written.
func run(ctx context.Context, opts runOptions) error {
	hc := httpds.NewClient(httpds.Config{
		BaseHeaders: catalog.AuthHeaders(opts.cfg.APIKey),
	})
	cat := catalog.NewClient(opts.baseURL, hc)

	resources, err := discover(ctx, cat, opts.dataset)
	if err != nil {
		return err
	}

	tables := collect(ctx, hc, resources)
	if len(tables) == 0 {
		return fmt.Errorf("no resource produced data; nothing to consolidate")
	}

	start := time.Now()
	final := consolidate.Consolidate(tables)
	metrics.RecordStage("consolidate", nil, time.Since(start))
	log.Printf("consolidate: tables=%d rows=%d columns=%d",
		len(tables), final.NumRows(), len(final.Columns))

	start = time.Now()
	err = consolidate.WriteCSVFile(final, opts.outPath)
	metrics.RecordStage("write_artifact", err, time.Since(start))
	if err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}
	log.Printf("artifact: wrote %s (%d rows)", opts.outPath, final.NumRows())

	return load(ctx, opts, final)
}

// discover resolves the dataset id and returns the decodable SCM/SMP/STFC
// resources.
func discover(ctx context.Context, cat *catalog.Client, dataset string) ([]catalog.Resource, error) {
	start := time.Now()
	id, err := cat.FindDatasetID(ctx, dataset)
	if err == nil {
		log.Printf("catalog: dataset %q resolved to id=%s", dataset, id)
	}

	var resources []catalog.Resource
	if err == nil {
		resources, err = cat.ListResources(ctx, id)
	}
	metrics.RecordStage("discover", err, time.Since(start))
	if err != nil {
		return nil, err
	}

	relevant := catalog.FilterRelevant(resources)
	log.Printf("catalog: resources=%d relevant=%d", len(resources), len(relevant))
	if len(relevant) == 0 {
		return nil, fmt.Errorf("catalog: dataset %q has no decodable SCM/SMP/STFC resources", dataset)
	}
	return relevant, nil
}

// collect downloads and reshapes every resource sequentially. Failures are
// logged and counted per outcome; surviving tables are returned in catalog
// order so consolidation stays deterministic.
func collect(ctx context.Context, hc *httpds.Client, resources []catalog.Resource) []table.Table {
	tables := make([]table.Table, 0, len(resources))

	for _, res := range resources {
		start := time.Now()
		raw, err := hc.GetBytes(ctx, res.URL)
		metrics.RecordStage("download", err, time.Since(start))
		if err != nil {
			log.Printf("download failed: %s (%s): %v", res.Title, res.URL, err)
			metrics.RecordResource(res.Service, "download_failed")
			continue
		}

		start = time.Now()
		t, err := pipeline.Transform(raw, res)
		metrics.RecordStage("reshape", err, time.Since(start))
		if err != nil {
			if errors.Is(err, pipeline.ErrEmptyRegion) {
				log.Printf("skipping %s: %v", res.Title, err)
				metrics.RecordResource(res.Service, "skipped_empty")
			} else {
				log.Printf("decode failed: %s: %v", res.Title, err)
				metrics.RecordResource(res.Service, "decode_failed")
			}
			continue
		}

		log.Printf("processed: %s service=%s rows=%d", res.Title, res.Service, t.NumRows())
		metrics.RecordResource(res.Service, "processed")
		tables = append(tables, t)
	}

	return tables
}

// load replaces the destination table with the consolidated data in a single
// transaction. storageKind "none" skips loading entirely.
func load(ctx context.Context, opts runOptions, final table.Table) error {
	if opts.storageKind == "none" || opts.storageKind == "" {
		log.Printf("storage: disabled; artifact only")
		return nil
	}

	dsn := opts.dsn
	if opts.storageKind == "postgres" {
		if dsn == "" {
			dsn = opts.cfg.DSN()
		}
		if err := ensureDatabaseFn(ctx, opts.cfg.AdminDSN(), opts.cfg.PGDatabase); err != nil {
			return fmt.Errorf("ensure database: %w", err)
		}
	}
	if dsn == "" {
		return fmt.Errorf("storage %q needs -dsn", opts.storageKind)
	}

	repo, err := newRepositoryFn(ctx, storage.Config{
		Kind:  opts.storageKind,
		DSN:   dsn,
		Table: opts.cfg.Table,
	})
	if err != nil {
		return fmt.Errorf("init repo: %w", err)
	}
	defer repo.Close()

	start := time.Now()
	n, err := storage.Materialize(ctx, repo, final, opts.cfg.Table)
	metrics.RecordStage("load", err, time.Since(start))
	if err != nil {
		return fmt.Errorf("load %s: %w", opts.cfg.Table, err)
	}
	log.Printf("storage: %s now holds %d rows", opts.cfg.Table, n)
	return nil
}
