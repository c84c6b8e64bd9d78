// Command idaetl consolidates the ANATEL IDA dataset: it discovers the
// published resources on dados.gov.br, reshapes each spreadsheet into long
// form, writes the consolidated CSV artifact, and optionally replaces a
// relational table with the result.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/Giomelox/Be-Analytic-ETL/internal/catalog"
	"github.com/Giomelox/Be-Analytic-ETL/internal/config"
	"github.com/Giomelox/Be-Analytic-ETL/internal/consolidate"
	"github.com/Giomelox/Be-Analytic-ETL/internal/metrics"
	"github.com/Giomelox/Be-Analytic-ETL/internal/metrics/prompush"

	// register all backends with the storage factory.
	_ "github.com/Giomelox/Be-Analytic-ETL/internal/storage/all"
)

func main() {
	var (
		envPath           string
		outPath           string
		storageKind       string
		dsnFlg            string
		tableFlg          string
		datasetFlg        string
		metricsBackendFlg string
		pushGatewayURLFlg string
		validate          bool
	)

	flag.StringVar(&envPath, "env", config.DefaultEnvFile, "dotenv file with api_key and pg_* settings")
	flag.StringVar(&outPath, "out", consolidate.DefaultArtifactName, "path of the consolidated CSV artifact")
	flag.StringVar(&storageKind, "storage", "postgres", "storage backend (postgres, sqlite, none)")
	flag.StringVar(&dsnFlg, "dsn", "", "storage DSN (overrides the one built from pg_* settings)")
	flag.StringVar(&tableFlg, "table", "", "destination table (overrides pg_table)")
	flag.StringVar(&datasetFlg, "dataset", catalog.DefaultDatasetName, "catalog dataset name to search for")
	flag.StringVar(&metricsBackendFlg, "metrics-backend", "none", "metrics backend to use (pushgateway, none)")
	flag.StringVar(&pushGatewayURLFlg, "pushgateway-url", "", "Pushgateway base URL (overrides env PUSHGATEWAY_URL)")
	flag.BoolVar(&validate, "validate", false, "validate the configuration and exit")
	verbose := flag.Bool("v", false, "enable verbose logs")

	flag.Parse()

	cfg, err := config.Load(envPath)
	if err != nil {
		fatalf("%v", err)
	}
	if tableFlg != "" {
		cfg.Table = tableFlg
	}

	issues := config.Validate(cfg)
	for _, iss := range issues {
		fmt.Fprintf(os.Stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
	}
	// Postgres settings only matter when the run loads into Postgres.
	if storageKind == "postgres" && len(config.Errors(issues)) > 0 {
		log.Printf("configuration is invalid: %s", envPath)
		os.Exit(1)
	}

	if validate {
		log.Printf("configuration is valid: %s", envPath)
		os.Exit(0)
	}

	// Decide metrics backend: flag → env → default.
	backendName := metricsBackendFlg
	if backendName == "" {
		backendName = os.Getenv("METRICS_BACKEND")
	}
	switch backendName {
	case "pushgateway":
		gwURL := pushGatewayURLFlg
		if gwURL == "" {
			gwURL = os.Getenv("PUSHGATEWAY_URL")
		}
		if gwURL == "" {
			gwURL = "http://localhost:9091"
		}
		b, err := prompush.NewBackend("ida_etl", gwURL)
		if err != nil {
			log.Printf("metrics: failed to init prom push backend: %v; using nop", err)
		} else {
			log.Printf("metrics: url=%v backend=%v", gwURL, backendName)
			metrics.SetBackend(b)
			defer func() {
				if err := metrics.Flush(); err != nil {
					log.Printf("metrics: flush error: %v", err)
				}
			}()
		}

	case "", "none":
		if *verbose {
			log.Printf("metrics: disabled (backend=%q)", backendName)
		}

	default:
		log.Printf("metrics: unknown backend %q; metrics disabled", backendName)
	}

	ctx := context.Background()
	start := time.Now()

	opts := runOptions{
		cfg:         cfg,
		dataset:     datasetFlg,
		outPath:     outPath,
		storageKind: storageKind,
		dsn:         dsnFlg,
		verbose:     *verbose,
	}

	if err := run(ctx, opts); err != nil {
		log.Fatalf("%v", err)
	}

	if *verbose {
		log.Printf("completed in %s", time.Since(start).Truncate(time.Millisecond))
	}
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
