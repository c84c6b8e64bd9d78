// Package config loads and validates the run configuration for the IDA
// consolidation job.
//
// Configuration comes from environment variables, optionally seeded from a
// dotenv file (token.env by default) so local runs and CI share the same key
// names. The catalog API key and the Postgres connection settings are the
// interesting values; everything else has a sensible default.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// DefaultEnvFile is the dotenv file consulted before the process environment.
const DefaultEnvFile = "token.env"

// Config is the resolved run configuration.
type Config struct {
	// APIKey authenticates catalog requests (header chave-api-dados-abertos).
	// May be empty; catalog access then stays anonymous.
	APIKey string

	// Postgres connection settings.
	PGHost     string
	PGPort     int
	PGUser     string
	PGPassword string
	PGDatabase string

	// Table is the destination table in dotted form.
	Table string
}

// env keys, matching the historical dotenv layout of this dataset's tooling.
const (
	keyAPIKey     = "api_key"
	keyPGHost     = "pg_host"
	keyPGPort     = "pg_port"
	keyPGUser     = "pg_user"
	keyPGPassword = "pg_password"
	keyPGDatabase = "pg_database"
	keyTable      = "pg_table"
)

// Load reads the dotenv file at path (when it exists) into the process
// environment without overriding already-set variables, then resolves the
// configuration. An empty path means DefaultEnvFile; a missing file is not an
// error because every key can also arrive via the environment.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultEnvFile
	}
	if _, err := os.Stat(path); err == nil {
		if err := godotenv.Load(path); err != nil {
			return Config{}, fmt.Errorf("config: load %s: %w", path, err)
		}
	}

	cfg := Config{
		APIKey:     os.Getenv(keyAPIKey),
		PGHost:     getenvDefault(keyPGHost, "localhost"),
		PGUser:     getenvDefault(keyPGUser, "postgres"),
		PGPassword: os.Getenv(keyPGPassword),
		PGDatabase: getenvDefault(keyPGDatabase, "dados_anatel"),
		Table:      getenvDefault(keyTable, "public.dados_ida"),
	}

	port := getenvDefault(keyPGPort, "5432")
	p, err := strconv.Atoi(port)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s=%q is not a port number", keyPGPort, port)
	}
	cfg.PGPort = p

	return cfg, nil
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// DSN builds the pgx connection string for the configured database.
func (c Config) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s",
		url.QueryEscape(c.PGUser),
		url.QueryEscape(c.PGPassword),
		c.PGHost,
		c.PGPort,
		c.PGDatabase,
	)
}

// AdminDSN is the DSN against the maintenance database, used only to create
// the target database when it does not exist.
func (c Config) AdminDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/postgres",
		url.QueryEscape(c.PGUser),
		url.QueryEscape(c.PGPassword),
		c.PGHost,
		c.PGPort,
	)
}
