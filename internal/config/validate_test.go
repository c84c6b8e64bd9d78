package config

import (
	"strings"
	"testing"
)

func validConfig() Config {
	return Config{
		APIKey:     "k",
		PGHost:     "localhost",
		PGPort:     5432,
		PGUser:     "postgres",
		PGPassword: "pw",
		PGDatabase: "ida",
		Table:      "public.dados_ida",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		wantPath string
		severity IssueSeverity
	}{
		{"valid", func(c *Config) {}, "", ""},
		{"missing api key warns", func(c *Config) { c.APIKey = "" }, keyAPIKey, SeverityWarning},
		{"missing host", func(c *Config) { c.PGHost = "" }, keyPGHost, SeverityError},
		{"port zero", func(c *Config) { c.PGPort = 0 }, keyPGPort, SeverityError},
		{"port too large", func(c *Config) { c.PGPort = 70000 }, keyPGPort, SeverityError},
		{"missing user", func(c *Config) { c.PGUser = "" }, keyPGUser, SeverityError},
		{"missing password warns", func(c *Config) { c.PGPassword = "" }, keyPGPassword, SeverityWarning},
		{"missing database", func(c *Config) { c.PGDatabase = "" }, keyPGDatabase, SeverityError},
		{"empty table", func(c *Config) { c.Table = "" }, keyTable, SeverityError},
		{"too many dots", func(c *Config) { c.Table = "a.b.c" }, keyTable, SeverityError},
		{"empty identifier", func(c *Config) { c.Table = "public." }, keyTable, SeverityError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			issues := Validate(cfg)
			if tt.wantPath == "" {
				if len(issues) != 0 {
					t.Fatalf("Validate = %v, want no issues", issues)
				}
				return
			}
			found := false
			for _, i := range issues {
				if i.Path == tt.wantPath && i.Severity == tt.severity {
					found = true
				}
			}
			if !found {
				t.Fatalf("Validate = %v, want %s issue at %s", issues, tt.severity, tt.wantPath)
			}
		})
	}
}

func TestIssueError(t *testing.T) {
	i := Issue{SeverityError, "pg_host", "must not be empty"}
	if got := i.Error(); !strings.Contains(got, "pg_host") || !strings.Contains(got, "error") {
		t.Errorf("Error() = %q", got)
	}
}

func TestErrors(t *testing.T) {
	issues := []Issue{
		{SeverityWarning, "api_key", "w"},
		{SeverityError, "pg_host", "e"},
	}
	got := Errors(issues)
	if len(got) != 1 || got[0].Path != "pg_host" {
		t.Errorf("Errors = %v, want only pg_host", got)
	}
}
