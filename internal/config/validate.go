package config

import (
	"fmt"
	"strings"
)

// IssueSeverity classifies a validation finding.
type IssueSeverity string

const (
	SeverityError   IssueSeverity = "error"
	SeverityWarning IssueSeverity = "warning"
)

// Issue is a single validation finding. Path is the dotted location of the
// offending value.
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// Validate checks the configuration and returns all findings. Warnings do not
// prevent a run; callers decide whether errors are fatal (a run that skips
// database loading can tolerate Postgres errors).
func Validate(cfg Config) []Issue {
	var issues []Issue

	if cfg.APIKey == "" {
		issues = append(issues, Issue{SeverityWarning, keyAPIKey,
			"empty; catalog requests will be anonymous and may be throttled"})
	}
	if cfg.PGHost == "" {
		issues = append(issues, Issue{SeverityError, keyPGHost, "must not be empty"})
	}
	if cfg.PGPort < 1 || cfg.PGPort > 65535 {
		issues = append(issues, Issue{SeverityError, keyPGPort,
			fmt.Sprintf("%d is outside 1-65535", cfg.PGPort)})
	}
	if cfg.PGUser == "" {
		issues = append(issues, Issue{SeverityError, keyPGUser, "must not be empty"})
	}
	if cfg.PGPassword == "" {
		issues = append(issues, Issue{SeverityWarning, keyPGPassword,
			"empty; connection will rely on trust or pgpass"})
	}
	if cfg.PGDatabase == "" {
		issues = append(issues, Issue{SeverityError, keyPGDatabase, "must not be empty"})
	}
	issues = append(issues, validateTable(cfg.Table)...)

	return issues
}

func validateTable(table string) []Issue {
	if table == "" {
		return []Issue{{SeverityError, keyTable, "must not be empty"}}
	}
	parts := strings.Split(table, ".")
	if len(parts) > 2 {
		return []Issue{{SeverityError, keyTable,
			fmt.Sprintf("%q has more than one dot; want table or schema.table", table)}}
	}
	for _, p := range parts {
		if p == "" {
			return []Issue{{SeverityError, keyTable,
				fmt.Sprintf("%q has an empty identifier", table)}}
		}
	}
	return nil
}

// Errors filters issues down to the error severity.
func Errors(issues []Issue) []Issue {
	var out []Issue
	for _, i := range issues {
		if i.Severity == SeverityError {
			out = append(out, i)
		}
	}
	return out
}
