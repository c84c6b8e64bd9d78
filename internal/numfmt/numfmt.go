// Package numfmt normalizes free-text numeric tokens from the source
// spreadsheets into a canonical decimal text representation.
//
// Both entry points are total: input that does not look numeric passes
// through (TrimDecimal) or degrades to the empty string (CoerceValue); no
// input aborts the pipeline. Values stay text throughout so precision is
// preserved until load time.
package numfmt

import (
	"regexp"
	"strings"
)

// decimalRe matches a plain integer.fraction token with all-digit parts.
var decimalRe = regexp.MustCompile(`^(\d+)\.(\d+)$`)

// missingTokens are textual placeholders meaning "no value", distinct from a
// structurally empty cell but normalized to the same empty string.
var missingTokens = map[string]struct{}{
	"":    {},
	"nan": {},
	"NaN": {},
	"-":   {},
	"--":  {},
	"---": {},
	"ND":  {},
	"N/D": {},
}

// nonNumeric matches every character that is not a digit, comma, or period.
var nonNumeric = regexp.MustCompile(`[^\d.,]`)

// TrimDecimal strips redundant trailing zero digits from the fractional part
// of an integer.fraction token; when the fraction becomes empty the decimal
// point is dropped too. Text that is not such a token is returned unchanged.
//
//	"15.00" -> "15"
//	"15.50" -> "15.5"
//	"abc"   -> "abc"
//
// TrimDecimal is idempotent.
func TrimDecimal(s string) string {
	m := decimalRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return s
	}
	intPart, fracPart := m[1], strings.TrimRight(m[2], "0")
	if fracPart == "" {
		return intPart
	}
	return intPart + "." + fracPart
}

// CoerceValue converts a raw value cell into a canonical decimal token or
// the empty string. It understands the regional formats present in the
// source files: "1.234,56" (thousands period, decimal comma), "1234,56"
// (decimal comma), and plain "1234.56".
//
// When two or more periods appear without a comma, all periods are removed.
// This reproduces the historical behavior of the published dataset exactly,
// even though it discards a possible decimal point in the last segment
// ("1.234.56" -> "123456").
func CoerceValue(raw string) string {
	s := strings.TrimSpace(raw)
	if _, missing := missingTokens[s]; missing {
		return ""
	}

	s = nonNumeric.ReplaceAllString(s, "")
	if s == "" {
		return ""
	}

	switch {
	case strings.Contains(s, ","):
		if strings.Contains(s, ".") {
			// Thousands periods plus decimal comma: 1.234,56 -> 1234.56.
			parts := strings.SplitN(s, ",", 3)
			intPart := strings.ReplaceAll(parts[0], ".", "")
			if len(parts) > 1 {
				return intPart + "." + parts[1]
			}
			return intPart
		}
		// Decimal comma only: 1234,56 -> 1234.56.
		return strings.ReplaceAll(s, ",", ".")

	case strings.Count(s, ".") >= 2:
		// Multiple periods, no comma: treat every period as a thousands
		// separator. Lossy legacy rule, kept for output compatibility.
		return strings.ReplaceAll(s, ".", "")

	default:
		return s
	}
}
