package numfmt

import "testing"

/*
TestTrimDecimal verifies the decimal-trim rule:

  - Trailing zero digits in the fraction are removed.
  - An emptied fraction drops the decimal point entirely.
  - Non-numeric text passes through unchanged.
*/
func TestTrimDecimal(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"15.00", "15"},
		{"15.50", "15.5"},
		{"15.5", "15.5"},
		{"15.0", "15"},
		{"0.10", "0.1"},
		{"100", "100"},
		{"abc", "abc"},
		{"", ""},
		{"1.2.3", "1.2.3"},   // not integer.fraction, untouched
		{"-15.00", "-15.00"}, // sign not part of the matched shape, untouched
		{"15,00", "15,00"},
	}
	for _, tc := range tests {
		if got := TrimDecimal(tc.in); got != tc.want {
			t.Errorf("TrimDecimal(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTrimDecimalIdempotent(t *testing.T) {
	inputs := []string{"15.00", "15.50", "15.5", "0.1000", "abc", "", "1.2.3", "7"}
	for _, in := range inputs {
		once := TrimDecimal(in)
		twice := TrimDecimal(once)
		if once != twice {
			t.Errorf("TrimDecimal not idempotent on %q: %q then %q", in, once, twice)
		}
	}
}

/*
TestCoerceValue verifies locale-aware coercion:

  - Brazilian format with thousands periods and decimal comma.
  - Decimal comma without periods.
  - The lossy multi-period rule, reproduced exactly.
  - Sentinel missing tokens collapse to the empty string.
*/
func TestCoerceValue(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1.234,56", "1234.56"},
		{"1234,56", "1234.56"},
		{"1.234.56", "123456"}, // lossy legacy rule
		{"1.234.567", "1234567"},
		{"42", "42"},
		{"42.5", "42.5"},
		{"ND", ""},
		{"N/D", ""},
		{"-", ""},
		{"--", ""},
		{"---", ""},
		{"nan", ""},
		{"NaN", ""},
		{"", ""},
		{"  12,3  ", "12.3"},
		{"R$ 1.234,56", "1234.56"}, // stray characters stripped first
		{"abc", ""},
		{"12,34,56", "12.34.56"}, // every comma becomes a period when no period exists
	}
	for _, tc := range tests {
		if got := CoerceValue(tc.in); got != tc.want {
			t.Errorf("CoerceValue(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
