package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a raw extracted value into a decimal amount. It is a
// total function: currency symbols, thousands separators, and surrounding
// noise are stripped, and anything that still fails to parse becomes zero.
func ParseAmount(raw string) decimal.Decimal {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero
	}

	negative := strings.HasPrefix(s, "-")
	// Accountant-style negatives: (1,234.50)
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
	}

	b := strings.Builder{}
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}

	cleaned := b.String()
	if cleaned == "" || cleaned == "." {
		return decimal.Zero
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	if negative {
		d = d.Neg()
	}
	return d
}

// Round2 rounds to cents using round-half-away-from-zero. Applied only at
// the final output step; intermediate sums keep full precision.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// IsZero reports whether an amount is exactly zero
func IsZero(d decimal.Decimal) bool {
	return d.IsZero()
}

// Format renders an amount with two decimal places for display
func Format(d decimal.Decimal) string {
	return Round2(d).StringFixed(2)
}
