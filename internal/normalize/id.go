package normalize

import "strings"

// NormalizeTaxID strips everything but digits from an SSN/EIN/TIN. Equality
// between identifiers is defined only on this normalized form.
func NormalizeTaxID(raw string) string {
	b := strings.Builder{}
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatTaxID renders a normalized identifier as XXX-XX-XXXX for display.
// Presentation only: applied when exactly nine digits remain, otherwise the
// input comes back untouched.
func FormatTaxID(id string) string {
	digits := NormalizeTaxID(id)
	if len(digits) != 9 {
		return id
	}
	return digits[0:3] + "-" + digits[3:5] + "-" + digits[5:9]
}
