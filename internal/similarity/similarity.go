package similarity

import (
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
	"github.com/shopspring/decimal"

	"github.com/taxdoc-core/internal/normalize"
)

// NicknameScore is the similarity assigned to a curated nickname pair
const NicknameScore = 0.9

// AmountTolerance is the relative-magnitude floor for two amounts to agree
const AmountTolerance = 0.95

// Canonical flattens a string for comparison: lowercase, punctuation
// removed, whitespace collapsed.
func Canonical(s string) string {
	b := strings.Builder{}
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// StringSimilarity scores two strings in [0,1]. Canonical-equal strings
// score 1.0, curated nickname pairs short-circuit to 0.9, everything else
// gets normalized Levenshtein distance. Empty-vs-empty is 1.0; one-sided
// empty is 0.
func StringSimilarity(a, b string) float64 {
	return StringSimilarityScored(a, b, NicknameScore)
}

// StringSimilarityScored is StringSimilarity with a caller-supplied score
// for curated nickname pairs.
func StringSimilarityScored(a, b string, nicknameScore float64) float64 {
	ca := Canonical(a)
	cb := Canonical(b)

	if ca == cb {
		return 1.0
	}
	if ca == "" || cb == "" {
		return 0.0
	}

	if isNicknamePair(ca, cb) {
		return nicknameScore
	}

	distance := levenshtein.ComputeDistance(ca, cb)
	maxLen := len([]rune(ca))
	if l := len([]rune(cb)); l > maxLen {
		maxLen = l
	}

	return 1.0 - float64(distance)/float64(maxLen)
}

// AmountSimilarity reports whether two amounts agree: both zero agree, one
// zero and one non-zero never agree, otherwise the relative magnitude
// 1 - |a-b|/max(a,b) must reach the tolerance.
func AmountSimilarity(a, b decimal.Decimal) bool {
	return AmountSimilarityWithin(a, b, AmountTolerance)
}

// AmountSimilarityWithin is AmountSimilarity against a caller-supplied
// relative-magnitude tolerance.
func AmountSimilarityWithin(a, b decimal.Decimal, tolerance float64) bool {
	aZero := a.IsZero()
	bZero := b.IsZero()
	if aZero && bZero {
		return true
	}
	if aZero || bZero {
		return false
	}

	max := a.Abs()
	if b.Abs().GreaterThan(max) {
		max = b.Abs()
	}

	ratio, _ := a.Sub(b).Abs().Div(max).Float64()
	return 1.0-ratio >= tolerance
}

// IDsEqual compares identifiers on digits only. No digits on either side
// means no match.
func IDsEqual(a, b string) bool {
	da := normalize.NormalizeTaxID(a)
	db := normalize.NormalizeTaxID(b)
	if da == "" || db == "" {
		return false
	}
	return da == db
}
