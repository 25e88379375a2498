package form

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/taxdoc-core/internal/debug"
	"github.com/taxdoc-core/internal/money"
	"github.com/taxdoc-core/internal/normalize"
)

// lineTables maps each document type's canonical monetary fields onto
// Form 1040 lines. Federal withholding lands on line25a for every type.
var lineTables = map[normalize.DocumentType]map[string]string{
	normalize.DocW2: {
		"wages":              LineWages,
		"federalWithholding": LineWithholdingW2,
	},
	normalize.Doc1099INT: {
		"interestIncome":     LineTaxableInterest,
		"federalWithholding": LineWithholdingW2,
	},
	normalize.Doc1099DIV: {
		"ordinaryDividends":        LineOrdinaryDividends,
		"qualifiedDividends":       LineQualifiedDividends,
		"capitalGainDistributions": LineCapitalGain,
		"federalWithholding":       LineWithholdingW2,
	},
	normalize.Doc1099MISC: {
		"rents":              LineOtherIncome,
		"royalties":          LineOtherIncome,
		"otherIncome":        LineOtherIncome,
		"federalWithholding": LineWithholdingW2,
	},
	normalize.Doc1099NEC: {
		"nonemployeeCompensation": LineOtherIncome,
		"federalWithholding":      LineWithholdingW2,
	},
}

// LineTableFor returns the field→line table for a document type. Unsupported
// types get a generic pass-through: the union of every typed table, so any
// recognizable field still lands on its line.
func LineTableFor(t normalize.DocumentType) map[string]string {
	if table, ok := lineTables[t]; ok {
		return table
	}
	union := make(map[string]string)
	for _, table := range lineTables {
		for field, line := range table {
			union[field] = line
		}
	}
	return union
}

// authorityRank orders document types for identity precedence: a W-2
// outranks any 1099 for personal identity, and both outrank generic scans.
func authorityRank(t normalize.DocumentType) int {
	switch {
	case t == normalize.DocW2:
		return 3
	case t.Is1099():
		return 2
	default:
		return 1
	}
}

// provenanceLabel collapses 1099 variants for provenance display
func provenanceLabel(t normalize.DocumentType) string {
	if t.Is1099() {
		return "1099"
	}
	return string(t)
}

// Fold incorporates one accepted document into the line set and returns a
// new set; the input is not mutated. Monetary lines accumulate by addition.
// Replaying the full accepted-document list from an empty set reproduces
// the same result.
func Fold(ls *LineSet, doc normalize.Document) *LineSet {
	return FoldDebug(false, ls, doc)
}

// FoldDebug is Fold with optional trace output
func FoldDebug(localDebug bool, ls *LineSet, doc normalize.Document) *LineSet {
	debug.Header(localDebug)
	defer debug.Footer(localDebug)

	out := ls.Clone()
	table := LineTableFor(doc.Type)

	for field, line := range table {
		amount := doc.Amount(field)

		// Best-effort raw-text fallback for fields OCR left empty
		if amount.IsZero() && doc.RawText != "" {
			if recovered, ok := scanRawText(doc.RawText, field); ok {
				debug.Output(localDebug, "Raw-text fallback recovered %s: %s", field, money.Format(recovered))
				amount = recovered
			}
		}

		if amount.IsZero() {
			continue
		}

		out.Add(line, amount)
		debug.Output(localDebug, "%s: %s += %s", doc.Type, line, money.Format(amount))
	}

	foldIdentity(localDebug, out, doc)

	return out
}

// Rebuild replays the accepted-document list into a fresh line set. The
// ordered list is the single source of truth; the line set is always
// reconstructible from it.
func Rebuild(docs []normalize.Document) *LineSet {
	ls := NewLineSet()
	for _, doc := range docs {
		ls = Fold(ls, doc)
	}
	return ls
}

// foldIdentity applies identity-field precedence: a more authoritative
// document may overwrite, an equally-or-less authoritative one only fills
// gaps. Every contributing type is recorded in provenance.
func foldIdentity(localDebug bool, ls *LineSet, doc normalize.Document) {
	id := doc.Recipient
	if id.Name == "" && id.TaxID == "" && id.AddressStreet == "" {
		return
	}

	rank := authorityRank(doc.Type)
	overwrite := rank > ls.Identity.sourceRank

	first, last := splitName(id.Name)
	setIdentityField(&ls.Identity.FirstName, first, overwrite)
	setIdentityField(&ls.Identity.LastName, last, overwrite)
	setIdentityField(&ls.Identity.TaxID, id.TaxID, overwrite)
	setIdentityField(&ls.Identity.AddressStreet, id.AddressStreet, overwrite)
	setIdentityField(&ls.Identity.AddressCity, id.AddressCity, overwrite)
	setIdentityField(&ls.Identity.AddressState, id.AddressState, overwrite)
	setIdentityField(&ls.Identity.AddressZip, id.AddressZip, overwrite)

	if overwrite {
		ls.Identity.sourceRank = rank
	}

	label := provenanceLabel(doc.Type)
	for _, existing := range ls.Identity.Provenance {
		if existing == label {
			return
		}
	}
	ls.Identity.Provenance = append(ls.Identity.Provenance, label)
	debug.Output(localDebug, "Identity provenance now: %s", ls.Identity.ProvenanceDisplay())
}

func setIdentityField(target *string, value string, overwrite bool) {
	if value == "" {
		return
	}
	if *target == "" || overwrite {
		*target = value
	}
}

func splitName(full string) (first, last string) {
	tokens := strings.Fields(full)
	if len(tokens) == 0 {
		return "", ""
	}
	first = tokens[0]
	if len(tokens) > 1 {
		last = tokens[len(tokens)-1]
	}
	return first, last
}

// Raw-text box-label patterns per canonical field. The amount group accepts
// currency noise; labels are form-specific wording so a 1099-INT "Box 1"
// cannot be mistaken for W-2 wages.
var rawTextPatterns = map[string][]*regexp.Regexp{
	"wages": {
		regexp.MustCompile(`(?i)wages,?\s*tips,?\s*(?:and\s+)?other\s+comp(?:ensation)?\.?\s*[:\s]*\$?\s*([0-9][0-9,]*(?:\.[0-9]{1,2})?)`),
		regexp.MustCompile(`(?i)\bwages\b\s*[:\s]*\$?\s*([0-9][0-9,]*(?:\.[0-9]{1,2})?)`),
	},
	"federalWithholding": {
		regexp.MustCompile(`(?i)federal\s+income\s+tax\s+withheld\s*[:\s]*\$?\s*([0-9][0-9,]*(?:\.[0-9]{1,2})?)`),
	},
	"interestIncome": {
		regexp.MustCompile(`(?i)interest\s+income\s*[:\s]*\$?\s*([0-9][0-9,]*(?:\.[0-9]{1,2})?)`),
	},
	"ordinaryDividends": {
		regexp.MustCompile(`(?i)(?:total\s+)?ordinary\s+dividends\s*[:\s]*\$?\s*([0-9][0-9,]*(?:\.[0-9]{1,2})?)`),
	},
	"qualifiedDividends": {
		regexp.MustCompile(`(?i)qualified\s+dividends\s*[:\s]*\$?\s*([0-9][0-9,]*(?:\.[0-9]{1,2})?)`),
	},
	"capitalGainDistributions": {
		regexp.MustCompile(`(?i)(?:total\s+)?capital\s+gain\s+distr(?:ibutions)?\.?\s*[:\s]*\$?\s*([0-9][0-9,]*(?:\.[0-9]{1,2})?)`),
	},
	"rents": {
		regexp.MustCompile(`(?i)\brents\b\s*[:\s]*\$?\s*([0-9][0-9,]*(?:\.[0-9]{1,2})?)`),
	},
	"royalties": {
		regexp.MustCompile(`(?i)\broyalties\b\s*[:\s]*\$?\s*([0-9][0-9,]*(?:\.[0-9]{1,2})?)`),
	},
	"otherIncome": {
		regexp.MustCompile(`(?i)other\s+income\s*[:\s]*\$?\s*([0-9][0-9,]*(?:\.[0-9]{1,2})?)`),
	},
	"nonemployeeCompensation": {
		regexp.MustCompile(`(?i)nonemployee\s+compensation\s*[:\s]*\$?\s*([0-9][0-9,]*(?:\.[0-9]{1,2})?)`),
	},
}

// scanRawText runs the box-label patterns for a field over the OCR blob
func scanRawText(rawText, field string) (decimal.Decimal, bool) {
	for _, re := range rawTextPatterns[field] {
		if m := re.FindStringSubmatch(rawText); m != nil {
			parsed := money.ParseAmount(m[1])
			if !parsed.IsZero() {
				return parsed, true
			}
		}
	}
	return decimal.Zero, false
}
