package form

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Form 1040 line identifiers used by the mapper and the computation engine
const (
	LineWages              = "line1"
	LineTaxableInterest    = "line2b"
	LineQualifiedDividends = "line3a"
	LineOrdinaryDividends  = "line3b"
	LineIRADistributions   = "line4b"
	LinePensions           = "line5b"
	LineSocialSecurity     = "line6b"
	LineCapitalGain        = "line7"
	LineOtherIncome        = "line8"
	LineTotalIncome        = "line9"
	LineAdjustments        = "line10"
	LineAGI                = "line11"
	LineDeduction          = "line12"
	LineQBIDeduction       = "line13"
	LineTaxableIncome      = "line15"
	LineTax                = "line16"
	LineAdditionalTax      = "line17"
	LineTotalTax           = "line24"
	LineOtherTaxes         = "line23"
	LineWithholdingW2      = "line25a"
	LineWithholding1099    = "line25b"
	LineWithholdingOther   = "line25c"
	LineWithholdingTotal   = "line25d"
	LineTotalPayments      = "line32"
	LineRefund             = "line33"
	LineAmountOwed         = "line37"
)

// Record is the identity block of a tax return, with provenance tracking
type Record struct {
	FirstName     string   `json:"firstName,omitempty"`
	LastName      string   `json:"lastName,omitempty"`
	TaxID         string   `json:"taxId,omitempty"`
	AddressStreet string   `json:"addressStreet,omitempty"`
	AddressCity   string   `json:"addressCity,omitempty"`
	AddressState  string   `json:"addressState,omitempty"`
	AddressZip    string   `json:"addressZip,omitempty"`
	Provenance    []string `json:"provenance,omitempty"` // ordered set of contributing doc types

	// authority rank of the source that last wrote identity fields
	sourceRank int
}

// ProvenanceDisplay joins the contributing document types for display,
// e.g. "W2, 1099"
func (r Record) ProvenanceDisplay() string {
	return strings.Join(r.Provenance, ", ")
}

// LineSet is the accumulating canonical tax-return record: a sparse map of
// line identifier to amount plus identity. Mutated only by the Form Mapper
// (folding one document at a time) and the Computation Engine (derived
// lines). Rebuildable at any time by replaying the accepted-document list.
type LineSet struct {
	Lines              map[string]decimal.Decimal `json:"lines"`
	Identity           Record                     `json:"identity"`
	FilingStatus       string                     `json:"filingStatus,omitempty"`
	ItemizedDeductions bool                       `json:"itemizedDeductions,omitempty"`
}

// NewLineSet creates an empty line set
func NewLineSet() *LineSet {
	return &LineSet{Lines: make(map[string]decimal.Decimal)}
}

// Get returns a line amount, zero when unset
func (ls *LineSet) Get(line string) decimal.Decimal {
	if v, ok := ls.Lines[line]; ok {
		return v
	}
	return decimal.Zero
}

// Set replaces a line amount
func (ls *LineSet) Set(line string, amount decimal.Decimal) {
	ls.Lines[line] = amount
}

// Add accumulates onto a line. Monetary lines are never overwritten by the
// mapper, only added to.
func (ls *LineSet) Add(line string, amount decimal.Decimal) {
	ls.Lines[line] = ls.Get(line).Add(amount)
}

// Clone returns an independent copy
func (ls *LineSet) Clone() *LineSet {
	out := &LineSet{
		Lines:              make(map[string]decimal.Decimal, len(ls.Lines)),
		Identity:           ls.Identity,
		FilingStatus:       ls.FilingStatus,
		ItemizedDeductions: ls.ItemizedDeductions,
	}
	for k, v := range ls.Lines {
		out.Lines[k] = v
	}
	out.Identity.Provenance = append([]string(nil), ls.Identity.Provenance...)
	return out
}

// LineIDs returns the populated line identifiers in stable order
func (ls *LineSet) LineIDs() []string {
	ids := make([]string, 0, len(ls.Lines))
	for id := range ls.Lines {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return lineSortKey(ids[i]) < lineSortKey(ids[j]) })
	return ids
}

// lineSortKey orders "line2b" after "line1" and before "line10"
func lineSortKey(id string) string {
	digits := ""
	suffix := ""
	for _, r := range strings.TrimPrefix(id, "line") {
		if r >= '0' && r <= '9' {
			digits += string(r)
		} else {
			suffix += string(r)
		}
	}
	for len(digits) < 3 {
		digits = "0" + digits
	}
	return digits + suffix
}
