package normalize

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/taxdoc-core/internal/money"
)

// DocumentType identifies the tax form a document was extracted from
type DocumentType string

const (
	DocW2       DocumentType = "W2"
	Doc1099INT  DocumentType = "1099-INT"
	Doc1099DIV  DocumentType = "1099-DIV"
	Doc1099MISC DocumentType = "1099-MISC"
	Doc1099NEC  DocumentType = "1099-NEC"
	DocGeneric  DocumentType = "GENERIC"
)

// Is1099 reports whether a document type is any 1099 variant
func (t DocumentType) Is1099() bool {
	switch t {
	case Doc1099INT, Doc1099DIV, Doc1099MISC, Doc1099NEC:
		return true
	}
	return false
}

// RawExtraction is the extraction service's output: an opaque field map plus
// optional full OCR text. Value shapes are not guaranteed consistent across
// runs; a single logical field may appear as "wages", "Box1", or {value: ...}.
type RawExtraction struct {
	Fields  map[string]interface{} `json:"fields"`
	RawText string                 `json:"rawText,omitempty"`
}

// Identity holds one party's identifying fields in normalized form
type Identity struct {
	Name          string `json:"name,omitempty"`
	TaxID         string `json:"taxId,omitempty"` // digits only
	AddressStreet string `json:"addressStreet,omitempty"`
	AddressCity   string `json:"addressCity,omitempty"`
	AddressState  string `json:"addressState,omitempty"`
	AddressZip    string `json:"addressZip,omitempty"`
}

// Document is a normalized tax document: typed amounts keyed by canonical
// field name, plus recipient and issuer identity. Created once per
// extraction, never mutated afterwards.
type Document struct {
	ID        string                     `json:"id,omitempty"`
	Type      DocumentType               `json:"documentType"`
	Recipient Identity                   `json:"identity"`
	Issuer    Identity                   `json:"issuer"`
	Amounts   map[string]decimal.Decimal `json:"amounts"`
	RawText   string                     `json:"-"`
}

// Amount returns the named amount, zero when absent
func (d Document) Amount(field string) decimal.Decimal {
	if v, ok := d.Amounts[field]; ok {
		return v
	}
	return decimal.Zero
}

// HasAmount reports whether the field was present on the document
func (d Document) HasAmount(field string) bool {
	_, ok := d.Amounts[field]
	return ok
}

// amountFields lists the canonical monetary fields carried by each type
var amountFields = map[DocumentType][]string{
	DocW2:       {"wages", "federalWithholding", "socialSecurityWages", "medicareWages"},
	Doc1099INT:  {"interestIncome", "federalWithholding"},
	Doc1099DIV:  {"ordinaryDividends", "qualifiedDividends", "capitalGainDistributions", "federalWithholding"},
	Doc1099MISC: {"rents", "royalties", "otherIncome", "federalWithholding"},
	Doc1099NEC:  {"nonemployeeCompensation", "federalWithholding"},
}

// AmountFields returns the canonical monetary fields for a document type.
// Unsupported types fall back to every known field, pass-through style.
func AmountFields(t DocumentType) []string {
	if fields, ok := amountFields[t]; ok {
		return fields
	}
	seen := map[string]bool{}
	var all []string
	for _, fields := range amountFields {
		for _, f := range fields {
			if !seen[f] {
				seen[f] = true
				all = append(all, f)
			}
		}
	}
	return all
}

// Normalize converts a raw extraction into a typed document. Malformed input
// never fails: unparseable amounts coerce to zero and unresolvable fields
// are simply absent.
func Normalize(raw RawExtraction, docType DocumentType) Document {
	if docType == "" {
		docType = DocGeneric
	}

	doc := Document{
		Type:    docType,
		Amounts: make(map[string]decimal.Decimal),
		RawText: raw.RawText,
	}

	for _, field := range AmountFields(docType) {
		if s, ok := lookupField(raw, docType, field); ok {
			doc.Amounts[field] = money.ParseAmount(s)
		}
	}

	doc.Recipient = normalizeIdentity(raw, docType, "recipientName", "recipientTaxID", "recipientAddress")
	doc.Issuer = normalizeIdentity(raw, docType, "issuerName", "issuerTaxID", "issuerAddress")

	return doc
}

func normalizeIdentity(raw RawExtraction, docType DocumentType, nameKey, idKey, addrKey string) Identity {
	id := Identity{}

	if name, ok := lookupField(raw, docType, nameKey); ok {
		id.Name = collapseWhitespace(name)
	}
	if taxID, ok := lookupField(raw, docType, idKey); ok {
		id.TaxID = NormalizeTaxID(taxID)
	}
	if addr, ok := lookupField(raw, docType, addrKey); ok {
		parsed := ParseAddress(addr)
		id.AddressStreet = parsed.Street
		id.AddressCity = parsed.City
		id.AddressState = parsed.State
		id.AddressZip = parsed.Zip
	}

	return id
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
