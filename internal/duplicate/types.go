package duplicate

import "github.com/taxdoc-core/internal/normalize"

// Candidate is one previously accepted document scored against the new one
type Candidate struct {
	DocumentID    string   `json:"documentId"`
	Score         float64  `json:"score"`
	MatchedFields []string `json:"matchedFieldNames"`
}

// CriteriaFlags records which match criteria the best candidate satisfied
type CriteriaFlags struct {
	DocumentTypeMatch bool `json:"documentTypeMatch"`
	IssuerMatch       bool `json:"issuerMatch"`
	RecipientMatch    bool `json:"recipientMatch"`
	AmountMatch       bool `json:"amountMatch"`
	NameMatch         bool `json:"nameMatch"`
}

// Verdict is the outcome of a duplicate check. Computed fresh per check and
// never persisted as authoritative state; callers decide accept/replace/reject.
type Verdict struct {
	IsDuplicate bool          `json:"isDuplicate"`
	Confidence  float64       `json:"confidence"`
	Candidates  []Candidate   `json:"candidates"` // sorted hi→lo
	Criteria    CriteriaFlags `json:"criteriaFlags"`
}

// FieldWeights defines the scoring weights for one document type. Issuer and
// recipient identity each carry roughly half the achievable score; each
// monetary field contributes a smaller independent share.
type FieldWeights struct {
	Issuer    float64
	Recipient float64
	Amounts   map[string]float64
}

// DefaultWeightsW2 returns the W-2 weight table
func DefaultWeightsW2() FieldWeights {
	return FieldWeights{
		Issuer:    0.50,
		Recipient: 0.50,
		Amounts: map[string]float64{
			"wages":               0.25,
			"federalWithholding":  0.05,
			"socialSecurityWages": 0.05,
			"medicareWages":       0.05,
		},
	}
}

// DefaultWeights1099INT returns the 1099-INT weight table
func DefaultWeights1099INT() FieldWeights {
	return FieldWeights{
		Issuer:    0.50,
		Recipient: 0.50,
		Amounts: map[string]float64{
			"interestIncome":     0.25,
			"federalWithholding": 0.05,
		},
	}
}

// DefaultWeights1099DIV returns the 1099-DIV weight table
func DefaultWeights1099DIV() FieldWeights {
	return FieldWeights{
		Issuer:    0.50,
		Recipient: 0.50,
		Amounts: map[string]float64{
			"ordinaryDividends":        0.15,
			"qualifiedDividends":       0.05,
			"capitalGainDistributions": 0.05,
			"federalWithholding":       0.05,
		},
	}
}

// DefaultWeights1099MISC returns the 1099-MISC weight table
func DefaultWeights1099MISC() FieldWeights {
	return FieldWeights{
		Issuer:    0.50,
		Recipient: 0.50,
		Amounts: map[string]float64{
			"rents":              0.10,
			"royalties":          0.08,
			"otherIncome":        0.08,
			"federalWithholding": 0.05,
		},
	}
}

// DefaultWeights1099NEC returns the 1099-NEC weight table
func DefaultWeights1099NEC() FieldWeights {
	return FieldWeights{
		Issuer:    0.50,
		Recipient: 0.50,
		Amounts: map[string]float64{
			"nonemployeeCompensation": 0.25,
			"federalWithholding":      0.05,
		},
	}
}

// DefaultWeightsGeneric returns the fallback weight table: identity tiers
// plus an equal small weight for every known monetary field
func DefaultWeightsGeneric() FieldWeights {
	amounts := make(map[string]float64)
	for _, f := range normalize.AmountFields(normalize.DocGeneric) {
		amounts[f] = 0.05
	}
	return FieldWeights{
		Issuer:    0.50,
		Recipient: 0.50,
		Amounts:   amounts,
	}
}

// WeightsFor returns the weight table for a document type
func WeightsFor(t normalize.DocumentType) FieldWeights {
	switch t {
	case normalize.DocW2:
		return DefaultWeightsW2()
	case normalize.Doc1099INT:
		return DefaultWeights1099INT()
	case normalize.Doc1099DIV:
		return DefaultWeights1099DIV()
	case normalize.Doc1099MISC:
		return DefaultWeights1099MISC()
	case normalize.Doc1099NEC:
		return DefaultWeights1099NEC()
	default:
		return DefaultWeightsGeneric()
	}
}
