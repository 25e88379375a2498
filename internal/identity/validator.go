package identity

import (
	"fmt"
	"strings"

	"github.com/taxdoc-core/internal/config"
	"github.com/taxdoc-core/internal/similarity"
)

// Severity grades how far a document name strays from the on-file profile
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Profile is the taxpayer's on-file identity
type Profile struct {
	FirstName       string
	LastName        string
	SpouseFirstName string
	SpouseLastName  string
}

// Extracted holds the names recovered from a document
type Extracted struct {
	PrimaryName string
	SpouseName  string
}

// Mismatch is one field where the document disagrees with the profile
type Mismatch struct {
	Field         string   `json:"field"`
	ProfileValue  string   `json:"profileValue"`
	DocumentValue string   `json:"documentValue"`
	Severity      Severity `json:"severity"`
	Similarity    float64  `json:"similarity"`
}

// Suggestion proposes adopting the document's value for a mismatched field
type Suggestion struct {
	Field    string `json:"field"`
	Proposed string `json:"proposed"`
}

// Result is the outcome of identity validation, consumed once by the caller
// to decide whether to block ingestion
type Result struct {
	IsValid     bool         `json:"isValid"`
	Confidence  float64      `json:"confidence"`
	Mismatches  []Mismatch   `json:"mismatches"`
	Suggestions []Suggestion `json:"suggestions"`
}

// Validator compares profile names against document-recovered names
type Validator struct {
	thresholds *config.Thresholds
}

// NewValidator creates a validator with default thresholds
func NewValidator() *Validator {
	return &Validator{thresholds: config.DefaultThresholds()}
}

// NewValidatorWithConfig creates a validator with custom thresholds
func NewValidatorWithConfig(thresholds *config.Thresholds) *Validator {
	return &Validator{thresholds: thresholds}
}

// Validate compares first and last names independently for the primary
// filer and, when both sides carry one, the spouse. IsValid is true iff
// every recorded mismatch is low severity.
func (v *Validator) Validate(profile Profile, extracted Extracted) Result {
	result := Result{IsValid: true, Confidence: 1.0}

	if extracted.PrimaryName != "" {
		first, last := SplitName(extracted.PrimaryName)
		v.compareField(&result, "firstName", profile.FirstName, first)
		v.compareField(&result, "lastName", profile.LastName, last)
	}

	if extracted.SpouseName != "" && (profile.SpouseFirstName != "" || profile.SpouseLastName != "") {
		first, last := SplitName(extracted.SpouseName)
		v.compareField(&result, "spouseFirstName", profile.SpouseFirstName, first)
		v.compareField(&result, "spouseLastName", profile.SpouseLastName, last)
	}

	result.Confidence = v.overallConfidence(result.Mismatches)

	for _, m := range result.Mismatches {
		if m.Severity != SeverityLow {
			result.IsValid = false
			break
		}
	}

	return result
}

// SplitName splits a full name into first = first token, last = last token.
// Single-token names have an empty last name.
func SplitName(full string) (first, last string) {
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

func (v *Validator) compareField(result *Result, field, profileValue, documentValue string) {
	// A side the extractor failed to recover is absent, not wrong
	if profileValue == "" || documentValue == "" {
		return
	}

	sim := similarity.StringSimilarityScored(profileValue, documentValue, v.thresholds.NicknameScore)
	if sim >= v.thresholds.MismatchFloor {
		return
	}

	mismatch := Mismatch{
		Field:         field,
		ProfileValue:  profileValue,
		DocumentValue: documentValue,
		Severity:      v.severityFor(sim),
		Similarity:    sim,
	}
	result.Mismatches = append(result.Mismatches, mismatch)

	if sim > v.thresholds.SuggestionFloor {
		result.Suggestions = append(result.Suggestions, Suggestion{
			Field:    field,
			Proposed: documentValue,
		})
	}
}

func (v *Validator) severityFor(sim float64) Severity {
	switch {
	case sim < v.thresholds.HighSeverity:
		return SeverityHigh
	case sim < v.thresholds.MediumSeverity:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// overallConfidence applies the tiered confidence formula: high mismatches
// dominate, then medium, then any mismatch at all.
func (v *Validator) overallConfidence(mismatches []Mismatch) float64 {
	var highCount, mediumCount int
	for _, m := range mismatches {
		switch m.Severity {
		case SeverityHigh:
			highCount++
		case SeverityMedium:
			mediumCount++
		}
	}

	switch {
	case highCount > 0:
		return maxFloat(0.1, 1.0-0.4*float64(highCount)-0.2*float64(mediumCount))
	case mediumCount > 0:
		return maxFloat(0.6, 1.0-0.2*float64(mediumCount))
	case len(mismatches) > 0:
		return maxFloat(0.8, 1.0-0.1*float64(len(mismatches)))
	default:
		return 1.0
	}
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// String renders a mismatch for logs and review output
func (m Mismatch) String() string {
	return fmt.Sprintf("%s: profile '%s' vs document '%s' (%.2f, %s)",
		m.Field, m.ProfileValue, m.DocumentValue, m.Similarity, m.Severity)
}
