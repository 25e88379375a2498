package duplicate

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/taxdoc-core/internal/config"
	"github.com/taxdoc-core/internal/normalize"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func w2Doc(id, employer, ein, employee, ssn, wages string) normalize.Document {
	return normalize.Document{
		ID:   id,
		Type: normalize.DocW2,
		Issuer: normalize.Identity{
			Name:  employer,
			TaxID: normalize.NormalizeTaxID(ein),
		},
		Recipient: normalize.Identity{
			Name:  employee,
			TaxID: normalize.NormalizeTaxID(ssn),
		},
		Amounts: map[string]decimal.Decimal{
			"wages": dec(wages),
		},
	}
}

func TestDetectW2Duplicate(t *testing.T) {
	detector := NewDetector()

	newDoc := w2Doc("new", "Acme Corp", "12-3456789", "John Smith", "123-45-6789", "65000.00")

	tests := []struct {
		name            string
		candidate       normalize.Document
		expectDuplicate bool
		description     string
	}{
		{
			name:            "Identical Document",
			candidate:       w2Doc("prior-1", "Acme Corp", "12-3456789", "John Smith", "123-45-6789", "65000.00"),
			expectDuplicate: true,
			description:     "Same EIN, SSN, and wages must classify as duplicate",
		},
		{
			name:            "Wages Within One Percent",
			candidate:       w2Doc("prior-2", "Acme Corp", "12-3456789", "John Smith", "123-45-6789", "64500.00"),
			expectDuplicate: true,
			description:     "Re-scanned documents with OCR drift on the amount still match",
		},
		{
			name:            "Wages Fifty Percent Off",
			candidate:       w2Doc("prior-3", "Acme Corp", "12-3456789", "John Smith", "123-45-6789", "32500.00"),
			expectDuplicate: false,
			description:     "A large wage difference means a genuinely different W-2",
		},
		{
			name:            "Different Employer And Employee",
			candidate:       w2Doc("prior-4", "Globex LLC", "98-7654321", "Jane Doe", "987-65-4321", "65000.00"),
			expectDuplicate: false,
			description:     "Matching wages alone cannot make a duplicate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict := detector.Detect(false, newDoc, []normalize.Document{tt.candidate})

			if verdict.IsDuplicate != tt.expectDuplicate {
				t.Errorf("Expected duplicate=%v, got=%v (confidence %.4f)",
					tt.expectDuplicate, verdict.IsDuplicate, verdict.Confidence)
			}

			t.Logf("%s", tt.description)
			t.Logf("Confidence: %.4f, candidates: %d", verdict.Confidence, len(verdict.Candidates))
			if len(verdict.Candidates) > 0 {
				t.Logf("Best match fields: %v", verdict.Candidates[0].MatchedFields)
			}
		})
	}
}

func TestDetectConfiguredAmountTolerance(t *testing.T) {
	newDoc := w2Doc("new", "Acme Corp", "12-3456789", "John Smith", "123-45-6789", "65000.00")
	candidate := w2Doc("prior", "Acme Corp", "12-3456789", "John Smith", "123-45-6789", "52000.00")

	// Default tolerance: wages 20% apart do not credit the amount tier
	strict := NewDetector().Detect(false, newDoc, []normalize.Document{candidate})
	if strict.Criteria.AmountMatch {
		t.Errorf("Wages 20%% apart must not match at the default tolerance")
	}
	if strict.Confidence != 0.8 {
		t.Errorf("Expected identity-only confidence 0.8, got %.4f", strict.Confidence)
	}

	// A loosened tolerance flows through to amount scoring
	loose := config.DefaultThresholds()
	loose.AmountSimilarity = 0.50
	relaxed := NewDetectorWithConfig(loose).Detect(false, newDoc, []normalize.Document{candidate})
	if !relaxed.Criteria.AmountMatch {
		t.Errorf("Wages 20%% apart should match at a 0.50 tolerance")
	}
	if !relaxed.IsDuplicate {
		t.Errorf("Expected duplicate with the relaxed tolerance, confidence %.4f", relaxed.Confidence)
	}
}

func TestDetectSkipsOtherDocumentTypes(t *testing.T) {
	detector := NewDetector()

	newDoc := w2Doc("new", "Acme Corp", "12-3456789", "John Smith", "123-45-6789", "65000.00")

	other := normalize.Document{
		ID:        "prior-int",
		Type:      normalize.Doc1099INT,
		Issuer:    normalize.Identity{Name: "Acme Corp", TaxID: "123456789"},
		Recipient: normalize.Identity{Name: "John Smith", TaxID: "123456789"},
		Amounts:   map[string]decimal.Decimal{"interestIncome": dec("65000.00")},
	}

	verdict := detector.Detect(false, newDoc, []normalize.Document{other})

	if verdict.IsDuplicate {
		t.Errorf("Documents of a different type must never score as duplicates")
	}
	if len(verdict.Candidates) != 0 {
		t.Errorf("Cross-type candidates should be excluded, got %d", len(verdict.Candidates))
	}
}

func TestDetectCandidatesSortedDescending(t *testing.T) {
	detector := NewDetector()

	newDoc := w2Doc("new", "Acme Corp", "12-3456789", "John Smith", "123-45-6789", "65000.00")
	candidates := []normalize.Document{
		w2Doc("weak", "Other Co", "55-5555555", "John Smith", "123-45-6789", "10000.00"),
		w2Doc("strong", "Acme Corp", "12-3456789", "John Smith", "123-45-6789", "65000.00"),
	}

	verdict := detector.Detect(false, newDoc, candidates)

	if len(verdict.Candidates) != 2 {
		t.Fatalf("Expected 2 scored candidates, got %d", len(verdict.Candidates))
	}
	if verdict.Candidates[0].DocumentID != "strong" {
		t.Errorf("Expected 'strong' first, got %q", verdict.Candidates[0].DocumentID)
	}
	if verdict.Candidates[0].Score < verdict.Candidates[1].Score {
		t.Errorf("Candidates not sorted descending: %.4f then %.4f",
			verdict.Candidates[0].Score, verdict.Candidates[1].Score)
	}
}

func TestDetectPartialDocumentsNotPenalized(t *testing.T) {
	detector := NewDetector()

	// Neither side carries wages; only identity fields are comparable, and
	// the achievable-max normalization keeps the score on what is present.
	newDoc := w2Doc("new", "Acme Corp", "12-3456789", "John Smith", "123-45-6789", "0")
	newDoc.Amounts = map[string]decimal.Decimal{}
	candidate := w2Doc("prior", "Acme Corp", "12-3456789", "John Smith", "123-45-6789", "0")
	candidate.Amounts = map[string]decimal.Decimal{}

	verdict := detector.Detect(false, newDoc, []normalize.Document{candidate})

	if !verdict.IsDuplicate {
		t.Errorf("Identity-only duplicates should still classify, confidence %.4f", verdict.Confidence)
	}
	if verdict.Confidence != 1.0 {
		t.Errorf("Expected full score on mutually present fields, got %.4f", verdict.Confidence)
	}
}

func TestDetectCriteriaFlags(t *testing.T) {
	detector := NewDetector()

	newDoc := w2Doc("new", "Acme Corp", "12-3456789", "John Smith", "123-45-6789", "65000.00")
	candidate := w2Doc("prior", "Acme Corporation", "12-3456789", "Jon Smith", "123-45-6789", "65000.00")

	verdict := detector.Detect(false, newDoc, []normalize.Document{candidate})

	if !verdict.Criteria.DocumentTypeMatch {
		t.Errorf("Expected documentTypeMatch for a same-type candidate")
	}
	if !verdict.Criteria.IssuerMatch {
		t.Errorf("Expected issuerMatch on exact EIN")
	}
	if !verdict.Criteria.RecipientMatch {
		t.Errorf("Expected recipientMatch on exact SSN")
	}
	if !verdict.Criteria.AmountMatch {
		t.Errorf("Expected amountMatch on identical wages")
	}
}

func TestDetectNeverPanics(t *testing.T) {
	detector := NewDetector()

	// Degenerate documents: nil amount maps, empty identities
	newDoc := normalize.Document{Type: normalize.DocW2}
	candidates := []normalize.Document{
		{ID: "a", Type: normalize.DocW2},
		{ID: "b", Type: normalize.DocW2, Amounts: nil},
	}

	verdict := detector.Detect(false, newDoc, candidates)

	if verdict.IsDuplicate {
		t.Errorf("Nothing comparable should never classify as duplicate")
	}
	t.Logf("Degenerate inputs produced verdict: %+v", verdict)
}
