package normalize

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestUnwrap(t *testing.T) {
	tests := []struct {
		name        string
		input       interface{}
		expected    string
		expectOK    bool
		description string
	}{
		{
			name:        "Plain String",
			input:       "65000.00",
			expected:    "65000.00",
			expectOK:    true,
			description: "Strings pass through untouched",
		},
		{
			name:        "Number",
			input:       float64(1234.5),
			expected:    "1234.50",
			expectOK:    true,
			description: "JSON numbers render as strings",
		},
		{
			name:        "Whole Number",
			input:       float64(65000),
			expected:    "65000",
			expectOK:    true,
			description: "Whole values drop the trailing cents",
		},
		{
			name:        "Value Wrapper",
			input:       map[string]interface{}{"value": "9500"},
			expected:    "9500",
			expectOK:    true,
			description: "The value wrapper shape unwraps",
		},
		{
			name:        "Content Wrapper",
			input:       map[string]interface{}{"content": "9500"},
			expected:    "9500",
			expectOK:    true,
			description: "The content wrapper shape unwraps",
		},
		{
			name:        "Nested Wrappers",
			input:       map[string]interface{}{"value": map[string]interface{}{"content": float64(42)}},
			expected:    "42",
			expectOK:    true,
			description: "Wrappers unwrap recursively",
		},
		{
			name:        "Unknown Object",
			input:       map[string]interface{}{"other": "x"},
			expected:    "",
			expectOK:    false,
			description: "Objects without a known wrapper key are unresolvable",
		},
		{
			name:        "Nil",
			input:       nil,
			expected:    "",
			expectOK:    false,
			description: "Nil is absent, not an error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Unwrap(tt.input)
			if ok != tt.expectOK || got != tt.expected {
				t.Errorf("Unwrap(%v) = (%q, %v), expected (%q, %v)",
					tt.input, got, ok, tt.expected, tt.expectOK)
			}
			t.Logf("%s", tt.description)
		})
	}
}

func TestNormalizeTaxID(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"123-45-6789", "123456789"},
		{"123456789", "123456789"},
		{"12-3456789", "123456789"},
		{"SSN: 123 45 6789", "123456789"},
		{"", ""},
		{"no digits here", ""},
	}

	for _, tt := range tests {
		if got := NormalizeTaxID(tt.input); got != tt.expected {
			t.Errorf("NormalizeTaxID(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}

	// Normalization is idempotent on already-canonical identifiers
	canonical := NormalizeTaxID("123-45-6789")
	if NormalizeTaxID(canonical) != canonical {
		t.Errorf("NormalizeTaxID is not idempotent on %q", canonical)
	}
}

func TestFormatTaxID(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"123456789", "123-45-6789"},
		{"123-45-6789", "123-45-6789"},
		{"12345678", "12345678"},   // not nine digits: untouched
		{"1234567890", "1234567890"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := FormatTaxID(tt.input); got != tt.expected {
			t.Errorf("FormatTaxID(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestParseAddress(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    Address
		description string
	}{
		{
			name:  "Comma Delimited",
			input: "123 Main St, Springfield, IL 62704",
			expected: Address{
				Street: "123 Main St", City: "Springfield", State: "IL", Zip: "62704",
			},
			description: "Shape 1: street, city, STATE ZIP",
		},
		{
			name:  "Comma Delimited With Plus Four",
			input: "123 Main St, Springfield, IL 62704-1234",
			expected: Address{
				Street: "123 Main St", City: "Springfield", State: "IL", Zip: "62704-1234",
			},
			description: "ZIP+4 suffix is kept",
		},
		{
			name:  "Comma Delimited Multi Segment Street",
			input: "Apt 4, 123 Main St, Springfield, IL 62704",
			expected: Address{
				Street: "Apt 4, 123 Main St", City: "Springfield", State: "IL", Zip: "62704",
			},
			description: "Extra leading segments stay on the street",
		},
		{
			name:  "Space Delimited",
			input: "123 Main St Springfield IL 62704",
			expected: Address{
				Street: "123 Main St", City: "Springfield", State: "IL", Zip: "62704",
			},
			description: "Shape 2: street city STATE ZIP with no commas",
		},
		{
			name:  "Fallback Trailing State Zip",
			input: "123 Main St Springfield, IL 62704",
			expected: Address{
				Street: "123 Main St", City: "Springfield", State: "IL", Zip: "62704",
			},
			description: "Shape 3: trailing STATE ZIP with mixed punctuation",
		},
		{
			name:        "No Shape Matches",
			input:       "somewhere on the prairie",
			expected:    Address{Street: "somewhere on the prairie"},
			description: "Unparseable input becomes the street, never an error",
		},
		{
			name:        "Empty",
			input:       "",
			expected:    Address{},
			description: "Empty input is an empty address",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseAddress(tt.input)
			if got != tt.expected {
				t.Errorf("ParseAddress(%q) = %+v, expected %+v", tt.input, got, tt.expected)
			}
			t.Logf("%s: %q", tt.description, tt.input)
		})
	}
}

func TestNormalizeW2(t *testing.T) {
	raw := RawExtraction{
		Fields: map[string]interface{}{
			"wages":             "$65,000.00",
			"Box 2":             map[string]interface{}{"value": "9500.00"},
			"employeeName":      "John  Smith",
			"employeeSSN":       "123-45-6789",
			"employerName":      "Acme Corp",
			"employerEIN":       "12-3456789",
			"employeeAddress":   "123 Main St, Springfield, IL 62704",
			"unrelatedGarbage":  "???",
		},
	}

	doc := Normalize(raw, DocW2)

	if doc.Type != DocW2 {
		t.Fatalf("Expected type W2, got %s", doc.Type)
	}

	wages, _ := decimal.NewFromString("65000")
	if !doc.Amount("wages").Equal(wages) {
		t.Errorf("Expected wages 65000, got %s", doc.Amount("wages"))
	}

	withheld, _ := decimal.NewFromString("9500")
	if !doc.Amount("federalWithholding").Equal(withheld) {
		t.Errorf("Expected withholding 9500 via Box 2 wrapper, got %s", doc.Amount("federalWithholding"))
	}

	if doc.Recipient.Name != "John Smith" {
		t.Errorf("Expected collapsed name 'John Smith', got %q", doc.Recipient.Name)
	}
	if doc.Recipient.TaxID != "123456789" {
		t.Errorf("Expected digits-only SSN, got %q", doc.Recipient.TaxID)
	}
	if doc.Issuer.TaxID != "123456789" {
		t.Errorf("Expected digits-only EIN, got %q", doc.Issuer.TaxID)
	}
	if doc.Recipient.AddressCity != "Springfield" || doc.Recipient.AddressState != "IL" {
		t.Errorf("Address parsing failed: %+v", doc.Recipient)
	}

	t.Logf("Normalized document: %+v", doc)
}

func TestNormalizeBoxMeaningPerType(t *testing.T) {
	// Box 1 is wages on a W-2 but interest income on a 1099-INT
	raw := RawExtraction{
		Fields: map[string]interface{}{"box1": "250.00"},
	}

	w2 := Normalize(raw, DocW2)
	if !w2.HasAmount("wages") {
		t.Errorf("W-2 box 1 should map to wages")
	}

	int1099 := Normalize(raw, Doc1099INT)
	if !int1099.HasAmount("interestIncome") {
		t.Errorf("1099-INT box 1 should map to interest income")
	}
	if int1099.HasAmount("wages") {
		t.Errorf("1099-INT box 1 must not read as wages")
	}
}

func TestNormalizeMalformedNeverPanics(t *testing.T) {
	inputs := []RawExtraction{
		{},
		{Fields: map[string]interface{}{}},
		{Fields: map[string]interface{}{"wages": nil}},
		{Fields: map[string]interface{}{"wages": map[string]interface{}{"weird": []int{1}}}},
		{Fields: map[string]interface{}{"wages": "not a number", "employeeAddress": ",,,,"}},
	}

	for i, raw := range inputs {
		doc := Normalize(raw, DocW2)
		t.Logf("Input %d normalized without panic: amounts=%v", i, doc.Amounts)
	}
}

func TestNormalizeUnknownTypeFallsBackToGeneric(t *testing.T) {
	raw := RawExtraction{
		Fields: map[string]interface{}{"interestIncome": "100.00", "wages": "50.00"},
	}

	doc := Normalize(raw, DocumentType("SOMETHING-NEW"))
	if !doc.HasAmount("interestIncome") || !doc.HasAmount("wages") {
		t.Errorf("Generic pass-through should pick up every recognizable field, got %v", doc.Amounts)
	}
}
