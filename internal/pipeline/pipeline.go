package pipeline

import (
	"github.com/google/uuid"

	"github.com/taxdoc-core/internal/config"
	"github.com/taxdoc-core/internal/duplicate"
	"github.com/taxdoc-core/internal/form"
	"github.com/taxdoc-core/internal/identity"
	"github.com/taxdoc-core/internal/normalize"
	"github.com/taxdoc-core/internal/tax"
)

// Processor runs the ingestion flow for one tax return: normalize, gate on
// duplicate detection and identity validation, fold, recompute. It holds no
// per-return state; every call operates on the caller-supplied snapshot of
// previously accepted documents.
type Processor struct {
	thresholds *config.Thresholds
	detector   *duplicate.Detector
	validator  *identity.Validator
}

// NewProcessor creates a processor with default thresholds
func NewProcessor() *Processor {
	return NewProcessorWithConfig(config.DefaultThresholds())
}

// NewProcessorWithConfig creates a processor with custom thresholds
func NewProcessorWithConfig(thresholds *config.Thresholds) *Processor {
	return &Processor{
		thresholds: thresholds,
		detector:   duplicate.NewDetectorWithConfig(thresholds),
		validator:  identity.NewValidatorWithConfig(thresholds),
	}
}

// CheckInput is one document submission to gate
type CheckInput struct {
	Raw      normalize.RawExtraction
	TypeHint normalize.DocumentType
	Profile  identity.Profile

	// Previously accepted documents of the same tax return
	Prior []normalize.Document
}

// CheckResult carries everything the caller needs to decide accept,
// replace, or reject
type CheckResult struct {
	Document       normalize.Document `json:"document"`
	Duplicate      duplicate.Verdict  `json:"duplicate"`
	Identity       identity.Result    `json:"identityCheck"`
	SafeToContinue bool               `json:"safeToContinue"`
}

// Check normalizes a raw extraction and runs both ingestion gates. It never
// blocks ingestion itself: the verdicts are advisory and the caller decides.
func (p *Processor) Check(in CheckInput) CheckResult {
	doc := normalize.Normalize(in.Raw, in.TypeHint)
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}

	verdict := p.detector.Detect(false, doc, in.Prior)

	idResult := p.validator.Validate(in.Profile, identity.Extracted{
		PrimaryName: doc.Recipient.Name,
	})

	return CheckResult{
		Document:       doc,
		Duplicate:      verdict,
		Identity:       idResult,
		SafeToContinue: !verdict.IsDuplicate && idResult.IsValid,
	}
}

// Accept folds an accepted document into the line set and recomputes the
// derived lines. The returned set is internally consistent at the moment it
// is returned.
func (p *Processor) Accept(ls *form.LineSet, doc normalize.Document) *form.LineSet {
	return tax.Recompute(form.Fold(ls, doc))
}

// Rebuild reconstructs the line set by replaying the full accepted-document
// list from empty, then recomputing. The accepted list is the single source
// of truth; no separate income-entry accumulation exists to double count.
func (p *Processor) Rebuild(docs []normalize.Document, filingStatus string) *form.LineSet {
	ls := form.Rebuild(docs)
	ls.FilingStatus = string(tax.ParseFilingStatus(filingStatus))
	return tax.Recompute(ls)
}
