package duplicate

import (
	"sort"

	"github.com/taxdoc-core/internal/config"
	"github.com/taxdoc-core/internal/debug"
	"github.com/taxdoc-core/internal/normalize"
	"github.com/taxdoc-core/internal/similarity"
)

// Detector scores a newly normalized document against previously accepted
// documents of the same type and classifies the best match.
type Detector struct {
	thresholds *config.Thresholds
}

// NewDetector creates a detector with default thresholds
func NewDetector() *Detector {
	return &Detector{thresholds: config.DefaultThresholds()}
}

// NewDetectorWithConfig creates a detector with custom thresholds
func NewDetectorWithConfig(thresholds *config.Thresholds) *Detector {
	return &Detector{thresholds: thresholds}
}

// Detect computes a weighted similarity score per candidate and classifies
// the best one. A scoring bug must never block ingestion: any internal
// panic downgrades to a not-a-duplicate verdict.
func (d *Detector) Detect(localDebug bool, newDoc normalize.Document, candidates []normalize.Document) (verdict Verdict) {
	debug.Header(localDebug)
	defer debug.Footer(localDebug)

	defer func() {
		if r := recover(); r != nil {
			debug.Output(localDebug, "Scoring failure downgraded to non-duplicate: %v", r)
			verdict = Verdict{IsDuplicate: false}
		}
	}()

	weights := WeightsFor(newDoc.Type)

	scored := make([]Candidate, 0, len(candidates))
	flagsByID := make(map[string]CriteriaFlags, len(candidates))

	for _, candidate := range candidates {
		if candidate.Type != newDoc.Type {
			debug.Output(localDebug, "Skipping %s: type %s != %s", candidate.ID, candidate.Type, newDoc.Type)
			continue
		}

		score, matched, flags := d.scoreCandidate(localDebug, weights, newDoc, candidate)
		flags.DocumentTypeMatch = true
		flagsByID[candidate.ID] = flags

		scored = append(scored, Candidate{
			DocumentID:    candidate.ID,
			Score:         score,
			MatchedFields: matched,
		})
		debug.Output(localDebug, "Candidate %s scored: %.4f (matched: %v)", candidate.ID, score, matched)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	verdict = Verdict{Candidates: scored}
	if len(scored) == 0 {
		return verdict
	}

	best := scored[0]
	verdict.Confidence = best.Score
	verdict.Criteria = flagsByID[best.DocumentID]
	verdict.IsDuplicate = best.Score >= d.thresholds.DuplicateScore

	debug.Output(localDebug, "Best match %s: %.4f (duplicate=%v, threshold=%.2f)",
		best.DocumentID, best.Score, verdict.IsDuplicate, d.thresholds.DuplicateScore)

	return verdict
}

// scoreCandidate computes the weighted score for one candidate. The running
// score is normalized by the maximum achievable score over the fields
// actually present on both sides, so partial documents are not unfairly
// penalized.
func (d *Detector) scoreCandidate(localDebug bool, weights FieldWeights, newDoc, candidate normalize.Document) (float64, []string, CriteriaFlags) {
	var achieved, achievable float64
	var matched []string
	var flags CriteriaFlags

	// Issuer identity tier: name similarity and/or exact normalized id match
	issuerComparable := bothPresent(newDoc.Issuer.Name, candidate.Issuer.Name) ||
		bothPresent(newDoc.Issuer.TaxID, candidate.Issuer.TaxID)
	if issuerComparable {
		achievable += weights.Issuer
		nameHit := bothPresent(newDoc.Issuer.Name, candidate.Issuer.Name) &&
			similarity.StringSimilarityScored(newDoc.Issuer.Name, candidate.Issuer.Name, d.thresholds.NicknameScore) >= d.thresholds.IssuerNameSimilarity
		idHit := similarity.IDsEqual(newDoc.Issuer.TaxID, candidate.Issuer.TaxID)
		if nameHit || idHit {
			achieved += weights.Issuer
			matched = append(matched, "issuer")
			flags.IssuerMatch = true
			if nameHit {
				flags.NameMatch = true
			}
			debug.Output(localDebug, "Issuer tier hit (name=%v, id=%v): +%.2f", nameHit, idHit, weights.Issuer)
		}
	}

	// Recipient identity tier
	recipientComparable := bothPresent(newDoc.Recipient.Name, candidate.Recipient.Name) ||
		bothPresent(newDoc.Recipient.TaxID, candidate.Recipient.TaxID)
	if recipientComparable {
		achievable += weights.Recipient
		nameHit := bothPresent(newDoc.Recipient.Name, candidate.Recipient.Name) &&
			similarity.StringSimilarityScored(newDoc.Recipient.Name, candidate.Recipient.Name, d.thresholds.NicknameScore) >= d.thresholds.RecipientNameSimilarity
		idHit := similarity.IDsEqual(newDoc.Recipient.TaxID, candidate.Recipient.TaxID)
		if nameHit || idHit {
			achieved += weights.Recipient
			matched = append(matched, "recipient")
			flags.RecipientMatch = true
			if nameHit {
				flags.NameMatch = true
			}
			debug.Output(localDebug, "Recipient tier hit (name=%v, id=%v): +%.2f", nameHit, idHit, weights.Recipient)
		}
	}

	// Monetary fields, each counted independently
	for field, weight := range weights.Amounts {
		if !newDoc.HasAmount(field) || !candidate.HasAmount(field) {
			continue
		}
		achievable += weight
		if similarity.AmountSimilarityWithin(newDoc.Amount(field), candidate.Amount(field), d.thresholds.AmountSimilarity) {
			achieved += weight
			matched = append(matched, field)
			flags.AmountMatch = true
			debug.Output(localDebug, "Amount %s agrees: +%.2f", field, weight)
		}
	}

	if achievable == 0 {
		return 0.0, matched, flags
	}

	sort.Strings(matched)
	return achieved / achievable, matched, flags
}

func bothPresent(a, b string) bool {
	return a != "" && b != ""
}
