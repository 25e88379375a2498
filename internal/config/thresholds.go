package config

// Thresholds consolidates every similarity and confidence constant used by
// the duplicate detector and the identity validator. Callers pass this object
// explicitly; there are no module-level mutable defaults.
type Thresholds struct {
	// Duplicate detection
	DuplicateScore          float64 // best candidate >= this is classified a duplicate
	IssuerNameSimilarity    float64 // issuer name similarity needed to count the issuer tier
	RecipientNameSimilarity float64 // recipient name similarity needed to count the recipient tier
	AmountSimilarity        float64 // relative magnitude floor for two amounts to agree

	// Identity validation
	MismatchFloor   float64 // name similarity below this is recorded as a mismatch
	MediumSeverity  float64 // mismatch similarity below this is medium
	HighSeverity    float64 // mismatch similarity below this is high
	SuggestionFloor float64 // mismatch similarity above this emits a suggestion

	// Similarity kernel
	NicknameScore float64 // score returned for a curated nickname pair
}

// DefaultThresholds returns the recommended thresholds
func DefaultThresholds() *Thresholds {
	return &Thresholds{
		DuplicateScore:          0.85,
		IssuerNameSimilarity:    0.85,
		RecipientNameSimilarity: 0.80,
		AmountSimilarity:        0.95,
		MismatchFloor:           0.80,
		MediumSeverity:          0.70,
		HighSeverity:            0.50,
		SuggestionFloor:         0.50,
		NicknameScore:           0.90,
	}
}

// ThresholdsFromEnv returns defaults with any environment overrides applied
func ThresholdsFromEnv() *Thresholds {
	t := DefaultThresholds()
	t.DuplicateScore = GetEnvFloat("TAXDOC_DUPLICATE_SCORE", t.DuplicateScore)
	t.IssuerNameSimilarity = GetEnvFloat("TAXDOC_ISSUER_NAME_SIMILARITY", t.IssuerNameSimilarity)
	t.RecipientNameSimilarity = GetEnvFloat("TAXDOC_RECIPIENT_NAME_SIMILARITY", t.RecipientNameSimilarity)
	t.AmountSimilarity = GetEnvFloat("TAXDOC_AMOUNT_SIMILARITY", t.AmountSimilarity)
	t.MismatchFloor = GetEnvFloat("TAXDOC_MISMATCH_FLOOR", t.MismatchFloor)
	t.MediumSeverity = GetEnvFloat("TAXDOC_MEDIUM_SEVERITY", t.MediumSeverity)
	t.HighSeverity = GetEnvFloat("TAXDOC_HIGH_SEVERITY", t.HighSeverity)
	t.SuggestionFloor = GetEnvFloat("TAXDOC_SUGGESTION_FLOOR", t.SuggestionFloor)
	t.NicknameScore = GetEnvFloat("TAXDOC_NICKNAME_SCORE", t.NicknameScore)
	return t
}
