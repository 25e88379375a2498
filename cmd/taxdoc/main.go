package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/taxdoc-core/internal/config"
	"github.com/taxdoc-core/internal/duplicate"
	"github.com/taxdoc-core/internal/form"
	"github.com/taxdoc-core/internal/identity"
	"github.com/taxdoc-core/internal/money"
	"github.com/taxdoc-core/internal/normalize"
	"github.com/taxdoc-core/internal/pipeline"
)

// extractionFile is the on-disk shape of one extraction-service result
type extractionFile struct {
	DocumentType string                 `json:"documentType"`
	Fields       map[string]interface{} `json:"fields"`
	RawText      string                 `json:"rawText,omitempty"`
}

func main() {
	config.LoadEnv()

	rootCmd := &cobra.Command{
		Use:   "taxdoc",
		Short: "Tax document ingestion pipeline",
		Long:  `Normalizes extracted tax documents, checks duplicates and identity, and folds accepted documents into a Form 1040 line set`,
	}

	rootCmd.AddCommand(createNormalizeCmd())
	rootCmd.AddCommand(createCheckDuplicateCmd())
	rootCmd.AddCommand(createValidateIdentityCmd())
	rootCmd.AddCommand(createComputeCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// loadDocument reads an extraction file and normalizes it
func loadDocument(path string) (normalize.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return normalize.Document{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var file extractionFile
	if err := json.Unmarshal(data, &file); err != nil {
		return normalize.Document{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	doc := normalize.Normalize(normalize.RawExtraction{
		Fields:  file.Fields,
		RawText: file.RawText,
	}, normalize.DocumentType(file.DocumentType))
	doc.ID = path

	return doc, nil
}

func createNormalizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize [extraction.json]",
		Short: "Normalize one extraction result",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doc, err := loadDocument(args[0])
			if err != nil {
				log.Fatalf("Normalization failed: %v", err)
			}

			fmt.Printf("\n=== Normalized Document ===\n")
			fmt.Printf("Type: %s\n", doc.Type)
			fmt.Printf("Recipient: %s (tax id: %s)\n", doc.Recipient.Name, normalize.FormatTaxID(doc.Recipient.TaxID))
			fmt.Printf("Issuer: %s (tax id: %s)\n", doc.Issuer.Name, normalize.FormatTaxID(doc.Issuer.TaxID))
			if doc.Recipient.AddressStreet != "" {
				fmt.Printf("Address: %s, %s, %s %s\n",
					doc.Recipient.AddressStreet, doc.Recipient.AddressCity,
					doc.Recipient.AddressState, doc.Recipient.AddressZip)
			}

			fmt.Printf("\nField                     | Amount\n")
			fmt.Printf("--------------------------|------------\n")
			for _, field := range normalize.AmountFields(doc.Type) {
				if doc.HasAmount(field) {
					fmt.Printf("%-25s | %12s\n", field, money.Format(doc.Amount(field)))
				}
			}
		},
	}
}

func createCheckDuplicateCmd() *cobra.Command {
	var trace bool

	cmd := &cobra.Command{
		Use:   "check-duplicate [new.json] [accepted.json...]",
		Short: "Score a new document against previously accepted ones",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			newDoc, err := loadDocument(args[0])
			if err != nil {
				log.Fatalf("Failed to load new document: %v", err)
			}

			var prior []normalize.Document
			for _, path := range args[1:] {
				doc, err := loadDocument(path)
				if err != nil {
					log.Fatalf("Failed to load accepted document: %v", err)
				}
				prior = append(prior, doc)
			}

			detector := duplicate.NewDetectorWithConfig(config.ThresholdsFromEnv())
			verdict := detector.Detect(trace, newDoc, prior)
			fmt.Printf("\n=== Duplicate Check Results ===\n")
			fmt.Printf("Duplicate: %v\n", verdict.IsDuplicate)
			fmt.Printf("Confidence: %.4f\n", verdict.Confidence)
			fmt.Printf("Criteria: type=%v issuer=%v recipient=%v amount=%v name=%v\n",
				verdict.Criteria.DocumentTypeMatch, verdict.Criteria.IssuerMatch,
				verdict.Criteria.RecipientMatch, verdict.Criteria.AmountMatch,
				verdict.Criteria.NameMatch)

			if len(verdict.Candidates) > 0 {
				fmt.Printf("\nCandidate                      | Score  | Matched Fields\n")
				fmt.Printf("-------------------------------|--------|---------------\n")
				for _, c := range verdict.Candidates {
					fmt.Printf("%-30s | %.4f | %v\n", c.DocumentID, c.Score, c.MatchedFields)
				}
			}
		},
	}

	cmd.Flags().BoolVar(&trace, "trace", false, "Enable scoring trace output")

	return cmd
}

func createValidateIdentityCmd() *cobra.Command {
	var firstName, lastName, spouseFirst, spouseLast string

	cmd := &cobra.Command{
		Use:   "validate-identity [extraction.json]",
		Short: "Compare the on-file profile against document names",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doc, err := loadDocument(args[0])
			if err != nil {
				log.Fatalf("Failed to load document: %v", err)
			}

			validator := identity.NewValidatorWithConfig(config.ThresholdsFromEnv())
			result := validator.Validate(identity.Profile{
				FirstName:       firstName,
				LastName:        lastName,
				SpouseFirstName: spouseFirst,
				SpouseLastName:  spouseLast,
			}, identity.Extracted{PrimaryName: doc.Recipient.Name})

			fmt.Printf("\n=== Identity Validation Results ===\n")
			fmt.Printf("Valid: %v\n", result.IsValid)
			fmt.Printf("Confidence: %.2f\n", result.Confidence)

			for _, m := range result.Mismatches {
				fmt.Printf("Mismatch: %s\n", m.String())
			}
			for _, s := range result.Suggestions {
				fmt.Printf("Suggestion: use '%s' for %s\n", s.Proposed, s.Field)
			}
		},
	}

	cmd.Flags().StringVar(&firstName, "first-name", "", "Profile first name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "Profile last name")
	cmd.Flags().StringVar(&spouseFirst, "spouse-first-name", "", "Profile spouse first name")
	cmd.Flags().StringVar(&spouseLast, "spouse-last-name", "", "Profile spouse last name")

	return cmd
}

func createComputeCmd() *cobra.Command {
	var filingStatus string

	cmd := &cobra.Command{
		Use:   "compute [accepted.json...]",
		Short: "Fold accepted documents and compute the return",
		Long:  `Replays the accepted documents into an empty line set and recomputes every derived line`,
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			var docs []normalize.Document
			for _, path := range args {
				doc, err := loadDocument(path)
				if err != nil {
					log.Fatalf("Failed to load document: %v", err)
				}
				docs = append(docs, doc)
			}

			processor := pipeline.NewProcessorWithConfig(config.ThresholdsFromEnv())
			ls := processor.Rebuild(docs, filingStatus)

			fmt.Printf("\n=== Computed Return (%s) ===\n", ls.FilingStatus)
			if ls.Identity.FirstName != "" || ls.Identity.LastName != "" {
				fmt.Printf("Taxpayer: %s %s (%s)\n", ls.Identity.FirstName, ls.Identity.LastName,
					normalize.FormatTaxID(ls.Identity.TaxID))
				fmt.Printf("Identity sources: %s\n", ls.Identity.ProvenanceDisplay())
			}

			fmt.Printf("\nLine    | Amount\n")
			fmt.Printf("--------|--------------\n")
			for _, id := range ls.LineIDs() {
				fmt.Printf("%-7s | %14s\n", id, money.Format(ls.Get(id)))
			}

			refund := ls.Get(form.LineRefund)
			owed := ls.Get(form.LineAmountOwed)
			if refund.IsPositive() {
				fmt.Printf("\nRefund: %s\n", money.Format(refund))
			} else {
				fmt.Printf("\nAmount owed: %s\n", money.Format(owed))
			}
		},
	}

	cmd.Flags().StringVar(&filingStatus, "filing-status", "single", "Filing status (single, married_joint, married_separate, head_of_household)")

	return cmd
}
