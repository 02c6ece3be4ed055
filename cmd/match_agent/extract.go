package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/impactlab/volunteer-matcher/internal/matching"
	"github.com/impactlab/volunteer-matcher/internal/observability"
	"github.com/impactlab/volunteer-matcher/internal/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract scoring features from one opportunity",
	Long:  "Derives the normalized feature view (skills, impact area, commitment, urgency, experience, team size) from a single opportunity JSON file.",
	RunE:  runExtract,
}

var (
	extractOpportunity string
	extractOutput      string
	extractVerbose     bool
)

func init() {
	extractCmd.Flags().StringVarP(&extractOpportunity, "opportunity", "i", "", "Path to input OpportunityRecord JSON file (required)")
	extractCmd.Flags().StringVarP(&extractOutput, "out", "o", "", "Path to output OpportunityFeatures JSON file (required)")
	extractCmd.Flags().BoolVarP(&extractVerbose, "verbose", "v", false, "Print the extracted features")

	if err := extractCmd.MarkFlagRequired("opportunity"); err != nil {
		panic(fmt.Sprintf("failed to mark opportunity flag as required: %v", err))
	}
	if err := extractCmd.MarkFlagRequired("out"); err != nil {
		panic(fmt.Sprintf("failed to mark out flag as required: %v", err))
	}

	rootCmd.AddCommand(extractCmd)
}

func runExtract(_ *cobra.Command, _ []string) error {
	content, err := os.ReadFile(extractOpportunity)
	if err != nil {
		return fmt.Errorf("failed to read opportunity file %s: %w", extractOpportunity, err)
	}

	var record types.OpportunityRecord
	if err := json.Unmarshal(content, &record); err != nil {
		return fmt.Errorf("failed to unmarshal opportunity JSON: %w", err)
	}
	if record.Title == "" {
		return fmt.Errorf("opportunity is missing a title")
	}

	features := matching.ExtractFeatures(record)

	if err := writeJSONArtifact(extractOutput, features); err != nil {
		return err
	}

	if extractVerbose {
		observability.NewPrinter(os.Stdout).PrintFeatures(&features)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Successfully extracted features to %s\n", extractOutput)

	return nil
}
