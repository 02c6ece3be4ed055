package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"github.com/impactlab/volunteer-matcher/internal/matching"
	"github.com/impactlab/volunteer-matcher/internal/observability"
	"github.com/impactlab/volunteer-matcher/internal/schemas"
	"github.com/impactlab/volunteer-matcher/internal/types"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Rank opportunities against a volunteer profile",
	Long:  "Deterministically scores and ranks opportunities from a JSON file against a volunteer profile, producing a RecommendationSet JSON sorted by overall score.",
	RunE:  runRecommend,
}

var (
	recommendProfile       string
	recommendOpportunities string
	recommendOutput        string
	recommendMinScore      float64
	recommendLimit         int
	recommendVerbose       bool
)

func init() {
	recommendCmd.Flags().StringVarP(&recommendProfile, "profile", "p", "", "Path to input UserProfile JSON file (required)")
	recommendCmd.Flags().StringVarP(&recommendOpportunities, "opportunities", "i", "", "Path to input opportunities JSON file (required)")
	recommendCmd.Flags().StringVarP(&recommendOutput, "out", "o", "", "Path to output RecommendationSet JSON file (required)")
	recommendCmd.Flags().Float64Var(&recommendMinScore, "min-score", matching.DefaultMinScore, "Minimum overall score to include")
	recommendCmd.Flags().IntVar(&recommendLimit, "limit", matching.DefaultLimit, "Maximum number of recommendations")
	recommendCmd.Flags().BoolVarP(&recommendVerbose, "verbose", "v", false, "Print profile and ranking summaries")

	if err := recommendCmd.MarkFlagRequired("profile"); err != nil {
		panic(fmt.Sprintf("failed to mark profile flag as required: %v", err))
	}
	if err := recommendCmd.MarkFlagRequired("opportunities"); err != nil {
		panic(fmt.Sprintf("failed to mark opportunities flag as required: %v", err))
	}
	if err := recommendCmd.MarkFlagRequired("out"); err != nil {
		panic(fmt.Sprintf("failed to mark out flag as required: %v", err))
	}

	rootCmd.AddCommand(recommendCmd)
}

func loadProfile(path string) (*types.UserProfile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile file %s: %w", path, err)
	}

	var profile types.UserProfile
	if err := json.Unmarshal(content, &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile JSON: %w", err)
	}

	if err := validator.New().Struct(&profile); err != nil {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}

	profile.Normalize()
	return &profile, nil
}

func loadOpportunities(path string) ([]types.OpportunityRecord, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read opportunities file %s: %w", path, err)
	}

	var records []types.OpportunityRecord
	if err := json.Unmarshal(content, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal opportunities JSON: %w", err)
	}

	return records, nil
}

func writeJSONArtifact(path string, v any) error {
	jsonOutput, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output to JSON: %w", err)
	}

	outputDir := filepath.Dir(path)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
		}
	}

	if err := os.WriteFile(path, jsonOutput, 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}
	return nil
}

// validateArtifact checks a written file against a schema when the schema
// can be located. Validation problems are warnings, not failures.
func validateArtifact(schemaFile, outputPath string) {
	schemaPath := schemas.ResolveSchemaPath(filepath.Join("schemas", schemaFile))
	if schemaPath == "" {
		return
	}
	if err := schemas.ValidateJSON(schemaPath, outputPath); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: Output validation failed: %v\n", err)
	}
}

func runRecommend(_ *cobra.Command, _ []string) error {
	profile, err := loadProfile(recommendProfile)
	if err != nil {
		return err
	}

	records, err := loadOpportunities(recommendOpportunities)
	if err != nil {
		return err
	}

	engine := matching.NewDefaultEngine()

	results, err := engine.Rank(profile, records, recommendMinScore, recommendLimit)
	if err != nil {
		return fmt.Errorf("failed to rank opportunities: %w", err)
	}

	set := types.RecommendationSet{
		Recommendations: results,
		Metadata: types.RecommendationMetadata{
			TotalFound:  len(results),
			MinScore:    recommendMinScore,
			GeneratedAt: time.Now().UTC(),
			Weights:     engine.Weights().Map(),
		},
	}

	if err := writeJSONArtifact(recommendOutput, set); err != nil {
		return err
	}

	validateArtifact("match_result.schema.json", recommendOutput)

	if recommendVerbose {
		printer := observability.NewPrinter(os.Stdout)
		printer.PrintUserProfile(profile)
		printer.PrintWeights(set.Metadata.Weights)
		printer.PrintRecommendations(&set)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Successfully ranked %d opportunities to %s\n", len(results), recommendOutput)

	return nil
}
