package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/impactlab/volunteer-matcher/internal/store"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Generate demo opportunity data",
	Long:  "Generates the canonical fixture listings plus a deterministic batch of fake ones, writing them to a JSON file usable by the recommend command.",
	RunE:  runSeed,
}

var (
	seedCount  int
	seedValue  uint64
	seedOutput string
)

func init() {
	seedCmd.Flags().IntVarP(&seedCount, "count", "n", 20, "Number of generated listings (fixtures are always included)")
	seedCmd.Flags().Uint64Var(&seedValue, "seed", 1, "Deterministic seed for generated data")
	seedCmd.Flags().StringVarP(&seedOutput, "out", "o", "", "Path to output opportunities JSON file (required)")

	if err := seedCmd.MarkFlagRequired("out"); err != nil {
		panic(fmt.Sprintf("failed to mark out flag as required: %v", err))
	}

	rootCmd.AddCommand(seedCmd)
}

func runSeed(_ *cobra.Command, _ []string) error {
	if seedCount < 0 {
		return fmt.Errorf("count must be non-negative")
	}

	ctx := context.Background()
	mem := store.NewMemoryStore()
	if err := mem.SeedDemo(ctx, seedCount, seedValue); err != nil {
		return fmt.Errorf("failed to generate demo data: %w", err)
	}

	records, err := mem.ListOpportunities(ctx)
	if err != nil {
		return fmt.Errorf("failed to list generated data: %w", err)
	}

	if err := writeJSONArtifact(seedOutput, records); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(os.Stdout, "Successfully wrote %d opportunities to %s\n", len(records), seedOutput)

	return nil
}
