package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/impactlab/volunteer-matcher/internal/fetch"
	"github.com/impactlab/volunteer-matcher/internal/ingest"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Ingest opportunities from listing URLs",
	Long:  "Fetches one or more listing pages, parses them into opportunity records, and writes the combined records to a JSON file. One failed URL does not fail the batch.",
	RunE:  runImport,
}

var (
	importURLs       []string
	importOutput     string
	importUseBrowser bool
	importVerbose    bool
)

func init() {
	importCmd.Flags().StringSliceVarP(&importURLs, "url", "u", nil, "Listing URL to ingest (repeatable, required)")
	importCmd.Flags().StringVarP(&importOutput, "out", "o", "", "Path to output opportunities JSON file (required)")
	importCmd.Flags().BoolVar(&importUseBrowser, "use-browser", false, "Fall back to headless browser rendering for script-heavy pages")
	importCmd.Flags().BoolVarP(&importVerbose, "verbose", "v", false, "Print detailed ingestion progress")

	if err := importCmd.MarkFlagRequired("url"); err != nil {
		panic(fmt.Sprintf("failed to mark url flag as required: %v", err))
	}
	if err := importCmd.MarkFlagRequired("out"); err != nil {
		panic(fmt.Sprintf("failed to mark out flag as required: %v", err))
	}

	rootCmd.AddCommand(importCmd)
}

func runImport(_ *cobra.Command, _ []string) error {
	// Duplicate URLs in one invocation hit the network once.
	result := ingest.FromURLs(context.Background(), importURLs, ingest.Options{
		UseBrowser: importUseBrowser,
		Verbose:    importVerbose,
		Fetcher:    fetch.NewCachedFetcher(nil),
	})

	for i, err := range result.Errors {
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Warning: %s: %v\n", importURLs[i], err)
		}
	}

	if len(result.Records) == 0 {
		return fmt.Errorf("no opportunities ingested from %d URL(s)", len(importURLs))
	}

	if err := writeJSONArtifact(importOutput, result.Records); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(os.Stdout, "Successfully ingested %d opportunities from %d URL(s) (%d failed) to %s\n",
		len(result.Records), len(importURLs), result.Failed(), importOutput)

	return nil
}
