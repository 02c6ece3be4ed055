package ingest

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/impactlab/volunteer-matcher/internal/types"
)

// defaultConcurrency bounds parallel listing fetches so a big import
// does not hammer one platform.
const defaultConcurrency = 4

// BatchResult holds the outcome of a multi-URL ingestion.
// Errors line up with the input URLs; a failed URL leaves its slot nil
// in Pages and carries the error at the matching index.
type BatchResult struct {
	Records []types.OpportunityRecord
	Pages   []*Metadata
	Errors  []error
}

// Failed reports how many URLs could not be ingested.
func (r *BatchResult) Failed() int {
	count := 0
	for _, err := range r.Errors {
		if err != nil {
			count++
		}
	}
	return count
}

// FromURLs ingests several listing URLs concurrently.
// One bad URL never fails the batch; its error is recorded and the rest
// of the pages still contribute records.
func FromURLs(ctx context.Context, urls []string, opts Options) *BatchResult {
	perURL := make([][]types.OpportunityRecord, len(urls))
	pages := make([]*Metadata, len(urls))
	errs := make([]error, len(urls))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(defaultConcurrency)

	for i, url := range urls {
		group.Go(func() error {
			records, metadata, err := FromURL(groupCtx, url, opts)
			if err != nil {
				errs[i] = err
				return nil
			}
			perURL[i] = records
			pages[i] = metadata
			return nil
		})
	}
	_ = group.Wait()

	result := &BatchResult{Pages: pages, Errors: errs}
	for _, records := range perURL {
		result.Records = append(result.Records, records...)
	}
	return result
}
