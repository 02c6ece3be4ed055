package ingest

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/impactlab/volunteer-matcher/internal/fetch"
	"github.com/impactlab/volunteer-matcher/internal/types"
)

var (
	// ErrHTTPRequestFailed is returned when the listing fetch fails
	ErrHTTPRequestFailed = fmt.Errorf("HTTP request failed")
	// ErrContentExtractionFailed is returned when text extraction fails
	ErrContentExtractionFailed = fmt.Errorf("content extraction failed")
	// ErrNoOpportunities is returned when a page yields no usable records
	ErrNoOpportunities = fmt.Errorf("no opportunities found")
)

// Options configures URL ingestion.
type Options struct {
	// UseBrowser falls back to headless rendering when the HTTP fetch
	// returns too little text, which script-heavy listing sites do.
	UseBrowser bool
	Verbose    bool
	Fetch      *fetch.Options

	// Fetcher, when set, serves pages through its TTL cache so repeated
	// imports of the same listing within the TTL skip the network.
	Fetcher *fetch.CachedFetcher
}

// FromURL fetches a listing page and returns its opportunity records.
// Platform detection picks the selectors; pages with recognizable cards
// yield one record per card, and pages without cards fall back to a
// single record built from the page title and main text.
func FromURL(ctx context.Context, urlStr string, opts Options) ([]types.OpportunityRecord, *Metadata, error) {
	platform := fetch.DetectPlatform(urlStr)
	if opts.Verbose {
		log.Printf("[VERBOSE] URL: %s", urlStr)
		log.Printf("[VERBOSE] Detected platform: %s", platform)
	}

	var html string
	if opts.Fetcher != nil {
		cached, err := opts.Fetcher.Fetch(ctx, urlStr)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
		}
		if opts.Verbose && cached.FromCache {
			log.Printf("[VERBOSE] Cache hit for %s", urlStr)
		}
		html = cached.HTML
	} else {
		result, err := fetch.URL(ctx, urlStr, opts.Fetch)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
		}
		html = result.HTML
	}
	if opts.Verbose {
		log.Printf("[VERBOSE] Fetched HTML: %d bytes", len(html))
	}

	contentSelectors := fetch.PlatformContentSelectors(platform)
	noiseSelectors := fetch.PlatformNoiseSelectors(platform)

	textContent, err := fetch.ExtractMainText(html, contentSelectors, noiseSelectors...)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}

	if opts.UseBrowser && fetch.ShouldUseBrowser(textContent) {
		if opts.Verbose {
			log.Printf("[VERBOSE] Content too short (%d chars < %d), falling back to browser rendering...",
				len(textContent), fetch.MinContentLength)
		}

		browserHTML, browserErr := fetch.BrowserSimple(ctx, urlStr, opts.Verbose)
		if browserErr != nil {
			if opts.Verbose {
				log.Printf("[VERBOSE] Browser rendering failed: %v, using HTTP content", browserErr)
			}
		} else {
			html = browserHTML
			if rendered, extractErr := fetch.ExtractMainText(html, contentSelectors, noiseSelectors...); extractErr == nil {
				textContent = rendered
			}
		}
	}

	records, err := ParseListing(html)
	if err != nil {
		return nil, nil, err
	}

	if len(records) == 0 {
		record, ok := recordFromPage(html, textContent)
		if !ok {
			return nil, nil, fmt.Errorf("%w at %s", ErrNoOpportunities, urlStr)
		}
		records = []types.OpportunityRecord{record}
	}

	metadata := NewMetadata(textContent, urlStr)
	metadata.Platform = string(platform)
	metadata.Count = len(records)

	if opts.Verbose {
		log.Printf("[VERBOSE] Parsed %d opportunity record(s)", len(records))
	}

	return records, metadata, nil
}

// recordFromPage builds a single record for detail pages that carry one
// opportunity rather than a card grid.
func recordFromPage(html, text string) (types.OpportunityRecord, bool) {
	title := pageTitle(html)
	if title == "" || strings.TrimSpace(text) == "" {
		return types.OpportunityRecord{}, false
	}
	return types.OpportunityRecord{
		Title:       title,
		Description: text,
	}, true
}

func pageTitle(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	if h1 := strings.TrimSpace(doc.Find("h1").First().Text()); h1 != "" {
		return h1
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}
