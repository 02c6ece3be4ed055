// Package fetch provides generic URL fetching with optional caching.
package fetch

import (
	"context"
	"sync"
	"time"
)

// DefaultCacheTTL is how long a fetched page stays fresh before re-fetching.
const DefaultCacheTTL = 24 * time.Hour

// CachedFetcher wraps URL fetching with an in-memory TTL cache.
// Listing pages change slowly, so repeated imports within the TTL
// reuse the previous fetch instead of hitting the platform again.
type CachedFetcher struct {
	mu        sync.Mutex
	pages     map[string]*cachedPage
	options   *Options
	cacheTTL  time.Duration
	skipCache bool // For testing or forcing fresh fetches
	now       func() time.Time
}

type cachedPage struct {
	result    *Result
	fetchedAt time.Time
}

// CachedFetcherConfig holds configuration for the cached fetcher.
type CachedFetcherConfig struct {
	CacheTTL  time.Duration
	SkipCache bool
	Options   *Options
}

// DefaultCachedFetcherConfig returns sensible defaults.
func DefaultCachedFetcherConfig() *CachedFetcherConfig {
	return &CachedFetcherConfig{
		CacheTTL:  DefaultCacheTTL,
		SkipCache: false,
		Options:   DefaultOptions(),
	}
}

// NewCachedFetcher creates a new cached fetcher.
func NewCachedFetcher(config *CachedFetcherConfig) *CachedFetcher {
	if config == nil {
		config = DefaultCachedFetcherConfig()
	}
	if config.Options == nil {
		config.Options = DefaultOptions()
	}
	if config.CacheTTL == 0 {
		config.CacheTTL = DefaultCacheTTL
	}
	return &CachedFetcher{
		pages:     make(map[string]*cachedPage),
		options:   config.Options,
		cacheTTL:  config.CacheTTL,
		skipCache: config.SkipCache,
		now:       time.Now,
	}
}

// CachedResult extends Result with cache metadata.
type CachedResult struct {
	*Result
	FromCache bool // Whether this result came from cache
}

// Fetch retrieves a URL, using the cache if the entry is still fresh.
// Fresh fetches run text extraction with selectors matched to the
// detected listing platform before caching.
func (f *CachedFetcher) Fetch(ctx context.Context, urlStr string) (*CachedResult, error) {
	if !f.skipCache {
		if cached := f.lookup(urlStr); cached != nil {
			return &CachedResult{Result: cached, FromCache: true}, nil
		}
	}

	result, err := URL(ctx, urlStr, f.options)
	if err != nil {
		return nil, err
	}

	platform := DetectPlatform(urlStr)
	text, _ := ExtractMainText(result.HTML, PlatformContentSelectors(platform), PlatformNoiseSelectors(platform)...)
	result.Text = text

	f.store(urlStr, result)

	return &CachedResult{Result: result, FromCache: false}, nil
}

// FetchMultiple fetches multiple URLs, reusing cached entries.
// Results keep the same order as the input URLs. Failed fetches leave a nil
// result and carry the error at the matching index.
func (f *CachedFetcher) FetchMultiple(ctx context.Context, urls []string) ([]*CachedResult, []error) {
	results := make([]*CachedResult, len(urls))
	errors := make([]error, len(urls))

	for i, url := range urls {
		result, err := f.Fetch(ctx, url)
		if err != nil {
			errors[i] = err
		} else {
			results[i] = result
		}
	}

	return results, errors
}

// InvalidateCache drops a cached page, forcing a re-fetch on next request.
func (f *CachedFetcher) InvalidateCache(urlStr string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.pages, urlStr)
}

func (f *CachedFetcher) lookup(urlStr string) *Result {
	f.mu.Lock()
	defer f.mu.Unlock()

	page, ok := f.pages[urlStr]
	if !ok {
		return nil
	}
	if f.now().Sub(page.fetchedAt) > f.cacheTTL {
		delete(f.pages, urlStr)
		return nil
	}
	return page.result
}

func (f *CachedFetcher) store(urlStr string, result *Result) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pages[urlStr] = &cachedPage{result: result, fetchedAt: f.now()}
}
