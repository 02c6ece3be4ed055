package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCachedFetcherConfig(t *testing.T) {
	config := DefaultCachedFetcherConfig()

	require.NotNil(t, config)
	assert.Equal(t, DefaultCacheTTL, config.CacheTTL)
	assert.False(t, config.SkipCache)
	assert.NotNil(t, config.Options)
}

func TestNewCachedFetcher_NilConfig(t *testing.T) {
	fetcher := NewCachedFetcher(nil)

	require.NotNil(t, fetcher)
	assert.NotZero(t, fetcher.cacheTTL)
	assert.NotNil(t, fetcher.options)
}

func TestNewCachedFetcher_EmptyConfig(t *testing.T) {
	fetcher := NewCachedFetcher(&CachedFetcherConfig{})

	require.NotNil(t, fetcher)
	// Zero values fall back to defaults
	assert.Equal(t, DefaultCacheTTL, fetcher.cacheTTL)
	assert.NotNil(t, fetcher.options)
}

func TestCachedFetcher_Fetch_CachesSecondRequest(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte("<html><body><main>Park restoration day</main></body></html>"))
	}))
	defer server.Close()

	fetcher := NewCachedFetcher(nil)

	first, err := fetcher.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.False(t, first.FromCache)
	assert.Contains(t, first.Text, "Park restoration day")

	second, err := fetcher.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.True(t, second.FromCache)
	assert.Equal(t, first.Text, second.Text)
	assert.Equal(t, int32(1), hits.Load())
}

func TestCachedFetcher_Fetch_ExpiredEntryRefetches(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte("<html><body><main>Weekly shelter shift</main></body></html>"))
	}))
	defer server.Close()

	fetcher := NewCachedFetcher(&CachedFetcherConfig{CacheTTL: time.Minute})

	current := time.Now()
	fetcher.now = func() time.Time { return current }

	_, err := fetcher.Fetch(context.Background(), server.URL)
	require.NoError(t, err)

	current = current.Add(2 * time.Minute)

	result, err := fetcher.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.False(t, result.FromCache)
	assert.Equal(t, int32(2), hits.Load())
}

func TestCachedFetcher_SkipCache(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte("<html><body><main>Tutoring drive</main></body></html>"))
	}))
	defer server.Close()

	fetcher := NewCachedFetcher(&CachedFetcherConfig{SkipCache: true})

	for i := 0; i < 2; i++ {
		result, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.False(t, result.FromCache)
	}
	assert.Equal(t, int32(2), hits.Load())
}

func TestCachedFetcher_InvalidateCache(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte("<html><body><main>River cleanup</main></body></html>"))
	}))
	defer server.Close()

	fetcher := NewCachedFetcher(nil)

	_, err := fetcher.Fetch(context.Background(), server.URL)
	require.NoError(t, err)

	fetcher.InvalidateCache(server.URL)

	result, err := fetcher.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.False(t, result.FromCache)
	assert.Equal(t, int32(2), hits.Load())
}

func TestCachedFetcher_FetchMultiple_PartialFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html><body><main>Community garden</main></body></html>"))
	}))
	defer server.Close()

	fetcher := NewCachedFetcher(nil)

	urls := []string{server.URL, "not-a-valid-url"}
	results, errs := fetcher.FetchMultiple(context.Background(), urls)

	require.Len(t, results, 2)
	require.Len(t, errs, 2)
	assert.NotNil(t, results[0])
	assert.NoError(t, errs[0])
	assert.Nil(t, results[1])
	assert.Error(t, errs[1])
}
