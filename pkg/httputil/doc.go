// Package httputil provides HTTP utilities for image source clients.
//
// # Overview
//
// This package provides infrastructure used by clients that fetch image
// metadata over the network:
//
//   - [Cache]: File-based response caching
//   - [Retry]: Automatic retry with exponential backoff
//
// # Caching
//
// [Cache] stores probed results in the filesystem (~/.cache/collage/)
// with configurable TTL. This dramatically speeds up repeated layout runs
// and avoids re-fetching remote images just to read their dimensions.
//
// Usage:
//
//	cache, err := httputil.NewCache("", 24*time.Hour)
//	ok, err := cache.Get("probe:https://example.com/a.jpg", &dims)
//	if !ok {
//	    dims = probeRemote(url)
//	    cache.Set("probe:https://example.com/a.jpg", dims)
//	}
//
// Cache keys should be namespaced by concern to avoid collisions.
//
// # Retry
//
// [Retry] wraps HTTP requests with automatic retry for transient failures:
//
//   - Network errors
//   - 5xx server errors
//   - 429 rate limit responses
//
// Wrap transient errors in [RetryableError] so Retry knows to try again:
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    resp, err := http.Get(url)
//	    if err != nil {
//	        return &httputil.RetryableError{Err: err}
//	    }
//	    defer resp.Body.Close()
//	    ...
//	})
//
// # Configuration
//
// Default settings are suitable for most use cases:
//
//   - Cache directory: ~/.cache/collage/
//   - Default TTL: 24 hours
//   - Max retries: 3
//   - Base backoff: half a second, doubling per attempt
//
// The cache can be cleared via `collage cache clear` or by deleting the
// cache directory.
package httputil
