package cache

import (
	"context"
	"time"
)

// NullCache drops everything. It backs --no-cache runs, where every layout
// and artifact must be recomputed, and tests where a stale hit would hide
// the code path under test.
type NullCache struct{}

// NewNullCache creates a cache that never stores anything.
func NewNullCache() Cache {
	return NullCache{}
}

// Get always misses.
func (NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set discards the data.
func (NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

// Delete succeeds without doing anything.
func (NullCache) Delete(ctx context.Context, key string) error {
	return nil
}

// Close succeeds without doing anything.
func (NullCache) Close() error {
	return nil
}

var _ Cache = NullCache{}
