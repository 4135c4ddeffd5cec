package cache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileCache keeps cached values under a directory, one payload file per key.
// Rendered artifacts can be megabytes of PNG, so payloads are written raw
// rather than wrapped in a JSON envelope; the expiry lives in a small
// sidecar file next to each payload.
//
// Keys are grouped by their namespace prefix ("layout:", "artifact:", ...),
// which keeps the cache directory browsable per concern.
type FileCache struct {
	dir string
}

// NewFileCache opens a cache rooted at dir, creating it if needed.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// fileMeta is the sidecar written next to each payload. A payload without a
// sidecar never expires (stored albums, TTL 0).
type fileMeta struct {
	ExpiresAt time.Time `json:"expires_at"`
}

// Get returns the payload for key, treating expired or corrupt entries as
// misses and evicting them.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	payloadPath, metaPath := c.paths(key)

	data, err := os.ReadFile(payloadPath)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	if metaData, err := os.ReadFile(metaPath); err == nil {
		var m fileMeta
		if json.Unmarshal(metaData, &m) != nil {
			c.evict(key)
			return nil, false, nil
		}
		if !m.ExpiresAt.IsZero() && time.Now().After(m.ExpiresAt) {
			c.evict(key)
			return nil, false, nil
		}
	}

	return data, true, nil
}

// Set stores the payload for key. A ttl of zero means the entry never
// expires (stored albums); a negative ttl writes an already-expired entry.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	payloadPath, metaPath := c.paths(key)

	if err := os.MkdirAll(filepath.Dir(payloadPath), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(payloadPath, data, 0o644); err != nil {
		return err
	}

	if ttl == 0 {
		// Drop any expiry left over from a previous Set.
		if err := os.Remove(metaPath); err != nil && !os.IsNotExist(err) {
			return err
		}
		return nil
	}

	metaData, err := json.Marshal(fileMeta{ExpiresAt: time.Now().Add(ttl)})
	if err != nil {
		return err
	}
	return os.WriteFile(metaPath, metaData, 0o644)
}

// Delete removes the entry for key. Deleting a missing entry is not an error.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	payloadPath, metaPath := c.paths(key)
	if err := os.Remove(payloadPath); err != nil && !os.IsNotExist(err) {
		return err
	}
	if err := os.Remove(metaPath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Close does nothing; the cache holds no open handles between calls.
func (c *FileCache) Close() error {
	return nil
}

func (c *FileCache) evict(key string) {
	payloadPath, metaPath := c.paths(key)
	_ = os.Remove(payloadPath)
	_ = os.Remove(metaPath)
}

// paths maps a key to its payload and sidecar files. The key's namespace
// prefix becomes a subdirectory; the remainder is hashed so arbitrary key
// content never reaches the filesystem.
func (c *FileCache) paths(key string) (payload, meta string) {
	scope := "misc"
	if i := strings.IndexByte(key, ':'); i > 0 {
		scope = key[:i]
	}
	base := filepath.Join(c.dir, scope, Hash([]byte(key)))
	return base + ".bin", base + ".meta"
}

var _ Cache = (*FileCache)(nil)
