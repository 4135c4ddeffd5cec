// Package cache provides caching for computed layouts and rendered artifacts.
//
// Packing is cheap but rendering is not, and both are deterministic functions
// of their inputs, so results are cached under content-derived keys. Three
// backends implement the same interface:
//   - FileCache: directory-backed, for CLI usage
//   - RedisCache: shared cache for server deployments
//   - NullCache: disabled caching, for tests and --no-cache
//
// Keys are produced by a Keyer so that every caller derives them the same
// way; ScopedKeyer adds a prefix for multi-tenant isolation.
package cache

import (
	"context"
	"time"
)

// Default TTLs per pipeline stage. Layouts are cheap to recompute, so they
// expire sooner than rendered artifacts.
const (
	TTLAlbum    = 0 * time.Hour // albums never expire; the store owns deletion
	TTLLayout   = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is the interface all cache backends implement.
// Get reports a miss with hit=false and a nil error; errors are reserved for
// backend failures.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// LayoutKeyOpts are the pack parameters that distinguish cached layouts
// computed from the same album.
type LayoutKeyOpts struct {
	Width           float64
	TargetRowHeight float64
	Gutter          float64
	SnapLastToEdge  bool
	LastRowCap      float64
}

// ArtifactKeyOpts are the render parameters that distinguish cached artifacts
// rendered from the same layout. Every option a renderer honors must appear
// here, or two renders with different options collide on the same key.
type ArtifactKeyOpts struct {
	Format     string
	Scale      float64
	Labels     bool
	Background string
	Images     bool
	Stats      bool
}

// Keyer derives cache keys for the pipeline stages.
type Keyer interface {
	// AlbumKey generates a key for a stored album document.
	AlbumKey(albumID string) string

	// LayoutKey generates a key for a computed layout. albumHash is the
	// content hash of the album the layout was packed from.
	LayoutKey(albumHash string, opts LayoutKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact. layoutHash is
	// the content hash of the serialized layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key derivation used by CLI and server.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// AlbumKey generates a key for a stored album document.
func (k *DefaultKeyer) AlbumKey(albumID string) string {
	return "album:" + albumID
}

// LayoutKey generates a key for a computed layout.
func (k *DefaultKeyer) LayoutKey(albumHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", albumHash, opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
