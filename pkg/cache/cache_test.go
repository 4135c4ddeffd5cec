package cache

import (
	"context"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	// Miss before set
	_, hit, err := c.Get(ctx, "layout:abc")
	if err != nil || hit {
		t.Errorf("Get before Set = hit %v, err %v", hit, err)
	}

	// Round trip
	if err := c.Set(ctx, "layout:abc", []byte("payload"), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "layout:abc")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !hit || string(data) != "payload" {
		t.Errorf("Get = %q hit %v, want payload/true", data, hit)
	}

	// Expired entries are treated as misses
	if err := c.Set(ctx, "layout:old", []byte("stale"), -time.Second); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	_, hit, _ = c.Get(ctx, "layout:old")
	if hit {
		t.Error("expired entry should be a miss")
	}

	// Delete is idempotent
	if err := c.Delete(ctx, "layout:abc"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
	if err := c.Delete(ctx, "layout:abc"); err != nil {
		t.Errorf("second Delete error: %v", err)
	}
	_, hit, _ = c.Get(ctx, "layout:abc")
	if hit {
		t.Error("deleted entry should be a miss")
	}
}

func TestFileCacheZeroTTLNeverExpires(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	// Albums are stored with TTL 0 and must survive indefinitely.
	if err := c.Set(ctx, "album:a1", []byte("doc"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "album:a1")
	if err != nil || !hit || string(data) != "doc" {
		t.Errorf("Get = %q hit %v err %v, want doc/true/nil", data, hit, err)
	}

	// Re-setting with TTL 0 clears a previous expiry.
	if err := c.Set(ctx, "layout:h", []byte("v1"), -time.Second); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if err := c.Set(ctx, "layout:h", []byte("v2"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, _ = c.Get(ctx, "layout:h")
	if !hit || string(data) != "v2" {
		t.Errorf("Get after overwrite = %q hit %v, want v2/true", data, hit)
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	// AlbumKey
	if got := k.AlbumKey("a1"); got != "album:a1" {
		t.Errorf("AlbumKey unexpected: %s", got)
	}

	// LayoutKey should include options in hash
	lk1 := k.LayoutKey("hash123", LayoutKeyOpts{Width: 800, TargetRowHeight: 150})
	lk2 := k.LayoutKey("hash123", LayoutKeyOpts{Width: 800, TargetRowHeight: 200})
	if lk1 == lk2 {
		t.Error("Different LayoutKeyOpts should produce different keys")
	}
	lk3 := k.LayoutKey("hash456", LayoutKeyOpts{Width: 800, TargetRowHeight: 150})
	if lk1 == lk3 {
		t.Error("Different album hashes should produce different keys")
	}

	// ArtifactKey
	ak1 := k.ArtifactKey("lh", ArtifactKeyOpts{Format: "svg"})
	ak2 := k.ArtifactKey("lh", ArtifactKeyOpts{Format: "png"})
	if ak1 == ak2 {
		t.Error("Different formats should produce different keys")
	}
}

func TestScopedKeyer(t *testing.T) {
	base := NewDefaultKeyer()
	scoped := NewScopedKeyer(base, "user:42:")

	if got := scoped.AlbumKey("a1"); got != "user:42:album:a1" {
		t.Errorf("scoped AlbumKey = %s", got)
	}

	opts := LayoutKeyOpts{Width: 800, TargetRowHeight: 150}
	if scoped.LayoutKey("h", opts) != "user:42:"+base.LayoutKey("h", opts) {
		t.Error("scoped LayoutKey should prefix the inner key")
	}

	// nil inner falls back to the default keyer
	fallback := NewScopedKeyer(nil, "p:")
	if got := fallback.AlbumKey("a1"); got != "p:album:a1" {
		t.Errorf("fallback AlbumKey = %s", got)
	}
}
