package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestClearCacheDir(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "layout")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sub, "abc.bin"), []byte("payload"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sub, "abc.meta"), []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	files, bytes, err := clearCacheDir(dir)
	if err != nil {
		t.Fatalf("clearCacheDir() error = %v", err)
	}
	if files != 2 {
		t.Errorf("cleared %d files, want 2", files)
	}
	if bytes != int64(len("payload")+len("{}")) {
		t.Errorf("cleared %d bytes, want %d", bytes, len("payload")+len("{}"))
	}

	// The namespace subdirectory is pruned, the cache root survives.
	if _, err := os.Stat(sub); !os.IsNotExist(err) {
		t.Error("empty namespace directory should be removed")
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("cache root should survive: %v", err)
	}
}

func TestClearCacheDirEmpty(t *testing.T) {
	files, bytes, err := clearCacheDir(t.TempDir())
	if err != nil {
		t.Fatalf("clearCacheDir() error = %v", err)
	}
	if files != 0 || bytes != 0 {
		t.Errorf("cleared %d files / %d bytes from empty dir, want 0/0", files, bytes)
	}
}
