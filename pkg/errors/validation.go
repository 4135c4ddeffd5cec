package errors

import (
	"math"
	"strings"
	"unicode"
)

// ValidateAlbumName validates an album name for safety and correctness.
// The rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - Maximum length of 256 characters
func ValidateAlbumName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidAlbum, "album name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidAlbum, "album name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidAlbum, "album name contains invalid control characters")
		}
	}

	return nil
}

// ValidateAlbumID validates an album identifier used in URLs and storage keys.
// IDs must be simple tokens without path separators or traversal sequences.
func ValidateAlbumID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidAlbum, "album ID cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidAlbum, "album ID too long (max 128 characters)")
	}

	dangerous := []string{"..", "/", "\\", "\x00"}
	for _, pattern := range dangerous {
		if strings.Contains(id, pattern) {
			return New(ErrCodeInvalidAlbum, "album ID contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateContainer validates the pack parameters supplied by callers.
// The packer itself rejects degenerate values too; validating here lets the
// CLI and API answer with a structured code before any work happens.
func ValidateContainer(width, targetRowHeight float64) error {
	if !(width > 0) || math.IsInf(width, 0) {
		return New(ErrCodeInvalidDimensions, "container width must be a positive finite number, got %v", width)
	}
	if !(targetRowHeight > 0) || math.IsInf(targetRowHeight, 0) {
		return New(ErrCodeInvalidDimensions, "target row height must be a positive finite number, got %v", targetRowHeight)
	}
	return nil
}

// ValidateGutter validates an optional gutter value.
func ValidateGutter(gutter float64) error {
	if math.IsNaN(gutter) || math.IsInf(gutter, 0) || gutter < 0 {
		return New(ErrCodeInvalidDimensions, "gutter must be a non-negative finite number, got %v", gutter)
	}
	return nil
}

// ValidateOutputPath validates a file path supplied for output artifacts.
// It prevents path traversal and ensures a reasonable length.
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}
