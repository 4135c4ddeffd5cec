package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// hashKey derives a cache key from a content hash and the option set that
// produced the cached value. Keys look like "layout:<sha256>"; hashing the
// options rather than concatenating them keeps keys fixed-length no matter
// how many pack or render parameters distinguish them.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	return prefix + ":" + hex.EncodeToString(sum[:])
}

// Hash returns the hex SHA-256 of data. Albums and layouts are hashed in
// their serialized form, so identical content always maps to the same
// layout and artifact keys regardless of where it was loaded from.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
