package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// RenderKey derives the cache key for one rendered artifact: the SHA-256 of
// the DOT source, prefixed with the output format. Any change to the graph
// changes the DOT text and therefore the key.
func RenderKey(dot, format string) string {
	return format + ":" + Hash([]byte(dot))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
