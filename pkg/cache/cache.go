// Package cache provides content-addressed caching of rendered graph
// artifacts.
//
// Rendering goes through in-process Graphviz, which is the most expensive
// operation in the application. Cache keys are derived from the DOT source
// and output format, so a cached artifact is valid for exactly as long as
// the graph it was drawn from stays unchanged; no explicit invalidation is
// needed.
//
// Three implementations are provided:
//   - [FileCache]: persistent, for the CLI (survives across invocations)
//   - [MemoryCache]: in-process, for the HTTP server
//   - [NullCache]: disabled caching, for tests and --no-cache
package cache

import (
	"context"
	"time"
)

// keyTypeRender labels render-artifact entries in cache hook events.
const keyTypeRender = "render"

// Cache stores rendered artifacts by key.
type Cache interface {
	// Get retrieves a cached artifact. The second return value reports
	// whether the key was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores an artifact. A ttl of zero means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes an entry. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}
