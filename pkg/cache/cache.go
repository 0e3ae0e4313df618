// Package cache stores rendered artifacts so unchanged graphs are not
// re-rasterised.
//
// Keys come from a [Keyer] and are derived from the DOT source and the
// output format, so any change to the input, the options or the renderer
// output produces a new key. Three backends are provided:
//
//   - [FileCache]: one file per entry under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance
//   - [NullCache]: stores nothing, used with --no-cache
package cache

import (
	"context"
	"time"
)

// TTLArtifact is the default lifetime of a rendered artifact. Keys already
// change with the content, so the TTL only bounds disk and memory use.
const TTLArtifact = 7 * 24 * time.Hour

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the stored value and whether it was found.
	// Expired entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	Close() error
}
