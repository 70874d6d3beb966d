// Package cache provides pluggable byte caches for pipeline stages.
// Datasets, layouts, and rendered artifacts are cached under
// content-derived keys so repeated runs with the same inputs skip work.
package cache

import (
	"context"
	"time"
)

// Default TTLs per pipeline stage. Datasets can change on disk so they
// expire fastest; layouts and artifacts are pure functions of their
// inputs and keep longer.
const (
	TTLDataset  = 1 * time.Hour
	TTLLayout   = 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)

// Cache stores opaque byte values under string keys with optional TTL.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
