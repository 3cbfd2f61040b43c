// Package cache provides byte-oriented key/value caches for precomputed
// routing tables.
//
// Computing an architecture's distance-table families is cubic in the qubit
// count per table, so the CLI persists them between runs. A [Cache] stores
// opaque payloads with an optional TTL; what goes in is decided by callers
// (see distance.EncodeFamilies) and keys come from a [Keyer].
//
// Backends:
//   - [FileCache]: one JSON envelope per key under a directory (CLI default)
//   - [RedisCache]: shared cache for multi-process deployments
//   - [MongoCache]: document store with a TTL index
//   - [NullCache]: disables caching
//
// Backend failures are reported as errors wrapping [ErrNetwork] where they
// come from the network; callers treat any error as a miss.
package cache

import (
	"context"
	"time"
)

// Cache is a key/value store for serialized payloads.
type Cache interface {
	// Get returns the payload for key. hit is false on a miss; a miss is
	// not an error.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores data under key. A ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
