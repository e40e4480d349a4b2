// Package cache memoizes solved results across runs.
//
// Solving a graph exactly can take minutes, while the answer only depends on
// the canonical graph and the solver settings. The pipeline therefore keys
// each result by the hash of the graph's JSON form plus the options that
// influence the optimum, and stores the encoded record under that key.
//
// Three backends implement [Cache]:
//
//   - [FileCache]: one JSON file per entry under a local directory, used by
//     the CLI (default ~/.cache/gracetower).
//   - [RedisCache]: a shared Redis instance, used when several batch workers
//     or API servers should share results.
//   - [NullCache]: stores nothing; selected by --no-cache.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key-value store with optional expiry.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is a miss,
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by caches that can drop every entry at once.
type Clearer interface {
	Clear(ctx context.Context) error
}

// NullCache never stores anything; every Get is a miss.
type NullCache struct{}

// NewNullCache returns a cache that disables caching.
func NewNullCache() Cache { return &NullCache{} }

func (*NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (*NullCache) Delete(context.Context, string) error { return nil }
func (*NullCache) Clear(context.Context) error { return nil }
func (*NullCache) Close() error { return nil }

var (
	_ Cache   = (*NullCache)(nil)
	_ Clearer = (*NullCache)(nil)
)
