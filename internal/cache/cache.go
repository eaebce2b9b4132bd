// Package cache stores serialized wastage reports keyed by a hash of the
// request that produced them.
//
// Three backends are provided: MemoryCache for a single process, RedisCache
// for servers sharing one store, and NullCache to disable caching.
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long a narrative report stays fresh.
const DefaultTTL = 24 * time.Hour

// Cache is a byte-oriented key/value store with per-entry expiry.
//
// Get reports a miss as (nil, false, nil); errors are reserved for backend
// failures. A ttl of zero or less means the entry never expires.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
