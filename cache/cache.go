package cache

import "time"

// LoaderFunc produces the value for a key that is missing from the cache
type LoaderFunc func() ([]byte, error)

// Cache stores encoded values by key with a per-entry TTL
type Cache interface {
	// GetOrLoad returns the cached value for key, or calls loader on a miss and
	// stores its result for ttl. The bool reports whether the value came from cache.
	// A ttl of 0 uses the cache's default expiration.
	GetOrLoad(key string, loader LoaderFunc, ttl time.Duration) ([]byte, bool, error)

	// Get returns the cached value for key and whether it was found
	Get(key string) ([]byte, bool)

	// Set stores data under key for ttl
	Set(key string, data []byte, ttl time.Duration)

	// Len returns the number of stored entries, expired ones included until purged
	Len() int
}
