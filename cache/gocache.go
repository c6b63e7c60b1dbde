package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// GoCache is an in-memory byte store backed by go-cache
type GoCache struct {
	cache *gocache.Cache
}

// NewGoCache creates a new GoCache instance
func NewGoCache(defaultExpiration, cleanupInterval time.Duration) *GoCache {
	return &GoCache{
		cache: gocache.New(defaultExpiration, cleanupInterval),
	}
}

// Get returns the stored bytes for key. Values of any other type count as missing.
func (gc *GoCache) Get(key string) ([]byte, bool) {
	value, found := gc.cache.Get(key)
	if !found {
		return nil, false
	}
	data, ok := value.([]byte)
	return data, ok
}

// Set stores data under key.
// If timeout is 0, uses cache's default expiration.
// If timeout is -1 (gocache.NoExpiration), item never expires.
func (gc *GoCache) Set(key string, data []byte, timeout time.Duration) {
	gc.cache.Set(key, data, timeout)
}

// Clear removes all items from cache
func (gc *GoCache) Clear() {
	gc.cache.Flush()
}

func (gc *GoCache) ItemCount() int {
	return gc.cache.ItemCount()
}
