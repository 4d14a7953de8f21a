// Package cache provides the in-memory response cache for the HTTP server,
// backed by patrickmn/go-cache with TTL expiry. Registry data only changes
// on enrichment runs, so short TTLs keep responses fresh enough while
// sparing the classifier from recomputing identical queries.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache wraps go-cache behind the few operations the server needs.
type Cache struct {
	store *gocache.Cache
}

// New creates a cache. defaultTTL is the default entry lifetime and
// cleanupInterval is how often expired entries are swept out of memory.
func New(defaultTTL, cleanupInterval time.Duration) *Cache {
	return &Cache{
		store: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get retrieves a value from the cache.
func (c *Cache) Get(key string) (any, bool) {
	return c.store.Get(key)
}

// Set stores a value with the default TTL.
func (c *Cache) Set(key string, value any) {
	c.store.Set(key, value, gocache.DefaultExpiration)
}

// SetWithTTL stores a value with a custom TTL.
func (c *Cache) SetWithTTL(key string, value any, ttl time.Duration) {
	c.store.Set(key, value, ttl)
}

// Delete removes a single entry.
func (c *Cache) Delete(key string) {
	c.store.Delete(key)
}

// ItemCount returns the number of cached entries.
func (c *Cache) ItemCount() int {
	return c.store.ItemCount()
}
