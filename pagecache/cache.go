// Package pagecache caches rendered pages keyed by locale-qualified path
// and coordinates their invalidation after content writes.
package pagecache

import (
	"context"
	"time"

	cachelib "github.com/eko/gocache/lib/v4/cache"
	gocache_store "github.com/eko/gocache/store/go_cache/v4"
	gocache "github.com/patrickmn/go-cache"
)

const cleanupInterval = 10 * time.Minute

// Cache stores rendered page bodies by locale-qualified path. Entries do
// not expire on their own: they stay until a write to the underlying
// content invalidates them.
type Cache struct {
	inner cachelib.SetterCacheInterface[string]
}

// NewMemory creates a pure in-memory cache using patrickmn/go-cache as the
// backend.
func NewMemory() *Cache {
	client := gocache.New(gocache.NoExpiration, cleanupInterval)
	return &Cache{inner: cachelib.New[string](gocache_store.NewGoCache(client))}
}

// Get returns the cached rendering for a locale-qualified path, if present.
func (c *Cache) Get(ctx context.Context, path string) (string, bool) {
	body, err := c.inner.Get(ctx, path)
	if err != nil {
		return "", false
	}
	return body, true
}

func (c *Cache) Set(ctx context.Context, path, body string) error {
	return c.inner.Set(ctx, path, body)
}

func (c *Cache) Delete(ctx context.Context, path string) error {
	return c.inner.Delete(ctx, path)
}
