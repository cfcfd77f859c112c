package tenant

import (
	"context"
	"time"

	"github.com/schoolkit/schoolkit/pkg/cache"
)

// Cache is an advisory store for resolved tenant records, keyed by any of the
// tenant's identifiers (domain token or canonical id). It may be stale;
// entries expire by TTL and are revalidated on miss. Must be safe for
// concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) (*Tenant, bool)
	Set(ctx context.Context, key string, t *Tenant, ttl time.Duration)
	Delete(ctx context.Context, key string)
}

// DefaultCacheSize bounds the in-memory cache.
const DefaultCacheSize = 1000

type memoryEntry struct {
	tenant    *Tenant
	expiresAt time.Time
}

// memoryCache is a TTL layer over the generic LRU. Entries are immutable
// once written, so concurrent overwrites of the same key are benign.
type memoryCache struct {
	lru *cache.LRUCache[string, memoryEntry]
}

// NewMemoryCache creates a process-local tenant cache with LRU eviction
// and per-entry TTL expiry.
func NewMemoryCache(size int) Cache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	return &memoryCache{lru: cache.NewLRUCache[string, memoryEntry](size)}
}

func (c *memoryCache) Get(_ context.Context, key string) (*Tenant, bool) {
	entry, ok := c.lru.Get(key)
	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		c.lru.Remove(key)
		return nil, false
	}
	return entry.tenant, true
}

func (c *memoryCache) Set(_ context.Context, key string, t *Tenant, ttl time.Duration) {
	if t == nil || ttl <= 0 {
		return
	}
	c.lru.Put(key, memoryEntry{tenant: t, expiresAt: time.Now().Add(ttl)})
}

func (c *memoryCache) Delete(_ context.Context, key string) {
	c.lru.Remove(key)
}

// noopCache disables caching; every resolution hits the provider.
type noopCache struct{}

// NewNoopCache returns a cache that never stores anything.
func NewNoopCache() Cache { return noopCache{} }

func (noopCache) Get(context.Context, string) (*Tenant, bool) { return nil, false }
func (noopCache) Set(context.Context, string, *Tenant, time.Duration) {}
func (noopCache) Delete(context.Context, string) {}
