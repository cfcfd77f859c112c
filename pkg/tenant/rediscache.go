package tenant

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisCache shares resolved tenant records across replicas. Errors degrade
// to cache misses: the cache is advisory and must never fail a resolution.
type redisCache struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisCache creates a Redis-backed tenant cache. An empty prefix
// defaults to "tenant:".
func NewRedisCache(client redis.UniversalClient, prefix string) Cache {
	if prefix == "" {
		prefix = "tenant:"
	}
	return &redisCache{client: client, prefix: prefix}
}

func (c *redisCache) Get(ctx context.Context, key string) (*Tenant, bool) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		return nil, false
	}
	var t Tenant
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, false
	}
	return &t, true
}

func (c *redisCache) Set(ctx context.Context, key string, t *Tenant, ttl time.Duration) {
	if t == nil || ttl <= 0 {
		return
	}
	data, err := json.Marshal(t)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, c.prefix+key, data, ttl).Err()
}

func (c *redisCache) Delete(ctx context.Context, key string) {
	_ = c.client.Del(ctx, c.prefix+key).Err()
}
