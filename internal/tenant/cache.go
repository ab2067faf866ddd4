package tenant

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

const cacheKeyPrefix = "tenant:schema:"

// SchemaCache is a best-effort subdomain to schema-name cache. Redis
// being down must never break tenant resolution, so every error path
// degrades to a miss.
type SchemaCache struct {
	Client *redis.Client
	TTL    time.Duration
}

// NewSchemaCache connects to redis at addr; returns nil when addr is
// empty (caching disabled).
func NewSchemaCache(addr string) *SchemaCache {
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	log.Println("tenant schema cache enabled, redis:", addr)
	return &SchemaCache{Client: client, TTL: 5 * time.Minute}
}

func (c *SchemaCache) Get(ctx context.Context, subdomain string) (string, bool) {
	if c == nil || c.Client == nil {
		return "", false
	}
	val, err := c.Client.Get(ctx, cacheKeyPrefix+subdomain).Result()
	if err != nil || val == "" {
		return "", false
	}
	return val, true
}

func (c *SchemaCache) Set(ctx context.Context, subdomain, schema string) {
	if c == nil || c.Client == nil {
		return
	}
	ttl := c.TTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	_ = c.Client.Set(ctx, cacheKeyPrefix+subdomain, schema, ttl).Err()
}

// Invalidate drops the cached entry, used when a tenant is suspended.
func (c *SchemaCache) Invalidate(ctx context.Context, subdomain string) {
	if c == nil || c.Client == nil {
		return
	}
	_ = c.Client.Del(ctx, cacheKeyPrefix+subdomain).Err()
}
