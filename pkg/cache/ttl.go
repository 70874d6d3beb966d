package cache

import (
	"context"
	"time"
)

// WithTTL returns a cache that stores every entry with the given ttl,
// overriding whatever the caller passes to Set. A non-positive ttl
// returns the inner cache unchanged.
func WithTTL(inner Cache, ttl time.Duration) Cache {
	if ttl <= 0 {
		return inner
	}
	return &ttlCache{inner: inner, ttl: ttl}
}

type ttlCache struct {
	inner Cache
	ttl   time.Duration
}

func (c *ttlCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return c.inner.Get(ctx, key)
}

func (c *ttlCache) Set(ctx context.Context, key string, data []byte, _ time.Duration) error {
	return c.inner.Set(ctx, key, data, c.ttl)
}

func (c *ttlCache) Delete(ctx context.Context, key string) error {
	return c.inner.Delete(ctx, key)
}

func (c *ttlCache) Close() error {
	return c.inner.Close()
}
