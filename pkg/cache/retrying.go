package cache

import (
	"context"
	"time"
)

// WithRetry returns a cache whose operations run through
// RetryWithBackoff. Backends that tag transient failures with
// Retryable (the redis backend does) get their operations reattempted;
// everything else fails through immediately.
func WithRetry(inner Cache) Cache {
	return &retryingCache{inner: inner}
}

type retryingCache struct {
	inner Cache
}

func (c *retryingCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var data []byte
	var hit bool
	err := RetryWithBackoff(ctx, func() error {
		var err error
		data, hit, err = c.inner.Get(ctx, key)
		return err
	})
	return data, hit, err
}

func (c *retryingCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return RetryWithBackoff(ctx, func() error {
		return c.inner.Set(ctx, key, data, ttl)
	})
}

func (c *retryingCache) Delete(ctx context.Context, key string) error {
	return RetryWithBackoff(ctx, func() error {
		return c.inner.Delete(ctx, key)
	})
}

func (c *retryingCache) Close() error {
	return c.inner.Close()
}
