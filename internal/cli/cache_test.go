package cli

import (
	"context"
	"testing"
	"time"

	"github.com/jthierer/bubblepack/pkg/cache"
	"github.com/jthierer/bubblepack/pkg/config"
)

func TestNewCacheNoCache(t *testing.T) {
	cfg := config.Default()
	store, err := newCache(context.Background(), cfg, true)
	if err != nil {
		t.Fatalf("newCache error: %v", err)
	}
	defer store.Close()

	if _, ok := store.(*cache.NullCache); !ok {
		t.Errorf("--no-cache should select the null cache, got %T", store)
	}
}

func TestNewCacheConfiguredTTL(t *testing.T) {
	ctx := context.Background()
	cfg := config.Default()
	cfg.Cache.Dir = t.TempDir()
	cfg.Cache.TTL.Duration = time.Millisecond

	store, err := newCache(ctx, cfg, false)
	if err != nil {
		t.Fatalf("newCache error: %v", err)
	}
	defer store.Close()

	// The configured TTL must win even when the caller asks for forever.
	if err := store.Set(ctx, "key", []byte("value"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	if _, hit, _ := store.Get(ctx, "key"); hit {
		t.Error("entry should expire at the configured TTL")
	}
}
