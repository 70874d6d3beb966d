package cache

import (
	"context"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !hit {
		t.Fatal("expected cache hit")
	}
	if string(data) != "value" {
		t.Errorf("Get returned %q, want %q", data, "value")
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("expected miss after Delete")
	}
}

func TestFileCacheExpiration(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Millisecond); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("expected expired entry to miss")
	}
}

func TestFileCacheDeleteMissing(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	if err := c.Delete(context.Background(), "absent"); err != nil {
		t.Errorf("Delete of missing key should not error: %v", err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	_ = c.Set(ctx, "a", []byte("1"), 0)
	_ = c.Set(ctx, "b", []byte("2"), 0)

	fc := c.(*FileCache)
	if err := fc.Clear(); err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("expected miss after Clear")
	}
}

func TestHash(t *testing.T) {
	// Determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// SHA-256 produces 64 hex chars
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	// DatasetKey should include options in hash
	dk1 := k.DatasetKey("hash123", DatasetKeyOpts{MinRows: 15, Seed: 42})
	dk2 := k.DatasetKey("hash123", DatasetKeyOpts{MinRows: 30, Seed: 42})
	if dk1 == dk2 {
		t.Error("Different DatasetKeyOpts should produce different keys")
	}

	// LayoutKey
	lk1 := k.LayoutKey("hash123", LayoutKeyOpts{VizType: "bubble", Width: 512})
	lk2 := k.LayoutKey("hash123", LayoutKeyOpts{VizType: "bubble", Width: 1024})
	if lk1 == lk2 {
		t.Error("Different LayoutKeyOpts should produce different keys")
	}

	// ArtifactKey
	ak1 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "svg", Style: "light"})
	ak2 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "png", Style: "light"})
	if ak1 == ak2 {
		t.Error("Different ArtifactKeyOpts should produce different keys")
	}

	// Stage prefixes keep key spaces separate
	if dk1[:8] != "dataset:" {
		t.Errorf("DatasetKey should carry stage prefix: %s", dk1)
	}
	if lk1[:7] != "layout:" {
		t.Errorf("LayoutKey should carry stage prefix: %s", lk1)
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "project:123:")

	// All keys should be prefixed
	dk := scoped.DatasetKey("hash", DatasetKeyOpts{})
	if len(dk) < 12 || dk[:12] != "project:123:" {
		t.Errorf("ScopedKeyer DatasetKey should be prefixed: %s", dk)
	}

	lk := scoped.LayoutKey("hash", LayoutKeyOpts{})
	if len(lk) < 12 || lk[:12] != "project:123:" {
		t.Errorf("ScopedKeyer LayoutKey should be prefixed: %s", lk)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	// Should use DefaultKeyer when inner is nil
	scoped := NewScopedKeyer(nil, "prefix:")
	key := scoped.ArtifactKey("hash", ArtifactKeyOpts{})
	if key[:7] != "prefix:" {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}

// recordingCache captures Set TTLs and fails operations a configured
// number of times before succeeding.
type recordingCache struct {
	lastTTL  time.Duration
	failures int
	calls    int
}

func (c *recordingCache) Get(_ context.Context, _ string) ([]byte, bool, error) {
	c.calls++
	if c.calls <= c.failures {
		return nil, false, Retryable(ErrUnavailable)
	}
	return []byte("value"), true, nil
}

func (c *recordingCache) Set(_ context.Context, _ string, _ []byte, ttl time.Duration) error {
	c.calls++
	c.lastTTL = ttl
	if c.calls <= c.failures {
		return Retryable(ErrUnavailable)
	}
	return nil
}

func (c *recordingCache) Delete(_ context.Context, _ string) error { return nil }

func (c *recordingCache) Close() error { return nil }

func TestWithTTLOverridesSetTTL(t *testing.T) {
	inner := &recordingCache{}
	c := WithTTL(inner, time.Minute)

	if err := c.Set(context.Background(), "key", []byte("v"), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if inner.lastTTL != time.Minute {
		t.Errorf("Set stored with ttl %v, want %v", inner.lastTTL, time.Minute)
	}
}

func TestWithTTLZeroIsPassthrough(t *testing.T) {
	inner := &recordingCache{}
	if c := WithTTL(inner, 0); c != Cache(inner) {
		t.Error("Zero ttl should return the inner cache unchanged")
	}

	c := WithTTL(inner, -time.Second)
	_ = c.Set(context.Background(), "key", []byte("v"), time.Hour)
	if inner.lastTTL != time.Hour {
		t.Errorf("Negative ttl should not override: got %v", inner.lastTTL)
	}
}

func TestWithRetryReattemptsTransientFailures(t *testing.T) {
	inner := &recordingCache{failures: 1}
	c := WithRetry(inner)

	data, hit, err := c.Get(context.Background(), "key")
	if err != nil {
		t.Fatalf("Get should succeed after retry: %v", err)
	}
	if !hit || string(data) != "value" {
		t.Errorf("Get returned %q hit=%v, want value hit=true", data, hit)
	}
	if inner.calls != 2 {
		t.Errorf("Get should be attempted twice: %d", inner.calls)
	}
}

func TestWithRetryStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	inner := &recordingCache{failures: retryAttempts}
	c := WithRetry(inner)

	if err := c.Set(ctx, "key", []byte("v"), 0); err != context.Canceled {
		t.Errorf("Set should return context error: %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("Cancelled context should stop after the first attempt: %d", inner.calls)
	}
}

func TestRetryableError(t *testing.T) {
	// Retryable(nil) returns nil
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}

	// Non-nil error is wrapped
	err := Retryable(ErrUnavailable)
	if err == nil {
		t.Fatal("Retryable should return wrapped error")
	}
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}

	// Error message is preserved
	if err.Error() != ErrUnavailable.Error() {
		t.Errorf("Error message should be preserved: %s", err.Error())
	}

	// Non-wrapped errors are not retryable
	if IsRetryable(ErrNotFound) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()

	// Success on first try
	calls := 0
	err := RetryWithBackoff(ctx, func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Errorf("Should succeed: %v", err)
	}
	if calls != 1 {
		t.Errorf("Should call once: %d", calls)
	}

	// Non-retryable error stops immediately
	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		return ErrNotFound
	})
	if err != ErrNotFound {
		t.Errorf("Should return non-retryable error: %v", err)
	}
	if calls != 1 {
		t.Errorf("Should not retry non-retryable error: %d", calls)
	}

	// Retryable error triggers retries
	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		if calls < 2 {
			return Retryable(ErrUnavailable)
		}
		return nil
	})
	if err != nil {
		t.Errorf("Should succeed after retry: %v", err)
	}
	if calls != 2 {
		t.Errorf("Should retry once: %d", calls)
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	err := RetryWithBackoff(ctx, func() error {
		return Retryable(ErrUnavailable)
	})
	if err != context.Canceled {
		t.Errorf("Should return context error: %v", err)
	}
}
