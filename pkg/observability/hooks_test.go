package observability

import (
	"context"
	"testing"
	"time"
)

type recordingPipelineHooks struct {
	NoopPipelineHooks
	layoutStarts    int
	layoutCompletes int
	lastStats       LayoutStats
}

func (h *recordingPipelineHooks) OnLayoutStart(ctx context.Context, vizType string, n int) {
	h.layoutStarts++
}

func (h *recordingPipelineHooks) OnLayoutComplete(ctx context.Context, vizType string, stats LayoutStats, d time.Duration, err error) {
	h.layoutCompletes++
	h.lastStats = stats
}

type recordingCacheHooks struct {
	NoopCacheHooks
	hits, misses, sets int
}

func (h *recordingCacheHooks) OnCacheHit(ctx context.Context, keyType string)       { h.hits++ }
func (h *recordingCacheHooks) OnCacheMiss(ctx context.Context, keyType string)      { h.misses++ }
func (h *recordingCacheHooks) OnCacheSet(ctx context.Context, keyType string, n int) { h.sets++ }

func TestDefaultHooksAreNoop(t *testing.T) {
	Reset()
	ctx := context.Background()

	// No-ops must not panic.
	Pipeline().OnLoadStart(ctx, "data.json")
	Pipeline().OnLayoutStart(ctx, "bubble", 10)
	Pipeline().OnLayoutComplete(ctx, "bubble", LayoutStats{}, time.Millisecond, nil)
	Cache().OnCacheHit(ctx, "layout")
	HTTP().OnRequest(ctx, "POST", "/api/render")
}

func TestSetPipelineHooks(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	h := &recordingPipelineHooks{}
	SetPipelineHooks(h)

	ctx := context.Background()
	Pipeline().OnLayoutStart(ctx, "bubble", 5)
	Pipeline().OnLayoutComplete(ctx, "bubble", LayoutStats{Fallbacks: 2, LastResorts: 1}, time.Millisecond, nil)

	if h.layoutStarts != 1 || h.layoutCompletes != 1 {
		t.Errorf("hooks not invoked: starts=%d completes=%d", h.layoutStarts, h.layoutCompletes)
	}
	if h.lastStats.Fallbacks != 2 || h.lastStats.LastResorts != 1 {
		t.Errorf("layout stats not forwarded: %+v", h.lastStats)
	}
}

func TestSetCacheHooks(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	h := &recordingCacheHooks{}
	SetCacheHooks(h)

	ctx := context.Background()
	Cache().OnCacheMiss(ctx, "layout")
	Cache().OnCacheSet(ctx, "layout", 128)
	Cache().OnCacheHit(ctx, "layout")

	if h.hits != 1 || h.misses != 1 || h.sets != 1 {
		t.Errorf("cache hooks not invoked: %+v", h)
	}
}

func TestSetNilHookIsIgnored(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	SetPipelineHooks(nil)
	if Pipeline() == nil {
		t.Fatal("nil registration should keep the previous hooks")
	}
}

func TestReset(t *testing.T) {
	h := &recordingPipelineHooks{}
	SetPipelineHooks(h)
	Reset()

	Pipeline().OnLayoutStart(context.Background(), "bubble", 1)
	if h.layoutStarts != 0 {
		t.Error("Reset should restore no-op hooks")
	}
}
