package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/jthierer/bubblepack/pkg/cache"
	"github.com/jthierer/bubblepack/pkg/chart"
	"github.com/jthierer/bubblepack/pkg/chart/layout"
	"github.com/jthierer/bubblepack/pkg/dataset"
	"github.com/jthierer/bubblepack/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	loadStart := time.Now()
	d, hash, loadHit, err := r.LoadWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Dataset = d
	result.DatasetHash = hash
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.RowCount = len(d)
	result.CacheInfo.LoadHit = loadHit

	r.Logger.Info("loaded dataset",
		"rows", len(d),
		"sectors", len(d.Sectors()),
		"duration", result.Stats.LoadTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	l, stats, layoutHit, err := r.GenerateLayoutWithCacheInfo(ctx, d, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = l
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.BubbleCount = len(l.Bubbles)
	result.Stats.Fallbacks = stats.Fallbacks
	result.Stats.LastResorts = stats.LastResorts
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"bubbles", len(l.Bubbles),
		"fallbacks", stats.Fallbacks,
		"last_resorts", stats.LastResorts,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, l, d, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LoadWithCacheInfo loads the dataset with caching and returns cache hit info.
func (r *Runner) LoadWithCacheInfo(ctx context.Context, opts Options) (dataset.Dataset, string, bool, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, "", false, err
	}
	r.applyLogger(&opts)

	observability.Pipeline().OnLoadStart(ctx, opts.Input)
	start := time.Now()

	raw, err := rawInput(opts)
	if err != nil {
		observability.Pipeline().OnLoadComplete(ctx, opts.Input, 0, time.Since(start), err)
		return nil, "", false, err
	}
	hash := inputHash(raw)
	cacheKey := r.Keyer.DatasetKey(hash, opts.DatasetKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var d dataset.Dataset
			if err := json.Unmarshal(data, &d); err == nil {
				observability.Cache().OnCacheHit(ctx, "dataset")
				observability.Pipeline().OnLoadComplete(ctx, opts.Input, len(d), time.Since(start), nil)
				return d, hash, true, nil // Cache hit
			}
		}
		observability.Cache().OnCacheMiss(ctx, "dataset")
	}

	// Load and synthesize
	d, err := loadFromRaw(raw, opts)
	if err != nil {
		observability.Pipeline().OnLoadComplete(ctx, opts.Input, 0, time.Since(start), err)
		return nil, "", false, err
	}

	// Cache the result
	if !opts.Refresh {
		if data, err := json.Marshal(d); err == nil {
			_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLDataset)
			observability.Cache().OnCacheSet(ctx, "dataset", len(data))
		}
	}

	observability.Pipeline().OnLoadComplete(ctx, opts.Input, len(d), time.Since(start), nil)
	return d, hash, false, nil // Cache miss
}

// Load is a convenience wrapper that calls LoadWithCacheInfo and discards the cache hit info.
func (r *Runner) Load(ctx context.Context, opts Options) (dataset.Dataset, error) {
	d, _, _, err := r.LoadWithCacheInfo(ctx, opts)
	return d, err
}

// GenerateLayoutWithCacheInfo computes a layout with caching and returns cache hit info.
func (r *Runner) GenerateLayoutWithCacheInfo(ctx context.Context, d dataset.Dataset, opts Options) (chart.Layout, layout.Stats, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return chart.Layout{}, layout.Stats{}, false, err
	}
	opts.SetRenderDefaults() // layout records style and palette
	r.applyLogger(&opts)

	observability.Pipeline().OnLayoutStart(ctx, chart.VizTypeBubble, len(d))
	start := time.Now()

	// Compute cache key from dataset content
	datasetData, _ := json.Marshal(d)
	datasetHash := cache.Hash(datasetData)
	cacheKey := r.Keyer.LayoutKey(datasetHash, opts.LayoutKeyOpts())

	// Try cache first
	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		cached, err := chart.UnmarshalLayout(data)
		if err == nil {
			observability.Cache().OnCacheHit(ctx, "layout")
			observability.Pipeline().OnLayoutComplete(ctx, chart.VizTypeBubble,
				observability.LayoutStats{}, time.Since(start), nil)
			return cached, layout.Stats{}, true, nil // Cache hit
		}
		// If deserialization fails, fall through to recompute
	}
	observability.Cache().OnCacheMiss(ctx, "layout")

	// Generate layout
	l, stats, err := GenerateLayout(d, opts)
	if err != nil {
		observability.Pipeline().OnLayoutComplete(ctx, chart.VizTypeBubble,
			observability.LayoutStats{}, time.Since(start), err)
		return chart.Layout{}, stats, false, err
	}

	// Cache the result
	if data, err := chart.MarshalLayout(l); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout)
		observability.Cache().OnCacheSet(ctx, "layout", len(data))
	}

	observability.Pipeline().OnLayoutComplete(ctx, chart.VizTypeBubble,
		observability.LayoutStats{Fallbacks: stats.Fallbacks, LastResorts: stats.LastResorts},
		time.Since(start), nil)
	return l, stats, false, nil // Cache miss
}

// ComputeLayout is a convenience wrapper that calls GenerateLayoutWithCacheInfo
// and discards the stats and cache hit info.
func (r *Runner) ComputeLayout(ctx context.Context, d dataset.Dataset, opts Options) (chart.Layout, error) {
	l, _, _, err := r.GenerateLayoutWithCacheInfo(ctx, d, opts)
	return l, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l chart.Layout, d dataset.Dataset, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	// Compute cache key from layout data
	layoutData, err := chart.MarshalLayout(l)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
			break
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
		return artifacts, true, nil // All artifacts from cache
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	// Render all formats
	rendered, err := RenderFromLayout(l, d, opts)
	if err != nil {
		observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, l chart.Layout, d dataset.Dataset, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, d, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// inputHash identifies the raw dataset bytes for cache keys.
func inputHash(raw []byte) string {
	return cache.Hash(raw)
}
