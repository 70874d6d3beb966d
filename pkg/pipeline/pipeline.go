// Package pipeline provides the core chart pipeline for bubblepack.
//
// This package implements the complete load → layout → render pipeline that
// can be used by CLI and server components. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read the investment dataset and top it up with synthetic rows
//  2. Layout: Pack the weighted bubbles onto the canvas
//  3. Render: Generate output in various formats (SVG, PNG, JSON, CSV, TSV)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Input:   "portfolio.json",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Load only
//	d, err := runner.Load(ctx, opts)
//
//	// Layout with an existing dataset
//	layout, err := runner.ComputeLayout(ctx, d, opts)
//
//	// Render with an existing layout
//	artifacts, err := runner.Render(ctx, layout, d, opts)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/jthierer/bubblepack/pkg/cache"
	"github.com/jthierer/bubblepack/pkg/chart"
	"github.com/jthierer/bubblepack/pkg/dataset"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultCanvasSize is the default square canvas edge length in pixels.
	DefaultCanvasSize = 512.0

	// DefaultMargin is the default padding between the packed bubbles and
	// the canvas edge.
	DefaultMargin = 20.0

	// DefaultMinRows is the minimum dataset size; smaller inputs are
	// topped up with synthetic rows.
	DefaultMinRows = 15

	// DefaultSeed is the default random seed for synthetic rows.
	DefaultSeed = int64(42)

	// DefaultScale is the default PNG supersampling factor.
	DefaultScale = 2.0
)

// DefaultStyle is the default visual style.
const DefaultStyle = chart.StyleLight

// DefaultPalette is the default color palette.
const DefaultPalette = chart.DefaultPalette

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatTSV  = "tsv"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
	FormatCSV:  true,
	FormatTSV:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the chart pipeline.
// This struct supports JSON serialization for server requests.
type Options struct {
	// Load options. Exactly one of Input or Data must be set: Input names
	// a JSON dataset file, Data carries raw JSON inline (server usage).
	Input   string `json:"input,omitempty"`
	Data    []byte `json:"data,omitempty"`
	MinRows int    `json:"min_rows,omitempty"`
	Seed    int64  `json:"seed,omitempty"`
	NoSynth bool   `json:"no_synth,omitempty"` // Skip synthetic row generation
	Refresh bool   `json:"refresh,omitempty"`  // Bypass the dataset cache

	// Layout options
	CanvasSize float64 `json:"canvas_size,omitempty"`
	Margin     float64 `json:"margin,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Style   string   `json:"style,omitempty"`
	Palette string   `json:"palette,omitempty"`
	Scale   float64  `json:"scale,omitempty"`
	Labels  *bool    `json:"labels,omitempty"` // nil means default (on)
	Legend  *bool    `json:"legend,omitempty"` // nil means default (on)

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Dataset is the loaded (and possibly synthesized) dataset.
	Dataset dataset.Dataset

	// DatasetHash is the content hash of the dataset.
	DatasetHash string

	// Layout contains the computed bubble positions.
	Layout chart.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	RowCount    int
	BubbleCount int
	Fallbacks   int
	LastResorts int
	LoadTime    time.Duration
	LayoutTime  time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LoadHit   bool // Whether the dataset came from cache
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: svg, png, json, csv, tsv)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	o.validated = true
	return nil
}

// ValidateForLoad checks required fields for the load stage.
func (o *Options) ValidateForLoad() error {
	if o.Input == "" && len(o.Data) == 0 {
		return fmt.Errorf("input file or inline data is required")
	}
	if o.Input != "" && len(o.Data) > 0 {
		return fmt.Errorf("input file and inline data are mutually exclusive")
	}

	// Load defaults
	if o.MinRows == 0 {
		o.MinRows = DefaultMinRows
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}

	// Logger default
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.CanvasSize == 0 {
		o.CanvasSize = DefaultCanvasSize
	}
	if o.Margin == 0 {
		o.Margin = DefaultMargin
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if o.CanvasSize <= 0 {
		return fmt.Errorf("canvas size must be positive")
	}
	if o.Margin < 0 || o.Margin*2 >= o.CanvasSize {
		return fmt.Errorf("margin must fit within the canvas")
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Palette == "" {
		o.Palette = DefaultPalette
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := chart.ValidateStyle(o.Style); err != nil {
		return err
	}
	return chart.ValidatePalette(o.Palette)
}

// ShowLabels reports whether bubble labels should be drawn.
func (o *Options) ShowLabels() bool {
	return o.Labels == nil || *o.Labels
}

// ShowLegend reports whether the sector legend should be drawn.
func (o *Options) ShowLegend() bool {
	return o.Legend == nil || *o.Legend
}

// DatasetKeyOpts returns cache key options for the load stage.
func (o *Options) DatasetKeyOpts() cache.DatasetKeyOpts {
	minRows := o.MinRows
	if o.NoSynth {
		minRows = 0
	}
	return cache.DatasetKeyOpts{
		MinRows: minRows,
		Seed:    o.Seed,
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		VizType: chart.VizTypeBubble,
		Width:   o.CanvasSize,
		Height:  o.CanvasSize,
		Margin:  o.Margin,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:  format,
		Style:   o.Style,
		Palette: o.Palette,
		Scale:   o.Scale,
		Labels:  o.ShowLabels(),
		Legend:  o.ShowLegend(),
	}
}
