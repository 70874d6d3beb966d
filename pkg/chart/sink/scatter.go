package sink

import (
	"fmt"

	"github.com/fogleman/gg"
	"github.com/jthierer/bubblepack/pkg/errors"
	"github.com/jthierer/bubblepack/pkg/stats"
)

type scatterConfig struct {
	width, height int
	title         string
	xLabel        string
	yLabel        string
	pointColor    string
	annotate      bool
}

// ScatterOption configures RenderScatter.
type ScatterOption func(*scatterConfig)

// WithScatterSize sets the output dimensions in pixels.
func WithScatterSize(width, height int) ScatterOption {
	return func(c *scatterConfig) {
		c.width = width
		c.height = height
	}
}

// WithScatterTitle sets the chart title.
func WithScatterTitle(title string) ScatterOption {
	return func(c *scatterConfig) { c.title = title }
}

// WithScatterLabels sets the axis labels.
func WithScatterLabels(xLabel, yLabel string) ScatterOption {
	return func(c *scatterConfig) {
		c.xLabel = xLabel
		c.yLabel = yLabel
	}
}

// WithScatterColor sets the point fill color.
func WithScatterColor(hex string) ScatterOption {
	return func(c *scatterConfig) { c.pointColor = hex }
}

// WithScatterStats appends the sample count and Pearson correlation to
// the title.
func WithScatterStats() ScatterOption {
	return func(c *scatterConfig) { c.annotate = true }
}

// RenderScatter draws an x/y scatter plot and returns PNG bytes. The
// two series must have equal length.
func RenderScatter(xs, ys []float64, opts ...ScatterOption) ([]byte, error) {
	cfg := scatterConfig{
		width:      800,
		height:     600,
		pointColor: "#1f77b4",
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if len(xs) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "scatter plot requires at least one point")
	}
	if len(xs) != len(ys) {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"scatter series length mismatch: %d x values, %d y values", len(xs), len(ys))
	}

	title := cfg.title
	if cfg.annotate {
		r := stats.Pearson(xs, ys)
		suffix := fmt.Sprintf("n=%d, r=%.3f", len(xs), r)
		if title == "" {
			title = suffix
		} else {
			title = fmt.Sprintf("%s (%s)", title, suffix)
		}
	}

	xMin, xMax := pad(minOf(xs), maxOf(xs), 0.05)
	yMin, yMax := pad(minOf(ys), maxOf(ys), 0.05)

	dc := gg.NewContext(cfg.width, cfg.height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	p := newPlotArea(float64(cfg.width), float64(cfg.height), yMin, yMax, xMin, xMax)
	drawYAxis(dc, p, formatTick)
	drawScatterXAxis(dc, p)
	drawTitle(dc, float64(cfg.width), title)

	if cfg.xLabel != "" {
		setHex(dc, plotAxisColor)
		dc.DrawStringAnchored(cfg.xLabel, p.x+p.w/2, p.y+p.h+32, 0.5, 0.5)
	}
	if cfg.yLabel != "" {
		setHex(dc, plotAxisColor)
		dc.Push()
		dc.RotateAbout(-1.5707963267948966, 16, p.y+p.h/2)
		dc.DrawStringAnchored(cfg.yLabel, 16, p.y+p.h/2, 0.5, 0.5)
		dc.Pop()
	}

	for i := range xs {
		setHexAlpha(dc, cfg.pointColor, 0.6)
		dc.DrawCircle(p.px(xs[i]), p.py(ys[i]), 3.5)
		dc.Fill()
		setHexAlpha(dc, cfg.pointColor, 1)
		dc.DrawCircle(p.px(xs[i]), p.py(ys[i]), 3.5)
		dc.SetLineWidth(0.8)
		dc.Stroke()
	}

	return encodePNG(dc)
}

// drawScatterXAxis draws vertical grid lines, x tick marks, and labels.
// The axis lines themselves come from drawYAxis.
func drawScatterXAxis(dc *gg.Context, p plotArea) {
	for _, v := range ticks(p.xMin, p.xMax, 7) {
		x := p.px(v)

		setHex(dc, plotGridColor)
		dc.SetLineWidth(1)
		dc.DrawLine(x, p.y, x, p.y+p.h)
		dc.Stroke()

		setHex(dc, plotAxisColor)
		dc.DrawLine(x, p.y+p.h, x, p.y+p.h+plotTickLen)
		dc.Stroke()
		dc.DrawStringAnchored(formatTick(v), x, p.y+p.h+plotTickLen+8, 0.5, 0.5)
	}
}
