package sink

import (
	"fmt"
	"math"

	"github.com/fogleman/gg"
	"github.com/jthierer/bubblepack/pkg/errors"
	"github.com/jthierer/bubblepack/pkg/stats"
)

// BoxGroup is one labeled sample set on a box plot.
type BoxGroup struct {
	Label   string
	Samples []float64
}

type boxPlotConfig struct {
	width, height int
	title         string
	yLabel        string
	fillColor     string
	palette       []string
}

// BoxPlotOption configures RenderBoxPlot.
type BoxPlotOption func(*boxPlotConfig)

// WithBoxSize sets the output dimensions in pixels.
func WithBoxSize(width, height int) BoxPlotOption {
	return func(c *boxPlotConfig) {
		c.width = width
		c.height = height
	}
}

// WithBoxTitle sets the chart title.
func WithBoxTitle(title string) BoxPlotOption {
	return func(c *boxPlotConfig) { c.title = title }
}

// WithBoxPalette colors each box from the palette in group order instead
// of the single default fill.
func WithBoxPalette(palette []string) BoxPlotOption {
	return func(c *boxPlotConfig) { c.palette = palette }
}

// RenderBoxPlot draws a five-number-summary box plot for one or more
// sample groups and returns PNG bytes. Whiskers extend to the furthest
// sample within 1.5 IQR of the box; samples beyond that draw as outlier
// points.
func RenderBoxPlot(groups []BoxGroup, opts ...BoxPlotOption) ([]byte, error) {
	cfg := boxPlotConfig{
		width:     800,
		height:    500,
		fillColor: "#8ecae6",
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if len(groups) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "box plot requires at least one group")
	}
	summaries := make([]stats.FiveNumber, len(groups))
	for i, g := range groups {
		if len(g.Samples) == 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"box plot group %q has no samples", g.Label)
		}
		summaries[i] = stats.Summary(g.Samples)
	}

	yMin, yMax := math.Inf(1), math.Inf(-1)
	for i, g := range groups {
		lo, hi := whiskerBounds(summaries[i], g.Samples)
		yMin = math.Min(yMin, math.Min(lo, minOf(g.Samples)))
		yMax = math.Max(yMax, math.Max(hi, maxOf(g.Samples)))
	}
	yMin, yMax = pad(yMin, yMax, 0.05)

	dc := gg.NewContext(cfg.width, cfg.height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	p := newPlotArea(float64(cfg.width), float64(cfg.height), yMin, yMax, 0, float64(len(groups)))
	drawYAxis(dc, p, func(v float64) string { return formatTick(v) })
	drawTitle(dc, float64(cfg.width), cfg.title)

	slot := p.w / float64(len(groups))
	boxW := slot * 0.5
	for i, g := range groups {
		cx := p.x + slot*(float64(i)+0.5)
		fill := cfg.fillColor
		if len(cfg.palette) > 0 {
			fill = cfg.palette[i%len(cfg.palette)]
		}
		drawBox(dc, p, cx, boxW, summaries[i], g.Samples, fill)

		setHex(dc, plotAxisColor)
		dc.DrawStringAnchored(g.Label, cx, p.y+p.h+16, 0.5, 0.5)
	}

	return encodePNG(dc)
}

// whiskerBounds returns the furthest sample values inside the 1.5 IQR
// fences, clamped to the quartiles when no sample lies past them.
func whiskerBounds(s stats.FiveNumber, samples []float64) (float64, float64) {
	loFence, hiFence := s.WhiskerLow(), s.WhiskerHigh()
	lo, hi := s.Q1, s.Q3
	for _, v := range samples {
		if v >= loFence && v < lo {
			lo = v
		}
		if v <= hiFence && v > hi {
			hi = v
		}
	}
	return lo, hi
}

func drawBox(dc *gg.Context, p plotArea, cx, boxW float64, s stats.FiveNumber, samples []float64, fill string) {
	lo, hi := whiskerBounds(s, samples)

	yQ1, yQ3 := p.py(s.Q1), p.py(s.Q3)
	yMed := p.py(s.Median)
	yLo, yHi := p.py(lo), p.py(hi)
	capW := boxW * 0.5

	// Whiskers and caps.
	setHex(dc, plotAxisColor)
	dc.SetLineWidth(1.2)
	dc.DrawLine(cx, yQ3, cx, yHi)
	dc.Stroke()
	dc.DrawLine(cx, yQ1, cx, yLo)
	dc.Stroke()
	dc.DrawLine(cx-capW/2, yHi, cx+capW/2, yHi)
	dc.Stroke()
	dc.DrawLine(cx-capW/2, yLo, cx+capW/2, yLo)
	dc.Stroke()

	// Box and median line.
	setHexAlpha(dc, fill, 0.9)
	dc.DrawRectangle(cx-boxW/2, yQ3, boxW, yQ1-yQ3)
	dc.Fill()
	setHex(dc, plotAxisColor)
	dc.DrawRectangle(cx-boxW/2, yQ3, boxW, yQ1-yQ3)
	dc.Stroke()
	dc.SetLineWidth(1.8)
	dc.DrawLine(cx-boxW/2, yMed, cx+boxW/2, yMed)
	dc.Stroke()

	// Outliers past the whiskers.
	setHexAlpha(dc, plotAxisColor, 0.7)
	for _, v := range samples {
		if v < lo || v > hi {
			dc.DrawCircle(cx, p.py(v), 2.5)
			dc.Fill()
		}
	}
}

func minOf(vs []float64) float64 {
	m := vs[0]
	for _, v := range vs[1:] {
		m = math.Min(m, v)
	}
	return m
}

func maxOf(vs []float64) float64 {
	m := vs[0]
	for _, v := range vs[1:] {
		m = math.Max(m, v)
	}
	return m
}

// formatTick trims trailing zeros so axis labels stay compact.
func formatTick(v float64) string {
	if math.Abs(v) >= 10000 {
		return fmt.Sprintf("%.3g", v)
	}
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2f", v)
}
