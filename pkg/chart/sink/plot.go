package sink

import (
	"math"

	"github.com/fogleman/gg"
)

// Shared geometry for the statistical charts.
const (
	plotMarginLeft   = 60.0
	plotMarginRight  = 20.0
	plotMarginTop    = 48.0
	plotMarginBottom = 48.0

	plotGridColor = "#d9d9d9"
	plotAxisColor = "#444444"
	plotTickLen   = 4.0
)

// plotArea is the inner drawing region of a chart, with linear value-to-
// pixel mapping on the y axis (and x axis for scatter plots).
type plotArea struct {
	x, y, w, h float64 // pixel bounds of the inner region
	yMin, yMax float64
	xMin, xMax float64
}

func newPlotArea(width, height, yMin, yMax, xMin, xMax float64) plotArea {
	return plotArea{
		x:    plotMarginLeft,
		y:    plotMarginTop,
		w:    width - plotMarginLeft - plotMarginRight,
		h:    height - plotMarginTop - plotMarginBottom,
		yMin: yMin,
		yMax: yMax,
		xMin: xMin,
		xMax: xMax,
	}
}

// py maps a data value to a pixel y coordinate (larger values higher up).
func (p plotArea) py(v float64) float64 {
	if p.yMax == p.yMin {
		return p.y + p.h/2
	}
	return p.y + p.h*(1-(v-p.yMin)/(p.yMax-p.yMin))
}

// px maps a data value to a pixel x coordinate.
func (p plotArea) px(v float64) float64 {
	if p.xMax == p.xMin {
		return p.x + p.w/2
	}
	return p.x + p.w*(v-p.xMin)/(p.xMax-p.xMin)
}

// niceStep returns a rounded tick step (1, 2, or 5 times a power of ten)
// producing roughly targetTicks intervals over the span.
func niceStep(span float64, targetTicks int) float64 {
	if span <= 0 || targetTicks <= 0 {
		return 1
	}
	raw := span / float64(targetTicks)
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	switch norm := raw / mag; {
	case norm < 1.5:
		return mag
	case norm < 3.5:
		return 2 * mag
	case norm < 7.5:
		return 5 * mag
	default:
		return 10 * mag
	}
}

// ticks returns tick values covering [min, max] at a nice step.
func ticks(min, max float64, targetTicks int) []float64 {
	step := niceStep(max-min, targetTicks)
	first := math.Ceil(min/step) * step
	var out []float64
	for v := first; v <= max+step/2; v += step {
		out = append(out, v)
	}
	return out
}

// pad widens a [min, max] range by frac on both sides. A degenerate range
// gets a unit of padding so charts of constant data still draw.
func pad(min, max, frac float64) (float64, float64) {
	if min == max {
		return min - 1, max + 1
	}
	d := (max - min) * frac
	return min - d, max + d
}

// drawTitle draws a centered chart title.
func drawTitle(dc *gg.Context, width float64, title string) {
	if title == "" {
		return
	}
	setHex(dc, plotAxisColor)
	dc.DrawStringAnchored(title, width/2, plotMarginTop/2, 0.5, 0.5)
}

// drawYAxis draws the left axis line, tick marks, labels, and horizontal
// grid lines.
func drawYAxis(dc *gg.Context, p plotArea, format func(float64) string) {
	for _, v := range ticks(p.yMin, p.yMax, 6) {
		y := p.py(v)

		setHex(dc, plotGridColor)
		dc.SetLineWidth(1)
		dc.DrawLine(p.x, y, p.x+p.w, y)
		dc.Stroke()

		setHex(dc, plotAxisColor)
		dc.DrawLine(p.x-plotTickLen, y, p.x, y)
		dc.Stroke()
		dc.DrawStringAnchored(format(v), p.x-plotTickLen-4, y, 1, 0.5)
	}

	setHex(dc, plotAxisColor)
	dc.SetLineWidth(1.5)
	dc.DrawLine(p.x, p.y, p.x, p.y+p.h)
	dc.Stroke()
	dc.DrawLine(p.x, p.y+p.h, p.x+p.w, p.y+p.h)
	dc.Stroke()
}
