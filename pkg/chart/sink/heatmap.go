package sink

import (
	"fmt"

	"github.com/fogleman/gg"
	"github.com/jthierer/bubblepack/pkg/errors"
	"github.com/jthierer/bubblepack/pkg/stats"
)

type heatmapConfig struct {
	cellSize int
	title    string
	annotate bool
}

// HeatmapOption configures RenderHeatmap.
type HeatmapOption func(*heatmapConfig)

// WithHeatmapCellSize sets the pixel size of each matrix cell.
func WithHeatmapCellSize(px int) HeatmapOption {
	return func(c *heatmapConfig) { c.cellSize = px }
}

// WithHeatmapTitle sets the chart title.
func WithHeatmapTitle(title string) HeatmapOption {
	return func(c *heatmapConfig) { c.title = title }
}

// WithHeatmapValues writes each coefficient inside its cell.
func WithHeatmapValues() HeatmapOption {
	return func(c *heatmapConfig) { c.annotate = true }
}

// RenderHeatmap draws a correlation matrix as a colored grid and returns
// PNG bytes. Coefficients map onto a red-yellow-green ramp: -1 is red,
// 0 is pale yellow, +1 is green.
func RenderHeatmap(m stats.CorrMatrix, opts ...HeatmapOption) ([]byte, error) {
	cfg := heatmapConfig{
		cellSize: 72,
		annotate: true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	n := len(m.Names)
	if n == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "heatmap requires a non-empty matrix")
	}
	if len(m.Values) != n {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"heatmap matrix has %d rows for %d names", len(m.Values), n)
	}
	for i, row := range m.Values {
		if len(row) != n {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"heatmap matrix row %d has %d values for %d names", i, len(row), n)
		}
	}

	cell := float64(cfg.cellSize)
	labelW := 110.0
	topH := 56.0
	width := int(labelW + cell*float64(n) + 20)
	height := int(topH + cell*float64(n) + 20)

	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	drawTitle(dc, float64(width), cfg.title)

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			x := labelW + cell*float64(j)
			y := topH + cell*float64(i)
			v := m.Values[i][j]

			r, g, b := divergingColor(v)
			dc.SetRGB(r, g, b)
			dc.DrawRectangle(x, y, cell, cell)
			dc.Fill()

			setHex(dc, "#ffffff")
			dc.SetLineWidth(1)
			dc.DrawRectangle(x, y, cell, cell)
			dc.Stroke()

			if cfg.annotate {
				// Dark text on pale cells, light text on saturated ones.
				if v > -0.5 && v < 0.5 {
					setHex(dc, "#333333")
				} else {
					setHex(dc, "#fafafa")
				}
				dc.DrawStringAnchored(fmt.Sprintf("%.2f", v), x+cell/2, y+cell/2, 0.5, 0.5)
			}
		}
	}

	setHex(dc, plotAxisColor)
	for i, name := range m.Names {
		dc.DrawStringAnchored(truncateLabel(name, 16), labelW-8, topH+cell*(float64(i)+0.5), 1, 0.5)
		dc.DrawStringAnchored(truncateLabel(name, 10), labelW+cell*(float64(i)+0.5), topH-10, 0.5, 0.5)
	}

	return encodePNG(dc)
}

// divergingColor maps a coefficient in [-1, 1] onto a red-yellow-green
// ramp. Values outside the range clamp to the endpoints.
func divergingColor(v float64) (float64, float64, float64) {
	if v < -1 {
		v = -1
	}
	if v > 1 {
		v = 1
	}
	lo := [3]float64{0.84, 0.19, 0.15}  // red at -1
	mid := [3]float64{1.00, 1.00, 0.75} // pale yellow at 0
	hi := [3]float64{0.10, 0.59, 0.31}  // green at +1

	var a, b [3]float64
	t := v
	if v < 0 {
		a, b = mid, lo
		t = -v
	} else {
		a, b = mid, hi
	}
	return a[0] + (b[0]-a[0])*t, a[1] + (b[1]-a[1])*t, a[2] + (b[2]-a[2])*t
}

// truncateLabel shortens s to max runes, ending in an ellipsis.
func truncateLabel(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
