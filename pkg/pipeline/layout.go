package pipeline

import (
	"fmt"

	"github.com/jthierer/bubblepack/pkg/chart"
	"github.com/jthierer/bubblepack/pkg/chart/layout"
	"github.com/jthierer/bubblepack/pkg/dataset"
)

// GenerateLayout packs the dataset's rows onto the canvas, largest
// investment first, and returns the positioned chart along with packing
// stats.
func GenerateLayout(d dataset.Dataset, opts Options) (chart.Layout, layout.Stats, error) {
	// Sort a copy so callers keep their row order.
	sorted := make(dataset.Dataset, len(d))
	copy(sorted, d)
	sorted.SortBySize()

	items := make([]layout.Item, len(sorted))
	for i, row := range sorted {
		items[i] = layout.Item{
			ID:     fmt.Sprintf("b%d", i),
			Label:  row.Asset,
			Group:  row.Sector,
			Weight: float64(row.Investment),
		}
	}

	bubbles, stats, err := layout.Compute(items, layout.Options{
		Size:   opts.CanvasSize,
		Margin: opts.Margin,
	})
	if err != nil {
		return chart.Layout{}, stats, err
	}

	l := chart.Layout{
		VizType: chart.VizTypeBubble,
		Width:   opts.CanvasSize,
		Height:  opts.CanvasSize,
		Margin:  opts.Margin,
		Style:   opts.Style,
		Palette: opts.Palette,
		Seed:    opts.Seed,
		Bubbles: chart.FromBubbles(bubbles),
	}
	return l, stats, nil
}
