package pipeline

import (
	"fmt"

	"github.com/jthierer/bubblepack/pkg/chart"
	"github.com/jthierer/bubblepack/pkg/chart/sink"
	"github.com/jthierer/bubblepack/pkg/dataset"
)

// RenderFromLayout renders every requested format from a computed layout.
// CSV and TSV exports come from the dataset rather than the layout since
// they carry the raw rows, not geometry.
func RenderFromLayout(l chart.Layout, d dataset.Dataset, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		data, err := renderFormat(l, d, format, opts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderFormat(l chart.Layout, d dataset.Dataset, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		return sink.RenderSVG(l,
			sink.WithSVGLabels(opts.ShowLabels()),
			sink.WithSVGLegend(opts.ShowLegend()))
	case FormatPNG:
		return sink.RenderPNG(l,
			sink.WithPNGScale(opts.Scale),
			sink.WithPNGLabels(opts.ShowLabels()),
			sink.WithPNGLegend(opts.ShowLegend()))
	case FormatJSON:
		return sink.RenderJSON(l)
	case FormatCSV:
		return sink.RenderCSV(d)
	case FormatTSV:
		return sink.RenderTSV(d)
	default:
		return nil, fmt.Errorf("invalid format: %q", format)
	}
}
