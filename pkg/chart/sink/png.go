package sink

import (
	"bytes"

	"github.com/fogleman/gg"

	"github.com/jthierer/bubblepack/pkg/chart"
)

// PNGOption configures PNG rendering via [RenderPNG].
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale  float64
	labels bool
	legend bool
}

// WithPNGScale sets the raster scale factor (default 2.0 for 2x resolution).
func WithPNGScale(s float64) PNGOption { return func(r *pngRenderer) { r.scale = s } }

// WithPNGLabels toggles bubble labels (default on).
func WithPNGLabels(on bool) PNGOption { return func(r *pngRenderer) { r.labels = on } }

// WithPNGLegend toggles the sector legend (default on).
func WithPNGLegend(on bool) PNGOption { return func(r *pngRenderer) { r.legend = on } }

// RenderPNG renders the layout as a PNG image using fogleman/gg. Labels use
// the built-in bitmap face, so unlike the SVG sink they do not scale with
// bubble size.
func RenderPNG(l chart.Layout, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2.0, labels: true, legend: true}
	for _, opt := range opts {
		opt(&r)
	}

	colors, err := chart.SectorColors(l.Sectors(), paletteOrDefault(l.Palette))
	if err != nil {
		return nil, err
	}
	background, text := styleColors(l.Style)

	dc := gg.NewContext(int(l.Width*r.scale), int(l.Height*r.scale))
	dc.Scale(r.scale, r.scale)

	setHex(dc, background)
	dc.Clear()

	for _, b := range l.Bubbles {
		setHexAlpha(dc, colors[b.Sector], bubbleOpacity)
		dc.DrawCircle(b.X, flipY(l, b.Y), b.R)
		dc.Fill()

		setHex(dc, background)
		dc.SetLineWidth(bubbleStrokeWidth)
		dc.DrawCircle(b.X, flipY(l, b.Y), b.R)
		dc.Stroke()
	}

	if r.labels {
		setHex(dc, text)
		for _, b := range l.Bubbles {
			if b.R <= labelMinRadius {
				continue
			}
			dc.DrawStringAnchored(b.Label, b.X, flipY(l, b.Y), 0.5, 0.5)
		}
	}

	if r.legend {
		y := l.Height - legendPadding - float64(len(l.Sectors())-1)*legendRowHeight
		for _, s := range l.Sectors() {
			setHex(dc, colors[s])
			dc.DrawCircle(legendPadding+legendMarkerR, y, legendMarkerR)
			dc.Fill()

			setHex(dc, text)
			dc.DrawStringAnchored(s, legendPadding+2*legendMarkerR+6, y, 0, 0.5)
			y += legendRowHeight
		}
	}

	return encodePNG(dc)
}

func encodePNG(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// setHex sets the drawing color from a #rrggbb string. Malformed colors
// fall back to black rather than failing a render mid-frame.
func setHex(dc *gg.Context, hex string) {
	r, g, b, err := chart.ParseHexColor(hex)
	if err != nil {
		dc.SetRGB(0, 0, 0)
		return
	}
	dc.SetRGB255(int(r), int(g), int(b))
}

func setHexAlpha(dc *gg.Context, hex string, alpha float64) {
	r, g, b, err := chart.ParseHexColor(hex)
	if err != nil {
		dc.SetRGBA(0, 0, 0, alpha)
		return
	}
	dc.SetRGBA255(int(r), int(g), int(b), int(alpha*255))
}
