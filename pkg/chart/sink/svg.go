package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/jthierer/bubblepack/pkg/chart"
)

const (
	// labelMinRadius is the smallest bubble radius that still gets a text
	// label; anything smaller would be unreadable.
	labelMinRadius = 18.0

	// labelMinFontSize and labelFontDivisor control label sizing: the
	// font grows with the bubble radius but never below the minimum.
	labelMinFontSize = 6.0
	labelFontDivisor = 4.0

	bubbleStrokeWidth = 1.2
	bubbleOpacity     = 0.95

	legendFontSize  = 10.0
	legendMarkerR   = 4.0
	legendRowHeight = 16.0
	legendPadding   = 12.0
)

// Style-dependent colors.
const (
	lightBackground = "#ffffff"
	lightText       = "#000000"
	darkBackground  = "#1e1e1e"
	darkText        = "#eeeeee"
)

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	labels bool
	legend bool
}

// WithSVGLabels toggles bubble labels (default on).
func WithSVGLabels(on bool) SVGOption { return func(r *svgRenderer) { r.labels = on } }

// WithSVGLegend toggles the sector legend (default on).
func WithSVGLegend(on bool) SVGOption { return func(r *svgRenderer) { r.legend = on } }

// RenderSVG renders the layout as an SVG document. The palette and style
// recorded in the layout select colors; unknown palettes are an error.
func RenderSVG(l chart.Layout, opts ...SVGOption) ([]byte, error) {
	r := svgRenderer{labels: true, legend: true}
	for _, opt := range opts {
		opt(&r)
	}

	colors, err := chart.SectorColors(l.Sectors(), paletteOrDefault(l.Palette))
	if err != nil {
		return nil, err
	}
	background, text := styleColors(l.Style)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		l.Width, l.Height, l.Width, l.Height)
	fmt.Fprintf(&buf, `  <rect width="%.1f" height="%.1f" fill="%s"/>`+"\n", l.Width, l.Height, background)

	for _, b := range l.Bubbles {
		fmt.Fprintf(&buf, `  <circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s" fill-opacity="%.2f" stroke="%s" stroke-width="%.1f"/>`+"\n",
			b.X, flipY(l, b.Y), b.R, colors[b.Sector], bubbleOpacity, background, bubbleStrokeWidth)
	}

	if r.labels {
		for _, b := range l.Bubbles {
			if b.R <= labelMinRadius {
				continue
			}
			fmt.Fprintf(&buf, `  <text x="%.2f" y="%.2f" text-anchor="middle" dominant-baseline="central" font-family="sans-serif" font-size="%.0f" font-weight="bold" fill="%s">%s</text>`+"\n",
				b.X, flipY(l, b.Y), labelFontSize(b.R), text, escapeXML(b.Label))
		}
	}

	if r.legend {
		renderLegend(&buf, l, colors, text)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

// flipY converts layout coordinates (y up) to SVG coordinates (y down).
func flipY(l chart.Layout, y float64) float64 {
	return l.Height - y
}

func labelFontSize(r float64) float64 {
	if size := r / labelFontDivisor; size > labelMinFontSize {
		return size
	}
	return labelMinFontSize
}

func paletteOrDefault(name string) string {
	if name == "" {
		return chart.DefaultPalette
	}
	return name
}

func styleColors(style string) (background, text string) {
	if style == chart.StyleDark {
		return darkBackground, darkText
	}
	return lightBackground, lightText
}

// renderLegend draws one marker and label per sector in the lower left.
func renderLegend(buf *bytes.Buffer, l chart.Layout, colors map[string]string, text string) {
	sectors := l.Sectors()
	y := l.Height - legendPadding - float64(len(sectors)-1)*legendRowHeight
	for _, s := range sectors {
		fmt.Fprintf(buf, `  <circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>`+"\n",
			legendPadding+legendMarkerR, y, legendMarkerR, colors[s])
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" dominant-baseline="central" font-family="sans-serif" font-size="%.0f" fill="%s">%s</text>`+"\n",
			legendPadding+2*legendMarkerR+6, y, legendFontSize, text, escapeXML(s))
		y += legendRowHeight
	}
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
