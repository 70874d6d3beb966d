package sink

import (
	"strings"
	"testing"

	"github.com/jthierer/bubblepack/pkg/chart"
)

func testLayout() chart.Layout {
	return chart.Layout{
		VizType: chart.VizTypeBubble,
		Width:   512,
		Height:  512,
		Margin:  20,
		Style:   chart.StyleLight,
		Palette: "tab20",
		Bubbles: []chart.Bubble{
			{ID: "b0", Label: "Acme Corp", Sector: "Tech", X: 256, Y: 256, R: 80},
			{ID: "b1", Label: "Tiny & Co", Sector: "Energy", X: 120, Y: 300, R: 12},
		},
	}
}

func TestRenderSVGStructure(t *testing.T) {
	out, err := RenderSVG(testLayout(), WithSVGLegend(false))
	if err != nil {
		t.Fatalf("RenderSVG failed: %v", err)
	}
	svg := string(out)

	for _, want := range []string{
		`<svg xmlns="http://www.w3.org/2000/svg"`,
		`width="512"`,
		`height="512"`,
		`<circle`,
		`</svg>`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
	if got := strings.Count(svg, "<circle"); got != 2 {
		t.Errorf("expected 2 circles, got %d", got)
	}
}

func TestRenderSVGFlipsY(t *testing.T) {
	out, err := RenderSVG(testLayout())
	if err != nil {
		t.Fatalf("RenderSVG failed: %v", err)
	}
	// Layout y=300 on a 512px canvas lands at SVG y=212.
	if !strings.Contains(string(out), `cy="212`) {
		t.Errorf("expected flipped y coordinate 212 in output")
	}
}

func TestRenderSVGLabels(t *testing.T) {
	out, err := RenderSVG(testLayout(), WithSVGLabels(true))
	if err != nil {
		t.Fatalf("RenderSVG failed: %v", err)
	}
	svg := string(out)

	if !strings.Contains(svg, "Acme Corp") {
		t.Errorf("expected label for large bubble")
	}
	// Radius 12 falls under the label threshold.
	if strings.Contains(svg, "Tiny") {
		t.Errorf("small bubble should not be labeled")
	}
}

func TestRenderSVGEscapesLabels(t *testing.T) {
	l := testLayout()
	l.Bubbles[0].Label = `<Fund> "A" & B`
	l.Bubbles[0].R = 100

	out, err := RenderSVG(l, WithSVGLabels(true))
	if err != nil {
		t.Fatalf("RenderSVG failed: %v", err)
	}
	svg := string(out)
	if strings.Contains(svg, "<Fund>") {
		t.Errorf("raw markup leaked into SVG output")
	}
	if !strings.Contains(svg, "&lt;Fund&gt;") {
		t.Errorf("expected escaped label in output")
	}
}

func TestRenderSVGLegend(t *testing.T) {
	out, err := RenderSVG(testLayout(), WithSVGLegend(true))
	if err != nil {
		t.Fatalf("RenderSVG failed: %v", err)
	}
	svg := string(out)
	for _, sector := range []string{"Tech", "Energy"} {
		if !strings.Contains(svg, sector) {
			t.Errorf("legend missing sector %q", sector)
		}
	}
}

func TestRenderSVGDarkStyle(t *testing.T) {
	l := testLayout()
	l.Style = chart.StyleDark
	out, err := RenderSVG(l)
	if err != nil {
		t.Fatalf("RenderSVG failed: %v", err)
	}
	if !strings.Contains(string(out), darkBackground) {
		t.Errorf("expected dark background fill")
	}
}

func TestRenderSVGEmptyLayout(t *testing.T) {
	l := testLayout()
	l.Bubbles = nil
	out, err := RenderSVG(l)
	if err != nil {
		t.Fatalf("RenderSVG failed on empty layout: %v", err)
	}
	if strings.Contains(string(out), "<circle") {
		t.Errorf("empty layout should render no circles")
	}
}
