package chart

import (
	"path/filepath"
	"testing"

	"github.com/jthierer/bubblepack/pkg/chart/layout"
	"github.com/jthierer/bubblepack/pkg/errors"
)

func sampleLayout() Layout {
	return Layout{
		VizType: VizTypeBubble,
		Width:   512,
		Height:  512,
		Margin:  20,
		Style:   StyleLight,
		Palette: PaletteTab20,
		Bubbles: []Bubble{
			{ID: "a", Label: "Asset A", Sector: "Tech", X: 200, Y: 250, R: 100},
			{ID: "b", Label: "Asset B", Sector: "Energy", X: 380, Y: 250, R: 80},
		},
	}
}

func TestLayoutRoundTrip(t *testing.T) {
	l := sampleLayout()

	data, err := MarshalLayout(l)
	if err != nil {
		t.Fatalf("MarshalLayout error = %v", err)
	}

	got, err := UnmarshalLayout(data)
	if err != nil {
		t.Fatalf("UnmarshalLayout error = %v", err)
	}

	if got.VizType != VizTypeBubble || got.Width != 512 || len(got.Bubbles) != 2 {
		t.Errorf("round trip result = %+v", got)
	}
	if got.Bubbles[0] != l.Bubbles[0] {
		t.Errorf("Bubbles[0] = %+v, want %+v", got.Bubbles[0], l.Bubbles[0])
	}
}

func TestUnmarshalLayoutDefaultsVizType(t *testing.T) {
	got, err := UnmarshalLayout([]byte(`{"width": 100, "height": 100, "bubbles": [{"id": "a", "x": 1, "y": 2, "r": 3}]}`))
	if err != nil {
		t.Fatalf("UnmarshalLayout error = %v", err)
	}
	if got.VizType != VizTypeBubble {
		t.Errorf("VizType = %q, want %q", got.VizType, VizTypeBubble)
	}
}

func TestUnmarshalLayoutInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", "nope"},
		{"unknown viz type", `{"viz_type": "tower", "width": 1, "height": 1, "bubbles": [{"id": "a"}]}`},
		{"no bubbles", `{"width": 100, "height": 100}`},
		{"zero dimensions", `{"bubbles": [{"id": "a"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalLayout([]byte(tt.data))
			if err == nil {
				t.Fatal("UnmarshalLayout error = nil, want INVALID_LAYOUT")
			}
			if !errors.Is(err, errors.ErrCodeInvalidLayout) {
				t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidLayout)
			}
		})
	}
}

func TestLayoutFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.json")

	if err := WriteLayoutFile(sampleLayout(), path); err != nil {
		t.Fatalf("WriteLayoutFile error = %v", err)
	}

	got, err := ReadLayoutFile(path)
	if err != nil {
		t.Fatalf("ReadLayoutFile error = %v", err)
	}
	if len(got.Bubbles) != 2 {
		t.Errorf("len(Bubbles) = %d, want 2", len(got.Bubbles))
	}
}

func TestSectors(t *testing.T) {
	l := Layout{Bubbles: []Bubble{
		{ID: "a", Sector: "Tech"},
		{ID: "b", Sector: "Energy"},
		{ID: "c", Sector: "Tech"},
	}}

	got := l.Sectors()
	want := []string{"Tech", "Energy"}
	if len(got) != len(want) {
		t.Fatalf("Sectors() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Sectors()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFromBubbles(t *testing.T) {
	in := []layout.Bubble{{ID: "a", Label: "A", Group: "Tech", X: 1, Y: 2, R: 3}}
	got := FromBubbles(in)

	want := Bubble{ID: "a", Label: "A", Sector: "Tech", X: 1, Y: 2, R: 3}
	if got[0] != want {
		t.Errorf("FromBubbles()[0] = %+v, want %+v", got[0], want)
	}
}

func TestSectorColors(t *testing.T) {
	colors, err := SectorColors([]string{"Tech", "Energy", "Agri"}, PaletteSet2)
	if err != nil {
		t.Fatalf("SectorColors error = %v", err)
	}

	// Assignment is by sorted name: Agri, Energy, Tech.
	if colors["Agri"] != "#66c2a5" {
		t.Errorf("Agri = %q, want first palette color", colors["Agri"])
	}
	if colors["Energy"] != "#fc8d62" {
		t.Errorf("Energy = %q, want second palette color", colors["Energy"])
	}

	if _, err := SectorColors([]string{"x"}, "nope"); !errors.Is(err, errors.ErrCodeInvalidPalette) {
		t.Errorf("unknown palette error = %v, want INVALID_PALETTE", err)
	}
}

func TestSectorColorsCycle(t *testing.T) {
	sectors := make([]string, 10)
	for i := range sectors {
		sectors[i] = string(rune('a' + i))
	}
	colors, err := SectorColors(sectors, PaletteSet2) // 8 colors for 10 sectors
	if err != nil {
		t.Fatalf("SectorColors error = %v", err)
	}
	if colors["a"] != colors["i"] {
		t.Errorf("expected color cycling: a=%q i=%q", colors["a"], colors["i"])
	}
}

func TestValidatePalette(t *testing.T) {
	if err := ValidatePalette(PaletteTab20); err != nil {
		t.Errorf("ValidatePalette(tab20) = %v, want nil", err)
	}
	if err := ValidatePalette("viridis"); err == nil {
		t.Error("ValidatePalette(viridis) = nil, want error")
	}
}

func TestValidateStyle(t *testing.T) {
	if err := ValidateStyle(StyleLight); err != nil {
		t.Errorf("ValidateStyle(light) = %v, want nil", err)
	}
	if err := ValidateStyle("handdrawn"); err == nil {
		t.Error("ValidateStyle(handdrawn) = nil, want error")
	}
}

func TestParseHexColor(t *testing.T) {
	r, g, b, err := ParseHexColor("#1f77b4")
	if err != nil {
		t.Fatalf("ParseHexColor error = %v", err)
	}
	if r != 0x1f || g != 0x77 || b != 0xb4 {
		t.Errorf("ParseHexColor = (%d, %d, %d), want (31, 119, 180)", r, g, b)
	}

	for _, bad := range []string{"", "1f77b4", "#xyzxyz", "#fff"} {
		if _, _, _, err := ParseHexColor(bad); err == nil {
			t.Errorf("ParseHexColor(%q) = nil error, want failure", bad)
		}
	}
}
