package chart

import (
	"fmt"
	"sort"

	"github.com/jthierer/bubblepack/pkg/errors"
)

// Palette names.
const (
	PaletteTab20 = "tab20"
	PaletteSet2  = "set2"
	PaletteSet3  = "set3"
)

// DefaultPalette is used when no palette is configured.
const DefaultPalette = PaletteTab20

// palettes maps palette names to hex color cycles. Colors follow the
// matplotlib qualitative maps of the same names.
var palettes = map[string][]string{
	PaletteTab20: {
		"#1f77b4", "#aec7e8", "#ff7f0e", "#ffbb78", "#2ca02c",
		"#98df8a", "#d62728", "#ff9896", "#9467bd", "#c5b0d5",
		"#8c564b", "#c49c94", "#e377c2", "#f7b6d2", "#7f7f7f",
		"#c7c7c7", "#bcbd22", "#dbdb8d", "#17becf", "#9edae5",
	},
	PaletteSet2: {
		"#66c2a5", "#fc8d62", "#8da0cb", "#e78ac3",
		"#a6d854", "#ffd92f", "#e5c494", "#b3b3b3",
	},
	PaletteSet3: {
		"#8dd3c7", "#ffffb3", "#bebada", "#fb8072", "#80b1d3",
		"#fdb462", "#b3de69", "#fccde5", "#d9d9d9", "#bc80bd",
		"#ccebc5", "#ffed6f",
	},
}

// PaletteNames returns the available palette names in sorted order.
func PaletteNames() []string {
	names := make([]string, 0, len(palettes))
	for name := range palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ValidatePalette checks that a palette name is known.
func ValidatePalette(name string) error {
	if _, ok := palettes[name]; !ok {
		return errors.New(errors.ErrCodeInvalidPalette,
			"unknown palette: %q (available: %v)", name, PaletteNames())
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if style != StyleLight && style != StyleDark {
		return errors.New(errors.ErrCodeInvalidStyle,
			"invalid style: %q (must be one of: %s, %s)", style, StyleLight, StyleDark)
	}
	return nil
}

// SectorColors assigns a palette color to every sector, cycling when there
// are more sectors than colors. Assignment is by sorted sector name, so the
// mapping is stable across runs and independent of bubble order.
func SectorColors(sectors []string, palette string) (map[string]string, error) {
	colors, ok := palettes[palette]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidPalette, "unknown palette: %q", palette)
	}

	sorted := append([]string(nil), sectors...)
	sort.Strings(sorted)

	out := make(map[string]string, len(sorted))
	for i, s := range sorted {
		out[s] = colors[i%len(colors)]
	}
	return out, nil
}

// ParseHexColor converts a #rrggbb string to 8-bit RGB components.
func ParseHexColor(s string) (r, g, b uint8, err error) {
	if len(s) != 7 || s[0] != '#' {
		return 0, 0, 0, fmt.Errorf("invalid hex color: %q", s)
	}
	var ri, gi, bi int
	if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &ri, &gi, &bi); err != nil {
		return 0, 0, 0, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return uint8(ri), uint8(gi), uint8(bi), nil
}
