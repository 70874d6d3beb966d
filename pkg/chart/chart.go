// Package chart defines the serialization format for computed bubble-chart
// layouts and the color palettes used to paint them.
//
// The Layout type is the stable interchange format between layout
// computation, rendering, caching, and the HTTP API: compute once, render
// many times.
package chart

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jthierer/bubblepack/pkg/chart/layout"
	"github.com/jthierer/bubblepack/pkg/errors"
)

// VizTypeBubble is the only visualization type this tool produces. The
// discriminator field exists so layout files stay self-describing.
const VizTypeBubble = "bubble"

// Visual styles for rendering.
const (
	StyleLight = "light"
	StyleDark  = "dark"
)

// Layout is the serialization format for a computed bubble chart.
type Layout struct {
	VizType string `json:"viz_type"`

	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Margin float64 `json:"margin,omitempty"`

	Style   string `json:"style,omitempty"`
	Palette string `json:"palette,omitempty"`
	Seed    int64  `json:"seed,omitempty"`

	Bubbles []Bubble `json:"bubbles"`
}

// Bubble is a positioned, labeled circle.
type Bubble struct {
	ID     string  `json:"id"`
	Label  string  `json:"label"`
	Sector string  `json:"sector,omitempty"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	R      float64 `json:"r"`
}

// Sectors returns the distinct sector names of the layout's bubbles in
// first-appearance order.
func (l *Layout) Sectors() []string {
	seen := make(map[string]bool)
	var out []string
	for _, b := range l.Bubbles {
		if !seen[b.Sector] {
			seen[b.Sector] = true
			out = append(out, b.Sector)
		}
	}
	return out
}

// FromBubbles converts computed layout bubbles to their serialization form.
func FromBubbles(bubbles []layout.Bubble) []Bubble {
	out := make([]Bubble, len(bubbles))
	for i, b := range bubbles {
		out[i] = Bubble{
			ID:     b.ID,
			Label:  b.Label,
			Sector: b.Group,
			X:      b.X,
			Y:      b.Y,
			R:      b.R,
		}
	}
	return out
}

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
// Validates that required fields are present.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, errors.Wrap(errors.ErrCodeInvalidLayout, err, "unmarshal layout")
	}

	if l.VizType == "" {
		l.VizType = VizTypeBubble
	}
	if l.VizType != VizTypeBubble {
		return Layout{}, errors.New(errors.ErrCodeInvalidLayout, "unsupported viz_type: %q", l.VizType)
	}
	if l.Width <= 0 || l.Height <= 0 {
		return Layout{}, errors.New(errors.ErrCodeInvalidLayout, "layout must have positive dimensions")
	}
	if len(l.Bubbles) == 0 {
		return Layout{}, errors.New(errors.ErrCodeInvalidLayout, "bubble layout must contain bubbles")
	}

	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
