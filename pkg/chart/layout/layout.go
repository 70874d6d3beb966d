// Package layout turns weighted items into positioned bubbles.
//
// The computation mirrors the classic circle-packing chart recipe: radii
// proportional to the square root of each weight, greedy packing via
// pkg/geom, then a fit pass that translates and scales the packed circles
// into a margin-padded square canvas.
package layout

import (
	"math"

	"github.com/jthierer/bubblepack/pkg/errors"
	"github.com/jthierer/bubblepack/pkg/geom"
)

const (
	// maxRadiusFrac is the fraction of the canvas size given to the
	// largest circle's radius before fitting.
	maxRadiusFrac = 0.4

	// flatRadius is the radius used when every weight is zero.
	flatRadius = 10.0
)

// Item is a weighted element to place on the chart.
type Item struct {
	ID     string
	Label  string
	Group  string
	Weight float64
}

// Bubble is a positioned circle in canvas coordinates.
type Bubble struct {
	ID    string
	Label string
	Group string
	X     float64
	Y     float64
	R     float64
}

// Options controls canvas geometry.
type Options struct {
	// Size is the square canvas edge length in pixels.
	Size float64

	// Margin is the padding between the packed extent and the canvas edge.
	Margin float64
}

// Stats reports how hard the packer had to work.
type Stats struct {
	Fallbacks   int
	LastResorts int
}

// Radii converts weights to radii: sqrt scaling, normalized so the largest
// radius equals maxRadius. All-zero weights yield a flat constant radius so
// degenerate datasets still render.
func Radii(weights []float64, maxRadius float64) []float64 {
	radii := make([]float64, len(weights))
	maxVal := 0.0
	for i, w := range weights {
		radii[i] = math.Sqrt(w)
		maxVal = math.Max(maxVal, radii[i])
	}
	if maxVal == 0 {
		for i := range radii {
			radii[i] = flatRadius
		}
		return radii
	}
	for i := range radii {
		radii[i] = radii[i] / maxVal * maxRadius
	}
	return radii
}

// Compute packs the items and fits them to the canvas. Items must be sorted
// largest weight first; the packer is order-dependent and does not sort.
// Weights must be non-negative and finite.
func Compute(items []Item, opts Options) ([]Bubble, Stats, error) {
	if opts.Size <= 0 {
		return nil, Stats{}, errors.New(errors.ErrCodeInvalidLayout, "canvas size must be positive, got %v", opts.Size)
	}
	if opts.Margin < 0 || opts.Margin*2 >= opts.Size {
		return nil, Stats{}, errors.New(errors.ErrCodeInvalidLayout, "margin %v does not fit canvas size %v", opts.Margin, opts.Size)
	}
	if len(items) == 0 {
		return nil, Stats{}, nil
	}

	weights := make([]float64, len(items))
	for i, it := range items {
		weights[i] = it.Weight
	}

	radii := Radii(weights, opts.Size*maxRadiusFrac)
	packing, err := geom.PackDetailed(radii)
	if err != nil {
		return nil, Stats{}, err
	}

	bubbles := fit(items, radii, packing.Positions, opts)
	return bubbles, Stats{Fallbacks: packing.Fallbacks, LastResorts: packing.LastResorts}, nil
}

// fit maps packed positions into canvas coordinates: the packed extent,
// padded by the largest radius on every side, is translated to the origin
// and scaled uniformly to fill the canvas inside the margin.
func fit(items []Item, radii []float64, positions []geom.Point, opts Options) []Bubble {
	maxR := 0.0
	for _, r := range radii {
		maxR = math.Max(maxR, r)
	}

	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, p := range positions {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	minX -= maxR
	maxX += maxR
	minY -= maxR
	maxY += maxR

	span := math.Max(maxX-minX, maxY-minY)
	scale := 1.0
	if span > 0 {
		scale = (opts.Size - 2*opts.Margin) / span
	}

	bubbles := make([]Bubble, len(items))
	for i, it := range items {
		bubbles[i] = Bubble{
			ID:    it.ID,
			Label: it.Label,
			Group: it.Group,
			X:     (positions[i].X-minX)*scale + opts.Margin,
			Y:     (positions[i].Y-minY)*scale + opts.Margin,
			R:     radii[i] * scale,
		}
	}
	return bubbles
}
