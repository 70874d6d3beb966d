package geom

import (
	"math"

	"github.com/jthierer/bubblepack/pkg/errors"
)

// Packing parameters. These match the layouts the RAWGraphs-style charts
// were tuned against; changing them changes every produced layout.
const (
	// Epsilon absorbs floating-point error in the overlap test: circles
	// whose center distance falls short of the radius sum by less than
	// Epsilon still count as non-overlapping.
	Epsilon = 1e-6

	// tangentAngles is the number of evenly spaced angles sampled around
	// each placed circle during the tangent search.
	tangentAngles = 60

	// ringAngles is the number of evenly spaced angles sampled on each
	// ring during the expanding fallback search.
	ringAngles = 90

	// ringStep is the per-attempt growth factor of the fallback ring
	// distance: ring a sits at (maxRadius+r) * (1 + ringStep*a).
	ringStep = 0.05

	// maxRingAttempts bounds the fallback search. Attempts run from 1 up
	// to but not including this cap before the last resort takes over.
	maxRingAttempts = 200

	// lastResortSpacing spaces last-resort placements along the x-axis in
	// multiples of the circle's own radius.
	lastResortSpacing = 2.5
)

// Packing is the result of packing a radius sequence, with counters for the
// search stages that produced it.
type Packing struct {
	// Positions holds one center per input radius, in input order.
	Positions []Point

	// Fallbacks counts circles placed by the expanding ring search.
	Fallbacks int

	// LastResorts counts circles placed without an overlap check.
	// Non-zero values indicate a pathological input; the layout is still
	// valid but no longer compact.
	LastResorts int
}

// Pack computes non-overlapping positions for the given radii, processed in
// input order. The first circle is centered at the origin. Radii must be
// finite and non-negative; zero is valid. The returned positions match the
// input in length and order.
//
// Pack either returns a full position sequence or an INVALID_RADIUS error
// before any placement begins; there are no partial results.
func Pack(radii []float64) ([]Point, error) {
	p, err := PackDetailed(radii)
	if err != nil {
		return nil, err
	}
	return p.Positions, nil
}

// PackDetailed is Pack with search-stage counters, for callers that report
// layout quality (see pkg/observability).
func PackDetailed(radii []float64) (Packing, error) {
	if err := errors.ValidateRadii(radii); err != nil {
		return Packing{}, err
	}

	var p Packing
	if len(radii) == 0 {
		return p, nil
	}

	// The fallback ring distance scales with the largest radius of the
	// whole input, not just the circles placed so far.
	maxRadius := radii[0]
	for _, r := range radii[1:] {
		maxRadius = math.Max(maxRadius, r)
	}

	placed := make([]Circle, 0, len(radii))
	place := func(r float64, at Point) {
		placed = append(placed, Circle{Center: at, R: r})
	}

	place(radii[0], Point{})

	for _, r := range radii[1:] {
		if at, ok := tangentSearch(placed, r); ok {
			place(r, at)
			continue
		}
		if at, ok := ringSearch(placed, r, maxRadius); ok {
			place(r, at)
			p.Fallbacks++
			continue
		}
		place(r, lastResort(len(placed), r))
		p.LastResorts++
	}

	p.Positions = make([]Point, len(placed))
	for i, c := range placed {
		p.Positions[i] = c.Center
	}
	return p, nil
}

// fits reports whether a circle of radius r centered at c overlaps none of
// the placed circles.
func fits(c Point, r float64, placed []Circle) bool {
	cand := Circle{Center: c, R: r}
	for _, o := range placed {
		if cand.Overlaps(o, Epsilon) {
			return false
		}
	}
	return true
}

// tangentSearch scans placed circles in placement order and, for each,
// candidate centers tangent to it at ascending angles. The first fitting
// candidate wins and the search stops immediately: this is a first-fit
// rule, and the produced layouts depend on it.
func tangentSearch(placed []Circle, r float64) (Point, bool) {
	for _, base := range placed {
		for _, c := range tangentCandidates(base, r) {
			if fits(c, r, placed) {
				return c, true
			}
		}
	}
	return Point{}, false
}

// tangentCandidates returns candidate centers for a circle of radius r
// tangent to base, at tangentAngles evenly spaced angles starting from 0.
func tangentCandidates(base Circle, r float64) []Point {
	d := base.R + r
	pts := make([]Point, tangentAngles)
	for k := range pts {
		theta := 2 * math.Pi * float64(k) / tangentAngles
		pts[k] = Point{
			X: base.Center.X + d*math.Cos(theta),
			Y: base.Center.Y + d*math.Sin(theta),
		}
	}
	return pts
}

// ringSearch scans rings of growing distance around the origin, ringAngles
// ascending angles per ring, for a bounded number of attempts.
func ringSearch(placed []Circle, r, maxRadius float64) (Point, bool) {
	for attempt := 1; attempt < maxRingAttempts; attempt++ {
		for _, c := range ringCandidates(maxRadius, r, attempt) {
			if fits(c, r, placed) {
				return c, true
			}
		}
	}
	return Point{}, false
}

// ringCandidates returns candidate centers on the fallback ring for the
// given attempt number.
func ringCandidates(maxRadius, r float64, attempt int) []Point {
	d := (maxRadius + r) * (1 + float64(attempt)*ringStep)
	pts := make([]Point, ringAngles)
	for k := range pts {
		theta := 2 * math.Pi * float64(k) / ringAngles
		pts[k] = Point{X: d * math.Cos(theta), Y: d * math.Sin(theta)}
	}
	return pts
}

// lastResort returns a position far along the x-axis, offset by the number
// of circles already placed. No overlap check is performed; termination is
// traded for compactness.
func lastResort(placedCount int, r float64) Point {
	return Point{X: float64(placedCount) * r * lastResortSpacing, Y: 0}
}
