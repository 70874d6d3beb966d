package geom

import "math"

// Point is a position in 2D space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distance returns the Euclidean distance between two points.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Circle is a placed circle: a center point and a radius.
type Circle struct {
	Center Point   `json:"center"`
	R      float64 `json:"r"`
}

// Overlaps reports whether two circles overlap by more than eps.
// Tangent circles (center distance equal to the sum of radii) do not overlap.
func (c Circle) Overlaps(o Circle, eps float64) bool {
	return c.Center.Distance(o.Center) < c.R+o.R-eps
}
