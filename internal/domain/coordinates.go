package domain

import "math"

// Immutable planar coordinates of a benchmark node.
type Coordinates struct {
	X float64
	Y float64
}

// Euclidean distance between two points.
func (c Coordinates) DistanceTo(o Coordinates) float64 {
	return math.Hypot(c.X-o.X, c.Y-o.Y)
}

// Report whether both components are finite numbers.
func (c Coordinates) IsFinite() bool {
	return !math.IsNaN(c.X) && !math.IsInf(c.X, 0) && !math.IsNaN(c.Y) && !math.IsInf(c.Y, 0)
}
