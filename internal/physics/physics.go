// Package physics provides collision detection and distance utilities.
package physics

import "math"

// Distance calculates the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// PointInCircle checks if a point is within radius of a target position.
func PointInCircle(px, py, cx, cy, radius float64) bool {
	return DistanceSquared(px, py, cx, cy) <= radius*radius
}

// PointOnRing checks if a point lies within tolerance of a circle's outline.
// The band is open: a point exactly tolerance away does not count.
func PointOnRing(px, py, cx, cy, radius, tolerance float64) bool {
	return math.Abs(Distance(px, py, cx, cy)-radius) < tolerance
}

// InBounds checks if a point lies inside a width x height rectangle grown by margin.
func InBounds(x, y, width, height, margin float64) bool {
	return x >= -margin && x <= width+margin && y >= -margin && y <= height+margin
}
