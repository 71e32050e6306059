// Package draw renders the playfield to ANSI terminals. Shapes are plotted as
// braille dots, each terminal cell holding a 2x4 grid of them, and text is
// placed on whole cells over the top.
package draw

import "math"

// Point is a position in field units.
type Point struct {
	X, Y float64
}

// Polar returns the point at distance r from (cx, cy) along angle.
func Polar(cx, cy, angle, r float64) Point {
	return Point{X: cx + r*math.Cos(angle), Y: cy + r*math.Sin(angle)}
}
