package draw

import (
	"math"
	"unicode/utf8"
)

// Braille cell geometry.
const (
	dotCols     = 2
	dotRows     = 4
	brailleBase = 0x2800
)

// brailleDots maps a dot inside a cell to its bit in the braille pattern.
var brailleDots = [dotRows][dotCols]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille dot buffer covering a viewport. Drawing methods take
// field coordinates.
type Canvas struct {
	view       *Viewport
	cols, rows int
	cells      []uint8 // Dot mask per cell, row-major
	sx, sy     float64 // Dots per field unit
}

// NewCanvas creates a canvas that follows v.
func NewCanvas(v *Viewport) *Canvas {
	c := &Canvas{view: v}
	c.Clear()
	return c
}

// Clear empties the canvas, resizing it if the viewport was refitted.
func (c *Canvas) Clear() {
	if c.cols != c.view.Cols || c.rows != c.view.Rows {
		c.cols, c.rows = c.view.Cols, c.view.Rows
		c.cells = make([]uint8, c.cols*c.rows)
	} else {
		clear(c.cells)
	}
	c.sx, c.sy = c.view.dotScale()
}

func (c *Canvas) dot(px, py int) {
	if px < 0 || py < 0 || px >= c.cols*dotCols || py >= c.rows*dotRows {
		return
	}
	c.cells[(py/dotRows)*c.cols+px/dotCols] |= brailleDots[py%dotRows][px%dotCols]
}

func (c *Canvas) dotf(x, y float64) {
	c.dot(int(math.Floor(x)), int(math.Floor(y)))
}

// Plot sets the dot under field point (x, y).
func (c *Canvas) Plot(x, y float64) {
	c.dotf(x*c.sx, y*c.sy)
}

// Line plots a segment between two field points, one dot per step along the
// longer axis.
func (c *Canvas) Line(a, b Point) {
	ax, ay := a.X*c.sx, a.Y*c.sy
	bx, by := b.X*c.sx, b.Y*c.sy
	steps := int(math.Ceil(math.Max(math.Abs(bx-ax), math.Abs(by-ay))))
	if steps == 0 {
		c.dotf(ax, ay)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		c.dotf(ax+(bx-ax)*t, ay+(by-ay)*t)
	}
}

// Circle plots a circle outline. Dots are not square in field units, so it is
// traced as an ellipse in dot space.
func (c *Canvas) Circle(cx, cy, r float64) {
	if r <= 0 || len(c.cells) == 0 {
		return
	}
	x0, y0 := cx*c.sx, cy*c.sy
	rx, ry := r*c.sx, r*c.sy
	steps := max(int(math.Ceil(2*math.Pi*math.Max(rx, ry))), 8)
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		c.dotf(x0+rx*math.Cos(a), y0+ry*math.Sin(a))
	}
}

// Triangle plots the outline of triangle abp and fills it when fill is set.
func (c *Canvas) Triangle(a, b, p Point, fill bool) {
	c.Line(a, b)
	c.Line(b, p)
	c.Line(p, a)
	if !fill {
		return
	}

	ax, ay := a.X*c.sx, a.Y*c.sy
	bx, by := b.X*c.sx, b.Y*c.sy
	px, py := p.X*c.sx, p.Y*c.sy
	if edge(ax, ay, bx, by, px, py) == 0 {
		return
	}
	minX, maxX := int(math.Floor(min(ax, bx, px))), int(math.Ceil(max(ax, bx, px)))
	minY, maxY := int(math.Floor(min(ay, by, py))), int(math.Ceil(max(ay, by, py)))
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			fx, fy := float64(x)+0.5, float64(y)+0.5
			w0 := edge(bx, by, px, py, fx, fy)
			w1 := edge(px, py, ax, ay, fx, fy)
			w2 := edge(ax, ay, bx, by, fx, fy)
			if (w0 >= 0 && w1 >= 0 && w2 >= 0) || (w0 <= 0 && w1 <= 0 && w2 <= 0) {
				c.dot(x, y)
			}
		}
	}
}

// edge is twice the signed area of triangle abp.
func edge(ax, ay, bx, by, px, py float64) float64 {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}

// Render writes every non-empty cell to s. Adjacent cells on a row share a
// single cursor move.
func (c *Canvas) Render(s *Screen) {
	for row := 0; row < c.rows; row++ {
		line := c.cells[row*c.cols : (row+1)*c.cols]
		for col := 0; col < len(line); {
			if line[col] == 0 {
				col++
				continue
			}
			s.moveTo(col+1, row+1)
			for ; col < len(line) && line[col] != 0; col++ {
				s.buf = utf8.AppendRune(s.buf, brailleBase+rune(line[col]))
			}
		}
	}
}
