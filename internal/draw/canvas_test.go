package draw

import (
	"math"
	"math/bits"
	"strings"
	"testing"
)

func fitted(cols, rows int, fieldW, fieldH float64) *Viewport {
	v := NewViewport(fieldW, fieldH, 200, 56)
	v.Fit(cols, rows)
	return v
}

func countDots(c *Canvas) int {
	n := 0
	for _, m := range c.cells {
		n += bits.OnesCount8(m)
	}
	return n
}

func cellAt(c *Canvas, x, y float64) uint8 {
	col, row := c.view.Cell(x, y)
	return c.cells[(row-1)*c.cols+col-1]
}

func TestViewportFit(t *testing.T) {
	tests := []struct {
		name       string
		w, h       int
		cols, rows int
		offC, offR int
	}{
		{"small", 80, 24, 80, 24, 0, 0},
		{"exact", 200, 56, 200, 56, 0, 0},
		{"wide", 240, 30, 200, 30, 20, 0},
		{"tall", 100, 66, 100, 56, 0, 5},
		{"negative", -1, -1, 0, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewViewport(1200, 675, 200, 56)
			v.Fit(tt.w, tt.h)
			if v.Cols != tt.cols || v.Rows != tt.rows || v.Col != tt.offC || v.Row != tt.offR {
				t.Errorf("Fit(%d, %d) = %dx%d at %d,%d", tt.w, tt.h, v.Cols, v.Rows, v.Col, v.Row)
			}
		})
	}
}

func TestViewportCellAndField(t *testing.T) {
	v := NewViewport(1200, 800, 120, 40)
	v.Fit(120, 40)

	x, y := v.Field(1, 1)
	if math.Abs(x-5) > 1e-9 || math.Abs(y-10) > 1e-9 {
		t.Errorf("top-left cell center = (%v, %v), want (5, 10)", x, y)
	}
	if col, row := v.Cell(x, y); col != 1 || row != 1 {
		t.Errorf("Cell(%v, %v) = %d, %d; want 1, 1", x, y, col, row)
	}

	// Mouse reports are absolute, so the centering offset is removed.
	v.Fit(140, 50)
	x, y = v.Field(11, 6)
	if math.Abs(x-5) > 1e-9 || math.Abs(y-10) > 1e-9 {
		t.Errorf("offset cell center = (%v, %v), want (5, 10)", x, y)
	}

	if x, y := NewViewport(1200, 800, 10, 10).Field(3, 3); x != 0 || y != 0 {
		t.Errorf("unfitted viewport Field = (%v, %v), want origin", x, y)
	}
}

func TestCircleStaysOnOutline(t *testing.T) {
	c := NewCanvas(fitted(120, 34, 1200, 675))
	c.Circle(600, 337.5, 140)

	if countDots(c) == 0 {
		t.Fatal("circle drew nothing")
	}
	if cellAt(c, 600, 337.5) != 0 {
		t.Error("circle filled its center")
	}
	if cellAt(c, 740, 337.5) == 0 {
		t.Error("no dot on the circle's rightmost point")
	}
}

func TestCircleDegenerate(t *testing.T) {
	c := NewCanvas(fitted(0, 0, 1200, 675))
	c.Circle(600, 337.5, 140) // must not panic

	c = NewCanvas(fitted(80, 24, 1200, 675))
	c.Circle(600, 337.5, 0)
	if countDots(c) != 0 {
		t.Error("zero radius should draw nothing")
	}
}

func TestTriangleFill(t *testing.T) {
	a, b, p := Point{100, 100}, Point{500, 100}, Point{300, 500}
	centroid := Point{300, 233}

	outline := NewCanvas(fitted(120, 40, 1200, 800))
	outline.Triangle(a, b, p, false)
	if cellAt(outline, centroid.X, centroid.Y) != 0 {
		t.Error("outline filled its interior")
	}

	filled := NewCanvas(fitted(120, 40, 1200, 800))
	filled.Triangle(a, b, p, true)
	if cellAt(filled, centroid.X, centroid.Y) != 0xff {
		t.Errorf("interior cell = %08b, want all dots", cellAt(filled, centroid.X, centroid.Y))
	}
	if countDots(filled) <= countDots(outline) {
		t.Error("fill added no dots")
	}
}

func TestCanvasClearFollowsViewport(t *testing.T) {
	v := fitted(40, 10, 400, 200)
	c := NewCanvas(v)
	c.Plot(10, 10)
	if countDots(c) != 1 {
		t.Fatalf("dots = %d, want 1", countDots(c))
	}

	v.Fit(80, 20)
	c.Clear()
	if len(c.cells) != 80*20 || countDots(c) != 0 {
		t.Errorf("after refit: %d cells, %d dots", len(c.cells), countDots(c))
	}
}

func TestRenderGroupsRuns(t *testing.T) {
	var sb strings.Builder
	v := fitted(20, 5, 40, 20)
	c := NewCanvas(v)
	s := NewScreen(&sb, v)

	c.Plot(0, 0)
	c.Plot(2, 0)
	c.Plot(18, 0)
	c.Render(s)
	if err := s.Flush(); err != nil {
		t.Fatal(err)
	}
	if got, want := sb.String(), "\033[1;1H⠁⠁\033[1;10H⠁"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
