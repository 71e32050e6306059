package draw

import "math"

// Viewport maps the playfield onto a block of terminal cells. The block is
// the terminal clamped to a maximum size and centered inside it.
type Viewport struct {
	FieldWidth, FieldHeight float64
	MaxCols, MaxRows        int

	Cols, Rows int // Block size in cells
	Col, Row   int // Cells left of and above the block
}

// NewViewport creates a viewport for a field of the given size. The block is
// empty until Fit is called.
func NewViewport(fieldWidth, fieldHeight float64, maxCols, maxRows int) *Viewport {
	return &Viewport{
		FieldWidth:  fieldWidth,
		FieldHeight: fieldHeight,
		MaxCols:     maxCols,
		MaxRows:     maxRows,
	}
}

// Fit sizes and centers the block for a terminal of cols x rows.
func (v *Viewport) Fit(cols, rows int) {
	cols, rows = max(cols, 0), max(rows, 0)
	v.Cols = min(cols, v.MaxCols)
	v.Rows = min(rows, v.MaxRows)
	v.Col = (cols - v.Cols) / 2
	v.Row = (rows - v.Rows) / 2
}

// dotScale returns braille dots per field unit on each axis.
func (v *Viewport) dotScale() (sx, sy float64) {
	return float64(v.Cols*dotCols) / v.FieldWidth, float64(v.Rows*dotRows) / v.FieldHeight
}

// Cell returns the 1-based cell, relative to the block, holding field point (x, y).
func (v *Viewport) Cell(x, y float64) (col, row int) {
	sx, sy := v.dotScale()
	return int(math.Floor(x*sx))/dotCols + 1, int(math.Floor(y*sy))/dotRows + 1
}

// Field returns the field point under the center of a cell given in absolute
// 1-based terminal coordinates, as mouse reports are.
func (v *Viewport) Field(col, row int) (x, y float64) {
	sx, sy := v.dotScale()
	if sx == 0 || sy == 0 {
		return 0, 0
	}
	dx := float64((col-1-v.Col)*dotCols) + dotCols/2.0
	dy := float64((row-1-v.Row)*dotRows) + dotRows/2.0
	return dx / sx, dy / sy
}
