package object

import "time"

// FloatingText is a label that drifts upward from a field position and
// disappears after its lifetime, used for scoring outcomes.
type FloatingText struct {
	X, Y     float64 // Field position
	Value    string
	Lifetime time.Duration
	Rise     float64 // Field units per second
}

// NewFloatingText creates an outcome label at (x, y).
func NewFloatingText(x, y float64, value string) *FloatingText {
	return &FloatingText{
		X:        x,
		Y:        y,
		Value:    value,
		Lifetime: 1200 * time.Millisecond,
		Rise:     40,
	}
}

// Update drifts the label and reports when it has expired.
func (f *FloatingText) Update(dt time.Duration) bool {
	f.Lifetime -= dt
	f.Y -= f.Rise * dt.Seconds()
	return f.Lifetime <= 0
}

// Draw writes the label centered on its field position.
func (f *FloatingText) Draw(ctx DrawContext) error {
	ctx.Screen.Label(f.X, f.Y, 0, f.Value)
	return nil
}
