package object

import (
	"github.com/tomz197/ringblaster/internal/draw"
	"github.com/tomz197/ringblaster/internal/game"
)

// Shooter is the launcher at the bottom of the field, drawn as a triangle
// pointing along the current aim.
type Shooter struct {
	X, Y  float64 // Logical position
	Angle float64 // Aim in radians (0 = right, -Pi/2 = up)
	Size  float64 // Nose length in logical units
}

// NewShooter creates a shooter at the game's fixed origin.
func NewShooter() *Shooter {
	return &Shooter{
		X:    game.ShooterX,
		Y:    game.ShooterY,
		Size: 24,
	}
}

// Draw renders the shooter and a dotted aim guide.
func (s *Shooter) Draw(ctx DrawContext) error {
	// Triangle vertices relative to center:
	// - Nose (front): in the direction of Angle
	// - Wings: ~143° either side of the nose
	leftAngle := s.Angle + 2.5
	rightAngle := s.Angle - 2.5

	ctx.Canvas.Triangle(
		draw.Polar(s.X, s.Y, s.Angle, s.Size),
		draw.Polar(s.X, s.Y, leftAngle, s.Size*0.7),
		draw.Polar(s.X, s.Y, rightAngle, s.Size*0.7),
		true,
	)

	for d := s.Size * 2; d < s.Size*6; d += s.Size {
		p := draw.Polar(s.X, s.Y, s.Angle, d)
		ctx.Canvas.Plot(p.X, p.Y)
	}
	return nil
}
