package object

import "github.com/tomz197/ringblaster/internal/game"

// Ring draws a game ring as a circle outline with its label above it.
type Ring struct {
	Ring  *game.Ring
	Flash float64 // Seconds of highlight remaining after a hit
}

// Draw renders the ring outline, doubled while flashing.
func (r *Ring) Draw(ctx DrawContext) error {
	g := r.Ring
	radius := g.DrawRadius()
	ctx.Canvas.Circle(g.X, g.Y, radius)
	if r.Flash > 0 {
		ctx.Canvas.Circle(g.X, g.Y, radius+4)
	}
	ctx.Screen.Label(g.X, g.Y-radius, -1, g.Label)
	return nil
}
