package object

import (
	"github.com/tomz197/ringblaster/internal/draw"
	"github.com/tomz197/ringblaster/internal/game"
)

// projectileTrail is how many ticks of travel the tail covers.
const projectileTrail = 1.5

// Projectile draws an in-flight shot as a short streak along its heading.
type Projectile struct {
	Projectile *game.Projectile
}

// Draw renders the projectile head and its trail.
func (p *Projectile) Draw(ctx DrawContext) error {
	g := p.Projectile
	tail := draw.Point{X: g.X - g.VX*projectileTrail, Y: g.Y - g.VY*projectileTrail}
	ctx.Canvas.Line(tail, draw.Point{X: g.X, Y: g.Y})
	return nil
}
