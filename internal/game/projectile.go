package game

import (
	"math"

	"github.com/tomz197/ringblaster/internal/physics"
)

// HitSet records which rings a projectile has passed through.
type HitSet map[RingID]struct{}

// Add inserts id and reports whether it was new.
func (h HitSet) Add(id RingID) bool {
	if _, ok := h[id]; ok {
		return false
	}
	h[id] = struct{}{}
	return true
}

// Has reports whether id has been hit.
func (h HitSet) Has(id RingID) bool {
	_, ok := h[id]
	return ok
}

// Projectile is a shot fired from the shooter origin.
type Projectile struct {
	ID     int
	X, Y   float64 // Position
	VX, VY float64 // Velocity per tick
	Hits   HitSet
	scored bool
}

// NewProjectile creates a projectile at the shooter origin traveling along angle.
func NewProjectile(id int, angle float64) *Projectile {
	return &Projectile{
		ID:   id,
		X:    ShooterX,
		Y:    ShooterY,
		VX:   math.Cos(angle) * ProjectileSpeed,
		VY:   math.Sin(angle) * ProjectileSpeed,
		Hits: make(HitSet, RingCount),
	}
}

// Advance adds the velocity to the position once.
func (p *Projectile) Advance() {
	p.X += p.VX
	p.Y += p.VY
}

// Heading returns the direction of travel in radians.
func (p *Projectile) Heading() float64 {
	return math.Atan2(p.VY, p.VX)
}

// Exited reports whether the projectile has left the field plus margin.
func (p *Projectile) Exited() bool {
	return !physics.InBounds(p.X, p.Y, FieldWidth, FieldHeight, FieldMargin)
}

// IsScored reports whether the projectile has already been evaluated.
func (p *Projectile) IsScored() bool {
	return p.scored
}

// MarkScored flags the projectile as evaluated. Returns false if it already was.
func (p *Projectile) MarkScored() bool {
	if p.scored {
		return false
	}
	p.scored = true
	return true
}
