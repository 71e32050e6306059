package object

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"
)

// particlePool is a sync.Pool for reusing Particle objects to reduce allocations.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Particle is a short-lived spark, in logical units per second.
type Particle struct {
	X, Y        float64 // Position
	VX, VY      float64 // Velocity
	Lifetime    float64 // Seconds remaining
	MaxLifetime float64 // Initial lifetime (for fade calculation)
	Drag        float64 // Velocity decay per 60th of a second (1.0 = no drag)
}

// NewParticle creates a single particle from the pool.
func NewParticle(x, y, vx, vy, lifetime float64) *Particle {
	p := particlePool.Get().(*Particle)
	p.X = x
	p.Y = y
	p.VX = vx
	p.VY = vy
	p.Lifetime = lifetime
	p.MaxLifetime = lifetime
	p.Drag = 0.92
	return p
}

// Release returns the particle to the pool for reuse.
func (p *Particle) Release() {
	particlePool.Put(p)
}

// SpawnSparks appends a circular burst of count particles at (x, y).
func SpawnSparks(dst []Effect, x, y float64, count int, speed, lifetime float64) []Effect {
	for range count {
		angle := rand.Float64() * 2 * math.Pi
		// Speed varies 50% to 150%, lifetime 50% to 100%
		spd := speed * (0.5 + rand.Float64())
		life := lifetime * (0.5 + rand.Float64()*0.5)
		dst = append(dst, NewParticle(x, y, math.Cos(angle)*spd, math.Sin(angle)*spd, life))
	}
	return dst
}

// Update moves the particle and checks lifetime.
func (p *Particle) Update(dt time.Duration) bool {
	secs := dt.Seconds()
	p.Lifetime -= secs
	if p.Lifetime <= 0 {
		return true
	}

	dragFactor := math.Pow(p.Drag, secs*60)
	p.VX *= dragFactor
	p.VY *= dragFactor
	p.X += p.VX * secs
	p.Y += p.VY * secs
	return false
}

// Draw renders the particle as a pixel, skipping it in its last quarter of life.
func (p *Particle) Draw(ctx DrawContext) error {
	if p.MaxLifetime > 0 && p.Lifetime/p.MaxLifetime < 0.25 {
		return nil
	}
	ctx.Canvas.Plot(p.X, p.Y)
	return nil
}
