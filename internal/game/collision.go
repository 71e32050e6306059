package game

import "github.com/tomz197/ringblaster/internal/physics"

// CheckRingCrossing records a hit when the projectile is within the ring's band.
// Returns true only the first time a given ring is recorded for the projectile.
func CheckRingCrossing(p *Projectile, r *Ring) bool {
	if p.Hits.Has(r.ID) {
		return false
	}
	if !physics.PointOnRing(p.X, p.Y, r.X, r.Y, r.Radius, CollisionTolerance) {
		return false
	}
	return p.Hits.Add(r.ID)
}

// resolveRingHits checks a projectile against every ring and calls onHit for
// each ring it crosses for the first time.
func resolveRingHits(p *Projectile, rings [RingCount]*Ring, onHit func(*Projectile, *Ring)) {
	for _, r := range rings {
		if CheckRingCrossing(p, r) && onHit != nil {
			onHit(p, r)
		}
	}
}
