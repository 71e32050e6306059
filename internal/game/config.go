package game

import "time"

// Game configuration constants.
// These form the observable contract of the simulation; frontends scale
// from these logical units to whatever they render on.

// Playfield
const (
	FieldWidth  = 1200.0
	FieldHeight = 675.0
	FieldMargin = 10.0 // Projectiles exit once this far outside the field
)

// Shooter origin (bottom center of the field)
const (
	ShooterX = FieldWidth / 2
	ShooterY = FieldHeight - 30
)

// Timing
const (
	LevelDuration         = 10 * time.Second
	CountdownStep         = time.Second
	DefaultFireCooldown   = 100 * time.Millisecond
	CountdownStartValue   = 3
	CountdownGoLabel      = "GO"
	PhaseIncrementPerTick = 0.02
)

// Projectiles
const (
	ProjectileSpeed = 10.0 // Units per tick
)

// Rings
const (
	CollisionTolerance = 12.0
	InitialRingSpeed   = 1.0  // Before the first level is applied
	InitialAmplitude   = 20.0 // Before the first level is applied
)

// Scoring
const (
	ScorePerfect  = 200
	ScorePartial2 = -50
	ScorePartial1 = -100
	ScoreMiss     = -200
)
