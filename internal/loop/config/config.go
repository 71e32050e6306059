// Package config centralizes the terminal frontend's tunable parameters.
package config

import (
	"math"
	"time"

	"github.com/tomz197/ringblaster/internal/game"
)

// View resolution - the playfield in logical units.
// Actual rendering scales to fit terminal size.
const (
	ViewWidth  = game.FieldWidth
	ViewHeight = game.FieldHeight
)

// Max render resolution in terminal cells. Larger terminals get a border.
const (
	MaxTermWidth  = 200
	MaxTermHeight = 56
)

// Aiming
const (
	AimStep     = 0.04 // Radians per frame while a rotate key is held
	AimMinAngle = -math.Pi + 0.05
	AimMaxAngle = -0.05
)

// Effects
const (
	SparkCount    = 10
	SparkSpeed    = 120.0 // Logical units per second
	SparkLifetime = 0.4   // Seconds
	RingFlashTime = 0.25  // Seconds
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)
