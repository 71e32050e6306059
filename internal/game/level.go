package game

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	// ErrNoLevels is returned when a session is built without any level.
	ErrNoLevels = errors.New("game: no levels configured")
	// ErrInvalidLevel is returned when a level has unusable parameters.
	ErrInvalidLevel = errors.New("game: invalid level")
)

// Level is a timed phase with fixed ring parameters.
type Level struct {
	Index           int // Position in the level list
	Name            string
	SpeedMultiplier float64
	Amplitude       float64
	InnerScale      float64 // Scale applied to the inner ring
	Duration        time.Duration
}

// InnerRingScale returns the shrink factor of the inner ring at a level index.
// Levels shrink by 20% each, except levels 4 and 5 which halve the previous one.
func InnerRingScale(index int) float64 {
	switch {
	case index >= 4:
		return math.Pow(0.8, 2) * 0.5 * 0.5
	case index == 3:
		return math.Pow(0.8, 2) * 0.5
	default:
		return math.Pow(0.8, float64(index))
	}
}

// DefaultLevels returns the five-level progression.
func DefaultLevels() []Level {
	params := []struct {
		multiplier float64
		amplitude  float64
	}{
		{0.75, 40},
		{0.9, 60},
		{1.0, 90},
		{1.5, 135},
		{2.25, 202},
	}

	levels := make([]Level, len(params))
	for i, p := range params {
		levels[i] = Level{
			Index:           i,
			Name:            fmt.Sprintf("Level %d", i+1),
			SpeedMultiplier: p.multiplier,
			Amplitude:       p.amplitude,
			InnerScale:      InnerRingScale(i),
			Duration:        LevelDuration,
		}
	}
	return levels
}

// ValidateLevels checks a level list before a session is built.
func ValidateLevels(levels []Level) error {
	if len(levels) == 0 {
		return ErrNoLevels
	}
	for i, l := range levels {
		switch {
		case l.SpeedMultiplier <= 0:
			return fmt.Errorf("%w: level %d speed multiplier %v", ErrInvalidLevel, i, l.SpeedMultiplier)
		case l.Amplitude < 0:
			return fmt.Errorf("%w: level %d amplitude %v", ErrInvalidLevel, i, l.Amplitude)
		case l.InnerScale <= 0:
			return fmt.Errorf("%w: level %d inner scale %v", ErrInvalidLevel, i, l.InnerScale)
		case l.Duration <= 0:
			return fmt.Errorf("%w: level %d duration %v", ErrInvalidLevel, i, l.Duration)
		case l.Index != i:
			return fmt.Errorf("%w: level at position %d has index %d", ErrInvalidLevel, i, l.Index)
		}
	}
	return nil
}
