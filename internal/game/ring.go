package game

import "math"

// RingID identifies one of the three fixed ring lanes.
type RingID int

const (
	RingOuter RingID = iota
	RingMiddle
	RingInner
)

// RingCount is the number of rings in every session.
const RingCount = 3

var ringNames = [RingCount]string{"outer", "middle", "inner"}

func (id RingID) String() string {
	if id < 0 || int(id) >= RingCount {
		return "unknown"
	}
	return ringNames[id]
}

// ringParam holds the fixed per-lane parameters.
type ringParam struct {
	Label     string
	Radius    float64
	BaseSpeed float64
}

var ringParams = [RingCount]ringParam{
	RingOuter:  {Label: "Right Message", Radius: 140, BaseSpeed: 1.44},
	RingMiddle: {Label: "Right Person", Radius: 100, BaseSpeed: 1.92},
	RingInner:  {Label: "Right Time", Radius: 60, BaseSpeed: 2.40},
}

// Ring is a circular target oscillating horizontally around its base position.
type Ring struct {
	ID        RingID
	Label     string  // Text shown around the ring
	Radius    float64 // Unscaled radius
	BaseSpeed float64 // Lane speed before the level multiplier
	BaseX     float64
	X, Y      float64 // Current center
	Phase     float64 // Radians, only ever grows
	Speed     float64 // BaseSpeed * level multiplier
	Amplitude float64
	Scale     float64
}

// NewRings creates the three concentric rings centered on the field.
func NewRings() [RingCount]*Ring {
	var rings [RingCount]*Ring
	for i, p := range ringParams {
		rings[i] = &Ring{
			ID:        RingID(i),
			Label:     p.Label,
			Radius:    p.Radius,
			BaseSpeed: p.BaseSpeed,
			BaseX:     FieldWidth / 2,
			X:         FieldWidth / 2,
			Y:         FieldHeight / 2,
			Speed:     InitialRingSpeed,
			Amplitude: InitialAmplitude,
			Scale:     1,
		}
	}
	return rings
}

// RingOffset returns the horizontal position of a ring for the given phase.
func RingOffset(base, amplitude, phase float64) float64 {
	return base + amplitude*math.Sin(phase)
}

// PhaseIncrement returns how far a ring's phase advances in one tick.
func PhaseIncrement(baseSpeed, levelMultiplier float64) float64 {
	return PhaseIncrementPerTick * baseSpeed * levelMultiplier
}

// Advance moves the ring one tick along its oscillation.
func (r *Ring) Advance() {
	r.Phase += PhaseIncrementPerTick * r.Speed
	r.X = RingOffset(r.BaseX, r.Amplitude, r.Phase)
}

// ApplyLevel reconfigures the ring for a level. Phase is left untouched.
func (r *Ring) ApplyLevel(level Level) {
	r.Speed = r.BaseSpeed * level.SpeedMultiplier
	r.Amplitude = level.Amplitude
	if r.ID == RingInner {
		r.Scale = level.InnerScale
	}
}

// DrawRadius is the radius the ring is shown with. The inner ring shrinks on
// screen only; hits are always tested against Radius.
func (r *Ring) DrawRadius() float64 {
	return r.Radius * r.Scale
}
