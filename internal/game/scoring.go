package game

// Outcome is the result of evaluating a finished projectile.
type Outcome struct {
	Hits  int
	Delta int
	Label string
}

// Outcome labels.
const (
	LabelPerfect  = "Perfect"
	LabelPartial2 = "Partial-2"
	LabelPartial1 = "Partial-1"
	LabelMiss     = "Miss"
)

// Evaluate maps the number of rings a projectile passed through to a score delta.
// Projectiles are evaluated once, when they leave the field; a full miss is penalized.
func Evaluate(hits int) Outcome {
	switch {
	case hits >= RingCount:
		return Outcome{Hits: hits, Delta: ScorePerfect, Label: LabelPerfect}
	case hits == 2:
		return Outcome{Hits: hits, Delta: ScorePartial2, Label: LabelPartial2}
	case hits == 1:
		return Outcome{Hits: hits, Delta: ScorePartial1, Label: LabelPartial1}
	default:
		return Outcome{Hits: 0, Delta: ScoreMiss, Label: LabelMiss}
	}
}

// ApplyDelta adds delta to score, flooring the result at zero.
func ApplyDelta(score, delta int) int {
	return max(0, score+delta)
}
