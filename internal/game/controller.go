package game

import (
	"strconv"
	"time"
)

// Phase is the state of the level state machine.
type Phase int

const (
	PhaseIdle      Phase = iota // Session not started yet
	PhaseCountdown              // Gameplay paused, 3-2-1-GO on screen
	PhaseActive                 // Rings and projectiles ticking
	PhaseGameOver               // Terminal
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseCountdown:
		return "countdown"
	case PhaseActive:
		return "active"
	case PhaseGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// countdownLabels are shown one per CountdownStep; the level starts one step after the last.
var countdownLabels = func() []string {
	labels := make([]string, 0, CountdownStartValue+1)
	for n := CountdownStartValue; n > 0; n-- {
		labels = append(labels, strconv.Itoa(n))
	}
	return append(labels, CountdownGoLabel)
}()

// CountdownLength is the time from the start of a countdown until its level goes live.
var CountdownLength = time.Duration(len(countdownLabels)) * CountdownStep

// LevelController drives level progression. Time is passed in by the caller
// and compared against recorded anchors; nothing is scheduled.
type LevelController struct {
	levels         []Level
	index          int
	phase          Phase
	countdownStart time.Duration
	stepsShown     int
	levelStart     time.Duration
}

// NewLevelController creates a controller over a validated level list.
func NewLevelController(levels []Level) *LevelController {
	return &LevelController{levels: levels}
}

// Phase returns the current state.
func (lc *LevelController) Phase() Phase {
	return lc.phase
}

// Index returns the index of the level being counted down to or played.
func (lc *LevelController) Index() int {
	return lc.index
}

// Current returns the level being counted down to or played.
func (lc *LevelController) Current() Level {
	return lc.levels[lc.index]
}

// Levels returns the number of configured levels.
func (lc *LevelController) Levels() int {
	return len(lc.levels)
}

// Begin enters the countdown for the level at index.
func (lc *LevelController) Begin(index int, now time.Duration) {
	lc.index = index
	lc.phase = PhaseCountdown
	lc.countdownStart = now
	lc.stepsShown = 0
}

// TickCountdown returns the countdown labels that became due since the last
// call and whether the countdown has finished. On finish the level is active
// and its clock is anchored at now.
func (lc *LevelController) TickCountdown(now time.Duration) (steps []string, done bool) {
	if lc.phase != PhaseCountdown {
		return nil, false
	}

	elapsed := now - lc.countdownStart
	due := min(int(elapsed/CountdownStep)+1, len(countdownLabels))
	for lc.stepsShown < due {
		steps = append(steps, countdownLabels[lc.stepsShown])
		lc.stepsShown++
	}

	if elapsed >= CountdownLength {
		lc.phase = PhaseActive
		lc.levelStart = now
		return steps, true
	}
	return steps, false
}

// Expired reports whether the active level has run its full duration.
func (lc *LevelController) Expired(now time.Duration) bool {
	return lc.phase == PhaseActive && now-lc.levelStart >= lc.Current().Duration
}

// Next moves past the current level: into the next level's countdown, or into
// game over when there is none. Returns true on game over.
func (lc *LevelController) Next(now time.Duration) bool {
	if lc.index >= len(lc.levels)-1 {
		lc.phase = PhaseGameOver
		return true
	}
	lc.Begin(lc.index+1, now)
	return false
}

// Stop halts the controller without reaching game over.
func (lc *LevelController) Stop() {
	lc.phase = PhaseIdle
	lc.stepsShown = 0
}

// Remaining returns how much of the active level is left.
func (lc *LevelController) Remaining(now time.Duration) time.Duration {
	switch lc.phase {
	case PhaseActive:
		return max(0, lc.Current().Duration-(now-lc.levelStart))
	case PhaseCountdown:
		return lc.Current().Duration
	default:
		return 0
	}
}

// SecondsRemaining returns the whole seconds left, rounded up.
func (lc *LevelController) SecondsRemaining(now time.Duration) int {
	rem := lc.Remaining(now)
	return int((rem + time.Second - 1) / time.Second)
}

// CountdownLabel returns the label currently on screen, or "" outside a countdown.
func (lc *LevelController) CountdownLabel() string {
	if lc.phase != PhaseCountdown || lc.stepsShown == 0 {
		return ""
	}
	return countdownLabels[lc.stepsShown-1]
}
