// Package game is the ring shooting simulation: ring motion, projectiles,
// collisions, scoring and level progression. It owns no timers and does no
// I/O; a frontend drives it with timestamps and input and renders its events.
package game

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/ringblaster/internal/event"
)

// Options configures a Session.
type Options struct {
	Levels       []Level       // Defaults to DefaultLevels()
	FireCooldown time.Duration // Defaults to DefaultFireCooldown
	Logger       *log.Logger   // Defaults to a discarding logger
}

// Session owns all mutable game state. It is driven by a single goroutine:
// Start once, then OnAim/OnFire/OnTick every frame, then Close.
type Session struct {
	levels      *LevelController
	rings       [RingCount]*Ring
	projectiles []*Projectile
	nextID      int
	score       int
	aim         float64
	cooldown    time.Duration
	lastFire    time.Duration
	hasFired    bool
	ticks       uint64
	started     bool
	closed      bool
	events      *event.Dispatcher
	logger      *log.Logger
}

// NewSession validates the options and creates a session ready to Start.
func NewSession(opts Options) (*Session, error) {
	levels := opts.Levels
	if levels == nil {
		levels = DefaultLevels()
	}
	if err := ValidateLevels(levels); err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}

	cooldown := opts.FireCooldown
	if cooldown < 0 {
		return nil, fmt.Errorf("new session: negative fire cooldown %v", cooldown)
	}
	if cooldown == 0 {
		cooldown = DefaultFireCooldown
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Session{
		levels:   NewLevelController(levels),
		rings:    NewRings(),
		aim:      -math.Pi / 2, // Start pointing up
		cooldown: cooldown,
		events:   event.NewDispatcher(),
		logger:   logger,
	}, nil
}

// Events returns the dispatcher frontends subscribe to.
func (s *Session) Events() *event.Dispatcher {
	return s.events
}

// Start begins the first level's countdown. Later calls are ignored.
func (s *Session) Start(now time.Duration) {
	if s.started || s.closed {
		return
	}
	s.started = true
	s.logger.Debug("session started", "levels", s.levels.Levels(), "cooldown", s.cooldown)
	s.beginCountdown(0, now)
}

// OnTick advances the simulation by one step.
// During a countdown only the countdown itself progresses.
func (s *Session) OnTick(now time.Duration) {
	if !s.started || s.closed {
		return
	}

	switch s.levels.Phase() {
	case PhaseCountdown:
		s.advanceCountdown(now)
		return
	case PhaseActive:
	default:
		return
	}

	if s.levels.Expired(now) {
		s.endLevel(now)
		return
	}

	s.ticks++

	for _, r := range s.rings {
		r.Advance()
	}

	kept := s.projectiles[:0] // reuse backing array
	for _, p := range s.projectiles {
		p.Advance()
		resolveRingHits(p, s.rings, s.onRingHit)

		if p.Exited() {
			if p.MarkScored() {
				s.applyOutcome(Evaluate(len(p.Hits)))
			}
			continue
		}
		kept = append(kept, p)
	}
	clear(s.projectiles[len(kept):])
	s.projectiles = kept
}

// OnFire launches a projectile along angle. Requests during a countdown, after
// game over, or within the cooldown of the last accepted shot are dropped.
func (s *Session) OnFire(angle float64, now time.Duration) bool {
	if s.closed || s.levels.Phase() != PhaseActive {
		return false
	}
	if s.hasFired && now-s.lastFire < s.cooldown {
		return false
	}

	s.nextID++
	p := NewProjectile(s.nextID, angle)
	s.projectiles = append(s.projectiles, p)
	s.lastFire = now
	s.hasFired = true

	s.events.Dispatch(event.Event{Type: event.ProjectileFired, Projectile: p.ID})
	return true
}

// OnAim points the shooter at (x, y) in field coordinates and returns the angle.
func (s *Session) OnAim(x, y float64) float64 {
	s.aim = math.Atan2(y-ShooterY, x-ShooterX)
	return s.aim
}

// SetAim stores an angle directly (keyboard rotation, replays).
func (s *Session) SetAim(angle float64) {
	s.aim = angle
}

// Aim returns the stored aim angle.
func (s *Session) Aim() float64 {
	return s.aim
}

// Close tears the session down. Pending countdown steps are dropped and no
// listener is called afterwards.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.levels.Stop()
	s.projectiles = nil
	s.events.Clear()
	s.logger.Debug("session closed", "score", s.score, "ticks", s.ticks)
}

// Score returns the current score.
func (s *Session) Score() int {
	return s.score
}

// Phase returns the level state machine's state.
func (s *Session) Phase() Phase {
	return s.levels.Phase()
}

// CountdownActive reports whether gameplay is paused for a countdown.
func (s *Session) CountdownActive() bool {
	return s.levels.Phase() == PhaseCountdown
}

// IsOver reports whether the last level has expired.
func (s *Session) IsOver() bool {
	return s.levels.Phase() == PhaseGameOver
}

// Level returns the level being counted down to or played.
func (s *Session) Level() Level {
	return s.levels.Current()
}

// CountdownLabel returns the countdown value on screen, if any.
func (s *Session) CountdownLabel() string {
	return s.levels.CountdownLabel()
}

// SecondsRemaining returns the level timer readout.
func (s *Session) SecondsRemaining(now time.Duration) int {
	return s.levels.SecondsRemaining(now)
}

// Rings returns the three rings. Callers must treat them as read-only.
func (s *Session) Rings() [RingCount]*Ring {
	return s.rings
}

// Projectiles returns the live projectiles. Callers must treat them as read-only.
func (s *Session) Projectiles() []*Projectile {
	return s.projectiles
}

// Ticks returns the number of simulation steps run while a level was active.
func (s *Session) Ticks() uint64 {
	return s.ticks
}

func (s *Session) beginCountdown(index int, now time.Duration) {
	s.levels.Begin(index, now)
	s.advanceCountdown(now)
}

func (s *Session) advanceCountdown(now time.Duration) {
	steps, done := s.levels.TickCountdown(now)
	level := s.levels.Current()
	for _, step := range steps {
		s.events.Dispatch(event.Event{
			Type:      event.CountdownStep,
			Label:     step,
			Level:     level.Index,
			LevelName: level.Name,
		})
	}
	if !done {
		return
	}

	for _, r := range s.rings {
		r.ApplyLevel(level)
	}
	s.logger.Debug("level started", "level", level.Name, "speed", level.SpeedMultiplier, "amplitude", level.Amplitude)
	s.events.Dispatch(event.Event{Type: event.LevelStarted, Level: level.Index, LevelName: level.Name})
}

func (s *Session) endLevel(now time.Duration) {
	ended := s.levels.Current()
	s.events.Dispatch(event.Event{Type: event.LevelEnded, Level: ended.Index, LevelName: ended.Name})

	if s.levels.Next(now) {
		s.logger.Debug("game over", "score", s.score)
		s.events.Dispatch(event.Event{Type: event.GameOver, Score: s.score})
		return
	}
	s.beginCountdown(s.levels.Index(), now)
}

func (s *Session) onRingHit(p *Projectile, r *Ring) {
	s.events.Dispatch(event.Event{Type: event.RingHit, Ring: r.ID.String(), Projectile: p.ID})
}

func (s *Session) applyOutcome(o Outcome) {
	if o.Delta == 0 {
		return
	}
	s.score = ApplyDelta(s.score, o.Delta)
	s.events.Dispatch(event.Event{
		Type:  event.ScoreChanged,
		Score: s.score,
		Delta: o.Delta,
		Label: o.Label,
	})
}
