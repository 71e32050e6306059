// Package gui holds the windowed frontend's state: which screen is showing,
// the session being played and its transient effects. It is driven one
// fixed-rate frame at a time and does no drawing itself, so the window
// layer stays a thin adapter.
package gui

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/ringblaster/internal/event"
	"github.com/tomz197/ringblaster/internal/game"
)

// TPS is the fixed update rate the window layer runs at.
const TPS = 60

// Effect timings
const (
	FlashTime    = 250 * time.Millisecond
	LabelTime    = 1200 * time.Millisecond
	LabelRise    = 40.0 // Field units per second
	AimKeyStep   = 0.04 // Radians per frame
	labelOriginY = game.ShooterY - 60
)

// Screen is the view currently shown.
type Screen int

const (
	ScreenTitle Screen = iota
	ScreenPlaying
	ScreenOver
)

func (s Screen) String() string {
	switch s {
	case ScreenTitle:
		return "title"
	case ScreenPlaying:
		return "playing"
	case ScreenOver:
		return "over"
	}
	return "unknown"
}

// Input is one frame of window input, already in field coordinates.
type Input struct {
	CursorX, CursorY float64
	CursorMoved      bool
	RotateLeft       bool
	RotateRight      bool
	AimUp            bool
	Fire             bool // Held fire, honored at the session's cooldown
	Confirm          bool // Start or restart
}

// Label is a floating outcome text.
type Label struct {
	Text string
	X, Y float64
	TTL  time.Duration
}

// Options configures a Scene.
type Options struct {
	Levels       []game.Level
	FireCooldown time.Duration
	Listeners    []event.Listener
	Logger       *log.Logger
}

// Scene is the windowed frontend's state machine.
type Scene struct {
	opts    Options
	logger  *log.Logger
	screen  Screen
	session *game.Session
	queue   *event.Queue
	frame   uint64
	best    int
	flashes [game.RingCount]time.Duration
	labels  []Label
}

// NewScene validates opts and returns a scene on the title screen.
func NewScene(opts Options) (*Scene, error) {
	if opts.Levels != nil {
		if err := game.ValidateLevels(opts.Levels); err != nil {
			return nil, fmt.Errorf("new scene: %w", err)
		}
	}
	if opts.FireCooldown < 0 {
		return nil, fmt.Errorf("new scene: negative fire cooldown %v", opts.FireCooldown)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Scene{opts: opts, logger: logger}, nil
}

// Now is the scene clock: frames elapsed at TPS.
func (s *Scene) Now() time.Duration {
	return time.Duration(s.frame) * time.Second / TPS
}

// Step advances the scene by one frame.
func (s *Scene) Step(in Input) error {
	s.frame++
	dt := time.Second / TPS

	switch s.screen {
	case ScreenTitle, ScreenOver:
		if in.Confirm {
			if err := s.start(); err != nil {
				return err
			}
		}
	case ScreenPlaying:
		s.play(in)
	}

	s.age(dt)
	return nil
}

func (s *Scene) start() error {
	if s.session != nil {
		s.session.Close()
	}
	session, err := game.NewSession(game.Options{
		Levels:       s.opts.Levels,
		FireCooldown: s.opts.FireCooldown,
		Logger:       s.logger,
	})
	if err != nil {
		return fmt.Errorf("start game: %w", err)
	}

	s.queue = &event.Queue{}
	session.Events().SubscribeAll(s.queue)
	for _, l := range s.opts.Listeners {
		session.Events().SubscribeAll(l)
	}
	s.session = session
	s.screen = ScreenPlaying
	s.labels = s.labels[:0]
	session.Start(s.Now())
	s.logger.Info("game started")
	return nil
}

func (s *Scene) play(in Input) {
	session := s.session
	now := s.Now()

	switch {
	case in.CursorMoved:
		session.OnAim(in.CursorX, in.CursorY)
	case in.AimUp:
		session.SetAim(-math.Pi / 2)
	case in.RotateLeft && !in.RotateRight:
		session.SetAim(session.Aim() - AimKeyStep)
	case in.RotateRight && !in.RotateLeft:
		session.SetAim(session.Aim() + AimKeyStep)
	}
	if in.Fire {
		session.OnFire(session.Aim(), now)
	}
	session.OnTick(now)

	for _, e := range s.queue.Drain() {
		switch e.Type {
		case event.RingHit:
			for _, r := range session.Rings() {
				if r.ID.String() == e.Ring {
					s.flashes[r.ID] = FlashTime
				}
			}
		case event.ScoreChanged:
			s.labels = append(s.labels, Label{
				Text: fmt.Sprintf("%s %+d", e.Label, e.Delta),
				X:    game.ShooterX,
				Y:    labelOriginY,
				TTL:  LabelTime,
			})
		}
	}

	if session.IsOver() {
		s.best = max(s.best, session.Score())
		s.screen = ScreenOver
		s.logger.Info("game over", "score", session.Score())
	}
}

// age expires flashes and labels.
func (s *Scene) age(dt time.Duration) {
	for i := range s.flashes {
		s.flashes[i] = max(0, s.flashes[i]-dt)
	}
	kept := s.labels[:0]
	for _, l := range s.labels {
		l.TTL -= dt
		if l.TTL <= 0 {
			continue
		}
		l.Y -= LabelRise * dt.Seconds()
		kept = append(kept, l)
	}
	s.labels = kept
}

// Close releases the current session.
func (s *Scene) Close() {
	if s.session != nil {
		s.session.Close()
	}
}

// Screen returns the view to draw.
func (s *Scene) Screen() Screen { return s.screen }

// Session returns the current or last session, nil before the first game.
func (s *Scene) Session() *game.Session { return s.session }

// Best returns the best final score so far.
func (s *Scene) Best() int { return s.best }

// Flashing reports whether ring id was hit within FlashTime.
func (s *Scene) Flashing(id game.RingID) bool { return s.flashes[id] > 0 }

// Labels returns the live outcome labels.
func (s *Scene) Labels() []Label { return s.labels }
