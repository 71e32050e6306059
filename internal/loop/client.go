package loop

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/ringblaster/internal/draw"
	"github.com/tomz197/ringblaster/internal/event"
	"github.com/tomz197/ringblaster/internal/game"
	"github.com/tomz197/ringblaster/internal/input"
	"github.com/tomz197/ringblaster/internal/loop/config"
	"github.com/tomz197/ringblaster/internal/object"
)

// FrameRecorder captures the inputs that drive a session so it can be
// replayed. Begin is called when a session starts, Frame once per frame
// while playing and End when the game is over.
type FrameRecorder interface {
	Begin(start time.Duration)
	Frame(at time.Duration, aim float64, fire bool)
	End(score int)
}

// Client handles rendering and input for a single connection.
// Each client owns its own game session.
type Client struct {
	state        *ClientState
	view         *draw.Viewport
	canvas       *draw.Canvas
	screen       *draw.Screen
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	username     string
	termSizeFunc draw.TermSizeFunc

	levels    []game.Level
	cooldown  time.Duration
	listeners []event.Listener
	recorder  FrameRecorder
	queue     *event.Queue
	clock     func() time.Duration
	logger    *log.Logger

	mouseCol, mouseRow int // Last mouse cell used for aiming
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	Levels       []game.Level         // Defaults to game.DefaultLevels()
	FireCooldown time.Duration        // Defaults to game.DefaultFireCooldown
	Listeners    []event.Listener     // Subscribed to every session, e.g. audio
	Recorder     FrameRecorder        // Optional input recorder
	Clock        func() time.Duration // Defaults to time since NewClient
	Logger       *log.Logger          // Defaults to a discarding logger
}

// NewClient creates a client reading keys from r and drawing to w.
func NewClient(r *bufio.Reader, w io.Writer, opts ClientOptions) (*Client, error) {
	if opts.Levels != nil {
		if err := game.ValidateLevels(opts.Levels); err != nil {
			return nil, fmt.Errorf("new client: %w", err)
		}
	}
	if opts.FireCooldown < 0 {
		return nil, fmt.Errorf("new client: negative fire cooldown %v", opts.FireCooldown)
	}

	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.StdoutSize
	}
	clock := opts.Clock
	if clock == nil {
		start := time.Now()
		clock = func() time.Duration { return time.Since(start) }
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	view := draw.NewViewport(config.ViewWidth, config.ViewHeight, config.MaxTermWidth, config.MaxTermHeight)
	if cols, rows, err := termSizeFunc(); err == nil {
		view.Fit(cols, rows)
	}

	return &Client{
		state:        NewClientState(),
		view:         view,
		canvas:       draw.NewCanvas(view),
		screen:       draw.NewScreen(w, view),
		writer:       w,
		inputStream:  input.StartStream(r),
		lastInput:    time.Now(),
		username:     opts.Username,
		termSizeFunc: termSizeFunc,
		levels:       opts.Levels,
		cooldown:     opts.FireCooldown,
		listeners:    opts.Listeners,
		recorder:     opts.Recorder,
		clock:        clock,
		logger:       logger,
	}, nil
}

// Run starts the client loop. Blocks until the player quits, goes idle, or
// the shutdown notice after ctx is cancelled runs out.
func (c *Client) Run(ctx context.Context) error {
	draw.Enter(c.writer)
	defer draw.Leave(c.writer)
	io.WriteString(c.writer, input.EnableMouse)
	defer io.WriteString(c.writer, input.DisableMouse)
	defer c.closeSession()

	lastTime := time.Now()

	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		c.checkShutdown(ctx)
		c.processInput()
		c.updateScreen()

		switch c.state.GameState {
		case GameStateStart:
			if err := c.updateStartState(); err != nil {
				return err
			}
		case GameStatePlaying:
			c.updatePlayingState()
		case GameStateOver:
			if err := c.updateOverState(); err != nil {
				return err
			}
		case GameStateShutdown:
			c.updateShutdownState()
		}
		c.updateEffects()

		if err := c.drawFrame(); err != nil {
			return fmt.Errorf("draw frame: %w", err)
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}
	return nil
}

// Score returns the current session score, or the last final score.
func (c *Client) Score() int {
	if c.state.Session != nil {
		return c.state.Session.Score()
	}
	return 0
}

// checkShutdown switches to the shutdown screen once ctx is cancelled.
func (c *Client) checkShutdown(ctx context.Context) {
	if c.state.GameState == GameStateShutdown {
		return
	}
	select {
	case <-ctx.Done():
		c.logger.Info("shutdown notice", "user", c.username)
		c.state.GameState = GameStateShutdown
		c.state.shutdownTimer = config.ShutdownDisplaySeconds
	default:
	}
}

// processInput reads input and tracks inactivity.
func (c *Client) processInput() {
	c.state.Input = input.ReadInput(c.inputStream)

	if len(c.state.Input.Pressed) > 0 {
		c.lastInput = time.Now()
		c.state.isInactive = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityDisconnectUser {
		c.logger.Info("disconnecting idle client", "user", c.username)
		c.state.Running = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityWarnUser {
		c.state.isInactive = true
	}

	if c.state.Input.Quit {
		c.state.Running = false
	}
}

// updateScreen refits the viewport after a terminal resize. The canvas
// follows on its next Clear.
func (c *Client) updateScreen() {
	cols, rows, err := c.termSizeFunc()
	if err != nil {
		return
	}
	c.view.Fit(cols, rows)
}

// updateStartState handles the title screen.
func (c *Client) updateStartState() error {
	if c.state.Input.Space || c.state.Input.Enter || c.state.Input.Click {
		return c.startGame()
	}
	return nil
}

// updateOverState waits for a restart on the game over screen.
func (c *Client) updateOverState() error {
	if c.state.Input.Space || c.state.Input.Enter || c.state.Input.Click {
		return c.startGame()
	}
	return nil
}

// updateShutdownState handles the shutdown screen countdown.
func (c *Client) updateShutdownState() {
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}

// startGame replaces any previous session with a fresh one and starts it.
func (c *Client) startGame() error {
	input.ResetKeyInput(c.inputStream)
	c.closeSession()

	s, err := game.NewSession(game.Options{
		Levels:       c.levels,
		FireCooldown: c.cooldown,
		Logger:       c.logger,
	})
	if err != nil {
		return fmt.Errorf("start game: %w", err)
	}

	c.queue = &event.Queue{}
	s.Events().SubscribeAll(c.queue)
	for _, l := range c.listeners {
		s.Events().SubscribeAll(l)
	}

	for i, r := range s.Rings() {
		c.state.rings[i] = &object.Ring{Ring: r}
	}
	c.state.shooter.Angle = s.Aim()
	c.state.Session = s
	c.state.GameState = GameStatePlaying

	now := c.clock()
	if c.recorder != nil {
		c.recorder.Begin(now)
	}
	s.Start(now)
	c.logger.Info("game started", "user", c.username)
	return nil
}

// updatePlayingState applies aim and fire input, then advances the session
// by one tick.
func (c *Client) updatePlayingState() {
	s := c.state.Session
	in := c.state.Input
	now := c.clock()

	c.applyAim(s, in)
	fire := in.Space || in.Click
	if fire {
		s.OnFire(s.Aim(), now)
	}
	s.OnTick(now)
	if c.recorder != nil {
		c.recorder.Frame(now, s.Aim(), fire)
	}
	c.state.shooter.Angle = s.Aim()

	c.drainEvents()

	if s.IsOver() {
		score := s.Score()
		c.state.BestScore = max(c.state.BestScore, score)
		if c.recorder != nil {
			c.recorder.End(score)
		}
		c.logger.Info("game over", "user", c.username, "score", score)
		c.state.GameState = GameStateOver
	}
}

// applyAim points the shooter at a moved mouse, or rotates it with the keys.
func (c *Client) applyAim(s *game.Session, in input.Input) {
	if in.MouseSeen && (in.MouseCol != c.mouseCol || in.MouseRow != c.mouseRow) {
		c.mouseCol, c.mouseRow = in.MouseCol, in.MouseRow
		x, y := c.view.Field(in.MouseCol, in.MouseRow)
		s.OnAim(x, y)
		return
	}

	switch {
	case in.Up:
		s.SetAim(-math.Pi / 2)
	case in.Left && !in.Right:
		s.SetAim(clampAim(s.Aim() - config.AimStep))
	case in.Right && !in.Left:
		s.SetAim(clampAim(s.Aim() + config.AimStep))
	}
}

// clampAim keeps keyboard aiming within the upper half plane.
func clampAim(angle float64) float64 {
	return math.Max(config.AimMinAngle, math.Min(config.AimMaxAngle, angle))
}

// drainEvents turns session events into visual effects.
func (c *Client) drainEvents() {
	s := c.state.Session
	for _, e := range c.queue.Drain() {
		switch e.Type {
		case event.RingHit:
			for _, r := range c.state.rings {
				if r.Ring.ID.String() == e.Ring {
					r.Flash = config.RingFlashTime
				}
			}
			for _, p := range s.Projectiles() {
				if p.ID == e.Projectile {
					c.state.effects = object.SpawnSparks(c.state.effects, p.X, p.Y,
						config.SparkCount, config.SparkSpeed, config.SparkLifetime)
				}
			}
		case event.ScoreChanged:
			label := fmt.Sprintf("%s %+d", e.Label, e.Delta)
			c.state.effects = append(c.state.effects,
				object.NewFloatingText(game.ShooterX, game.ShooterY-60, label))
		case event.LevelStarted:
			c.logger.Debug("level live", "user", c.username, "level", e.LevelName)
		}
	}
}

// updateEffects ages particles, labels and ring flashes.
func (c *Client) updateEffects() {
	dt := c.state.delta
	c.state.effects = object.UpdateEffects(c.state.effects, dt)
	for _, r := range c.state.rings {
		if r != nil && r.Flash > 0 {
			r.Flash -= dt.Seconds()
		}
	}
}

// closeSession releases the current session, if any.
func (c *Client) closeSession() {
	if c.state.Session != nil {
		c.state.Session.Close()
	}
}
