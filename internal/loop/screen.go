package loop

import (
	"fmt"
	"time"

	"github.com/tomz197/ringblaster/internal/loop/config"
	"github.com/tomz197/ringblaster/internal/object"
)

var titleArt = []string{
	`  ___ ___ _  _  ___   ___ _      _   ___ _____ ___ ___  `,
	` | _ \_ _| \| |/ __| | _ ) |    /_\ / __|_   _| __| _ \ `,
	` |   /| || .' | (_ | | _ \ |__ / _ \\__ \ | | | _||   / `,
	` |_|_\___|_|\_|\___| |___/____/_/ \_\___/ |_| |___|_|_\ `,
}

var gameOverArt = []string{
	`   ___   _   __  __ ___    _____   _____ ___  `,
	`  / __| /_\ |  \/  | __|  / _ \ \ / / __| _ \ `,
	` | (_ |/ _ \| |\/| | _|  | (_) \ V /| _||   / `,
	`  \___/_/ \_\_|  |_|___|  \___/ \_/ |___|_|_\ `,
}

var controlLines = []string{
	"Mouse  . . . . . . . Aim",
	"A D / < >  . . .  Rotate",
	"W / Up . . .  Aim upward",
	"SPACE / Click  . . Shoot",
	"Q  . . . . . . . .  Quit",
}

// blinkOn toggles prompts every 600ms.
func blinkOn() bool {
	return time.Now().UnixMilli()/600%2 == 0
}

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	c.screen.Begin()
	c.canvas.Clear()

	ctx := object.DrawContext{
		Canvas: c.canvas,
		Screen: c.screen,
	}

	if c.state.Session != nil && c.state.GameState != GameStateShutdown {
		if err := c.drawField(ctx); err != nil {
			return err
		}
	}

	// Dots first, text on top
	c.canvas.Render(c.screen)
	c.screen.Border()
	c.drawLabels(ctx)
	c.drawUI()

	return c.screen.Flush()
}

// drawField draws rings, projectiles, the shooter and effects to the canvas.
func (c *Client) drawField(ctx object.DrawContext) error {
	for _, r := range c.state.rings {
		if err := r.Draw(ctx); err != nil {
			return err
		}
	}
	for _, p := range c.state.Session.Projectiles() {
		if err := (&object.Projectile{Projectile: p}).Draw(ctx); err != nil {
			return err
		}
	}
	if err := c.state.shooter.Draw(ctx); err != nil {
		return err
	}
	for _, e := range c.state.effects {
		if _, isText := e.(*object.FloatingText); isText {
			continue
		}
		if err := e.Draw(ctx); err != nil {
			return err
		}
	}
	return nil
}

// drawLabels writes text effects after the canvas so they are not overdrawn.
func (c *Client) drawLabels(ctx object.DrawContext) {
	if c.state.GameState != GameStatePlaying {
		return
	}
	for _, e := range c.state.effects {
		if t, ok := e.(*object.FloatingText); ok {
			t.Draw(ctx)
		}
	}
}

// drawUI draws the overlay for the current screen.
func (c *Client) drawUI() {
	mid := c.view.Rows / 2

	switch {
	case c.state.GameState == GameStateShutdown:
		c.drawShutdownScreen(mid)
	case c.state.isInactive:
		c.drawInactivityScreen(mid)
	case c.state.GameState == GameStateStart:
		c.drawStartScreen(mid)
	case c.state.GameState == GameStatePlaying:
		c.drawPlayingHUD(mid)
	case c.state.GameState == GameStateOver:
		c.drawOverScreen(mid)
	}
}

// drawBlock writes lines centered one below the other from row top.
func (c *Client) drawBlock(top int, lines []string) {
	for i, line := range lines {
		c.screen.Middle(top+i, line)
	}
}

func (c *Client) drawInactivityScreen(mid int) {
	left := int(config.InactivityDisconnectUser - time.Since(c.lastInput).Seconds())
	c.screen.Middle(mid-2, "INACTIVITY WARNING")
	c.screen.Middle(mid, fmt.Sprintf("You have been inactive for too long. You will be disconnected in %d seconds.", left))
	c.screen.Middle(mid+2, "Press any key to continue")
}

func (c *Client) drawStartScreen(mid int) {
	s := c.screen
	top := mid - 8
	c.drawBlock(top, titleArt)
	s.Middle(top+len(titleArt)+1, "~ Right Message, Right Person, Right Time ~")

	controls := top + len(titleArt) + 3
	s.Middle(controls, "Controls")
	c.drawBlock(controls+1, controlLines)

	below := controls + len(controlLines)
	s.Middle(below+2, "Thread all three rings in one shot for +200")
	if blinkOn() {
		s.Middle(below+4, ">>  Press SPACE to Start  <<")
	}
	if c.state.BestScore > 0 {
		s.Middle(below+6, fmt.Sprintf("Best: %d", c.state.BestScore))
	}
}

// drawPlayingHUD draws score, timer, level name and the countdown overlay.
// Numbers are padded so a shrinking value leaves no stale digits.
func (c *Client) drawPlayingHUD(mid int) {
	sess := c.state.Session
	s := c.screen

	s.Text(2, 1, fmt.Sprintf("Score: %-8d", sess.Score()))
	s.Middle(1, sess.Level().Name)
	s.Right(1, 1, fmt.Sprintf("Time: %-3d", sess.SecondsRemaining(c.clock())))

	if sess.CountdownActive() {
		s.Middle(mid-2, sess.Level().Name)
		s.Middle(mid, sess.CountdownLabel())
	}

	s.Text(2, c.view.Rows, "SPACE shoot  A/D aim  Q quit")
}

func (c *Client) drawOverScreen(mid int) {
	s := c.screen
	top := mid - 6
	c.drawBlock(top, gameOverArt)

	below := top + len(gameOverArt)
	s.Middle(below+1, fmt.Sprintf("Final score: %d", c.Score()))
	s.Middle(below+2, fmt.Sprintf("Best: %d", c.state.BestScore))
	if blinkOn() {
		s.Middle(below+4, ">>  Press SPACE to Restart  <<")
	}
}

func (c *Client) drawShutdownScreen(mid int) {
	s := c.screen
	s.Middle(mid-3, "SERVER SHUTTING DOWN")
	s.Middle(mid-1, "The server is restarting for maintenance.")
	s.Middle(mid, "Please reconnect in a moment.")
	s.Middle(mid+2, fmt.Sprintf("Disconnecting in %d seconds...", int(c.state.shutdownTimer)+1))
	s.Middle(mid+4, "Press Q to disconnect now")
}
