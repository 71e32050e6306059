package loop

import (
	"time"

	"github.com/tomz197/ringblaster/internal/game"
	"github.com/tomz197/ringblaster/internal/input"
	"github.com/tomz197/ringblaster/internal/object"
)

// GameState represents the current screen for a client.
type GameState int

const (
	GameStateStart    GameState = iota // Title screen
	GameStatePlaying                   // Countdown or active level
	GameStateOver                      // Final score, restart prompt
	GameStateShutdown                  // Server is shutting down
)

// ClientState holds per-connection state (input, session, effects).
// Each client has its own instance, managed by the Client.
type ClientState struct {
	Input     input.Input
	GameState GameState
	Session   *game.Session
	BestScore int // Best final score this connection
	Running   bool

	rings   [game.RingCount]*object.Ring
	shooter *object.Shooter
	effects []object.Effect

	delta         time.Duration // Frame delta time
	shutdownTimer float64       // Countdown before auto-disconnect on shutdown
	isInactive    bool          // Whether the client is in inactive warning state
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		GameState: GameStateStart,
		Running:   true,
		shooter:   object.NewShooter(),
	}
}
