// Command ssh serves the ring shooter over SSH. Every connection plays its
// own independent session.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"

	"github.com/tomz197/ringblaster/internal/config"
	"github.com/tomz197/ringblaster/internal/draw"
	"github.com/tomz197/ringblaster/internal/game"
	"github.com/tomz197/ringblaster/internal/loop"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
	maxUsernameLength  = 16
	drainTimeout       = 15 * time.Second
)

// sessions tracks running game clients so shutdown can wait for them.
type sessions struct {
	ctx context.Context // Cancelled to show every client the shutdown notice
	wg  sync.WaitGroup
}

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "ssh"})
	if lvl, err := log.ParseLevel(config.GetEnv("BLASTER_LOG_LEVEL", "info")); err == nil {
		logger.SetLevel(lvl)
	}

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	cooldown, err := config.GetEnvDuration("BLASTER_FIRE_COOLDOWN", game.DefaultFireCooldown)
	if err != nil {
		logger.Fatal("invalid configuration", "err", err)
	}
	logger.Info("ssh config", "host", host, "port", port, "hostKeyPath", hostKeyPath, "cooldown", cooldown)

	shutdownCtx, notifyShutdown := context.WithCancel(context.Background())
	active := &sessions{ctx: shutdownCtx}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			gameMiddleware(active, cooldown, logger),
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting SSH server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down, notifying connected players")
	notifyShutdown()
	active.wait(drainTimeout, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

// wait blocks until every client has exited or timeout passes.
func (a *sessions) wait(timeout time.Duration, logger *log.Logger) {
	finished := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(finished)
	}()
	select {
	case <-finished:
		logger.Info("all players disconnected")
	case <-time.After(timeout):
		logger.Warn("timed out waiting for players", "timeout", timeout)
	}
}

// gameMiddleware runs a game client for each SSH session.
func gameMiddleware(active *sessions, cooldown time.Duration, logger *log.Logger) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			pty, winCh, ok := sess.Pty()
			if !ok {
				fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
				return
			}

			username := sess.User()
			if len(username) > maxUsernameLength {
				username = username[:maxUsernameLength]
			}
			l := logger.With("user", username)
			l.Info("new game session", "terminal", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

			// Create a terminal size tracker that updates on window changes
			sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
			go func() {
				for win := range winCh {
					sizeTracker.update(win.Width, win.Height)
				}
			}()

			active.wg.Add(1)
			defer active.wg.Done()

			err := loop.Run(active.ctx, bufio.NewReader(sess), sess, loop.ClientOptions{
				TermSizeFunc: sizeTracker.getSize,
				Username:     username,
				FireCooldown: cooldown,
				Logger:       l,
			})
			if err != nil {
				l.Error("game error", "err", err)
			}

			l.Info("session ended")
			next(sess)
		}
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
