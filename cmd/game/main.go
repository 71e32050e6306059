// Command game plays the ring shooter in the local terminal.
package main

import (
	"bufio"
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/tomz197/ringblaster/internal/audio"
	"github.com/tomz197/ringblaster/internal/config"
	"github.com/tomz197/ringblaster/internal/event"
	"github.com/tomz197/ringblaster/internal/game"
	"github.com/tomz197/ringblaster/internal/loop"
	"github.com/tomz197/ringblaster/internal/replay"
)

func main() {
	// Logs go to stderr so they can be redirected away from the game screen.
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "game"})
	if lvl, err := log.ParseLevel(config.GetEnv("BLASTER_LOG_LEVEL", "warn")); err == nil {
		logger.SetLevel(lvl)
	}

	cooldown, err := config.GetEnvDuration("BLASTER_FIRE_COOLDOWN", game.DefaultFireCooldown)
	if err != nil {
		logger.Fatal("invalid configuration", "err", err)
	}
	mute, err := config.GetEnvBool("BLASTER_MUTE", false)
	if err != nil {
		logger.Fatal("invalid configuration", "err", err)
	}
	recordPath := config.GetEnv("BLASTER_RECORD", "")

	opts := loop.ClientOptions{
		FireCooldown: cooldown,
		Logger:       logger,
	}

	if !mute {
		sink, err := audio.NewSpeakerSink(audio.DefaultSampleRate)
		if err != nil {
			logger.Warn("audio disabled", "err", err)
		} else {
			defer sink.Close()
			opts.Listeners = []event.Listener{audio.NewPlayer(sink, audio.Options{Volume: 0.5, Logger: logger})}
		}
	}

	var recorder *replay.Recorder
	if recordPath != "" {
		recorder = replay.NewRecorder(cooldown)
		opts.Recorder = recorder
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		logger.Fatal("failed to enable raw mode", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	runErr := loop.Run(ctx, bufio.NewReader(os.Stdin), os.Stdout, opts)
	stop()
	_ = term.Restore(fd, oldState)

	if recorder != nil {
		if err := saveRecording(recordPath, recorder); err != nil {
			logger.Error("failed to save recording", "path", recordPath, "err", err)
		} else {
			logger.Info("recording saved", "path", recordPath)
		}
	}

	if runErr != nil {
		logger.Error("game error", "err", runErr)
		os.Exit(1)
	}
}

func saveRecording(path string, r *replay.Recorder) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := r.Save(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
