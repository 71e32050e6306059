// Command gui plays the ring shooter in a desktop window.
package main

import (
	"errors"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tomz197/ringblaster/internal/audio"
	"github.com/tomz197/ringblaster/internal/config"
	"github.com/tomz197/ringblaster/internal/event"
	"github.com/tomz197/ringblaster/internal/game"
	"github.com/tomz197/ringblaster/internal/gui"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "gui"})
	if lvl, err := log.ParseLevel(config.GetEnv("BLASTER_LOG_LEVEL", "info")); err == nil {
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

	var listeners []event.Listener
	if !mute {
		sink, err := audio.NewSpeakerSink(audio.DefaultSampleRate)
		if err != nil {
			logger.Warn("audio disabled", "err", err)
		} else {
			defer sink.Close()
			listeners = append(listeners, audio.NewPlayer(sink, audio.Options{Volume: 0.5, Logger: logger}))
		}
	}

	scene, err := gui.NewScene(gui.Options{
		FireCooldown: cooldown,
		Listeners:    listeners,
		Logger:       logger,
	})
	if err != nil {
		logger.Fatal("failed to create scene", "err", err)
	}
	defer scene.Close()

	ebiten.SetWindowSize(game.FieldWidth, game.FieldHeight)
	ebiten.SetWindowTitle("Ring Blaster")
	ebiten.SetTPS(gui.TPS)
	if err := ebiten.RunGame(newWindow(scene)); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Error("game error", "err", err)
		os.Exit(1)
	}
}
