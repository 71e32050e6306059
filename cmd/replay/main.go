// Command replay plays a recorded game back headlessly and checks that it
// reproduces the recorded final score.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/tomz197/ringblaster/internal/game"
	"github.com/tomz197/ringblaster/internal/replay"
)

func main() {
	verbose := flag.Bool("v", false, "log every level transition")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-v] recording.msgpack\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "replay"})
	if *verbose {
		logger.SetLevel(log.DebugLevel)
	}

	path := flag.Arg(0)
	f, err := os.Open(path)
	if err != nil {
		logger.Fatal("failed to open recording", "err", err)
	}
	rec, err := replay.Decode(f)
	f.Close()
	if err != nil {
		logger.Fatal("failed to read recording", "path", path, "err", err)
	}
	logger.Info("loaded recording",
		"frames", len(rec.Frames),
		"cooldown", rec.Header.FireCooldown,
		"complete", rec.Header.Complete)

	res, err := replay.Verify(rec, game.Options{Logger: logger})
	switch {
	case errors.Is(err, replay.ErrIncomplete):
		res, err = replay.Play(rec, game.Options{Logger: logger})
		if err != nil {
			logger.Fatal("replay failed", "err", err)
		}
		logger.Warn("recording ended before game over", "score", res.Score, "ticks", res.Ticks)
	case err != nil:
		logger.Error("replay failed", "err", err, "score", res.Score)
		os.Exit(1)
	default:
		logger.Info("replay verified", "score", res.Score, "shots", res.Shots, "ticks", res.Ticks)
	}
}
