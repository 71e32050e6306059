// Package audio synthesizes the game's sound effects with beep and plays
// them in response to session events.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/tomz197/ringblaster/internal/event"
	"github.com/tomz197/ringblaster/internal/game"
)

// DefaultSampleRate is used when Options.SampleRate is zero.
const DefaultSampleRate = beep.SampleRate(44100)

// Sink plays finished streamers.
type Sink interface {
	Play(s beep.Streamer)
}

// Options configures a Player.
type Options struct {
	SampleRate beep.SampleRate // Defaults to DefaultSampleRate
	Volume     float64         // Linear master volume; 0 mutes
	Logger     *log.Logger
}

// Player is an event.Listener that turns session events into sounds.
type Player struct {
	sink   Sink
	rate   beep.SampleRate
	volume float64
	logger *log.Logger
}

// NewPlayer creates a Player writing to sink.
func NewPlayer(sink Sink, opts Options) *Player {
	rate := opts.SampleRate
	if rate == 0 {
		rate = DefaultSampleRate
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Player{sink: sink, rate: rate, volume: opts.Volume, logger: logger}
}

// OnEvent implements event.Listener.
func (p *Player) OnEvent(e event.Event) {
	sound, ok := soundFor(e)
	if !ok || p.volume <= 0 {
		return
	}
	p.logger.Debug("play sound", "event", e.Type, "sound", sound)
	p.sink.Play(Build(sound, p.rate, p.volume))
}

// soundFor maps a session event to its sound effect.
func soundFor(e event.Event) (Sound, bool) {
	switch e.Type {
	case event.ProjectileFired:
		return SoundShot, true
	case event.RingHit:
		return SoundRingHit, true
	case event.ScoreChanged:
		if e.Delta == game.ScorePerfect {
			return SoundPerfect, true
		}
		return SoundPenalty, true
	case event.CountdownStep:
		if e.Label == game.CountdownGoLabel {
			return SoundGo, true
		}
		return SoundCountdown, true
	case event.GameOver:
		return SoundGameOver, true
	}
	return 0, false
}

// SpeakerSink mixes streamers onto the system audio device.
type SpeakerSink struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// NewSpeakerSink opens the audio device. It fails on hosts without one;
// callers are expected to carry on without sound.
func NewSpeakerSink(rate beep.SampleRate) (*SpeakerSink, error) {
	if rate == 0 {
		rate = DefaultSampleRate
	}
	if err := speaker.Init(rate, rate.N(50*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	s := &SpeakerSink{mixer: &beep.Mixer{}, initialized: true}
	speaker.Play(s.mixer)
	return s, nil
}

// Play adds s to the mix.
func (s *SpeakerSink) Play(st beep.Streamer) {
	if st == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

// Close silences the mix and releases the device.
func (s *SpeakerSink) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	s.initialized = false
}
