package audio

import (
	"time"

	"github.com/gopxl/beep"
)

// Sound identifies one of the game's sound effects.
type Sound int

const (
	SoundShot      Sound = iota // Projectile fired
	SoundRingHit                // Projectile crossed a ring
	SoundPerfect                // Three-ring shot scored
	SoundPenalty                // Partial or missed shot scored
	SoundCountdown              // 3, 2, 1
	SoundGo                     // Level is live
	SoundGameOver               // Last level expired
)

// Build renders sound as a finite streamer at the given rate and linear volume.
func Build(sound Sound, rate beep.SampleRate, volume float64) beep.Streamer {
	var s beep.Streamer
	switch sound {
	case SoundShot:
		d := 60 * time.Millisecond
		s = NewEnvelope(NewOscillator(0, d, WaveNoise, rate), d, 2*time.Millisecond, 50*time.Millisecond, rate)
		s = newVolume(s, 0.5)
	case SoundRingHit:
		s = tone(1320, 50*time.Millisecond, WaveSine, rate)
	case SoundPerfect:
		// Rising major arpeggio
		s = beep.Seq(
			tone(659.25, 80*time.Millisecond, WaveSquare, rate),
			tone(783.99, 80*time.Millisecond, WaveSquare, rate),
			tone(1046.5, 160*time.Millisecond, WaveSquare, rate),
		)
		s = newVolume(s, 0.4)
	case SoundPenalty:
		s = tone(110, 180*time.Millisecond, WaveSaw, rate)
	case SoundCountdown:
		s = tone(440, 90*time.Millisecond, WaveSine, rate)
	case SoundGo:
		s = tone(880, 250*time.Millisecond, WaveSine, rate)
	case SoundGameOver:
		s = beep.Seq(
			tone(392, 200*time.Millisecond, WaveSine, rate),
			tone(261.63, 400*time.Millisecond, WaveSine, rate),
		)
	default:
		return nil
	}
	return newVolume(s, volume)
}

// tone is a single note with short attack and release ramps.
func tone(freq float64, d time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(NewOscillator(freq, d, wave, rate), d, 5*time.Millisecond, d/2, rate)
}
