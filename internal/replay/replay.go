// Package replay records the per-frame inputs of a game session in msgpack
// and plays them back through a fresh session. The simulation is
// deterministic, so a replay reproduces the recorded score.
package replay

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/tomz197/ringblaster/internal/game"
)

// FormatVersion is written into every recording.
const FormatVersion = 1

var (
	// ErrVersion is returned when loading a recording of another format.
	ErrVersion = errors.New("unsupported replay version")
	// ErrIncomplete is returned when a recording never reached game over.
	ErrIncomplete = errors.New("replay does not reach game over")
	// ErrMismatch is returned when playback diverges from the recorded score.
	ErrMismatch = errors.New("replayed score does not match recording")
)

// Header describes how a recording was made.
type Header struct {
	Version      int           `msgpack:"v"`
	FireCooldown time.Duration `msgpack:"cooldown"`
	Start        time.Duration `msgpack:"start"`
	Score        int           `msgpack:"score"`
	Complete     bool          `msgpack:"complete"`
}

// Frame is one rendered frame's input.
type Frame struct {
	At   time.Duration `msgpack:"t"`
	Aim  float64       `msgpack:"a"`
	Fire bool          `msgpack:"f,omitempty"`
}

// Recording is a header plus every frame of one session.
type Recording struct {
	Header Header  `msgpack:"header"`
	Frames []Frame `msgpack:"frames"`
}

// Recorder collects frames from a client. It keeps only the latest session.
type Recorder struct {
	rec Recording
}

// NewRecorder creates a recorder for sessions using the given fire cooldown.
func NewRecorder(fireCooldown time.Duration) *Recorder {
	return &Recorder{rec: Recording{Header: Header{Version: FormatVersion, FireCooldown: fireCooldown}}}
}

// Begin discards any previous session and starts a new recording.
func (r *Recorder) Begin(start time.Duration) {
	r.rec.Header.Start = start
	r.rec.Header.Score = 0
	r.rec.Header.Complete = false
	r.rec.Frames = r.rec.Frames[:0]
}

// Frame appends one frame of input.
func (r *Recorder) Frame(at time.Duration, aim float64, fire bool) {
	r.rec.Frames = append(r.rec.Frames, Frame{At: at, Aim: aim, Fire: fire})
}

// End marks the recording complete with the final score.
func (r *Recorder) End(score int) {
	r.rec.Header.Score = score
	r.rec.Header.Complete = true
}

// Recording returns the current recording. The frames are shared with the
// recorder until the next Begin.
func (r *Recorder) Recording() Recording {
	return r.rec
}

// Save encodes the current recording to w.
func (r *Recorder) Save(w io.Writer) error {
	return Encode(w, r.rec)
}

// Encode writes rec to w in msgpack.
func Encode(w io.Writer, rec Recording) error {
	if err := msgpack.NewEncoder(w).Encode(&rec); err != nil {
		return fmt.Errorf("encode replay: %w", err)
	}
	return nil
}

// Decode reads a recording from r.
func Decode(r io.Reader) (Recording, error) {
	var rec Recording
	if err := msgpack.NewDecoder(r).Decode(&rec); err != nil {
		return Recording{}, fmt.Errorf("decode replay: %w", err)
	}
	if rec.Header.Version != FormatVersion {
		return Recording{}, fmt.Errorf("%w: %d", ErrVersion, rec.Header.Version)
	}
	return rec, nil
}

// Result is the outcome of playing a recording back.
type Result struct {
	Score    int
	Ticks    uint64
	Shots    int // Fire requests accepted by the session
	GameOver bool
}

// Play feeds rec through a new session with the given options. Cooldown in
// opts is overridden by the recording's.
func Play(rec Recording, opts game.Options) (Result, error) {
	opts.FireCooldown = rec.Header.FireCooldown
	s, err := game.NewSession(opts)
	if err != nil {
		return Result{}, fmt.Errorf("play replay: %w", err)
	}
	defer s.Close()

	var res Result
	s.Start(rec.Header.Start)
	for _, f := range rec.Frames {
		s.SetAim(f.Aim)
		if f.Fire && s.OnFire(f.Aim, f.At) {
			res.Shots++
		}
		s.OnTick(f.At)
	}

	res.Score = s.Score()
	res.Ticks = s.Ticks()
	res.GameOver = s.IsOver()
	return res, nil
}

// Verify plays rec back and checks it reproduces the recorded final score.
func Verify(rec Recording, opts game.Options) (Result, error) {
	if !rec.Header.Complete {
		return Result{}, ErrIncomplete
	}
	res, err := Play(rec, opts)
	if err != nil {
		return res, err
	}
	if !res.GameOver || res.Score != rec.Header.Score {
		return res, fmt.Errorf("%w: recorded %d, replayed %d", ErrMismatch, rec.Header.Score, res.Score)
	}
	return res, nil
}
