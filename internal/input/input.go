// Package input turns raw terminal bytes into per-frame key and mouse state.
package input

import (
	"bufio"
	"strconv"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
const keyHoldDuration = 30 * time.Millisecond

// Escape sequences that switch SGR mouse reporting on and off.
// 1003 reports motion without a button held, 1006 selects the SGR encoding.
const (
	EnableMouse  = "\033[?1003h\033[?1006h"
	DisableMouse = "\033[?1006l\033[?1003l"
)

// Input represents the current frame's input state.
type Input struct {
	Quit   bool
	Left   bool
	Right  bool
	Up     bool
	Space  bool
	Enter  bool
	Escape bool

	// Mouse position in 1-based terminal cells, valid when MouseSeen is true.
	MouseSeen bool
	MouseCol  int
	MouseRow  int
	Click     bool // Left button pressed this frame

	Pressed []byte
}

// keyState tracks the last time each key was pressed.
type keyState struct {
	quit   time.Time
	left   time.Time
	right  time.Time
	up     time.Time
	space  time.Time
	enter  time.Time
	escape time.Time
}

// mouseState holds the latest pointer report.
type mouseState struct {
	seen  bool
	col   int
	row   int
	click bool
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch    chan byte
	state keyState
	mouse mouseState
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 128),
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ReadInput drains all available bytes from the stream (non-blocking).
// Handles escape sequences for arrow keys and mouse reports.
// Uses key state persistence to allow detecting simultaneous key combinations.
func ReadInput(s *Stream) Input {
	now := time.Now()
	var buf []byte

	// Drain all available bytes
drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.state.quit = now
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	s.apply(buf, now)
	return s.snapshot(buf, now)
}

// ResetKeyInput forgets held keys, so a key used to leave one screen does not
// also act on the next.
func ResetKeyInput(s *Stream) {
	if s == nil {
		return
	}
	s.state = keyState{}
	s.mouse.click = false
}

// apply parses buf and updates key and mouse state.
func (s *Stream) apply(buf []byte, now time.Time) {
	s.mouse.click = false

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// Check for escape sequences (arrow keys, mouse reports)
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			if buf[i+2] == '<' {
				if ev, n, ok := parseMouse(buf[i:]); ok {
					s.applyMouse(ev)
					i += n - 1
					continue
				}
			}
			switch buf[i+2] {
			case 'A': // Up arrow
				s.state.up = now
				i += 2
				continue
			case 'C': // Right arrow
				s.state.right = now
				i += 2
				continue
			case 'D': // Left arrow
				s.state.left = now
				i += 2
				continue
			}
		}

		// Single byte handling - update key state
		applyByteToState(&s.state, b, now)
	}
}

// snapshot builds the frame's Input from the accumulated state.
func (s *Stream) snapshot(buf []byte, now time.Time) Input {
	return Input{
		Quit:      now.Sub(s.state.quit) < keyHoldDuration,
		Left:      now.Sub(s.state.left) < keyHoldDuration,
		Right:     now.Sub(s.state.right) < keyHoldDuration,
		Up:        now.Sub(s.state.up) < keyHoldDuration,
		Space:     now.Sub(s.state.space) < keyHoldDuration,
		Enter:     now.Sub(s.state.enter) < keyHoldDuration,
		Escape:    now.Sub(s.state.escape) < keyHoldDuration,
		MouseSeen: s.mouse.seen,
		MouseCol:  s.mouse.col,
		MouseRow:  s.mouse.row,
		Click:     s.mouse.click,
		Pressed:   buf,
	}
}

func (s *Stream) applyMouse(ev mouseEvent) {
	s.mouse.seen = true
	s.mouse.col = ev.col
	s.mouse.row = ev.row
	if ev.press && !ev.motion && ev.button == 0 {
		s.mouse.click = true
	}
}

// mouseEvent is one decoded SGR mouse report.
type mouseEvent struct {
	button int
	col    int
	row    int
	press  bool // 'M' final byte; 'm' is a release
	motion bool
}

// parseMouse decodes an SGR report "ESC [ < b ; col ; row (M|m)" at the start
// of buf. Returns the event and the number of bytes consumed.
func parseMouse(buf []byte) (mouseEvent, int, bool) {
	if len(buf) < 4 || buf[0] != '\x1b' || buf[1] != '[' || buf[2] != '<' {
		return mouseEvent{}, 0, false
	}

	var fields [3]int
	field := 0
	start := 3
	for i := 3; i < len(buf); i++ {
		c := buf[i]
		switch {
		case c >= '0' && c <= '9':
			continue
		case c == ';':
			if field >= 2 {
				return mouseEvent{}, 0, false
			}
			v, err := strconv.Atoi(string(buf[start:i]))
			if err != nil {
				return mouseEvent{}, 0, false
			}
			fields[field] = v
			field++
			start = i + 1
		case c == 'M' || c == 'm':
			if field != 2 {
				return mouseEvent{}, 0, false
			}
			v, err := strconv.Atoi(string(buf[start:i]))
			if err != nil {
				return mouseEvent{}, 0, false
			}
			fields[2] = v
			return mouseEvent{
				button: fields[0] & 3,
				motion: fields[0]&32 != 0,
				col:    fields[1],
				row:    fields[2],
				press:  c == 'M',
			}, i + 1, true
		default:
			return mouseEvent{}, 0, false
		}
	}
	return mouseEvent{}, 0, false
}

// applyByteToState updates the key state timestamps based on the pressed byte.
func applyByteToState(state *keyState, b byte, now time.Time) {
	switch b {
	case 'q', 'Q', '\x03': // Ctrl+C arrives as a byte in raw mode
		state.quit = now
	case 'a', 'A', 'j', 'J':
		state.left = now
	case 'd', 'D', 'l', 'L':
		state.right = now
	case 'w', 'W', 'i', 'I':
		state.up = now
	case ' ':
		state.space = now
	case '\n', '\r':
		state.enter = now
	case '\x1b':
		state.escape = now
	}
}
