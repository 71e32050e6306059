package input

import (
	"testing"
	"time"
)

func TestParseMouse(t *testing.T) {
	tests := []struct {
		name   string
		buf    string
		want   mouseEvent
		n      int
		wantOK bool
	}{
		{"left press", "\x1b[<0;12;7M", mouseEvent{button: 0, col: 12, row: 7, press: true}, 10, true},
		{"left release", "\x1b[<0;12;7m", mouseEvent{button: 0, col: 12, row: 7}, 10, true},
		{"motion", "\x1b[<35;100;40M", mouseEvent{button: 3, col: 100, row: 40, press: true, motion: true}, 13, true},
		{"trailing bytes", "\x1b[<0;1;1Mq", mouseEvent{col: 1, row: 1, press: true}, 9, true},
		{"truncated", "\x1b[<0;12", mouseEvent{}, 0, false},
		{"missing field", "\x1b[<0;12M", mouseEvent{}, 0, false},
		{"garbage", "\x1b[<0;x;1M", mouseEvent{}, 0, false},
		{"arrow key", "\x1b[A", mouseEvent{}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, n, ok := parseMouse([]byte(tt.buf))
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if got != tt.want || n != tt.n {
				t.Errorf("parseMouse = %+v, %d; want %+v, %d", got, n, tt.want, tt.n)
			}
		})
	}
}

func TestStreamApplyKeys(t *testing.T) {
	s := &Stream{}
	now := time.Now()
	buf := []byte("a \x1b[C")
	s.apply(buf, now)
	in := s.snapshot(buf, now)

	if !in.Left || !in.Space || !in.Right {
		t.Errorf("got %+v, want left, space and right held", in)
	}
	if in.Quit || in.Enter || in.Up {
		t.Errorf("unexpected keys in %+v", in)
	}

	later := now.Add(keyHoldDuration)
	in = s.snapshot(nil, later)
	if in.Left || in.Space || in.Right {
		t.Error("keys should be released after the hold duration")
	}
}

func TestStreamApplyMouse(t *testing.T) {
	s := &Stream{}
	now := time.Now()

	buf := []byte("\x1b[<35;40;10M")
	s.apply(buf, now)
	in := s.snapshot(buf, now)
	if !in.MouseSeen || in.MouseCol != 40 || in.MouseRow != 10 {
		t.Fatalf("mouse = %+v", in)
	}
	if in.Click {
		t.Error("motion report is not a click")
	}
	if in.Escape {
		t.Error("mouse report must not register as escape")
	}

	buf = []byte("\x1b[<0;41;11M\x1b[<0;41;11m")
	s.apply(buf, now)
	in = s.snapshot(buf, now)
	if !in.Click || in.MouseCol != 41 || in.MouseRow != 11 {
		t.Errorf("click = %+v", in)
	}

	s.apply(nil, now)
	if s.snapshot(nil, now).Click {
		t.Error("click must only last one frame")
	}
}

func TestResetKeyInput(t *testing.T) {
	s := &Stream{}
	now := time.Now()
	s.apply([]byte(" "), now)
	ResetKeyInput(s)
	if s.snapshot(nil, now).Space {
		t.Error("space still held after reset")
	}
	ResetKeyInput(nil)
}
