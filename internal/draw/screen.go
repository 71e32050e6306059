package draw

import (
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"
)

// Terminal control sequences.
const (
	homeClear  = "\033[H\033[2J"
	hideCursor = "\033[?25l"
	showCursor = "\033[?25h"
)

// packetSize caps each write so frames leave an SSH channel in MTU-sized pieces.
const packetSize = 1400

// TermSizeFunc reports the terminal size in cells.
type TermSizeFunc func() (cols, rows int, err error)

// StdoutSize reads the size of the terminal on standard output.
func StdoutSize() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// Enter hides the cursor and clears the terminal.
func Enter(w io.Writer) {
	io.WriteString(w, hideCursor+homeClear)
}

// Leave clears the terminal and shows the cursor again.
func Leave(w io.Writer) {
	io.WriteString(w, homeClear+showCursor)
}

// Screen buffers one frame of output for a viewport. Cell positions taken by
// its methods are 1-based and relative to the viewport block.
type Screen struct {
	out  io.Writer
	view *Viewport
	buf  []byte
}

// NewScreen creates a screen writing frames to w.
func NewScreen(w io.Writer, v *Viewport) *Screen {
	return &Screen{out: w, view: v}
}

// Begin starts a frame, discarding anything not yet flushed.
func (s *Screen) Begin() {
	s.buf = append(s.buf[:0], homeClear...)
}

// cursor moves to an absolute terminal cell.
func (s *Screen) cursor(col, row int) {
	s.buf = append(s.buf, "\033["...)
	s.buf = strconv.AppendInt(s.buf, int64(row), 10)
	s.buf = append(s.buf, ';')
	s.buf = strconv.AppendInt(s.buf, int64(col), 10)
	s.buf = append(s.buf, 'H')
}

func (s *Screen) moveTo(col, row int) {
	s.cursor(col+s.view.Col, row+s.view.Row)
}

func (s *Screen) rawAt(col, row int, text string) {
	s.cursor(col, row)
	s.buf = append(s.buf, text...)
}

// Text writes text starting at a cell, clamped to the block's top-left.
func (s *Screen) Text(col, row int, text string) {
	if text == "" {
		return
	}
	s.moveTo(max(col, 1), max(row, 1))
	s.buf = append(s.buf, text...)
}

// Center writes text centered on a column.
func (s *Screen) Center(col, row int, text string) {
	s.Text(col-utf8.RuneCountInString(text)/2, row, text)
}

// Middle writes text centered across the block.
func (s *Screen) Middle(row int, text string) {
	s.Center(s.view.Cols/2, row, text)
}

// Right writes text ending margin cells before the block's right edge.
func (s *Screen) Right(row, margin int, text string) {
	s.Text(s.view.Cols-margin-utf8.RuneCountInString(text)+1, row, text)
}

// Label writes text centered on the cell holding field point (x, y), moved
// by rows.
func (s *Screen) Label(x, y float64, rows int, text string) {
	col, row := s.view.Cell(x, y)
	s.Center(col, row+rows, text)
}

// Border frames the block on every side the terminal has room for.
func (s *Screen) Border() {
	v := s.view
	left, right := v.Col, v.Col+v.Cols+1
	top, bottom := v.Row, v.Row+v.Rows+1

	if top >= 1 {
		bar := strings.Repeat("─", v.Cols)
		s.rawAt(left+1, top, bar)
		s.rawAt(left+1, bottom, bar)
	}
	if left >= 1 {
		for row := top + 1; row < bottom; row++ {
			s.rawAt(left, row, "│")
			s.rawAt(right, row, "│")
		}
	}
	if top >= 1 && left >= 1 {
		s.rawAt(left, top, "┌")
		s.rawAt(right, top, "┐")
		s.rawAt(left, bottom, "└")
		s.rawAt(right, bottom, "┘")
	}
}

// Flush sends the frame in packet-sized writes and empties the buffer.
func (s *Screen) Flush() error {
	data := s.buf
	s.buf = s.buf[:0]
	for len(data) > 0 {
		n := min(len(data), packetSize)
		if _, err := s.out.Write(data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}
