package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/tomz197/ringblaster/internal/game"
	"github.com/tomz197/ringblaster/internal/gui"
)

var (
	backgroundColor = color.RGBA{10, 10, 20, 255}
	ringColor       = color.RGBA{90, 160, 255, 255}
	flashColor      = color.RGBA{255, 230, 120, 255}
	projectileColor = color.RGBA{255, 120, 80, 255}
	shooterColor    = color.RGBA{220, 220, 220, 255}
	textColor       = color.RGBA{235, 235, 245, 255}
	guideColor      = color.RGBA{80, 80, 100, 255}
)

// midY is the vertical center of the field in pixels.
const midY = int(game.FieldHeight) / 2

// window adapts a gui.Scene to ebiten.Game.
type window struct {
	scene        *gui.Scene
	face         font.Face
	lastX, lastY int // Last cursor position, to detect movement
}

func newWindow(scene *gui.Scene) *window {
	return &window{scene: scene, face: basicfont.Face7x13, lastX: -1, lastY: -1}
}

func (w *window) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	x, y := ebiten.CursorPosition()
	moved := x != w.lastX || y != w.lastY
	w.lastX, w.lastY = x, y

	confirm := inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) ||
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)

	in := gui.Input{
		CursorX:     float64(x),
		CursorY:     float64(y),
		CursorMoved: moved,
		RotateLeft:  ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		RotateRight: ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		AimUp:       inpututil.IsKeyJustPressed(ebiten.KeyW) || inpututil.IsKeyJustPressed(ebiten.KeyArrowUp),
		Fire:        ebiten.IsKeyPressed(ebiten.KeySpace) || ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		Confirm:     confirm,
	}
	return w.scene.Step(in)
}

func (w *window) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	switch w.scene.Screen() {
	case gui.ScreenTitle:
		w.drawCentered(screen, "RING BLASTER", midY-60)
		w.drawCentered(screen, "Right Message - Right Person - Right Time", midY-30)
		w.drawCentered(screen, "Mouse or A/D to aim, click or SPACE to shoot, Q to quit", midY+10)
		w.drawCentered(screen, "Thread all three rings in one shot for +200", midY+30)
		w.drawCentered(screen, "Press SPACE to start", midY+70)
	case gui.ScreenPlaying:
		w.drawField(screen)
		w.drawHUD(screen)
	case gui.ScreenOver:
		w.drawField(screen)
		s := w.scene.Session()
		w.drawCentered(screen, "GAME OVER", midY-30)
		w.drawCentered(screen, fmt.Sprintf("Final score: %d   Best: %d", s.Score(), w.scene.Best()), midY)
		w.drawCentered(screen, "Press SPACE to restart", midY+30)
	}

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TPS %.0f", ebiten.ActualTPS()), game.FieldWidth-60, game.FieldHeight-16)
}

func (w *window) drawField(screen *ebiten.Image) {
	s := w.scene.Session()
	for _, r := range s.Rings() {
		clr := ringColor
		width := float32(2)
		if w.scene.Flashing(r.ID) {
			clr, width = flashColor, 4
		}
		radius := r.DrawRadius()
		vector.StrokeCircle(screen, float32(r.X), float32(r.Y), float32(radius), width, clr, true)
		w.drawText(screen, r.Label, int(r.X)-len(r.Label)*7/2, int(r.Y-radius)-6)
	}

	for _, p := range s.Projectiles() {
		vector.StrokeLine(screen, float32(p.X-p.VX*1.5), float32(p.Y-p.VY*1.5), float32(p.X), float32(p.Y), 3, projectileColor, true)
	}

	// Shooter: triangle nose along the aim, guide line beyond it.
	aim := s.Aim()
	const size = 24.0
	nose := polar(aim, size)
	left := polar(aim+2.5, size*0.7)
	right := polar(aim-2.5, size*0.7)
	vector.StrokeLine(screen, nose[0], nose[1], left[0], left[1], 2, shooterColor, true)
	vector.StrokeLine(screen, left[0], left[1], right[0], right[1], 2, shooterColor, true)
	vector.StrokeLine(screen, right[0], right[1], nose[0], nose[1], 2, shooterColor, true)
	guide := polar(aim, size*6)
	vector.StrokeLine(screen, nose[0], nose[1], guide[0], guide[1], 1, guideColor, true)

	for _, l := range w.scene.Labels() {
		w.drawText(screen, l.Text, int(l.X)-len(l.Text)*7/2, int(l.Y))
	}
}

func (w *window) drawHUD(screen *ebiten.Image) {
	s := w.scene.Session()
	w.drawText(screen, fmt.Sprintf("Score: %d", s.Score()), 12, 20)
	level := s.Level().Name
	w.drawText(screen, level, game.FieldWidth/2-len(level)*7/2, 20)
	w.drawText(screen, fmt.Sprintf("Time: %d", s.SecondsRemaining(w.scene.Now())), game.FieldWidth-90, 20)

	if s.CountdownActive() {
		w.drawCentered(screen, level, midY-20)
		w.drawCentered(screen, s.CountdownLabel(), midY+4)
	}
}

func (w *window) drawText(screen *ebiten.Image, s string, x, y int) {
	text.Draw(screen, s, w.face, x, y, textColor)
}

func (w *window) drawCentered(screen *ebiten.Image, s string, y int) {
	w.drawText(screen, s, game.FieldWidth/2-len(s)*7/2, y)
}

func (w *window) Layout(outsideWidth, outsideHeight int) (int, int) {
	return game.FieldWidth, game.FieldHeight
}

// polar returns the point r away from the shooter along angle.
func polar(angle, r float64) [2]float32 {
	return [2]float32{
		float32(game.ShooterX + math.Cos(angle)*r),
		float32(game.ShooterY + math.Sin(angle)*r),
	}
}
