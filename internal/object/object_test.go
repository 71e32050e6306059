package object

import (
	"strings"
	"testing"
	"time"

	"github.com/tomz197/ringblaster/internal/draw"
	"github.com/tomz197/ringblaster/internal/game"
)

func TestParticleExpires(t *testing.T) {
	p := NewParticle(10, 10, 60, 0, 0.5)
	if p.Update(100 * time.Millisecond) {
		t.Fatal("particle removed too early")
	}
	if p.X <= 10 {
		t.Errorf("particle did not move: x = %v", p.X)
	}
	if !p.Update(time.Second) {
		t.Error("particle should expire after its lifetime")
	}
}

func TestSpawnSparks(t *testing.T) {
	effects := SpawnSparks(nil, 100, 200, 8, 50, 0.4)
	if len(effects) != 8 {
		t.Fatalf("got %d sparks, want 8", len(effects))
	}
	for _, e := range effects {
		p := e.(*Particle)
		if p.X != 100 || p.Y != 200 {
			t.Errorf("spark spawned at (%v, %v)", p.X, p.Y)
		}
		if p.Lifetime < 0.2 || p.Lifetime > 0.4 {
			t.Errorf("lifetime %v outside [0.2, 0.4]", p.Lifetime)
		}
	}
}

func TestUpdateEffects(t *testing.T) {
	effects := []Effect{
		NewFloatingText(0, 100, "Perfect"),
		NewParticle(0, 0, 0, 0, 0.05),
		NewFloatingText(0, 100, "Miss"),
	}
	effects = UpdateEffects(effects, 100*time.Millisecond)
	if len(effects) != 2 {
		t.Fatalf("got %d effects, want 2", len(effects))
	}
	ft := effects[0].(*FloatingText)
	if ft.Y >= 100 {
		t.Errorf("floating text did not rise: y = %v", ft.Y)
	}

	effects = UpdateEffects(effects, 2*time.Second)
	if len(effects) != 0 {
		t.Errorf("got %d effects after expiry, want 0", len(effects))
	}
}

func TestDrawOnScreen(t *testing.T) {
	view := draw.NewViewport(game.FieldWidth, game.FieldHeight, 200, 56)
	view.Fit(120, 40)
	var out strings.Builder
	ctx := DrawContext{Canvas: draw.NewCanvas(view), Screen: draw.NewScreen(&out, view)}

	rings := game.NewRings()
	objects := []Object{
		&Ring{Ring: rings[game.RingOuter], Flash: 0.1},
		&Projectile{Projectile: game.NewProjectile(1, -1)},
		NewShooter(),
		NewFloatingText(game.ShooterX, game.ShooterY-60, "Perfect +200"),
	}
	for _, o := range objects {
		if err := o.Draw(ctx); err != nil {
			t.Fatalf("%T: %v", o, err)
		}
	}
	ctx.Canvas.Render(ctx.Screen)
	if err := ctx.Screen.Flush(); err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{rings[game.RingOuter].Label, "Perfect +200"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q", want)
		}
	}
	braille := strings.IndexFunc(out.String(), func(r rune) bool { return r > 0x2800 && r <= 0x28ff })
	if braille < 0 {
		t.Error("no dots rendered")
	}
}
