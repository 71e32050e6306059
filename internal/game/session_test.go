package game

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/tomz197/ringblaster/internal/event"
)

const frame = 16 * time.Millisecond

// stillLevels keeps the rings concentric and motionless so shots are predictable.
func stillLevels(n int) []Level {
	levels := make([]Level, n)
	for i := range levels {
		levels[i] = Level{
			Index:           i,
			Name:            "Still",
			SpeedMultiplier: 1,
			Amplitude:       0,
			InnerScale:      1,
			Duration:        LevelDuration,
		}
	}
	return levels
}

// activeSession returns a started session whose first level has just gone live.
func activeSession(t *testing.T, opts Options) (*Session, *event.Queue, time.Duration) {
	t.Helper()
	s, err := NewSession(opts)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	q := &event.Queue{}
	s.Events().SubscribeAll(q)

	s.Start(0)
	s.OnTick(CountdownLength)
	if s.Phase() != PhaseActive {
		t.Fatalf("phase = %v after countdown, want active", s.Phase())
	}
	q.Drain()
	return s, q, CountdownLength
}

// flyOut ticks until no projectile is left, failing if it takes too long.
func flyOut(t *testing.T, s *Session, now time.Duration) time.Duration {
	t.Helper()
	for i := 0; len(s.Projectiles()) > 0; i++ {
		if i > 500 {
			t.Fatal("projectile never left the field")
		}
		now += frame
		s.OnTick(now)
	}
	return now
}

func scoreEvents(events []event.Event) []event.Event {
	var out []event.Event
	for _, e := range events {
		if e.Type == event.ScoreChanged {
			out = append(out, e)
		}
	}
	return out
}

func TestNewSessionRejectsBadConfig(t *testing.T) {
	if _, err := NewSession(Options{Levels: []Level{}}); !errors.Is(err, ErrNoLevels) {
		t.Errorf("empty levels: err = %v, want ErrNoLevels", err)
	}
	if _, err := NewSession(Options{Levels: []Level{{Name: "bad"}}}); !errors.Is(err, ErrInvalidLevel) {
		t.Errorf("bad level: err = %v, want ErrInvalidLevel", err)
	}
	if _, err := NewSession(Options{FireCooldown: -time.Second}); err == nil {
		t.Error("negative cooldown should fail")
	}
	s, err := NewSession(Options{})
	if err != nil {
		t.Fatalf("defaults: %v", err)
	}
	if s.Level().Name != "Level 1" {
		t.Errorf("default first level = %q", s.Level().Name)
	}
}

func TestStraightShotIsPerfect(t *testing.T) {
	s, q, now := activeSession(t, Options{Levels: stillLevels(1)})

	if !s.OnFire(-math.Pi/2, now) {
		t.Fatal("fire rejected")
	}
	p := s.Projectiles()[0]
	flyOut(t, s, now)

	if len(p.Hits) != 3 {
		t.Fatalf("hits = %v, want all three rings", p.Hits)
	}
	if s.Score() != 200 {
		t.Errorf("score = %d, want 200", s.Score())
	}

	events := q.Drain()
	var rings []string
	for _, e := range events {
		if e.Type == event.RingHit {
			rings = append(rings, e.Ring)
		}
	}
	if len(rings) != 3 || rings[0] != "outer" || rings[1] != "middle" || rings[2] != "inner" {
		t.Errorf("ring hits = %v, want outer, middle, inner", rings)
	}

	scores := scoreEvents(events)
	if len(scores) != 1 {
		t.Fatalf("got %d score events, want 1", len(scores))
	}
	if e := scores[0]; e.Delta != 200 || e.Score != 200 || e.Label != LabelPerfect {
		t.Errorf("score event = %+v", e)
	}
}

func TestShrunkenInnerRingKeepsHitRadius(t *testing.T) {
	levels := stillLevels(1)
	levels[0].InnerScale = InnerRingScale(1)
	s, q, now := activeSession(t, Options{Levels: levels})

	// Closest approach to the ring center is 62 units, inside the inner
	// ring's band but well outside its drawn radius of 48.
	offset := math.Asin(62 / (ShooterY - FieldHeight/2))
	if !s.OnFire(-math.Pi/2+offset, now) {
		t.Fatal("fire rejected")
	}
	p := s.Projectiles()[0]
	flyOut(t, s, now)

	if !p.Hits.Has(RingInner) || len(p.Hits) != 3 {
		t.Fatalf("hits = %v, want all three rings", p.Hits)
	}
	scores := scoreEvents(q.Drain())
	if len(scores) != 1 || scores[0].Label != LabelPerfect {
		t.Errorf("score events = %+v, want one %q", scores, LabelPerfect)
	}
}

func TestShotOutcomes(t *testing.T) {
	tests := []struct {
		name  string
		angle float64
		hits  int
		label string
	}{
		{"through all", -math.Pi / 2, 3, LabelPerfect},
		{"misses inner", -math.Pi/2 + 0.263, 2, LabelPartial2},
		{"outer only", -math.Pi/2 + 0.4, 1, LabelPartial1},
		{"sideways", 0, 0, LabelMiss},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, q, now := activeSession(t, Options{Levels: stillLevels(1)})
			s.OnFire(tt.angle, now)
			p := s.Projectiles()[0]
			flyOut(t, s, now)

			if len(p.Hits) != tt.hits {
				t.Errorf("hits = %d, want %d", len(p.Hits), tt.hits)
			}
			scores := scoreEvents(q.Drain())
			if len(scores) != 1 || scores[0].Label != tt.label {
				t.Errorf("score events = %+v, want one %q", scores, tt.label)
			}
		})
	}
}

func TestScoreNeverNegative(t *testing.T) {
	s, q, now := activeSession(t, Options{Levels: stillLevels(1)})

	s.OnFire(-math.Pi/2, now)
	now = flyOut(t, s, now)
	if s.Score() != 200 {
		t.Fatalf("score = %d, want 200", s.Score())
	}

	s.OnFire(-math.Pi/2+0.263, now)
	now = flyOut(t, s, now)
	if s.Score() != 150 {
		t.Fatalf("score after partial = %d, want 150", s.Score())
	}

	for i := 0; i < 3; i++ {
		s.OnFire(0, now)
		now = flyOut(t, s, now)
	}
	if s.Score() != 0 {
		t.Errorf("score = %d, want 0 after repeated misses", s.Score())
	}

	for _, e := range scoreEvents(q.Drain()) {
		if e.Score < 0 {
			t.Errorf("negative score in event %+v", e)
		}
	}
}

func TestFireCooldown(t *testing.T) {
	s, q, now := activeSession(t, Options{Levels: stillLevels(1), FireCooldown: 100 * time.Millisecond})

	if !s.OnFire(0, now) {
		t.Fatal("first shot rejected")
	}
	if s.OnFire(0, now+50*time.Millisecond) {
		t.Error("shot inside cooldown accepted")
	}
	if len(s.Projectiles()) != 1 {
		t.Fatalf("projectiles = %d, want 1", len(s.Projectiles()))
	}
	if !s.OnFire(0, now+100*time.Millisecond) {
		t.Error("shot after cooldown rejected")
	}

	fired := 0
	for _, e := range q.Drain() {
		if e.Type == event.ProjectileFired {
			fired++
		}
	}
	if fired != 2 {
		t.Errorf("ProjectileFired events = %d, want 2", fired)
	}
}

func TestConfigurableCooldown(t *testing.T) {
	s, _, now := activeSession(t, Options{Levels: stillLevels(1), FireCooldown: 500 * time.Millisecond})
	s.OnFire(0, now)
	if s.OnFire(0, now+400*time.Millisecond) {
		t.Error("500ms cooldown should reject a shot after 400ms")
	}
	if !s.OnFire(0, now+500*time.Millisecond) {
		t.Error("500ms cooldown should accept a shot after 500ms")
	}
}

func TestCountdownFreezesMotion(t *testing.T) {
	s, err := NewSession(Options{})
	if err != nil {
		t.Fatal(err)
	}
	s.Start(0)

	if s.OnFire(-math.Pi/2, 0) {
		t.Error("fire accepted during countdown")
	}
	before := make([]float64, RingCount)
	for i, r := range s.Rings() {
		before[i] = r.Phase
	}
	for now := frame; now < CountdownLength; now += frame {
		s.OnTick(now)
		if !s.CountdownActive() {
			t.Fatalf("countdown ended early at %v", now)
		}
	}
	for i, r := range s.Rings() {
		if r.Phase != before[i] {
			t.Errorf("ring %d moved during countdown", i)
		}
	}
	if s.Ticks() != 0 {
		t.Errorf("Ticks = %d during countdown, want 0", s.Ticks())
	}
}

func TestLevelTransitionFreezesProjectiles(t *testing.T) {
	s, _, now := activeSession(t, Options{Levels: stillLevels(2)})
	start := now

	s.OnFire(-math.Pi/2, start+LevelDuration-frame)
	now = start + LevelDuration - frame
	s.OnTick(now)
	p := s.Projectiles()[0]

	s.OnTick(start + LevelDuration)
	if !s.CountdownActive() {
		t.Fatal("expected countdown after level expiry")
	}
	x, y := p.X, p.Y
	phase := s.Rings()[RingOuter].Phase

	for now = start + LevelDuration; now < start+LevelDuration+CountdownLength; now += frame {
		s.OnTick(now)
	}
	if p.X != x || p.Y != y {
		t.Errorf("projectile moved during countdown: (%v, %v) -> (%v, %v)", x, y, p.X, p.Y)
	}
	if s.Rings()[RingOuter].Phase != phase {
		t.Error("ring moved during countdown")
	}
}

func TestLevelProgression(t *testing.T) {
	s, err := NewSession(Options{})
	if err != nil {
		t.Fatal(err)
	}
	q := &event.Queue{}
	s.Events().SubscribeAll(q)

	s.Start(0)
	end := 5*(CountdownLength+LevelDuration) + 10*time.Second
	for now := time.Duration(0); now <= end; now += 100 * time.Millisecond {
		s.OnTick(now)
	}

	var started, ended []int
	var countdowns, gameOvers int
	for _, e := range q.Drain() {
		switch e.Type {
		case event.LevelStarted:
			started = append(started, e.Level)
		case event.LevelEnded:
			ended = append(ended, e.Level)
		case event.CountdownStep:
			countdowns++
		case event.GameOver:
			gameOvers++
		}
	}

	for i := 0; i < 5; i++ {
		if i >= len(started) || started[i] != i {
			t.Fatalf("LevelStarted = %v, want 0..4 in order", started)
		}
		if i >= len(ended) || ended[i] != i {
			t.Fatalf("LevelEnded = %v, want 0..4 in order", ended)
		}
	}
	if len(started) != 5 || len(ended) != 5 {
		t.Errorf("started %d ended %d, want 5 each", len(started), len(ended))
	}
	if countdowns != 20 {
		t.Errorf("countdown steps = %d, want 20", countdowns)
	}
	if gameOvers != 1 {
		t.Errorf("game over events = %d, want 1", gameOvers)
	}
	if !s.IsOver() {
		t.Fatal("session should be over")
	}

	s.OnTick(end + time.Hour)
	if s.OnFire(0, end+time.Hour) {
		t.Error("fire accepted after game over")
	}
	if q.Len() != 0 {
		t.Errorf("events after game over: %+v", q.Drain())
	}
}

func TestLevelParametersApplied(t *testing.T) {
	s, _, now := activeSession(t, Options{})

	for _, r := range s.Rings() {
		want := PhaseIncrement(r.BaseSpeed, 0.75)
		if math.Abs(r.Speed*PhaseIncrementPerTick-want) > epsilon {
			t.Errorf("%v: increment %v, want %v", r.ID, r.Speed*PhaseIncrementPerTick, want)
		}
	}

	s.OnTick(now + frame)
	for _, r := range s.Rings() {
		want := 0.02 * r.BaseSpeed * 0.75
		if math.Abs(r.Phase-want) > epsilon {
			t.Errorf("%v: phase after one tick = %v, want %v", r.ID, r.Phase, want)
		}
	}

	// Jump to level 4 and check the inner ring shrink.
	for lvl := 0; lvl < 3; lvl++ {
		now += LevelDuration
		s.OnTick(now)
		now += CountdownLength
		s.OnTick(now)
	}
	if s.Level().Index != 3 {
		t.Fatalf("level index = %d, want 3", s.Level().Index)
	}
	inner := s.Rings()[RingInner]
	if math.Abs(inner.Scale-0.32) > epsilon || inner.Amplitude != 135 {
		t.Errorf("inner ring at level 4: scale %v amplitude %v", inner.Scale, inner.Amplitude)
	}
}

func TestDeterministicReplay(t *testing.T) {
	run := func() (*Session, int) {
		s, _, now := activeSession(t, Options{})
		angles := []float64{-math.Pi / 2, -1.2, -2.0, -math.Pi/2 + 0.1, -0.6}
		for i := 0; i < 600; i++ {
			now += frame
			if i%20 == 0 {
				s.OnFire(angles[(i/20)%len(angles)], now)
			}
			s.OnTick(now)
		}
		return s, s.Score()
	}

	a, scoreA := run()
	b, scoreB := run()

	if scoreA != scoreB {
		t.Errorf("scores differ: %d vs %d", scoreA, scoreB)
	}
	ra, rb := a.Rings(), b.Rings()
	for i := range ra {
		if ra[i].X != rb[i].X || ra[i].Phase != rb[i].Phase {
			t.Errorf("ring %d differs: %+v vs %+v", i, *ra[i], *rb[i])
		}
	}
	pa, pb := a.Projectiles(), b.Projectiles()
	if len(pa) != len(pb) {
		t.Fatalf("projectile counts differ: %d vs %d", len(pa), len(pb))
	}
	for i := range pa {
		if pa[i].X != pb[i].X || pa[i].Y != pb[i].Y {
			t.Errorf("projectile %d differs", i)
		}
	}
}

func TestHitSetBoundedAndMonotone(t *testing.T) {
	s, _, now := activeSession(t, Options{})
	seen := make(map[int]int)

	for i := 0; i < 400; i++ {
		now += frame
		if i%7 == 0 {
			s.OnFire(-math.Pi/2+float64(i%5-2)*0.05, now)
		}
		s.OnTick(now)
		for _, p := range s.Projectiles() {
			n := len(p.Hits)
			if n > RingCount {
				t.Fatalf("projectile %d has %d hits", p.ID, n)
			}
			if n < seen[p.ID] {
				t.Fatalf("projectile %d hit-set shrank from %d to %d", p.ID, seen[p.ID], n)
			}
			seen[p.ID] = n
		}
	}
}

func TestAim(t *testing.T) {
	s, err := NewSession(Options{})
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Aim(); math.Abs(got+math.Pi/2) > epsilon {
		t.Errorf("default aim = %v, want straight up", got)
	}

	tests := []struct {
		x, y float64
		want float64
	}{
		{ShooterX, 0, -math.Pi / 2},
		{ShooterX + 100, ShooterY, 0},
		{ShooterX - 100, ShooterY - 100, -3 * math.Pi / 4},
	}
	for _, tt := range tests {
		if got := s.OnAim(tt.x, tt.y); math.Abs(got-tt.want) > epsilon {
			t.Errorf("OnAim(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
		if s.Aim() != s.OnAim(tt.x, tt.y) {
			t.Error("Aim should return the stored angle")
		}
	}
}

func TestCloseStopsEverything(t *testing.T) {
	s, err := NewSession(Options{})
	if err != nil {
		t.Fatal(err)
	}
	q := &event.Queue{}
	s.Events().SubscribeAll(q)
	s.Start(0)
	q.Drain()

	s.Close()
	for now := time.Duration(0); now < 20*time.Second; now += 100 * time.Millisecond {
		s.OnTick(now)
	}
	s.Start(0)
	if s.OnFire(0, 30*time.Second) {
		t.Error("fire accepted after Close")
	}
	if q.Len() != 0 {
		t.Errorf("events after Close: %+v", q.Drain())
	}
	s.Close()
}

func TestPenaltyAtZeroIsReported(t *testing.T) {
	s, q, now := activeSession(t, Options{Levels: stillLevels(1)})
	s.OnFire(0, now)
	flyOut(t, s, now)

	scores := scoreEvents(q.Drain())
	if len(scores) != 1 {
		t.Fatalf("got %d score events, want 1", len(scores))
	}
	if e := scores[0]; e.Score != 0 || e.Delta != ScoreMiss || e.Label != LabelMiss {
		t.Errorf("score event = %+v, want score 0 delta %d", e, ScoreMiss)
	}
}

// Evaluate never yields a zero delta; this only guards the applyOutcome branch.
func TestApplyOutcomeSkipsZeroDelta(t *testing.T) {
	s, q, _ := activeSession(t, Options{Levels: stillLevels(1)})
	s.applyOutcome(Outcome{Delta: 0, Label: "none"})
	if q.Len() != 0 {
		t.Errorf("zero delta emitted %+v", q.Drain())
	}
}
