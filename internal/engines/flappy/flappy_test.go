package flappy

import (
	"strings"
	"testing"

	"github.com/vovakirdan/framehost/internal/core"
	"github.com/vovakirdan/framehost/internal/engine"
	"github.com/vovakirdan/framehost/internal/engine/enginetest"
)

func newEngine(t *testing.T) (*Engine, *enginetest.Host) {
	t.Helper()
	h := &enginetest.Host{Now: 500}
	e := NewWithSeed(42)
	e.Create(h)
	return e, h
}

func input(actions ...engine.Action) engine.InputFrame {
	in := engine.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestCreate(t *testing.T) {
	e, h := newEngine(t)

	if h.Inits != 1 {
		t.Errorf("Initialize called %d times, expected 1", h.Inits)
	}
	if h.Title() != "Flappy - score 0" {
		t.Errorf("title = %q", h.Title())
	}
	if len(e.ScreenBuffer()) != Width*Height {
		t.Errorf("len(ScreenBuffer()) = %d", len(e.ScreenBuffer()))
	}
}

func TestGravity(t *testing.T) {
	e, _ := newEngine(t)
	startY := e.playerY

	for i := 0; i < 5; i++ {
		e.Step(engine.NewInputFrame())
	}

	if e.playerY <= startY {
		t.Errorf("playerY = %v, expected it to fall below %v", e.playerY, startY)
	}
}

func TestFlap(t *testing.T) {
	e, _ := newEngine(t)
	startY := e.playerY

	e.Step(input(engine.ActionFire))

	if e.playerVel >= 0 {
		t.Errorf("playerVel = %v, expected upward velocity", e.playerVel)
	}
	if e.playerY >= startY {
		t.Errorf("playerY = %v, expected it to rise above %v", e.playerY, startY)
	}
}

func TestFallingEndsRound(t *testing.T) {
	e, h := newEngine(t)

	for i := 0; i < 200 && !e.gameOver; i++ {
		e.Step(engine.NewInputFrame())
	}
	if !e.gameOver {
		t.Fatal("expected game over after falling")
	}
	if int(e.playerY)+PlayerHeight != groundY() {
		t.Errorf("player should rest on the ground, y = %v", e.playerY)
	}

	h.Advance(1000)
	e.Tick()
	if !strings.HasSuffix(h.Title(), "game over") {
		t.Errorf("title = %q, expected game over", h.Title())
	}
}

func TestRestartAfterGameOver(t *testing.T) {
	e, _ := newEngine(t)
	e.gameOver = true
	e.score = 7

	e.Step(engine.NewInputFrame())
	if !e.gameOver {
		t.Error("game should stay over without restart input")
	}

	e.Step(input(engine.ActionRestart))
	score, over, _ := e.State()
	if over || score != 0 {
		t.Errorf("State() = (%d, %v), expected fresh round", score, over)
	}
}

func TestPauseToggle(t *testing.T) {
	e, _ := newEngine(t)

	e.Step(input(engine.ActionPause))
	_, _, paused := e.State()
	if !paused {
		t.Fatal("expected paused")
	}

	y := e.playerY
	e.Step(engine.NewInputFrame())
	if e.playerY != y {
		t.Error("player should not move while paused")
	}

	e.Step(input(engine.ActionPause))
	if _, _, paused := e.State(); paused {
		t.Error("expected unpaused")
	}
}

func TestTickDrawsOncePerCall(t *testing.T) {
	e, h := newEngine(t)

	for i := 0; i < 3; i++ {
		h.Advance(10)
		e.Tick()
	}
	if h.Draws != 3 {
		t.Errorf("DrawFrame called %d times, expected 3", h.Draws)
	}
}

func TestTickFlapFromKey(t *testing.T) {
	e, h := newEngine(t)
	e.Tick() // anchor the clock

	h.Press(engine.KeyFire)
	h.Advance(1000 / StepRate)
	e.Tick()

	if e.playerVel >= 0 {
		t.Errorf("playerVel = %v, expected a flap from the fire key", e.playerVel)
	}
}

func TestPipeManagerSpawnAndPass(t *testing.T) {
	pm := NewPipeManager(1, Width, groundY())

	pm.Update(PlayerX, 2, PipeSpacing)
	if len(pm.Pipes()) != 1 {
		t.Fatalf("expected one pipe after first update, got %d", len(pm.Pipes()))
	}

	p := pm.Pipes()[0]
	if p.GapHeight < MinGap || p.GapHeight > MaxGap {
		t.Errorf("gap height %d out of range", p.GapHeight)
	}
	if p.GapY < GapMargin || p.GapY+p.GapHeight > groundY()-GapMargin {
		t.Errorf("gap [%d, %d) out of bounds", p.GapY, p.GapY+p.GapHeight)
	}

	passed := 0
	for i := 0; i < 400; i++ {
		passed += pm.Update(PlayerX, 2, PipeSpacing)
	}
	if passed == 0 {
		t.Error("expected pipes to be passed over time")
	}
	for _, p := range pm.Pipes() {
		if p.X+PipeWidth <= 0 {
			t.Error("off-screen pipes should be removed")
		}
	}
}

func TestPipeCollision(t *testing.T) {
	pm := NewPipeManager(1, Width, groundY())
	pm.pipes = append(pm.pipes, Pipe{X: 100, GapY: 50, GapHeight: 60})

	tests := []struct {
		name     string
		r        core.Rect
		expected bool
	}{
		{"in the gap", core.NewRect(105, 70, 10, 10), false},
		{"hits top", core.NewRect(105, 40, 10, 12), true},
		{"hits bottom", core.NewRect(105, 105, 10, 10), true},
		{"before pipe", core.NewRect(50, 10, 10, 10), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := pm.CheckCollision(tc.r); got != tc.expected {
				t.Errorf("CheckCollision(%+v) = %v, expected %v", tc.r, got, tc.expected)
			}
		})
	}
}

func TestSpeedRamps(t *testing.T) {
	e, _ := newEngine(t)
	if e.speed() != BaseSpeed {
		t.Errorf("speed() = %d, expected %d", e.speed(), BaseSpeed)
	}
	e.score = 1000
	if e.speed() != MaxSpeed {
		t.Errorf("speed() = %d, expected %d", e.speed(), MaxSpeed)
	}
}
