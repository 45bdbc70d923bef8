// Package flappy implements a Flappy Bird-style engine.
// The player controls a bird that must navigate through gaps in vertical pipes.
package flappy

import (
	"fmt"

	"github.com/vovakirdan/framehost/internal/core"
	"github.com/vovakirdan/framehost/internal/engine"
	"github.com/vovakirdan/framehost/internal/registry"
)

// Playfield and pacing
const (
	Width    = 320
	Height   = 200
	StepRate = 35
	GroundH  = 16
)

// Physics constants, tuned for 35 steps per second
const (
	Gravity      = 0.45 // Downward acceleration per step
	JumpImpulse  = -5.0 // Upward velocity when flapping (negative = up)
	MaxFallSpeed = 7.0  // Terminal velocity
	PlayerX      = 60   // Fixed horizontal position of player
	PlayerWidth  = 12
	PlayerHeight = 9
)

// Obstacles
const (
	PipeWidth   = 26
	PipeSpacing = 120 // Distance between consecutive pipes
	MinGap      = 56
	MaxGap      = 76
	GapMargin   = 14
	BaseSpeed   = 2
	MaxSpeed    = 4
	SpeedEvery  = 10 // Points per extra pixel of speed
)

var (
	colorPipe     = core.ColorGreen
	colorPipeEdge = core.RGB(0x20, 0x70, 0x28)
	colorBird     = core.ColorYellow
	colorBeak     = core.ColorOrange
	colorPanel    = core.RGB(0x20, 0x20, 0x30)
)

// Engine implements the Flappy Bird game on top of an engine.Host.
type Engine struct {
	host  engine.Host
	frame *core.Frame
	clock *engine.StepClock
	pipes *PipeManager
	seed  int64

	playerY   float64 // Player vertical position (top of hitbox)
	playerVel float64 // Player vertical velocity
	score     int
	best      int
	gameOver  bool
	paused    bool
	steps     int
	title     string
}

// New creates a flappy engine seeded from host time at Create.
func New() *Engine {
	return NewWithSeed(0)
}

// NewWithSeed creates a flappy engine with a fixed RNG seed. Zero seeds
// from host time.
func NewWithSeed(seed int64) *Engine {
	return &Engine{
		frame: core.NewFrame(Width, Height),
		clock: engine.NewStepClock(StepRate),
		seed:  seed,
	}
}

func (e *Engine) ID() string                      { return "flappy" }
func (e *Engine) Title() string                   { return "Flappy" }
func (e *Engine) Resolution() (width, height int) { return Width, Height }
func (e *Engine) ScreenBuffer() []uint32          { return e.frame.Pixels() }

// Create binds the engine to its host and starts the first round.
func (e *Engine) Create(host engine.Host) {
	e.host = host
	host.Initialize()

	if e.seed == 0 {
		e.seed = int64(host.GetTicksMilliseconds()) + 1
	}
	e.pipes = NewPipeManager(e.seed, Width, groundY())
	e.Reset()
}

// Reset starts a new round.
func (e *Engine) Reset() {
	e.playerY = float64(groundY())/2 - PlayerHeight/2
	e.playerVel = 0
	e.score = 0
	e.gameOver = false
	e.paused = false
	e.steps = 0
	e.pipes.Reset(e.seed + int64(e.best))
	e.updateTitle()
	e.render()
}

// Tick reads input, runs every step that is due and draws one frame.
func (e *Engine) Tick() {
	in := engine.Drain(e.host, nil)

	now := e.host.GetTicksMilliseconds()
	n := e.clock.Due(now)
	if n == 0 {
		e.host.SleepMilliseconds(e.clock.Until(now))
		n = e.clock.Due(e.host.GetTicksMilliseconds())
	}

	for i := 0; i < n; i++ {
		e.Step(in)
		// Input applies to the first step only
		in.Clear()
	}

	e.updateTitle()
	e.render()
	e.host.DrawFrame()
}

// Step advances the game by one simulation step.
func (e *Engine) Step(in engine.InputFrame) {
	if e.gameOver {
		if in.Has(engine.ActionRestart) || in.Has(engine.ActionConfirm) {
			e.Reset()
		}
		return
	}

	if in.Has(engine.ActionPause) {
		e.paused = !e.paused
	}
	if e.paused {
		return
	}

	e.steps++

	if in.Has(engine.ActionFire) || in.Has(engine.ActionUp) || in.Has(engine.ActionUse) {
		e.playerVel = JumpImpulse
	}

	e.playerVel += Gravity
	if e.playerVel > MaxFallSpeed {
		e.playerVel = MaxFallSpeed
	}
	e.playerY += e.playerVel

	e.score += e.pipes.Update(PlayerX, e.speed(), PipeSpacing)
	if e.score > e.best {
		e.best = e.score
	}

	// Hit top of screen
	if e.playerY < 0 {
		e.playerY = 0
		e.gameOver = true
	}

	// Hit the ground
	if int(e.playerY)+PlayerHeight >= groundY() {
		e.playerY = float64(groundY() - PlayerHeight)
		e.gameOver = true
	}

	if e.pipes.CheckCollision(e.playerRect()) {
		e.gameOver = true
	}
}

// State returns the score and round status.
func (e *Engine) State() (score int, gameOver, paused bool) {
	return e.score, e.gameOver, e.paused
}

func (e *Engine) speed() int {
	return core.Clamp(BaseSpeed+e.score/SpeedEvery, BaseSpeed, MaxSpeed)
}

func (e *Engine) playerRect() core.Rect {
	return core.NewRect(PlayerX, int(e.playerY), PlayerWidth, PlayerHeight)
}

func groundY() int {
	return Height - GroundH
}

// updateTitle mirrors the score into the window title when it changes.
func (e *Engine) updateTitle() {
	title := fmt.Sprintf("%s - score %d", e.Title(), e.score)
	switch {
	case e.gameOver:
		title += " - game over"
	case e.paused:
		title += " - paused"
	}
	if title == e.title {
		return
	}
	e.title = title
	e.host.SetWindowTitle(title)
}

// render draws the current game state into the frame buffer.
func (e *Engine) render() {
	f := e.frame
	f.Clear(core.ColorSky)

	for _, p := range e.pipes.Pipes() {
		e.drawPipe(p)
	}

	// Ground
	gy := groundY()
	f.FillRect(core.NewRect(0, gy, Width, GroundH), core.ColorDirt)
	f.HLine(0, gy, Width, colorPipeEdge)

	// Bird
	bird := e.playerRect()
	f.FillRect(bird, colorBird)
	f.FillRect(core.NewRect(bird.Right(), bird.Y+3, 3, 3), colorBeak)
	f.Set(bird.Right()-4, bird.Y+2, core.ColorBlack)

	// HUD
	f.DrawText(6, 6, fmt.Sprintf("%d", e.score), 3, core.ColorWhite)
	if e.best > 0 {
		best := fmt.Sprintf("BEST %d", e.best)
		f.DrawText(Width-core.TextWidth(best, 1)-6, 6, best, 1, core.ColorWhite)
	}

	if e.paused {
		e.drawCenteredMessage("PAUSED", "PRESS P TO RESUME")
	}
	if e.gameOver {
		e.drawCenteredMessage("GAME OVER", fmt.Sprintf("SCORE %d - PRESS R", e.score))
	}
}

func (e *Engine) drawPipe(p Pipe) {
	f := e.frame
	top := p.TopRect()
	bottom := p.BottomRect(groundY())

	f.FillRect(top, colorPipe)
	f.FillRect(bottom, colorPipe)

	// Caps are slightly wider than the pipe
	capH := 6
	if !top.Empty() {
		f.FillRect(core.NewRect(p.X-2, top.Bottom()-capH, PipeWidth+4, capH), colorPipeEdge)
	}
	if !bottom.Empty() {
		f.FillRect(core.NewRect(p.X-2, bottom.Y, PipeWidth+4, capH), colorPipeEdge)
	}
}

// drawCenteredMessage draws a message panel in the center of the frame.
func (e *Engine) drawCenteredMessage(title, subtitle string) {
	f := e.frame

	boxW := max(core.TextWidth(title, 2), core.TextWidth(subtitle, 1)) + 24
	boxH := 40
	box := core.NewRect((Width-boxW)/2, (Height-boxH)/2, boxW, boxH)

	f.FillRect(box, colorPanel)
	f.DrawBox(box, core.ColorWhite)
	f.DrawTextCentered(box.Y+8, title, 2, core.ColorWhite)
	f.DrawTextCentered(box.Y+26, subtitle, 1, core.ColorYellow)
}

func init() {
	registry.Register("flappy", func() engine.Engine {
		return New()
	})
}
