// Package testcard implements a diagnostic engine: colour bars, a sweep line
// driven by host time and a row of lamps showing which keys are held. It is
// the quickest way to check that a host presents frames and delivers keys.
package testcard

import (
	"fmt"

	"github.com/vovakirdan/framehost/internal/core"
	"github.com/vovakirdan/framehost/internal/engine"
	"github.com/vovakirdan/framehost/internal/registry"
)

const (
	Width    = 320
	Height   = 200
	StepRate = 35
)

// lampKeys are the keys shown in the lamp row, left to right.
var lampKeys = []byte{
	engine.KeyUpArrow, engine.KeyDownArrow, engine.KeyLeftArrow, engine.KeyRightArrow,
	engine.KeyFire, engine.KeyUse, engine.KeyEnter, engine.KeyEscape,
}

var bars = []core.Pixel{
	core.ColorWhite, core.ColorYellow, core.ColorCyan, core.ColorGreen,
	core.ColorMagenta, core.ColorRed, core.ColorBlue, core.ColorBlack,
}

// Engine is the test card.
type Engine struct {
	host    engine.Host
	frame   *core.Frame
	clock   *engine.StepClock
	held    [256]bool
	lastKey byte
	steps   int
	frames  int
}

// New creates a test card engine.
func New() *Engine {
	return &Engine{
		frame: core.NewFrame(Width, Height),
		clock: engine.NewStepClock(StepRate),
	}
}

func (e *Engine) ID() string                      { return "testcard" }
func (e *Engine) Title() string                   { return "Test Card" }
func (e *Engine) Resolution() (width, height int) { return Width, Height }
func (e *Engine) ScreenBuffer() []uint32          { return e.frame.Pixels() }

// Steps returns the number of simulation steps taken.
func (e *Engine) Steps() int { return e.steps }

// Frames returns the number of frames drawn.
func (e *Engine) Frames() int { return e.frames }

// Held reports whether key is currently down.
func (e *Engine) Held(key byte) bool { return e.held[key] }

// Create binds the engine to its host.
func (e *Engine) Create(host engine.Host) {
	e.host = host
	host.Initialize()
	host.SetWindowTitle(e.Title())
	e.render()
}

// Tick reads input, advances the sweep and draws one frame.
func (e *Engine) Tick() {
	engine.Drain(e.host, e.onKey)

	now := e.host.GetTicksMilliseconds()
	n := e.clock.Due(now)
	if n == 0 {
		e.host.SleepMilliseconds(e.clock.Until(now))
		n = e.clock.Due(e.host.GetTicksMilliseconds())
	}
	e.steps += n

	e.render()
	e.host.DrawFrame()
	e.frames++
}

func (e *Engine) onKey(pressed bool, key byte) {
	e.held[key] = pressed
	if pressed {
		e.lastKey = key
		e.host.SetWindowTitle(fmt.Sprintf("%s - key %s (%#02x)", e.Title(), engine.KeyName(key), key))
	}
}

func (e *Engine) render() {
	f := e.frame
	f.Clear(core.ColorBlack)

	// Colour bars over the top two thirds
	barsH := Height * 2 / 3
	barW := Width / len(bars)
	for i, c := range bars {
		f.FillRect(core.NewRect(i*barW, 0, barW, barsH), c)
	}

	// Grey ramp
	rampY := barsH
	rampH := 24
	for x := 0; x < Width; x++ {
		v := uint8(x * 255 / (Width - 1))
		f.VLine(x, rampY, rampH, core.RGB(v, v, v))
	}

	// Sweep line moves two pixels per step
	sweepX := (e.steps * 2) % Width
	f.VLine(sweepX, 0, barsH+rampH, core.ColorOrange)

	// Key lamps
	lampY := rampY + rampH + 6
	for i, key := range lampKeys {
		r := core.NewRect(8+i*20, lampY, 14, 10)
		if e.held[key] {
			f.FillRect(r, core.ColorGreen)
		}
		f.DrawBox(r, core.ColorGray)
	}

	f.DrawText(Width-110, lampY+2, fmt.Sprintf("STEP %d", e.steps), 1, core.ColorWhite)
	if e.lastKey != 0 {
		f.DrawText(Width-110, lampY+10, "KEY "+engine.KeyName(e.lastKey), 1, core.ColorYellow)
	}
	f.DrawBox(f.Bounds(), core.ColorGray)
}

func init() {
	registry.Register("testcard", func() engine.Engine {
		return New()
	})
}
