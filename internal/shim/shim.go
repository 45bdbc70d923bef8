// Package shim binds an engine's host callback set to a host extension ABI.
//
// The adapter is loaded once per host through ModuleInit. It resolves the host
// functions it needs, registers a tick entry point and creates the engine.
// From then on the host drives everything: each call to the tick entry point
// hands the adapter a fresh environment, and the engine's callbacks are
// translated into host funcalls through that environment only.
package shim

import (
	"github.com/vovakirdan/framehost/internal/engine"
	"github.com/vovakirdan/framehost/internal/hostabi"
)

// Module load status codes. Each validation failure has its own code so the
// host can tell which record was too old.
const (
	StatusOK              = 0
	StatusRuntimeMismatch = 1
	StatusEnvMismatch     = 2
)

// StatusText describes a module load status code.
func StatusText(code int) string {
	switch code {
	case StatusOK:
		return "ok"
	case StatusRuntimeMismatch:
		return "runtime record smaller than expected"
	case StatusEnvMismatch:
		return "environment record smaller than expected"
	default:
		return "unknown status"
	}
}

// Options configure ModuleInit.
type Options struct {
	// Prefix for host function names; DefaultPrefix when empty.
	Prefix string
}

// Adapter implements engine.Host on top of a host environment.
type Adapter struct {
	engine engine.Engine
	names  Names
	syms   SymbolTable
	pixels int

	// env is the environment of the host call currently on the stack.
	// Only ModuleInit and the tick function set it, for the extent of
	// their call.
	env hostabi.Env
}

var _ engine.Host = (*Adapter)(nil)

// ModuleInit validates the host records, resolves the symbol table,
// registers <prefix>-tick and creates eng. It returns StatusOK and the loaded
// adapter, or a non-zero status and nil; nothing is registered with the host
// when validation fails.
func ModuleInit(rt hostabi.Runtime, eng engine.Engine, opts Options) (*Adapter, int) {
	if rt == nil || rt.Size() < hostabi.RuntimeSize {
		return nil, StatusRuntimeMismatch
	}
	env := rt.Environment()
	if env == nil || env.Size() < hostabi.EnvSize {
		return nil, StatusEnvMismatch
	}

	w, h := eng.Resolution()
	a := &Adapter{
		engine: eng,
		names:  SymbolNames(opts.Prefix),
		pixels: w * h,
	}

	a.env = env
	defer func() { a.env = nil }()

	a.syms = resolveSymbols(env, a.names)
	env.Funcall(env.Intern(symDefalias),
		env.Intern(a.names.Tick),
		env.MakeFunction(0, 0, a.tick, "Advance the engine by one frame.", nil),
	)

	eng.Create(a)
	return a, StatusOK
}

// Symbols returns the resolved symbol table.
func (a *Adapter) Symbols() SymbolTable {
	return a.syms
}

// Names returns the host function names this adapter was loaded with.
func (a *Adapter) Names() Names {
	return a.names
}

// tick is the host-invocable entry point. It rebinds the environment for
// the duration of one engine frame.
func (a *Adapter) tick(env hostabi.Env, _ []hostabi.Value, _ any) hostabi.Value {
	prev := a.env
	a.env = env
	defer func() { a.env = prev }()

	a.engine.Tick()
	return a.syms.Nil
}

// Initialize has nothing to set up; the host is ready once ModuleInit runs.
func (a *Adapter) Initialize() {}

// SetWindowTitle forwards text to <prefix>-title.
func (a *Adapter) SetWindowTitle(text string) {
	env := a.env
	if env == nil {
		return
	}
	env.Funcall(a.syms.Title, env.MakeString(text))
}

// SleepMilliseconds yields to the host through accept-process-output so the
// host keeps processing its own events while the engine waits.
func (a *Adapter) SleepMilliseconds(ms uint32) {
	env := a.env
	if env == nil {
		return
	}
	env.Funcall(a.syms.AcceptProcessOutput, a.syms.Nil, env.MakeFloat(float64(ms)*0.001))
}

// GetTicksMilliseconds returns the host's millisecond counter.
func (a *Adapter) GetTicksMilliseconds() uint32 {
	env := a.env
	if env == nil {
		return 0
	}
	return uint32(env.ExtractInteger(env.Funcall(a.syms.Ms)))
}

// DrawFrame copies the engine's screen buffer into the host canvas and asks
// the host to present it. Without a canvas, or with one of the wrong size,
// it does nothing.
func (a *Adapter) DrawFrame() {
	env := a.env
	if env == nil {
		return
	}

	canvas := env.Funcall(a.syms.Canvas)
	if !env.IsNotNil(canvas) {
		return
	}
	dst := env.CanvasPixel(canvas)
	src := a.engine.ScreenBuffer()
	if len(dst) < a.pixels || len(src) < a.pixels {
		return
	}

	copy(dst[:a.pixels], src[:a.pixels])
	env.CanvasRefresh(canvas)
}

// PollKey pops one event from <prefix>-key.
func (a *Adapter) PollKey() (hasEvent, pressed bool, key byte) {
	env := a.env
	if env == nil {
		return false, false, 0
	}
	return DecodeKey(env.ExtractInteger(env.Funcall(a.syms.Key)))
}
