package shim

import (
	"github.com/vovakirdan/framehost/internal/engine"
	"github.com/vovakirdan/framehost/internal/hostabi"
)

// fakeSym is a symbol in the fake host.
type fakeSym string

type fakeFunc struct {
	fn   hostabi.Function
	data any
}

type fakeCanvas struct {
	pixels []uint32
}

type call struct {
	fn   string
	args []hostabi.Value
}

// fakeHost holds state shared by every fakeEnv it hands out.
type fakeHost struct {
	functions  map[string]func(args []hostabi.Value) hostabi.Value
	registered map[string]*fakeFunc
	globalRefs int
	refreshes  int
	canvas     *fakeCanvas
	keys       []int64
	ms         int64
}

func newFakeHost() *fakeHost {
	h := &fakeHost{
		functions:  make(map[string]func([]hostabi.Value) hostabi.Value),
		registered: make(map[string]*fakeFunc),
	}
	h.functions["doom-ms"] = func([]hostabi.Value) hostabi.Value {
		h.ms += 7
		return h.ms
	}
	h.functions["doom-canvas"] = func([]hostabi.Value) hostabi.Value {
		if h.canvas == nil {
			return fakeSym("nil")
		}
		return h.canvas
	}
	h.functions["doom-key"] = func([]hostabi.Value) hostabi.Value {
		if len(h.keys) == 0 {
			return int64(0)
		}
		k := h.keys[0]
		h.keys = h.keys[1:]
		return k
	}
	return h
}

// invoke calls a registered module function with a fresh environment, the
// way the host's scheduler would, and returns that environment.
func (h *fakeHost) invoke(name string) (*fakeEnv, hostabi.Value) {
	env := h.env()
	f := h.registered[name]
	return env, f.fn(env, nil, f.data)
}

// fakeEnv records every service call made through it.
type fakeEnv struct {
	host  *fakeHost
	size  int
	calls []call
}

func (h *fakeHost) env() *fakeEnv {
	return &fakeEnv{host: h, size: hostabi.EnvSize}
}

func (e *fakeEnv) Size() int                                   { return e.size }
func (e *fakeEnv) Intern(name string) hostabi.Value            { return fakeSym(name) }
func (e *fakeEnv) MakeString(s string) hostabi.Value           { return s }
func (e *fakeEnv) MakeInteger(i int64) hostabi.Value           { return i }
func (e *fakeEnv) MakeFloat(f float64) hostabi.Value           { return f }
func (e *fakeEnv) IsNotNil(v hostabi.Value) bool               { return v != nil && v != fakeSym("nil") }
func (e *fakeEnv) CanvasRefresh(hostabi.Value)                 { e.host.refreshes++ }
func (e *fakeEnv) MakeGlobalRef(v hostabi.Value) hostabi.Value { e.host.globalRefs++; return v }

func (e *fakeEnv) ExtractInteger(v hostabi.Value) int64 {
	i, _ := v.(int64)
	return i
}

func (e *fakeEnv) MakeFunction(_, _ int, fn hostabi.Function, _ string, data any) hostabi.Value {
	return &fakeFunc{fn: fn, data: data}
}

func (e *fakeEnv) CanvasPixel(v hostabi.Value) []uint32 {
	if c, ok := v.(*fakeCanvas); ok {
		return c.pixels
	}
	return nil
}

func (e *fakeEnv) Funcall(fn hostabi.Value, args ...hostabi.Value) hostabi.Value {
	name := string(fn.(fakeSym))
	e.calls = append(e.calls, call{fn: name, args: args})

	if name == "defalias" {
		target := string(args[0].(fakeSym))
		e.host.registered[target] = args[1].(*fakeFunc)
		return args[0]
	}
	if handler, ok := e.host.functions[name]; ok {
		return handler(args)
	}
	return fakeSym("nil")
}

func (e *fakeEnv) callsTo(name string) []call {
	var out []call
	for _, c := range e.calls {
		if c.fn == name {
			out = append(out, c)
		}
	}
	return out
}

type fakeRuntime struct {
	size    int
	env     hostabi.Env
	envUsed bool
}

func (r *fakeRuntime) Size() int { return r.size }

func (r *fakeRuntime) Environment() hostabi.Env {
	r.envUsed = true
	return r.env
}

// scriptEngine runs onTick against its host on every Tick.
type scriptEngine struct {
	w, h    int
	buf     []uint32
	host    engine.Host
	created int
	ticks   int
	onTick  func(h engine.Host)
}

func newScriptEngine(w, h int) *scriptEngine {
	buf := make([]uint32, w*h)
	for i := range buf {
		buf[i] = uint32(0xA0000000 | i)
	}
	return &scriptEngine{w: w, h: h, buf: buf}
}

func (s *scriptEngine) ID() string             { return "script" }
func (s *scriptEngine) Title() string          { return "Script" }
func (s *scriptEngine) Resolution() (int, int) { return s.w, s.h }
func (s *scriptEngine) ScreenBuffer() []uint32 { return s.buf }

func (s *scriptEngine) Create(h engine.Host) {
	s.created++
	s.host = h
	h.Initialize()
}

func (s *scriptEngine) Tick() {
	s.ticks++
	if s.onTick != nil {
		s.onTick(s.host)
	}
}
