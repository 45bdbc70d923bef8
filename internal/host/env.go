package host

import (
	"github.com/vovakirdan/framehost/internal/hostabi"
)

// Env is the services record handed to a module for one host call. Using an
// Env after its call returned panics.
type Env struct {
	rt    *Runtime
	valid bool
}

var _ hostabi.Env = (*Env)(nil)

func (r *Runtime) newEnv() *Env {
	return &Env{rt: r, valid: true}
}

func (e *Env) invalidate() {
	e.valid = false
}

func (e *Env) check() {
	if !e.valid {
		panic("host: environment used outside its dynamic extent")
	}
}

// Size returns the advertised environment record size.
func (e *Env) Size() int {
	return e.rt.opts.EnvSize
}

// Intern returns the symbol named name, creating it if needed.
func (e *Env) Intern(name string) hostabi.Value {
	e.check()
	return e.rt.intern(name)
}

// MakeGlobalRef pins v so it stays valid across environments.
func (e *Env) MakeGlobalRef(v hostabi.Value) hostabi.Value {
	e.check()
	e.rt.globals[v]++
	return v
}

func (e *Env) MakeString(s string) hostabi.Value {
	e.check()
	return String(s)
}

func (e *Env) MakeInteger(i int64) hostabi.Value {
	e.check()
	return Integer(i)
}

func (e *Env) MakeFloat(f float64) hostabi.Value {
	e.check()
	return Float(f)
}

// ExtractInteger returns the value of an Integer; anything else yields 0.
func (e *Env) ExtractInteger(v hostabi.Value) int64 {
	e.check()
	i, ok := v.(Integer)
	if !ok {
		e.rt.signal("wrong-type-argument", v)
		return 0
	}
	return int64(i)
}

// IsNotNil reports whether v is anything but nil.
func (e *Env) IsNotNil(v hostabi.Value) bool {
	e.check()
	return v != nil && v != hostabi.Value(e.rt.nilSym)
}

// Funcall calls fn with args. Calling an unbound symbol returns nil.
func (e *Env) Funcall(fn hostabi.Value, args ...hostabi.Value) hostabi.Value {
	e.check()
	return e.rt.funcall(e, fn, args)
}

// MakeFunction wraps a module function as a host function.
func (e *Env) MakeFunction(minArity, maxArity int, fn hostabi.Function, doc string, data any) hostabi.Value {
	e.check()
	return &Function{
		MinArity: minArity,
		MaxArity: maxArity,
		Doc:      doc,
		fn:       fn,
		data:     data,
	}
}

// CanvasPixel returns the canvas pixel buffer, or nil when v is not a canvas.
func (e *Env) CanvasPixel(v hostabi.Value) []uint32 {
	e.check()
	c, ok := v.(*Canvas)
	if !ok {
		return nil
	}
	return c.pixels
}

// CanvasRefresh presents the canvas.
func (e *Env) CanvasRefresh(v hostabi.Value) {
	e.check()
	c, ok := v.(*Canvas)
	if !ok {
		e.rt.signal("wrong-type-argument", v)
		return
	}
	c.refreshes++
	e.rt.stats.Frames++
	if e.rt.opts.Presenter != nil {
		e.rt.opts.Presenter.Present(c.snapshot())
	}
}
