package host

import (
	"time"

	"github.com/vovakirdan/framehost/internal/hostabi"
)

// installBuiltins binds the host functions modules rely on.
func (r *Runtime) installBuiltins() {
	p := r.opts.Prefix

	r.defun("defalias", r.builtinDefalias)
	r.defun("accept-process-output", r.builtinAcceptProcessOutput)
	r.defun(p+"-ms", func(*Env, []hostabi.Value) hostabi.Value {
		return Integer(r.millis())
	})
	r.defun(p+"-canvas", func(*Env, []hostabi.Value) hostabi.Value {
		if r.canvas == nil {
			return r.nilSym
		}
		return r.canvas
	})
	r.defun(p+"-key", func(*Env, []hostabi.Value) hostabi.Value {
		r.keys.Expire(r.clock())
		return Integer(r.keys.Pop())
	})
	r.defun(p+"-title", r.builtinTitle)
}

func (r *Runtime) defun(name string, fn builtin) {
	r.intern(name).fn = fn
}

// funcall resolves fn through symbol aliases and calls it.
func (r *Runtime) funcall(env *Env, fn hostabi.Value, args []hostabi.Value) hostabi.Value {
	target := any(fn)
	for depth := 0; depth < 16; depth++ {
		sym, ok := target.(*Symbol)
		if !ok {
			break
		}
		if sym.fn == nil {
			r.signal("void-function", sym.Name)
			return r.nilSym
		}
		target = sym.fn
	}

	switch f := target.(type) {
	case builtin:
		return f(env, args)
	case *Function:
		if len(args) < f.MinArity || (f.MaxArity >= 0 && len(args) > f.MaxArity) {
			r.signal("wrong-number-of-arguments", len(args))
			return r.nilSym
		}
		return f.fn(env, args, f.data)
	default:
		r.signal("invalid-function", fn)
		return r.nilSym
	}
}

// signal records a host error. Module calls never unwind; they get nil back.
func (r *Runtime) signal(kind string, data any) {
	r.stats.Errors++
	r.logger.Warn("signal", "error", kind, "data", data)
}

// builtinDefalias binds the function cell of args[0] to args[1].
func (r *Runtime) builtinDefalias(_ *Env, args []hostabi.Value) hostabi.Value {
	if len(args) < 2 {
		r.signal("wrong-number-of-arguments", len(args))
		return r.nilSym
	}
	sym, ok := args[0].(*Symbol)
	if !ok {
		r.signal("wrong-type-argument", args[0])
		return r.nilSym
	}
	sym.fn = args[1]
	r.logger.Debug("defalias", "symbol", sym.Name)
	return sym
}

// builtinAcceptProcessOutput waits for the given number of seconds while
// servicing host events. The process argument is ignored.
func (r *Runtime) builtinAcceptProcessOutput(_ *Env, args []hostabi.Value) hostabi.Value {
	var seconds float64
	if len(args) > 1 {
		switch v := args[1].(type) {
		case Float:
			seconds = float64(v)
		case Integer:
			seconds = float64(v)
		}
	}
	r.stats.Sleeps++
	r.pump(time.Duration(seconds * float64(time.Second)))
	return r.nilSym
}

func (r *Runtime) builtinTitle(_ *Env, args []hostabi.Value) hostabi.Value {
	title := ""
	if len(args) > 0 {
		if s, ok := args[0].(String); ok {
			title = string(s)
		}
	}
	r.title = title
	if r.opts.Presenter != nil {
		r.opts.Presenter.SetTitle(title)
	}
	return r.nilSym
}
