// Package host is a small in-process host for loadable engine modules.
//
// It implements the hostabi records the way an extensible editor does:
// symbols are interned in an obarray, modules register functions with
// defalias, and the host calls the registered tick function from an idle
// timer. Everything the module sees runs on the goroutine executing Run.
package host

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/framehost/internal/hostabi"
)

// ErrModuleInit is wrapped by the error LoadModule returns when a module's
// init function reports a non-zero status.
var ErrModuleInit = errors.New("host: module initialization failed")

// ModuleError carries the status code a module init function returned.
type ModuleError struct {
	Status int
	Text   string
}

func (e *ModuleError) Error() string {
	if e.Text != "" {
		return fmt.Sprintf("host: module init returned status %d (%s)", e.Status, e.Text)
	}
	return fmt.Sprintf("host: module init returned status %d", e.Status)
}

func (e *ModuleError) Unwrap() error {
	return ErrModuleInit
}

// InitFunc is a module entry point. It returns 0 on success.
type InitFunc func(rt hostabi.Runtime) int

// Presenter displays what the host window shows. Calls come from the
// goroutine running Run.
type Presenter interface {
	Present(f Frame)
	SetTitle(title string)
}

// Options configure a Runtime.
type Options struct {
	// Prefix for the host functions modules call (<prefix>-ms and so on).
	Prefix string

	// Width and Height give the canvas geometry.
	Width  int
	Height int

	// TickRate is how many times per second the idle timer invokes
	// <prefix>-tick.
	TickRate int

	// KeyRelease is how long a key stays down after its last press.
	KeyRelease time.Duration

	// Realized creates the canvas immediately instead of on the first
	// resize event.
	Realized bool

	// RuntimeSize and EnvSize override the advertised record sizes.
	// Zero means the current ABI sizes.
	RuntimeSize int
	EnvSize     int

	Presenter Presenter
	Logger    *log.Logger

	// Clock returns the current time; time.Now when nil.
	Clock func() time.Time
}

// Stats summarizes a host session.
type Stats struct {
	Ticks     uint64
	Frames    uint64
	KeyEvents uint64
	Sleeps    uint64
	Title     string
	Errors    uint64
}

// Runtime is a host instance. It implements hostabi.Runtime.
type Runtime struct {
	opts    Options
	logger  *log.Logger
	clock   func() time.Time
	start   time.Time
	obarray map[string]*Symbol
	nilSym  *Symbol
	globals map[hostabi.Value]int

	canvas *Canvas
	keys   *keyQueue
	title  string
	stats  Stats

	events  chan Event
	ctx     context.Context
	quit    bool
	ticking bool
	loadEnv *Env
}

var _ hostabi.Runtime = (*Runtime)(nil)

// New creates a host runtime with its builtins installed.
func New(opts Options) *Runtime {
	if opts.Prefix == "" {
		opts.Prefix = "doom"
	}
	if opts.TickRate <= 0 {
		opts.TickRate = 35
	}
	if opts.RuntimeSize == 0 {
		opts.RuntimeSize = hostabi.RuntimeSize
	}
	if opts.EnvSize == 0 {
		opts.EnvSize = hostabi.EnvSize
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}

	r := &Runtime{
		opts:    opts,
		logger:  logger,
		clock:   clock,
		start:   clock(),
		obarray: make(map[string]*Symbol),
		globals: make(map[hostabi.Value]int),
		keys:    newKeyQueue(opts.KeyRelease),
		events:  make(chan Event, 64),
		ctx:     context.Background(),
	}
	r.nilSym = r.intern("nil")
	r.installBuiltins()

	if opts.Realized {
		r.realize()
	}
	return r
}

// Size returns the advertised runtime record size.
func (r *Runtime) Size() int {
	return r.opts.RuntimeSize
}

// Environment returns the environment of the module load in progress.
// Outside LoadModule it returns a fresh environment that is never
// invalidated, which is only useful for tests and tooling.
func (r *Runtime) Environment() hostabi.Env {
	if r.loadEnv != nil {
		return r.loadEnv
	}
	return r.newEnv()
}

// LoadModule runs a module's init function with an environment valid for
// the duration of the call.
func (r *Runtime) LoadModule(name string, init InitFunc, describe func(int) string) error {
	r.loadEnv = r.newEnv()
	defer func() {
		r.loadEnv.invalidate()
		r.loadEnv = nil
	}()

	status := init(r)
	if status != 0 {
		merr := &ModuleError{Status: status}
		if describe != nil {
			merr.Text = describe(status)
		}
		r.logger.Error("module load failed", "module", name, "status", status, "reason", merr.Text)
		return merr
	}

	r.logger.Info("module loaded", "module", name, "tick", r.opts.Prefix+"-tick")
	return nil
}

// Canvas returns the window canvas, or nil before the window is realized.
func (r *Runtime) Canvas() *Canvas {
	return r.canvas
}

// Title returns the current window title.
func (r *Runtime) Title() string {
	return r.title
}

// Stats returns the session counters. Call it from the Run goroutine or
// after Run has returned.
func (r *Runtime) Stats() Stats {
	s := r.stats
	s.Title = r.title
	return s
}

// Uptime returns the time since the runtime was created.
func (r *Runtime) Uptime() time.Duration {
	return r.clock().Sub(r.start)
}

// Lookup returns the symbol with the given name, or nil if it was never
// interned.
func (r *Runtime) Lookup(name string) *Symbol {
	return r.obarray[name]
}

// GlobalRefs returns how many global references pin v.
func (r *Runtime) GlobalRefs(v hostabi.Value) int {
	return r.globals[v]
}

func (r *Runtime) intern(name string) *Symbol {
	if s, ok := r.obarray[name]; ok {
		return s
	}
	s := &Symbol{Name: name}
	r.obarray[name] = s
	return s
}

// realize creates the window canvas if it does not exist yet.
func (r *Runtime) realize() {
	if r.canvas != nil || r.opts.Width <= 0 || r.opts.Height <= 0 {
		return
	}
	r.canvas = newCanvas(r.opts.Width, r.opts.Height)
	r.logger.Debug("window realized", "width", r.opts.Width, "height", r.opts.Height)
}

func (r *Runtime) millis() int64 {
	return r.clock().Sub(r.start).Milliseconds()
}
