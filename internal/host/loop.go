package host

import (
	"context"
	"time"
)

// Event is input delivered to the host from its window system.
type Event interface {
	isEvent()
}

// KeyEvent reports a key press. Releases are synthesized by the host.
type KeyEvent struct {
	Key byte
}

// ResizeEvent reports the window size in cells. The first one realizes the
// window canvas.
type ResizeEvent struct {
	Cols int
	Rows int
}

// QuitEvent asks the host to stop.
type QuitEvent struct{}

func (KeyEvent) isEvent()    {}
func (ResizeEvent) isEvent() {}
func (QuitEvent) isEvent()   {}

// Send delivers an event to the host. It blocks while the event buffer is
// full and gives up when ctx is done.
func (r *Runtime) Send(ctx context.Context, ev Event) {
	select {
	case r.events <- ev:
	case <-ctx.Done():
	}
}

// Run drives the host until ctx is done or a QuitEvent arrives: events are
// handled as they come and the idle timer invokes <prefix>-tick at the
// configured rate.
func (r *Runtime) Run(ctx context.Context) error {
	r.ctx = ctx
	defer func() { r.ctx = context.Background() }()

	ticker := time.NewTicker(time.Second / time.Duration(r.opts.TickRate))
	defer ticker.Stop()

	r.logger.Debug("host loop started", "tick_rate", r.opts.TickRate)
	for !r.quit {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-r.events:
			r.handle(ev)
		case <-ticker.C:
			r.Tick()
		}
	}
	r.logger.Debug("host loop stopped", "ticks", r.stats.Ticks, "frames", r.stats.Frames)
	return nil
}

// Tick handles queued events, then invokes the function bound to
// <prefix>-tick once with a fresh environment. It does nothing while a tick
// is already running or before a module has registered the function.
func (r *Runtime) Tick() {
	if r.ticking {
		return
	}
	r.drain()
	sym := r.Lookup(r.opts.Prefix + "-tick")
	if sym == nil || sym.fn == nil {
		return
	}

	r.ticking = true
	env := r.newEnv()
	defer func() {
		env.invalidate()
		r.ticking = false
	}()

	r.stats.Ticks++
	r.funcall(env, sym, nil)
}

// Quitting reports whether a QuitEvent has been handled.
func (r *Runtime) Quitting() bool {
	return r.quit
}

// handle applies one event.
func (r *Runtime) handle(ev Event) {
	switch e := ev.(type) {
	case KeyEvent:
		if r.keys.Press(e.Key, r.clock()) {
			r.stats.KeyEvents++
		}
	case ResizeEvent:
		r.realize()
	case QuitEvent:
		r.quit = true
	}
}

// pump services events for d, returning early on quit or cancellation.
// This is how the host stays responsive while a module waits.
func (r *Runtime) pump(d time.Duration) {
	r.drain()
	if d <= 0 || r.quit {
		return
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	for !r.quit {
		select {
		case <-r.ctx.Done():
			return
		case ev := <-r.events:
			r.handle(ev)
		case <-timer.C:
			return
		}
	}
}

// drain handles every event already queued without waiting.
func (r *Runtime) drain() {
	for {
		select {
		case ev := <-r.events:
			r.handle(ev)
		default:
			return
		}
	}
}

// TrySend delivers an event without blocking. It reports false when the
// event buffer is full.
func (r *Runtime) TrySend(ev Event) bool {
	select {
	case r.events <- ev:
		return true
	default:
		return false
	}
}
