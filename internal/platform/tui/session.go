package tui

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/framehost/internal/config"
	"github.com/vovakirdan/framehost/internal/engine"
	"github.com/vovakirdan/framehost/internal/host"
	"github.com/vovakirdan/framehost/internal/hostabi"
	"github.com/vovakirdan/framehost/internal/registry"
	"github.com/vovakirdan/framehost/internal/shim"
	"github.com/vovakirdan/framehost/internal/storage"
)

// SessionOptions configure one engine session.
type SessionOptions struct {
	EngineID string
	User     string
	Host     config.HostConfig
	Store    *storage.Store // optional
	Logger   *log.Logger    // optional
}

// Session is one engine loaded into its own host through the adapter.
type Session struct {
	id      string
	opts    SessionOptions
	logger  *log.Logger
	engine  engine.Engine
	runtime *host.Runtime
	adapter *shim.Adapter
	mailbox *mailbox
	started time.Time

	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
	err    error
	stats  host.Stats
}

// NewSession creates the engine and its host. Nothing runs until Start.
func NewSession(opts SessionOptions) (*Session, error) {
	eng, err := registry.Create(opts.EngineID)
	if err != nil {
		return nil, fmt.Errorf("tui: %w", err)
	}

	id := uuid.NewString()
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	logger = logger.With("session", id[:8], "engine", eng.ID())

	w, h := eng.Resolution()
	mb := newMailbox()
	rt := host.New(host.Options{
		Prefix:     opts.Host.SymbolPrefix,
		Width:      w,
		Height:     h,
		TickRate:   opts.Host.TickRate,
		KeyRelease: opts.Host.KeyRelease,
		Presenter:  mb,
		Logger:     logger,
	})

	return &Session{
		id:      id,
		opts:    opts,
		logger:  logger,
		engine:  eng,
		runtime: rt,
		mailbox: mb,
		done:    make(chan struct{}),
	}, nil
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// Engine returns the engine loaded by the session.
func (s *Session) Engine() engine.Engine { return s.engine }

// Start loads the engine module and runs the host loop in the background
// until ctx is done, Stop is called or the host quits. A module that fails
// to load is recorded and reported; the host loop is not started.
func (s *Session) Start(ctx context.Context) error {
	s.started = time.Now()

	err := s.runtime.LoadModule(s.engine.ID(), func(rt hostabi.Runtime) int {
		a, status := shim.ModuleInit(rt, s.engine, shim.Options{Prefix: s.opts.Host.SymbolPrefix})
		s.adapter = a
		return status
	}, shim.StatusText)
	if err != nil {
		s.finish(storage.StatusInitFailed)
		return fmt.Errorf("tui: cannot load engine %s: %w", s.engine.ID(), err)
	}

	s.logger.Debug("engine loaded", "tick", s.adapter.Names().Tick)

	ctx, s.cancel = context.WithCancel(ctx)
	go func() {
		s.err = s.runtime.Run(ctx)
		status := storage.StatusCompleted
		if s.err != nil {
			status = storage.StatusError
		}
		s.finish(status)
	}()
	return nil
}

// Send delivers an event to the host without blocking. It reports false
// when the host's event buffer is full and the event was dropped.
func (s *Session) Send(ev host.Event) bool {
	return s.runtime.TrySend(ev)
}

// Stop asks the host loop to stop. It does not wait.
func (s *Session) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
}

// Wait blocks until the session has finished and returns the host loop
// error, if any.
func (s *Session) Wait() error {
	<-s.done
	return s.err
}

// Stats returns the final host counters. Valid after Wait returns.
func (s *Session) Stats() host.Stats {
	return s.stats
}

// waitForDone returns a command that reports the end of the session.
func (s *Session) waitForDone() tea.Cmd {
	return func() tea.Msg {
		<-s.done
		return HostDoneMsg{Err: s.err}
	}
}

// finish records the session summary and releases waiters.
func (s *Session) finish(status string) {
	s.once.Do(func() {
		s.stats = s.runtime.Stats()
		s.logger.Info("session finished",
			"status", status,
			"ticks", s.stats.Ticks,
			"frames", s.stats.Frames,
			"keys", s.stats.KeyEvents,
		)

		if s.opts.Store != nil {
			_, err := s.opts.Store.SaveSession(storage.Session{
				ID:        s.id,
				EngineID:  s.engine.ID(),
				User:      s.opts.User,
				Status:    status,
				Ticks:     int64(s.stats.Ticks),
				Frames:    int64(s.stats.Frames),
				KeyEvents: int64(s.stats.KeyEvents),
				Errors:    int64(s.stats.Errors),
				LastTitle: s.stats.Title,
				StartedAt: s.started,
				Duration:  time.Since(s.started),
			})
			if err != nil {
				// Best-effort save, the session is over regardless
				s.logger.Warn("could not save session", "error", err)
			}
		}

		s.mailbox.close()
		close(s.done)
	})
}
