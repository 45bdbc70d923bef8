package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/recover"
	"github.com/muesli/termenv"
	xdraw "golang.org/x/image/draw"

	"github.com/vovakirdan/framehost/internal/config"
	"github.com/vovakirdan/framehost/internal/registry"
	"github.com/vovakirdan/framehost/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.framehost/host_key.
	HostKeyPath string

	// DBPath is the path to the sessions database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// DefaultEngine runs when the client does not name one
	// (ssh -p 23234 host flappy).
	DefaultEngine string

	Host    config.HostConfig
	Display config.DisplayConfig
	Logger  *log.Logger
}

// SSHServerConfigFrom builds a server config from the loaded configuration.
func SSHServerConfigFrom(cfg config.Config) SSHServerConfig {
	return SSHServerConfig{
		Address:       cfg.SSH.Address,
		HostKeyPath:   cfg.SSH.HostKey,
		DBPath:        cfg.Storage.Path,
		IdleTimeout:   cfg.SSH.IdleTimeout,
		DefaultEngine: cfg.Host.DefaultEngine,
		Host:          cfg.Host,
		Display:       cfg.Display,
	}
}

// SSHServer wraps a Wish SSH server. Every connection gets its own host,
// adapter and engine.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	filter xdraw.Interpolator
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "framehost-ssh",
		})
	}

	if cfg.DefaultEngine != "" && !registry.Exists(cfg.DefaultEngine) {
		return nil, fmt.Errorf("tui: unknown default engine %q", cfg.DefaultEngine)
	}
	filter, err := Filter(cfg.Display.Filter)
	if err != nil {
		return nil, err
	}

	// Open storage
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open sessions database", "error", err)
		// Continue without storage
		store = nil
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		filter: filter,
		logger: logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".framehost", "host_key")
	}
	hostKeyPath = config.ExpandPath(hostKeyPath)

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			recover.MiddlewareWithLogger(logger,
				// Frames need colour; force at least 256 colours
				bubbletea.MiddlewareWithColorProfile(srv.teaHandler, termenv.ANSI256),
				activeterm.Middleware(),
			),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// engineFor picks the engine named by the SSH command, or the default.
func (s *SSHServer) engineFor(sshSession ssh.Session) string {
	if cmd := sshSession.Command(); len(cmd) > 0 {
		return cmd[0]
	}
	return s.config.DefaultEngine
}

// teaHandler creates a host session and a Bubble Tea program for each SSH
// connection.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	engineID := s.engineFor(sshSession)
	if !registry.Exists(engineID) {
		wish.Errorf(sshSession, "unknown engine %q\n", engineID)
		for _, e := range registry.List() {
			wish.Errorf(sshSession, "  %s\t%s\n", e.ID, e.Title)
		}
		return nil, nil
	}

	session, err := NewSession(SessionOptions{
		EngineID: engineID,
		User:     sshSession.User(),
		Host:     s.config.Host,
		Store:    s.store,
		Logger:   s.logger.With("user", sshSession.User()),
	})
	if err != nil {
		wish.Errorln(sshSession, err)
		return nil, nil
	}

	// The host lives as long as the connection
	if err := session.Start(sshSession.Context()); err != nil {
		s.logger.Error("session failed to start", "user", sshSession.User(), "error", err)
		wish.Errorln(sshSession, err)
		return nil, nil
	}

	renderer := NewFrameRenderer(bubbletea.MakeRenderer(sshSession), s.filter)
	model := NewModel(session, renderer, s.config.Display.ScreenshotDir)

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("connection opened",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
			"engine", s.engineFor(sshSession),
		)
		next(sshSession)
		s.logger.Info("connection closed",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address, "default_engine", s.config.DefaultEngine)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-done:
		s.logger.Info("shutting down...")
		return s.Shutdown()
	case err := <-errCh:
		s.logger.Error("server error", "error", err)
		s.Shutdown() //nolint:errcheck // Already failing
		return err
	}
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	if s.store != nil {
		s.store.Close()
	}
	return err
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
