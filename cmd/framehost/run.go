package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"os/user"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/framehost/internal/config"
	"github.com/vovakirdan/framehost/internal/host"
	"github.com/vovakirdan/framehost/internal/platform/tui"
	"github.com/vovakirdan/framehost/internal/registry"
	"github.com/vovakirdan/framehost/internal/storage"
)

var runCmd = &cobra.Command{
	Use:   "run [engine]",
	Short: "Run an engine in the terminal",
	Long: `Load an engine into a fresh host and show its frames.

Without an engine argument an interactive picker is shown; after the engine
exits you return to the picker.

Controls:
  Arrows        - Move / turn
  Space, Enter  - Use / flap
  Ctrl+F        - Fire
  Ctrl+S        - Save a screenshot (BMP)
  Ctrl+C        - Quit

Examples:
  framehost run
  framehost run testcard
  framehost run flappy --tick-rate 60`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRun,
}

func runRun(_ *cobra.Command, args []string) {
	cfg := loadConfig()

	logger, closeLog := fileLogger(cfg.Log)
	defer closeLog()

	// Open session storage
	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open sessions database: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if len(args) == 1 {
		if !registry.Exists(args[0]) {
			fmt.Fprintf(os.Stderr, "Error: unknown engine %q\n", args[0])
			fmt.Fprintln(os.Stderr, "Run 'framehost list' to see available engines.")
			os.Exit(1)
		}
		if err := runEngine(ctx, cfg, store, logger, args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Picker loop
	for ctx.Err() == nil {
		width, height := terminalSize()

		result, err := tui.RunMenu(store, width, height)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		switch {
		case result.Quit:
			return
		case result.WantsSessions:
			goBack, err := tui.RunSessions(store, "", width, height)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			if !goBack {
				return
			}
		default:
			if err := runEngine(ctx, cfg, store, logger, result.EngineID); err != nil {
				// Stay in the picker so another engine can be tried.
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
		}
	}
}

// runEngine runs one engine session and prints its counters afterwards.
func runEngine(ctx context.Context, cfg config.Config, store *storage.Store, logger *log.Logger, engineID string) error {
	stats, err := tui.Run(ctx, tui.RunOptions{
		Session: tui.SessionOptions{
			EngineID: engineID,
			User:     currentUser(),
			Host:     cfg.Host,
			Store:    store,
			Logger:   logger,
		},
		Display: cfg.Display,
	})
	if errors.Is(err, host.ErrModuleInit) {
		logger.Error("engine refused to load", "engine", engineID, "err", err)
		return err
	}
	if err != nil {
		return err
	}

	fmt.Printf("%s: %d ticks, %d frames, %d key events\n",
		engineID, stats.Ticks, stats.Frames, stats.KeyEvents)
	return nil
}

// terminalSize returns the size of stdout, or 80x24 when it is not a terminal.
func terminalSize() (int, int) {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return width, height
}

func currentUser() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "local"
}
