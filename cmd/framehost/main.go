// framehost runs framebuffer engines inside an embedded extension host and
// shows their frames in the terminal.
//
// Usage:
//
//	framehost list               - List available engines
//	framehost run [engine]       - Run an engine (picker when omitted)
//	framehost serve              - Start SSH server for remote sessions
//	framehost sessions [engine]  - Browse recorded sessions
//	framehost abi                - Print the host ABI the adapter expects
//
// Global flags:
//
//	--config <path>     - Config file (default: search order, then embedded)
//	--db <path>         - Sessions database path
//	--tick-rate <rate>  - Host idle-timer rate in ticks per second
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/framehost/internal/config"

	// Import engines to register them
	_ "github.com/vovakirdan/framehost/internal/engines/flappy"
	_ "github.com/vovakirdan/framehost/internal/engines/testcard"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagTickRate int
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "framehost",
	Short: "framehost - run framebuffer engines in your terminal",
	Long: `framehost loads an engine through the host backend adapter into an
embedded extension host and draws the engine's frames in the terminal.

Available commands:
  list      - Show all registered engines
  run       - Run an engine locally
  serve     - Start SSH server for remote sessions
  sessions  - Browse recorded sessions
  abi       - Show the ABI record sizes and host symbols

Examples:
  framehost list
  framehost run flappy
  framehost run --tick-rate 60 testcard
  framehost serve --ssh :2222
  framehost sessions flappy`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to sessions database (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagTickRate, "tick-rate", 0, "Ticks per second (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (overrides config)")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(abiCmd)
}

// loadConfig loads the configuration and applies the global flag overrides.
func loadConfig() config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if flagDBPath != "" {
		cfg.Storage.Path = flagDBPath
	}
	if flagTickRate != 0 {
		cfg.Host.TickRate = flagTickRate
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// newLogger builds the process logger writing to w.
func newLogger(w io.Writer, cfg config.LogConfig) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "framehost",
	})
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		level = log.InfoLevel
		logger.Warn("unknown log level, using info", "level", cfg.Level)
	}
	logger.SetLevel(level)
	return logger
}

// fileLogger opens the log file for sessions that own the terminal. The
// returned close function is never nil.
func fileLogger(cfg config.LogConfig) (*log.Logger, func()) {
	path := config.ExpandPath(cfg.File)
	if path == "" {
		return newLogger(io.Discard, cfg), func() {}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create log directory: %v\n", err)
		return newLogger(io.Discard, cfg), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
		return newLogger(io.Discard, cfg), func() {}
	}
	return newLogger(f, cfg), func() { _ = f.Close() }
}
