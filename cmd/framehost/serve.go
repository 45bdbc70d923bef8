package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/framehost/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
	flagEngine      string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the framehost SSH server",
	Long: `Start an SSH server that runs an engine for every connection.

Each SSH connection gets its own host, adapter and engine. The engine is
taken from the SSH command, falling back to the configured default.
Sessions are recorded in the server's database.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, uses the configured key (generated on first start)

Examples:
  framehost serve                           # Listen on the configured address
  framehost serve --ssh :2222               # Listen on port 2222
  framehost serve --host-key ./my_host_key  # Use specific host key
  framehost serve --engine flappy           # Change the default engine

Users can connect with:
  ssh localhost -p 23234
  ssh localhost -p 23234 -t flappy`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port, overrides config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (overrides config)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout before disconnecting (overrides config)")
	serveCmd.Flags().StringVar(&flagEngine, "engine", "", "Default engine for connections without a command")
}

func runServe(_ *cobra.Command, _ []string) {
	cfg := loadConfig()

	if flagSSHAddr != "" {
		cfg.SSH.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.SSH.HostKey = flagHostKey
	}
	if flagIdleTimeout > 0 {
		cfg.SSH.IdleTimeout = flagIdleTimeout
	}
	if flagEngine != "" {
		cfg.Host.DefaultEngine = flagEngine
	}

	serverCfg := tui.SSHServerConfigFrom(cfg)
	serverCfg.Logger = newLogger(os.Stderr, cfg.Log)

	server, err := tui.NewSSHServer(serverCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting framehost SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
