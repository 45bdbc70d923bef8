package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/framehost/internal/platform/tui"
	"github.com/vovakirdan/framehost/internal/registry"
	"github.com/vovakirdan/framehost/internal/storage"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions [engine]",
	Short: "Browse recorded sessions",
	Long: `Open the sessions browser. With an engine argument the browser starts on
that engine's tab.

Examples:
  framehost sessions
  framehost sessions flappy`,
	Args: cobra.MaximumNArgs(1),
	Run:  runSessions,
}

func runSessions(_ *cobra.Command, args []string) {
	cfg := loadConfig()

	engineID := ""
	if len(args) == 1 {
		engineID = args[0]
		if !registry.Exists(engineID) {
			fmt.Fprintf(os.Stderr, "Error: unknown engine %q\n", engineID)
			fmt.Fprintln(os.Stderr, "Run 'framehost list' to see available engines.")
			os.Exit(1)
		}
	}

	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening sessions database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	width, height := terminalSize()
	if _, err := tui.RunSessions(store, engineID, width, height); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
