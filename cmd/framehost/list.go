package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/framehost/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available engines",
	Long:  `Shows a list of all engines registered with framehost.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	engines := registry.List()

	if len(engines) == 0 {
		fmt.Println("No engines available.")
		return
	}

	fmt.Println("Available engines:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, e := range engines {
		if len(e.ID) > maxIDLen {
			maxIDLen = len(e.ID)
		}
	}

	fmt.Printf("  %-*s  %-9s  %s\n", maxIDLen, "ID", "Size", "Title")
	fmt.Printf("  %-*s  %-9s  %s\n", maxIDLen, "--", "----", "-----")

	for _, e := range engines {
		size := fmt.Sprintf("%dx%d", e.Width, e.Height)
		fmt.Printf("  %-*s  %-9s  %s\n", maxIDLen, e.ID, size, e.Title)
	}

	fmt.Println()
	fmt.Println("Run 'framehost run <id>' to start an engine.")
}
