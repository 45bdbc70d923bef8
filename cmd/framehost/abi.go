package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/framehost/internal/hostabi"
	"github.com/vovakirdan/framehost/internal/shim"
)

var abiCmd = &cobra.Command{
	Use:   "abi",
	Short: "Show the host ABI the adapter expects",
	Long: `Print the minimum runtime and environment record sizes the adapter
accepts, and the host symbols it resolves for the configured prefix.`,
	Run: runABI,
}

func runABI(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	names := shim.SymbolNames(cfg.Host.SymbolPrefix)

	fmt.Println("Record sizes:")
	fmt.Printf("  %-8s  %3d bytes  (status %d when smaller)\n", "runtime", hostabi.RuntimeSize, shim.StatusRuntimeMismatch)
	fmt.Printf("  %-8s  %3d bytes  (status %d when smaller)\n", "env", hostabi.EnvSize, shim.StatusEnvMismatch)
	fmt.Println()

	fmt.Println("Host symbols:")
	for _, row := range []struct{ role, name string }{
		{"nil", names.Nil},
		{"wait", names.AcceptProcessOutput},
		{"clock", names.Ms},
		{"canvas", names.Canvas},
		{"key", names.Key},
		{"title", names.Title},
	} {
		fmt.Printf("  %-7s %s\n", row.role, row.name)
	}
	fmt.Println()
	fmt.Printf("Registered tick function: %s\n", names.Tick)
}
