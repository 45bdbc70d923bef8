package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/framehost.yaml
var defaultYAML []byte

// Default returns the built-in configuration. It matches the embedded
// defaults/framehost.yaml.
func Default() Config {
	return Config{
		Host: HostConfig{
			SymbolPrefix:  "doom",
			TickRate:      35,
			KeyRelease:    150 * time.Millisecond,
			DefaultEngine: "testcard",
		},
		Display: DisplayConfig{
			Filter:        "approx",
			ScreenshotDir: "~/.framehost/screenshots",
		},
		Storage: StorageConfig{
			Path: "~/.framehost/sessions.db",
		},
		SSH: SSHConfig{
			Address:     "0.0.0.0:23234",
			HostKey:     ".ssh/framehost_ed25519",
			IdleTimeout: 10 * time.Minute,
		},
		Log: LogConfig{
			Level: "info",
			File:  "~/.framehost/framehost.log",
		},
		Source: "embedded",
	}
}
