// Package config provides YAML-based configuration for the host, its
// terminal display, session storage and the SSH server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config is the complete framehost configuration.
type Config struct {
	Host    HostConfig    `yaml:"host"`
	Display DisplayConfig `yaml:"display"`
	Storage StorageConfig `yaml:"storage"`
	SSH     SSHConfig     `yaml:"ssh"`
	Log     LogConfig     `yaml:"log"`

	// Source is the file the configuration was read from, or "embedded".
	Source string `yaml:"-"`
}

// HostConfig defines how the reference host drives a module.
type HostConfig struct {
	SymbolPrefix  string        `yaml:"symbol_prefix"`
	TickRate      int           `yaml:"tick_rate"`
	KeyRelease    time.Duration `yaml:"key_release"`
	DefaultEngine string        `yaml:"default_engine"`
}

// DisplayConfig defines how frames are shown in the terminal.
type DisplayConfig struct {
	Filter        string `yaml:"filter"`
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// StorageConfig locates the session database.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// SSHConfig configures `framehost serve`.
type SSHConfig struct {
	Address     string        `yaml:"address"`
	HostKey     string        `yaml:"host_key"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Filters lists the accepted display.filter values.
var Filters = []string{"nearest", "approx", "bilinear", "catmullrom"}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Host.SymbolPrefix == "" {
		return fmt.Errorf("config: host.symbol_prefix must not be empty")
	}
	if strings.ContainsAny(c.Host.SymbolPrefix, " \t\n()") {
		return fmt.Errorf("config: host.symbol_prefix %q is not a valid symbol name", c.Host.SymbolPrefix)
	}
	if c.Host.TickRate < 1 || c.Host.TickRate > 1000 {
		return fmt.Errorf("config: host.tick_rate must be between 1 and 1000, got %d", c.Host.TickRate)
	}
	if c.Host.KeyRelease <= 0 {
		return fmt.Errorf("config: host.key_release must be positive")
	}
	if !validFilter(c.Display.Filter) {
		return fmt.Errorf("config: unknown display.filter %q (want one of %s)",
			c.Display.Filter, strings.Join(Filters, ", "))
	}
	if c.SSH.IdleTimeout < 0 {
		return fmt.Errorf("config: ssh.idle_timeout must not be negative")
	}
	return nil
}

func validFilter(name string) bool {
	for _, f := range Filters {
		if f == name {
			return true
		}
	}
	return false
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
