package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestEmbeddedMatchesDefault(t *testing.T) {
	cfg, err := parse(defaultYAML, "embedded")
	if err != nil {
		t.Fatalf("embedded config does not parse: %v", err)
	}
	if cfg != Default() {
		t.Errorf("embedded config = %+v, expected %+v", cfg, Default())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("embedded config is invalid: %v", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("host:\n  tick_rate: 60\n  key_release: 80ms\ndisplay:\n  filter: nearest\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Host.TickRate != 60 {
		t.Errorf("TickRate = %d, expected 60", cfg.Host.TickRate)
	}
	if cfg.Host.KeyRelease != 80*time.Millisecond {
		t.Errorf("KeyRelease = %v, expected 80ms", cfg.Host.KeyRelease)
	}
	if cfg.Display.Filter != "nearest" {
		t.Errorf("Filter = %q, expected nearest", cfg.Display.Filter)
	}
	// Unset values keep their defaults
	if cfg.Host.SymbolPrefix != "doom" {
		t.Errorf("SymbolPrefix = %q, expected doom", cfg.Host.SymbolPrefix)
	}
	if cfg.Source != path {
		t.Errorf("Source = %q, expected %q", cfg.Source, path)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected an error for a missing custom config")
	}

	broken := filepath.Join(dir, "broken.yaml")
	os.WriteFile(broken, []byte("host: [unterminated"), 0o644) //nolint:errcheck
	if _, err := Load(broken); err == nil || !strings.Contains(err.Error(), "failed to parse") {
		t.Errorf("Load(broken) = %v, expected a parse error", err)
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	os.WriteFile(invalid, []byte("host:\n  tick_rate: 0\n"), 0o644) //nolint:errcheck
	if _, err := Load(invalid); err == nil {
		t.Error("expected a validation error for tick_rate 0")
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)
	prevWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd() failed: %v", err)
	}
	if err := os.Chdir(work); err != nil {
		t.Fatalf("Chdir() failed: %v", err)
	}
	t.Cleanup(func() { os.Chdir(prevWD) }) //nolint:errcheck

	// Nothing on disk: embedded default
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Source != "embedded" {
		t.Errorf("Source = %q, expected embedded", cfg.Source)
	}

	// Local configs directory
	os.MkdirAll(filepath.Join(work, "configs"), 0o755)                                                //nolint:errcheck
	os.WriteFile(filepath.Join(work, "configs", FileName), []byte("host:\n  tick_rate: 20\n"), 0o644) //nolint:errcheck
	cfg, _ = Load("")
	if cfg.Host.TickRate != 20 {
		t.Errorf("TickRate = %d, expected 20 from ./configs", cfg.Host.TickRate)
	}

	// User config wins over the local one
	os.MkdirAll(filepath.Join(home, ".framehost"), 0o755)                                                     //nolint:errcheck
	os.WriteFile(filepath.Join(home, ".framehost", "config.yaml"), []byte("host:\n  tick_rate: 50\n"), 0o644) //nolint:errcheck
	cfg, _ = Load("")
	if cfg.Host.TickRate != 50 {
		t.Errorf("TickRate = %d, expected 50 from the user config", cfg.Host.TickRate)
	}

	// A broken user config is skipped
	os.WriteFile(filepath.Join(home, ".framehost", "config.yaml"), []byte("host: ["), 0o644) //nolint:errcheck
	cfg, _ = Load("")
	if cfg.Host.TickRate != 20 {
		t.Errorf("TickRate = %d, expected fallback to ./configs", cfg.Host.TickRate)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		ok     bool
	}{
		{"default", func(*Config) {}, true},
		{"empty prefix", func(c *Config) { c.Host.SymbolPrefix = "" }, false},
		{"prefix with space", func(c *Config) { c.Host.SymbolPrefix = "my doom" }, false},
		{"custom prefix", func(c *Config) { c.Host.SymbolPrefix = "heretic" }, true},
		{"tick rate too high", func(c *Config) { c.Host.TickRate = 5000 }, false},
		{"no key release", func(c *Config) { c.Host.KeyRelease = 0 }, false},
		{"unknown filter", func(c *Config) { c.Display.Filter = "lanczos" }, false},
		{"catmullrom", func(c *Config) { c.Display.Filter = "catmullrom" }, true},
		{"negative idle timeout", func(c *Config) { c.SSH.IdleTimeout = -time.Second }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			err := cfg.Validate()
			if (err == nil) != tt.ok {
				t.Errorf("Validate() = %v, expected ok=%v", err, tt.ok)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	t.Setenv("HOME", "/home/player")

	tests := []struct {
		in, expected string
	}{
		{"~/.framehost/sessions.db", "/home/player/.framehost/sessions.db"},
		{"~", "/home/player"},
		{"/tmp/x.db", "/tmp/x.db"},
		{"relative/x.db", "relative/x.db"},
	}
	for _, tt := range tests {
		if got := ExpandPath(tt.in); got != tt.expected {
			t.Errorf("ExpandPath(%q) = %q, expected %q", tt.in, got, tt.expected)
		}
	}
}
