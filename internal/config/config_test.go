package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.Overlay.DebounceDelay() != 150*time.Millisecond {
		t.Errorf("DebounceDelay() = %v, want 150ms", cfg.Overlay.DebounceDelay())
	}
	if !cfg.Overlay.TrailingBias {
		t.Error("TrailingBias should default to true")
	}
	if cfg.Feed.TTL() != 30*time.Second {
		t.Errorf("TTL() = %v, want 30s", cfg.Feed.TTL())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load on missing file: %v", err)
	}
	if cfg != Default() {
		t.Error("missing file should yield the defaults unchanged")
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cursorcast.toml")
	content := `
log_level = "debug"

[overlay]
debounce_ms = 80
diagnostic = true

[feed]
url = "ws://localhost:8000/ws/collab/doc-1"
ttl_seconds = 10
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.Overlay.DebounceMS != 80 || !cfg.Overlay.Diagnostic {
		t.Errorf("overlay = %+v, want debounce 80 and diagnostic on", cfg.Overlay)
	}
	if cfg.Feed.URL != "ws://localhost:8000/ws/collab/doc-1" || cfg.Feed.TTLSeconds != 10 {
		t.Errorf("feed = %+v", cfg.Feed)
	}
	// Untouched keys keep their defaults.
	if cfg.Overlay.FontSize != 16 {
		t.Errorf("FontSize = %v, want default 16", cfg.Overlay.FontSize)
	}
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[overlay\ndebounce_ms = "), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load should fail on malformed TOML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative debounce", func(c *Config) { c.Overlay.DebounceMS = -1 }},
		{"negative font size", func(c *Config) { c.Overlay.FontSize = -2 }},
		{"negative line height", func(c *Config) { c.Overlay.LineHeight = -2 }},
		{"negative ttl", func(c *Config) { c.Feed.TTLSeconds = -5 }},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestLoadInvalidConfigFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invalid.toml")
	if err := os.WriteFile(path, []byte("[overlay]\ndebounce_ms = -10\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Load = %v, want ErrInvalidConfig", err)
	}
}
