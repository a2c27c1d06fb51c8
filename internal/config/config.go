// Package config provides cursorcast configuration: TOML loading with
// defaults and live reload.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Sentinel errors for configuration handling.
var (
	// ErrInvalidConfig is returned when a loaded configuration fails
	// validation.
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config is the root cursorcast configuration.
type Config struct {
	// LogLevel is the minimum log level (debug, info, warn, error).
	LogLevel string `toml:"log_level"`

	Overlay OverlayConfig `toml:"overlay"`
	Feed    FeedConfig    `toml:"feed"`
}

// OverlayConfig configures the reconciliation and rendering engine.
type OverlayConfig struct {
	// DebounceMS is the content-mutation settle delay in milliseconds.
	DebounceMS int `toml:"debounce_ms"`

	// TrailingBias shifts projected carets toward the trailing edge of
	// the resolved character.
	TrailingBias bool `toml:"trailing_bias"`

	// Diagnostic enables diagnostic annotations on render descriptors.
	Diagnostic bool `toml:"diagnostic"`

	// FontSize is the fallback font size in pixels when the container
	// reports none.
	FontSize float64 `toml:"font_size"`

	// LineHeight is the fallback line height in pixels. Zero derives it
	// from the font size.
	LineHeight float64 `toml:"line_height"`
}

// DebounceDelay returns the settle delay as a duration.
func (c OverlayConfig) DebounceDelay() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// FeedConfig configures the presence feed.
type FeedConfig struct {
	// URL is the websocket endpoint of the collab server. Empty runs
	// without a transport (samples arrive only via the local feed).
	URL string `toml:"url"`

	// TTLSeconds drops collaborators whose samples go stale. Zero
	// disables expiry.
	TTLSeconds int `toml:"ttl_seconds"`
}

// TTL returns the sample time-to-live as a duration.
func (c FeedConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		LogLevel: "info",
		Overlay: OverlayConfig{
			DebounceMS:   150,
			TrailingBias: true,
			FontSize:     16,
		},
		Feed: FeedConfig{
			TTLSeconds: 30,
		},
	}
}

// Load reads configuration from a TOML file, layered over the defaults.
// A missing file is not an error: the defaults apply unchanged.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Validate checks the configuration for out-of-range values.
func (c Config) Validate() error {
	if c.Overlay.DebounceMS < 0 {
		return fmt.Errorf("%w: overlay.debounce_ms must not be negative", ErrInvalidConfig)
	}
	if c.Overlay.FontSize < 0 {
		return fmt.Errorf("%w: overlay.font_size must not be negative", ErrInvalidConfig)
	}
	if c.Overlay.LineHeight < 0 {
		return fmt.Errorf("%w: overlay.line_height must not be negative", ErrInvalidConfig)
	}
	if c.Feed.TTLSeconds < 0 {
		return fmt.Errorf("%w: feed.ttl_seconds must not be negative", ErrInvalidConfig)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: unknown log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	return nil
}
