// Package config holds the stylebag command configuration.
//
// Settings are resolved in layers, each overriding the one below:
//
//	┌──────────────────────────────┐
//	│  4. Command line flags       │  ← Highest priority
//	├──────────────────────────────┤
//	│  3. STYLEBAG_* environment   │
//	├──────────────────────────────┤
//	│  2. Config file (TOML)       │  ← ~/.config/stylebag/config.toml
//	├──────────────────────────────┤
//	│  1. Built-in defaults        │  ← Lowest priority
//	└──────────────────────────────┘
//
// Flags are applied by the command package; this package resolves the
// lower three layers.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/stylebag/internal/logging"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "STYLEBAG_"

// ErrInvalidConfig indicates a setting with an unusable value.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the resolved command configuration.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`

	// Document is the default styles document path.
	Document string `toml:"document"`

	// OptimizeOnSave collapses redundant breakpoint entries before saving.
	OptimizeOnSave bool `toml:"optimize_on_save"`

	// Cascade makes reads fall back to the closest narrower breakpoint.
	Cascade bool `toml:"cascade"`

	// WatchDebounce is how long watch waits for writes to settle.
	WatchDebounce Duration `toml:"watch_debounce"`
}

// Duration is a time.Duration written as a string such as "250ms".
type Duration time.Duration

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel:      "info",
		Document:      "styles.toml",
		WatchDebounce: Duration(100 * time.Millisecond),
	}
}

// DefaultPath returns the user config file path.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "stylebag", "config.toml")
}

// Load resolves defaults, the config file at path and the environment.
// An empty path uses DefaultPath. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultPath()
	}
	if path != "" {
		if err := cfg.MergeFile(path); err != nil {
			return cfg, err
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// MergeFile overlays the settings present in the TOML file at path.
func (c *Config) MergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse error in %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays STYLEBAG_* variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvPrefix + "LOG_LEVEL"); ok {
		c.LogLevel = v
	}
	if v, ok := lookup(EnvPrefix + "DOCUMENT"); ok {
		c.Document = v
	}
	if v, ok := lookup(EnvPrefix + "OPTIMIZE_ON_SAVE"); ok {
		b, err := parseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %sOPTIMIZE_ON_SAVE: %v", ErrInvalidConfig, EnvPrefix, err)
		}
		c.OptimizeOnSave = b
	}
	if v, ok := lookup(EnvPrefix + "CASCADE"); ok {
		b, err := parseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %sCASCADE: %v", ErrInvalidConfig, EnvPrefix, err)
		}
		c.Cascade = b
	}
	if v, ok := lookup(EnvPrefix + "WATCH_DEBOUNCE"); ok {
		var d Duration
		if err := d.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("%w: %sWATCH_DEBOUNCE: %v", ErrInvalidConfig, EnvPrefix, err)
		}
		c.WatchDebounce = d
	}
	return nil
}

// Validate checks every setting.
func (c Config) Validate() error {
	if !logging.ValidLevel(c.LogLevel) {
		return fmt.Errorf("%w: log level %q (must be debug, info, warn, or error)", ErrInvalidConfig, c.LogLevel)
	}
	if c.Document == "" {
		return fmt.Errorf("%w: document path is empty", ErrInvalidConfig)
	}
	if c.WatchDebounce < 0 {
		return fmt.Errorf("%w: watch debounce is negative", ErrInvalidConfig)
	}
	return nil
}

// parseBool accepts the spellings the environment commonly uses.
func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0", "":
		return false, nil
	default:
		return false, fmt.Errorf("not a boolean: %q", s)
	}
}
