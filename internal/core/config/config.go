// Package config handles configuration loading and validation for beacon.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/colonyops/beacon/internal/core/notify"
	"github.com/colonyops/beacon/internal/core/styles"
)

// Config holds the application configuration.
type Config struct {
	Theme   string        `yaml:"theme"`
	Toasts  ToastsConfig  `yaml:"toasts"`
	History HistoryConfig `yaml:"history"`
	DataDir string        `yaml:"-"` // set by caller, not from config file
}

// ToastsConfig controls display timing. All timing values are
// milliseconds; a value of 0 falls back to the built-in default for that
// field, so a zero window cannot be configured. MaxVisible must be at
// least 1: an explicit 0 is a validation error, not "unset".
type ToastsConfig struct {
	ErrorMs      int `yaml:"error_ms"`
	WarningMs    int `yaml:"warning_ms"`
	SuccessMs    int `yaml:"success_ms"`
	InfoMs       int `yaml:"info_ms"`
	EnterDelayMs int `yaml:"enter_delay_ms"`
	ExitWindowMs int `yaml:"exit_window_ms"`
	MaxVisible   int `yaml:"max_visible"`
}

// HistoryConfig controls the persisted notification history.
type HistoryConfig struct {
	// Disabled turns off history persistence; the default is on.
	Disabled bool `yaml:"disabled"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Theme: styles.DefaultTheme,
		Toasts: ToastsConfig{
			ErrorMs:      5000,
			WarningMs:    4000,
			SuccessMs:    3000,
			InfoMs:       4000,
			EnterDelayMs: 50,
			ExitWindowMs: 300,
			MaxVisible:   5,
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the
// provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults fills in values the zero form cannot express. Load
// unmarshals over DefaultConfig, so unset numeric fields already hold
// their defaults and an explicit 0 survives to Validate.
func (c *Config) applyDefaults() {
	if c.Theme == "" {
		c.Theme = DefaultConfig().Theme
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if _, ok := styles.GetPalette(c.Theme); !ok {
		return fmt.Errorf("unknown theme %q, valid themes: %v", c.Theme, styles.ThemeNames())
	}

	ms := map[string]int{
		"error_ms":       c.Toasts.ErrorMs,
		"warning_ms":     c.Toasts.WarningMs,
		"success_ms":     c.Toasts.SuccessMs,
		"info_ms":        c.Toasts.InfoMs,
		"enter_delay_ms": c.Toasts.EnterDelayMs,
		"exit_window_ms": c.Toasts.ExitWindowMs,
	}
	for name, v := range ms {
		if v < 0 {
			return fmt.Errorf("%s cannot be negative", name)
		}
	}

	if c.Toasts.MaxVisible < 1 {
		return fmt.Errorf("max_visible must be at least 1")
	}

	return nil
}

// Durations returns the per-kind display durations for the lifecycle
// engine. Unset kinds are omitted so the engine's built-in defaults apply.
func (c *Config) Durations() map[notify.Kind]time.Duration {
	out := make(map[notify.Kind]time.Duration, 4)
	set := func(k notify.Kind, ms int) {
		if ms > 0 {
			out[k] = time.Duration(ms) * time.Millisecond
		}
	}
	set(notify.KindError, c.Toasts.ErrorMs)
	set(notify.KindWarning, c.Toasts.WarningMs)
	set(notify.KindSuccess, c.Toasts.SuccessMs)
	set(notify.KindInfo, c.Toasts.InfoMs)
	return out
}

// EnterDelay returns the entrance window as a duration.
func (c *Config) EnterDelay() time.Duration {
	return time.Duration(c.Toasts.EnterDelayMs) * time.Millisecond
}

// ExitWindow returns the exit window as a duration.
func (c *Config) ExitWindow() time.Duration {
	return time.Duration(c.Toasts.ExitWindowMs) * time.Millisecond
}
