package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/ledctl/ledctl/internal/color"
	"github.com/ledctl/ledctl/internal/panel"
)

// CurrentVersion is the only config file version this build reads
const CurrentVersion = 1

// Default preference values
const (
	DefaultRequestTimeout  = 10 // seconds
	DefaultDiscoverTimeout = 5  // seconds
)

// Config represents the entire user configuration file.
// It holds preferences and the preset catalog; panel session state is never stored here.
type Config struct {
	Version     int            `yaml:"version"`
	Device      string         `yaml:"device,omitempty"` // Default controller address
	Preferences *Preferences   `yaml:"preferences,omitempty"`
	Presets     []panel.Preset `yaml:"presets,omitempty"` // Replaces the built-in catalog when set
}

// Preferences represents application-wide user preferences.
type Preferences struct {
	RequestTimeout  int    `yaml:"request_timeout"`     // Per-request timeout in seconds; 0 disables it
	DiscoverTimeout int    `yaml:"discover_timeout"`    // mDNS discovery timeout in seconds
	LogLevel        string `yaml:"log_level,omitempty"` // debug, info, warn, error; empty is silent
	LogFile         string `yaml:"log_file,omitempty"`  // Log destination; the panel never logs to the terminal
}

// NewConfig creates a Config with default values and no preset override.
func NewConfig() *Config {
	return &Config{
		Version:     CurrentVersion,
		Preferences: defaultPreferences(),
	}
}

func defaultPreferences() *Preferences {
	return &Preferences{
		RequestTimeout:  DefaultRequestTimeout,
		DiscoverTimeout: DefaultDiscoverTimeout,
	}
}

// RequestTimeoutDuration returns the request timeout as a duration
func (p *Preferences) RequestTimeoutDuration() time.Duration {
	return time.Duration(p.RequestTimeout) * time.Second
}

// DiscoverTimeoutDuration returns the discovery timeout as a duration
func (p *Preferences) DiscoverTimeoutDuration() time.Duration {
	return time.Duration(p.DiscoverTimeout) * time.Second
}

// PresetCatalog returns the configured presets, or nil to use the built-in catalog
func (c *Config) PresetCatalog() []panel.Preset {
	if len(c.Presets) == 0 {
		return nil
	}
	out := make([]panel.Preset, len(c.Presets))
	copy(out, c.Presets)
	return out
}

// Validate checks the config and normalizes preset colors in place.
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return fmt.Errorf("unsupported config version: %d (expected %d)", c.Version, CurrentVersion)
	}

	if p := c.Preferences; p != nil {
		if p.RequestTimeout < 0 {
			return fmt.Errorf("preferences.request_timeout must not be negative")
		}
		if p.DiscoverTimeout < 0 {
			return fmt.Errorf("preferences.discover_timeout must not be negative")
		}
	}

	for i := range c.Presets {
		p := &c.Presets[i]
		p.Name = strings.TrimSpace(p.Name)
		p.ID = strings.TrimSpace(p.ID)
		if p.ID == "" {
			return fmt.Errorf("presets[%d]: id is required", i)
		}
		if p.Name == "" {
			p.Name = p.ID
		}
		if p.Color != "" {
			hex, ok := color.Normalize(p.Color)
			if !ok {
				return fmt.Errorf("presets[%d] (%s): invalid color %q", i, p.ID, p.Color)
			}
			p.Color = hex
		}
	}

	return nil
}
