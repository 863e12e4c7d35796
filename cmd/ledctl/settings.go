package main

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ledctl/ledctl/internal/config"
	"github.com/ledctl/ledctl/internal/device"
	"github.com/ledctl/ledctl/internal/logging"
	"github.com/ledctl/ledctl/internal/panel"
)

// settings are the effective options for one invocation.
// Flags and LEDCTL_* variables win over the config file, which wins over defaults.
type settings struct {
	Device          string
	Timeout         time.Duration
	DiscoverTimeout time.Duration
	LogLevel        string
	LogFile         string
	ConfigPath      string
	Presets         []panel.Preset // nil means the built-in catalog
}

func loadSettings(v *viper.Viper) (*settings, error) {
	path := v.GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if path == "" {
		if path, err = config.GetConfigPath(); err != nil {
			return nil, err
		}
	}

	s := &settings{
		Device:          cfg.Device,
		Timeout:         cfg.Preferences.RequestTimeoutDuration(),
		DiscoverTimeout: cfg.Preferences.DiscoverTimeoutDuration(),
		LogLevel:        cfg.Preferences.LogLevel,
		LogFile:         cfg.Preferences.LogFile,
		ConfigPath:      path,
		Presets:         cfg.PresetCatalog(),
	}

	if v.IsSet("device") {
		s.Device = v.GetString("device")
	}
	if v.IsSet("timeout") {
		s.Timeout = v.GetDuration("timeout")
	}
	if v.IsSet("log-level") {
		s.LogLevel = v.GetString("log-level")
	}
	if s.Timeout < 0 {
		return nil, fmt.Errorf("timeout must not be negative: %s", s.Timeout)
	}

	return s, nil
}

// prepare loads settings and starts logging for a one-shot command
func prepare() (*settings, error) {
	s, err := loadSettings(v)
	if err != nil {
		return nil, err
	}
	if err := logging.Initialize(s.LogLevel, s.LogFile); err != nil {
		return nil, err
	}
	logging.Debug("settings loaded",
		zap.String("config", s.ConfigPath),
		zap.String("device", s.Device),
		zap.Duration("timeout", s.Timeout),
	)
	return s, nil
}

// newClient builds a device client from the effective settings
func (s *settings) newClient() *device.Client {
	client := device.NewClient(s.Device)
	client.SetTimeout(s.Timeout)
	return client
}

// catalog returns the preset catalog in effect
func (s *settings) catalog() []panel.Preset {
	if s.Presets != nil {
		return s.Presets
	}
	return panel.DefaultPresets()
}
