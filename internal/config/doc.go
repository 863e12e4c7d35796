// Package config provides user configuration management for ledctl.
//
// This package manages a YAML configuration file holding application
// preferences (timeouts, logging), an optional default controller address
// and an optional preset catalog that replaces the built-in presets.
// Panel session state (current color, segment assignments, custom presets
// created in the panel) is never written here.
//
// # Configuration File Location
//
// The configuration file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/ledctl/config.yaml or $HOME/.config/ledctl/config.yaml
//   - macOS: $HOME/.config/ledctl/config.yaml
//   - Windows: %LOCALAPPDATA%\ledctl\config.yaml
//
// # Example File
//
//	version: 1
//	device: 192.168.4.1
//	preferences:
//	  request_timeout: 10
//	  discover_timeout: 5
//	  log_level: info
//	  log_file: /tmp/ledctl.log
//	presets:
//	  - name: Blade Runner
//	    id: blade_runner
//	  - name: Sunset
//	    id: sunset
//	    color: "#ff8800"
//
// # Usage Example
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    return err
//	}
//	client.SetTimeout(cfg.Preferences.RequestTimeoutDuration())
//
// File writes are atomic (temporary file plus rename) and serialized by a mutex.
package config
