package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/ledctl/ledctl/internal/panel"
)

func TestGetConfigDir(t *testing.T) {
	if runtime.GOOS != "windows" && runtime.GOOS != "darwin" {
		t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	}

	configDir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}

	if !strings.Contains(configDir, "ledctl") {
		t.Errorf("GetConfigDir() = %v, should contain 'ledctl'", configDir)
	}

	switch runtime.GOOS {
	case "windows":
		if !strings.Contains(configDir, "AppData") && !strings.Contains(configDir, "Local") {
			t.Errorf("Windows config dir should contain 'AppData' or 'Local', got: %v", configDir)
		}
	case "darwin":
		if !strings.Contains(configDir, ".config") {
			t.Errorf("macOS config dir should contain '.config', got: %v", configDir)
		}
	default:
		if configDir != filepath.Join("/tmp/xdg", "ledctl") {
			t.Errorf("GetConfigDir() = %v, want XDG_CONFIG_HOME/ledctl", configDir)
		}
	}
}

func TestGetConfigPath(t *testing.T) {
	configPath, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}
	if filepath.Base(configPath) != "config.yaml" {
		t.Errorf("GetConfigPath() should end with 'config.yaml', got: %v", configPath)
	}
}

func TestNewConfig(t *testing.T) {
	cfg := NewConfig()

	if cfg.Version != CurrentVersion {
		t.Errorf("Version = %d, want %d", cfg.Version, CurrentVersion)
	}
	if cfg.Preferences == nil {
		t.Fatal("Preferences should not be nil")
	}
	if got := cfg.Preferences.RequestTimeoutDuration(); got != 10*time.Second {
		t.Errorf("RequestTimeoutDuration() = %v, want 10s", got)
	}
	if got := cfg.Preferences.DiscoverTimeoutDuration(); got != 5*time.Second {
		t.Errorf("DiscoverTimeoutDuration() = %v, want 5s", got)
	}
	if cfg.PresetCatalog() != nil {
		t.Error("PresetCatalog() should be nil without an override")
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Version != CurrentVersion || cfg.Preferences == nil {
		t.Errorf("Load() of a missing file = %+v, want defaults", cfg)
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name: "full file",
			content: `version: 1
device: 192.168.4.1
preferences:
  request_timeout: 3
  discover_timeout: 8
  log_level: debug
  log_file: /tmp/ledctl.log
presets:
  - name: Sunset
    id: sunset
    color: "#F80"
  - id: rainbow
`,
			check: func(t *testing.T, cfg *Config) {
				if cfg.Device != "192.168.4.1" {
					t.Errorf("Device = %q", cfg.Device)
				}
				if cfg.Preferences.RequestTimeoutDuration() != 3*time.Second {
					t.Errorf("RequestTimeout = %d", cfg.Preferences.RequestTimeout)
				}
				if cfg.Preferences.LogLevel != "debug" || cfg.Preferences.LogFile != "/tmp/ledctl.log" {
					t.Errorf("Preferences = %+v", cfg.Preferences)
				}
				presets := cfg.PresetCatalog()
				if len(presets) != 2 {
					t.Fatalf("presets = %d, want 2", len(presets))
				}
				if presets[0].Color != "#ff8800" {
					t.Errorf("color = %q, want normalized #ff8800", presets[0].Color)
				}
				if presets[1].Name != "rainbow" || presets[1].Color != "" {
					t.Errorf("preset without name or color = %+v", presets[1])
				}
			},
		},
		{
			name:    "preferences omitted",
			content: "version: 1\n",
			check: func(t *testing.T, cfg *Config) {
				if cfg.Preferences == nil || cfg.Preferences.RequestTimeout != DefaultRequestTimeout {
					t.Errorf("Preferences = %+v, want defaults", cfg.Preferences)
				}
			},
		},
		{
			name:    "partial preferences keep defaults",
			content: "version: 1\npreferences:\n  log_file: /tmp/ledctl.log\n",
			check: func(t *testing.T, cfg *Config) {
				if cfg.Preferences.LogFile != "/tmp/ledctl.log" {
					t.Errorf("LogFile = %q", cfg.Preferences.LogFile)
				}
				if got := cfg.Preferences.RequestTimeoutDuration(); got != DefaultRequestTimeout*time.Second {
					t.Errorf("request timeout = %v, want default", got)
				}
				if got := cfg.Preferences.DiscoverTimeoutDuration(); got != DefaultDiscoverTimeout*time.Second {
					t.Errorf("discover timeout = %v, want default", got)
				}
			},
		},
		{
			name:    "explicit zero timeout disables it",
			content: "version: 1\npreferences:\n  request_timeout: 0\n",
			check: func(t *testing.T, cfg *Config) {
				if cfg.Preferences.RequestTimeout != 0 {
					t.Errorf("RequestTimeout = %d, want 0", cfg.Preferences.RequestTimeout)
				}
				if cfg.Preferences.DiscoverTimeout != DefaultDiscoverTimeout {
					t.Errorf("DiscoverTimeout = %d, want default", cfg.Preferences.DiscoverTimeout)
				}
			},
		},
		{
			name:    "missing version",
			content: "device: 10.0.0.2\n",
			wantErr: "unsupported config version",
		},
		{
			name:    "unsupported version",
			content: "version: 2\n",
			wantErr: "unsupported config version",
		},
		{
			name:    "preset without id",
			content: "version: 1\npresets:\n  - name: Nameless\n",
			wantErr: "id is required",
		},
		{
			name:    "preset with bad color",
			content: "version: 1\npresets:\n  - id: x\n    color: purple\n",
			wantErr: "invalid color",
		},
		{
			name:    "negative timeout",
			content: "version: 1\npreferences:\n  request_timeout: -1\n",
			wantErr: "request_timeout",
		},
		{
			name:    "not yaml",
			content: "version: [1\n",
			wantErr: "failed to parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}

			cfg, err := Load(path)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("Load() error = %v, want it to contain %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := NewConfig()
	cfg.Device = "10.0.0.5"
	cfg.Preferences.LogLevel = "warn"
	cfg.Presets = []panel.Preset{{Name: "Sunset", ID: "sunset", Color: "#ff8800"}}

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file left behind after Save()")
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if perm := info.Mode().Perm(); perm != 0600 {
			t.Errorf("config permissions = %o, want 600", perm)
		}
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Device != "10.0.0.5" || loaded.Preferences.LogLevel != "warn" {
		t.Errorf("loaded = %+v", loaded)
	}
	if len(loaded.Presets) != 1 || loaded.Presets[0] != cfg.Presets[0] {
		t.Errorf("presets = %+v", loaded.Presets)
	}
}

func TestCreateDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	exists, err := Exists(path)
	if err != nil || exists {
		t.Fatalf("Exists() before create = %v, %v", exists, err)
	}

	if err := CreateDefaultConfig(path); err != nil {
		t.Fatalf("CreateDefaultConfig() error = %v", err)
	}

	exists, err = Exists(path)
	if err != nil || !exists {
		t.Fatalf("Exists() after create = %v, %v", exists, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "# ledctl configuration file") {
		t.Error("config file should start with the header comment")
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := panel.DefaultPresets()
	if len(cfg.Presets) != len(want) {
		t.Fatalf("presets = %d, want %d", len(cfg.Presets), len(want))
	}
	for i := range want {
		if cfg.Presets[i] != want[i] {
			t.Errorf("preset %d = %+v, want %+v", i, cfg.Presets[i], want[i])
		}
	}
}

func TestPresetCatalogIsCopy(t *testing.T) {
	cfg := NewConfig()
	cfg.Presets = []panel.Preset{{Name: "A", ID: "a"}}

	catalog := cfg.PresetCatalog()
	catalog[0].ID = "changed"
	if cfg.Presets[0].ID != "a" {
		t.Error("PresetCatalog() should return a copy")
	}
}
