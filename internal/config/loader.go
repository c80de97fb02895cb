package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ConfigPath returns the default config file path.
func ConfigPath() string {
	return filepath.Join(homeDir(), ".emotic", "config.json")
}

// Load reads configuration from disk, falling back to defaults.
func Load() (*Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads configuration from a specific path. A missing file yields
// the defaults without error.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	// Apply defaults for zero values
	if cfg.Catalog.RefreshMinutes == 0 {
		cfg.Catalog.RefreshMinutes = 60
	}
	if cfg.Bot.SourceURL == "" {
		cfg.Bot.SourceURL = "https://github.com/joebot/emotic"
	}

	return cfg, nil
}

// Save writes configuration to disk.
func Save(cfg *Config, path string) error {
	os.MkdirAll(filepath.Dir(path), 0o755)

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "/tmp"
	}
	return home
}
