// Package config loads the optional ~/.blasereplay/config.yaml file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the file-backed CLI configuration. Flags override every field.
type Config struct {
	// ArchiveURL is the chronicler API root.
	ArchiveURL string `yaml:"archive_url"`
	// CachePath is the finished-page cache location; empty disables caching.
	CachePath string `yaml:"cache_path"`
	// PollIntervalSeconds drives the live-follow refresh rate.
	PollIntervalSeconds int `yaml:"poll_interval_seconds"`
	// Season is the default season for listings when --season is not given.
	Season int `yaml:"season"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		ArchiveURL:          "",
		CachePath:           filepath.Join(userHome(), ".blasereplay", "pages.db"),
		PollIntervalSeconds: 2,
		Season:              0,
	}
}

// Load reads the config file at path, falling back to defaults when the file
// is absent. A present-but-invalid file is an error, never a silent default.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.PollIntervalSeconds <= 0 {
		cfg.PollIntervalSeconds = 2
	}
	return cfg, nil
}

// DefaultPath is the conventional config location.
func DefaultPath() string {
	return filepath.Join(userHome(), ".blasereplay", "config.yaml")
}

// PollInterval returns the live refresh period.
func (c Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalSeconds) * time.Second
}

func userHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
