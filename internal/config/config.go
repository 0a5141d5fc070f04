// Package config loads and stores CLI configuration in the XDG config dir.
// Settings come from three layers: built-in defaults, the config.json file,
// and COPILOT_* environment variables (highest precedence). Only non-secret
// settings are kept here; the session token goes to the token store.
package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"

	"copilot/cli/internal/xdg"
)

// Defaults applied when neither config.json nor the environment provides a value.
const (
	DefaultAPIBaseURL     = "http://localhost:5000"
	DefaultPerPage        = 10
	DefaultTimeoutSeconds = 10
	DefaultLogLevel       = "info"
)

// Config holds non-sensitive CLI settings.
type Config struct {
	APIBaseURL     string `json:"api_base_url" env:"COPILOT_API_URL"`
	PerPage        int    `json:"per_page" env:"COPILOT_PER_PAGE"`
	TimeoutSeconds int    `json:"timeout_seconds" env:"COPILOT_TIMEOUT_SECONDS"`
	LogLevel       string `json:"log_level" env:"COPILOT_LOG_LEVEL"`
}

// path returns the path to the config file.
func path() (string, error) {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads configuration; a missing file yields defaults. Environment
// variables override whatever the file provided.
func Load() (Config, error) {
	c := Config{
		APIBaseURL:     DefaultAPIBaseURL,
		PerPage:        DefaultPerPage,
		TimeoutSeconds: DefaultTimeoutSeconds,
		LogLevel:       DefaultLogLevel,
	}
	p, err := path()
	if err != nil {
		return c, err
	}
	data, err := os.ReadFile(p)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return c, err
	}
	if err == nil {
		if err := json.Unmarshal(data, &c); err != nil {
			return c, err
		}
	}
	if err := env.Parse(&c); err != nil {
		return c, err
	}
	c.normalize()
	return c, nil
}

// Save writes configuration with 0600 permissions.
func Save(c Config) error {
	p, err := path()
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0o600)
}

// normalize backfills zero values so a partially written config file or an
// empty env var cannot leave the client without a usable setting.
func (c *Config) normalize() {
	if c.APIBaseURL == "" {
		c.APIBaseURL = DefaultAPIBaseURL
	}
	if c.PerPage <= 0 {
		c.PerPage = DefaultPerPage
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = DefaultTimeoutSeconds
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
}
