// Copyright (c) 2025 BlueDash Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading for the bluedash client.
//
// Configuration lives in TOML at ~/.bluedash/config.toml, with built-in
// defaults and environment overrides applied last.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete bluedash client configuration.
type Config struct {
	// API configuration
	API APIConfig `toml:"api"`

	// Usage tracking configuration
	Usage UsageConfig `toml:"usage"`

	// UI configuration
	UI UIConfig `toml:"ui"`
}

// APIConfig contains remote service configuration.
type APIConfig struct {
	// BaseURL is the base URL of the Expert AI service API.
	BaseURL string `toml:"base_url"`
	// TimeoutSecs is the per-request timeout in seconds.
	TimeoutSecs int `toml:"timeout_secs"`
}

// UsageConfig controls usage/rate-limit polling.
type UsageConfig struct {
	// PollSecs is the interval between background usage refreshes.
	PollSecs int `toml:"poll_secs"`
}

// UIConfig contains presentation settings.
type UIConfig struct {
	// Theme selects the color theme: "dark" or "light".
	Theme string `toml:"theme"`
	// ShowSidebar controls whether the conversation sidebar starts visible.
	ShowSidebar bool `toml:"show_sidebar"`
}

// Default returns the built-in default configuration.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:     "https://ai-expert-chat-9tckp.ondigitalocean.app/api",
			TimeoutSecs: 60,
		},
		Usage: UsageConfig{
			PollSecs: 60,
		},
		UI: UIConfig{
			Theme:       "dark",
			ShowSidebar: true,
		},
	}
}

// Timeout returns the request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutSecs) * time.Second
}

// PollInterval returns the usage poll interval as a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Usage.PollSecs) * time.Second
}

// =============================================================================
// PATHS
// =============================================================================

// Dir returns the bluedash data directory (~/.bluedash).
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".bluedash"), nil
}

// Path returns the path to the TOML config file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// EnsureDir ensures the data directory exists.
func EnsureDir() error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// =============================================================================
// LOAD / SAVE
// =============================================================================

// Load loads configuration from the config file, falling back to defaults
// when the file is absent. Environment overrides are applied last.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		cfg := Default()
		cfg.ApplyEnvOverrides()
		return cfg, nil
	}
	return LoadFromPath(path)
}

// LoadFromPath loads configuration from a specific TOML file.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config file: %w", err)
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration to the default TOML file with restrictive
// permissions.
func Save(cfg *Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := EnsureDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	fmt.Fprintln(file, "# bluedash configuration file")
	fmt.Fprintln(file, "")

	if err := toml.NewEncoder(file).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ApplyEnvOverrides applies environment variable overrides to the config.
func (c *Config) ApplyEnvOverrides() {
	if base := os.Getenv("BLUEDASH_API_URL"); base != "" {
		c.API.BaseURL = base
	}
	if theme := os.Getenv("BLUEDASH_THEME"); theme != "" {
		c.UI.Theme = theme
	}
}

// setDefaults backfills zero values left by a partial config file.
func (c *Config) setDefaults() {
	def := Default()
	if c.API.BaseURL == "" {
		c.API.BaseURL = def.API.BaseURL
	}
	if c.API.TimeoutSecs <= 0 {
		c.API.TimeoutSecs = def.API.TimeoutSecs
	}
	if c.Usage.PollSecs <= 0 {
		c.Usage.PollSecs = def.Usage.PollSecs
	}
	if c.UI.Theme == "" {
		c.UI.Theme = def.UI.Theme
	}
}

// Validate checks the configuration for obvious misconfiguration.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Host == "" {
		return fmt.Errorf("api.base_url is not a valid URL: %q", c.API.BaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api.base_url must be http or https, got %q", u.Scheme)
	}
	if c.UI.Theme != "dark" && c.UI.Theme != "light" {
		return fmt.Errorf("ui.theme must be \"dark\" or \"light\", got %q", c.UI.Theme)
	}
	// Trailing slashes confuse path joining downstream.
	c.API.BaseURL = strings.TrimSuffix(c.API.BaseURL, "/")
	return nil
}
