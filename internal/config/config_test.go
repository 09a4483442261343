// Copyright (c) 2025 BlueDash Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 60*time.Second, cfg.Timeout())
	assert.Equal(t, 60*time.Second, cfg.PollInterval())
	assert.Equal(t, "dark", cfg.UI.Theme)
	assert.True(t, cfg.UI.ShowSidebar)
	require.NoError(t, cfg.Validate())
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default().API.BaseURL, cfg.API.BaseURL)
}

func TestLoadFromPath_PartialFileBackfilled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := "[api]\nbase_url = \"https://example.test/api\"\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "https://example.test/api", cfg.API.BaseURL)
	// Unset fields fall back to defaults.
	assert.Equal(t, 60, cfg.API.TimeoutSecs)
	assert.Equal(t, 60, cfg.Usage.PollSecs)
}

func TestLoadFromPath_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := "[api]\nbase_url = \"not a url\"\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))

	_, err := LoadFromPath(path)
	assert.Error(t, err)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("BLUEDASH_API_URL", "https://override.test/api")

	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, "https://override.test/api", cfg.API.BaseURL)
}

func TestValidate_TrimsTrailingSlash(t *testing.T) {
	cfg := Default()
	cfg.API.BaseURL = "https://example.test/api/"
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "https://example.test/api", cfg.API.BaseURL)
}
