// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/simpledoc-tui/internal/catalog"
	"github.com/jeranaias/simpledoc-tui/internal/display"
)

// isolateHome points the config directory at a temp dir and clears the
// environment overrides.
func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	for _, v := range []string{"SIMPLEDOC_URL", "SIMPLEDOC_TIER", "SIMPLEDOC_VIEW", "SIMPLEDOC_TIMEOUT"} {
		t.Setenv(v, "")
	}
	return home
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// TestConfig_Default tests that Default() returns a valid config with defaults.
func TestConfig_Default(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "http://127.0.0.1:5000", cfg.Server.URL)
	assert.Equal(t, catalog.TierAdvanced, cfg.Tier())
	assert.Equal(t, display.ModePreview, cfg.ViewMode())
	assert.Equal(t, 5*time.Second, cfg.NotificationLifetime())
	assert.True(t, cfg.Compile.DiscardStale)
	assert.True(t, cfg.Compile.CompileOnLoad)
}

// TestConfig_Validate tests configuration validation.
func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		field  string
	}{
		{"relative url", func(c *Config) { c.Server.URL = "localhost:5000" }, "server.url"},
		{"ftp url", func(c *Config) { c.Server.URL = "ftp://example.com" }, "server.url"},
		{"negative rate", func(c *Config) { c.Server.RateLimit = -2 }, "server.rate_limit"},
		{"negative burst", func(c *Config) { c.Server.Burst = -1 }, "server.burst"},
		{"tier out of range", func(c *Config) { c.Editor.DefaultTier = 4 }, "editor.default_tier"},
		{"unknown view", func(c *Config) { c.Editor.DefaultView = "split" }, "editor.default_view"},
		{"unknown theme", func(c *Config) { c.UI.Theme = "neon" }, "ui.theme"},
		{"unknown style", func(c *Config) { c.UI.HighlightStyle = "no-such-style" }, "ui.highlight_style"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)

			var verrs ValidateErrors
			require.True(t, errors.As(err, &verrs))
			require.Len(t, verrs, 1)
			assert.Equal(t, tt.field, verrs[0].Field)
		})
	}
}

func TestConfig_ValidateCollectsAllErrors(t *testing.T) {
	cfg := Default()
	cfg.Editor.DefaultTier = 0
	cfg.UI.Theme = "neon"

	var verrs ValidateErrors
	require.True(t, errors.As(cfg.Validate(), &verrs))
	assert.Len(t, verrs, 2)
	assert.Contains(t, verrs.Error(), "; ")
}

func TestConfig_SetDefaults(t *testing.T) {
	cfg := &Config{Server: ServerConfig{URL: "http://example.com:8080/"}}
	cfg.SetDefaults()

	assert.Equal(t, "http://example.com:8080", cfg.Server.URL, "trailing slash trimmed")
	assert.Equal(t, 30, cfg.Server.TimeoutSecs)
	assert.Equal(t, 3, cfg.Editor.DefaultTier)
	assert.Equal(t, "preview", cfg.Editor.DefaultView)
	assert.Equal(t, "monokai", cfg.UI.HighlightStyle)
	require.NoError(t, cfg.Validate())
}

func TestLoadFromPath_TOMLKeepsDefaults(t *testing.T) {
	isolateHome(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, `
[server]
url = "http://compiler.local:9000"

[editor]
default_tier = 1
default_view = "raw"
`)

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "http://compiler.local:9000", cfg.Server.URL)
	assert.Equal(t, catalog.TierBasic, cfg.Tier())
	assert.Equal(t, display.ModeRaw, cfg.ViewMode())
	assert.True(t, cfg.Compile.DiscardStale, "absent bool keeps its default")
	assert.Equal(t, 30, cfg.Server.TimeoutSecs)
}

func TestLoadFromPath_ZeroNotificationPersists(t *testing.T) {
	isolateHome(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "[editor]\nnotification_ms = 0\n")

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Editor.NotificationMs)
	assert.LessOrEqual(t, cfg.NotificationLifetime(), time.Duration(0), "zero lifetime keeps notifications")

	// Saving and loading again keeps it
	out := filepath.Join(t.TempDir(), "saved.toml")
	require.NoError(t, SaveTOML(cfg, out))
	again, err := LoadFromPath(out)
	require.NoError(t, err)
	assert.Equal(t, 0, again.Editor.NotificationMs)
}

func TestLoadFromPath_NegativeTimeoutLeavesTransportDefault(t *testing.T) {
	isolateHome(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "[server]\ntimeout_secs = -1\n")

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, -1, cfg.Server.TimeoutSecs)
	assert.Less(t, cfg.ClientConfig().Timeout, time.Duration(0))
}

func TestLoadFromPath_JSON(t *testing.T) {
	isolateHome(t)
	path := filepath.Join(t.TempDir(), "config.json")
	writeFile(t, path, `{"compile": {"discard_stale": false}, "server": {"timeout_secs": 5}}`)

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.False(t, cfg.Compile.DiscardStale)
	assert.Equal(t, 5, cfg.Server.TimeoutSecs)
	assert.Equal(t, 5*time.Second, cfg.ClientConfig().Timeout)
}

func TestLoadFromPath_Invalid(t *testing.T) {
	isolateHome(t)
	dir := t.TempDir()

	broken := filepath.Join(dir, "broken.toml")
	writeFile(t, broken, "[server\nurl=")
	_, err := LoadFromPath(broken)
	assert.Error(t, err)

	invalid := filepath.Join(dir, "invalid.toml")
	writeFile(t, invalid, "[editor]\ndefault_tier = 7\n")
	_, err = LoadFromPath(invalid)
	var verrs ValidateErrors
	assert.True(t, errors.As(err, &verrs))
}

func TestLoad_NoFilesUsesDefaults(t *testing.T) {
	isolateHome(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default().Server.URL, cfg.Server.URL)
}

func TestLoad_PrefersTOMLOverJSON(t *testing.T) {
	home := isolateHome(t)
	writeFile(t, filepath.Join(home, ".simpledoc", "config.toml"), "[editor]\ndefault_tier = 2\n")
	writeFile(t, filepath.Join(home, ".simpledoc", "config.json"), `{"editor": {"default_tier": 1}}`)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, catalog.TierIntermediate, cfg.Tier())

	path, err := ActivePath()
	require.NoError(t, err)
	assert.Equal(t, "config.toml", filepath.Base(path))
}

func TestLoad_BrokenFileFallsBackToDefaults(t *testing.T) {
	home := isolateHome(t)
	writeFile(t, filepath.Join(home, ".simpledoc", "config.toml"), "not = [valid")

	cfg, err := Load()
	assert.Error(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, Default().Server.URL, cfg.Server.URL)
}

func TestApplyEnvOverrides(t *testing.T) {
	isolateHome(t)
	t.Setenv("SIMPLEDOC_URL", "https://docs.example.com")
	t.Setenv("SIMPLEDOC_TIER", "basic")
	t.Setenv("SIMPLEDOC_VIEW", "raw")
	t.Setenv("SIMPLEDOC_TIMEOUT", "12")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://docs.example.com", cfg.Server.URL)
	assert.Equal(t, catalog.TierBasic, cfg.Tier())
	assert.Equal(t, display.ModeRaw, cfg.ViewMode())
	assert.Equal(t, 12, cfg.Server.TimeoutSecs)
}

func TestApplyEnvOverrides_IgnoresGarbage(t *testing.T) {
	isolateHome(t)
	t.Setenv("SIMPLEDOC_TIER", "expert")
	t.Setenv("SIMPLEDOC_TIMEOUT", "soon")

	cfg := Default()
	cfg.ApplyEnvOverrides()
	assert.Equal(t, 3, cfg.Editor.DefaultTier)
	assert.Equal(t, 30, cfg.Server.TimeoutSecs)
}

func TestSaveAndReload(t *testing.T) {
	isolateHome(t)
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := Default()
	cfg.Server.URL = "http://10.0.0.2:5000"
	cfg.Compile.CompileOnLoad = false
	require.NoError(t, SaveTOML(cfg, path))

	loaded, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Server.URL, loaded.Server.URL)
	assert.False(t, loaded.Compile.CompileOnLoad)

	jsonPath := filepath.Join(filepath.Dir(path), "config.json")
	require.NoError(t, SaveJSON(cfg, jsonPath))
	loaded, err = LoadFromPath(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, cfg.Server.URL, loaded.Server.URL)
}

func TestGetSet(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Set("editor.default_tier", "2"))
	require.NoError(t, cfg.Set("compile.discard_stale", "false"))
	require.NoError(t, cfg.Set("server.rate_limit", "1.5"))
	require.NoError(t, cfg.Set("ui.highlight_style", "dracula"))

	v, err := cfg.Get("editor.default_tier")
	require.NoError(t, err)
	assert.Equal(t, 2, v)
	assert.False(t, cfg.Compile.DiscardStale)
	assert.Equal(t, 1.5, cfg.Server.RateLimit)
	assert.Equal(t, "dracula", cfg.UI.HighlightStyle)

	_, err = cfg.Get("server.nope")
	assert.Error(t, err)
	assert.Error(t, cfg.Set("server.url.host", "x"))
	assert.Error(t, cfg.Set("editor.default_tier", "two"))
}

func TestGetAllKeysResolve(t *testing.T) {
	cfg := Default()
	for _, key := range GetAllKeys() {
		_, err := cfg.Get(key)
		assert.NoError(t, err, key)
	}
}
