// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"

	"github.com/jeranaias/simpledoc-tui/internal/catalog"
	"github.com/jeranaias/simpledoc-tui/internal/compiler"
	"github.com/jeranaias/simpledoc-tui/internal/display"
	"github.com/jeranaias/simpledoc-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete editor configuration.
type Config struct {
	// General settings
	Version string `toml:"version" json:"version"`

	// Compile service connection
	Server ServerConfig `toml:"server" json:"server"`

	// Compile behaviour
	Compile CompileConfig `toml:"compile" json:"compile"`

	// Editor startup settings
	Editor EditorConfig `toml:"editor" json:"editor"`

	// UI configuration
	UI UIConfig `toml:"ui" json:"ui"`
}

// ServerConfig describes how to reach the compile service.
type ServerConfig struct {
	// URL is the service base URL; "/compilar" is appended.
	URL string `toml:"url" json:"url"`
	// TimeoutSecs bounds a compile round trip (default 30). Negative
	// leaves the timeout to the transport.
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs"`
	// RateLimit caps compile requests per second. 0 means unlimited.
	RateLimit float64 `toml:"rate_limit" json:"rate_limit"`
	// Burst is the rate limiter bucket size.
	Burst int `toml:"burst" json:"burst"`
}

// CompileConfig contains compile flow settings.
type CompileConfig struct {
	// DiscardStale applies only the most recently issued request's response.
	DiscardStale bool `toml:"discard_stale" json:"discard_stale"`
	// CompileOnLoad compiles right after an example is loaded.
	CompileOnLoad bool `toml:"compile_on_load" json:"compile_on_load"`
}

// EditorConfig contains editor startup settings.
type EditorConfig struct {
	// DefaultTier is the complexity tier selected at startup (1-3).
	DefaultTier int `toml:"default_tier" json:"default_tier"`
	// DefaultView is the visible output surface: "preview" or "raw".
	DefaultView string `toml:"default_view" json:"default_view"`
	// NotificationMs is the notification lifetime. Zero or negative keeps
	// notifications until dismissed.
	NotificationMs int `toml:"notification_ms" json:"notification_ms"`
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// Theme is the UI theme: "dark", "light", "auto"
	Theme string `toml:"theme" json:"theme"`
	// HighlightRaw colours the raw HTML surface.
	HighlightRaw bool `toml:"highlight_raw" json:"highlight_raw"`
	// HighlightStyle is the chroma style name.
	HighlightStyle string `toml:"highlight_style" json:"highlight_style"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: "1.0.0",

		Server: ServerConfig{
			URL:         "http://127.0.0.1:5000",
			TimeoutSecs: 30,
			RateLimit:   0, // unlimited
			Burst:       1,
		},

		Compile: CompileConfig{
			DiscardStale:  true,
			CompileOnLoad: true,
		},

		Editor: EditorConfig{
			DefaultTier:    int(catalog.DefaultTier),
			DefaultView:    "preview",
			NotificationMs: 5000,
		},

		UI: UIConfig{
			Theme:          "auto",
			HighlightRaw:   true,
			HighlightStyle: "monokai",
		},
	}
}

// =============================================================================
// DERIVED SETTINGS
// =============================================================================

// ClientConfig returns the compile client settings.
func (c *Config) ClientConfig() *compiler.ClientConfig {
	cc := compiler.DefaultConfig()
	cc.BaseURL = c.Server.URL
	cc.Timeout = time.Duration(c.Server.TimeoutSecs) * time.Second
	cc.RateLimit = c.Server.RateLimit
	cc.Burst = c.Server.Burst
	return cc
}

// Tier returns the startup tier, clamped to the valid range.
func (c *Config) Tier() catalog.Tier {
	return catalog.Tier(c.Editor.DefaultTier).Clamp()
}

// ViewMode returns the startup view mode.
func (c *Config) ViewMode() display.ViewMode {
	mode, _ := display.ParseViewMode(c.Editor.DefaultView)
	return mode
}

// NotificationLifetime returns how long notifications stay.
func (c *Config) NotificationLifetime() time.Duration {
	return time.Duration(c.Editor.NotificationMs) * time.Millisecond
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".simpledoc"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// ActivePath returns the config file Load would read, or the TOML path
// when neither file exists.
func ActivePath() (string, error) {
	tomlPath, err := ConfigPathTOML()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(tomlPath); err == nil {
		return tomlPath, nil
	}
	jsonPath, err := ConfigPathJSON()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(jsonPath); err == nil {
		return jsonPath, nil
	}
	return tomlPath, nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last.
func Load() (*Config, error) {
	var loadErr error

	tomlPath, err := ConfigPathTOML()
	if err == nil {
		if _, statErr := os.Stat(tomlPath); statErr == nil {
			cfg, err := LoadFromPath(tomlPath)
			if err == nil {
				return cfg, nil
			}
			loadErr = err
		}
	}

	if loadErr == nil {
		jsonPath, err := ConfigPathJSON()
		if err == nil {
			if _, statErr := os.Stat(jsonPath); statErr == nil {
				cfg, err := LoadFromPath(jsonPath)
				if err == nil {
					return cfg, nil
				}
				loadErr = err
			}
		}
	}

	// Fall back to defaults, returning any load error for information
	cfg := Default()
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, loadErr
}

// LoadTOML decodes a TOML file over cfg.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadJSON decodes a JSON file over cfg.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// LoadFromPath loads configuration from a specific file with full
// validation. Keys absent from the file keep their defaults.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if strings.HasSuffix(strings.ToLower(path), ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// SaveTOML saves the configuration to a TOML file.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# SimpleDoc editor configuration\n")
	buf.WriteString("# Generated by simpledoc-tui - edit with care\n\n")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveJSON saves the configuration to a JSON file.
func SaveJSON(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	// ==========================================================================
	// Server
	// ==========================================================================

	if u, err := url.Parse(c.Server.URL); err != nil {
		errs = append(errs, ValidationError{
			Field:   "server.url",
			Message: fmt.Sprintf("invalid URL: %v", err),
		})
	} else if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, ValidationError{
			Field:   "server.url",
			Message: fmt.Sprintf("invalid URL '%s', must be an absolute http(s) URL", c.Server.URL),
		})
	}

	if c.Server.RateLimit < 0 {
		errs = append(errs, ValidationError{
			Field:   "server.rate_limit",
			Message: "rate limit cannot be negative",
		})
	}
	if c.Server.Burst < 0 {
		errs = append(errs, ValidationError{
			Field:   "server.burst",
			Message: "burst cannot be negative",
		})
	}

	// ==========================================================================
	// Editor
	// ==========================================================================

	if !catalog.Tier(c.Editor.DefaultTier).Valid() {
		errs = append(errs, ValidationError{
			Field:   "editor.default_tier",
			Message: fmt.Sprintf("invalid tier %d, must be 1, 2 or 3", c.Editor.DefaultTier),
		})
	}
	if _, ok := display.ParseViewMode(c.Editor.DefaultView); !ok {
		errs = append(errs, ValidationError{
			Field:   "editor.default_view",
			Message: fmt.Sprintf("invalid view '%s', must be one of: preview, raw", c.Editor.DefaultView),
		})
	}

	// ==========================================================================
	// UI
	// ==========================================================================

	validThemes := map[string]bool{"dark": true, "light": true, "auto": true}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: dark, light, auto", c.UI.Theme),
		})
	}
	if _, ok := chromaStyles.Registry[strings.ToLower(c.UI.HighlightStyle)]; !ok {
		errs = append(errs, ValidationError{
			Field:   "ui.highlight_style",
			Message: fmt.Sprintf("unknown highlight style '%s'", c.UI.HighlightStyle),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults fills zero-value fields with their defaults. A zero
// notification_ms is kept since it means notifications persist.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Version == "" {
		c.Version = defaults.Version
	}
	if c.Server.URL == "" {
		c.Server.URL = defaults.Server.URL
	}
	c.Server.URL = strings.TrimRight(c.Server.URL, "/")
	if c.Server.TimeoutSecs == 0 {
		c.Server.TimeoutSecs = defaults.Server.TimeoutSecs
	}
	if c.Server.Burst == 0 {
		c.Server.Burst = defaults.Server.Burst
	}
	if c.Editor.DefaultTier == 0 {
		c.Editor.DefaultTier = defaults.Editor.DefaultTier
	}
	if c.Editor.DefaultView == "" {
		c.Editor.DefaultView = defaults.Editor.DefaultView
	}
	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
	if c.UI.HighlightStyle == "" {
		c.UI.HighlightStyle = defaults.UI.HighlightStyle
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - SIMPLEDOC_URL: overrides server.url
//   - SIMPLEDOC_TIER: overrides editor.default_tier (1-3 or a tier name)
//   - SIMPLEDOC_VIEW: overrides editor.default_view
//   - SIMPLEDOC_TIMEOUT: overrides server.timeout_secs
//
// Unparseable values are logged and ignored.
func (c *Config) ApplyEnvOverrides() {
	if u := os.Getenv("SIMPLEDOC_URL"); u != "" {
		c.Server.URL = u
	}

	if v := os.Getenv("SIMPLEDOC_TIER"); v != "" {
		if tier, err := catalog.ParseTier(v); err == nil {
			c.Editor.DefaultTier = int(tier)
		} else {
			log.Printf("CONFIG_ENV_IGNORED | var=SIMPLEDOC_TIER value=%q error=%v", v, err)
		}
	}

	if v := os.Getenv("SIMPLEDOC_VIEW"); v != "" {
		c.Editor.DefaultView = v
	}

	if v := os.Getenv("SIMPLEDOC_TIMEOUT"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			c.Server.TimeoutSecs = secs
		} else {
			log.Printf("CONFIG_ENV_IGNORED | var=SIMPLEDOC_TIMEOUT value=%q error=%v", v, err)
		}
	}
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g., "server.url").
func (c *Config) Get(key string) (interface{}, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set sets a configuration value using dot notation (e.g., "editor.default_tier").
func (c *Config) Set(key string, value interface{}) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field: %s", key)
	}
	return setFieldValue(field, value)
}

func (c *Config) lookup(key string) (reflect.Value, error) {
	if key == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	parts := strings.Split(key, ".")

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)
		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})
		if !field.IsValid() {
			return reflect.Value{}, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}
		if i == len(parts)-1 {
			return field, nil
		}
		if field.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
		v = field
	}
	return reflect.Value{}, fmt.Errorf("invalid key: %s", key)
}

// normalizeFieldName converts a snake_case or kebab-case name to its Go field equivalent.
func normalizeFieldName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})

	var result strings.Builder
	for _, part := range parts {
		if len(part) > 0 {
			result.WriteString(strings.ToUpper(string(part[0])))
			result.WriteString(strings.ToLower(part[1:]))
		}
	}
	return result.String()
}

// setFieldValue sets a reflect.Value from an interface{} value with type conversion.
func setFieldValue(field reflect.Value, value interface{}) error {
	if strVal, ok := value.(string); ok {
		switch field.Kind() {
		case reflect.String:
			field.SetString(strVal)
			return nil
		case reflect.Int, reflect.Int64:
			intVal, err := strconv.ParseInt(strVal, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer value: %v", err)
			}
			field.SetInt(intVal)
			return nil
		case reflect.Float64:
			floatVal, err := strconv.ParseFloat(strVal, 64)
			if err != nil {
				return fmt.Errorf("invalid float value: %v", err)
			}
			field.SetFloat(floatVal)
			return nil
		case reflect.Bool:
			lower := strings.ToLower(strVal)
			field.SetBool(lower == "1" || lower == "true" || lower == "yes")
			return nil
		}
	}

	val := reflect.ValueOf(value)
	if !val.IsValid() {
		return fmt.Errorf("cannot assign nil to %s", field.Type())
	}
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}
	if val.Type().ConvertibleTo(field.Type()) {
		field.Set(val.Convert(field.Type()))
		return nil
	}
	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// GetAllKeys returns all configuration keys in dot notation.
func GetAllKeys() []string {
	return []string{
		"version",
		"server.url",
		"server.timeout_secs",
		"server.rate_limit",
		"server.burst",
		"compile.discard_stale",
		"compile.compile_on_load",
		"editor.default_tier",
		"editor.default_view",
		"editor.notification_ms",
		"ui.theme",
		"ui.highlight_raw",
		"ui.highlight_style",
	}
}
