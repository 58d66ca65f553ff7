// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for the
// SimpleDoc editor.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, validation and live reload.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - ServerConfig: Compile service URL, timeout and rate limit
//   - EditorConfig: Startup tier, view and notification lifetime
//   - Watcher: Reloads the configuration when its file changes
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Command line flags (applied by the caller)
//   - Environment variables (SIMPLEDOC_*)
//   - ~/.simpledoc/config.toml
//   - ~/.simpledoc/config.json
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Printf("CONFIG_LOAD_ERROR | error=%v", err)
//	}
//	client := compiler.NewClientWithConfig(cfg.ClientConfig())
package config
