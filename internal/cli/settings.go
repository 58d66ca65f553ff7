// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"os"

	"github.com/jeranaias/simpledoc-tui/internal/catalog"
	"github.com/jeranaias/simpledoc-tui/internal/config"
	"github.com/jeranaias/simpledoc-tui/internal/display"
)

// LoadConfig loads the configuration named by --config, or the default
// files, and applies the global flags on top. A broken default config
// file is reported on stderr and defaults are used; a broken --config
// file is an error.
func LoadConfig(args Args) (*config.Config, error) {
	var cfg *config.Config
	if args.ConfigPath != "" {
		loaded, err := config.LoadFromPath(args.ConfigPath)
		if err != nil {
			return nil, &ConfigError{Path: args.ConfigPath, Err: err}
		}
		cfg = loaded
	} else {
		loaded, err := config.Load()
		if loaded == nil {
			return nil, &ConfigError{Err: err}
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
		}
		cfg = loaded
	}

	if err := ApplyFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyFlags overrides cfg with the global command-line flags.
func ApplyFlags(cfg *config.Config, args Args) error {
	if args.URL != "" {
		cfg.Server.URL = args.URL
	}
	if args.Tier != "" {
		tier, err := catalog.ParseTier(args.Tier)
		if err != nil {
			return NewUsageError("tier", args.Tier, "must be 1, 2 or 3", "--tier 2")
		}
		cfg.Editor.DefaultTier = int(tier)
	}
	if args.RawView {
		cfg.Editor.DefaultView = display.ModeRaw.String()
	}

	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return NewUsageError("flags", "", err.Error(), "--url http://127.0.0.1:5000")
	}
	return nil
}

// Overrides returns the function the editor re-applies to each reloaded
// config: the global flags plus the theme resolved at startup.
func Overrides(args Args, theme string) func(*config.Config) error {
	return func(cfg *config.Config) error {
		if err := ApplyFlags(cfg, args); err != nil {
			return err
		}
		if theme != "" {
			cfg.UI.Theme = theme
		}
		return nil
	}
}
