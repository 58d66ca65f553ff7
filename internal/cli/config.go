// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Command: config [subcommand]
//
// Subcommands:
//
//	show (default)      Display the effective configuration
//	path                Show the configuration file path
//	init [--force]      Write a default config.toml
//	set <key> <value>   Change one key in the config file
//
// Examples:
//
//	simpledoc-tui config
//	simpledoc-tui config show --json
//	simpledoc-tui config set server.url http://localhost:8000
//	simpledoc-tui config set editor.default_view raw

package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jeranaias/simpledoc-tui/internal/config"
)

// HandleConfig handles the "config" command.
func HandleConfig(args Args) {
	if err := RunConfig(args, os.Stdout); err != nil {
		HandleErrorAndExit("config", err, args.JSON)
	}
}

// RunConfig runs a config subcommand, writing to out.
func RunConfig(args Args, out io.Writer) error {
	switch args.Subcommand {
	case "", "show":
		return configShow(args, out)
	case "path":
		return configPath(args, out)
	case "init":
		return configInit(args, out)
	case "set":
		return configSet(args, out)
	default:
		return NewUsageError("config subcommand", args.Subcommand, "unknown subcommand", "simpledoc-tui config show")
	}
}

// targetPath is the file config init/set write: --config or the default
// TOML file.
func targetPath(args Args) (string, error) {
	if args.ConfigPath != "" {
		return args.ConfigPath, nil
	}
	if err := config.EnsureConfigDir(); err != nil {
		return "", &ConfigError{Err: err}
	}
	path, err := config.ConfigPathTOML()
	if err != nil {
		return "", &ConfigError{Err: err}
	}
	return path, nil
}

func activePath(args Args) (string, error) {
	if args.ConfigPath != "" {
		return args.ConfigPath, nil
	}
	path, err := config.ActivePath()
	if err != nil {
		return "", &ConfigError{Err: err}
	}
	return path, nil
}

func configShow(args Args, out io.Writer) error {
	cfg, err := LoadConfig(args)
	if err != nil {
		return err
	}
	path, _ := activePath(args)

	if args.JSON {
		return NewJSONResponse("config show", cfg).Write(out)
	}

	fmt.Fprintln(out, TitleStyle.Render("SimpleDoc configuration"))
	section := ""
	for _, key := range config.GetAllKeys() {
		name := key
		if s, rest, ok := strings.Cut(key, "."); ok {
			if s != section {
				section = s
				fmt.Fprintln(out, SectionStyle.Render("["+s+"]"))
			}
			name = rest
		}
		val, err := cfg.Get(key)
		if err != nil {
			continue
		}
		fmt.Fprintf(out, "  %s%s\n", LabelStyle.Render(name+":"), ValueStyle.Render(fmt.Sprint(val)))
	}
	fmt.Fprintf(out, "\nConfig file: %s\n", DimStyle.Render(path))
	return nil
}

func configPath(args Args, out io.Writer) error {
	path, err := activePath(args)
	if err != nil {
		return err
	}
	_, statErr := os.Stat(path)
	exists := statErr == nil

	if args.JSON {
		return NewJSONResponse("config path", ConfigPathData{Path: path, Exists: exists}).Write(out)
	}
	if exists {
		fmt.Fprintln(out, path)
	} else {
		fmt.Fprintf(out, "%s %s\n", path, DimStyle.Render("(not created yet, run 'simpledoc-tui config init')"))
	}
	return nil
}

func configInit(args Args, out io.Writer) error {
	path, err := targetPath(args)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil && !args.Force {
		return NewUsageError("config init", path, "file already exists", "simpledoc-tui config init --force")
	}
	if err := save(config.Default(), path); err != nil {
		return &ConfigError{Path: path, Err: err}
	}
	if args.JSON {
		return NewJSONResponse("config init", ConfigPathData{Path: path, Exists: true}).Write(out)
	}
	fmt.Fprintf(out, "%s %s\n", SuccessStyle.Render("Created"), path)
	return nil
}

func configSet(args Args, out io.Writer) error {
	if args.ConfigKey == "" || args.ConfigVal == "" {
		return NewUsageError("arguments", "", "config set needs a key and a value", "simpledoc-tui config set server.url http://localhost:8000")
	}

	path, err := targetPath(args)
	if err != nil {
		return err
	}

	cfg := config.Default()
	if _, err := os.Stat(path); err == nil {
		loaded, err := config.LoadFromPath(path)
		if err != nil {
			return &ConfigError{Path: path, Err: err}
		}
		cfg = loaded
	}

	if err := cfg.Set(args.ConfigKey, args.ConfigVal); err != nil {
		return NewUsageError("key", args.ConfigKey, err.Error(), "one of: "+strings.Join(config.GetAllKeys(), ", "))
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return NewUsageError(args.ConfigKey, args.ConfigVal, err.Error(), "")
	}
	if err := save(cfg, path); err != nil {
		return &ConfigError{Path: path, Err: err}
	}

	if args.JSON {
		return NewJSONResponse("config set", map[string]string{"key": args.ConfigKey, "value": args.ConfigVal, "path": path}).Write(out)
	}
	fmt.Fprintf(out, "%s %s = %s\n", SuccessStyle.Render("Set"), args.ConfigKey, args.ConfigVal)
	return nil
}

// save writes cfg as JSON or TOML depending on the file extension.
func save(cfg *config.Config, path string) error {
	if strings.HasSuffix(strings.ToLower(path), ".json") {
		return config.SaveJSON(cfg, path)
	}
	return config.SaveTOML(cfg, path)
}
