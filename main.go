// simpledoc-tui - a terminal editor for the SimpleDoc markup language.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/simpledoc-tui/internal/cli"
	"github.com/jeranaias/simpledoc-tui/internal/config"
	"github.com/jeranaias/simpledoc-tui/internal/ui/editor"
	"github.com/jeranaias/simpledoc-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdTUI:
		runTUI(args)
	case cli.CmdCompile:
		cli.HandleCompile(args)
	case cli.CmdExample:
		cli.HandleExample(args)
	case cli.CmdConfig:
		cli.HandleConfig(args)
	case cli.CmdVersion:
		cli.HandleVersion(args)
	case cli.CmdHelp:
		cli.HandleHelp()
	case cli.CmdUnknown:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", args.Name)
		cli.PrintUsage()
		os.Exit(cli.ExitUsageError)
	}
}

// runTUI starts the interactive editor.
func runTUI(args cli.Args) {
	if err := cli.RequireTerminal(); err != nil {
		cli.HandleErrorAndExit("tui", err, false)
	}

	cfg, err := cli.LoadConfig(args)
	if err != nil {
		cli.HandleErrorAndExit("tui", err, false)
	}
	cfg.UI.Theme = cli.ResolveTheme(cfg.UI.Theme)

	// The log must never reach the alternate screen
	closeLog := setupLogging(args.Debug)
	defer closeLog()

	// Hot reload follows the file the config came from
	var reloads <-chan config.Reload
	watcher, err := config.NewWatcher(args.ConfigPath)
	if err != nil {
		log.Printf("CONFIG_WATCH_ERROR | error=%v", err)
	} else {
		defer watcher.Close()
		reloads = watcher.Reloads()
	}

	theme := styles.NewTheme()
	if !cli.ColorsEnabled() {
		theme = styles.NewPlainTheme()
	}

	m := editor.New(editor.Options{
		Config:    cfg,
		Theme:     theme,
		Reloads:   reloads,
		Overrides: cli.Overrides(args, cfg.UI.Theme),
	})

	log.Printf("TUI_START | version=%s url=%s tier=%d view=%s", Version, cfg.Server.URL, cfg.Editor.DefaultTier, cfg.Editor.DefaultView)

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running editor: %v\n", err)
		os.Exit(1)
	}
}

// setupLogging sends the standard logger to ~/.simpledoc/debug.log when
// debug is set and discards it otherwise.
func setupLogging(debug bool) func() {
	if !debug {
		log.SetOutput(io.Discard)
		return func() {}
	}
	dir, err := config.ConfigDir()
	if err == nil {
		err = config.EnsureConfigDir()
	}
	if err != nil {
		log.SetOutput(io.Discard)
		return func() {}
	}
	f, err := tea.LogToFile(filepath.Join(dir, "debug.log"), "simpledoc")
	if err != nil {
		log.SetOutput(io.Discard)
		return func() {}
	}
	return func() { _ = f.Close() }
}
