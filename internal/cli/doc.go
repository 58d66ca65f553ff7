// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and the headless commands of
// simpledoc-tui.
//
// # Commands
//
//   - tui (default): interactive editor
//   - compile: compile a file or stdin through the compile service
//   - example: print a catalog example
//   - config: show, locate, create or change the configuration
//   - version, help
//
// Global flags (--url, --tier, --raw, --config, --debug, --json) are
// accepted before or after the command name and override the config file.
package cli
