// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package editor

import (
	"github.com/jeranaias/simpledoc-tui/internal/compiler"
	"github.com/jeranaias/simpledoc-tui/internal/config"
	"github.com/jeranaias/simpledoc-tui/internal/session"
)

// =============================================================================
// MESSAGES
// =============================================================================

// CompileResultMsg carries the outcome of one compile request.
type CompileResultMsg struct {
	Ticket session.Ticket
	Result *compiler.Result
	Err    error
}

// ConfigReloadedMsg is sent when the config watcher produced a reload.
type ConfigReloadedMsg struct {
	Reload config.Reload
}

// =============================================================================
// USER-FACING TEXT
// =============================================================================

const (
	msgEmptySource    = "The editor is empty. Write something to compile."
	msgCompiled       = "Compilation successful"
	msgCompileFailed  = "Error: "
	msgTransportError = "Error communicating with the server: "
	msgCleared        = "Editor cleared."
	msgNoOutput       = "Press ctrl+j to compile."
	msgConfigReloaded = "Configuration reloaded"
	msgConfigInvalid  = "Configuration not reloaded: "
)
