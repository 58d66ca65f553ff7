// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package editor is the interactive SimpleDoc editor.
//
// The model pairs a source editor with an output pane showing either the
// rendered preview or the raw HTML returned by the compile service. Compile
// requests run as tea.Cmds and come back as CompileResultMsg; responses for
// superseded requests are dropped when the session discards stale results.
// Notifications are toasts that expire on their own.
package editor
