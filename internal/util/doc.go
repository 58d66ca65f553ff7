// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across the editor.
//
// # Key Functions
//
// Text:
//   - StringWidth, TruncateWidth: terminal-cell aware measurement
//   - FirstLine, NormalizeNewlines: line handling for loaded sources
//
// File Operations:
//   - AtomicWriteFile: Crash-safe file writing with fsync
//
// # Usage
//
//	// Fit a server URL into the status bar
//	label := util.TruncateWidth(url, 24)
//
//	// Write files atomically to prevent data loss
//	err := util.AtomicWriteFile(path, data, 0644)
package util
