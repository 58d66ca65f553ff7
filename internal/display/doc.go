// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package display keeps the two output surfaces of the editor in sync.
//
// The raw surface holds the compiled HTML as literal text. The preview
// surface holds the same HTML interpreted as markup: Parse turns it into a
// Document of structural blocks (headings, paragraphs, lists, code) which
// RenderDocument draws for the terminal.
//
// Exactly one surface is visible at a time, selected by ViewMode. Render
// always writes both surfaces, so switching modes later shows the latest
// compile without recompiling.
package display
