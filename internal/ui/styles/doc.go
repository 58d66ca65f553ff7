// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the SimpleDoc editor.

# Color System (colors.go)

Accent colors (Purple, Cyan, Emerald), semantic colors (Rose for errors,
Amber for warnings), surfaces and text tones. Every color is a Lip Gloss
AdaptiveColor so light and dark terminals both read well.

StatusIndicators pairs each state with an ASCII shape ([OK], [X], [!], [i])
for colorblind users.

# Theme System (theme.go)

Theme bundles the lipgloss styles for the header, status bar, panes, the
rendered preview (headings, paragraphs, lists, code) and the help overlay.
NewTheme probes the terminal through termenv; NewPlainTheme skips the probe
for headless use and tests.

	theme := styles.NewTheme()
	title := theme.Heading1.Render("SimpleDoc")
*/
package styles
