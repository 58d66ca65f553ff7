// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the editor.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// HEADER / STATUS BAR
	// ==========================================================================

	Header       lipgloss.Style
	HeaderTitle  lipgloss.Style
	StatusBar    lipgloss.Style
	StatusKey    lipgloss.Style
	StatusValue  lipgloss.Style
	StateOK      lipgloss.Style
	StateBusy    lipgloss.Style
	StateFailed  lipgloss.Style
	StateIdle    lipgloss.Style
	DirtyMarker  lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style

	// ==========================================================================
	// PANES
	// ==========================================================================

	PaneFocused lipgloss.Style
	PaneBlurred lipgloss.Style
	PaneTitle   lipgloss.Style

	// ==========================================================================
	// PREVIEW RENDERING
	// ==========================================================================

	Heading1   lipgloss.Style
	Heading2   lipgloss.Style
	Heading3   lipgloss.Style
	Paragraph  lipgloss.Style
	Bold       lipgloss.Style
	Italic     lipgloss.Style
	Link       lipgloss.Style
	InlineCode lipgloss.Style
	CodeBlock  lipgloss.Style
	ListBullet lipgloss.Style
	Image      lipgloss.Style
	Notice     lipgloss.Style

	// ==========================================================================
	// HELP OVERLAY
	// ==========================================================================

	HelpBox lipgloss.Style
}

// NewTheme creates a new theme with all styles configured.
func NewTheme() *Theme {
	// Detect terminal capabilities
	colorProfile := termenv.ColorProfile()
	hasTrueColor := colorProfile == termenv.TrueColor
	isDark := termenv.HasDarkBackground()

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: hasTrueColor,
		ColorProfile: colorProfile,
	}

	t.initStyles()
	return t
}

// NewPlainTheme creates a theme without probing the terminal. Used by
// headless commands and tests.
func NewPlainTheme() *Theme {
	t := &Theme{IsDark: true, ColorProfile: termenv.Ascii}
	t.initStyles()
	return t
}

// SetSize records the terminal dimensions.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan).
		Background(SurfaceDim).
		Padding(0, 1)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple)

	t.StatusBar = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Background(SurfaceDim).
		Padding(0, 1)

	t.StatusKey = lipgloss.NewStyle().Foreground(TextMuted)
	t.StatusValue = lipgloss.NewStyle().Foreground(TextPrimary).Bold(true)
	t.StateOK = lipgloss.NewStyle().Foreground(Emerald).Bold(true)
	t.StateBusy = lipgloss.NewStyle().Foreground(Cyan).Bold(true)
	t.StateFailed = lipgloss.NewStyle().Foreground(Rose).Bold(true)
	t.StateIdle = lipgloss.NewStyle().Foreground(TextSecondary)
	t.DirtyMarker = lipgloss.NewStyle().Foreground(Amber).Bold(true)
	t.ShortcutKey = lipgloss.NewStyle().Foreground(Cyan).Bold(true)
	t.ShortcutDesc = lipgloss.NewStyle().Foreground(TextMuted)

	t.PaneFocused = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Cyan)
	t.PaneBlurred = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(OverlayDim)
	t.PaneTitle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Bold(true)

	t.Heading1 = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple).
		Underline(true).
		MarginBottom(1)
	t.Heading2 = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)
	t.Heading3 = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)
	t.Paragraph = lipgloss.NewStyle().Foreground(TextPrimary)
	t.Bold = lipgloss.NewStyle().Bold(true)
	t.Italic = lipgloss.NewStyle().Italic(true)
	t.Link = lipgloss.NewStyle().Foreground(LinkColor).Underline(true)
	t.InlineCode = lipgloss.NewStyle().Foreground(Amber)
	t.CodeBlock = lipgloss.NewStyle().
		Background(SurfaceBright).
		Padding(0, 1)
	t.ListBullet = lipgloss.NewStyle().Foreground(Purple)
	t.Image = lipgloss.NewStyle().Foreground(TextSecondary).Italic(true)
	t.Notice = lipgloss.NewStyle().
		Foreground(Cyan).
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(Cyan).
		PaddingLeft(1)

	t.HelpBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Purple).
		Padding(1, 2)
}
