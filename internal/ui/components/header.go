// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/simpledoc-tui/internal/catalog"
	"github.com/jeranaias/simpledoc-tui/internal/display"
	"github.com/jeranaias/simpledoc-tui/internal/ui/styles"
)

// =============================================================================
// HEADER COMPONENT - title bar with tier and view tabs
// =============================================================================

// Header is the single-line title bar of the editor.
type Header struct {
	Title string
	Tier  catalog.Tier
	Mode  display.ViewMode
	Width int
	theme *styles.Theme
}

// NewHeader creates a new Header component with default values
func NewHeader(theme *styles.Theme) *Header {
	return &Header{
		Title: "SimpleDoc",
		Tier:  catalog.DefaultTier,
		Mode:  display.ModePreview,
		Width: 80,
		theme: theme,
	}
}

// SetWidth updates the header width
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// SetTier updates the selected tier
func (h *Header) SetTier(tier catalog.Tier) {
	h.Tier = tier
}

// SetMode updates the visible output mode
func (h *Header) SetMode(mode display.ViewMode) {
	h.Mode = mode
}

// View renders the header.
func (h *Header) View() string {
	width := h.Width
	if width < 40 {
		width = 40
	}

	accent := lipgloss.NewStyle().Foreground(styles.Purple)
	brand := accent.Render("< ") + h.theme.HeaderTitle.Render(h.Title) + accent.Render(" >")

	tiers := make([]string, 0, len(catalog.Tiers))
	for _, t := range catalog.Tiers {
		label := t.String()
		if width >= 70 {
			label += " " + t.Label()
		}
		tiers = append(tiers, tab(label, t == h.Tier))
	}

	modes := []string{
		tab("Preview", h.Mode == display.ModePreview),
		tab("HTML", h.Mode == display.ModeRaw),
	}

	right := strings.Join(tiers, "") + "  " + strings.Join(modes, "")
	gap := width - 2 - lipgloss.Width(brand) - lipgloss.Width(right)
	if gap < 1 {
		// Too narrow for everything: drop the mode tabs
		right = strings.Join(tiers, "")
		gap = width - 2 - lipgloss.Width(brand) - lipgloss.Width(right)
		if gap < 1 {
			gap = 1
		}
	}

	return h.theme.Header.Width(width).Render(brand + strings.Repeat(" ", gap) + right)
}

// tab renders one tab label, highlighted when active.
func tab(label string, active bool) string {
	if active {
		return lipgloss.NewStyle().
			Foreground(styles.TextInverse).
			Background(styles.Cyan).
			Bold(true).
			Padding(0, 1).
			Render(label)
	}
	return lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Padding(0, 1).
		Render(label)
}
