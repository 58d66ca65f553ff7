// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/simpledoc-tui/internal/catalog"
	"github.com/jeranaias/simpledoc-tui/internal/display"
	"github.com/jeranaias/simpledoc-tui/internal/session"
	"github.com/jeranaias/simpledoc-tui/internal/ui/styles"
	"github.com/jeranaias/simpledoc-tui/internal/util"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// StatusBar is the bottom bar showing session state and shortcuts.
type StatusBar struct {
	State        session.State
	Tier         catalog.Tier
	Mode         display.ViewMode
	Dirty        bool
	Endpoint     string
	LastDuration time.Duration
	// Spinner is the current spinner frame, shown while compiling.
	Spinner       string
	Width         int
	ShowShortcuts bool
	theme         *styles.Theme
}

// NewStatusBar creates a new StatusBar component
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{
		State:         session.StateEmpty,
		Tier:          catalog.DefaultTier,
		Mode:          display.ModePreview,
		Width:         80,
		ShowShortcuts: true,
		theme:         theme,
	}
}

// SetWidth updates the status bar width
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// Sync copies the displayed values from sess.
func (s *StatusBar) Sync(sess *session.Session) {
	s.State = sess.State()
	s.Tier = sess.Tier()
	s.Dirty = sess.Dirty() && sess.HasOutput()
	s.LastDuration = sess.LastDuration()
}

// View renders the status bar
func (s *StatusBar) View() string {
	if s.Width < 60 {
		return s.viewNarrow()
	}
	return s.viewWide()
}

// viewNarrow renders a compact status bar for narrow terminals
// Format: [OK] COMPILED* T3 preview
func (s *StatusBar) viewNarrow() string {
	parts := []string{s.renderState(), "T" + s.Tier.String(), s.Mode.String()}
	return s.theme.StatusBar.Width(s.Width).Render(strings.Join(parts, " "))
}

// viewWide renders a full status bar
// Format: [OK] COMPILED (120ms) | Tier 3 Advanced | preview | url ... shortcuts
func (s *StatusBar) viewWide() string {
	separator := lipgloss.NewStyle().Foreground(styles.Overlay).Render(" | ")

	state := s.renderState()
	if s.State == session.StateCompiled && s.LastDuration > 0 {
		state += s.theme.StatusKey.Render(" (" + formatDuration(s.LastDuration) + ")")
	}

	left := strings.Join([]string{
		state,
		s.theme.StatusKey.Render("Tier ") + s.theme.StatusValue.Render(s.Tier.String()+" "+s.Tier.Label()),
		s.theme.StatusValue.Render(s.Mode.String()),
	}, separator)

	right := ""
	if s.ShowShortcuts {
		right = s.renderShortcuts()
	}

	// Endpoint takes whatever room is left
	inner := s.Width - 2
	room := inner - lipgloss.Width(left) - lipgloss.Width(right) - 3*2
	if s.Endpoint != "" && room > 10 {
		left += separator + s.theme.StatusKey.Render(util.TruncateWidth(s.Endpoint, room))
	}

	gap := inner - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		right = ""
		gap = 1
	}
	return s.theme.StatusBar.Width(s.Width).Render(left + strings.Repeat(" ", gap) + right)
}

// renderState renders the state with its shape indicator.
// ACCESSIBILITY: Uses distinct shapes alongside colors
func (s *StatusBar) renderState() string {
	var icon string
	var style lipgloss.Style
	switch s.State {
	case session.StateCompiled:
		icon, style = styles.StatusIndicators.Success, s.theme.StateOK
	case session.StateFailed:
		icon, style = styles.StatusIndicators.Error, s.theme.StateFailed
	case session.StateCompiling:
		icon, style = styles.StatusIndicators.Pending, s.theme.StateBusy
		if s.Spinner != "" {
			icon = s.Spinner
		}
	default:
		icon, style = styles.StatusIndicators.Info, s.theme.StateIdle
	}

	out := style.Render(icon + " " + s.State.String())
	if s.Dirty {
		out += s.theme.DirtyMarker.Render("*")
	}
	return out
}

// renderShortcuts renders keyboard shortcut hints
func (s *StatusBar) renderShortcuts() string {
	shortcuts := []string{
		s.theme.ShortcutKey.Render("^J") + s.theme.ShortcutDesc.Render(" compile"),
		s.theme.ShortcutKey.Render("F2") + s.theme.ShortcutDesc.Render(" view"),
		s.theme.ShortcutKey.Render("F1") + s.theme.ShortcutDesc.Render(" help"),
	}
	return strings.Join(shortcuts, "  ")
}
