// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// This file implements non-blocking notification toasts. Toasts appear in the
// bottom-right corner, expire on their own and play a short exit transition
// before they are removed, so the editor stays usable while they are shown.

package components

import (
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/simpledoc-tui/internal/ui/styles"
)

// =============================================================================
// TOAST TYPES
// =============================================================================

// Severity is the visual category of a notification.
type Severity int

const (
	SeveritySuccess Severity = iota
	SeverityWarning
	SeverityError
	SeverityInfo
)

// String returns the severity name.
func (s Severity) String() string {
	switch s {
	case SeveritySuccess:
		return "success"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "info"
	}
}

// Phase is the lifecycle stage of a toast.
type Phase int

const (
	// PhaseVisible toasts are fully shown.
	PhaseVisible Phase = iota
	// PhaseLeaving toasts are playing their exit transition.
	PhaseLeaving
)

// DefaultLifetime is how long a toast stays before it starts leaving.
const DefaultLifetime = 5 * time.Second

// ExitTransition is how long a leaving toast stays on screen.
const ExitTransition = 300 * time.Millisecond

// TickInterval is how often ToastTickCmd fires.
const TickInterval = 100 * time.Millisecond

// Toast is one notification. A Lifetime of zero or less never expires.
type Toast struct {
	ID        int
	Message   string
	Severity  Severity
	CreatedAt time.Time
	Lifetime  time.Duration
	Phase     Phase
	LeavingAt time.Time
}

// Persistent reports whether the toast stays until dismissed.
func (t Toast) Persistent() bool {
	return t.Lifetime <= 0
}

// TimeRemaining returns how long until the toast starts leaving.
func (t Toast) TimeRemaining(now time.Time) time.Duration {
	if t.Persistent() || t.Phase == PhaseLeaving {
		return 0
	}
	remaining := t.Lifetime - now.Sub(t.CreatedAt)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// =============================================================================
// TOAST MANAGER
// =============================================================================

// ToastManager owns the list of live toasts, oldest first.
type ToastManager struct {
	toasts []Toast
	nextID int
	now    func() time.Time
	mutex  sync.Mutex
}

// NewToastManager creates a new toast manager.
func NewToastManager() *ToastManager {
	return &ToastManager{
		toasts: make([]Toast, 0),
		nextID: 1,
		now:    time.Now,
	}
}

// SetClock replaces the time source. Used by tests.
func (m *ToastManager) SetClock(now func() time.Time) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.now = now
}

// Notify shows message and returns the toast ID. Every call creates a new
// toast, including repeats of the same message.
func (m *ToastManager) Notify(message string, severity Severity, lifetime time.Duration) int {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	toast := Toast{
		ID:        m.nextID,
		Message:   message,
		Severity:  severity,
		CreatedAt: m.now(),
		Lifetime:  lifetime,
		Phase:     PhaseVisible,
	}
	m.nextID++
	m.toasts = append(m.toasts, toast)
	return toast.ID
}

// Dismiss starts the exit transition of a visible toast. It reports
// whether a toast was found in the visible phase.
func (m *ToastManager) Dismiss(id int) bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for i := range m.toasts {
		if m.toasts[i].ID == id && m.toasts[i].Phase == PhaseVisible {
			m.startLeaving(i, m.now())
			return true
		}
	}
	return false
}

// DismissLatest dismisses the newest visible toast.
func (m *ToastManager) DismissLatest() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for i := len(m.toasts) - 1; i >= 0; i-- {
		if m.toasts[i].Phase == PhaseVisible {
			m.startLeaving(i, m.now())
			return true
		}
	}
	return false
}

func (m *ToastManager) startLeaving(i int, at time.Time) {
	m.toasts[i].Phase = PhaseLeaving
	m.toasts[i].LeavingAt = at
}

// Tick advances every toast to now: expired toasts start leaving and
// toasts whose exit transition has finished are removed. It reports
// whether anything changed.
func (m *ToastManager) Tick(now time.Time) bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	changed := false
	active := m.toasts[:0]
	for _, toast := range m.toasts {
		if toast.Phase == PhaseVisible && !toast.Persistent() {
			if expiry := toast.CreatedAt.Add(toast.Lifetime); !now.Before(expiry) {
				toast.Phase = PhaseLeaving
				toast.LeavingAt = expiry
				changed = true
			}
		}
		if toast.Phase == PhaseLeaving && !now.Before(toast.LeavingAt.Add(ExitTransition)) {
			changed = true
			continue
		}
		active = append(active, toast)
	}
	m.toasts = active
	return changed
}

// Toasts returns a copy of the live toasts, oldest first.
func (m *ToastManager) Toasts() []Toast {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	result := make([]Toast, len(m.toasts))
	copy(result, m.toasts)
	return result
}

// HasToasts returns true if there are any live toasts.
func (m *ToastManager) HasToasts() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.toasts) > 0
}

// Clear removes all toasts immediately.
func (m *ToastManager) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.toasts = make([]Toast, 0)
}

// =============================================================================
// TOAST MESSAGES
// =============================================================================

// ToastTickMsg is sent periodically to update toast state.
type ToastTickMsg struct {
	Time time.Time
}

// ToastTickCmd returns a command that ticks toasts every TickInterval.
func ToastTickCmd() tea.Cmd {
	return tea.Tick(TickInterval, func(t time.Time) tea.Msg {
		return ToastTickMsg{Time: t}
	})
}

// =============================================================================
// TOAST RENDERING
// =============================================================================

// RenderToast renders a single toast notification.
func RenderToast(toast Toast, width int, now time.Time) string {
	maxWidth := 60
	if width > 0 && width-8 < maxWidth {
		maxWidth = width - 8
	}
	if maxWidth < 30 {
		maxWidth = 30
	}

	var color lipgloss.AdaptiveColor
	var icon string
	switch toast.Severity {
	case SeverityError:
		color, icon = styles.Rose, styles.StatusIndicators.Error
	case SeverityWarning:
		color, icon = styles.Amber, styles.StatusIndicators.Warning
	case SeveritySuccess:
		color, icon = styles.Emerald, styles.StatusIndicators.Success
	default:
		color, icon = styles.Cyan, styles.StatusIndicators.Info
	}

	textColor := styles.TextPrimary
	if toast.Phase == PhaseLeaving {
		color = styles.OverlayDim
		textColor = styles.TextMuted
	}

	iconStyle := lipgloss.NewStyle().Foreground(color).Bold(true)
	messageStyle := lipgloss.NewStyle().Foreground(textColor)

	message := wrapToastText(toast.Message, maxWidth-10)
	content := lipgloss.JoinHorizontal(lipgloss.Top, iconStyle.Render(icon+" "), messageStyle.Render(message))

	hintStyle := lipgloss.NewStyle().Foreground(styles.TextMuted).Italic(true)
	hints := []string{"[ctrl+x] Dismiss"}
	if remaining := toast.TimeRemaining(now); remaining > 0 {
		hints = append(hints, toStr(int(remaining.Seconds()+0.999))+"s")
	}
	content += "\n" + hintStyle.Render(strings.Join(hints, "  "))

	toastStyle := lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 2).
		MaxWidth(maxWidth)

	return toastStyle.Render(content)
}

// RenderToastStack renders toasts stacked vertically, newest at the bottom,
// positioned in the bottom-right corner.
func RenderToastStack(toasts []Toast, width, height int, now time.Time) string {
	if len(toasts) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(toasts))
	for _, toast := range toasts {
		rendered = append(rendered, RenderToast(toast, width, now))
	}

	stack := lipgloss.JoinVertical(lipgloss.Right, rendered...)
	positioned := lipgloss.NewStyle().
		MarginRight(2).
		MarginBottom(1).
		Render(stack)

	if width > 0 && height > 0 {
		return lipgloss.Place(width, height, lipgloss.Right, lipgloss.Bottom, positioned)
	}
	return positioned
}

// RenderToastOverflow renders the "+N more" line shown above a stack that
// had to leave out hidden older toasts.
func RenderToastOverflow(hidden int) string {
	if hidden <= 0 {
		return ""
	}
	return lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Italic(true).
		MarginRight(2).
		Render("+" + toStr(hidden) + " more")
}

// wrapToastText word-wraps text to maxWidth display cells.
func wrapToastText(text string, maxWidth int) string {
	if maxWidth <= 0 || runewidth.StringWidth(text) <= maxWidth {
		return text
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return text
	}

	var lines []string
	var current strings.Builder
	currentWidth := 0

	for _, word := range words {
		w := runewidth.StringWidth(word)
		switch {
		case currentWidth == 0:
			current.WriteString(word)
			currentWidth = w
		case currentWidth+1+w <= maxWidth:
			current.WriteString(" ")
			current.WriteString(word)
			currentWidth += 1 + w
		default:
			lines = append(lines, current.String())
			current.Reset()
			current.WriteString(word)
			currentWidth = w
		}
	}
	if current.Len() > 0 {
		lines = append(lines, current.String())
	}
	return strings.Join(lines, "\n")
}
