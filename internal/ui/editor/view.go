// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package editor

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/simpledoc-tui/internal/catalog"
	"github.com/jeranaias/simpledoc-tui/internal/display"
	"github.com/jeranaias/simpledoc-tui/internal/ui/components"
)

// =============================================================================
// LAYOUT
// =============================================================================

const (
	// wideLayoutWidth is the terminal width from which the panes sit side
	// by side instead of stacked.
	wideLayoutWidth = 90
	// maxVisibleToasts caps the notifications drawn at once. Older live
	// ones are counted in a "+N more" line.
	maxVisibleToasts = 3
	minBodyHeight    = 6
)

// paneSize is the outer size of one bordered pane.
type paneSize struct {
	width  int
	height int
}

// paneLayout is the computed geometry of the body.
type paneLayout struct {
	editor  paneSize
	output  paneSize
	body    int
	stacked bool
}

// layout recomputes pane sizes from the terminal size and the current
// notification stack, and syncs the chrome with the session.
func (m *Model) layout() {
	m.header.SetWidth(m.width)
	m.statusbar.SetWidth(m.width)
	m.statusbar.Sync(m.sess)
	m.statusbar.Mode = m.disp.Mode()
	m.statusbar.Spinner = ""
	if m.sess.InFlight() > 0 {
		m.statusbar.Spinner = m.spinner.View()
	}

	m.toastUI = m.renderToasts()
	toastHeight := 0
	if m.toastUI != "" {
		toastHeight = lipgloss.Height(m.toastUI)
	}

	body := m.height - lipgloss.Height(m.header.View()) - 1 - toastHeight
	if body < minBodyHeight {
		body = minBodyHeight
	}

	p := paneLayout{body: body}
	if m.width >= wideLayoutWidth {
		p.editor = paneSize{width: m.width / 2, height: body}
		p.output = paneSize{width: m.width - m.width/2, height: body}
	} else {
		p.stacked = true
		p.editor = paneSize{width: m.width, height: body / 2}
		p.output = paneSize{width: m.width, height: body - body/2}
	}
	m.panes = p

	// Border on each side plus one title line
	m.input.SetWidth(atLeast(p.editor.width-2, 10))
	m.input.SetHeight(atLeast(p.editor.height-3, 1))
	m.output.Width = atLeast(p.output.width-2, 10)
	m.output.Height = atLeast(p.output.height-3, 1)

	// HelpBox has a border and 2x1 padding
	m.help.Width = atLeast(m.width-6, 10)
	m.help.Height = atLeast(body-4, 1)
}

func atLeast(v, floor int) int {
	if v < floor {
		return floor
	}
	return v
}

// refreshOutput re-renders the visible surface into the output viewport.
func (m *Model) refreshOutput() {
	width := m.output.Width
	style := m.cfg.UI.HighlightStyle

	var content string
	raw := m.disp.Raw()
	switch {
	case m.disp.RawVisible() && raw != "":
		if m.cfg.UI.HighlightRaw {
			raw = display.HighlightHTML(raw, style)
		}
		content = lipgloss.NewStyle().Width(width).Render(raw)
	default:
		content = display.RenderDocument(m.disp.Preview(), m.theme, width, style)
	}
	m.output.SetContent(content)
}

// refreshHelp renders the help overlay with glamour.
func (m *Model) refreshHelp() {
	md := helpMarkdown(m.keys)

	opts := []glamour.TermRendererOption{glamour.WithWordWrap(m.help.Width)}
	switch m.cfg.UI.Theme {
	case "dark", "light":
		opts = append(opts, glamour.WithStandardStyle(m.cfg.UI.Theme))
	default:
		opts = append(opts, glamour.WithAutoStyle())
	}

	rendered := md
	if r, err := glamour.NewTermRenderer(opts...); err == nil {
		if out, err := r.Render(md); err == nil {
			rendered = out
		}
	}
	m.help.SetContent(rendered)
}

// helpMarkdown lists the key bindings followed by the syntax guide.
func helpMarkdown(keys KeyMap) string {
	var b strings.Builder
	b.WriteString("# Keyboard shortcuts\n\n")
	b.WriteString("| Key | Action |\n|---|---|\n")
	for _, group := range keys.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			b.WriteString("| `" + h.Key + "` | " + h.Desc + " |\n")
		}
	}
	b.WriteString("\nTab switches between the editor and the output pane; ")
	b.WriteString("arrows and PgUp/PgDn scroll the output when it has focus.\n\n")
	b.WriteString(catalog.SyntaxGuide())
	return b.String()
}

func (m *Model) renderToasts() string {
	toasts := m.toasts.Toasts()
	if len(toasts) == 0 {
		return ""
	}
	hidden := 0
	if len(toasts) > maxVisibleToasts {
		hidden = len(toasts) - maxVisibleToasts
		toasts = toasts[hidden:]
	}
	stack := components.RenderToastStack(toasts, m.width, 0, m.now())
	if hidden > 0 {
		stack = lipgloss.JoinVertical(lipgloss.Right, components.RenderToastOverflow(hidden), stack)
	}
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Right, stack)
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the editor.
func (m Model) View() string {
	parts := []string{m.header.View()}

	if m.showHelp {
		parts = append(parts, m.theme.HelpBox.
			Width(atLeast(m.width-2, 10)).
			Height(atLeast(m.panes.body-2, 1)).
			Render(m.help.View()))
	} else {
		editor := m.renderPane("Source  "+m.sess.Tier().Label(), m.input.View(), m.panes.editor, m.focus == focusEditor)
		output := m.renderPane(m.outputTitle(), m.output.View(), m.panes.output, m.focus == focusOutput)
		if m.panes.stacked {
			parts = append(parts, lipgloss.JoinVertical(lipgloss.Left, editor, output))
		} else {
			parts = append(parts, lipgloss.JoinHorizontal(lipgloss.Top, editor, output))
		}
	}

	if m.toastUI != "" {
		parts = append(parts, m.toastUI)
	}
	parts = append(parts, m.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) outputTitle() string {
	title := "Preview"
	if m.disp.RawVisible() {
		title = "HTML"
	}
	if m.sess.Dirty() && m.sess.HasOutput() {
		title += m.theme.DirtyMarker.Render(" (out of date)")
	}
	return title
}

func (m Model) renderPane(title, content string, size paneSize, focused bool) string {
	style := m.theme.PaneBlurred
	if focused {
		style = m.theme.PaneFocused
	}
	return style.
		Width(atLeast(size.width-2, 1)).
		Height(atLeast(size.height-2, 1)).
		Render(m.theme.PaneTitle.Render(title) + "\n" + content)
}
