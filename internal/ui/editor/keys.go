// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package editor

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines the editor's keyboard bindings. Every binding here is
// handled before the text area sees the key.
type KeyMap struct {
	Compile     key.Binding
	LoadExample key.Binding
	Clear       key.Binding
	ToggleView  key.Binding
	Tier1       key.Binding
	Tier2       key.Binding
	Tier3       key.Binding
	CycleTier   key.Binding
	SwitchFocus key.Binding
	Dismiss     key.Binding
	Help        key.Binding
	CloseHelp   key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the default bindings.
//
// Terminals cannot tell ctrl+enter from enter, so compile is ctrl+j (the
// line feed most terminals send for ctrl+enter) with ctrl+s and F5 as
// alternatives.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Compile: key.NewBinding(
			key.WithKeys("ctrl+j", "ctrl+s", "f5"),
			key.WithHelp("C-j/C-s/F5", "compile"),
		),
		LoadExample: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("C-o", "load example"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("C-l", "clear editor"),
		),
		ToggleView: key.NewBinding(
			key.WithKeys("f2", "ctrl+r"),
			key.WithHelp("F2/C-r", "preview / HTML"),
		),
		Tier1: key.NewBinding(
			key.WithKeys("alt+1"),
			key.WithHelp("M-1", "tier 1"),
		),
		Tier2: key.NewBinding(
			key.WithKeys("alt+2"),
			key.WithHelp("M-2", "tier 2"),
		),
		Tier3: key.NewBinding(
			key.WithKeys("alt+3"),
			key.WithHelp("M-3", "tier 3"),
		),
		CycleTier: key.NewBinding(
			key.WithKeys("f3"),
			key.WithHelp("F3", "next tier"),
		),
		SwitchFocus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "editor / output"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("C-x", "dismiss notification"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("F1", "help"),
		),
		CloseHelp: key.NewBinding(
			key.WithKeys("esc", "f1", "q"),
			key.WithHelp("Esc", "close help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("C-c", "quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the status line.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Compile, k.ToggleView, k.Help}
}

// FullHelp returns the bindings grouped for the help overlay.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Compile, k.LoadExample, k.Clear},
		{k.ToggleView, k.SwitchFocus, k.Dismiss},
		{k.Tier1, k.Tier2, k.Tier3, k.CycleTier},
		{k.Help, k.Quit},
	}
}
