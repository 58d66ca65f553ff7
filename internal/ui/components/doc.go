// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides reusable UI pieces for the SimpleDoc editor.

Each component is styled through a *styles.Theme and renders to a string;
the editor model composes them into the final frame.

# Components

Header (header.go) - Title bar with tier and view tabs.
StatusBar (statusbar.go) - Bottom bar with session state, tier, view and shortcuts.
ToastManager (toast.go) - Self-dismissing notifications with an exit transition.

# Notifications

	toasts := components.NewToastManager()
	toasts.Notify("Compiled", components.SeveritySuccess, components.DefaultLifetime)

	// In Update, on every components.ToastTickMsg:
	toasts.Tick(msg.Time)
	return m, components.ToastTickCmd()

	// In View:
	overlay := components.RenderToastStack(toasts.Toasts(), width, height, time.Now())

A lifetime of zero or less keeps the notification until Dismiss is called.

# Helper Functions

The package includes shared helper functions in helpers.go:
  - toStr() - Integer to string conversion without fmt
  - formatDuration() - Compile duration formatting
*/
package components
