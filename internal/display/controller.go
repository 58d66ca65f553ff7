// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package display

import "strings"

// ViewMode selects which output surface is visible.
type ViewMode int

const (
	// ModePreview shows the compiled HTML rendered as markup.
	ModePreview ViewMode = iota
	// ModeRaw shows the compiled HTML as literal text.
	ModeRaw
)

// String returns the mode name used in config and the status bar.
func (m ViewMode) String() string {
	if m == ModeRaw {
		return "raw"
	}
	return "preview"
}

// Toggle returns the other mode.
func (m ViewMode) Toggle() ViewMode {
	if m == ModeRaw {
		return ModePreview
	}
	return ModeRaw
}

// ParseViewMode parses "raw", "html", "preview" or "rendered".
func ParseViewMode(s string) (ViewMode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "raw", "html":
		return ModeRaw, true
	case "preview", "rendered":
		return ModePreview, true
	}
	return ModePreview, false
}

// Controller owns the raw and preview surfaces and the visibility switch.
type Controller struct {
	mode    ViewMode
	raw     string
	preview *Document
}

// NewController creates a controller showing mode, with empty surfaces.
func NewController(mode ViewMode) *Controller {
	return &Controller{mode: mode, preview: &Document{}}
}

// Mode returns the visible mode.
func (c *Controller) Mode() ViewMode {
	return c.mode
}

// SetMode shows one surface and hides the other. Surfaces are untouched.
func (c *Controller) SetMode(mode ViewMode) {
	c.mode = mode
}

// Toggle switches to the other surface and returns the new mode.
func (c *Controller) Toggle() ViewMode {
	c.mode = c.mode.Toggle()
	return c.mode
}

// RawVisible reports whether the raw surface is shown.
func (c *Controller) RawVisible() bool {
	return c.mode == ModeRaw
}

// PreviewVisible reports whether the preview surface is shown.
func (c *Controller) PreviewVisible() bool {
	return c.mode == ModePreview
}

// Render writes html to both surfaces regardless of the visible mode.
// The raw surface keeps html verbatim. Markup the parser cannot read is
// still shown raw; the preview then falls back to the text content.
func (c *Controller) Render(html string) {
	c.raw = html
	doc, err := Parse(html)
	if err != nil {
		doc = &Document{Blocks: []Block{{Kind: BlockParagraph, Spans: []Span{{Text: html}}}}}
	}
	c.preview = doc
}

// Reset empties the raw surface and shows placeholder as a notice in the
// preview. An empty placeholder leaves the preview blank.
func (c *Controller) Reset(placeholder string) {
	c.raw = ""
	c.preview = &Document{}
	if placeholder != "" {
		c.preview.Blocks = []Block{{Kind: BlockNotice, Text: placeholder}}
	}
}

// Raw returns the raw surface contents.
func (c *Controller) Raw() string {
	return c.raw
}

// Preview returns the preview surface document.
func (c *Controller) Preview() *Document {
	return c.preview
}
