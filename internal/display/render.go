// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package display

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/simpledoc-tui/internal/ui/styles"
)

// DefaultHighlightStyle is the chroma style used when none is configured.
const DefaultHighlightStyle = "monokai"

// =============================================================================
// PREVIEW RENDERING
// =============================================================================

// RenderDocument draws doc for the terminal at the given width.
func RenderDocument(doc *Document, theme *styles.Theme, width int, highlightStyle string) string {
	if doc.Empty() {
		return ""
	}
	if width < 20 {
		width = 20
	}

	parts := make([]string, 0, len(doc.Blocks))
	for _, b := range doc.Blocks {
		parts = append(parts, renderBlock(b, theme, width, highlightStyle))
	}
	return strings.Join(parts, "\n\n")
}

func renderBlock(b Block, theme *styles.Theme, width int, highlightStyle string) string {
	switch b.Kind {
	case BlockHeading:
		style := theme.Heading3
		prefix := ""
		switch b.Level {
		case 1:
			style = theme.Heading1
		case 2:
			style = theme.Heading2
			prefix = "▌ "
		}
		return style.Width(width).Render(prefix + b.Text)

	case BlockList:
		lines := make([]string, 0, len(b.Items))
		for _, it := range b.Items {
			marker := "•"
			if b.Ordered {
				marker = fmt.Sprintf("%d.", it.Number)
			}
			body := lipgloss.NewStyle().Width(width - 4).Render(renderSpans(it.Spans, theme))
			lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, theme.ListBullet.Render(marker+" "), body))
		}
		return strings.Join(lines, "\n")

	case BlockCode:
		return theme.CodeBlock.Width(width).Render(highlight(b.Text, "", highlightStyle))

	case BlockImage:
		return theme.Image.Render(imageLabel(b.Text, b.Src))

	case BlockNotice:
		return theme.Notice.Render(styles.StatusIndicators.Info + " " + b.Text)

	default:
		return theme.Paragraph.Width(width).Render(renderSpans(b.Spans, theme))
	}
}

func renderSpans(spans []Span, theme *styles.Theme) string {
	var sb strings.Builder
	for _, s := range spans {
		if s.Image {
			sb.WriteString(theme.Image.Render(imageLabel(s.Text, s.Href)))
			continue
		}
		style := lipgloss.NewStyle()
		if s.Bold {
			style = style.Inherit(theme.Bold)
		}
		if s.Italic {
			style = style.Inherit(theme.Italic)
		}
		if s.Code {
			style = style.Inherit(theme.InlineCode)
		}
		if s.Href != "" {
			style = style.Inherit(theme.Link)
		}
		sb.WriteString(style.Render(s.Text))
		if s.Href != "" && s.Href != s.Text {
			sb.WriteString(theme.Image.Render(" <" + s.Href + ">"))
		}
	}
	return sb.String()
}

func imageLabel(alt, src string) string {
	if alt == "" {
		alt = "image"
	}
	if src == "" {
		return "[image: " + alt + "]"
	}
	return "[image: " + alt + " <" + src + ">]"
}

// =============================================================================
// SYNTAX HIGHLIGHTING (Chroma-based)
// =============================================================================

// HighlightHTML colours html for the raw surface. The input is unchanged
// if highlighting fails.
func HighlightHTML(html, style string) string {
	return highlight(html, "html", style)
}

// highlight applies syntax highlighting using the chroma library.
// An empty language lets chroma guess.
func highlight(code, language, styleName string) string {
	var lexer chroma.Lexer
	if language != "" {
		lexer = lexers.Get(language)
	}
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	if styleName == "" {
		styleName = DefaultHighlightStyle
	}
	style := chromaStyles.Get(styleName)
	if style == nil {
		style = chromaStyles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}
	return buf.String()
}
