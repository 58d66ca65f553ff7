// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package display

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// BlockKind identifies a structural element of the preview.
type BlockKind int

const (
	BlockParagraph BlockKind = iota
	BlockHeading
	BlockList
	BlockCode
	BlockImage
	BlockNotice
)

// String returns the block kind name.
func (k BlockKind) String() string {
	switch k {
	case BlockHeading:
		return "heading"
	case BlockList:
		return "list"
	case BlockCode:
		return "code"
	case BlockImage:
		return "image"
	case BlockNotice:
		return "notice"
	default:
		return "paragraph"
	}
}

// Span is a run of inline text sharing the same formatting.
type Span struct {
	Text   string
	Bold   bool
	Italic bool
	Code   bool
	// Href is the link target, or the image source when Image is set.
	Href  string
	Image bool
}

// ListItem is one entry of a list block.
type ListItem struct {
	Number int
	Spans  []Span
}

// Block is one structural element of the preview.
type Block struct {
	Kind BlockKind

	// Level is the heading level (1-6).
	Level int
	// Text holds heading, code, notice and image alt text.
	Text string
	// Src is the image source.
	Src string
	// Spans holds paragraph content.
	Spans []Span
	// Ordered and Items describe lists.
	Ordered bool
	Items   []ListItem
}

// PlainText returns the block's text without formatting.
func (b Block) PlainText() string {
	switch b.Kind {
	case BlockParagraph:
		return spansText(b.Spans)
	case BlockList:
		lines := make([]string, 0, len(b.Items))
		for _, it := range b.Items {
			lines = append(lines, spansText(it.Spans))
		}
		return strings.Join(lines, "\n")
	default:
		return b.Text
	}
}

// Document is the parsed preview surface.
type Document struct {
	Title  string
	Blocks []Block
}

// Empty reports whether the document has nothing to show.
func (d *Document) Empty() bool {
	return d == nil || len(d.Blocks) == 0
}

// Headings returns the heading blocks in document order.
func (d *Document) Headings() []Block {
	if d == nil {
		return nil
	}
	var out []Block
	for _, b := range d.Blocks {
		if b.Kind == BlockHeading {
			out = append(out, b)
		}
	}
	return out
}

// Text returns the document's plain text, one block per line.
func (d *Document) Text() string {
	if d == nil {
		return ""
	}
	parts := make([]string, 0, len(d.Blocks))
	for _, b := range d.Blocks {
		parts = append(parts, b.PlainText())
	}
	return strings.Join(parts, "\n")
}

// =============================================================================
// PARSING
// =============================================================================

// Parse interprets html as markup and returns its structural blocks.
// Both full documents and fragments are accepted.
func Parse(html string) (*Document, error) {
	root, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	doc := &Document{
		Title: collapse(root.Find("head > title").First().Text()),
	}
	root.Find("body").Contents().Each(func(_ int, s *goquery.Selection) {
		doc.Blocks = appendBlocks(doc.Blocks, s)
	})
	return doc, nil
}

func appendBlocks(blocks []Block, s *goquery.Selection) []Block {
	name := goquery.NodeName(s)
	switch name {
	case "#comment", "script", "style", "head", "title", "meta", "br", "hr":
		return blocks

	case "#text":
		text := collapse(s.Text())
		if strings.TrimSpace(text) == "" {
			return blocks
		}
		return append(blocks, Block{Kind: BlockParagraph, Spans: []Span{{Text: strings.TrimSpace(text)}}})

	case "h1", "h2", "h3", "h4", "h5", "h6":
		level, _ := strconv.Atoi(name[1:])
		return append(blocks, Block{Kind: BlockHeading, Level: level, Text: strings.TrimSpace(collapse(s.Text()))})

	case "p":
		spans := trimSpans(inlineSpans(nil, s, Span{}))
		if len(spans) == 0 {
			return blocks
		}
		return append(blocks, Block{Kind: BlockParagraph, Spans: spans})

	case "ul", "ol":
		return append(blocks, listBlock(s, name == "ol"))

	case "pre":
		text := strings.TrimRight(s.Text(), "\n")
		return append(blocks, Block{Kind: BlockCode, Text: text})

	case "img":
		alt, _ := s.Attr("alt")
		src, _ := s.Attr("src")
		return append(blocks, Block{Kind: BlockImage, Text: alt, Src: src})

	case "div", "section", "article", "main", "header", "footer", "nav", "aside", "blockquote", "body":
		s.Contents().Each(func(_ int, child *goquery.Selection) {
			blocks = appendBlocks(blocks, child)
		})
		return blocks

	default:
		spans := trimSpans(inlineSpans(nil, s, Span{}))
		if len(spans) == 0 {
			return blocks
		}
		return append(blocks, Block{Kind: BlockParagraph, Spans: spans})
	}
}

func listBlock(s *goquery.Selection, ordered bool) Block {
	b := Block{Kind: BlockList, Ordered: ordered}
	next := 1
	if start, ok := s.Attr("start"); ok {
		if n, err := strconv.Atoi(start); err == nil {
			next = n
		}
	}
	s.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
		num := next
		if v, ok := li.Attr("value"); ok {
			if n, err := strconv.Atoi(v); err == nil {
				num = n
			}
		}
		next = num + 1
		b.Items = append(b.Items, ListItem{Number: num, Spans: trimSpans(inlineSpans(nil, li, Span{}))})
	})
	return b
}

// inlineSpans flattens the inline content of s, inheriting style.
func inlineSpans(spans []Span, s *goquery.Selection, style Span) []Span {
	s.Contents().Each(func(_ int, c *goquery.Selection) {
		switch goquery.NodeName(c) {
		case "#text":
			text := collapse(c.Text())
			if text == "" {
				return
			}
			span := style
			span.Text = text
			spans = append(spans, span)
		case "#comment", "script", "style":
		case "br":
			spans = append(spans, Span{Text: "\n"})
		case "strong", "b":
			st := style
			st.Bold = true
			spans = inlineSpans(spans, c, st)
		case "em", "i":
			st := style
			st.Italic = true
			spans = inlineSpans(spans, c, st)
		case "code", "kbd", "samp":
			st := style
			st.Code = true
			spans = inlineSpans(spans, c, st)
		case "a":
			st := style
			st.Href, _ = c.Attr("href")
			spans = inlineSpans(spans, c, st)
		case "img":
			alt, _ := c.Attr("alt")
			src, _ := c.Attr("src")
			spans = append(spans, Span{Text: alt, Href: src, Image: true})
		default:
			spans = inlineSpans(spans, c, style)
		}
	})
	return spans
}

// collapse folds whitespace runs into single spaces, keeping a leading or
// trailing space when one was present.
func collapse(s string) string {
	if s == "" {
		return ""
	}
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return " "
	}
	out := strings.Join(fields, " ")
	if isSpace(s[0]) {
		out = " " + out
	}
	if isSpace(s[len(s)-1]) {
		out += " "
	}
	return out
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\n' || c == '\t' || c == '\r' || c == '\f'
}

// trimSpans strips leading and trailing whitespace-only content.
func trimSpans(spans []Span) []Span {
	for len(spans) > 0 && !spans[0].Image && strings.TrimSpace(spans[0].Text) == "" {
		spans = spans[1:]
	}
	for len(spans) > 0 && !spans[len(spans)-1].Image && strings.TrimSpace(spans[len(spans)-1].Text) == "" {
		spans = spans[:len(spans)-1]
	}
	if len(spans) == 0 {
		return nil
	}
	if !spans[0].Image {
		spans[0].Text = strings.TrimLeft(spans[0].Text, " ")
	}
	last := len(spans) - 1
	if !spans[last].Image {
		spans[last].Text = strings.TrimRight(spans[last].Text, " ")
	}
	return spans
}

func spansText(spans []Span) string {
	var b strings.Builder
	for _, s := range spans {
		b.WriteString(s.Text)
	}
	return b.String()
}
