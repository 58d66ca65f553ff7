// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package catalog

// SyntaxGuide returns the SimpleDoc language reference shown in the help
// overlay. The guide is itself valid SimpleDoc.
func SyntaxGuide() string {
	return `# SimpleDoc syntax guide

## Introduction

SimpleDoc is a lightweight markup language that compiles to HTML.

## Basic syntax (tier 1)

### Headings

    # Level 1 heading
    ## Level 2 heading
    ### Level 3 heading

### Text

Plain text without formatting becomes a paragraph.

## Intermediate syntax (tier 2)

### Text formatting

    **bold text**
    *italic text*

### Lists

    - Unordered item
    - Another item

    1. Ordered item
    2. Second item

## Advanced syntax (tier 3)

### Links

    [Link text](https://example.com)

### Images

    ![Alternative text](https://example.com/image.jpg)

### Code blocks

    ` + fence + `
    function example() {
      console.log("code block");
    }
    ` + fence + `
`
}
