// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package catalog holds the canonical SimpleDoc example documents.
//
// Each complexity tier maps to one fixed example that demonstrates the
// markup features available at that tier:
//
//   - Tier 1 (basic): headings and plain text
//   - Tier 2 (intermediate): tier 1 plus bold, italic and lists
//   - Tier 3 (advanced): tier 2 plus links, images and code blocks
//
// The editor seeds its buffer from the tier 3 example at startup and swaps
// examples on tier change only while the buffer is blank or still holds an
// unmodified example.
//
// # Usage
//
//	text := catalog.Example(catalog.TierBasic)
//	if catalog.ShouldRefresh(buffer) {
//	    buffer = catalog.Example(newTier)
//	}
package catalog
