// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// Tier is the complexity level selector, ordered by the sophistication of
// the markup features it demonstrates.
type Tier int

const (
	// TierBasic covers headings and plain text.
	TierBasic Tier = 1
	// TierIntermediate adds bold, italic and lists.
	TierIntermediate Tier = 2
	// TierAdvanced adds links, images and code blocks.
	TierAdvanced Tier = 3
)

// DefaultTier is the most feature-complete tier, used at startup.
const DefaultTier = TierAdvanced

// Tiers lists every tier in ascending order.
var Tiers = []Tier{TierBasic, TierIntermediate, TierAdvanced}

// Valid reports whether t is one of the enumerated tiers.
func (t Tier) Valid() bool {
	return t >= TierBasic && t <= TierAdvanced
}

// String returns the wire form of the tier ("1", "2" or "3").
func (t Tier) String() string {
	return strconv.Itoa(int(t))
}

// Label returns a human-readable name for the tier.
func (t Tier) Label() string {
	switch t {
	case TierBasic:
		return "basic"
	case TierIntermediate:
		return "intermediate"
	case TierAdvanced:
		return "advanced"
	default:
		return "unknown"
	}
}

// Next returns the following tier, wrapping from advanced back to basic.
func (t Tier) Next() Tier {
	if t >= TierAdvanced || t < TierBasic {
		return TierBasic
	}
	return t + 1
}

// Prev returns the preceding tier, wrapping from basic to advanced.
func (t Tier) Prev() Tier {
	if t <= TierBasic || t > TierAdvanced {
		return TierAdvanced
	}
	return t - 1
}

// Clamp forces t into the enumerated range.
func (t Tier) Clamp() Tier {
	if t < TierBasic {
		return TierBasic
	}
	if t > TierAdvanced {
		return TierAdvanced
	}
	return t
}

// ParseTier parses "1", "2", "3" or a tier label.
func ParseTier(s string) (Tier, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "basic":
		return TierBasic, nil
	case "intermediate":
		return TierIntermediate, nil
	case "advanced":
		return TierAdvanced, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid tier %q: must be 1, 2 or 3", s)
	}
	t := Tier(n)
	if !t.Valid() {
		return 0, fmt.Errorf("invalid tier %d: must be 1, 2 or 3", n)
	}
	return t, nil
}
