// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package catalog

import (
	"strings"
	"testing"

	"golang.org/x/text/unicode/norm"
)

func TestExample_NonEmptyAndDistinct(t *testing.T) {
	seen := make(map[string]Tier)
	for _, tier := range Tiers {
		text := Example(tier)
		if strings.TrimSpace(text) == "" {
			t.Errorf("Example(%d) is empty", tier)
		}
		if other, dup := seen[text]; dup {
			t.Errorf("Example(%d) duplicates Example(%d)", tier, other)
		}
		seen[text] = tier
	}
}

func TestExample_TierContent(t *testing.T) {
	tests := []struct {
		tier Tier
		want []string
	}{
		{TierBasic, []string{"# Mi primer documento SimpleDoc", "## Sección 1"}},
		{TierIntermediate, []string{"**texto en negrita**", "1. Primer elemento numerado"}},
		{TierAdvanced, []string{"[Enlace a Google](https://www.google.com)", "```"}},
	}

	for _, tc := range tests {
		t.Run(tc.tier.Label(), func(t *testing.T) {
			text := Example(tc.tier)
			for _, w := range tc.want {
				if !strings.Contains(text, w) {
					t.Errorf("Example(%d) missing %q", tc.tier, w)
				}
			}
		})
	}
}

func TestExample_ClampsOutOfRange(t *testing.T) {
	if Example(0) != Example(TierBasic) {
		t.Error("Example(0) should clamp to tier 1")
	}
	if Example(9) != Example(TierAdvanced) {
		t.Error("Example(9) should clamp to tier 3")
	}
}

func TestIsExample(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"tier 1", Example(TierBasic), true},
		{"tier 3", Example(TierAdvanced), true},
		{"crlf line endings", strings.ReplaceAll(Example(TierBasic), "\n", "\r\n"), true},
		{"decomposed accents", norm.NFD.String(Example(TierBasic)), true},
		{"edited", Example(TierBasic) + "\nmore", false},
		{"empty", "", false},
		{"arbitrary", "# Hello", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsExample(tc.text); got != tc.want {
				t.Errorf("IsExample() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestShouldRefresh(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"", true},
		{"   \n\t ", true},
		{Example(TierIntermediate), true},
		{"my own document", false},
	}

	for _, tc := range tests {
		if got := ShouldRefresh(tc.text); got != tc.want {
			t.Errorf("ShouldRefresh(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}

func TestTierCycle(t *testing.T) {
	if TierBasic.Next() != TierIntermediate || TierAdvanced.Next() != TierBasic {
		t.Error("Next() does not cycle 1->2->3->1")
	}
	if TierBasic.Prev() != TierAdvanced || TierIntermediate.Prev() != TierBasic {
		t.Error("Prev() does not cycle 3<-1<-2")
	}
}

func TestParseTier(t *testing.T) {
	tests := []struct {
		in      string
		want    Tier
		wantErr bool
	}{
		{"1", TierBasic, false},
		{" 2 ", TierIntermediate, false},
		{"advanced", TierAdvanced, false},
		{"0", 0, true},
		{"4", 0, true},
		{"x", 0, true},
	}

	for _, tc := range tests {
		got, err := ParseTier(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseTier(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseTier(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestTierString(t *testing.T) {
	if TierBasic.String() != "1" || TierAdvanced.String() != "3" {
		t.Error("String() must return the wire form")
	}
}

func TestSyntaxGuide(t *testing.T) {
	guide := SyntaxGuide()
	for _, w := range []string{"# SimpleDoc syntax guide", "**bold text**", "[Link text]"} {
		if !strings.Contains(guide, w) {
			t.Errorf("SyntaxGuide missing %q", w)
		}
	}
}
