// SPDX-License-Identifier: MIT
// Copyright (c) 2026 ModOrganizer2
// Source: github.com/modorganizer2/bsatk

package bsa

import (
	"testing"

	"github.com/woozymasta/pathrules"
)

func TestPathMatcherMatch(t *testing.T) {
	t.Parallel()

	matcher, err := newPathMatcher([]pathrules.Rule{
		{Action: pathrules.ActionInclude, Pattern: "textures/**/*.dds"},
		{Action: pathrules.ActionExclude, Pattern: "textures/tmp/**"},
	}, pathrules.MatcherOptions{
		CaseInsensitive: true,
		DefaultAction:   pathrules.ActionExclude,
	})
	if err != nil {
		t.Fatalf("newPathMatcher: %v", err)
	}

	cases := []struct {
		name string
		path string
		want bool
	}{
		{name: "matches nested dds", path: `textures\armor\plate.dds`, want: true},
		{name: "excluded tmp subtree", path: `textures\tmp\plate.dds`, want: false},
		{name: "wrong extension", path: `textures\armor\plate.nif`, want: false},
		{name: "outside textures", path: `meshes\armor\plate.dds`, want: false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := matcher.Match(tc.path); got != tc.want {
				t.Fatalf("Match(%q) = %v, want %v", tc.path, got, tc.want)
			}
		})
	}
}

func TestNewPathMatcherEmptyRulesMatchesNothing(t *testing.T) {
	t.Parallel()

	matcher, err := newPathMatcher(nil, pathrules.MatcherOptions{})
	if err != nil {
		t.Fatalf("newPathMatcher: %v", err)
	}
	if matcher.Match("anything.dds") {
		t.Fatal("an empty rule set must match nothing")
	}
}

func TestNormalizeFilterRulesDropsEmptyPatterns(t *testing.T) {
	t.Parallel()

	got := normalizeFilterRules([]pathrules.Rule{
		{Action: pathrules.ActionInclude, Pattern: ""},
		{Action: pathrules.ActionInclude, Pattern: "  "},
		{Action: pathrules.ActionInclude, Pattern: "*.dds"},
	})
	if len(got) != 1 {
		t.Fatalf("normalizeFilterRules returned %d rules, want 1", len(got))
	}
	if got[0].Pattern != "*.dds" {
		t.Fatalf("surviving pattern = %q, want %q", got[0].Pattern, "*.dds")
	}
}
