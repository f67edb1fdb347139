// SPDX-License-Identifier: MIT
// Copyright (c) 2026 ModOrganizer2
// Source: github.com/modorganizer2/bsatk

package bsa

import (
	"context"
	"fmt"

	"github.com/woozymasta/pathrules"
)

// pathMatcher holds compiled glob rules used to select a subset of an
// archive's files for extraction.
type pathMatcher struct {
	matcher *pathrules.Matcher
}

// newPathMatcher compiles a rule set for ExtractFiltered. An empty rule
// set matches nothing.
func newPathMatcher(rules []pathrules.Rule, opts pathrules.MatcherOptions) (*pathMatcher, error) {
	rules = normalizeFilterRules(rules)
	if len(rules) == 0 {
		return nil, nil
	}

	matcher, err := pathrules.NewMatcher(rules, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: compile rules: %w", ErrInvalidPath, err)
	}

	return &pathMatcher{matcher: matcher}, nil
}

// normalizeFilterRules normalizes rule patterns and drops empty ones.
func normalizeFilterRules(rules []pathrules.Rule) []pathrules.Rule {
	normalized := make([]pathrules.Rule, 0, len(rules))
	for _, rule := range rules {
		pattern := normalizePathForMatching(rule.Pattern)
		if pattern == "" {
			continue
		}

		normalized = append(normalized, pathrules.Rule{
			Action:  rule.Action,
			Pattern: pattern,
		})
	}

	return normalized
}

// Match reports whether path is selected by at least one rule.
func (m *pathMatcher) Match(path string) bool {
	if m == nil || m.matcher == nil {
		return false
	}

	candidate := normalizePathForMatching(path)
	if candidate == "" {
		return false
	}

	return m.matcher.Included(candidate, false)
}

// ExtractByRules extracts the subset of files whose archive path is
// selected by rules, compiled into a pathrules.Matcher by newPathMatcher.
func (a *Archive) ExtractByRules(ctx context.Context, outDir string, rules []pathrules.Rule, matcherOpts pathrules.MatcherOptions, opts ExtractOptions) error {
	matcher, err := newPathMatcher(rules, matcherOpts)
	if err != nil {
		return err
	}

	return a.ExtractFiltered(ctx, outDir, opts, matcher.Match)
}
