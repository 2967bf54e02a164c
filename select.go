// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/rkcfg

package rkcfg

import (
	"fmt"

	"github.com/woozymasta/pathrules"
)

// entryMatcher holds compiled selection rules for entry paths.
type entryMatcher struct {
	matcher *pathrules.Matcher
}

// newEntryMatcher compiles selection rules. It returns nil matcher for an empty rule set.
func newEntryMatcher(rules []pathrules.Rule, opts pathrules.MatcherOptions) (*entryMatcher, error) {
	rules = normalizeSelectRules(rules)
	if len(rules) == 0 {
		return nil, nil
	}

	if opts == (pathrules.MatcherOptions{}) {
		opts = pathrules.MatcherOptions{
			CaseInsensitive: true,
			DefaultAction:   pathrules.ActionExclude,
		}
	}

	if opts.DefaultAction == pathrules.ActionUnknown {
		opts.DefaultAction = pathrules.ActionExclude
	}

	matcher, err := pathrules.NewMatcher(rules, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: compile rules: %w", ErrInvalidRule, err)
	}

	return &entryMatcher{matcher: matcher}, nil
}

// normalizeSelectRules normalizes rule patterns and drops empty patterns.
func normalizeSelectRules(rules []pathrules.Rule) []pathrules.Rule {
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

// Match reports whether entry is included by rules.
func (m *entryMatcher) Match(entry *Entry) bool {
	if m == nil || m.matcher == nil {
		return false
	}

	candidate := entryMatchPath(entry)
	if candidate == "" {
		return false
	}

	return m.matcher.Included(candidate, false)
}

// Select returns indexes of entries included by ordered path rules.
// Entries are matched by image path, or by name when path is empty.
// An empty rule set selects nothing.
func (d *Directory) Select(rules []pathrules.Rule, opts pathrules.MatcherOptions) ([]int, error) {
	if d == nil {
		return nil, ErrNilDirectory
	}

	matcher, err := newEntryMatcher(rules, opts)
	if err != nil {
		return nil, err
	}

	var out []int
	for i := range d.entries {
		if matcher.Match(&d.entries[i]) {
			out = append(out, i)
		}
	}

	return out, nil
}

// DeleteMatching removes all entries included by rules and returns number of removed entries.
func (d *Directory) DeleteMatching(rules []pathrules.Rule, opts pathrules.MatcherOptions) (int, error) {
	selected, err := d.Select(rules, opts)
	if err != nil {
		return 0, err
	}

	// Remove from the end so earlier indexes stay valid.
	for i := len(selected) - 1; i >= 0; i-- {
		if err := d.Delete(selected[i]); err != nil {
			return len(selected) - 1 - i, err
		}
	}

	return len(selected), nil
}

// SetEnabledMatching sets flash selection flag of all entries included by rules
// and returns number of matched entries.
func (d *Directory) SetEnabledMatching(rules []pathrules.Rule, opts pathrules.MatcherOptions, enabled bool) (int, error) {
	selected, err := d.Select(rules, opts)
	if err != nil {
		return 0, err
	}

	for _, idx := range selected {
		if err := d.SetEnabled(idx, enabled); err != nil {
			return 0, err
		}
	}

	return len(selected), nil
}

// ParseRules converts gitignore-like patterns to ordered rules: a leading "!" excludes,
// anything else includes. Blank patterns are skipped.
func ParseRules(patterns ...string) []pathrules.Rule {
	rules := make([]pathrules.Rule, 0, len(patterns))
	for _, pattern := range patterns {
		action := pathrules.ActionInclude
		if len(pattern) > 0 && pattern[0] == '!' {
			action = pathrules.ActionExclude
			pattern = pattern[1:]
		}

		if normalizePathForMatching(pattern) == "" {
			continue
		}

		rules = append(rules, pathrules.Rule{
			Action:  action,
			Pattern: pattern,
		})
	}

	return rules
}
