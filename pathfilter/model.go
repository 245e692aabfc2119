// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/publish

package pathfilter

import (
	"fmt"
	"strings"
)

// Rule is one parsed ignore rule.
type Rule struct {
	// Pattern is the glob body without the "!" prefix and without the
	// leading "/" and trailing "/" markers.
	Pattern string `json:"pattern" yaml:"pattern"`
	// Source is "file:line" of the rule origin, used only for diagnostics.
	Source string `json:"source,omitempty" yaml:"source,omitempty"`
	// Order is the rule position across all loaded rule files.
	Order int `json:"order" yaml:"order"`
	// Negated means the raw rule began with "!" and re-includes matching paths.
	Negated bool `json:"negated,omitempty" yaml:"negated,omitempty"`
	// Anchored means the raw rule began with "/" and matches from the root only.
	Anchored bool `json:"anchored,omitempty" yaml:"anchored,omitempty"`
	// DirOnly means the raw rule ended with "/" and matches directories only.
	DirOnly bool `json:"dir_only,omitempty" yaml:"dir_only,omitempty"`
}

// String renders the rule back in its rule-file form.
func (r Rule) String() string {
	var b strings.Builder
	b.Grow(len(r.Pattern) + 3)

	if r.Negated {
		b.WriteByte('!')
	}

	if r.Anchored {
		b.WriteByte('/')
	}

	b.WriteString(r.Pattern)
	if r.DirOnly {
		b.WriteByte('/')
	}

	return b.String()
}

// Options controls rule set matching behavior.
type Options struct {
	// CaseInsensitive enables ASCII case-insensitive matching.
	// Matching is byte-exact when false.
	CaseInsensitive bool `json:"case_insensitive,omitempty" yaml:"case_insensitive,omitempty" koanf:"case_insensitive"`
}

// Decision is a deterministic result for one candidate path.
type Decision struct {
	// Ignored reports final decision.
	Ignored bool `json:"ignored" yaml:"ignored"`
	// Matched reports whether at least one rule matched.
	Matched bool `json:"matched" yaml:"matched"`
	// RuleIndex is the deciding rule index in rule set order, -1 when no match.
	RuleIndex int `json:"rule_index" yaml:"rule_index"`
}

// Describe formats the rule with its origin for diagnostics.
func (r Rule) Describe() string {
	if r.Source == "" {
		return fmt.Sprintf("#%d %s", r.Order, r.String())
	}

	return fmt.Sprintf("%s %s", r.Source, r.String())
}
