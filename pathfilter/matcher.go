// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/publish

package pathfilter

import "strings"

// RuleSet is an immutable ordered set of compiled ignore rules.
type RuleSet struct {
	rules           []Rule
	compiled        []compiledRule
	lastNegated     int
	caseInsensitive bool
}

// NewRuleSet compiles ordered rules into a rule set.
//
// Rules are copied and renumbered so that Order equals the position in the set.
// It never fails: malformed globs degrade to literal matching.
func NewRuleSet(rules []Rule, opts Options) *RuleSet {
	s := &RuleSet{
		rules:           make([]Rule, len(rules)),
		compiled:        make([]compiledRule, len(rules)),
		lastNegated:     -1,
		caseInsensitive: opts.CaseInsensitive,
	}

	for i, rule := range rules {
		rule.Order = i
		s.rules[i] = rule
		s.compiled[i] = compileRule(rule, opts.CaseInsensitive)
		if rule.Negated {
			s.lastNegated = i
		}
	}

	return s
}

// Len returns the number of rules.
func (s *RuleSet) Len() int {
	if s == nil {
		return 0
	}

	return len(s.rules)
}

// Rules returns a copy of the rules in evaluation order.
func (s *RuleSet) Rules() []Rule {
	if s == nil {
		return nil
	}

	out := make([]Rule, len(s.rules))
	copy(out, s.rules)
	return out
}

// Rule returns the rule at index i.
func (s *RuleSet) Rule(i int) (Rule, bool) {
	if s == nil || i < 0 || i >= len(s.rules) {
		return Rule{}, false
	}

	return s.rules[i], true
}

// Decide returns the decision for one candidate path.
//
// Decision policy:
// - a rule matches the path itself or any of its ancestor directories
// - last matched rule wins
// - if no rule matched, the path is not ignored
func (s *RuleSet) Decide(path string) Decision {
	res := Decision{RuleIndex: -1}
	if s == nil || len(s.compiled) == 0 {
		return res
	}

	candidate, isDir := splitCandidate(path)
	if candidate == "" {
		return res
	}

	if s.caseInsensitive {
		candidate = asciiLower(candidate)
	}

	for i := len(s.compiled) - 1; i >= 0; i-- {
		if !s.compiled[i].matchTree(candidate, isDir) {
			continue
		}

		res.Matched = true
		res.RuleIndex = i
		res.Ignored = !s.rules[i].Negated
		return res
	}

	return res
}

// IsIgnored reports whether path is excluded.
func (s *RuleSet) IsIgnored(path string) bool {
	return s.Decide(path).Ignored
}

// Prune reports whether a walker may skip everything under dir without asking
// about descendants. It is true when dir is ignored and no negated rule after
// the deciding rule can match a path below dir.
func (s *RuleSet) Prune(dir string) bool {
	d := s.Decide(dir)
	if !d.Ignored {
		return false
	}

	if s.lastNegated < d.RuleIndex {
		return true
	}

	candidate, _ := splitCandidate(dir)
	if s.caseInsensitive {
		candidate = asciiLower(candidate)
	}

	for i := d.RuleIndex + 1; i <= s.lastNegated; i++ {
		if s.rules[i].Negated && s.compiled[i].mayMatchBelow(candidate) {
			return false
		}
	}

	return true
}

// mayMatchBelow reports whether the rule can match a path strictly below dir.
// It may report true for rules that never do, but never false for one that does.
// Unanchored rules can start matching at any depth and always report true.
func (r *compiledRule) mayMatchBelow(dir string) bool {
	if r.strategy == strategyNever {
		return false
	}

	if !r.anchored {
		return true
	}

	dirParts := strings.Split(dir, "/")
	for i, seg := range dirParts {
		if i >= len(r.parts) {
			return false
		}

		part := r.parts[i]
		if strings.Contains(part, "**") || strings.Contains(part, `\`) || patternHasCharClass(part) {
			return true
		}

		if !matchWildcard(part, seg) {
			return false
		}
	}

	return len(r.parts) > len(dirParts)
}

// matchTree reports whether the rule matches candidate or one of its ancestor directories.
func (r *compiledRule) matchTree(candidate string, isDir bool) bool {
	if r.strategy == strategyNever {
		return false
	}

	for i := 0; i < len(candidate); i++ {
		if candidate[i] == '/' && r.match(candidate[:i], true) {
			return true
		}
	}

	return r.match(candidate, isDir)
}
