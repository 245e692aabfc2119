// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/publish

package publisher

import "github.com/woozymasta/publish/pathfilter"

// CheckResult explains the filter decision for one path.
type CheckResult struct {
	// Input is the path as given.
	Input string `json:"input" yaml:"input"`
	// Candidate is the normalized candidate path.
	Candidate string `json:"candidate,omitempty" yaml:"candidate,omitempty"`
	// Decision is the filter decision.
	Decision pathfilter.Decision `json:"decision" yaml:"decision"`
	// Rule is the deciding rule, nil when nothing matched.
	Rule *pathfilter.Rule `json:"rule,omitempty" yaml:"rule,omitempty"`
	// Err is set for paths that are not valid candidates.
	Err error `json:"-" yaml:"-"`
}

// Check decides each path against the effective rules. Directories must end with "/".
func (p *Publisher) Check(paths ...string) []CheckResult {
	out := make([]CheckResult, 0, len(paths))
	for _, raw := range paths {
		res := CheckResult{Input: raw}

		candidate, err := pathfilter.CleanCandidate(raw)
		if err != nil {
			res.Err = err
			out = append(out, res)
			continue
		}

		res.Candidate = candidate
		res.Decision = p.rules.Decide(candidate)
		if rule, ok := p.rules.Rule(res.Decision.RuleIndex); ok {
			res.Rule = &rule
		}

		out = append(out, res)
	}

	return out
}
