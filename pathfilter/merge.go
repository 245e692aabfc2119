// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/publish

package pathfilter

// MergeRules merges rule slices preserving input order and renumbers Order
// across the merged sequence.
func MergeRules(ruleSets ...[]Rule) []Rule {
	total := 0
	for _, set := range ruleSets {
		total += len(set)
	}

	out := make([]Rule, 0, total)
	for _, set := range ruleSets {
		for _, rule := range set {
			rule.Order = len(out)
			out = append(out, rule)
		}
	}

	return out
}
