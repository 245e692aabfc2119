// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/publish

package pathfilter

import "strings"

// ExtensionRules converts an extension list to ignore rules.
//
// Accepted extension forms:
//   - "log"
//   - ".log"
//   - "*.log"
//
// Empty values are skipped. Case is preserved since matching is byte-exact
// unless the rule set is case-insensitive. Source is recorded in Rule.Source.
func ExtensionRules(exts []string, source string) []Rule {
	rules := make([]Rule, 0, len(exts))
	for _, ext := range exts {
		ext = strings.TrimSpace(ext)
		ext = strings.TrimPrefix(ext, "*.")
		ext = strings.TrimLeft(ext, ".")
		if ext == "" || strings.ContainsAny(ext, "/\\") {
			continue
		}

		rules = append(rules, Rule{
			Pattern: "*." + ext,
			Source:  source,
			Order:   len(rules),
		})
	}

	return rules
}
