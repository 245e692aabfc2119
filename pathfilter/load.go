// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/publish

package pathfilter

import "os"

// LoadRulesFile reads and parses rules from a file.
//
// Open and read failures are returned as *RuleFileError.
func LoadRulesFile(path string) ([]Rule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &RuleFileError{Path: path, Err: err}
	}
	defer func() { _ = f.Close() }()

	rules, err := ParseRules(f, path)
	if err != nil {
		return nil, &RuleFileError{Path: path, Err: err}
	}

	return rules, nil
}

// LoadRulesFiles reads and merges rules from files in the given order.
//
// Returned rules preserve file order and rule order inside each file.
// The first unreadable file aborts loading.
func LoadRulesFiles(paths ...string) ([]Rule, error) {
	sets := make([][]Rule, 0, len(paths))
	for _, path := range paths {
		rules, err := LoadRulesFile(path)
		if err != nil {
			return nil, err
		}

		sets = append(sets, rules)
	}

	return MergeRules(sets...), nil
}

// Load reads rule files in order and builds a rule set from them.
// Rules from later files override earlier ones.
func Load(opts Options, paths ...string) (*RuleSet, error) {
	rules, err := LoadRulesFiles(paths...)
	if err != nil {
		return nil, err
	}

	return NewRuleSet(rules, opts), nil
}
