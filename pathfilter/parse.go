// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/publish

package pathfilter

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// maxRuleLineSize caps one rules file line.
const maxRuleLineSize = 1 << 20

// ParseRules parses gitignore-like rules from reader.
//
// Semantics:
// - trailing spaces are trimmed unless escaped with "\"
// - blank lines and "#" comments are skipped
// - "!" creates a negated (re-include) rule
// - leading "/" anchors the rule to the root, trailing "/" restricts it to directories
// - "\#" and "\!" escape leading comment/negation tokens
// - any other "\" escapes the next character, so "\*" is a literal star
//
// Malformed glob syntax is kept as written and never rejected; only reader
// failures return an error. Source names the input in Rule.Source ("source:line").
func ParseRules(r io.Reader, source string) ([]Rule, error) {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 4096), maxRuleLineSize)
	rules := make([]Rule, 0, 16)

	lineNo := 0
	for s.Scan() {
		lineNo++

		rule, ok := parseLine(s.Text())
		if !ok {
			continue
		}

		rule.Order = len(rules)
		if source != "" {
			rule.Source = fmt.Sprintf("%s:%d", source, lineNo)
		}

		rules = append(rules, rule)
	}

	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("scan rules: %w", err)
	}

	return rules, nil
}

// ParseRulesString parses rules from string input.
func ParseRulesString(src string) ([]Rule, error) {
	return ParseRules(strings.NewReader(src), "")
}

// parseLine converts one raw line to a rule; ok is false for blank and comment lines.
func parseLine(line string) (Rule, bool) {
	line = strings.TrimRight(line, "\r")
	line = trimTrailingSpaces(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return Rule{}, false
	}

	var rule Rule
	switch {
	case strings.HasPrefix(line, `\#`), strings.HasPrefix(line, `\!`):
		line = line[1:]
	case strings.HasPrefix(line, "!"):
		rule.Negated = true
		line = line[1:]
	}

	if line == "" {
		return Rule{}, false
	}

	if strings.HasPrefix(line, "/") {
		rule.Anchored = true
		line = line[1:]
	}

	if strings.HasSuffix(line, "/") {
		rule.DirOnly = true
		line = strings.TrimRight(line, "/")
	}

	rule.Pattern = line
	return rule, true
}

// trimTrailingSpaces removes trailing spaces unless escaped by "\".
func trimTrailingSpaces(s string) string {
	for len(s) > 0 && (s[len(s)-1] == ' ' || s[len(s)-1] == '\t') {
		if len(s) >= 2 && s[len(s)-2] == '\\' {
			return s[:len(s)-2] + s[len(s)-1:]
		}

		s = s[:len(s)-1]
	}

	return s
}
