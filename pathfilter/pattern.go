// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/publish

package pathfilter

import (
	"regexp"
	"regexp/syntax"
	"strings"
	"unicode/utf8"
)

// matchStrategy selects the cheapest matcher able to evaluate a pattern.
type matchStrategy uint8

const (
	// strategyNever is used for rules with an empty body.
	strategyNever matchStrategy = iota
	// strategyLiteral compares bytes, used for patterns without glob meta.
	strategyLiteral
	// strategySegments matches "*" and "?" segment by segment.
	strategySegments
	// strategyRegexp handles "**" and character classes.
	strategyRegexp
)

// compiledRule is the internal compiled form of one rule.
//
// A compiled rule only answers whether the pattern matches a path itself.
// Matching of descendants through their ancestor directories is done by RuleSet.
type compiledRule struct {
	// re matches the whole path (or basename) for strategyRegexp.
	re *regexp.Regexp
	// literal is the pattern body for strategyLiteral.
	literal string
	// segments are precompiled "/"-separated parts for strategySegments.
	segments []segmentPattern
	// strategy is the selected matcher.
	strategy matchStrategy
	// basename means pattern has no "/" and is not anchored: match final component at any depth.
	basename bool
	// anchored means pattern must match from the root.
	anchored bool
	// dirOnly means only directory paths match.
	dirOnly bool
	// parts are the "/"-separated segments of an anchored pattern, used by Prune.
	parts []string
}

// segmentPattern is one precompiled path segment.
type segmentPattern struct {
	// text is raw segment pattern source.
	text string
	// wildcard reports whether text contains "*" or "?".
	wildcard bool
}

// compileRule compiles one rule into the cheapest matching strategy.
// Compilation never fails: a glob that cannot be converted degrades to a literal.
func compileRule(rule Rule, caseInsensitive bool) compiledRule {
	body := strings.Trim(rule.Pattern, "/")
	if caseInsensitive {
		body = asciiLower(body)
	}

	cr := compiledRule{
		anchored: rule.Anchored,
		dirOnly:  rule.DirOnly,
		basename: !rule.Anchored && !strings.Contains(body, "/"),
	}

	if body == "" {
		cr.strategy = strategyNever
		return cr
	}

	if cr.anchored {
		cr.parts = strings.Split(body, "/")
	}

	switch {
	case !patternHasGlobMeta(body):
		cr.strategy = strategyLiteral
		cr.literal = unescapeGlob(body)
	case !strings.Contains(body, "**") && !patternHasCharClass(body) && !strings.Contains(body, `\`):
		cr.strategy = strategySegments
		cr.segments = compileSegments(body)
	default:
		prefix := "^"
		if !cr.anchored && !cr.basename {
			// Unanchored path patterns match from any segment boundary.
			prefix = `^(?:.*/)?`
		}

		re, err := regexp.Compile(prefix + globToRegexp(body) + "$")
		if err != nil {
			cr.strategy = strategyLiteral
			cr.literal = unescapeGlob(body)
			return cr
		}

		cr.strategy = strategyRegexp
		cr.re = re
	}

	return cr
}

// match reports whether the rule matches candidate itself.
// Candidate is root-relative, clean and non-empty.
func (r *compiledRule) match(candidate string, isDir bool) bool {
	if r.dirOnly && !isDir {
		return false
	}

	if r.basename {
		return r.matchWhole(pathBase(candidate))
	}

	if r.anchored || r.strategy == strategyRegexp {
		return r.matchWhole(candidate)
	}

	// Unanchored literal and segment patterns: retry from every segment boundary.
	for start := 0; ; {
		if r.matchWhole(candidate[start:]) {
			return true
		}

		next := strings.IndexByte(candidate[start:], '/')
		if next < 0 {
			return false
		}

		start += next + 1
	}
}

// matchWhole matches s against the whole pattern.
func (r *compiledRule) matchWhole(s string) bool {
	switch r.strategy {
	case strategyLiteral:
		return s == r.literal
	case strategySegments:
		return matchSegments(r.segments, s)
	case strategyRegexp:
		return r.re.MatchString(s)
	default:
		return false
	}
}

// compileSegments precompiles "/"-separated pattern segments.
func compileSegments(pattern string) []segmentPattern {
	parts := strings.Split(pattern, "/")
	segments := make([]segmentPattern, len(parts))
	for i, part := range parts {
		segments[i] = segmentPattern{
			text:     part,
			wildcard: strings.ContainsAny(part, "*?"),
		}
	}

	return segments
}

// matchSegments matches s segment by segment; segment counts must be equal.
func matchSegments(pattern []segmentPattern, s string) bool {
	for i := range pattern {
		end := strings.IndexByte(s, '/')
		last := i == len(pattern)-1
		if last != (end < 0) {
			return false
		}

		seg := s
		if !last {
			seg = s[:end]
			s = s[end+1:]
		}

		if !pattern[i].match(seg) {
			return false
		}
	}

	return true
}

// match matches one segment.
func (p segmentPattern) match(segment string) bool {
	if !p.wildcard {
		return segment == p.text
	}

	return matchWildcard(p.text, segment)
}

// matchWildcard matches "*" and "?" wildcard pattern against one segment.
// "?" and the "*" backtrack step advance by one UTF-8 character.
func matchWildcard(pattern string, input string) bool {
	pIdx, sIdx := 0, 0
	starPattern, starInput := -1, 0

	for sIdx < len(input) {
		switch {
		case pIdx < len(pattern) && pattern[pIdx] == '?':
			_, size := utf8.DecodeRuneInString(input[sIdx:])
			pIdx++
			sIdx += size
		case pIdx < len(pattern) && pattern[pIdx] == '*':
			starPattern = pIdx
			starInput = sIdx
			pIdx++
		case pIdx < len(pattern) && pattern[pIdx] == input[sIdx]:
			pIdx++
			sIdx++
		case starPattern >= 0:
			// Backtrack: let the last '*' consume one more character.
			_, size := utf8.DecodeRuneInString(input[starInput:])
			pIdx = starPattern + 1
			starInput += size
			sIdx = starInput
		default:
			return false
		}
	}

	for pIdx < len(pattern) && pattern[pIdx] == '*' {
		pIdx++
	}

	return pIdx == len(pattern)
}

// patternHasGlobMeta reports whether pattern contains supported glob meta.
// Meta escaped with "\" is literal.
func patternHasGlobMeta(pattern string) bool {
	for i := 0; i < len(pattern); i++ {
		switch pattern[i] {
		case '\\':
			i++
		case '*', '?':
			return true
		case '[':
			if findCharClassEnd(pattern, i) >= 0 {
				return true
			}
		}
	}

	return false
}

// patternHasCharClass reports whether pattern contains at least one valid "[...]" class.
func patternHasCharClass(pattern string) bool {
	for i := 0; i < len(pattern); i++ {
		switch {
		case pattern[i] == '\\':
			i++
		case pattern[i] == '[' && findCharClassEnd(pattern, i) >= 0:
			return true
		}
	}

	return false
}

// unescapeGlob drops "\" escapes from a pattern without glob meta.
// A trailing lone "\" is kept.
func unescapeGlob(pattern string) string {
	if !strings.Contains(pattern, `\`) {
		return pattern
	}

	var b strings.Builder
	b.Grow(len(pattern))
	for i := 0; i < len(pattern); i++ {
		if pattern[i] == '\\' && i+1 < len(pattern) {
			i++
		}

		b.WriteByte(pattern[i])
	}

	return b.String()
}

// globToRegexp converts a glob body to a regexp body.
//
//	"**/" -> zero or more leading directories
//	"**"  -> anything, including "/"
//	"*"   -> run of non-"/"
//	"?"   -> one non-"/"
//	"\x"  -> literal x
func globToRegexp(pat string) string {
	var b strings.Builder
	b.Grow(len(pat) * 2)

	for i := 0; i < len(pat); i++ {
		if strings.HasPrefix(pat[i:], "**/") {
			b.WriteString(`(?:.*/)?`)
			i += 2
			continue
		}

		if next, ok := appendCharClass(pat, i, &b); ok {
			i = next
			continue
		}

		switch c := pat[i]; c {
		case '\\':
			if i+1 < len(pat) {
				i++
			}

			b.WriteString(regexp.QuoteMeta(pat[i : i+1]))
		case '*':
			if i+1 < len(pat) && pat[i+1] == '*' {
				b.WriteString(`.*`)
				i++
				continue
			}

			b.WriteString(`[^/]*`)
		case '?':
			b.WriteString(`[^/]`)
		default:
			b.WriteString(regexp.QuoteMeta(pat[i : i+1]))
		}
	}

	return b.String()
}

// appendCharClass appends a glob char class ("[...]") as regexp class.
// The class never matches "/", negated or not.
func appendCharClass(pat string, start int, b *strings.Builder) (int, bool) {
	if pat[start] != '[' {
		return start, false
	}

	end := findCharClassEnd(pat, start)
	if end < 0 {
		return start, false
	}

	var class strings.Builder
	class.WriteByte('[')

	idx := start + 1
	switch {
	case pat[idx] == '!':
		class.WriteByte('^')
		idx++
	case pat[idx] == '^':
		class.WriteString(`\^`)
		idx++
	}

	if idx < end && pat[idx] == ']' {
		class.WriteString(`\]`)
		idx++
	}

	for ; idx < end; idx++ {
		if pat[idx] == '\\' {
			class.WriteString(`\\`)
			continue
		}

		class.WriteByte(pat[idx])
	}

	class.WriteByte(']')
	b.WriteString(classWithoutSlash(class.String()))
	return end, true
}

// classWithoutSlash removes "/" from a regexp character class.
// An unparsable class is returned as is and fails later regexp compilation.
func classWithoutSlash(class string) string {
	re, err := syntax.Parse(class, syntax.Perl)
	if err != nil {
		return class
	}

	switch {
	case re.Op == syntax.OpLiteral && len(re.Rune) == 1 && re.Rune[0] == '/':
		re = &syntax.Regexp{Op: syntax.OpCharClass}
	case re.Op != syntax.OpCharClass:
		return class
	default:
		ranges := make([]rune, 0, len(re.Rune)+2)
		for i := 0; i+1 < len(re.Rune); i += 2 {
			lo, hi := re.Rune[i], re.Rune[i+1]
			if lo > '/' || hi < '/' {
				ranges = append(ranges, lo, hi)
				continue
			}

			if lo < '/' {
				ranges = append(ranges, lo, '/'-1)
			}

			if hi > '/' {
				ranges = append(ranges, '/'+1, hi)
			}
		}

		re.Rune = ranges
	}

	// An empty class renders as one that matches nothing.
	return re.String()
}

// findCharClassEnd locates closing bracket for a glob char class.
func findCharClassEnd(pat string, start int) int {
	idx := start + 1
	if idx < len(pat) && (pat[idx] == '!' || pat[idx] == '^') {
		idx++
	}

	if idx < len(pat) && pat[idx] == ']' {
		idx++
	}

	if end := strings.IndexByte(pat[idx:], ']'); end >= 0 {
		return idx + end
	}

	return -1
}

// pathBase returns final path component using slash separator.
func pathBase(p string) string {
	if i := strings.LastIndexByte(p, '/'); i >= 0 {
		return p[i+1:]
	}

	return p
}
