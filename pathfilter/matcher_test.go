// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/publish

package pathfilter

import (
	"sync"
	"testing"
)

func mustRuleSet(t testing.TB, src string) *RuleSet {
	t.Helper()

	rules, err := ParseRulesString(src)
	if err != nil {
		t.Fatalf("ParseRulesString: %v", err)
	}

	return NewRuleSet(rules, Options{})
}

func TestRuleSetEmptyIgnoresNothing(t *testing.T) {
	t.Parallel()

	for _, s := range []*RuleSet{nil, NewRuleSet(nil, Options{})} {
		for _, path := range []string{"/", "/a", "/a/", "/a/b/c.txt", "", "weird\\path"} {
			if s.IsIgnored(path) {
				t.Fatalf("IsIgnored(%q)=true on empty rule set", path)
			}
		}
	}
}

func TestRuleSetLastMatchWins(t *testing.T) {
	t.Parallel()

	s := mustRuleSet(t, "*.log\n!important.log\n")
	if s.IsIgnored("/important.log") {
		t.Fatalf("/important.log must be re-included by later negated rule")
	}

	if !s.IsIgnored("/debug.log") {
		t.Fatalf("/debug.log must be ignored")
	}

	reversed := mustRuleSet(t, "!important.log\n*.log\n")
	if !reversed.IsIgnored("/important.log") {
		t.Fatalf("/important.log must be ignored when *.log comes last")
	}
}

func TestRuleSetAnchoredDirectory(t *testing.T) {
	t.Parallel()

	anchored := mustRuleSet(t, "/build/\n")
	unanchored := mustRuleSet(t, "build/\n")

	cases := []struct {
		path       string
		anchored   bool
		unanchored bool
	}{
		{path: "/build/", anchored: true, unanchored: true},
		{path: "/build/output/", anchored: true, unanchored: true},
		{path: "/build/output/game.exe", anchored: true, unanchored: true},
		{path: "/src/build/", anchored: false, unanchored: true},
		{path: "/src/build/x.o", anchored: false, unanchored: true},
		{path: "/build", anchored: false, unanchored: false},
		{path: "/builder/", anchored: false, unanchored: false},
	}

	for _, tc := range cases {
		if got := anchored.IsIgnored(tc.path); got != tc.anchored {
			t.Fatalf("/build/ IsIgnored(%q)=%v, want %v", tc.path, got, tc.anchored)
		}

		if got := unanchored.IsIgnored(tc.path); got != tc.unanchored {
			t.Fatalf("build/ IsIgnored(%q)=%v, want %v", tc.path, got, tc.unanchored)
		}
	}
}

func TestRuleSetDoubleStarDirectory(t *testing.T) {
	t.Parallel()

	for _, src := range []string{"**/temp/", "temp/"} {
		s := mustRuleSet(t, src)
		for _, path := range []string{"/temp/", "/a/temp/", "/a/b/temp/", "/a/b/temp/file.txt"} {
			if !s.IsIgnored(path) {
				t.Fatalf("%q IsIgnored(%q)=false, want true", src, path)
			}
		}

		if s.IsIgnored("/a/b/temp") {
			t.Fatalf("%q must not match file named temp", src)
		}

		if s.IsIgnored("/a/temporary/") {
			t.Fatalf("%q must not match /a/temporary/", src)
		}
	}
}

func TestRuleSetDirectoryReinclusion(t *testing.T) {
	t.Parallel()

	s := mustRuleSet(t, "dist/\n!dist/keep.txt\n")

	if !s.IsIgnored("/dist/") {
		t.Fatalf("/dist/ must be ignored")
	}

	if s.IsIgnored("/dist/keep.txt") {
		t.Fatalf("/dist/keep.txt must be re-included")
	}

	if !s.IsIgnored("/dist/other.bin") {
		t.Fatalf("/dist/other.bin must be ignored through its ancestor")
	}

	if !s.IsIgnored("/dist/sub/keep.txt") {
		t.Fatalf("/dist/sub/keep.txt must stay ignored")
	}
}

func TestRuleSetIdempotent(t *testing.T) {
	t.Parallel()

	s := mustRuleSet(t, "*.tmp\n!keep.tmp\nbuild/\n")
	for _, path := range []string{"/a.tmp", "/keep.tmp", "/build/", "/build/a", "/src/main.go"} {
		first := s.Decide(path)
		second := s.Decide(path)
		if first != second {
			t.Fatalf("Decide(%q) changed between calls: %+v then %+v", path, first, second)
		}
	}
}

func TestRuleSetCaseSensitive(t *testing.T) {
	t.Parallel()

	s := mustRuleSet(t, "*.LOG\n")
	if s.IsIgnored("/file.log") {
		t.Fatalf("*.LOG must not match /file.log")
	}

	if !s.IsIgnored("/FILE.LOG") {
		t.Fatalf("*.LOG must match /FILE.LOG")
	}
}

func TestRuleSetCaseInsensitiveOption(t *testing.T) {
	t.Parallel()

	rules, err := ParseRulesString("*.LOG\n/Library/\n")
	if err != nil {
		t.Fatalf("ParseRulesString: %v", err)
	}

	s := NewRuleSet(rules, Options{CaseInsensitive: true})
	if !s.IsIgnored("/file.log") {
		t.Fatalf("/file.log must be ignored in case-insensitive mode")
	}

	if !s.IsIgnored(`\library\cache.bin`) {
		t.Fatalf("\\library\\cache.bin must be ignored in case-insensitive mode")
	}
}

func TestRuleSetBasenameAtAnyDepth(t *testing.T) {
	t.Parallel()

	s := mustRuleSet(t, "Thumbs.db\n")
	for _, path := range []string{"/Thumbs.db", "/Assets/Thumbs.db", "/a/b/c/Thumbs.db"} {
		if !s.IsIgnored(path) {
			t.Fatalf("IsIgnored(%q)=false, want true", path)
		}
	}
}

func TestRuleSetNonDirPatternCoversDescendants(t *testing.T) {
	t.Parallel()

	s := mustRuleSet(t, "Library\n")
	if !s.IsIgnored("/Library/") {
		t.Fatalf("/Library/ must be ignored")
	}

	if !s.IsIgnored("/Library/ShaderCache/x.bin") {
		t.Fatalf("/Library/ShaderCache/x.bin must be ignored through its ancestor")
	}
}

func TestRuleSetAnchoredWildcard(t *testing.T) {
	t.Parallel()

	s := mustRuleSet(t, "/config/*.cpp\n")
	if !s.IsIgnored("/config/server.cpp") {
		t.Fatalf("/config/server.cpp must be ignored")
	}

	if s.IsIgnored("/addons/config/server.cpp") {
		t.Fatalf("/addons/config/server.cpp must not match anchored pattern")
	}
}

func TestRuleSetUnanchoredPathWildcard(t *testing.T) {
	t.Parallel()

	s := mustRuleSet(t, "scripts/module_010/*.c\n")
	if !s.IsIgnored("/scripts/module_010/main.c") {
		t.Fatalf("/scripts/module_010/main.c must be ignored")
	}

	if !s.IsIgnored("/addons/scripts/module_010/main.c") {
		t.Fatalf("/addons/scripts/module_010/main.c must be ignored by unanchored rule")
	}

	if s.IsIgnored("/scripts/module_010/sub/main.c") {
		t.Fatalf("/scripts/module_010/sub/main.c must not match single-segment wildcard")
	}
}

func TestRuleSetTrailingDoubleStar(t *testing.T) {
	t.Parallel()

	s := mustRuleSet(t, "assets/group/**\n")
	if !s.IsIgnored("/assets/group/file.paa") {
		t.Fatalf("/assets/group/file.paa must be ignored")
	}

	if !s.IsIgnored("/mods/assets/group/deep/file.paa") {
		t.Fatalf("/mods/assets/group/deep/file.paa must be ignored by unanchored rule")
	}

	if s.IsIgnored("/assets/group/") {
		t.Fatalf("/assets/group/ must not match trailing /** without descendant component")
	}
}

func TestRuleSetMiddleDoubleStar(t *testing.T) {
	t.Parallel()

	s := mustRuleSet(t, "/a/**/b\n")
	for _, path := range []string{"/a/b", "/a/x/b", "/a/x/y/b"} {
		if !s.IsIgnored(path) {
			t.Fatalf("IsIgnored(%q)=false, want true", path)
		}
	}

	if s.IsIgnored("/c/a/x/b") {
		t.Fatalf("/c/a/x/b must not match anchored pattern")
	}
}

func TestRuleSetQuestionMarkAndClass(t *testing.T) {
	t.Parallel()

	s := mustRuleSet(t, "file?.txt\nlog[0-2].txt\nbak[!a-z]\n?.md\n")

	cases := map[string]bool{
		"/file1.txt":  true,
		"/file12.txt": false,
		"/file/.txt":  false,
		"/fileé.txt":  true,
		"/log1.txt":   true,
		"/log9.txt":   false,
		"/bak7":       true,
		"/bakx":       false,
		"/é.md":       true,
		"/éé.md":      false,
	}

	for path, want := range cases {
		if got := s.IsIgnored(path); got != want {
			t.Fatalf("IsIgnored(%q)=%v, want %v", path, got, want)
		}
	}
}

func TestRuleSetQuestionMarkMatchesOneCharacter(t *testing.T) {
	t.Parallel()

	segments := mustRuleSet(t, "?.txt\n")
	regexps := mustRuleSet(t, "**/?.txt\n")

	for _, path := range []string{"/é.txt", "/dir/é.txt", "/日.txt"} {
		if !segments.IsIgnored(path) {
			t.Fatalf("?.txt IsIgnored(%q)=false, want true", path)
		}

		if !regexps.IsIgnored(path) {
			t.Fatalf("**/?.txt IsIgnored(%q)=false, want true", path)
		}
	}

	if segments.IsIgnored("/ab.txt") || regexps.IsIgnored("/ab.txt") {
		t.Fatalf("? must match exactly one character")
	}
}

func TestRuleSetStarBacktracksByCharacter(t *testing.T) {
	t.Parallel()

	s := mustRuleSet(t, "a*?b\n")

	if !s.IsIgnored("/aéb") {
		t.Fatalf("a*?b must match /aéb")
	}

	if !s.IsIgnored("/axéyb") {
		t.Fatalf("a*?b must match /axéyb")
	}

	if s.IsIgnored("/ab") {
		t.Fatalf("a*?b must not match /ab")
	}
}

func TestRuleSetCharClassNeverMatchesSlash(t *testing.T) {
	t.Parallel()

	cases := []struct {
		rules string
		path  string
		want  bool
	}{
		{rules: "/a[!x]b\n", path: "/a/b", want: false},
		{rules: "/a[!x]b\n", path: "/acb", want: true},
		{rules: "a[!x]b\n", path: "/a/b", want: false},
		{rules: "**/a[!x]b\n", path: "/d/a/b", want: false},
		{rules: "**/a[!x]b\n", path: "/d/acb", want: true},
		{rules: "/a[+-0]b\n", path: "/a/b", want: false},
		{rules: "/a[+-0]b\n", path: "/a0b", want: true},
		{rules: "/a[/]b\n", path: "/a/b", want: false},
	}

	for _, tc := range cases {
		s := mustRuleSet(t, tc.rules)
		if got := s.IsIgnored(tc.path); got != tc.want {
			t.Fatalf("rules %q IsIgnored(%q)=%v, want %v", tc.rules, tc.path, got, tc.want)
		}
	}
}

func TestRuleSetEscapedMetaIsLiteral(t *testing.T) {
	t.Parallel()

	s := mustRuleSet(t, "\\*.txt\n**/\\?x\nfile\\[1\\].log\n")

	cases := map[string]bool{
		"/*.txt":       true,
		"/dir/*.txt":   true,
		"/notes.txt":   false,
		"/dir/a/?x":    true,
		"/dir/a/ax":    false,
		"/file[1].log": true,
		"/file1.log":   false,
	}

	for path, want := range cases {
		if got := s.IsIgnored(path); got != want {
			t.Fatalf("IsIgnored(%q)=%v, want %v", path, got, want)
		}
	}
}

func TestRuleSetMalformedPatternDegradesToLiteral(t *testing.T) {
	t.Parallel()

	s := mustRuleSet(t, "file[z-a].txt\n[unclosed\n")

	if !s.IsIgnored("/file[z-a].txt") {
		t.Fatalf("invalid class must match literally")
	}

	if s.IsIgnored("/fileb.txt") {
		t.Fatalf("invalid class must not act as a class")
	}

	if !s.IsIgnored("/x/[unclosed") {
		t.Fatalf("unclosed bracket must match literally")
	}
}

func TestRuleSetEmptyBodyMatchesNothing(t *testing.T) {
	t.Parallel()

	s := mustRuleSet(t, "/\n")
	if s.Len() != 1 {
		t.Fatalf("Len()=%d, want 1", s.Len())
	}

	if s.IsIgnored("/a") || s.IsIgnored("/a/") {
		t.Fatalf("empty body rule must match nothing")
	}
}

func TestRuleSetDecideReportsRule(t *testing.T) {
	t.Parallel()

	s := mustRuleSet(t, "*.tmp\nbuild/\n!build/keep.tmp\n")

	got := s.Decide("/build/keep.tmp")
	if got.Ignored || !got.Matched || got.RuleIndex != 2 {
		t.Fatalf("Decide(/build/keep.tmp)=%+v, want re-included by rule 2", got)
	}

	got = s.Decide("/src/main.go")
	if got.Ignored || got.Matched || got.RuleIndex != -1 {
		t.Fatalf("Decide(/src/main.go)=%+v, want no match", got)
	}

	rule, ok := s.Rule(1)
	if !ok || rule.Pattern != "build" || !rule.DirOnly {
		t.Fatalf("Rule(1)=%+v ok=%v", rule, ok)
	}

	if _, ok := s.Rule(3); ok {
		t.Fatalf("Rule(3) must be out of range")
	}
}

func TestRuleSetPrune(t *testing.T) {
	t.Parallel()

	s := mustRuleSet(t, "node_modules/\ndist/\n!dist/keep.txt\nLibrary/\n")

	if s.Prune("/src/") {
		t.Fatalf("/src/ is not ignored and must not be pruned")
	}

	if s.Prune("/node_modules/") {
		t.Fatalf("/node_modules/ is followed by an unanchored negated rule and must not be pruned")
	}

	if s.Prune("/dist/") {
		t.Fatalf("/dist/ must be descended to honour re-inclusion")
	}

	if !s.Prune("/Library/") {
		t.Fatalf("/Library/ has no later negated rule and must be pruned")
	}
}

func TestRuleSetPruneIgnoresUnrelatedNegations(t *testing.T) {
	t.Parallel()

	cases := []struct {
		rules string
		dir   string
		want  bool
	}{
		{rules: "/Library/\n!/Assets/keep.txt\n", dir: "/Library/", want: true},
		{rules: "/Library/\n!/Library\n", dir: "/Library/", want: false},
		{rules: "/Library/\n!/Library/keep.txt\n", dir: "/Library/", want: false},
		{rules: "/Library/\n!/Lib*/cache/\n", dir: "/Library/", want: false},
		{rules: "/Library/\n!/Other/**\n", dir: "/Library/", want: true},
		{rules: "/Library/\n!/**/keep.txt\n", dir: "/Library/", want: false},
		{rules: "/Library/\n!/[LM]ibrary/x\n", dir: "/Library/", want: false},
		{rules: "/Library/\n!*.md\n", dir: "/Library/", want: false},
		{rules: "/Library/\n!cache/keep\n", dir: "/Library/", want: false},
		{rules: "/a/b/\n!/a/c/keep\n", dir: "/a/b/", want: true},
		{rules: "/a/\n!/a/b/keep\n", dir: "/a/b/", want: false},
	}

	for _, tc := range cases {
		s := mustRuleSet(t, tc.rules)
		if got := s.Prune(tc.dir); got != tc.want {
			t.Fatalf("rules %q Prune(%q)=%v, want %v", tc.rules, tc.dir, got, tc.want)
		}
	}
}

func TestRuleSetPruneCaseInsensitive(t *testing.T) {
	t.Parallel()

	rules, err := ParseRulesString("/library/\n!/LIBRARY/keep.txt\n!/Other/x\n")
	if err != nil {
		t.Fatalf("ParseRulesString: %v", err)
	}

	s := NewRuleSet(rules, Options{CaseInsensitive: true})
	if s.Prune("/Library/") {
		t.Fatalf("/Library/ must be descended for /LIBRARY/keep.txt")
	}

	if s.IsIgnored("/Library/keep.txt") {
		t.Fatalf("/Library/keep.txt must be re-included")
	}
}

func TestRuleSetRulesReturnsCopy(t *testing.T) {
	t.Parallel()

	s := mustRuleSet(t, "*.tmp\n")
	rules := s.Rules()
	rules[0].Pattern = "mutated"

	if !s.IsIgnored("/a.tmp") {
		t.Fatalf("mutating Rules() result must not affect rule set")
	}

	if got, _ := s.Rule(0); got.Pattern != "*.tmp" {
		t.Fatalf("Rule(0).Pattern=%q, want *.tmp", got.Pattern)
	}
}

func TestRuleSetConcurrentDecide(t *testing.T) {
	t.Parallel()

	s := mustRuleSet(t, "*.log\n!important.log\ndist/\n!dist/keep.txt\n**/temp/\n")
	paths := map[string]bool{
		"/a.log":          true,
		"/important.log":  false,
		"/dist/keep.txt":  false,
		"/dist/a.bin":     true,
		"/x/y/temp/z.txt": true,
		"/src/main.cs":    false,
	}

	var wg sync.WaitGroup
	errs := make(chan string, 64)
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				for path, want := range paths {
					if got := s.IsIgnored(path); got != want {
						errs <- path
						return
					}
				}
			}
		}()
	}

	wg.Wait()
	close(errs)

	for path := range errs {
		t.Fatalf("concurrent IsIgnored(%q) returned wrong decision", path)
	}
}
