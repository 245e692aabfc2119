// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/publish

package pathfilter

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadRulesFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".rules")
	err := os.WriteFile(path, []byte("*.tmp\n!keep.tmp\n"), 0o600)
	if err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	rules, err := LoadRulesFile(path)
	if err != nil {
		t.Fatalf("LoadRulesFile: %v", err)
	}

	if len(rules) != 2 {
		t.Fatalf("len(rules)=%d, want 2", len(rules))
	}

	if rules[0].Negated || !rules[1].Negated {
		t.Fatalf("unexpected negation flags: %+v", rules)
	}

	if rules[1].Source != path+":2" {
		t.Fatalf("rules[1].Source=%q, want %q", rules[1].Source, path+":2")
	}
}

func TestLoadOrderAcrossFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	p1 := filepath.Join(dir, "a.rules")
	p2 := filepath.Join(dir, "b.rules")

	if err := os.WriteFile(p1, []byte("*.log\n"), 0o600); err != nil {
		t.Fatalf("WriteFile(%s): %v", p1, err)
	}

	if err := os.WriteFile(p2, []byte("!important.log\n"), 0o600); err != nil {
		t.Fatalf("WriteFile(%s): %v", p2, err)
	}

	s, err := Load(Options{}, p1, p2)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	rules := s.Rules()
	if len(rules) != 2 || rules[0].Order != 0 || rules[1].Order != 1 {
		t.Fatalf("unexpected merged rules: %+v", rules)
	}

	if s.IsIgnored("/important.log") {
		t.Fatalf("later file must override earlier file")
	}

	reversed, err := Load(Options{}, p2, p1)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if !reversed.IsIgnored("/important.log") {
		t.Fatalf("file order must be significant")
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := filepath.Join(dir, "good.rules")
	if err := os.WriteFile(good, []byte("*.tmp\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	missing := filepath.Join(dir, "missing.rules")
	s, err := Load(Options{}, good, missing)
	if err == nil {
		t.Fatalf("Load must fail for missing file, got %d rules", s.Len())
	}

	if !errors.Is(err, ErrRulesFileUnreadable) {
		t.Fatalf("err=%v, want ErrRulesFileUnreadable", err)
	}

	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err=%v, want wrapped os.ErrNotExist", err)
	}

	var fileErr *RuleFileError
	if !errors.As(err, &fileErr) || fileErr.Path != missing {
		t.Fatalf("err=%v, want *RuleFileError for %s", err, missing)
	}

	if !strings.Contains(err.Error(), missing) {
		t.Fatalf("error message %q must name the file", err.Error())
	}
}

func TestLoadDirectoryAsFileFails(t *testing.T) {
	t.Parallel()

	_, err := LoadRulesFile(t.TempDir())
	if !errors.Is(err, ErrRulesFileUnreadable) {
		t.Fatalf("err=%v, want ErrRulesFileUnreadable", err)
	}
}
