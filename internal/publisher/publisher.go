// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/publish

// Package publisher packages a project into a target directory: the build
// folder as Build.zip, the filtered sources as <Project>.zip and the top-level
// files of asset folders copied as-is.
package publisher

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/woozymasta/publish/internal/config"
	"github.com/woozymasta/publish/internal/logging"
	"github.com/woozymasta/publish/internal/progress"
	"github.com/woozymasta/publish/pathfilter"
)

// Rule sources for rules that do not come from a file.
const (
	SourceExtensions = "exclude_extensions"
	SourcePatterns   = "patterns"
	SourceBuiltin    = "builtin"
)

// Publisher runs packaging for one project. It is built once per run;
// its rule set is immutable and shared by all stages.
type Publisher struct {
	cfg       *config.Config
	rules     *pathfilter.RuleSet
	ruleFiles []string
	buildDir  string
	logger    zerolog.Logger
	reporter  progress.Reporter
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithLogger sets the logger. Defaults to the "publisher" component logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Publisher) { p.logger = logger }
}

// WithReporter sets the progress reporter. Defaults to progress.Nop.
func WithReporter(r progress.Reporter) Option {
	return func(p *Publisher) { p.reporter = r }
}

// New validates directories, then discovers and loads ignore rules.
// An unreadable rule file aborts with an error naming the file.
func New(cfg *config.Config, opts ...Option) (*Publisher, error) {
	p := &Publisher{
		cfg:      cfg,
		logger:   logging.Component("publisher"),
		reporter: progress.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}

	info, err := os.Stat(cfg.ProjectDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProjectDir, err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrProjectDir, cfg.ProjectDir)
	}

	if err := p.loadRules(); err != nil {
		return nil, err
	}

	p.buildDir = findBuildDir(cfg.ProjectDir, cfg.BuildDirs)
	p.logger.Debug().
		Str("project", cfg.ProjectDir).
		Str("target", cfg.TargetDir).
		Str("build_dir", p.buildDir).
		Int("rules", p.rules.Len()).
		Strs("rule_files", p.ruleFiles).
		Msg("publisher ready")

	return p, nil
}

// Rules returns the effective rule set.
func (p *Publisher) Rules() *pathfilter.RuleSet {
	return p.rules
}

// RuleFiles returns the rule files in load order.
func (p *Publisher) RuleFiles() []string {
	out := make([]string, len(p.ruleFiles))
	copy(out, p.ruleFiles)
	return out
}

// BuildDir returns the detected build folder, empty when none exists.
func (p *Publisher) BuildDir() string {
	return p.buildDir
}

// Config returns the configuration the publisher was built with.
func (p *Publisher) Config() *config.Config {
	return p.cfg
}

// loadRules builds the rule set in order: discovered files, extra files,
// excluded extensions, inline patterns, builtin exclusions.
func (p *Publisher) loadRules() error {
	done := logging.Operation(p.logger, "load rules")
	defer done()

	ign := p.cfg.Ignore

	discovered, err := pathfilter.Discover(p.cfg.ProjectDir, ign.DiscoverOptions())
	if err != nil {
		return fmt.Errorf("discover rule files: %w", err)
	}

	p.ruleFiles = append(discovered, ign.ExtraFiles...)
	fromFiles, err := pathfilter.LoadRulesFiles(p.ruleFiles...)
	if err != nil {
		return err
	}

	inline, err := pathfilter.ParseRules(strings.NewReader(strings.Join(ign.Patterns, "\n")), SourcePatterns)
	if err != nil {
		return fmt.Errorf("parse inline patterns: %w", err)
	}

	p.rules = pathfilter.NewRuleSet(pathfilter.MergeRules(
		fromFiles,
		pathfilter.ExtensionRules(ign.ExcludeExtensions, SourceExtensions),
		inline,
		p.builtinRules(),
	), ign.FilterOptions())

	return nil
}

// builtinRules excludes VCS metadata and, unless disabled, a target directory
// nested in the project. They come last so that no user rule can re-include them.
func (p *Publisher) builtinRules() []pathfilter.Rule {
	rules := []pathfilter.Rule{{Pattern: ".git", Anchored: true, DirOnly: true, Source: SourceBuiltin}}
	if !p.cfg.Ignore.ExcludeTarget {
		return rules
	}

	rel, err := filepath.Rel(p.cfg.ProjectDir, p.cfg.TargetDir)
	if err == nil && rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel) {
		rules = append(rules, pathfilter.Rule{
			Pattern:  filepath.ToSlash(rel),
			Anchored: true,
			DirOnly:  true,
			Source:   SourceBuiltin,
		})
	}

	return rules
}

// findBuildDir returns the first existing build folder in names order.
func findBuildDir(projectDir string, names []string) string {
	for _, name := range names {
		dir := filepath.Join(projectDir, name)
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}

	return ""
}
