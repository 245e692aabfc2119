// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/publish

// Package config loads packaging settings from defaults, a project config file,
// PUBLISH_ environment variables and command-line flags.
package config

import (
	"path/filepath"

	"github.com/woozymasta/publish/pathfilter"
)

// Defaults.
var (
	// DefaultBuildDirs are build folder names probed in order; the first existing one is packed.
	DefaultBuildDirs = []string{"Build", "Builds", "build", "builds"}
	// DefaultAssetDirs are folders whose top-level files are copied into the target.
	DefaultAssetDirs = []string{"Recordings", "Documentation"}
	// ConfigFileNames are project config files probed in the project root, in order.
	ConfigFileNames = []string{"publish.toml", ".publish.toml", "publish.yaml", "publish.yml", ".publish.yaml", ".publish.yml"}
)

// EnvPrefix prefixes environment overrides. A double underscore nests keys:
// PUBLISH_IGNORE__RECURSIVE sets ignore.recursive.
const EnvPrefix = "PUBLISH_"

// TargetSuffix is appended to the project name to build the default target directory name.
const TargetSuffix = " Package"

// Config is the resolved packaging configuration.
type Config struct {
	// ProjectDir is the absolute project root.
	ProjectDir string `koanf:"project_dir" json:"project_dir" yaml:"project_dir"`
	// TargetDir is the absolute output directory.
	TargetDir string `koanf:"target_dir" json:"target_dir" yaml:"target_dir"`
	// BuildDirs are candidate build folder names relative to the project root.
	BuildDirs []string `koanf:"build_dirs" json:"build_dirs" yaml:"build_dirs"`
	// AssetDirs are auxiliary folder names relative to the project root.
	AssetDirs []string `koanf:"asset_dirs" json:"asset_dirs" yaml:"asset_dirs"`
	// NoProgress disables the progress bar.
	NoProgress bool `koanf:"no_progress" json:"no_progress" yaml:"no_progress"`
	// Ignore configures the path filter.
	Ignore IgnoreConfig `koanf:"ignore" json:"ignore" yaml:"ignore"`

	// FileUsed is the config file that was loaded, empty when none.
	FileUsed string `koanf:"-" json:"-" yaml:"-"`
}

// IgnoreConfig configures which project files are left out of the source archive.
type IgnoreConfig struct {
	// Files are rule file names discovered in the project root.
	Files []string `koanf:"files" json:"files" yaml:"files"`
	// ExtraFiles are explicit rule files loaded after discovered ones. Each must exist.
	ExtraFiles []string `koanf:"extra_files" json:"extra_files,omitempty" yaml:"extra_files,omitempty"`
	// Patterns are inline rules appended after all rule files.
	Patterns []string `koanf:"patterns" json:"patterns,omitempty" yaml:"patterns,omitempty"`
	// ExcludeExtensions are file extensions always ignored.
	ExcludeExtensions []string `koanf:"exclude_extensions" json:"exclude_extensions,omitempty" yaml:"exclude_extensions,omitempty"`
	// Recursive also discovers rule files in nested directories.
	Recursive bool `koanf:"recursive" json:"recursive" yaml:"recursive"`
	// CaseInsensitive enables ASCII case-insensitive matching.
	CaseInsensitive bool `koanf:"case_insensitive" json:"case_insensitive" yaml:"case_insensitive"`
	// ExcludeTarget ignores the target directory when it lives inside the project.
	// The .git directory is ignored regardless.
	ExcludeTarget bool `koanf:"exclude_target" json:"exclude_target" yaml:"exclude_target"`
	// SymlinkEscapeCheck rejects discovered rule files resolving outside the project.
	SymlinkEscapeCheck bool `koanf:"symlink_escape_check" json:"symlink_escape_check" yaml:"symlink_escape_check"`
}

// FilterOptions returns matcher options for the configured ignore settings.
func (c IgnoreConfig) FilterOptions() pathfilter.Options {
	return pathfilter.Options{CaseInsensitive: c.CaseInsensitive}
}

// DiscoverOptions returns rule file discovery options for the configured ignore settings.
func (c IgnoreConfig) DiscoverOptions() pathfilter.DiscoverOptions {
	return pathfilter.DiscoverOptions{
		Names:                    c.Files,
		Recursive:                c.Recursive,
		EnableSymlinkEscapeCheck: c.SymlinkEscapeCheck,
	}
}

// ProjectName returns the project folder name.
func (c *Config) ProjectName() string {
	return filepath.Base(c.ProjectDir)
}

// DefaultTargetDir returns "<parent>/<project> Package" for a project root.
func DefaultTargetDir(projectDir string) string {
	return filepath.Join(filepath.Dir(projectDir), filepath.Base(projectDir)+TargetSuffix)
}

// defaultValues returns the lowest-priority configuration layer.
func defaultValues() map[string]any {
	return map[string]any{
		"build_dirs":                  DefaultBuildDirs,
		"asset_dirs":                  DefaultAssetDirs,
		"no_progress":                 false,
		"ignore.files":                pathfilter.DefaultRulesFileNames,
		"ignore.recursive":            false,
		"ignore.case_insensitive":     false,
		"ignore.exclude_target":       true,
		"ignore.symlink_escape_check": true,
	}
}
