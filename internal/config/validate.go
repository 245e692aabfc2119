// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/publish

package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Sentinel errors for configuration.
var (
	// ErrInvalidConfig indicates a configuration value failed validation.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrUnsupportedFormat indicates a config file extension with no parser.
	ErrUnsupportedFormat = errors.New("unsupported config file format")
)

// Validate checks configuration values that would otherwise fail late in a run.
func (c *Config) Validate() error {
	var errs []error

	if c.ProjectDir == "" {
		errs = append(errs, fmt.Errorf("%w: project_dir is empty", ErrInvalidConfig))
	}

	if c.TargetDir != "" && filepath.Clean(c.TargetDir) == filepath.Clean(c.ProjectDir) {
		errs = append(errs, fmt.Errorf("%w: target_dir must differ from project_dir", ErrInvalidConfig))
	}

	errs = append(errs, validateNames("build_dirs", c.BuildDirs)...)
	errs = append(errs, validateNames("asset_dirs", c.AssetDirs)...)
	errs = append(errs, validateNames("ignore.files", c.Ignore.Files)...)

	for _, ext := range c.Ignore.ExcludeExtensions {
		if strings.ContainsAny(ext, `/\`) {
			errs = append(errs, fmt.Errorf("%w: ignore.exclude_extensions: %q contains a path separator", ErrInvalidConfig, ext))
		}
	}

	return errors.Join(errs...)
}

// validateNames checks that every value is a single path element.
func validateNames(key string, names []string) []error {
	var errs []error
	for _, name := range names {
		trimmed := strings.TrimSpace(name)
		switch {
		case trimmed == "":
			errs = append(errs, fmt.Errorf("%w: %s: empty name", ErrInvalidConfig, key))
		case trimmed == "." || trimmed == "..":
			errs = append(errs, fmt.Errorf("%w: %s: %q is not a folder name", ErrInvalidConfig, key, name))
		case strings.ContainsAny(trimmed, `/\`):
			errs = append(errs, fmt.Errorf("%w: %s: %q contains a path separator", ErrInvalidConfig, key, name))
		}
	}

	return errs
}
