// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/publish

package pathfilter

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DefaultRulesFileNames are rule files looked up when DiscoverOptions.Names is empty.
var DefaultRulesFileNames = []string{".gitignore", ".publishignore"}

// DiscoverOptions configures rule file discovery.
type DiscoverOptions struct {
	// Names are rule file names looked up in each directory, in load order.
	// Empty value defaults to DefaultRulesFileNames.
	Names []string `json:"names,omitempty" yaml:"names,omitempty"`
	// Recursive also collects rule files from nested directories.
	// Nested rules are not scoped to their directory; they apply to root-relative paths.
	Recursive bool `json:"recursive,omitempty" yaml:"recursive,omitempty"`
	// EnableSymlinkEscapeCheck rejects rule files that resolve outside root.
	EnableSymlinkEscapeCheck bool `json:"enable_symlink_escape_check,omitempty" yaml:"enable_symlink_escape_check,omitempty"`
}

// Discover returns rule files found under root in load order:
// root files first in Names order, then nested files in lexical walk order
// when Recursive is set. ".git" directories are never descended.
func Discover(root string, opts DiscoverOptions) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("abs root: %w", err)
	}

	names := opts.Names
	if len(names) == 0 {
		names = DefaultRulesFileNames
	}

	cleaned := make([]string, 0, len(names))
	for _, raw := range names {
		name, err := cleanRulesFileName(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", err, raw)
		}

		cleaned = append(cleaned, name)
	}

	resolvedRoot := absRoot
	if opts.EnableSymlinkEscapeCheck {
		resolvedRoot, err = resolvePathOrAbs(absRoot)
		if err != nil {
			return nil, fmt.Errorf("resolve root: %w", err)
		}
	}

	d := discoverer{
		root:         absRoot,
		resolvedRoot: resolvedRoot,
		names:        cleaned,
		escapeCheck:  opts.EnableSymlinkEscapeCheck,
	}

	found, err := d.collect(absRoot)
	if err != nil {
		return nil, err
	}

	if !opts.Recursive {
		return found, nil
	}

	err = filepath.WalkDir(absRoot, func(p string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		if !entry.IsDir() || p == absRoot {
			return nil
		}

		if entry.Name() == ".git" {
			return filepath.SkipDir
		}

		nested, err := d.collect(p)
		if err != nil {
			return err
		}

		found = append(found, nested...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", absRoot, err)
	}

	return found, nil
}

// discoverer holds prepared discovery state.
type discoverer struct {
	root         string
	resolvedRoot string
	names        []string
	escapeCheck  bool
}

// collect returns existing rule files in one directory in names order.
func (d *discoverer) collect(dir string) ([]string, error) {
	var out []string
	for _, name := range d.names {
		rulesPath := filepath.Join(dir, name)

		info, err := os.Stat(rulesPath)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}

			return nil, &RuleFileError{Path: rulesPath, Err: err}
		}

		if info.IsDir() {
			continue
		}

		if d.escapeCheck {
			resolved, err := resolvePathOrAbs(rulesPath)
			if err != nil {
				return nil, fmt.Errorf("resolve %s: %w", rulesPath, err)
			}

			if !isPathWithinRoot(d.resolvedRoot, resolved) {
				return nil, fmt.Errorf("%w: %s", ErrRulesPathOutsideRoot, rulesPath)
			}
		}

		out = append(out, rulesPath)
	}

	return out, nil
}

// cleanRulesFileName validates and normalizes a rules file name.
func cleanRulesFileName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" || filepath.IsAbs(name) {
		return "", ErrInvalidRulesFileName
	}

	name = filepath.ToSlash(name)
	if strings.Contains(name, "/") || name == "." || name == ".." {
		return "", ErrInvalidRulesFileName
	}

	return name, nil
}

// resolvePathOrAbs resolves symlinks/junctions and falls back to absolute path for non-link paths.
func resolvePathOrAbs(path string) (string, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err == nil {
		return resolved, nil
	}

	abs, absErr := filepath.Abs(path)
	if absErr != nil {
		return "", absErr
	}

	if os.IsNotExist(err) {
		return abs, nil
	}

	return "", err
}

// isPathWithinRoot reports whether target path is inside root path.
func isPathWithinRoot(root string, target string) bool {
	rel, err := filepath.Rel(root, target)
	if err != nil {
		return false
	}

	if rel == "." {
		return true
	}

	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
