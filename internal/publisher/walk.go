// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/publish

package publisher

import (
	"context"
	"io/fs"
	"path/filepath"

	"github.com/woozymasta/publish/pathfilter"
)

// walkFunc receives a regular file: its absolute path, its root-relative
// slash path without leading "/" and its size.
type walkFunc func(src, rel string, size int64) error

// walkFiltered visits regular files under root in lexical order, skipping
// paths ignored by rules. A nil rule set keeps everything.
//
// Candidates are "/"-rooted with a trailing "/" for directories. An ignored
// directory is skipped whole only when rules.Prune allows it; otherwise the
// walk descends and every descendant is decided on its own, so a later
// negated rule can bring a nested file back. Symlinks and other non-regular
// files are skipped.
func walkFiltered(ctx context.Context, root string, rules *pathfilter.RuleSet, fn walkFunc) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		if p == root {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if rules.Prune("/" + rel + "/") {
				return filepath.SkipDir
			}

			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}

		if rules.IsIgnored("/" + rel) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		return fn(p, rel, info.Size())
	})
}
