// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/publish

package config

import (
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Flag names shared by the CLI and the loader.
const (
	FlagProjectDir = "project-dir"
	FlagTargetDir  = "target-dir"
	FlagConfig     = "config"
	FlagIgnoreFile = "ignore-file"
	FlagExclude    = "exclude"
	FlagNoProgress = "no-progress"
	FlagRecursive  = "recursive-ignore"
)

// flagKeys maps flag names to config keys. Flags not listed here are not config.
var flagKeys = map[string]string{
	FlagTargetDir:  "target_dir",
	FlagIgnoreFile: "ignore.extra_files",
	FlagExclude:    "ignore.patterns",
	FlagNoProgress: "no_progress",
	FlagRecursive:  "ignore.recursive",
}

// pathFlags hold filesystem paths, resolved against the working directory.
var pathFlags = map[string]bool{
	FlagTargetDir:  true,
	FlagIgnoreFile: true,
}

// BindFlags registers configuration flags on fs.
func BindFlags(fs *pflag.FlagSet) {
	fs.StringP(FlagProjectDir, "C", "", "project root (default: current directory)")
	fs.StringP(FlagTargetDir, "o", "", `output directory (default: "<parent>/<project> Package")`)
	fs.String(FlagConfig, "", "config file (default: publish.toml or publish.yaml in the project root)")
	fs.StringSlice(FlagIgnoreFile, nil, "extra ignore rules file, loaded after discovered ones (repeatable)")
	fs.StringSlice(FlagExclude, nil, "inline ignore rule, applied after all rule files (repeatable)")
	fs.Bool(FlagNoProgress, false, "disable the progress bar")
	fs.Bool(FlagRecursive, false, "also load ignore files from nested directories")
}

// flagProvider returns a koanf provider over explicitly changed config flags.
func flagProvider(fs *pflag.FlagSet, k *koanf.Koanf) *posflag.Posflag {
	return posflag.ProviderWithFlag(fs, ".", k, func(f *pflag.Flag) (string, any) {
		key, ok := flagKeys[f.Name]
		if !ok || !f.Changed {
			return "", nil
		}

		val := posflag.FlagVal(fs, f)
		if !pathFlags[f.Name] {
			return key, val
		}

		switch v := val.(type) {
		case string:
			return key, absPath(v)
		case []string:
			out := make([]string, len(v))
			for i := range v {
				out[i] = absPath(v[i])
			}

			return key, out
		default:
			return key, val
		}
	})
}

// flagString returns a changed string flag value.
func flagString(fs *pflag.FlagSet, name string) string {
	if fs == nil {
		return ""
	}

	f := fs.Lookup(name)
	if f == nil || !f.Changed {
		return ""
	}

	return strings.TrimSpace(f.Value.String())
}

// absPath resolves p against the working directory, keeping it as is on failure.
func absPath(p string) string {
	if p == "" {
		return p
	}

	abs, err := filepath.Abs(p)
	if err != nil {
		return filepath.Clean(p)
	}

	return abs
}
