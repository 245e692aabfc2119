// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/publish

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Load resolves configuration.
//
// Precedence (highest to lowest): flags > PUBLISH_ env > config file > defaults.
// The project root is taken from --project-dir, then PUBLISH_PROJECT_DIR,
// then the directory of an explicit --config file, then the working directory.
// Relative paths from the config file and env are resolved against the project root.
func Load(flags *pflag.FlagSet) (*Config, error) {
	projectDir, err := resolveProjectDir(flags)
	if err != nil {
		return nil, err
	}

	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(defaultValues(), "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	// 2. Config file
	cfgFile := flagString(flags, FlagConfig)
	if cfgFile != "" {
		cfgFile = absPath(cfgFile)
	} else {
		cfgFile = findConfigFile(projectDir)
	}

	if cfgFile != "" {
		parser, err := parserFor(cfgFile)
		if err != nil {
			return nil, err
		}

		if err := k.Load(file.Provider(cfgFile), parser); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", cfgFile, err)
		}
	}

	// 3. Environment: PUBLISH_IGNORE__CASE_INSENSITIVE -> ignore.case_insensitive
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	// 4. Explicitly changed flags
	if flags != nil {
		if err := k.Load(flagProvider(flags, k), nil); err != nil {
			return nil, fmt.Errorf("load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.ProjectDir = projectDir
	cfg.FileUsed = cfgFile
	cfg.resolvePaths()

	return &cfg, nil
}

// resolvePaths makes path settings absolute and fills the default target directory.
func (c *Config) resolvePaths() {
	c.TargetDir = resolvePathRelativeTo(c.TargetDir, c.ProjectDir)
	if c.TargetDir == "" {
		c.TargetDir = DefaultTargetDir(c.ProjectDir)
	}

	for i := range c.Ignore.ExtraFiles {
		c.Ignore.ExtraFiles[i] = resolvePathRelativeTo(c.Ignore.ExtraFiles[i], c.ProjectDir)
	}
}

// resolveProjectDir determines the absolute project root.
func resolveProjectDir(flags *pflag.FlagSet) (string, error) {
	dir := flagString(flags, FlagProjectDir)
	if dir == "" {
		dir = strings.TrimSpace(os.Getenv(EnvPrefix + "PROJECT_DIR"))
	}

	if dir == "" {
		if cfgFile := flagString(flags, FlagConfig); cfgFile != "" {
			dir = filepath.Dir(absPath(cfgFile))
		}
	}

	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}

		dir = wd
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve project dir %s: %w", dir, err)
	}

	return abs, nil
}

// findConfigFile returns the first config file present in dir.
func findConfigFile(dir string) string {
	for _, name := range ConfigFileNames {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}

	return ""
}

// parserFor selects a koanf parser by config file extension.
func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Parser(), nil
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// envKey maps PUBLISH_ variables to config keys.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// resolvePathRelativeTo resolves path relative to baseDir if it is not absolute.
func resolvePathRelativeTo(path, baseDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(baseDir, path)
}
