// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/publish

package publisher

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/woozymasta/publish/internal/logging"
)

// Stage kinds.
const (
	KindBuild  = "build"
	KindSource = "source"
	KindAssets = "assets"
)

// BuildArchiveName is the build archive file name in the target directory.
const BuildArchiveName = "Build.zip"

// FileEntry is one unit of work.
type FileEntry struct {
	// Src is the absolute source path.
	Src string `json:"src" yaml:"src"`
	// Name is the archive entry name, or the file name inside the target for copies.
	Name string `json:"name" yaml:"name"`
	// Size is the source size in bytes.
	Size int64 `json:"size" yaml:"size"`
}

// StagePlan lists the work of one stage.
type StagePlan struct {
	// Name identifies the stage in logs and progress, e.g. "build" or "Recordings".
	Name string `json:"name" yaml:"name"`
	// Kind is KindBuild, KindSource or KindAssets.
	Kind string `json:"kind" yaml:"kind"`
	// Output is the archive path for archive stages, the target directory for copies.
	Output string `json:"output" yaml:"output"`
	// Files are the entries in processing order.
	Files []FileEntry `json:"files" yaml:"files"`
}

// Bytes returns the total source size of the stage.
func (s StagePlan) Bytes() int64 {
	var n int64
	for _, f := range s.Files {
		n += f.Size
	}

	return n
}

// Plan is the first phase of a run: every unit of work, counted before anything is written.
type Plan struct {
	// Target is the output directory.
	Target string `json:"target" yaml:"target"`
	// Stages are in run order. Stages with no source folder are omitted.
	Stages []StagePlan `json:"stages" yaml:"stages"`
}

// Total returns the number of files across all stages.
func (p *Plan) Total() int {
	total := 0
	for _, s := range p.Stages {
		total += len(s.Files)
	}

	return total
}

// Plan enumerates build, source and asset files. Stages are listed concurrently.
func (p *Publisher) Plan(ctx context.Context) (*Plan, error) {
	done := logging.Operation(p.logger, "plan")
	defer done()

	target := p.cfg.TargetDir
	var stages []*StagePlan

	if p.buildDir != "" {
		stages = append(stages, &StagePlan{
			Name:   KindBuild,
			Kind:   KindBuild,
			Output: filepath.Join(target, BuildArchiveName),
		})
	}

	stages = append(stages, &StagePlan{
		Name:   KindSource,
		Kind:   KindSource,
		Output: filepath.Join(target, p.cfg.ProjectName()+".zip"),
	})

	assetDirs := make(map[*StagePlan]string)
	for _, name := range p.cfg.AssetDirs {
		dir := filepath.Join(p.cfg.ProjectDir, name)
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			continue
		}

		s := &StagePlan{Name: name, Kind: KindAssets, Output: target}
		assetDirs[s] = dir
		stages = append(stages, s)
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, s := range stages {
		s := s
		g.Go(func() error {
			var err error
			switch s.Kind {
			case KindBuild:
				s.Files, err = p.listTree(gctx, p.buildDir, false)
			case KindSource:
				s.Files, err = p.listTree(gctx, p.cfg.ProjectDir, true)
			default:
				s.Files, err = listTopLevel(assetDirs[s])
			}

			if err != nil {
				return fmt.Errorf("plan %s: %w", s.Name, err)
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	plan := &Plan{Target: target, Stages: make([]StagePlan, len(stages))}
	for i, s := range stages {
		plan.Stages[i] = *s
		p.logger.Debug().Str("stage", s.Name).Int("files", len(s.Files)).Msg("stage planned")
	}

	p.logger.Info().Int("files", plan.Total()).Msg("total files to publish")
	return plan, nil
}

// listTree lists files under dir with entry names "<dir name>/<rel>".
// Only the source tree is filtered.
func (p *Publisher) listTree(ctx context.Context, dir string, filtered bool) ([]FileEntry, error) {
	rules := p.rules
	if !filtered {
		rules = nil
	}

	base := filepath.Base(dir)
	var files []FileEntry
	err := walkFiltered(ctx, dir, rules, func(src, rel string, size int64) error {
		files = append(files, FileEntry{Src: src, Name: path.Join(base, rel), Size: size})
		return nil
	})

	return files, err
}

// listTopLevel lists regular files directly inside dir; subfolders are not copied.
func listTopLevel(dir string) ([]FileEntry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []FileEntry
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}

		info, err := e.Info()
		if err != nil {
			return nil, err
		}

		files = append(files, FileEntry{
			Src:  filepath.Join(dir, e.Name()),
			Name: e.Name(),
			Size: info.Size(),
		})
	}

	return files, nil
}
