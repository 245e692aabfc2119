// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/publish

package publisher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/dustin/go-humanize"
	"github.com/fluxcd/pkg/lockedfile"
	"github.com/opencontainers/go-digest"

	"github.com/woozymasta/publish/internal/archive"
	"github.com/woozymasta/publish/internal/logging"
)

// LockFileName is the run lock inside the target directory.
const LockFileName = ".publish.lock"

// StageResult is the outcome of one stage.
type StageResult struct {
	// Name is the stage name.
	Name string `json:"name" yaml:"name"`
	// Kind is the stage kind.
	Kind string `json:"kind" yaml:"kind"`
	// Output is the archive or target directory written.
	Output string `json:"output" yaml:"output"`
	// Files is the number of files written.
	Files int `json:"files" yaml:"files"`
	// Bytes is the uncompressed size of written files.
	Bytes int64 `json:"bytes" yaml:"bytes"`
	// Size is the archive size, zero for copies.
	Size int64 `json:"size,omitempty" yaml:"size,omitempty"`
	// Digest is the archive digest, empty for copies.
	Digest digest.Digest `json:"digest,omitempty" yaml:"digest,omitempty"`
	// Err is set when the stage failed.
	Err error `json:"-" yaml:"-"`
}

// Result is the outcome of a run.
type Result struct {
	// Target is the output directory.
	Target string `json:"target" yaml:"target"`
	// Stages are in run order.
	Stages []StageResult `json:"stages" yaml:"stages"`
	// Duration is the wall time of the run.
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// Err joins the errors of failed stages, nil when all succeeded.
func (r *Result) Err() error {
	var errs []error
	for _, s := range r.Stages {
		if s.Err != nil {
			errs = append(errs, &StageError{Stage: s.Name, Err: s.Err})
		}
	}

	return errors.Join(errs...)
}

// Run plans and executes a packaging run.
//
// The target directory is created first; failing that aborts the run. The
// target is locked for the duration of the run. A failing stage is logged and
// recorded, and later stages still run. The returned error joins stage errors.
func (p *Publisher) Run(ctx context.Context) (*Result, error) {
	start := time.Now()

	plan, err := p.Plan(ctx)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(plan.Target, 0o755); err != nil {
		p.logger.Error().Err(err).Str("target", plan.Target).Msg("unable to create target folder")
		return nil, fmt.Errorf("%w %s: %w", ErrTargetCreate, plan.Target, err)
	}

	unlock, err := lockedfile.MutexAt(filepath.Join(plan.Target, LockFileName)).Lock()
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrLock, plan.Target, err)
	}
	defer unlock()

	p.logger.Info().Str("target", plan.Target).Msg("project will be published")

	p.reporter.Start("publishing "+p.cfg.ProjectName(), plan.Total())
	defer p.reporter.Stop()

	res := &Result{Target: plan.Target, Stages: make([]StageResult, 0, len(plan.Stages))}
	for _, stage := range plan.Stages {
		sr := p.runStage(ctx, stage)
		if sr.Err != nil {
			p.logger.Error().Err(sr.Err).Str("stage", stage.Name).Msg("unable to publish stage")
		} else {
			p.logger.Info().
				Str("stage", stage.Name).
				Int("files", sr.Files).
				Str("bytes", humanize.Bytes(uint64(sr.Bytes))).
				Str("output", sr.Output).
				Msg("stage published")
		}

		res.Stages = append(res.Stages, sr)
	}

	res.Duration = time.Since(start)
	return res, res.Err()
}

// runStage executes one planned stage.
func (p *Publisher) runStage(ctx context.Context, stage StagePlan) StageResult {
	done := logging.Operation(p.logger.With().Str("stage", stage.Name).Logger(), "stage")
	defer done()

	sr := StageResult{Name: stage.Name, Kind: stage.Kind, Output: stage.Output}
	if stage.Kind == KindAssets {
		sr.Err = p.copyFiles(ctx, stage, &sr)
		return sr
	}

	ar, err := p.archiveFiles(ctx, stage)
	if err != nil {
		sr.Err = err
		return sr
	}

	sr.Files = ar.Files
	sr.Bytes = ar.Bytes
	sr.Size = ar.Size
	sr.Digest = ar.Digest
	return sr
}

// archiveFiles writes stage files into a zip archive at stage.Output.
func (p *Publisher) archiveFiles(ctx context.Context, stage StagePlan) (*archive.Result, error) {
	w, err := archive.Create(stage.Output)
	if err != nil {
		return nil, err
	}

	for _, f := range stage.Files {
		if err := ctx.Err(); err != nil {
			w.Abort()
			return nil, err
		}

		if err := w.AddFile(f.Src, f.Name); err != nil {
			w.Abort()
			return nil, err
		}

		p.reporter.Step(stage.Name)
	}

	return w.Close()
}

// copyFiles copies stage files into the target directory, overwriting existing files.
func (p *Publisher) copyFiles(ctx context.Context, stage StagePlan, sr *StageResult) error {
	for _, f := range stage.Files {
		if err := ctx.Err(); err != nil {
			return err
		}

		dst, err := securejoin.SecureJoin(stage.Output, f.Name)
		if err != nil {
			return err
		}

		n, err := copyFile(f.Src, dst)
		if err != nil {
			return err
		}

		sr.Files++
		sr.Bytes += n
		p.reporter.Step(stage.Name)
	}

	return nil
}

// copyFile copies a regular file keeping its permission bits and modification time.
func copyFile(src, dst string) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer func() { _ = in.Close() }()

	info, err := in.Stat()
	if err != nil {
		return 0, err
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return 0, err
	}

	n, err := io.Copy(out, in)
	if err != nil {
		_ = out.Close()
		return n, fmt.Errorf("copy %s: %w", src, err)
	}

	if err := out.Close(); err != nil {
		return n, err
	}

	if err := os.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		return n, err
	}

	return n, nil
}
