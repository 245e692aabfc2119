// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/publish

package publisher

import (
	"errors"
	"fmt"
)

// Sentinel errors for packaging runs.
var (
	// ErrProjectDir indicates a missing or unusable project root.
	ErrProjectDir = errors.New("project directory is not usable")
	// ErrTargetCreate indicates the target directory could not be created; the run is aborted.
	ErrTargetCreate = errors.New("unable to create target directory")
	// ErrLock indicates the target run lock could not be taken.
	ErrLock = errors.New("unable to lock target directory")
)

// StageError reports a failed stage. Later stages still run.
type StageError struct {
	// Stage is the failed stage name.
	Stage string
	// Err is the cause.
	Err error
}

// Error implements error.
func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

// Unwrap returns the cause.
func (e *StageError) Unwrap() error {
	return e.Err
}
