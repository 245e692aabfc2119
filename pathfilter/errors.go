// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/publish

package pathfilter

import (
	"errors"
	"fmt"
)

// Sentinel errors for pathfilter operations.
var (
	// ErrRulesFileUnreadable indicates a declared rules file could not be opened or read.
	ErrRulesFileUnreadable = errors.New("rules file unreadable")
	// ErrInvalidRulesFileName indicates invalid discovery rules file name.
	ErrInvalidRulesFileName = errors.New("invalid rules file name")
	// ErrPathOutsideRoot indicates path traversal in a candidate path.
	ErrPathOutsideRoot = errors.New("path is outside project root")
	// ErrRulesPathOutsideRoot indicates a discovered rules file resolved outside the project root.
	ErrRulesPathOutsideRoot = errors.New("rules file path is outside project root")
)

// RuleFileError reports a rules file that could not be read.
// It matches ErrRulesFileUnreadable with errors.Is.
type RuleFileError struct {
	// Path is the rules file location as given to the loader.
	Path string
	// Err is the underlying I/O error.
	Err error
}

// Error implements error.
func (e *RuleFileError) Error() string {
	return fmt.Sprintf("read rules file %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying I/O error.
func (e *RuleFileError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrRulesFileUnreadable.
func (e *RuleFileError) Is(target error) bool {
	return target == ErrRulesFileUnreadable
}
