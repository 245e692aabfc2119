// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/publish

// Package progress reports packaging progress as a terminal bar or as log lines.
package progress

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
)

// Reporter receives progress of one run: Start once, Step per finished unit of work, Stop once.
// Implementations are safe for concurrent Step calls.
type Reporter interface {
	// Start begins a run of total units under title.
	Start(title string, total int)
	// Step marks one unit as done; stage names the current stage.
	Step(stage string)
	// Stop ends the run.
	Stop()
}

// Auto returns a progress bar when out is a color-capable terminal and
// a log reporter otherwise. disabled forces the log reporter.
func Auto(out *os.File, logger zerolog.Logger, disabled bool) Reporter {
	if disabled || !IsTerminal(out) {
		return NewLog(logger)
	}

	return NewBar(out)
}

// IsTerminal reports whether out is an interactive terminal that should get rich output.
func IsTerminal(out *os.File) bool {
	if out == nil || os.Getenv("NO_COLOR") != "" {
		return false
	}

	if !isatty.IsTerminal(out.Fd()) && !isatty.IsCygwinTerminal(out.Fd()) {
		return false
	}

	return termenv.NewOutput(out).ColorProfile() != termenv.Ascii
}

// nop discards progress.
type nop struct{}

// Nop returns a reporter that does nothing.
func Nop() Reporter { return nop{} }

func (nop) Start(string, int) {}
func (nop) Step(string) {}
func (nop) Stop() {}
