// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/publish

package progress

import (
	"sync"

	"github.com/rs/zerolog"
)

// logEveryPercent is the progress step between log lines.
const logEveryPercent = 10

// Log reports progress as info log lines: "title / stage (done/total)".
// A line is written on every stage change and every logEveryPercent percent.
type Log struct {
	logger zerolog.Logger

	mu        sync.Mutex
	title     string
	stage     string
	total     int
	done      int
	lastShown int
}

// NewLog returns a log line reporter.
func NewLog(logger zerolog.Logger) *Log {
	return &Log{logger: logger}
}

// Start implements Reporter.
func (l *Log) Start(title string, total int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.title = title
	l.stage = ""
	l.total = total
	l.done = 0
	l.lastShown = -1

	l.logger.Info().Str("title", title).Int("total", total).Msg("started")
}

// Step implements Reporter.
func (l *Log) Step(stage string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.done++
	percent := 100
	if l.total > 0 {
		percent = l.done * 100 / l.total
	}

	changed := stage != l.stage
	l.stage = stage
	if !changed && percent/logEveryPercent == l.lastShown/logEveryPercent && l.done != l.total {
		return
	}

	l.lastShown = percent
	l.logger.Info().
		Str("stage", stage).
		Int("done", l.done).
		Int("total", l.total).
		Int("percent", percent).
		Msgf("%s / %s (%d/%d)", l.title, stage, l.done, l.total)
}

// Stop implements Reporter.
func (l *Log) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.logger.Info().Str("title", l.title).Int("done", l.done).Int("total", l.total).Msg("finished")
}

// Done returns the number of steps reported since Start.
func (l *Log) Done() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.done
}
