// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/publish

package progress

import (
	"io"
	"sync"

	"github.com/pterm/pterm"
)

// Bar renders progress as a pterm progress bar whose title shows the current stage.
type Bar struct {
	out io.Writer

	mu    sync.Mutex
	pb    *pterm.ProgressbarPrinter
	title string
	stage string
	done  int
}

// NewBar returns a progress bar reporter writing to out.
func NewBar(out io.Writer) *Bar {
	return &Bar{out: out}
}

// Start implements Reporter.
func (b *Bar) Start(title string, total int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.title = title
	b.stage = ""
	b.done = 0

	if total <= 0 {
		return
	}

	pb, err := pterm.DefaultProgressbar.
		WithTotal(total).
		WithTitle(title).
		WithWriter(b.out).
		WithRemoveWhenDone(false).
		Start()
	if err != nil {
		return
	}

	b.pb = pb
}

// Step implements Reporter.
func (b *Bar) Step(stage string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.done++
	if b.pb == nil {
		return
	}

	if stage != b.stage {
		b.stage = stage
		b.pb.UpdateTitle(b.title + " / " + stage)
	}

	b.pb.Increment()
}

// Stop implements Reporter.
func (b *Bar) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.pb == nil {
		return
	}

	_, _ = b.pb.Stop()
	b.pb = nil
}

// Done returns the number of steps reported since Start.
func (b *Bar) Done() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.done
}
