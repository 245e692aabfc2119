// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/publish

package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/woozymasta/publish/internal/publisher"
)

// runPublish runs a packaging run and prints a summary.
// A failed stage is reported in the summary and makes the command fail.
func (a *app) runPublish(cmd *cobra.Command) error {
	p, err := a.newPublisher(cmd)
	if err != nil {
		return err
	}

	res, runErr := p.Run(cmd.Context())
	if res == nil {
		return runErr
	}

	rows := [][]string{{"Stage", "Files", "Data", "Archive", "Digest", "Status"}}
	for _, s := range res.Stages {
		status := "ok"
		if s.Err != nil {
			status = "failed"
		}

		size := "-"
		if s.Kind != publisher.KindAssets {
			size = humanBytes(s.Size)
		}

		rows = append(rows, []string{
			s.Name,
			strconv.Itoa(s.Files),
			humanBytes(s.Bytes),
			size,
			shortDigest(s.Digest),
			status,
		})
	}

	out := cmd.OutOrStdout()
	if err := renderTable(out, rows); err != nil {
		return err
	}

	fmt.Fprintf(out, "Published to %s in %s\n", res.Target, res.Duration.Round(time.Millisecond))
	return runErr
}
