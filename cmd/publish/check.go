// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/publish

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/woozymasta/publish/internal/publisher"
)

func newCheckCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "check <path>...",
		Short: "Explain whether paths are ignored and which rule decides",
		Long: `check prints the ignore decision for each path relative to the project root.
Directories must end with "/", for example "Library/".`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.newPublisher(cmd)
			if err != nil {
				return err
			}

			results := p.Check(args...)

			var errs []error
			for _, r := range results {
				if r.Err != nil {
					errs = append(errs, fmt.Errorf("%s: %w", r.Input, r.Err))
				}
			}

			out := cmd.OutOrStdout()
			if done, err := writeStructured(out, format, results); done {
				if err != nil {
					return err
				}

				return errors.Join(errs...)
			}

			rows := [][]string{{"Path", "Decision", "Rule", "Source"}}
			for _, r := range results {
				rows = append(rows, checkRow(r))
			}

			if err := renderTable(out, rows); err != nil {
				return err
			}

			return errors.Join(errs...)
		},
	}

	addFormatFlag(cmd, &format)
	return cmd
}

// checkRow renders one check result.
func checkRow(r publisher.CheckResult) []string {
	if r.Err != nil {
		return []string{r.Input, "invalid", "-", r.Err.Error()}
	}

	decision := "included"
	if r.Decision.Ignored {
		decision = "ignored"
	}

	if r.Rule == nil {
		return []string{r.Candidate, decision, "-", "no rule matched"}
	}

	source := r.Rule.Source
	if source == "" {
		source = fmt.Sprintf("#%d", r.Rule.Order)
	}

	return []string{r.Candidate, decision, r.Rule.String(), source}
}
