// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/publish

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newPlanCmd(a *app) *cobra.Command {
	var (
		format string
		list   bool
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show what would be published without writing anything",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.newPublisher(cmd)
			if err != nil {
				return err
			}

			plan, err := p.Plan(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if done, err := writeStructured(out, format, plan); done {
				return err
			}

			if list {
				for _, s := range plan.Stages {
					for _, f := range s.Files {
						fmt.Fprintf(out, "%s\t%s\n", s.Name, f.Name)
					}
				}

				return nil
			}

			rows := [][]string{{"Stage", "Files", "Data", "Output"}}
			for _, s := range plan.Stages {
				rows = append(rows, []string{s.Name, strconv.Itoa(len(s.Files)), humanBytes(s.Bytes()), s.Output})
			}

			if err := renderTable(out, rows); err != nil {
				return err
			}

			fmt.Fprintf(out, "Total files to publish: %d\n", plan.Total())
			return nil
		},
	}

	addFormatFlag(cmd, &format)
	cmd.Flags().BoolVarP(&list, "list", "l", false, "list every file instead of a summary")
	return cmd
}
