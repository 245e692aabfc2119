// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/publish

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newRulesCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the effective ignore rules in evaluation order",
		Long: `rules lists every loaded rule in evaluation order. The last rule that
matches a path decides whether it is ignored.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.newPublisher(cmd)
			if err != nil {
				return err
			}

			rules := p.Rules().Rules()
			out := cmd.OutOrStdout()
			if done, err := writeStructured(out, format, rules); done {
				return err
			}

			for _, f := range p.RuleFiles() {
				fmt.Fprintf(out, "# %s\n", f)
			}

			rows := [][]string{{"#", "Rule", "Source"}}
			for _, r := range rules {
				rows = append(rows, []string{strconv.Itoa(r.Order), r.String(), r.Source})
			}

			return renderTable(out, rows)
		},
	}

	addFormatFlag(cmd, &format)
	return cmd
}
