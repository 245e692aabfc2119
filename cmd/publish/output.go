// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/publish

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/opencontainers/go-digest"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

var errUnknownFormat = errors.New("unknown output format")

// addFormatFlag registers -f/--format on cmd.
func addFormatFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVarP(target, "format", "f", formatTable, "output format (table|json|yaml)")
	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{formatTable, formatJSON, formatYAML}, cobra.ShellCompDirectiveNoFileComp
	})
}

// writeStructured writes v as JSON or YAML. It returns false for the table format.
func writeStructured(w io.Writer, format string, v any) (bool, error) {
	switch format {
	case formatTable, "":
		return false, nil
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return true, enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return true, err
		}

		return true, enc.Close()
	default:
		return true, fmt.Errorf("%w: %q", errUnknownFormat, format)
	}
}

// renderTable writes rows with a header row as a pterm table.
func renderTable(w io.Writer, rows [][]string) error {
	s, err := pterm.DefaultTable.WithHasHeader().WithData(pterm.TableData(rows)).Srender()
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, s)
	return err
}

// humanBytes formats a byte count for tables.
func humanBytes(n int64) string {
	if n < 0 {
		n = 0
	}

	return humanize.Bytes(uint64(n))
}

// shortDigest abbreviates a digest for tables.
func shortDigest(d digest.Digest) string {
	if d == "" {
		return "-"
	}

	enc := d.Encoded()
	if len(enc) > 12 {
		enc = enc[:12]
	}

	return d.Algorithm().String() + ":" + enc
}
