// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/publish

package main

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/woozymasta/publish/internal/config"
	"github.com/woozymasta/publish/internal/logging"
	"github.com/woozymasta/publish/internal/progress"
	"github.com/woozymasta/publish/internal/publisher"
)

// Version information, set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// flagLogFile overrides the log file location; "-" disables it.
const flagLogFile = "log-file"

// app is the state shared by commands of one invocation.
type app struct {
	verbosity int
	logFile   string
	cfg       *config.Config
}

// NewRootCmd creates the root command. Without a subcommand it runs packaging.
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "publish",
		Short: "Package a project for distribution",
		Long: `publish packages a project into "<parent>/<Project> Package":

  Build.zip       the first existing build folder (Build, Builds, build, builds)
  <Project>.zip   the project sources, filtered by .gitignore and .publishignore
  asset files     top-level files of Recordings and Documentation, copied as-is

Ignore rules use gitignore syntax and the last matching rule wins.`,
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if skipConfig(cmd) {
				return nil
			}

			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runPublish(cmd)
		},
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate("{{.Name}} {{.Version}} (commit " + commit + ", built " + date + ")\n")

	pf := rootCmd.PersistentFlags()
	pf.CountVarP(&a.verbosity, "verbose", "v", "increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	pf.StringVar(&a.logFile, flagLogFile, "", `log file (default: XDG state dir, "-" disables)`)
	_ = pf.MarkHidden(flagLogFile)
	config.BindFlags(pf)

	rootCmd.AddCommand(
		newPlanCmd(a),
		newCheckCmd(a),
		newRulesCmd(a),
		newVersionCmd(),
	)

	return rootCmd
}

// setup configures logging and loads configuration.
func (a *app) setup(cmd *cobra.Command) error {
	logging.Setup(logging.Options{
		Verbosity: a.verbosity,
		Console:   cmd.ErrOrStderr(),
		LogFile:   a.logFile,
		NoColor:   !progress.IsTerminal(asFile(cmd.ErrOrStderr())),
	})

	if !progress.IsTerminal(asFile(cmd.OutOrStdout())) {
		pterm.DisableStyling()
	}

	log.Debug().Str("command", cmd.Name()).Msg("command started")

	cfg, err := config.Load(cmd.Root().PersistentFlags())
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.FileUsed != "" {
		log.Info().Str("path", cfg.FileUsed).Msg("using config file")
	}

	a.cfg = cfg
	return nil
}

// newPublisher builds a publisher for the loaded configuration.
func (a *app) newPublisher(cmd *cobra.Command) (*publisher.Publisher, error) {
	reporter := progress.Auto(asFile(cmd.ErrOrStderr()), logging.Component("progress"), a.cfg.NoProgress)
	return publisher.New(a.cfg, publisher.WithReporter(reporter))
}

// skipConfig reports commands that need neither logging setup nor configuration.
func skipConfig(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "help", "version", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		return true
	}

	return cmd.Parent() != nil && cmd.Parent().Name() == "completion"
}

// asFile returns w as a file when it is one.
func asFile(w any) *os.File {
	f, _ := w.(*os.File)
	return f
}
