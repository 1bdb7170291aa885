package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jstr",
		Short: "jstr - generate and score joint-selection benchmark tasks",
		Long: `jstr generates "dinner party" joint-selection problems for evaluating
language models, and scores model responses against the scoring guides
those problems carry.

A typical run: generate a dataset, let your harness collect model
responses, then score the responses and report the aggregate.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	// Add subcommands
	cmd.AddCommand(newGenerateCommand())
	cmd.AddCommand(newScoreCommand())
	cmd.AddCommand(newReportCommand())
	cmd.AddCommand(newInitCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
