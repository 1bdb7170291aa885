package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/qemqemqem/JSTR/internal/dataset"
	"github.com/qemqemqem/JSTR/internal/metrics"
	"github.com/qemqemqem/JSTR/internal/reporting"
	"github.com/spf13/cobra"
)

func newReportCommand() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "report <scored-results.jsonl>",
		Short: "Aggregate a scored-results file",
		Long: `Recompute the aggregate report over a scored-results file.

The aggregation is a pure reduction: re-running it over the same records,
in any order, yields the same report. An empty result set is reported as
"no data", never as a zero score.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return reportCommandE(cmd, args[0], jsonOut)
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the report as JSON")

	return cmd
}

func reportCommandE(cmd *cobra.Command, path string, jsonOut bool) error {
	scored, err := dataset.ReadScored(path)
	if err != nil {
		return err
	}

	report, err := metrics.Aggregate(scored)
	if err != nil {
		if errors.Is(err, metrics.ErrNoData) {
			fmt.Fprint(cmd.OutOrStdout(), reporting.FormatAggregate(nil, 0))
			return nil
		}
		return err
	}

	if jsonOut {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	fmt.Fprint(cmd.OutOrStdout(), reporting.FormatAggregate(report, 0))
	return nil
}
