package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/qemqemqem/JSTR/internal/dataset"
	"github.com/qemqemqem/JSTR/internal/metrics"
	"github.com/qemqemqem/JSTR/internal/reporting"
	"github.com/qemqemqem/JSTR/internal/schema"
	"github.com/qemqemqem/JSTR/internal/scoring"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type scoreFlags struct {
	problemsPath  string
	responsesPath string
	outputPath    string
	judgeKind     string
	judgeModel    string
	judgeBaseURL  string
	timeoutSec    int
	workers       int
	jsonOut       bool
}

func newScoreCommand() *cobra.Command {
	var flags scoreFlags

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score model responses against a generated dataset",
		Long: `Score model responses with an external judge.

Reads a generated dataset and a responses file (one JSON object per line
with problem_id and response), judges every pair, prints per-item outcomes
and the aggregate, and optionally writes the scored records. Failed items
are reported and counted but never averaged into the aggregate.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return scoreCommandE(cmd, &flags)
		},
	}

	cmd.Flags().StringVarP(&flags.problemsPath, "problems", "p", "", "Generated dataset (.jsonl or .jsonl.gz)")
	cmd.Flags().StringVarP(&flags.responsesPath, "responses", "r", "", "Model responses file (.jsonl)")
	cmd.Flags().StringVarP(&flags.outputPath, "output", "o", "", "Write scored records to this path (optional)")
	cmd.Flags().StringVar(&flags.judgeKind, "judge", "openai", "Judge backend: openai, copilot, or mock")
	cmd.Flags().StringVar(&flags.judgeModel, "judge-model", "gpt-4o-mini", "Model used by the judge")
	cmd.Flags().StringVar(&flags.judgeBaseURL, "judge-base-url", "", "OpenAI-compatible endpoint override")
	cmd.Flags().IntVar(&flags.timeoutSec, "timeout", 120, "Per-item judge timeout in seconds")
	cmd.Flags().IntVar(&flags.workers, "workers", 4, "Concurrent judge calls")
	cmd.Flags().BoolVar(&flags.jsonOut, "json", false, "Print the run summary as JSON")

	_ = cmd.MarkFlagRequired("problems")
	_ = cmd.MarkFlagRequired("responses")

	return cmd
}

func scoreCommandE(cmd *cobra.Command, flags *scoreFlags) error {
	problems, err := dataset.ReadProblems(flags.problemsPath)
	if err != nil {
		return err
	}
	responses, err := dataset.ReadResponses(flags.responsesPath)
	if err != nil {
		return err
	}

	judge, err := buildJudge(flags)
	if err != nil {
		return err
	}
	scorer, err := scoring.NewScorer(judge)
	if err != nil {
		return err
	}

	byID := make(map[string]*schema.Problem, len(problems))
	for i := range problems {
		byID[problems[i].ID] = &problems[i]
	}

	if flags.workers < 1 {
		flags.workers = 1
	}

	// Each item is one atomic judge round trip; the scorer is stateless, so
	// fan-out only has to write each outcome into its own slot.
	outcomes := make([]reporting.ItemOutcome, len(responses))

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(flags.workers)

	for i, resp := range responses {
		g.Go(func() error {
			outcomes[i] = scoreOne(ctx, scorer, byID, resp, time.Duration(flags.timeoutSec)*time.Second)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	summary := buildScoringSummary(outcomes)

	if flags.outputPath != "" {
		var scored []schema.ScoredResponse
		for _, o := range summary.Items {
			if o.Scored != nil {
				scored = append(scored, *o.Scored)
			}
		}
		if err := dataset.WriteScored(flags.outputPath, scored); err != nil {
			return err
		}
	}

	if flags.jsonOut {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}
	fmt.Fprint(cmd.OutOrStdout(), summary.Format())
	return nil
}

func scoreOne(ctx context.Context, scorer *scoring.Scorer, byID map[string]*schema.Problem, resp dataset.Response, timeout time.Duration) reporting.ItemOutcome {
	problem, ok := byID[resp.ProblemID]
	if !ok {
		return reporting.ItemOutcome{
			ProblemID: resp.ProblemID,
			Status:    reporting.StatusFailed,
			Error:     "no such problem in the dataset",
		}
	}

	itemCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	scored, err := scorer.Score(itemCtx, problem, resp.Response)
	if err != nil {
		return reporting.ItemOutcome{
			ProblemID: resp.ProblemID,
			Status:    reporting.StatusFailed,
			Error:     err.Error(),
		}
	}
	return reporting.ItemOutcome{
		ProblemID: resp.ProblemID,
		Status:    reporting.StatusScored,
		Scored:    scored,
	}
}

func buildScoringSummary(outcomes []reporting.ItemOutcome) *reporting.ScoringSummary {
	summary := &reporting.ScoringSummary{Items: outcomes}
	sort.SliceStable(summary.Items, func(i, j int) bool {
		return summary.Items[i].ProblemID < summary.Items[j].ProblemID
	})

	var scored []schema.ScoredResponse
	for _, o := range summary.Items {
		if o.Status == reporting.StatusScored {
			scored = append(scored, *o.Scored)
		} else {
			summary.Failed++
		}
	}

	report, err := metrics.Aggregate(scored)
	if err != nil && !errors.Is(err, metrics.ErrNoData) {
		// Aggregate only fails on empty input; anything else would be a bug.
		fmt.Fprintln(os.Stderr, err)
	}
	summary.Aggregate = report
	return summary
}

func buildJudge(flags *scoreFlags) (scoring.Judge, error) {
	params := map[string]any{"model": flags.judgeModel}

	switch scoring.Kind(flags.judgeKind) {
	case scoring.KindOpenAI:
		params["api_key"] = os.Getenv("OPENAI_API_KEY")
		if flags.judgeBaseURL != "" {
			params["base_url"] = flags.judgeBaseURL
		}
	case scoring.KindMock:
		// The scripted mock is only useful for plumbing checks; give it a
		// neutral mid-scale reply.
		params = map[string]any{
			"replies": []string{`{"answer_quality": 5, "creativity": 5, "appropriateness": 5, "rationale": "mock"}`},
		}
	}

	return scoring.NewJudge(scoring.Kind(flags.judgeKind), params)
}
