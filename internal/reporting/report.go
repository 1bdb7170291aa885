// Package reporting renders generation and scoring summaries for the CLI.
package reporting

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/qemqemqem/JSTR/internal/metrics"
	"github.com/qemqemqem/JSTR/internal/schema"
)

// SkippedRecord is one generation item that could not be built.
type SkippedRecord struct {
	SetSize   int    `json:"set_size"`
	Replicate int    `json:"replicate"`
	Reason    string `json:"reason"`
}

// GenerationSummary reports how much of a generation run succeeded.
type GenerationSummary struct {
	Requested  int             `json:"requested"`
	Produced   int             `json:"produced"`
	Skipped    []SkippedRecord `json:"skipped,omitempty"`
	OutputPath string          `json:"output_path"`
}

// Format renders the summary as plain text.
func (s *GenerationSummary) Format() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Generated %d of %d requested problems", s.Produced, s.Requested))
	if len(s.Skipped) > 0 {
		b.WriteString(fmt.Sprintf(" (%d skipped)", len(s.Skipped)))
	}
	b.WriteString(fmt.Sprintf("\nOutput: %s\n", s.OutputPath))

	for _, sk := range s.Skipped {
		b.WriteString(fmt.Sprintf("  skipped set_size=%d replicate=%d: %s\n", sk.SetSize, sk.Replicate, sk.Reason))
	}
	return b.String()
}

// ItemStatus is the outcome of scoring one item.
type ItemStatus string

const (
	StatusScored ItemStatus = "scored"
	StatusFailed ItemStatus = "failed"
)

// ItemOutcome is the per-item line of a scoring run: either a scored record
// or the failure that prevented one.
type ItemOutcome struct {
	ProblemID string                 `json:"problem_id"`
	Status    ItemStatus             `json:"status"`
	Error     string                 `json:"error,omitempty"`
	Scored    *schema.ScoredResponse `json:"scored,omitempty"`
}

// ScoringSummary reports a whole scoring run: every per-item outcome plus
// the aggregate over the successes. Failed items are excluded from the
// aggregate and counted separately so nothing is silently dropped.
type ScoringSummary struct {
	Items     []ItemOutcome   `json:"items"`
	Failed    int             `json:"failed"`
	Aggregate *metrics.Report `json:"aggregate,omitempty"`
}

// Format renders the scoring run as a plain-text table plus the aggregate.
func (s *ScoringSummary) Format() string {
	var b strings.Builder

	const (
		colID     = 14
		colStatus = 8
		colScore  = 8
	)

	b.WriteString(fmt.Sprintf("%s  %s  %s  %s  %s  %s  %s\n",
		padRight("problem", colID),
		padRight("status", colStatus),
		padRight("dinner", colScore),
		padRight("pctile", colScore),
		padRight("quality", colScore),
		padRight("creativ", colScore),
		"approp"))

	for _, item := range s.Items {
		id := truncateName(item.ProblemID, colID)
		if item.Status != StatusScored {
			b.WriteString(fmt.Sprintf("%s  %s  %s\n",
				padRight(id, colID), padRight(string(item.Status), colStatus), item.Error))
			continue
		}
		sc := item.Scored
		b.WriteString(fmt.Sprintf("%s  %s  %s  %s  %s  %s  %s\n",
			padRight(id, colID),
			padRight(string(item.Status), colStatus),
			padRight(fmt.Sprintf("%.1f", sc.DinnerScore), colScore),
			padRight(fmt.Sprintf("%.2f", sc.Percentile), colScore),
			padRight(fmt.Sprintf("%.1f", sc.AnswerQuality), colScore),
			padRight(fmt.Sprintf("%.1f", sc.Creativity), colScore),
			fmt.Sprintf("%.1f", sc.Appropriateness)))
	}

	b.WriteString("\n")
	b.WriteString(FormatAggregate(s.Aggregate, s.Failed))
	return b.String()
}

// FormatAggregate renders an aggregate report, or a no-data notice when the
// run produced nothing to average.
func FormatAggregate(report *metrics.Report, failed int) string {
	var b strings.Builder

	if report == nil {
		b.WriteString("No scored responses to aggregate.\n")
	} else {
		b.WriteString(fmt.Sprintf("Aggregate over %d scored responses:\n", report.Count))
		for _, name := range schema.MetricNames {
			m := report.Metrics[name]
			b.WriteString(fmt.Sprintf("  %s mean=%.2f variance=%.2f n=%d\n",
				padRight(name, 16), m.Mean, m.Variance, m.Count))
		}
	}

	if failed > 0 {
		b.WriteString(fmt.Sprintf("Failed items excluded from the mean: %d\n", failed))
	}
	return b.String()
}

// truncateName shortens a name to maxLen runes, replacing the last rune with "…" if needed.
func truncateName(name string, maxLen int) string {
	runes := []rune(name)
	if len(runes) <= maxLen {
		return name
	}
	return string(runes[:maxLen-1]) + "…"
}

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}
