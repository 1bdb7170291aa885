// Package metrics reduces per-item scored responses into summary
// statistics.
package metrics

import (
	"errors"

	"github.com/qemqemqem/JSTR/internal/schema"
)

// ErrNoData is returned when aggregation is asked to reduce an empty result
// set. A run with zero successes is a valid outcome, but it must stay
// distinguishable from a run whose metrics averaged to zero.
var ErrNoData = errors.New("no scored responses to aggregate")

// MetricSummary holds the reduction of one judging dimension.
type MetricSummary struct {
	Mean     float64 `json:"mean"`
	Variance float64 `json:"variance"`
	Count    int     `json:"count"`
}

// Report is the aggregate over one result set: one summary per judging
// dimension, keyed by metric name. Reports are computed fresh per run and
// never mutated afterwards.
type Report struct {
	Metrics map[string]MetricSummary `json:"metrics"`
	Count   int                      `json:"count"`
}

// Aggregate reduces scored responses to a per-metric report. The reduction
// is a plain arithmetic mean (plus population variance), so the result is
// independent of input order. Empty input returns ErrNoData.
func Aggregate(scored []schema.ScoredResponse) (*Report, error) {
	if len(scored) == 0 {
		return nil, ErrNoData
	}

	report := &Report{
		Metrics: make(map[string]MetricSummary, len(schema.MetricNames)),
		Count:   len(scored),
	}

	for _, name := range schema.MetricNames {
		values := make([]float64, 0, len(scored))
		for i := range scored {
			v, ok := scored[i].Metric(name)
			if !ok {
				continue
			}
			values = append(values, v)
		}
		report.Metrics[name] = MetricSummary{
			Mean:     Mean(values),
			Variance: Variance(values),
			Count:    len(values),
		}
	}

	return report, nil
}
