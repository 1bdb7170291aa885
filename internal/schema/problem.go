package schema

// Problem is one generated evaluation item. Problems are immutable once
// generated; they are serialized to JSON Lines and consumed by the external
// evaluation harness.
type Problem struct {
	ID           string       `json:"id"`
	Question     string       `json:"question"`
	TargetScore  float64      `json:"target_score"`
	ScoringGuide ScoringGuide `json:"scoring_guide"`
}

// ScoredResponse is the judged outcome for one (problem, model response)
// pair. Records are immutable once created.
type ScoredResponse struct {
	ProblemID string `json:"problem_id"`

	// Judge-assigned metric values, each within [MetricMin, MetricMax].
	AnswerQuality   float64 `json:"answer_quality"`
	Creativity      float64 `json:"creativity"`
	Appropriateness float64 `json:"appropriateness"`

	// Rationale is the judge's free-text explanation, kept for auditing.
	Rationale string `json:"rationale,omitempty"`

	// InviteList holds the guest names parsed out of the response text, and
	// DinnerScore / Percentile rate that selection against the guide's own
	// criterion and the problem's sampled score distribution.
	InviteList  []string `json:"invite_list,omitempty"`
	DinnerScore float64  `json:"dinner_score"`
	Percentile  float64  `json:"percentile"`
}

// Metric returns the named metric value and whether the name is known.
func (s *ScoredResponse) Metric(name string) (float64, bool) {
	switch name {
	case DimAnswerQuality:
		return s.AnswerQuality, true
	case DimCreativity:
		return s.Creativity, true
	case DimAppropriateness:
		return s.Appropriateness, true
	default:
		return 0, false
	}
}
