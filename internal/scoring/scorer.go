// Package scoring turns model responses into judged metric records. The
// quality judgment itself is delegated to a pluggable Judge; this package
// owns input validation, prompt construction, reply parsing, and the
// deterministic dinner score of the parsed invite list.
package scoring

import (
	"context"
	"fmt"
	"strings"

	"github.com/qemqemqem/JSTR/internal/schema"
)

// Scorer scores responses against one judge. It holds no mutable state and
// is safe to use from many goroutines; the judge call is the only operation
// that can block, and the caller bounds it via ctx.
type Scorer struct {
	judge Judge
}

func NewScorer(judge Judge) (*Scorer, error) {
	if judge == nil {
		return nil, fmt.Errorf("missing judge")
	}
	return &Scorer{judge: judge}, nil
}

// Score judges one response against one problem's scoring guide. Empty
// responses fail with ErrEmptyResponse before the judge is invoked. Judge
// transport failures surface as *JudgeUnavailableError and unusable replies
// as *MalformedJudgmentError; neither is retried here.
func (s *Scorer) Score(ctx context.Context, problem *schema.Problem, responseText string) (*schema.ScoredResponse, error) {
	if strings.TrimSpace(responseText) == "" {
		return nil, ErrEmptyResponse
	}

	guide := &problem.ScoringGuide
	if guide.Version != schema.GuideVersion {
		return nil, fmt.Errorf("unsupported scoring guide version %d (supported: %d)", guide.Version, schema.GuideVersion)
	}

	raw, err := s.judge.Judge(ctx, buildJudgePrompt(guide, responseText))
	if err != nil {
		return nil, &JudgeUnavailableError{Judge: s.judge.Name(), Err: err}
	}

	j, err := parseJudgment(raw, guide)
	if err != nil {
		return nil, err
	}

	invited := ExtractInviteList(responseText, guide)
	dinnerScore := guide.ScoreInviteList(invited)
	percentile := scorePercentile(problem, dinnerScore)

	return &schema.ScoredResponse{
		ProblemID:       problem.ID,
		AnswerQuality:   *j.AnswerQuality,
		Creativity:      *j.Creativity,
		Appropriateness: *j.Appropriateness,
		Rationale:       j.Rationale,
		InviteList:      invited,
		DinnerScore:     dinnerScore,
		Percentile:      percentile,
	}, nil
}
