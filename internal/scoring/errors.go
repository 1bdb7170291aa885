package scoring

import (
	"errors"
	"fmt"
)

// ErrEmptyResponse is returned when the response text is empty or
// whitespace. The scorer checks this before any judge call so no external
// round trip is wasted.
var ErrEmptyResponse = errors.New("response text is empty")

// MalformedJudgmentError reports a judge reply the scorer could not turn
// into the three metric values: a metric missing, unparseable, or outside
// its declared bounds.
type MalformedJudgmentError struct {
	Metric string
	Reason string
}

func (e *MalformedJudgmentError) Error() string {
	if e.Metric == "" {
		return fmt.Sprintf("malformed judgment: %s", e.Reason)
	}
	return fmt.Sprintf("malformed judgment: %s: %s", e.Metric, e.Reason)
}

// JudgeUnavailableError wraps a judge-side failure (network, provider,
// timeout). It is distinct from MalformedJudgmentError so callers can decide
// whether a retry makes sense. The scorer never retries on its own.
type JudgeUnavailableError struct {
	Judge string
	Err   error
}

func (e *JudgeUnavailableError) Error() string {
	return fmt.Sprintf("judge %q unavailable: %v", e.Judge, e.Err)
}

func (e *JudgeUnavailableError) Unwrap() error {
	return e.Err
}
