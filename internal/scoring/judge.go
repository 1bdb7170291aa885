package scoring

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/qemqemqem/JSTR/internal/schema"
)

// Judge is the external judging capability the scorer delegates to. A judge
// receives a fully rendered prompt and returns its structured verdict as raw
// text; the scorer owns parsing and bounds checking. Implementations must be
// safe for concurrent use.
type Judge interface {
	Name() string
	Judge(ctx context.Context, prompt string) (string, error)
}

// Kind selects a judge backend.
type Kind string

const (
	KindOpenAI  Kind = "openai"
	KindCopilot Kind = "copilot"
	KindMock    Kind = "mock"
)

// NewJudge builds a judge from a backend kind and loosely typed parameters
// (flag values, YAML fragments). Unknown kinds and bad parameters fail here,
// before any scoring begins.
func NewJudge(kind Kind, params map[string]any) (Judge, error) {
	switch kind {
	case KindOpenAI:
		var args OpenAIJudgeArgs
		if err := mapstructure.Decode(params, &args); err != nil {
			return nil, err
		}
		return NewOpenAIJudge(args)
	case KindCopilot:
		var args CopilotJudgeArgs
		if err := mapstructure.Decode(params, &args); err != nil {
			return nil, err
		}
		return NewCopilotJudge(args)
	case KindMock:
		var args struct {
			Replies []string `mapstructure:"replies"`
		}
		if err := mapstructure.Decode(params, &args); err != nil {
			return nil, err
		}
		return NewMockJudge(args.Replies...), nil
	default:
		return nil, fmt.Errorf("'%s' is not a valid judge kind", kind)
	}
}

// judgment is the shape a judge's reply must decode into. Pointers
// distinguish a missing metric from a zero score.
type judgment struct {
	AnswerQuality   *float64 `json:"answer_quality"`
	Creativity      *float64 `json:"creativity"`
	Appropriateness *float64 `json:"appropriateness"`
	Rationale       string   `json:"rationale"`
}

// parseJudgment decodes and bounds-checks a judge reply against the guide's
// declared dimensions. Replies wrapped in markdown fences are unwrapped
// first; anything else malformed fails with MalformedJudgmentError.
func parseJudgment(raw string, guide *schema.ScoringGuide) (*judgment, error) {
	cleaned := stripCodeFence(strings.TrimSpace(raw))
	if cleaned == "" {
		return nil, &MalformedJudgmentError{Reason: "empty judge reply"}
	}

	var j judgment
	if err := json.Unmarshal([]byte(cleaned), &j); err != nil {
		return nil, &MalformedJudgmentError{Reason: fmt.Sprintf("reply is not valid JSON: %v", err)}
	}

	metrics := map[string]*float64{
		schema.DimAnswerQuality:   j.AnswerQuality,
		schema.DimCreativity:      j.Creativity,
		schema.DimAppropriateness: j.Appropriateness,
	}

	for _, dim := range guide.Dimensions {
		v, known := metrics[dim.Name]
		if !known {
			continue
		}
		if v == nil {
			return nil, &MalformedJudgmentError{Metric: dim.Name, Reason: "missing from judge reply"}
		}
		if *v < dim.Min || *v > dim.Max {
			return nil, &MalformedJudgmentError{
				Metric: dim.Name,
				Reason: fmt.Sprintf("score %v outside declared bounds [%v, %v]", *v, dim.Min, dim.Max),
			}
		}
	}

	// Dimensions not declared in the guide still need to exist; the three
	// metric fields are the contract regardless of guide contents.
	for name, v := range metrics {
		if v == nil {
			return nil, &MalformedJudgmentError{Metric: name, Reason: "missing from judge reply"}
		}
	}

	return &j, nil
}

func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// buildJudgePrompt pairs the response text with the problem's scoring guide
// to form the judge's input.
func buildJudgePrompt(guide *schema.ScoringGuide, responseText string) string {
	var sb strings.Builder

	sb.WriteString("You are judging one answer to a joint-selection task.\n\n")
	sb.WriteString("## Task\n")
	sb.WriteString(guide.TaskDescription)
	sb.WriteString("\n\n## Guests\n")
	for _, p := range guide.People {
		sb.WriteString(fmt.Sprintf("- %s (%v points): %d interests\n", p.Name, p.Points, len(p.Interests)))
	}
	sb.WriteString(fmt.Sprintf("\nThe answer must invite exactly %d guests. Selection criterion: %s.\n",
		guide.SetSize, guide.SelectionCriterion))

	sb.WriteString("\n## Judging dimensions\n")
	for _, dim := range guide.Dimensions {
		sb.WriteString(fmt.Sprintf("- %s (%v to %v): %s\n", dim.Name, dim.Min, dim.Max, dim.Description))
	}

	sb.WriteString("\n## Answer to judge\n```\n")
	sb.WriteString(responseText)
	sb.WriteString("\n```\n\n")
	sb.WriteString("Reply with a single JSON object and nothing else: ")
	sb.WriteString(`{"answer_quality": <number>, "creativity": <number>, "appropriateness": <number>, "rationale": "<one or two sentences>"}`)
	sb.WriteString("\n")

	return sb.String()
}
