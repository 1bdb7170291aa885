package scoring

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	copilot "github.com/github/copilot-sdk/go"
	"github.com/go-viper/mapstructure/v2"
)

const copilotScoreToolName = "set_party_scores"

// CopilotJudgeArgs configures the Copilot-session judge.
type CopilotJudgeArgs struct {
	Model string `mapstructure:"model"`
	Cwd   string `mapstructure:"cwd"`
}

// copilotJudge runs the judgment inside a Copilot session. Instead of
// free-text JSON it hands the model a scoring tool and reads the captured
// tool call back, which keeps malformed replies rare.
type copilotJudge struct {
	args CopilotJudgeArgs
}

func NewCopilotJudge(args CopilotJudgeArgs) (*copilotJudge, error) {
	if args.Model == "" {
		return nil, errors.New("required field 'model' is missing")
	}
	return &copilotJudge{args: args}, nil
}

// Name implements [Judge].
func (c *copilotJudge) Name() string {
	return fmt.Sprintf("copilot/%s", c.args.Model)
}

// Judge implements [Judge].
func (c *copilotJudge) Judge(ctx context.Context, prompt string) (string, error) {
	client := copilot.NewClient(&copilot.ClientOptions{
		Cwd:             c.args.Cwd,
		AutoStart:       ptr(true),
		AutoRestart:     ptr(true),
		UseLoggedInUser: ptr(true),
		LogLevel:        "error",
	})

	defer func() {
		if err := client.Stop(); err != nil {
			slog.ErrorContext(ctx, "error stopping copilot client for judge")
		}
	}()

	var captured *judgment

	tools := []copilot.Tool{
		{
			Name:        copilotScoreToolName,
			Description: "Report the three metric scores for the answer being judged. Call exactly once.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"answer_quality": map[string]any{
						"type":        "number",
						"description": "Answer quality score",
					},
					"creativity": map[string]any{
						"type":        "number",
						"description": "Creativity score",
					},
					"appropriateness": map[string]any{
						"type":        "number",
						"description": "Appropriateness score",
					},
					"rationale": map[string]any{
						"type":        "string",
						"description": "Brief explanation of the scores",
					},
				},
				"required": []string{"answer_quality", "creativity", "appropriateness"},
			},
			Handler: func(invocation copilot.ToolInvocation) (copilot.ToolResult, error) {
				var args struct {
					AnswerQuality   *float64 `mapstructure:"answer_quality"`
					Creativity      *float64 `mapstructure:"creativity"`
					Appropriateness *float64 `mapstructure:"appropriateness"`
					Rationale       string   `mapstructure:"rationale"`
				}
				if err := mapstructure.Decode(invocation.Arguments, &args); err != nil {
					return copilot.ToolResult{}, nil
				}
				captured = &judgment{
					AnswerQuality:   args.AnswerQuality,
					Creativity:      args.Creativity,
					Appropriateness: args.Appropriateness,
					Rationale:       args.Rationale,
				}
				return copilot.ToolResult{}, nil
			},
		},
	}

	session, err := client.CreateSession(ctx, &copilot.SessionConfig{
		Model:     c.args.Model,
		Streaming: true,
		Tools:     tools,
	})
	if err != nil {
		return "", fmt.Errorf("failed to start up copilot session for judging: %w", err)
	}

	_, err = session.SendAndWait(ctx, copilot.MessageOptions{
		Prompt: prompt + fmt.Sprintf("\nReport your scores by calling the %s tool.", copilotScoreToolName),
		Mode:   "enqueue",
	})
	if err != nil {
		return "", fmt.Errorf("failed to send judge prompt: %w", err)
	}

	if captured == nil {
		// The session finished without calling the tool; hand the scorer an
		// empty reply so it fails as a malformed judgment, not a transport
		// error.
		return "", nil
	}

	out, err := json.Marshal(captured)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func ptr[T any](v T) *T {
	return &v
}
