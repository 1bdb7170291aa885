package scoring

import (
	"context"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

const judgeSystemPrompt = "You are an evaluation judge. You score answers strictly against the " +
	"criteria you are given and reply only with the requested JSON object."

// OpenAIJudgeArgs configures the OpenAI-backed judge. APIKey and Model are
// required; BaseURL lets the judge point at any OpenAI-compatible endpoint.
type OpenAIJudgeArgs struct {
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	BaseURL     string  `mapstructure:"base_url"`
	Temperature float32 `mapstructure:"temperature"`
}

type openAIJudge struct {
	client *openai.Client
	args   OpenAIJudgeArgs
}

// NewOpenAIJudge builds a judge backed by an OpenAI-compatible chat
// completion endpoint.
func NewOpenAIJudge(args OpenAIJudgeArgs) (*openAIJudge, error) {
	if args.APIKey == "" {
		return nil, errors.New("required field 'api_key' is missing")
	}
	if args.Model == "" {
		return nil, errors.New("required field 'model' is missing")
	}

	cfg := openai.DefaultConfig(args.APIKey)
	if args.BaseURL != "" {
		cfg.BaseURL = args.BaseURL
	}

	return &openAIJudge{
		client: openai.NewClientWithConfig(cfg),
		args:   args,
	}, nil
}

// Name implements [Judge].
func (o *openAIJudge) Name() string {
	return fmt.Sprintf("openai/%s", o.args.Model)
}

// Judge implements [Judge]. One chat completion round trip; no retries.
func (o *openAIJudge) Judge(ctx context.Context, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       o.args.Model,
		Temperature: o.args.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: judgeSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
