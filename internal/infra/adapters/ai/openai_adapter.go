package ai

import (
	"context"
	"errors"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"resume-checkout/internal/domain/ports/adapter"
)

// Compile-time assurance this adapter satisfies the port
var _ adapter.Analyzer = (*OpenAIAnalyzer)(nil)

// OpenAIAnalyzer implements adapter.Analyzer using Chat Completions.
type OpenAIAnalyzer struct {
	client          openai.Client
	model           string
	maxPromptTokens int
}

func NewOpenAIAnalyzer(apiKey, model string, maxPromptTokens int) (*OpenAIAnalyzer, error) {
	if apiKey == "" {
		return nil, errors.New("openai api key empty")
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &OpenAIAnalyzer{
		client:          openai.NewClient(option.WithAPIKey(apiKey)),
		model:           model,
		maxPromptTokens: maxPromptTokens,
	}, nil
}

func (o *OpenAIAnalyzer) Name() string { return "openai" }

func (o *OpenAIAnalyzer) Analyze(ctx context.Context, req adapter.AnalysisRequest) (*adapter.AnalysisReport, error) {
	system, user := buildPrompt(req, o.maxPromptTokens)

	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, errors.New("openai: no choice content")
	}

	return &adapter.AnalysisReport{
		Provider: o.Name(),
		Model:    o.model,
		Content:  resp.Choices[0].Message.Content,
		Usage: adapter.Usage{
			PromptTokens:     int(resp.Usage.PromptTokens),
			CompletionTokens: int(resp.Usage.CompletionTokens),
			TotalTokens:      int(resp.Usage.TotalTokens),
		},
	}, nil
}
