package ai

import (
	"context"
	"errors"

	"google.golang.org/genai"

	"resume-checkout/internal/domain/ports/adapter"
)

var _ adapter.Analyzer = (*GeminiAnalyzer)(nil)

type GeminiAnalyzer struct {
	client          *genai.Client
	model           string
	maxPromptTokens int
}

// NewGeminiAnalyzer creates a Gemini-backed analyzer using the official SDK.
func NewGeminiAnalyzer(ctx context.Context, apiKey, model string, maxPromptTokens int) (*GeminiAnalyzer, error) {
	if apiKey == "" {
		return nil, errors.New("gemini: empty api key")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &GeminiAnalyzer{client: c, model: model, maxPromptTokens: maxPromptTokens}, nil
}

func (g *GeminiAnalyzer) Name() string { return "gemini" }

func (g *GeminiAnalyzer) Analyze(ctx context.Context, req adapter.AnalysisRequest) (*adapter.AnalysisReport, error) {
	system, user := buildPrompt(req, g.maxPromptTokens)

	resp, err := g.client.Models.GenerateContent(
		ctx,
		g.model,
		genai.Text(user),
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: system}}},
		},
	)
	if err != nil {
		return nil, err
	}

	text := ""
	if resp != nil && len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil && len(resp.Candidates[0].Content.Parts) > 0 {
		text = resp.Candidates[0].Content.Parts[0].Text
	}
	if text == "" {
		return nil, errors.New("gemini: empty response")
	}

	u := adapter.Usage{}
	if resp.UsageMetadata != nil {
		u.PromptTokens = int(resp.UsageMetadata.PromptTokenCount)
		u.CompletionTokens = int(resp.UsageMetadata.CandidatesTokenCount)
		u.TotalTokens = int(resp.UsageMetadata.TotalTokenCount)
	}
	return &adapter.AnalysisReport{Provider: g.Name(), Model: g.model, Content: text, Usage: u}, nil
}
