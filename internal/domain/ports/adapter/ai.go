package adapter

import (
	"context"

	"resume-checkout/internal/domain/model"
)

// AnalysisRequest is the redeemed payload plus what was bought.
type AnalysisRequest struct {
	ProductID   string
	ProductType model.ProductType
	Payload     model.Payload
}

// Usage as reported by the provider for a single call.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// AnalysisReport is the premium output generated from a redeemed session.
type AnalysisReport struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
	Content  string `json:"content"`
	Usage    Usage  `json:"-"`
}

// Analyzer is the port for the premium content generator. Everything about
// prompt construction and response parsing lives behind it.
type Analyzer interface {
	Name() string
	Analyze(ctx context.Context, req AnalysisRequest) (*AnalysisReport, error)
}
