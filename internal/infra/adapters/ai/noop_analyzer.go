package ai

import (
	"context"
	"fmt"

	"resume-checkout/internal/domain/ports/adapter"
)

var _ adapter.Analyzer = (*NoopAnalyzer)(nil)

// NoopAnalyzer implements adapter.Analyzer for local/dev runs without an
// AI key. It returns a canned report instead of calling a provider.
type NoopAnalyzer struct{}

func NewNoopAnalyzer() *NoopAnalyzer { return &NoopAnalyzer{} }

func (a *NoopAnalyzer) Name() string { return "noop" }

func (a *NoopAnalyzer) Analyze(ctx context.Context, req adapter.AnalysisRequest) (*adapter.AnalysisReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &adapter.AnalysisReport{
		Provider: a.Name(),
		Model:    "noop",
		Content: fmt.Sprintf(
			"[dev] premium report for %s: resume of %d chars received.",
			req.ProductID, len(req.Payload.ResumeText),
		),
	}, nil
}
