// File: internal/infra/adapters/ai/multi_adapter.go
package ai

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"resume-checkout/internal/domain/ports/adapter"
)

var _ adapter.Analyzer = (*MultiAnalyzer)(nil)

// MultiAnalyzer tries each configured analyzer in order and serves the
// first success. A provider outage should degrade to the next provider,
// not to a refund.
type MultiAnalyzer struct {
	chain []adapter.Analyzer
	log   *zerolog.Logger
}

func NewMultiAnalyzer(logger *zerolog.Logger, chain ...adapter.Analyzer) *MultiAnalyzer {
	return &MultiAnalyzer{chain: chain, log: logger}
}

func (m *MultiAnalyzer) Name() string {
	names := make([]string, 0, len(m.chain))
	for _, a := range m.chain {
		names = append(names, a.Name())
	}
	return "multi(" + strings.Join(names, ",") + ")"
}

func (m *MultiAnalyzer) Analyze(ctx context.Context, req adapter.AnalysisRequest) (*adapter.AnalysisReport, error) {
	if len(m.chain) == 0 {
		return nil, errors.New("no analyzers configured")
	}
	var lastErr error
	for _, a := range m.chain {
		report, err := a.Analyze(ctx, req)
		if err == nil {
			return report, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		m.log.Warn().Err(err).Str("provider", a.Name()).Msg("analyzer failed; trying next")
	}
	return nil, lastErr
}
