package ai

import (
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"

	"resume-checkout/internal/domain/ports/adapter"
)

const systemPrompt = `You are an expert resume reviewer and career coach.
Produce a thorough, structured premium report: overall assessment, section-by-section
critique, concrete rewrite suggestions, ATS keyword findings, and a prioritized action list.
Be specific and quote the resume where it helps.`

// buildPrompt renders the premium analysis prompt for a redeemed payload.
// Resume and job posting text are truncated to the token budget so one
// oversized upload cannot blow the provider's context window.
func buildPrompt(req adapter.AnalysisRequest, maxPromptTokens int) (system, user string) {
	resume := truncateTokens(req.Payload.ResumeText, maxPromptTokens*3/4)

	var b strings.Builder
	fmt.Fprintf(&b, "Product purchased: %s (%s)\n\n", req.ProductID, req.ProductType)
	b.WriteString("=== RESUME ===\n")
	b.WriteString(resume)
	b.WriteString("\n")
	if req.Payload.HasJobPosting() && req.ProductID != "resume_analysis" {
		posting := truncateTokens(req.Payload.JobPosting, maxPromptTokens/4)
		b.WriteString("\n=== TARGET JOB POSTING ===\n")
		b.WriteString(posting)
		b.WriteString("\nTailor the report to this posting: match rate, missing keywords, gap analysis.\n")
	}
	return systemPrompt, b.String()
}

// truncateTokens bounds text to at most n tokens using the cl100k_base
// encoding. On encoder failure it falls back to a crude byte bound.
func truncateTokens(text string, n int) string {
	if n <= 0 {
		return ""
	}
	enc, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		if len(text) > n*4 {
			return text[:n*4]
		}
		return text
	}
	toks := enc.Encode(text, nil, nil)
	if len(toks) <= n {
		return text
	}
	return enc.Decode(toks[:n])
}
