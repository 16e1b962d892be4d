// Package tailoring rewrites summary and bullet content to reflect a
// term-match against a target job description, under a strict grounding
// policy.
package tailoring

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmercado/resume-tailor/internal/llm"
	"github.com/jmercado/resume-tailor/internal/prompts"
	"github.com/jmercado/resume-tailor/internal/types"
)

const (
	// maxSummaryAttempts bounds the rewrite ladder.
	maxSummaryAttempts = 4
	// minSummaryLines is the minimum acceptable rewrite length.
	minSummaryLines = 2
	// defaultAttemptTimeout bounds each generation attempt.
	defaultAttemptTimeout = 30 * time.Second
	// verbatimSentenceFloor is the shortest source sentence length (in
	// characters) checked for verbatim copying.
	verbatimSentenceFloor = 25
)

// attemptTemperatures escalates generation creativity per attempt mode.
var attemptTemperatures = [maxSummaryAttempts]float32{0.2, 0.4, 0.7, 0.9}

// attemptTiers escalates model capability alongside temperature: early
// attempts run on the standard model, later ones on the advanced model.
var attemptTiers = [maxSummaryAttempts]llm.ModelTier{
	llm.TierStandard, llm.TierStandard, llm.TierAdvanced, llm.TierAdvanced,
}

// SummaryRequest carries the inputs for a summary rewrite.
type SummaryRequest struct {
	// Seed is the source summary plus career facts the rewrite must be
	// grounded in.
	Seed string
	// JobText is the target job description.
	JobText string
	// AttemptTimeout bounds each LLM attempt. Zero means the default.
	AttemptTimeout time.Duration
}

// RewriteSummary runs the bounded rewrite state machine: up to four
// attempts with escalating creativity, each sanitized and checked against
// the grounding contract; the first acceptable result wins. When every
// attempt fails (or no client is available) the deterministic
// overlap-derived fallback is used. The only returned error is context
// cancellation; attempt failures, timeouts included, advance the ladder.
func RewriteSummary(ctx context.Context, client llm.Client, req SummaryRequest) (*types.TailoredSummary, error) {
	timeout := req.AttemptTimeout
	if timeout <= 0 {
		timeout = defaultAttemptTimeout
	}

	attempts := 0
	if client != nil {
		for mode := 0; mode < maxSummaryAttempts; mode++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			attempts++

			text, err := generateAttempt(ctx, client, req, mode, timeout)
			if err != nil {
				continue
			}

			sanitized := Sanitize(text)
			if acceptSummary(sanitized, req.Seed) {
				return &types.TailoredSummary{
					Text:     sanitized,
					Outcome:  types.SummaryGenerated,
					Attempts: attempts,
				}, nil
			}
		}
	}

	return &types.TailoredSummary{
		Text:     FallbackSummary(req.Seed, req.JobText),
		Outcome:  types.SummaryFallback,
		Attempts: attempts,
	}, nil
}

// generateAttempt issues one generation call for the given mode.
func generateAttempt(ctx context.Context, client llm.Client, req SummaryRequest, mode int, timeout time.Duration) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	prompt := buildSummaryPrompt(req, mode)
	return client.GenerateContent(callCtx, prompt, attemptTiers[mode], attemptTemperatures[mode])
}

// buildSummaryPrompt assembles intro, grounding rules, and the
// mode-specific directive.
func buildSummaryPrompt(req SummaryRequest, mode int) string {
	var sb strings.Builder

	intro := prompts.MustGet("tailoring.json", "summary-intro")
	sb.WriteString(prompts.Format(intro, map[string]string{
		"Seed":    req.Seed,
		"JobText": req.JobText,
	}))
	sb.WriteString(prompts.MustGet("tailoring.json", "summary-grounding"))
	sb.WriteString(prompts.MustGet("tailoring.json", fmt.Sprintf("summary-mode-%d", mode)))

	return sb.String()
}

// acceptSummary checks the grounding contract on a sanitized attempt:
// non-empty, at least two lines, and no source sentence copied verbatim.
func acceptSummary(sanitized, seed string) bool {
	if strings.TrimSpace(sanitized) == "" {
		return false
	}
	if countLines(sanitized) < minSummaryLines {
		return false
	}
	return !copiesSourceSentence(sanitized, seed)
}

// countLines counts non-empty lines.
func countLines(text string) int {
	count := 0
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			count++
		}
	}
	return count
}

// copiesSourceSentence reports whether any substantial source sentence
// appears verbatim (case-insensitive) in the candidate text.
func copiesSourceSentence(candidate, seed string) bool {
	lowerCandidate := strings.ToLower(candidate)
	for _, sentence := range splitSentences(seed) {
		if len(sentence) < verbatimSentenceFloor {
			continue
		}
		if strings.Contains(lowerCandidate, strings.ToLower(sentence)) {
			return true
		}
	}
	return false
}

// splitSentences breaks text on sentence-final punctuation.
func splitSentences(text string) []string {
	sentences := make([]string, 0)
	current := strings.Builder{}
	for _, r := range text {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			if s := strings.TrimSpace(current.String()); s != "" {
				sentences = append(sentences, strings.TrimSuffix(s, string(r)))
			}
			current.Reset()
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}
