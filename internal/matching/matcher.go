// Package matching ranks extracted terms against a target job description
// using a tiered exact, lexical, semantic strategy.
package matching

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jmercado/resume-tailor/internal/llm"
	"github.com/jmercado/resume-tailor/internal/prompts"
	"github.com/jmercado/resume-tailor/internal/types"
)

const (
	// lexicalAcceptThreshold is the token-overlap ratio above which the
	// lexical tier accepts a match.
	lexicalAcceptThreshold = 0.5
	// semanticAcceptThreshold is the minimum LLM confidence for a
	// semantic match.
	semanticAcceptThreshold = 0.6
	// semanticEarlyStopThreshold stops candidate comparison once a
	// sufficiently confident semantic match is found.
	semanticEarlyStopThreshold = 0.85
	// defaultCallTimeout bounds each similarity-judging call.
	defaultCallTimeout = 15 * time.Second
)

// Options configures a Matcher.
type Options struct {
	// CallTimeout bounds each LLM similarity call. Zero means the default.
	CallTimeout time.Duration
	// MaxWorkers bounds parallel term matching. Values below 2 match
	// sequentially.
	MaxWorkers int
}

// Matcher matches terms against target descriptions. The LLM client is
// optional: with a nil client the semantic tier degrades to its
// deterministic overlap fallback and never errors.
type Matcher struct {
	client llm.Client
	opts   Options
}

// New creates a Matcher. client may be nil.
func New(client llm.Client, opts Options) *Matcher {
	if opts.CallTimeout <= 0 {
		opts.CallTimeout = defaultCallTimeout
	}
	if opts.MaxWorkers < 1 {
		opts.MaxWorkers = 1
	}
	return &Matcher{client: client, opts: opts}
}

// MatchTerms evaluates every distinct term against the target description
// and returns accepted matches sorted by (tier priority, confidence
// descending, term text). targetTerms optionally widens matching with a
// pre-extracted term list from the target; their texts are treated as
// additional target content. External-service failures degrade tiers
// gracefully and are never surfaced as errors; the only error returned is
// context cancellation.
func (m *Matcher) MatchTerms(ctx context.Context, terms []types.Term, targetText string, targetTerms []types.Term) ([]types.Match, error) {
	widened := widenTarget(targetText, targetTerms)
	lowerTarget := strings.ToLower(widened)
	targetTokens := tokenize(widened)
	candidatePool := selectCandidates(widened, semanticCandidateCap*3)

	distinct := dedupeTerms(terms)

	results := make([]*types.Match, len(distinct))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.opts.MaxWorkers)

	for i, term := range distinct {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = m.matchOne(gctx, term, lowerTarget, targetTokens, candidatePool)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	matches := make([]types.Match, 0, len(results))
	for _, match := range results {
		if match != nil {
			matches = append(matches, *match)
		}
	}
	sortMatches(matches)
	return matches, nil
}

// matchOne runs the tier ladder for a single term, short-circuiting at
// the first tier that accepts.
func (m *Matcher) matchOne(ctx context.Context, term types.Term, lowerTarget string, targetTokens map[string]bool, candidatePool []string) *types.Match {
	// Exact tier: case-insensitive substring containment.
	lowerTerm := strings.ToLower(term.Text)
	if strings.Contains(lowerTarget, lowerTerm) {
		return &types.Match{
			Term:       term,
			Kind:       types.MatchExact,
			Confidence: 1.0,
			Evidence:   snippetAround(lowerTarget, lowerTerm),
		}
	}

	// Lexical tier: token-set overlap ratio.
	termTokens := tokenize(term.Text)
	ratio := overlapRatio(termTokens, targetTokens)
	if ratio > lexicalAcceptThreshold {
		return &types.Match{
			Term:       term,
			Kind:       types.MatchLexical,
			Confidence: ratio,
			Evidence:   strings.Join(overlappingTokens(term.Text, targetTokens), ", "),
		}
	}

	// Semantic tier: compare against a bounded set of candidate strings.
	return m.matchSemantic(ctx, term, candidatePool)
}

// similarityVerdict is the JSON shape the similarity prompt asks for.
type similarityVerdict struct {
	Similar     bool    `json:"similar"`
	Confidence  float64 `json:"confidence"`
	Explanation string  `json:"explanation"`
}

// matchSemantic judges the term against candidate comparison strings. A
// service failure for a candidate falls back to the deterministic token
// overlap between term and candidate; the match kind never escalates past
// semantic.
func (m *Matcher) matchSemantic(ctx context.Context, term types.Term, candidatePool []string) *types.Match {
	candidates := candidatesForTerm(candidatePool, term.Text)
	termTokens := tokenize(term.Text)

	var best *types.Match
	for _, cand := range candidates {
		verdict, err := m.judgeSimilarity(ctx, term.Text, cand)
		if err != nil {
			// Deterministic fallback: overlap ratio against this candidate.
			fallbackRatio := overlapRatio(termTokens, tokenize(cand))
			if fallbackRatio > semanticAcceptThreshold {
				verdict = &similarityVerdict{
					Similar:     true,
					Confidence:  fallbackRatio,
					Explanation: "token overlap with " + cand,
				}
			} else {
				continue
			}
		}

		if !verdict.Similar || verdict.Confidence <= semanticAcceptThreshold {
			continue
		}
		if best == nil || verdict.Confidence > best.Confidence {
			best = &types.Match{
				Term:       term,
				Kind:       types.MatchSemantic,
				Confidence: verdict.Confidence,
				Evidence:   verdict.Explanation,
			}
		}
		if best.Confidence > semanticEarlyStopThreshold {
			break
		}
	}
	return best
}

// judgeSimilarity asks the LLM whether two terms are interchangeable.
func (m *Matcher) judgeSimilarity(ctx context.Context, termA, termB string) (*similarityVerdict, error) {
	if m.client == nil {
		return nil, &JudgeError{Message: "no LLM client configured"}
	}

	callCtx, cancel := context.WithTimeout(ctx, m.opts.CallTimeout)
	defer cancel()

	template := prompts.MustGet("matching.json", "semantic-similarity")
	prompt := prompts.Format(template, map[string]string{
		"TermA": termA,
		"TermB": termB,
	})

	raw, err := m.client.GenerateJSON(callCtx, prompt, llm.TierLite)
	if err != nil {
		return nil, &JudgeError{Message: "similarity call failed", Cause: err}
	}

	var verdict similarityVerdict
	if err := json.Unmarshal([]byte(raw), &verdict); err != nil {
		return nil, &JudgeError{Message: "similarity response was not valid JSON", Cause: err}
	}
	return &verdict, nil
}

// widenTarget appends pre-extracted target term texts to the target text.
func widenTarget(targetText string, targetTerms []types.Term) string {
	if len(targetTerms) == 0 {
		return targetText
	}
	var sb strings.Builder
	sb.WriteString(targetText)
	for _, term := range targetTerms {
		sb.WriteString("\n")
		sb.WriteString(term.Text)
	}
	return sb.String()
}

// dedupeTerms keeps the first occurrence of each distinct term text
// (case-insensitive) so a match is produced at most once per text.
func dedupeTerms(terms []types.Term) []types.Term {
	seen := make(map[string]bool)
	distinct := make([]types.Term, 0, len(terms))
	for _, term := range terms {
		key := strings.ToLower(strings.TrimSpace(term.Text))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		distinct = append(distinct, term)
	}
	return distinct
}

// sortMatches orders matches by tier priority, then confidence
// descending, then term text for a stable total order.
func sortMatches(matches []types.Match) {
	sort.SliceStable(matches, func(i, j int) bool {
		pi, pj := matches[i].Kind.Priority(), matches[j].Kind.Priority()
		if pi != pj {
			return pi < pj
		}
		if matches[i].Confidence != matches[j].Confidence {
			return matches[i].Confidence > matches[j].Confidence
		}
		return matches[i].Term.Text < matches[j].Term.Text
	})
}

// snippetAround returns a short window of target text around the first
// occurrence of the term, for evidence display.
func snippetAround(lowerTarget, lowerTerm string) string {
	idx := strings.Index(lowerTarget, lowerTerm)
	if idx < 0 {
		return ""
	}
	start := idx - 30
	if start < 0 {
		start = 0
	}
	end := idx + len(lowerTerm) + 30
	if end > len(lowerTarget) {
		end = len(lowerTarget)
	}
	return strings.TrimSpace(lowerTarget[start:end])
}
