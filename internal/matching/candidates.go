package matching

import (
	"sort"
	"strings"

	"github.com/jmercado/resume-tailor/internal/extraction"
)

// semanticCandidateCap bounds how many comparison strings from the target
// are sent to the LLM per term. Keeps the semantic tier's cost fixed.
const semanticCandidateCap = 5

// candidate is a scored comparison string drawn from the target text.
type candidate struct {
	text  string
	score float64
}

// selectCandidates picks the top-scored single words and short phrases
// from the target description. Technical terms are weighted higher;
// frequency adds weight; stopwords are excluded. The returned list is
// sorted by score descending with ties broken alphabetically so candidate
// selection is deterministic.
func selectCandidates(targetText string, limit int) []string {
	scores := make(map[string]float64)
	words := wordPattern.FindAllString(targetText, -1)

	for i, word := range words {
		lower := strings.ToLower(word)
		if len(lower) < minTokenLength || tokenStopwords[lower] {
			continue
		}

		scores[lower] += 1.0
		if extraction.IsKnownTechnical(lower) {
			scores[lower] += 2.0
		}

		// Short phrases: pair a word with its successor when either half
		// is technical, e.g. "machine learning", "Power BI".
		if i+1 < len(words) {
			next := strings.ToLower(words[i+1])
			if len(next) >= minTokenLength && !tokenStopwords[next] {
				phrase := lower + " " + next
				if extraction.IsKnownTechnical(phrase) ||
					extraction.IsKnownTechnical(lower) ||
					extraction.IsKnownTechnical(next) {
					scores[phrase] += 2.5
				}
			}
		}
	}

	candidates := make([]candidate, 0, len(scores))
	for text, score := range scores {
		candidates = append(candidates, candidate{text: text, score: score})
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].text < candidates[j].text
	})

	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}

	texts := make([]string, len(candidates))
	for i, c := range candidates {
		texts[i] = c.text
	}
	return texts
}

// candidatesForTerm filters the shared candidate pool for one term,
// dropping candidates identical to the term itself, and caps the result.
func candidatesForTerm(pool []string, termText string) []string {
	lower := strings.ToLower(termText)
	out := make([]string, 0, semanticCandidateCap)
	for _, c := range pool {
		if c == lower {
			continue
		}
		out = append(out, c)
		if len(out) == semanticCandidateCap {
			break
		}
	}
	return out
}
