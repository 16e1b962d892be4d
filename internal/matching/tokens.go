package matching

import (
	"regexp"
	"strings"
)

// minTokenLength excludes short glue words from overlap computation.
const minTokenLength = 3

var wordPattern = regexp.MustCompile(`[A-Za-z0-9+#]+`)

// tokenStopwords are common words excluded from candidate selection.
var tokenStopwords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "you": true,
	"are": true, "our": true, "will": true, "have": true, "this": true,
	"that": true, "from": true, "your": true, "their": true, "who": true,
	"role": true, "team": true, "work": true, "ability": true,
	"experience": true, "years": true, "required": true, "preferred": true,
	"strong": true, "skills": true, "including": true, "must": true,
	"plus": true, "etc": true, "such": true, "other": true, "using": true,
}

// tokenize lowercases text and returns the set of tokens longer than
// minTokenLength-1 characters.
func tokenize(text string) map[string]bool {
	tokens := make(map[string]bool)
	for _, word := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		if len(word) >= minTokenLength {
			tokens[word] = true
		}
	}
	return tokens
}

// overlapRatio computes |intersection| / min(|a|, |b|) over two token
// sets. Returns 0 when either set is empty.
func overlapRatio(a, b map[string]bool) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	intersection := 0
	for token := range a {
		if b[token] {
			intersection++
		}
	}
	smaller := len(a)
	if len(b) < smaller {
		smaller = len(b)
	}
	return float64(intersection) / float64(smaller)
}

// overlappingTokens returns the sorted-by-discovery intersection of two
// token sets, for use as match evidence.
func overlappingTokens(termText string, target map[string]bool) []string {
	shared := make([]string, 0)
	for _, word := range wordPattern.FindAllString(strings.ToLower(termText), -1) {
		if len(word) >= minTokenLength && target[word] {
			shared = append(shared, word)
		}
	}
	return shared
}
