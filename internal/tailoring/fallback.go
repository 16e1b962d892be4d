package tailoring

import (
	"sort"
	"strings"
)

// fallbackStopwords keeps filler out of the overlap-derived summary.
var fallbackStopwords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "that": true,
	"this": true, "have": true, "from": true, "will": true, "work": true,
	"working": true, "years": true, "year": true, "team": true,
	"teams": true, "role": true, "required": true, "preferred": true,
	"experience": true, "experienced": true, "strong": true,
	"ability": true, "skills": true, "including": true, "across": true,
	"within": true, "their": true, "your": true, "about": true,
}

// maxFallbackTerms caps how many shared terms the fallback summary names.
const maxFallbackTerms = 6

// FallbackSummary builds a deterministic summary from the token
// intersection between the source material and the target description. It
// needs no AI dependency and always yields at least two lines. Every
// skill or domain term it names is drawn from the source seed, keeping
// the grounding contract.
func FallbackSummary(seed, jobText string) string {
	shared := sharedTerms(seed, jobText)

	var first strings.Builder
	first.WriteString("Professional with demonstrated background")
	if len(shared) > 0 {
		first.WriteString(" in ")
		first.WriteString(joinNatural(shared))
	}
	first.WriteString(".")

	second := "Seeking to apply this experience to the responsibilities described in the target role."
	if len(shared) > 1 {
		second = "Brings hands-on depth in " + shared[0] + " and " + shared[1] +
			" directly relevant to the position's stated needs."
	}

	return first.String() + "\n" + second
}

// sharedTerms returns source words that also occur in the job text,
// ordered by job-text frequency (descending) then alphabetically, capped
// at maxFallbackTerms. Words shorter than four characters and stopwords
// are ignored.
func sharedTerms(seed, jobText string) []string {
	seedWords := make(map[string]string) // lowercase -> first-seen casing
	for _, word := range strings.Fields(seed) {
		cleaned := strings.Trim(word, ".,;:()!?\"'")
		lower := strings.ToLower(cleaned)
		if len(lower) < 4 || fallbackStopwords[lower] {
			continue
		}
		if _, exists := seedWords[lower]; !exists {
			seedWords[lower] = cleaned
		}
	}

	jobFreq := make(map[string]int)
	for _, word := range strings.Fields(strings.ToLower(jobText)) {
		cleaned := strings.Trim(word, ".,;:()!?\"'")
		jobFreq[cleaned]++
	}

	type scored struct {
		display string
		freq    int
	}
	overlap := make([]scored, 0)
	for lower, display := range seedWords {
		if freq := jobFreq[lower]; freq > 0 {
			overlap = append(overlap, scored{display: display, freq: freq})
		}
	}
	sort.Slice(overlap, func(i, j int) bool {
		if overlap[i].freq != overlap[j].freq {
			return overlap[i].freq > overlap[j].freq
		}
		return strings.ToLower(overlap[i].display) < strings.ToLower(overlap[j].display)
	})

	if len(overlap) > maxFallbackTerms {
		overlap = overlap[:maxFallbackTerms]
	}
	terms := make([]string, len(overlap))
	for i, s := range overlap {
		terms[i] = s.display
	}
	return terms
}

// joinNatural joins terms as "a, b, and c".
func joinNatural(terms []string) string {
	switch len(terms) {
	case 0:
		return ""
	case 1:
		return terms[0]
	case 2:
		return terms[0] + " and " + terms[1]
	default:
		return strings.Join(terms[:len(terms)-1], ", ") + ", and " + terms[len(terms)-1]
	}
}
