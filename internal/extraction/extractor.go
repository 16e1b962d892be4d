// Package extraction scans free-text source material and produces
// categorized knowledge/skill/ability terms for downstream matching.
package extraction

import (
	"regexp"
	"strings"

	"github.com/jmercado/resume-tailor/internal/types"
)

// categoryOrder fixes the grouping order of the returned term list.
var categoryOrder = []types.TermCategory{
	types.CategorySystems,
	types.CategoryProcesses,
	types.CategoryTechnologies,
	types.CategoryCertifications,
	types.CategoryDomain,
}

// Extract runs the full category battery over the source text and returns
// the deduplicated term list. Terms are grouped by category (systems,
// processes, technologies, certifications, domain) and keep first-seen
// order within a category. Deduplication is case-insensitive across all
// categories; the first-seen original casing is retained for display.
// Empty input yields an empty list, never an error, and extraction is
// idempotent.
func Extract(text string) []types.Term {
	if strings.TrimSpace(text) == "" {
		return []types.Term{}
	}

	seen := make(map[string]bool)
	buckets := make(map[types.TermCategory][]types.Term)

	add := func(display string, category types.TermCategory) {
		display = strings.TrimSpace(display)
		key := strings.ToLower(display)
		if key == "" || seen[key] {
			return
		}
		seen[key] = true
		buckets[category] = append(buckets[category], types.Term{
			Text:     display,
			Category: category,
		})
	}

	// Known-name batteries run before the generic patterns so that listed
	// credentials like PMP are categorized as certifications, not as bare
	// acronyms.
	for _, name := range systemNames {
		if found, casing := containsName(text, name); found {
			add(casing, types.CategorySystems)
		}
	}
	for _, phrase := range processPhrases {
		if found, casing := containsName(text, phrase); found {
			add(casing, types.CategoryProcesses)
		}
	}
	for _, name := range technologyNames {
		if found, casing := containsName(text, name); found {
			add(casing, types.CategoryTechnologies)
		}
	}
	for _, name := range certificationNames {
		if found, casing := containsName(text, name); found {
			add(casing, types.CategoryCertifications)
		}
	}
	for _, phrase := range domainPhrases {
		if found, casing := containsName(text, phrase); found {
			add(casing, types.CategoryDomain)
		}
	}

	// Generic patterns pick up what the batteries missed.
	for _, phrase := range certificationPhrasePattern.FindAllString(text, -1) {
		add(trimPhraseFiller(phrase), types.CategoryCertifications)
	}
	for _, acronym := range findAcronyms(text) {
		if coveredByExisting(seen, acronym) {
			continue
		}
		add(acronym, types.CategoryTechnologies)
	}

	terms := make([]types.Term, 0, len(seen))
	for _, category := range categoryOrder {
		terms = append(terms, buckets[category]...)
	}
	return terms
}

// containsName reports whether name occurs in text as a whole word or
// phrase (case-insensitive) and returns the casing as it appears in the
// source. Word boundaries prevent "R" from matching inside "Report".
func containsName(text, name string) (bool, string) {
	pattern := `(?i)(^|[^a-zA-Z0-9+#])(` + regexp.QuoteMeta(name) + `)($|[^a-zA-Z0-9+#])`
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false, ""
	}
	m := re.FindStringSubmatch(text)
	if m == nil {
		return false, ""
	}
	return true, m[2]
}

// phraseFillerWords are trailing words that the certification phrase
// pattern tends to over-capture ("certified scrum master since ...").
var phraseFillerWords = map[string]bool{
	"since": true, "with": true, "for": true, "in": true, "and": true,
	"from": true, "the": true, "of": true, "at": true, "on": true,
}

// trimPhraseFiller strips trailing filler words from a captured phrase.
func trimPhraseFiller(phrase string) string {
	words := strings.Fields(phrase)
	for len(words) > 1 && phraseFillerWords[strings.ToLower(words[len(words)-1])] {
		words = words[:len(words)-1]
	}
	return strings.Join(words, " ")
}

// coveredByExisting reports whether an acronym already appears as a word
// inside a previously recorded term, e.g. "BI" inside "Power BI".
func coveredByExisting(seen map[string]bool, acronym string) bool {
	lower := strings.ToLower(acronym)
	if seen[lower] {
		return true
	}
	for key := range seen {
		for _, word := range strings.Fields(key) {
			if word == lower {
				return true
			}
		}
	}
	return false
}

// findAcronyms returns standalone uppercase acronyms from the text,
// filtered through the stopword list.
func findAcronyms(text string) []string {
	matches := acronymPattern.FindAllString(text, -1)
	acronyms := make([]string, 0, len(matches))
	seen := make(map[string]bool)
	for _, m := range matches {
		if acronymStopwords[m] || seen[m] {
			continue
		}
		seen[m] = true
		acronyms = append(acronyms, m)
	}
	return acronyms
}
