package tailoring

import (
	"regexp"
	"strings"

	"github.com/jmercado/resume-tailor/internal/types"
)

const (
	// termUsageCap is the global limit on how many bullets a single term
	// may be injected into during one tailoring run.
	termUsageCap = 1
	// injectionAcceptThreshold is the minimum contextual score for an
	// injection to happen at all.
	injectionAcceptThreshold = 0.55
	// usagePenalty is subtracted per prior use of a term.
	usagePenalty = 0.3

	weightOverlap    = 0.3
	weightConfidence = 0.5
)

// EnhanceBullets selectively injects at most one matched term into each
// bullet, subject to contextual fit scoring and the global per-term usage
// cap. Bullets that clear no term past the acceptance threshold are
// returned unmodified. Input order is preserved.
func EnhanceBullets(bullets []string, matches []types.Match) []types.TailoredBullet {
	used := make(map[string]int)
	results := make([]types.TailoredBullet, 0, len(bullets))

	for _, bullet := range bullets {
		tailored := types.TailoredBullet{Original: bullet, Final: bullet}
		lowerBullet := strings.ToLower(bullet)

		var bestMatch *types.Match
		bestScore := 0.0

		for i := range matches {
			match := &matches[i]
			termKey := strings.ToLower(match.Term.Text)
			if used[termKey] >= termUsageCap {
				continue
			}
			// A term the bullet already states needs no injection.
			if strings.Contains(lowerBullet, termKey) {
				continue
			}

			score := scoreInjection(match, lowerBullet, used[termKey])
			if score > bestScore {
				bestScore = score
				bestMatch = match
			}
		}

		if bestMatch != nil && bestScore >= injectionAcceptThreshold {
			termKey := strings.ToLower(bestMatch.Term.Text)
			used[termKey]++
			tailored.Final = insertTerm(bullet, bestMatch.Term.Text)
			tailored.Injected = &bestMatch.Term
			tailored.Score = bestScore
		}

		results = append(results, tailored)
	}

	return results
}

// scoreInjection combines token overlap, match confidence, the
// category-vs-context adjustment, and the reuse penalty.
func scoreInjection(match *types.Match, lowerBullet string, priorUses int) float64 {
	overlap := bulletTermOverlap(lowerBullet, match.Term.Text)
	score := overlap*weightOverlap + match.Confidence*weightConfidence
	score += contextAdjustment(match.Term.Category, lowerBullet)
	score -= float64(priorUses) * usagePenalty
	return score
}

// bulletTermOverlap is the fraction of the term's tokens that appear in
// the bullet.
func bulletTermOverlap(lowerBullet, termText string) float64 {
	termWords := strings.Fields(strings.ToLower(termText))
	if len(termWords) == 0 {
		return 0
	}
	hits := 0
	for _, word := range termWords {
		if strings.Contains(lowerBullet, word) {
			hits++
		}
	}
	return float64(hits) / float64(len(termWords))
}

// technicalContextWords signal a bullet with a technical object or verb.
var technicalContextWords = []string{
	"developed", "built", "implemented", "automated", "configured",
	"designed", "engineered", "migrated", "integrated", "deployed",
	"programmed", "queried", "data", "system", "systems", "report",
	"reports", "reporting", "dashboard", "dashboards", "database",
	"pipeline", "application", "software", "platform", "code", "scripts",
}

// analyticalContextWords signal analytical or leadership character.
var analyticalContextWords = []string{
	"analyzed", "assessed", "evaluated", "modeled", "forecasted",
	"measured", "improved", "optimized", "reduced", "increased",
	"led", "managed", "directed", "oversaw", "streamlined",
}

// administrativeContextWords signal purely administrative bullets.
var administrativeContextWords = []string{
	"scheduled", "filed", "answered", "greeted", "booked", "mailed",
	"sorted", "copied", "stocked", "distributed", "typed", "archived",
	"reception", "calendars", "appointments", "supplies",
}

// contextAdjustment returns the bonus/penalty for placing a term of the
// given category into a bullet with the detected vocabulary. An
// analytical/domain term is penalized heavily in a purely administrative
// bullet; a tool/technology term needs some technical verb or object
// nearby.
func contextAdjustment(category types.TermCategory, lowerBullet string) float64 {
	technical := containsAnyWord(lowerBullet, technicalContextWords)
	analytical := containsAnyWord(lowerBullet, analyticalContextWords)
	administrative := containsAnyWord(lowerBullet, administrativeContextWords)

	switch category {
	case types.CategoryTechnologies, types.CategorySystems:
		if technical {
			return 0.25
		}
		if administrative {
			return -0.45
		}
		return -0.35
	case types.CategoryProcesses:
		if analytical || technical {
			return 0.15
		}
		if administrative {
			return -0.2
		}
		return 0
	case types.CategoryDomain:
		if administrative && !analytical && !technical {
			return -0.5
		}
		if analytical {
			return 0.15
		}
		return 0
	case types.CategoryCertifications:
		// Credentials read poorly mid-bullet.
		return -0.25
	default:
		return 0
	}
}

// containsAnyWord reports whether any listed word occurs in the text.
func containsAnyWord(text string, words []string) bool {
	for _, word := range words {
		if strings.Contains(text, word) {
			return true
		}
	}
	return false
}

// toolPhrasePattern finds an existing preposition-plus-tool phrase like
// "using Power BI" or "with Excel".
var toolPhrasePattern = regexp.MustCompile(`\b(?:using|with|in)\s+[A-Z][A-Za-z0-9+#.]*(?:\s+[A-Z][A-Za-z0-9+#.]*)*`)

// trailingListItemPattern matches a short final comma-list item.
var trailingListItemPattern = regexp.MustCompile(`,\s*(?:and\s+)?\w[\w .+#/-]{0,30}$`)

// actionVerbs are common bullet-leading verbs, lowercased.
var actionVerbs = map[string]bool{
	"built": true, "developed": true, "implemented": true, "created": true,
	"designed": true, "managed": true, "led": true, "analyzed": true,
	"improved": true, "reduced": true, "increased": true, "automated": true,
	"coordinated": true, "delivered": true, "launched": true,
	"maintained": true, "supported": true, "streamlined": true,
	"produced": true, "established": true, "drove": true, "owned": true,
}

// insertTerm places the term at a grammatically safe point: after an
// existing comma-list, after an existing preposition phrase, after the
// bullet's main verb phrase, or appended as a trailing "using <term>"
// clause. Sentence-final punctuation is preserved.
func insertTerm(bullet, term string) string {
	core := bullet
	punct := ""
	if len(core) > 0 {
		last := core[len(core)-1]
		if last == '.' || last == ';' || last == '!' || last == '?' {
			punct = string(last)
			core = core[:len(core)-1]
		}
	}

	switch {
	case trailingListItemPattern.MatchString(core):
		core = core + ", " + term

	case toolPhrasePattern.MatchString(core):
		loc := toolPhrasePattern.FindStringIndex(core)
		core = core[:loc[1]] + " and " + term + core[loc[1]:]

	case leadsWithActionVerb(core):
		if idx := strings.Index(core, ","); idx > 0 {
			core = core[:idx] + " using " + term + core[idx:]
		} else {
			core = core + " using " + term
		}

	default:
		core = core + " using " + term
	}

	return core + punct
}

// leadsWithActionVerb reports whether the bullet opens with a known
// action verb.
func leadsWithActionVerb(bullet string) bool {
	fields := strings.Fields(bullet)
	if len(fields) == 0 {
		return false
	}
	return actionVerbs[strings.ToLower(fields[0])]
}
