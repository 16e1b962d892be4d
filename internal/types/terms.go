// Package types defines the shared data structures passed between pipeline stages.
package types

// TermCategory classifies an extracted knowledge/skill/ability term.
type TermCategory string

// Term categories recognized by the extractor.
const (
	CategorySystems        TermCategory = "systems"
	CategoryProcesses      TermCategory = "processes"
	CategoryTechnologies   TermCategory = "technologies"
	CategoryCertifications TermCategory = "certifications"
	CategoryDomain         TermCategory = "domain"
)

// Term is a single extracted KSA term. Immutable once created; the Text
// field retains the first-seen original casing.
type Term struct {
	Text     string       `json:"text"`
	Category TermCategory `json:"category"`
}

// MatchKind identifies the tier at which a term matched a target description.
type MatchKind string

// Match kinds, in tier order.
const (
	MatchExact    MatchKind = "exact"
	MatchLexical  MatchKind = "lexical"
	MatchSemantic MatchKind = "semantic"
)

// Priority returns the sort priority for a match kind. Lower sorts first.
func (k MatchKind) Priority() int {
	switch k {
	case MatchExact:
		return 0
	case MatchLexical:
		return 1
	case MatchSemantic:
		return 2
	default:
		return 3
	}
}

// Match records that a term was judged relevant to a target description.
// Invariant: Kind == MatchExact implies Confidence == 1.0.
type Match struct {
	Term       Term      `json:"term"`
	Kind       MatchKind `json:"match_kind"`
	Confidence float64   `json:"confidence"`
	Evidence   string    `json:"evidence,omitempty"`
}
