package document

import (
	"regexp"
	"strings"

	"github.com/jmercado/resume-tailor/internal/tailoring"
)

var (
	// hyphenLineBreak matches a word split across a line break by a
	// hyphen, e.g. "exper-\nience".
	hyphenLineBreak = regexp.MustCompile(`([A-Za-z])-\s*\n\s*([a-z])`)

	bulletGlyphLead = regexp.MustCompile(`(?m)^[\s]*[•●▪◦*]\s*`)
)

// textFields are the string fields text normalization visits. Item
// fields inside sections are normalized by walking each item map.
var textFields = [][]string{
	{"data", "basics", "headline"},
	{"data", "basics", "location"},
	{"data", "summary", "content"},
}

// NormalizeText rewrites free-form text into the renderer's plain
// conventions: bullet glyphs become "- " list markers, words split
// across line breaks by hyphens are rejoined, and whitespace is
// collapsed.
func NormalizeText(s string) string {
	s = hyphenLineBreak.ReplaceAllString(s, "$1$2")
	s = bulletGlyphLead.ReplaceAllString(s, "- ")
	return tailoring.CollapseVerbatim(s)
}

// NormalizeDocument applies text normalization to the document's
// free-form fields. Paths listed in protected are treated as verbatim
// content: only whitespace collapsing runs there, never bullet or
// hyphen reflow. Protected paths are joined with "."; the summary
// content path is "data.summary.content".
func NormalizeDocument(root map[string]any, protected map[string]bool) {
	for _, path := range textFields {
		value, ok := Get(root, path...)
		if !ok {
			continue
		}
		text, ok := value.(string)
		if !ok || text == "" {
			continue
		}
		if protected[strings.Join(path, ".")] {
			_ = Set(root, path, tailoring.CollapseVerbatim(text))
		} else {
			_ = Set(root, path, NormalizeText(text))
		}
	}
	normalizeSectionItems(root)
}

// normalizeSectionItems normalizes the free-form string fields of every
// section item. Section items never carry verbatim content.
func normalizeSectionItems(root map[string]any) {
	for _, key := range sectionKeys {
		raw, ok := Get(root, "data", "sections", key, "items")
		if !ok {
			continue
		}
		items, _ := raw.([]any)
		for _, rawItem := range items {
			item, ok := rawItem.(map[string]any)
			if !ok {
				continue
			}
			for field, value := range item {
				if text, ok := value.(string); ok && text != "" {
					item[field] = NormalizeText(text)
				}
			}
		}
	}
}
