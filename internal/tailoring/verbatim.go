package tailoring

import (
	"regexp"
	"strings"
)

var (
	horizontalSpaceRun = regexp.MustCompile(`[ \t]+`)
	blankLineRun       = regexp.MustCompile(`\n{3,}`)
)

// CollapseVerbatim normalizes whitespace in a protected-verbatim field.
// This is the ONLY transformation permitted on such fields: runs of spaces
// and tabs collapse to one space, three or more newlines collapse to a
// blank line, and surrounding whitespace is trimmed. Bullet or hyphen
// reinterpretation is forbidden here; reflow heuristics corrupt hyphenated
// compound words, so every non-whitespace character passes through
// untouched.
func CollapseVerbatim(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(horizontalSpaceRun.ReplaceAllString(line, " "))
	}
	text = strings.Join(lines, "\n")
	text = blankLineRun.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}
