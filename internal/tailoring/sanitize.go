package tailoring

import (
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	urlPattern   = regexp.MustCompile(`https?://\S+|www\.\S+`)
	// phonePattern catches phone-like tokens: 7+ digits with optional
	// separators and country code.
	phonePattern = regexp.MustCompile(`\+?\d[\d\s().\-]{6,}\d`)
)

// signaturePrefixes mark closing/signature lines the model sometimes adds.
var signaturePrefixes = []string{
	"best regards", "kind regards", "regards", "sincerely", "best,",
	"thanks", "thank you", "yours ", "cheers", "warm regards",
	"--", "—",
}

// Sanitize strips PII patterns (emails, URLs, phone-like tokens) and
// signature/name lines from generated text, then tidies whitespace.
func Sanitize(text string) string {
	text = emailPattern.ReplaceAllString(text, "")
	text = urlPattern.ReplaceAllString(text, "")
	text = phonePattern.ReplaceAllString(text, "")

	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			kept = append(kept, "")
			continue
		}
		if isSignatureLine(trimmed) {
			continue
		}
		kept = append(kept, strings.TrimRight(line, " \t"))
	}

	result := strings.Join(kept, "\n")
	// Collapse runs of blank lines left behind by removals.
	for strings.Contains(result, "\n\n\n") {
		result = strings.ReplaceAll(result, "\n\n\n", "\n\n")
	}
	return strings.TrimSpace(result)
}

// isSignatureLine reports whether a line looks like a sign-off or a bare
// name line: a known closing phrase, or a short line of capitalized words
// with no sentence punctuation.
func isSignatureLine(line string) bool {
	lower := strings.ToLower(line)
	for _, prefix := range signaturePrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}

	// Bare name heuristic: 2-3 words, every word capitalized, no
	// sentence-final punctuation.
	words := strings.Fields(line)
	if len(words) < 2 || len(words) > 3 {
		return false
	}
	if strings.ContainsAny(line, ".,:;!?") {
		return false
	}
	for _, word := range words {
		r := rune(word[0])
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
