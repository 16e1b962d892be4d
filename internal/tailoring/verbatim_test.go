package tailoring

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollapseVerbatim_CollapsesSpaces(t *testing.T) {
	assert.Equal(t, "one two three", CollapseVerbatim("one   two\t\tthree"))
}

func TestCollapseVerbatim_CollapsesBlankLines(t *testing.T) {
	out := CollapseVerbatim("first\n\n\n\nsecond")
	assert.Equal(t, "first\n\nsecond", out)
}

func TestCollapseVerbatim_NormalizesCRLF(t *testing.T) {
	assert.Equal(t, "a\nb", CollapseVerbatim("a\r\nb"))
}

func TestCollapseVerbatim_PreservesHyphenatedCompounds(t *testing.T) {
	input := "Led cross-functional, data-driven decision-making initiatives"
	assert.Equal(t, input, CollapseVerbatim(input))
}

func TestCollapseVerbatim_NeverIntroducesBulletGlyphs(t *testing.T) {
	input := "- item one\n- item two with  extra   spaces"
	out := CollapseVerbatim(input)

	assert.False(t, strings.Contains(out, "•"))
	assert.Equal(t, "- item one\n- item two with extra spaces", out)
}

func TestCollapseVerbatim_NoCharacterLoss(t *testing.T) {
	input := "Alpha  beta\n\n\ngamma-delta epsilon"
	out := CollapseVerbatim(input)

	// Everything except whitespace must survive unchanged.
	strip := func(s string) string {
		return strings.Map(func(r rune) rune {
			if r == ' ' || r == '\n' || r == '\t' || r == '\r' {
				return -1
			}
			return r
		}, s)
	}
	assert.Equal(t, strip(input), strip(out))
}

func TestCollapseVerbatim_Idempotent(t *testing.T) {
	input := "first   block\n\n\nsecond - block"
	once := CollapseVerbatim(input)
	assert.Equal(t, once, CollapseVerbatim(once))
}
