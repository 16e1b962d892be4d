package tailoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize_StripsEmails(t *testing.T) {
	out := Sanitize("Contact john.smith@corp.io for details.\nSecond line here.")
	assert.NotContains(t, out, "john.smith@corp.io")
	assert.Contains(t, out, "Second line here.")
}

func TestSanitize_StripsURLs(t *testing.T) {
	out := Sanitize("See https://example.com/profile and www.example.org now.\nMore text.")
	assert.NotContains(t, out, "https://example.com")
	assert.NotContains(t, out, "www.example.org")
}

func TestSanitize_StripsPhoneTokens(t *testing.T) {
	out := Sanitize("Call +1 (555) 123-4567 anytime.\nSecond line.")
	assert.NotContains(t, out, "555")
}

func TestSanitize_DropsSignatureLines(t *testing.T) {
	out := Sanitize("Seasoned analyst with reporting depth.\nBest regards,\nJane Doe")
	assert.NotContains(t, out, "Best regards")
	assert.NotContains(t, out, "Jane Doe")
	assert.Contains(t, out, "Seasoned analyst")
}

func TestSanitize_KeepsNormalProse(t *testing.T) {
	input := "Analyst with five years in operations.\nOwns reporting and variance analysis."
	assert.Equal(t, input, Sanitize(input))
}

func TestSanitize_CollapsesBlankRuns(t *testing.T) {
	out := Sanitize("First line.\n\n\n\nSecond line.")
	assert.Equal(t, "First line.\n\nSecond line.", out)
}

func TestIsSignatureLine(t *testing.T) {
	assert.True(t, isSignatureLine("Sincerely yours"))
	assert.True(t, isSignatureLine("Jane Doe"))
	assert.True(t, isSignatureLine("John Q Public"))
	assert.False(t, isSignatureLine("Led reporting for two units."))
	assert.False(t, isSignatureLine("delivered value"))
}
