package pipeline

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmercado/resume-tailor/internal/document"
	"github.com/jmercado/resume-tailor/internal/llm"
	"github.com/jmercado/resume-tailor/internal/types"
)

const testResume = `Senior Financial Analyst with six years in corporate reporting.
Built forecasting models and dashboards in Power BI and SQL for leadership.
Automated month-end reconciliation workflows in Excel.`

const testJob = `We are hiring a Financial Analyst.
Experience with SQL and Power BI required.
Familiarity with forecasting and reconciliation is a plus.`

const testTemplate = `{
	"data": {
		"basics": {"name": "Jane Doe"},
		"summary": {"content": ""},
		"sections": {
			"experience": {
				"items": [{
					"title": "Senior Analyst",
					"company": "Acme Corp",
					"summary": "- Built forecasting models for leadership.\n- Automated reconciliation workflows."
				}]
			}
		}
	}
}`

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func baseOptions(t *testing.T) RunOptions {
	t.Helper()
	return RunOptions{
		ResumePath:   writeFixture(t, "resume.txt", testResume),
		JobPath:      writeFixture(t, "job.txt", testJob),
		TemplatePath: writeFixture(t, "template.json", testTemplate),
	}
}

func TestRun_DeterministicWithoutAPIKey(t *testing.T) {
	result, err := Run(context.Background(), baseOptions(t))
	require.NoError(t, err)

	assert.NotEmpty(t, result.Terms)
	assert.NotEmpty(t, result.Matches)

	require.NotNil(t, result.Summary)
	assert.Equal(t, types.SummaryFallback, result.Summary.Outcome)

	require.NotNil(t, result.Document)
	assert.True(t, result.Document.Frozen())

	content, ok := result.Document.Get("data", "summary", "content")
	require.True(t, ok)
	assert.NotEmpty(t, content)
}

func TestRun_SummaryVisibleAfterTailoring(t *testing.T) {
	// The template ships an empty summary, so loading it hides the
	// summary block. Once tailoring fills the content, the finished
	// document must show it again.
	result, err := Run(context.Background(), baseOptions(t))
	require.NoError(t, err)

	content, ok := result.Document.Get("data", "summary", "content")
	require.True(t, ok)
	require.NotEmpty(t, content)

	hidden, ok := result.Document.Get("data", "summary", "hidden")
	require.True(t, ok)
	assert.Equal(t, false, hidden)
}

func TestRun_FindsExactMatches(t *testing.T) {
	result, err := Run(context.Background(), baseOptions(t))
	require.NoError(t, err)

	var sqlMatch *types.Match
	for i := range result.Matches {
		if result.Matches[i].Term.Text == "SQL" {
			sqlMatch = &result.Matches[i]
			break
		}
	}
	require.NotNil(t, sqlMatch, "SQL appears verbatim in the posting")
	assert.Equal(t, types.MatchExact, sqlMatch.Kind)
	assert.Equal(t, 1.0, sqlMatch.Confidence)
}

func TestRun_VerbatimSummaryIsProtected(t *testing.T) {
	opts := baseOptions(t)
	opts.KeepSummaryVerbatim = true
	opts.TemplatePath = writeFixture(t, "template.json", `{
		"data": {
			"summary": {"content": "Hands-on exper-\nience   with reporting."},
			"sections": {}
		}
	}`)

	result, err := Run(context.Background(), opts)
	require.NoError(t, err)

	assert.Nil(t, result.Summary, "verbatim mode skips the rewrite")

	content, _ := result.Document.Get("data", "summary", "content")
	// Whitespace collapsed, hyphen split untouched.
	assert.Equal(t, "Hands-on exper-\nience with reporting.", content)
}

func TestRun_SubmitsToRenderer(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"res-1"}`))
	}))
	defer server.Close()

	opts := baseOptions(t)
	opts.RendererURL = server.URL

	result, err := Run(context.Background(), opts)
	require.NoError(t, err)

	require.NotNil(t, result.Import)
	assert.Equal(t, "res-1", result.Import.ID)
	assert.Equal(t, 1, requests)
}

func TestRun_EmitsProgress(t *testing.T) {
	var steps []string
	opts := baseOptions(t)
	opts.OnProgress = func(event ProgressEvent) {
		steps = append(steps, event.Step)
		assert.NotEmpty(t, event.RunID)
	}

	_, err := Run(context.Background(), opts)
	require.NoError(t, err)

	assert.Contains(t, steps, StepExtraction)
	assert.Contains(t, steps, StepMatching)
	assert.Contains(t, steps, StepTailoring)
	assert.Contains(t, steps, StepNormalize)
}

func TestRun_MissingResumeFails(t *testing.T) {
	opts := baseOptions(t)
	opts.ResumePath = "/nonexistent/resume.txt"

	_, err := Run(context.Background(), opts)
	assert.Error(t, err)
}

func TestRun_EmptyResumeFails(t *testing.T) {
	opts := baseOptions(t)
	opts.ResumePath = writeFixture(t, "empty.txt", "   \n  ")

	_, err := Run(context.Background(), opts)
	assert.Error(t, err)
}

func TestRun_OversizedResumeFails(t *testing.T) {
	opts := baseOptions(t)
	opts.ResumePath = writeFixture(t, "huge.txt", strings.Repeat("x", maxInputBytes+1))

	_, err := Run(context.Background(), opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "byte limit")
}

func TestRun_NoTemplateUsesSkeleton(t *testing.T) {
	opts := baseOptions(t)
	opts.TemplatePath = ""

	result, err := Run(context.Background(), opts)
	require.NoError(t, err)

	columns, ok := result.Document.Get("data", "summary", "columns")
	require.True(t, ok)
	assert.EqualValues(t, 1, columns)
}

func TestTailorBullets_WritesBackDashLines(t *testing.T) {
	doc, err := document.FromTemplate([]byte(testTemplate))
	require.NoError(t, err)

	matches := []types.Match{{
		Term:       types.Term{Text: "SQL", Category: types.CategoryTechnologies},
		Kind:       types.MatchExact,
		Confidence: 1.0,
	}}

	bullets := tailorBullets(doc, matches)
	require.Len(t, bullets, 2)

	summary, _ := doc.Get("data", "sections", "experience", "items", "0", "summary")
	text := summary.(string)
	assert.Contains(t, text, "- ")
	for _, bullet := range bullets {
		assert.Contains(t, text, bullet.Final)
	}
}

func TestTailorBullets_NoExperienceSection(t *testing.T) {
	doc := document.New()
	assert.Nil(t, tailorBullets(doc, nil))
}

func TestModelConfig_DefaultWithoutOverride(t *testing.T) {
	cfg := modelConfig(&RunOptions{})
	assert.Equal(t, llm.DefaultConfig().Models, cfg.Models)
}

func TestModelConfig_OverrideAppliesToEveryTier(t *testing.T) {
	cfg := modelConfig(&RunOptions{Model: "gemini-2.5-flash"})

	assert.Equal(t, "gemini-2.5-flash", cfg.GetModel(llm.TierLite))
	assert.Equal(t, "gemini-2.5-flash", cfg.GetModel(llm.TierStandard))
	assert.Equal(t, "gemini-2.5-flash", cfg.GetModel(llm.TierAdvanced))
}

func TestSummarySeed_PrefersTemplateSummary(t *testing.T) {
	doc, err := document.FromTemplate([]byte(`{"data":{"summary":{"content":"Existing summary."}}}`))
	require.NoError(t, err)

	seed := summarySeed(doc, "resume text")
	assert.Contains(t, seed, "Existing summary.")
	assert.Contains(t, seed, "resume text")
}

func TestSummarySeed_FallsBackToResume(t *testing.T) {
	seed := summarySeed(document.New(), "resume text")
	assert.Equal(t, "resume text", seed)
}
