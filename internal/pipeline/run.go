// Package pipeline provides the high-level orchestration for the
// resume tailoring process.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/jmercado/resume-tailor/internal/document"
	"github.com/jmercado/resume-tailor/internal/extraction"
	"github.com/jmercado/resume-tailor/internal/ingestion"
	"github.com/jmercado/resume-tailor/internal/llm"
	"github.com/jmercado/resume-tailor/internal/matching"
	"github.com/jmercado/resume-tailor/internal/observability"
	"github.com/jmercado/resume-tailor/internal/preview"
	"github.com/jmercado/resume-tailor/internal/renderer"
	"github.com/jmercado/resume-tailor/internal/tailoring"
	"github.com/jmercado/resume-tailor/internal/types"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	RunID   string `json:"run_id,omitempty"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Step names reported through ProgressEvent.
const (
	StepIngestion  = "ingestion"
	StepExtraction = "extraction"
	StepMatching   = "matching"
	StepTailoring  = "tailoring"
	StepNormalize  = "normalize"
	StepImport     = "import"
)

// RunOptions holds configuration for running the pipeline
type RunOptions struct {
	ResumePath   string
	JobPath      string
	JobURL       string
	TemplatePath string

	APIKey      string
	RendererURL string

	// Model overrides the configured generation model for every tier
	// when set.
	Model string

	// KeepSummaryVerbatim skips the summary rewrite and protects the
	// template's summary content from reflow heuristics.
	KeepSummaryVerbatim bool

	UseBrowser bool
	Verbose    bool
	PreviewPDF string
	MaxWorkers int

	OnProgress ProgressCallback
}

// Result carries the outputs of one pipeline run.
type Result struct {
	RunID    uuid.UUID
	Terms    []types.Term
	Matches  []types.Match
	Summary  *types.TailoredSummary
	Bullets  []types.TailoredBullet
	Document *document.WorkingDocument
	Import   *renderer.ImportResult
}

// emitProgress calls the progress callback if configured
func emitProgress(opts *RunOptions, runID uuid.UUID, step, message string, content any) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{
			Step:    step,
			Message: message,
			RunID:   runID.String(),
			Content: content,
		})
	}
}

// Run orchestrates the full tailoring pipeline.
func Run(ctx context.Context, opts RunOptions) (*Result, error) {
	runID := uuid.New()
	printer := observability.NewPrinter(os.Stdout)
	result := &Result{RunID: runID}

	// Step 1: load source material and job posting.
	resumeText, err := readInput(opts.ResumePath)
	if err != nil {
		return nil, fmt.Errorf("reading resume: %w", err)
	}

	jobText, err := ingestJob(ctx, &opts)
	if err != nil {
		return nil, fmt.Errorf("ingesting job posting: %w", err)
	}
	emitProgress(&opts, runID, StepIngestion, "loaded source material and job posting", nil)

	// Step 2: seed the working document from the template.
	doc, err := loadTemplate(opts.TemplatePath)
	if err != nil {
		return nil, fmt.Errorf("loading template: %w", err)
	}
	result.Document = doc

	// Step 3: term extraction. The job posting's own terms widen the
	// matcher's target vocabulary.
	fmt.Printf("Step 1/5: Extracting terms...\n")
	terms := extraction.Extract(resumeText)
	targetTerms := extraction.Extract(jobText)
	result.Terms = terms
	if opts.Verbose {
		printer.PrintTerms(terms)
	}
	emitProgress(&opts, runID, StepExtraction, fmt.Sprintf("extracted %d terms", len(terms)), terms)

	// Step 4: tiered matching against the posting.
	fmt.Printf("Step 2/5: Matching terms against the posting...\n")
	client := buildClient(ctx, &opts)
	if client != nil {
		defer func() { _ = client.Close() }()
	}

	matcher := matching.New(client, matching.Options{MaxWorkers: opts.MaxWorkers})
	matches, err := matcher.MatchTerms(ctx, terms, jobText, targetTerms)
	if err != nil {
		return nil, fmt.Errorf("matching terms: %w", err)
	}
	result.Matches = matches
	if opts.Verbose {
		printer.PrintMatches(matches)
	}
	emitProgress(&opts, runID, StepMatching, fmt.Sprintf("matched %d terms", len(matches)), matches)

	// Step 5: tailoring. Summary rewrite unless the template's summary
	// is protected, then bullet enhancement.
	fmt.Printf("Step 3/5: Tailoring content...\n")
	protected := map[string]bool{}
	if opts.KeepSummaryVerbatim {
		protected["data.summary.content"] = true
	} else {
		seed := summarySeed(doc, resumeText)
		summary, err := tailoring.RewriteSummary(ctx, client, tailoring.SummaryRequest{
			Seed:    seed,
			JobText: jobText,
		})
		if err != nil {
			return nil, fmt.Errorf("rewriting summary: %w", err)
		}
		result.Summary = summary
		if err := doc.Set([]string{"data", "summary", "content"}, summary.Text); err != nil {
			return nil, err
		}
		if opts.Verbose {
			printer.PrintSummary(summary)
		}
	}

	bullets := tailorBullets(doc, matches)
	result.Bullets = bullets
	if opts.Verbose {
		printer.PrintBullets(bullets)
	}
	emitProgress(&opts, runID, StepTailoring, "tailored summary and bullets", nil)

	// Step 6: normalization. Hardening runs last so every field the
	// tailoring stages touched is schema-shaped before submission.
	fmt.Printf("Step 4/5: Normalizing document...\n")
	root := doc.Root()
	document.Migrate(root)
	document.Harden(root, document.DefaultRules())
	document.ComputeLayout(root)
	document.NormalizeDocument(root, protected)
	doc.Freeze()
	emitProgress(&opts, runID, StepNormalize, "normalized and froze document", nil)

	// Step 7: submission and optional local preview.
	if opts.RendererURL != "" {
		fmt.Printf("Step 5/5: Submitting to rendering service...\n")
		client := renderer.New(opts.RendererURL)
		importResult, err := client.Import(ctx, doc)
		if err != nil {
			return result, fmt.Errorf("importing document: %w", err)
		}
		result.Import = importResult
		if opts.Verbose {
			printer.PrintImportResult(importResult)
		}
		emitProgress(&opts, runID, StepImport, "document accepted", importResult)
	} else {
		fmt.Printf("Step 5/5: No renderer configured; skipping submission.\n")
	}

	if opts.PreviewPDF != "" {
		if err := writePreview(ctx, doc, opts.PreviewPDF); err != nil {
			fmt.Printf("Warning: preview rendering failed: %v\n", err)
		}
	}

	return result, nil
}

// maxInputBytes caps source text inputs. Resumes and postings are a
// few kilobytes; anything past this is a wrong file, not a big one.
const maxInputBytes = 1 << 20

// readInput loads a required text input, rejecting empty and oversized
// files.
func readInput(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("no input path given")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if len(data) > maxInputBytes {
		return "", fmt.Errorf("input file %s is %d bytes, larger than the %d byte limit", path, len(data), maxInputBytes)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", fmt.Errorf("input file %s is empty", path)
	}
	return text, nil
}

// ingestJob loads the posting text from a file or fetches it from a
// job board URL.
func ingestJob(ctx context.Context, opts *RunOptions) (string, error) {
	if opts.JobURL != "" {
		result, err := ingestion.FetchPosting(ctx, opts.JobURL, nil)
		if err != nil {
			return "", err
		}
		return result.Text, nil
	}
	return readInput(opts.JobPath)
}

// loadTemplate seeds the working document, falling back to the empty
// hardened skeleton when no template is configured.
func loadTemplate(path string) (*document.WorkingDocument, error) {
	if path == "" {
		return document.New(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return document.FromTemplate(data)
}

// buildClient constructs the text-generation client, wrapped in a
// circuit breaker. A missing API key yields a nil client; every stage
// downstream degrades deterministically.
func buildClient(ctx context.Context, opts *RunOptions) llm.Client {
	if opts.APIKey == "" {
		return nil
	}
	gemini, err := llm.NewGeminiClient(ctx, modelConfig(opts), opts.APIKey)
	if err != nil {
		fmt.Printf("Warning: text-generation client unavailable: %v\n", err)
		return nil
	}
	return llm.WithBreaker(gemini, "gemini")
}

// modelConfig applies the run's model override, when present, to every
// tier of the default model configuration.
func modelConfig(opts *RunOptions) *llm.Config {
	cfg := llm.DefaultConfig()
	if opts.Model == "" {
		return cfg
	}
	for _, tier := range []llm.ModelTier{llm.TierLite, llm.TierStandard, llm.TierAdvanced} {
		cfg = cfg.WithModel(tier, opts.Model)
	}
	return cfg
}

// summarySeed prefers the template's existing summary content over the
// raw resume text as grounding material for the rewrite.
func summarySeed(doc *document.WorkingDocument, resumeText string) string {
	if value, ok := doc.Get("data", "summary", "content"); ok {
		if content, _ := value.(string); strings.TrimSpace(content) != "" {
			return content + "\n\n" + resumeText
		}
	}
	return resumeText
}

// tailorBullets enhances the bullet lines of every experience item in
// place and returns the flat tailored list.
func tailorBullets(doc *document.WorkingDocument, matches []types.Match) []types.TailoredBullet {
	raw, ok := doc.Get("data", "sections", "experience", "items")
	if !ok {
		return nil
	}
	items, _ := raw.([]any)

	type location struct {
		item  map[string]any
		lines []string
		index int
	}

	var bullets []string
	var locations []location
	for _, rawItem := range items {
		item, _ := rawItem.(map[string]any)
		if item == nil {
			continue
		}
		summary, _ := item["summary"].(string)
		if summary == "" {
			continue
		}
		lines := strings.Split(summary, "\n")
		for i, line := range lines {
			text := strings.TrimPrefix(strings.TrimSpace(line), "- ")
			if text == "" {
				continue
			}
			bullets = append(bullets, text)
			locations = append(locations, location{item: item, lines: lines, index: i})
		}
	}
	if len(bullets) == 0 {
		return nil
	}

	tailored := tailoring.EnhanceBullets(bullets, matches)

	// Write enhanced lines back into their items.
	for i, loc := range locations {
		prefix := ""
		original := loc.lines[loc.index]
		if strings.HasPrefix(strings.TrimSpace(original), "- ") {
			prefix = "- "
		}
		loc.lines[loc.index] = prefix + tailored[i].Final
	}
	for _, loc := range locations {
		loc.item["summary"] = strings.Join(loc.lines, "\n")
	}

	return tailored
}

// writePreview renders a local PDF approximation of the document.
func writePreview(ctx context.Context, doc *document.WorkingDocument, path string) error {
	html, err := preview.BuildHTML(doc)
	if err != nil {
		return err
	}
	pdf, err := preview.RenderPDF(ctx, html)
	if err != nil {
		return err
	}
	return os.WriteFile(path, pdf, 0o644)
}
