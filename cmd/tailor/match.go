package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmercado/resume-tailor/internal/extraction"
	"github.com/jmercado/resume-tailor/internal/llm"
	"github.com/jmercado/resume-tailor/internal/matching"
	"github.com/jmercado/resume-tailor/internal/observability"
)

var matchCommand = &cobra.Command{
	Use:   "match [resume-file] [job-file]",
	Short: "Match resume terms against a job posting",
	Long:  "Extracts terms from the resume file and matches them against the job posting using the tiered exact/lexical/semantic strategy. Without an API key the semantic tier degrades to deterministic lexical scoring.",
	Args:  cobra.ExactArgs(2),
	RunE:  runMatchCmd,
}

var (
	matchJSON   bool
	matchAPIKey string
)

func init() {
	matchCommand.Flags().BoolVar(&matchJSON, "json", false, "Emit matches as JSON")
	matchCommand.Flags().StringVar(&matchAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	rootCmd.AddCommand(matchCommand)
}

func runMatchCmd(_ *cobra.Command, args []string) error {
	ctx := context.Background()

	resumeData, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading resume: %w", err)
	}
	jobData, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("reading job posting: %w", err)
	}

	apiKey := matchAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}

	var client llm.Client
	if apiKey != "" {
		gemini, err := llm.NewGeminiClient(ctx, llm.DefaultConfig(), apiKey)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: text-generation client unavailable: %v\n", err)
		} else {
			client = llm.WithBreaker(gemini, "gemini")
			defer func() { _ = client.Close() }()
		}
	}

	terms := extraction.Extract(string(resumeData))
	jobText := string(jobData)
	targetTerms := extraction.Extract(jobText)

	matcher := matching.New(client, matching.Options{})
	matches, err := matcher.MatchTerms(ctx, terms, jobText, targetTerms)
	if err != nil {
		return fmt.Errorf("matching terms: %w", err)
	}

	if matchJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(matches)
	}

	if len(matches) == 0 {
		fmt.Println("No matches found.")
		return nil
	}
	observability.NewPrinter(os.Stdout).PrintMatches(matches)
	return nil
}
