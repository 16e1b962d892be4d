package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmercado/resume-tailor/internal/config"
	"github.com/jmercado/resume-tailor/internal/pipeline"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Run the full tailoring pipeline end-to-end",
	Long: `Orchestrates the entire tailoring process: ingestion -> extraction -> matching -> tailoring -> normalization -> import.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runPipelineCmd,
}

var (
	runConfigPath  string
	runResume      string
	runJob         string
	runJobURL      string
	runTemplate    string
	runAPIKey      string
	runModel       string
	runRendererURL string
	runVerbatim    bool
	runUseBrowser  bool
	runVerbose     bool
	runPreviewPDF  string
	runMaxWorkers  int
)

func init() {
	runCommand.Flags().StringVar(&runConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	runCommand.Flags().StringVarP(&runResume, "resume", "r", "", "Path to source resume/history text file")
	runCommand.Flags().StringVarP(&runJob, "job", "j", "", "Path to job posting text file (mutually exclusive with --job-url)")
	runCommand.Flags().StringVar(&runJobURL, "job-url", "", "URL to fetch job posting from (mutually exclusive with --job)")
	runCommand.Flags().StringVarP(&runTemplate, "template", "t", "", "Path to document template JSON")
	runCommand.Flags().BoolVar(&runVerbatim, "verbatim-summary", false, "Keep the template summary verbatim instead of rewriting it")
	runCommand.Flags().BoolVar(&runUseBrowser, "use-browser", false, "Use headless browser for SPA job boards (requires Chrome)")
	runCommand.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print detailed progress information")
	runCommand.Flags().StringVar(&runPreviewPDF, "preview-pdf", "", "Write a local PDF preview to this path")
	runCommand.Flags().IntVar(&runMaxWorkers, "max-workers", 0, "Matcher worker pool size (0 = default)")

	runCommand.Flags().StringVar(&runAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	runCommand.Flags().StringVar(&runModel, "model", "", "Generation model override applied to every tier")
	runCommand.Flags().StringVar(&runRendererURL, "renderer-url", "", "Rendering service base URL (optional, defaults to RENDERER_URL env var)")

	rootCmd.AddCommand(runCommand)
}

func runPipelineCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	var cfg config.Config
	if runConfigPath != "" {
		loaded, err := config.LoadConfig(runConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
		if runVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", runConfigPath)
		}
	}

	// Command-line args take priority; only override when the flag was
	// explicitly set.
	if cmd.Flags().Changed("resume") {
		cfg.Resume = runResume
	}
	if cmd.Flags().Changed("job") {
		cfg.Job = runJob
	}
	if cmd.Flags().Changed("job-url") {
		cfg.JobURL = runJobURL
	}
	if cmd.Flags().Changed("template") {
		cfg.Template = runTemplate
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = runAPIKey
	}
	if cmd.Flags().Changed("model") {
		cfg.Model = runModel
	}
	if cmd.Flags().Changed("renderer-url") {
		cfg.RendererURL = runRendererURL
	}
	if cmd.Flags().Changed("preview-pdf") {
		cfg.PreviewPDF = runPreviewPDF
	}
	if cmd.Flags().Changed("max-workers") {
		cfg.MaxWorkers = runMaxWorkers
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = runUseBrowser
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = runVerbose
	}

	cfg.FromEnv()
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Resume == "" {
		return fmt.Errorf("--resume is required (or 'resume' in the config file)")
	}
	if cfg.Job == "" && cfg.JobURL == "" {
		return fmt.Errorf("one of --job or --job-url is required")
	}

	result, err := pipeline.Run(ctx, pipeline.RunOptions{
		ResumePath:          cfg.Resume,
		JobPath:             cfg.Job,
		JobURL:              cfg.JobURL,
		TemplatePath:        cfg.Template,
		APIKey:              cfg.APIKey,
		Model:               cfg.Model,
		RendererURL:         cfg.RendererURL,
		KeepSummaryVerbatim: runVerbatim,
		UseBrowser:          cfg.UseBrowser,
		Verbose:             cfg.Verbose,
		PreviewPDF:          cfg.PreviewPDF,
		MaxWorkers:          cfg.MaxWorkers,
	})
	if err != nil {
		return err
	}

	fmt.Printf("\nDone. Run %s: %d terms, %d matches.\n", result.RunID, len(result.Terms), len(result.Matches))
	if result.Import != nil {
		fmt.Printf("Imported as %s\n", result.Import.ID)
		if result.Import.URL != "" {
			fmt.Printf("View at %s\n", result.Import.URL)
		}
	}
	return nil
}
