// Package main provides the entry point for the resume tailoring CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tailor",
	Short: "Job-fit resume tailoring pipeline",
	Long:  "Tailor extracts terminology from your resume, matches it against a job posting, rewrites summary and bullet content under a grounding policy, and submits the normalized document to the rendering service.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
