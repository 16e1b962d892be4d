package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmercado/resume-tailor/internal/extraction"
	"github.com/jmercado/resume-tailor/internal/observability"
	"github.com/jmercado/resume-tailor/internal/types"
)

var extractCommand = &cobra.Command{
	Use:   "extract [file]",
	Short: "Extract categorized terms from a text file",
	Args:  cobra.ExactArgs(1),
	RunE:  runExtractCmd,
}

var extractJSON bool

func init() {
	extractCommand.Flags().BoolVar(&extractJSON, "json", false, "Emit terms as JSON")
	rootCmd.AddCommand(extractCommand)
}

func runExtractCmd(_ *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	terms := extraction.Extract(string(data))

	if extractJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(terms)
	}

	if len(terms) == 0 {
		fmt.Println("No terms found.")
		return nil
	}
	observability.NewPrinter(os.Stdout).PrintTerms(terms)
	fmt.Printf("%d terms across %s\n", len(terms), countCategories(terms))
	return nil
}

func countCategories(terms []types.Term) string {
	seen := map[types.TermCategory]bool{}
	for _, term := range terms {
		seen[term.Category] = true
	}
	if len(seen) == 1 {
		return "1 category"
	}
	return fmt.Sprintf("%d categories", len(seen))
}
