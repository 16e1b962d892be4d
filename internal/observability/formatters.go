// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jmercado/resume-tailor/internal/renderer"
	"github.com/jmercado/resume-tailor/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 8
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintTerms outputs the extracted terms grouped by category.
func (p *Printer) PrintTerms(terms []types.Term) {
	if len(terms) == 0 {
		return
	}

	byCategory := map[types.TermCategory][]string{}
	order := []types.TermCategory{}
	for _, term := range terms {
		if _, seen := byCategory[term.Category]; !seen {
			order = append(order, term.Category)
		}
		byCategory[term.Category] = append(byCategory[term.Category], term.Text)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total terms: %d\n", len(terms)))
	for _, category := range order {
		sb.WriteString(fmt.Sprintf("\n%s:\n", category))
		names := byCategory[category]
		count := min(len(names), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", names[i]))
		}
		if len(names) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(names)-maxItemsToShow))
		}
	}

	p.printBox("EXTRACTED TERMS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMatches outputs the ranked matches with kind and confidence.
func (p *Printer) PrintMatches(matches []types.Match) {
	if len(matches) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total matches: %d\n\n", len(matches)))

	count := min(len(matches), maxItemsToShow)
	for i := 0; i < count; i++ {
		m := matches[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, m.Term.Text))
		sb.WriteString(fmt.Sprintf("    %s  %.2f\n", m.Kind, m.Confidence))
		if m.Evidence != "" {
			evidence := m.Evidence
			if len(evidence) > 40 {
				evidence = evidence[:37] + "..."
			}
			sb.WriteString(fmt.Sprintf("    evidence: %s\n", evidence))
		}
	}
	if len(matches) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more matches", len(matches)-maxItemsToShow))
	}

	p.printBox("TERM MATCHES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSummary outputs the tailored summary with its outcome.
func (p *Printer) PrintSummary(summary *types.TailoredSummary) {
	if summary == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Outcome:  %s\n", summary.Outcome))
	sb.WriteString(fmt.Sprintf("Attempts: %d\n\n", summary.Attempts))
	sb.WriteString(summary.Text)

	p.printBox("TAILORED SUMMARY", sb.String())
}

// PrintBullets outputs the enhanced bullets, marking injections.
func (p *Printer) PrintBullets(bullets []types.TailoredBullet) {
	if len(bullets) == 0 {
		return
	}

	injected := 0
	var sb strings.Builder
	for _, bullet := range bullets {
		marker := "  "
		if bullet.Injected != nil {
			marker = "+ "
			injected++
		}
		sb.WriteString(fmt.Sprintf("%s%s\n", marker, bullet.Final))
	}
	sb.WriteString(fmt.Sprintf("\nEnhanced %d of %d bullets", injected, len(bullets)))

	p.printBox("TAILORED BULLETS", sb.String())
}

// PrintImportResult outputs the rendering service's acceptance.
func (p *Printer) PrintImportResult(result *renderer.ImportResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("ID:       %s\n", result.ID))
	if result.URL != "" {
		sb.WriteString(fmt.Sprintf("URL:      %s\n", result.URL))
	}
	sb.WriteString(fmt.Sprintf("Repaired: %t", result.Repaired))

	p.printBox("IMPORT RESULT", sb.String())
}
