// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/customs-fts/internal/tabular"
	"github.com/jonathan/customs-fts/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
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
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintReportLinks outputs the links scraped from the index page.
func (p *Printer) PrintReportLinks(links []types.ReportLink) {
	if len(links) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Links found: %d\n\n", len(links)))

	count := min(len(links), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, links[i].Title))
		sb.WriteString(fmt.Sprintf("   %s\n", links[i].URL))
	}
	if len(links) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more links\n", len(links)-maxItemsToShow))
	}

	p.printBox("REPORT LINKS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCandidates outputs the filtered candidates and marks the selected one.
func (p *Printer) PrintCandidates(candidates []types.Candidate, selected *types.Candidate) {
	if len(candidates) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Candidates: %d\n\n", len(candidates)))

	for _, c := range candidates {
		marker := " "
		if selected != nil && c.Position == selected.Position && c.URL == selected.URL {
			marker = "→"
		}
		sb.WriteString(fmt.Sprintf("%s [%d] %-8s %s\n", marker, c.Position, c.Period, c.Title))
	}

	p.printBox("REPORT CANDIDATES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintTable outputs a summary of the extracted table.
func (p *Printer) PrintTable(table *types.TradeBalanceTable) {
	if table == nil {
		return
	}

	var export, imp, revenue float64
	for _, rec := range table.Records {
		export += rec.Export
		imp += rec.Import
		revenue += rec.ImportRevenue
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Sheet:    %s\n", table.Sheet))
	sb.WriteString(fmt.Sprintf("Records:  %d (dropped %d)\n", len(table.Records), table.DroppedRows))
	if table.PeriodFields && len(table.Records) > 0 {
		sb.WriteString(fmt.Sprintf("Period:   %d-%02d\n", table.Records[0].Year, table.Records[0].Month))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Exports:         %.2f\n", export))
	sb.WriteString(fmt.Sprintf("Imports:         %.2f\n", imp))
	sb.WriteString(fmt.Sprintf("Trade balance:   %.2f\n", export-imp))
	sb.WriteString(fmt.Sprintf("Import revenue:  %.2f", revenue))

	p.printBox("TRADE BALANCE TABLE", sb.String())
}

// PrintIssues outputs worksheet validation issues.
func (p *Printer) PrintIssues(issues []tabular.Issue) {
	var sb strings.Builder
	if len(issues) == 0 {
		sb.WriteString("✓ No issues found")
	} else {
		sb.WriteString(fmt.Sprintf("Found %d issue(s):\n\n", len(issues)))
		count := min(len(issues), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("✗ %s\n", issues[i]))
		}
		if len(issues) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("... and %d more", len(issues)-maxItemsToShow))
		}
	}

	p.printBox("VALIDATION ISSUES", strings.TrimSuffix(sb.String(), "\n"))
}
