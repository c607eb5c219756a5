package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/customs-fts/internal/crawling"
	"github.com/jonathan/customs-fts/internal/fetch"
	"github.com/jonathan/customs-fts/internal/observability"
	"github.com/jonathan/customs-fts/internal/pipeline"
	"github.com/jonathan/customs-fts/internal/selection"
	"github.com/jonathan/customs-fts/internal/types"
)

var linksCmd = &cobra.Command{
	Use:   "links",
	Short: "List report links and the report that would be selected",
	Long:  "Fetches the report index, extracts its links, filters them to trade statistics reports and shows which one the selection mode picks. Nothing is downloaded.",
	RunE:  runLinks,
}

var (
	linksIndexURL    string
	linksSelector    string
	linksMode        string
	linksUseBrowser  bool
	linksJSON        bool
	linksLegacyMonth bool
)

func init() {
	linksCmd.Flags().StringVar(&linksIndexURL, "index-url", "", "URL of the report index page")
	linksCmd.Flags().StringVar(&linksSelector, "selector", "", "CSS selector of the report list (default: portal specific)")
	linksCmd.Flags().StringVar(&linksMode, "mode", "", "Selection mode: latest or positional")
	linksCmd.Flags().BoolVar(&linksUseBrowser, "browser", false, "Render the index page in headless Chrome when needed")
	linksCmd.Flags().BoolVar(&linksJSON, "json", false, "Print links, candidates and selection as JSON")
	linksCmd.Flags().BoolVar(&linksLegacyMonth, "legacy-month", false, "Print only the month label of the second candidate")

	rootCmd.AddCommand(linksCmd)
}

type linksReport struct {
	Links      []types.ReportLink `json:"links"`
	Candidates []types.Candidate  `json:"candidates"`
	Selected   *types.Candidate   `json:"selected,omitempty"`
	Error      string             `json:"error,omitempty"`
}

func runLinks(cmd *cobra.Command, _ []string) error {
	c := *cfg
	setString(cmd, "index-url", &c.IndexURL, linksIndexURL)
	setString(cmd, "selector", &c.LinkSelector, linksSelector)
	setString(cmd, "mode", &c.SelectionMode, linksMode)
	if linksUseBrowser {
		c.UseBrowser = true
	}

	mode, err := selection.ParseMode(c.SelectionMode)
	if err != nil {
		return err
	}

	selector := fetch.SelectorFor(c.IndexURL, c.LinkSelector)
	html, err := pipeline.LoadIndex(cmd.Context(), c.IndexURL, selector, fetchOptions(&c), c.UseBrowser)
	if err != nil {
		return fmt.Errorf("failed to fetch index: %w", err)
	}
	links, err := crawling.ExtractReportLinks(html, selector, c.IndexURL)
	if err != nil {
		return fmt.Errorf("failed to extract links: %w", err)
	}

	out := cmd.OutOrStdout()
	if linksLegacyMonth {
		month, err := selection.LegacyMonth(links)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, month) //nolint:errcheck
		return nil
	}

	report := linksReport{Links: links, Candidates: selection.Filter(links)}
	selected, selErr := selection.Pick(report.Candidates, mode)
	if selErr == nil {
		report.Selected = &selected
	} else {
		report.Error = selErr.Error()
	}

	if linksJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("failed to encode links: %w", err)
		}
		return selErr
	}

	printer := observability.NewPrinter(out)
	if c.Verbose {
		printer.PrintReportLinks(links)
	}
	printer.PrintCandidates(report.Candidates, report.Selected)
	if selErr != nil {
		return selErr
	}
	fmt.Fprintf(out, "Selected: %s (%s)\n%s\n", selected.Title, selected.Period, selected.URL) //nolint:errcheck
	return nil
}
