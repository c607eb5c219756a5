// Package pipeline runs the report pipeline: fetch the index page, extract
// report links, select a report, download it and extract its table.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/jonathan/customs-fts/internal/crawling"
	"github.com/jonathan/customs-fts/internal/fetch"
	"github.com/jonathan/customs-fts/internal/logger"
	"github.com/jonathan/customs-fts/internal/observability"
	"github.com/jonathan/customs-fts/internal/pipeline/steps"
	"github.com/jonathan/customs-fts/internal/selection"
	"github.com/jonathan/customs-fts/internal/tabular"
	"github.com/jonathan/customs-fts/internal/types"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Index    int    `json:"index"`
	Total    int    `json:"total"`
	Message  string `json:"message"`
	RunID    string `json:"run_id,omitempty"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Options holds configuration for running the pipeline
type Options struct {
	IndexURL      string
	LinkSelector  string // empty uses the portal default
	SelectionMode selection.Mode
	SheetName     string
	Year          int
	Month         int // 0 uses the month of the selected report
	PeriodFields  tabular.PeriodFields
	ScratchDir    string
	Fetch         *fetch.Options
	UseBrowser    bool // render the index page when the static HTML lacks the report list
	Verbose       bool
	Out           io.Writer // progress output, defaults to os.Stdout
	OnProgress    ProgressCallback
}

// Result holds everything the pipeline produced.
type Result struct {
	RunID        string                   `json:"run_id"`
	Links        []types.ReportLink       `json:"links"`
	Candidates   []types.Candidate        `json:"candidates"`
	Selected     types.Candidate          `json:"selected"`
	ArtifactPath string                   `json:"artifact_path"`
	Table        *types.TradeBalanceTable `json:"table"`
}

type runner struct {
	opts      Options
	out       io.Writer
	printer   *observability.Printer
	runID     string
	order     []string
	completed map[string]bool
}

// Run executes every stage in order. A stage error is returned unchanged,
// so callers can match it with errors.As.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.IndexURL == "" {
		opts.IndexURL = fetch.DefaultIndexURL
	}
	if opts.SheetName == "" {
		opts.SheetName = tabular.DefaultSheet
	}
	if opts.SelectionMode == "" {
		opts.SelectionMode = selection.ModeLatest
	}
	if opts.PeriodFields == "" {
		opts.PeriodFields = tabular.PeriodStamp
	}
	if opts.Fetch == nil {
		opts.Fetch = fetch.DefaultOptions()
	}
	if opts.PeriodFields == tabular.PeriodStamp && opts.Year <= 0 {
		return nil, fmt.Errorf("a report year is required when period fields are stamped")
	}

	order, err := steps.Order()
	if err != nil {
		return nil, err
	}

	r := &runner{
		opts:      opts,
		out:       opts.Out,
		runID:     uuid.New().String(),
		order:     order,
		completed: make(map[string]bool, len(order)),
	}
	if r.out == nil {
		r.out = os.Stdout
	}
	r.printer = observability.NewPrinter(r.out)

	op := logger.StartOperation(ctx, "pipeline.run", "run_id", r.runID, "index_url", opts.IndexURL)
	ctx = op.Context()

	result, err := r.run(ctx)
	if err != nil {
		op.EndWithError(err)
		return nil, err
	}
	op.End("records", len(result.Table.Records))
	return result, nil
}

func (r *runner) run(ctx context.Context) (*Result, error) {
	res := &Result{RunID: r.runID}
	selector := fetch.SelectorFor(r.opts.IndexURL, r.opts.LinkSelector)

	var html string
	err := r.stage(ctx, steps.FetchIndex, func(ctx context.Context) error {
		page, err := LoadIndex(ctx, r.opts.IndexURL, selector, r.opts.Fetch, r.opts.UseBrowser)
		html = page
		return err
	})
	if err != nil {
		return nil, err
	}

	err = r.stage(ctx, steps.ExtractLinks, func(ctx context.Context) error {
		links, err := crawling.ExtractReportLinks(html, selector, r.opts.IndexURL)
		if err != nil {
			return err
		}
		res.Links = links
		logger.Debug(ctx, "Extracted report links", "count", len(links))
		if r.opts.Verbose {
			r.printer.PrintReportLinks(links)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = r.stage(ctx, steps.SelectReport, func(ctx context.Context) error {
		res.Candidates = selection.Filter(res.Links)
		selected, err := selection.Pick(res.Candidates, r.opts.SelectionMode)
		if err != nil {
			return err
		}
		res.Selected = selected
		logger.Info(ctx, "Selected report", "title", selected.Title, "period", selected.Period, "url", selected.URL)
		if r.opts.Verbose {
			r.printer.PrintCandidates(res.Candidates, &selected)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = r.stage(ctx, steps.FetchArtifact, func(ctx context.Context) error {
		logger.Info(ctx, "Downloading report", "url", res.Selected.URL)
		path, err := fetch.Download(ctx, res.Selected.URL, fetch.ScratchPath(r.opts.ScratchDir), r.opts.Fetch)
		if err != nil {
			return err
		}
		res.ArtifactPath = path
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = r.stage(ctx, steps.ExtractTable, func(ctx context.Context) error {
		month := r.opts.Month
		if month == 0 && r.opts.PeriodFields == tabular.PeriodStamp {
			month = selection.Period(res.Selected.Period).Number()
		}

		table, err := tabular.Extract(res.ArtifactPath, tabular.Options{
			Sheet:        r.opts.SheetName,
			Year:         r.opts.Year,
			Month:        month,
			PeriodFields: r.opts.PeriodFields,
		})
		if err != nil {
			return err
		}
		res.Table = table
		if r.opts.Verbose {
			r.printer.PrintTable(table)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

// LoadIndex fetches the index page. With useBrowser set, a page whose static
// HTML lacks the report list is rendered in a headless browser instead.
func LoadIndex(ctx context.Context, indexURL, selector string, opts *fetch.Options, useBrowser bool) (string, error) {
	if opts == nil {
		opts = fetch.DefaultOptions()
	}

	page, err := fetch.URL(ctx, indexURL, opts)
	if err != nil {
		return "", err
	}
	if !useBrowser || !fetch.ShouldUseBrowser(page.HTML, selector) {
		return page.HTML, nil
	}

	logger.Info(ctx, "Report list missing from static HTML, rendering with browser", "url", indexURL)
	return fetch.WithBrowser(ctx, indexURL, selector, fetch.BrowserTimeout, opts.VerifyServerCert)
}

// stage runs fn as the named step after checking its dependencies.
func (r *runner) stage(ctx context.Context, name string, fn func(context.Context) error) error {
	if err := steps.ValidateDependencies(name, r.completed); err != nil {
		return err
	}

	def := steps.StepRegistry[name]
	index := indexOf(r.order, name) + 1

	fmt.Fprintf(r.out, "Step %d/%d: %s...\n", index, len(r.order), def.Description) //nolint:errcheck
	r.emit(ProgressEvent{Step: name, Category: def.Category, Index: index, Total: len(r.order), Message: def.Description})

	op := logger.StartOperation(ctx, "pipeline."+name, "run_id", r.runID, "stage", name)
	if err := fn(op.Context()); err != nil {
		op.EndWithError(err, "stage", name)
		return err
	}
	op.End()

	r.completed[name] = true
	return nil
}

// emit calls the progress callback if configured
func (r *runner) emit(event ProgressEvent) {
	if r.opts.OnProgress != nil {
		event.RunID = r.runID
		r.opts.OnProgress(event)
	}
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}
