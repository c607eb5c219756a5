package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jonathan/customs-fts/internal/observability"
	"github.com/jonathan/customs-fts/internal/output"
	"github.com/jonathan/customs-fts/internal/pipeline"
	"github.com/jonathan/customs-fts/internal/selection"
	"github.com/jonathan/customs-fts/internal/tabular"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the whole report pipeline",
	Long:  "Fetches the report index, selects a report, downloads the workbook and writes the validated trade balance table.",
	RunE:  runPipeline,
}

var (
	runIndexURL     string
	runSelector     string
	runSheet        string
	runMode         string
	runPeriodFields string
	runYear         int
	runMonth        int
	runScratchDir   string
	runUseBrowser   bool
	runOutput       string
	runFormat       string
)

func init() {
	runCmd.Flags().StringVar(&runIndexURL, "index-url", "", "URL of the report index page")
	runCmd.Flags().StringVar(&runSelector, "selector", "", "CSS selector of the report list (default: portal specific)")
	runCmd.Flags().StringVar(&runSheet, "sheet", "", "Worksheet to extract")
	runCmd.Flags().StringVar(&runMode, "mode", "", "Selection mode: latest or positional")
	runCmd.Flags().StringVar(&runPeriodFields, "period-fields", "", "Period fields: stamp or omit")
	runCmd.Flags().IntVar(&runYear, "year", 0, "Report year written into every record")
	runCmd.Flags().IntVar(&runMonth, "month", 0, "Report month 1-12 (default: month of the selected report)")
	runCmd.Flags().StringVar(&runScratchDir, "scratch-dir", "", "Directory for the downloaded workbook")
	runCmd.Flags().BoolVar(&runUseBrowser, "browser", false, "Render the index page in headless Chrome when needed")
	runCmd.Flags().StringVarP(&runOutput, "out", "o", "", "Output file (- for stdout)")
	runCmd.Flags().StringVarP(&runFormat, "format", "f", "", "Output format: json or csv")

	rootCmd.AddCommand(runCmd)
}

func runPipeline(cmd *cobra.Command, _ []string) error {
	c := *cfg
	setString(cmd, "index-url", &c.IndexURL, runIndexURL)
	setString(cmd, "selector", &c.LinkSelector, runSelector)
	setString(cmd, "sheet", &c.SheetName, runSheet)
	setString(cmd, "mode", &c.SelectionMode, runMode)
	setString(cmd, "period-fields", &c.PeriodFields, runPeriodFields)
	setInt(cmd, "year", &c.Year, runYear)
	setInt(cmd, "month", &c.Month, runMonth)
	setString(cmd, "scratch-dir", &c.ScratchDir, runScratchDir)
	setString(cmd, "out", &c.OutputPath, runOutput)
	setString(cmd, "format", &c.OutputFormat, runFormat)
	if runUseBrowser {
		c.UseBrowser = true
	}
	if err := c.Validate(); err != nil {
		return err
	}

	mode, err := selection.ParseMode(c.SelectionMode)
	if err != nil {
		return err
	}
	periodFields, err := tabular.ParsePeriodFields(c.PeriodFields)
	if err != nil {
		return err
	}
	format, err := output.ParseFormat(c.OutputFormat)
	if err != nil {
		return err
	}

	// Keep stdout clean for the table when it is written there.
	progress := cmd.OutOrStdout()
	toStdout := c.OutputPath == "" || c.OutputPath == output.Stdout
	if toStdout {
		progress = cmd.ErrOrStderr()
	}

	result, err := pipeline.Run(cmd.Context(), pipeline.Options{
		IndexURL:      c.IndexURL,
		LinkSelector:  c.LinkSelector,
		SelectionMode: mode,
		SheetName:     c.SheetName,
		Year:          c.Year,
		Month:         c.Month,
		PeriodFields:  periodFields,
		ScratchDir:    c.ScratchDir,
		Fetch:         fetchOptions(&c),
		UseBrowser:    c.UseBrowser,
		Verbose:       c.Verbose,
		Out:           progress,
	})
	if err != nil {
		reportIssues(progress, err, c.Verbose)
		return fmt.Errorf("pipeline failed: %w", err)
	}

	if toStdout {
		return output.Write(cmd.OutOrStdout(), result.Table, format)
	}
	if err := output.WriteFile(c.OutputPath, result.Table, format); err != nil {
		return err
	}
	fmt.Fprintf(progress, "Wrote %d records from %q to %s\n", len(result.Table.Records), result.Selected.Title, c.OutputPath) //nolint:errcheck
	return nil
}

// reportIssues prints every worksheet issue in verbose mode; the error
// message itself lists only the first few.
func reportIssues(w io.Writer, err error, verbose bool) {
	var schemaErr *tabular.SchemaValidationError
	if verbose && errors.As(err, &schemaErr) {
		observability.NewPrinter(w).PrintIssues(schemaErr.Issues)
	}
}
