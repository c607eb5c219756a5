package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/customs-fts/internal/observability"
	"github.com/jonathan/customs-fts/internal/output"
	"github.com/jonathan/customs-fts/internal/tabular"
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Extract the trade balance table from a local workbook",
	Long:  "Reads the trade balance worksheet of a downloaded workbook, drops incomplete rows, validates the rest and writes the table.",
	RunE:  runParse,
}

var (
	parseFile         string
	parseSheet        string
	parseYear         int
	parseMonth        int
	parsePeriodFields string
	parseOutput       string
	parseFormat       string
)

func init() {
	parseCmd.Flags().StringVar(&parseFile, "file", "", "Path to the xlsx workbook (required)")
	parseCmd.Flags().StringVar(&parseSheet, "sheet", "", "Worksheet to extract")
	parseCmd.Flags().IntVar(&parseYear, "year", 0, "Report year written into every record")
	parseCmd.Flags().IntVar(&parseMonth, "month", 0, "Report month 1-12 written into every record")
	parseCmd.Flags().StringVar(&parsePeriodFields, "period-fields", "", "Period fields: stamp or omit")
	parseCmd.Flags().StringVarP(&parseOutput, "out", "o", "", "Output file (- for stdout)")
	parseCmd.Flags().StringVarP(&parseFormat, "format", "f", "", "Output format: json or csv")

	if err := parseCmd.MarkFlagRequired("file"); err != nil {
		panic(fmt.Sprintf("failed to mark file flag as required: %v", err))
	}

	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, _ []string) error {
	if _, err := os.Stat(parseFile); os.IsNotExist(err) {
		return fmt.Errorf("workbook not found: %s", parseFile)
	}

	c := *cfg
	setString(cmd, "sheet", &c.SheetName, parseSheet)
	setInt(cmd, "year", &c.Year, parseYear)
	setInt(cmd, "month", &c.Month, parseMonth)
	setString(cmd, "period-fields", &c.PeriodFields, parsePeriodFields)
	setString(cmd, "out", &c.OutputPath, parseOutput)
	setString(cmd, "format", &c.OutputFormat, parseFormat)
	if err := c.Validate(); err != nil {
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

	table, err := tabular.Extract(parseFile, tabular.Options{
		Sheet:        c.SheetName,
		Year:         c.Year,
		Month:        c.Month,
		PeriodFields: periodFields,
	})
	if err != nil {
		reportIssues(cmd.ErrOrStderr(), err, c.Verbose)
		return fmt.Errorf("failed to extract table: %w", err)
	}

	if c.Verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintTable(table)
	}

	if c.OutputPath == "" || c.OutputPath == output.Stdout {
		return output.Write(cmd.OutOrStdout(), table, format)
	}
	return output.WriteFile(c.OutputPath, table, format)
}
