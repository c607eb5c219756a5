// Package output writes the trade balance table for downstream consumers.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jonathan/customs-fts/internal/schemas"
	"github.com/jonathan/customs-fts/internal/types"
)

// Format is an output encoding.
type Format string

const (
	// FormatJSON writes the table as a single JSON document.
	FormatJSON Format = "json"
	// FormatCSV writes one CSV row per record under a header row.
	FormatCSV Format = "csv"
)

// Stdout is the path that selects standard output.
const Stdout = "-"

// ParseFormat parses a format name; the empty string means FormatJSON.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want %q or %q)", s, FormatJSON, FormatCSV)
	}
}

// Write encodes table to w. JSON documents are checked against the table
// schema before anything is written.
func Write(w io.Writer, table *types.TradeBalanceTable, format Format) error {
	if table == nil {
		return fmt.Errorf("no table to write")
	}

	switch format {
	case FormatJSON, "":
		return writeJSON(w, table)
	case FormatCSV:
		return writeCSV(w, table)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// WriteFile writes table to path, or to stdout when path is empty or "-".
func WriteFile(path string, table *types.TradeBalanceTable, format Format) error {
	if path == "" || path == Stdout {
		return Write(os.Stdout, table, format)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := Write(f, table, format); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	return f.Close()
}

func writeJSON(w io.Writer, table *types.TradeBalanceTable) error {
	if err := schemas.ValidateTable(table); err != nil {
		return fmt.Errorf("table does not match output schema: %w", err)
	}

	data, err := json.MarshalIndent(table, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal table: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write table: %w", err)
	}
	return nil
}

func csvHeader(periodFields bool) []string {
	header := []string{"export", "import", "trade_balance", "import_revenue"}
	if periodFields {
		header = append(header, "year", "month")
	}
	return header
}

func writeCSV(w io.Writer, table *types.TradeBalanceTable) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader(table.PeriodFields)); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, rec := range table.Records {
		row := []string{
			formatFloat(rec.Export),
			formatFloat(rec.Import),
			formatFloat(rec.TradeBalance),
			formatFloat(rec.ImportRevenue),
		}
		if table.PeriodFields {
			row = append(row, strconv.Itoa(rec.Year), strconv.Itoa(rec.Month))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
