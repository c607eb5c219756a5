package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jonathan/customs-fts/internal/logger"
	"github.com/jonathan/customs-fts/internal/tabular"
)

// executeCommand runs the CLI in-process and returns what it wrote to stdout and stderr.
func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	resetFlags(rootCmd)
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	_ = logger.Shutdown(context.Background())
	return stdout.String(), stderr.String(), err
}

// resetFlags restores every flag to its default so runs do not leak into each other.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// workbookBytes returns an xlsx holding rows on the named sheet. nil cells stay empty.
func workbookBytes(t *testing.T, sheet string, rows [][]any) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	require.NoError(t, f.SetSheetName("Sheet1", sheet))

	for r, row := range rows {
		for c, v := range row {
			if v == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, v))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func tradeRows(extra ...[]any) [][]any {
	rows := [][]any{
		{"Chapter", tabular.ColumnExports, tabular.ColumnImports, tabular.ColumnTradeBalance, tabular.ColumnImportsRevenue},
		{"01", 100.0, 250.5, -150.5, 12},
		{"Total", nil, nil, nil, nil},
	}
	return append(rows, extra...)
}

// writeWorkbook saves a workbook into a temp dir and returns its path.
func writeWorkbook(t *testing.T, sheet string, rows [][]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, os.WriteFile(path, workbookBytes(t, sheet, rows), 0644))
	return path
}

// fakePortal serves an index page linking one workbook per title.
func fakePortal(t *testing.T, titles ...string) *httptest.Server {
	t.Helper()
	data := workbookBytes(t, tabular.DefaultSheet, tradeRows())

	var items strings.Builder
	for i, title := range titles {
		fmt.Fprintf(&items, `<li><a href="/files/%d.xlsx">%s</a></li>`, i, title)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/index", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html><body><ul>" + items.String() + "</ul></body></html>"))
	})
	mux.HandleFunc("/files/", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(data)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}
