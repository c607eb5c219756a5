package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/customs-fts/internal/tabular"
	"github.com/jonathan/customs-fts/internal/types"
)

func TestParseCommand_MissingFileFlag(t *testing.T) {
	_, _, err := executeCommand(t, "parse")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "file" not set`)
}

func TestParseCommand_FileNotFound(t *testing.T) {
	_, _, err := executeCommand(t, "parse", "--file", filepath.Join(t.TempDir(), "missing.xlsx"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "workbook not found")
}

func TestParseCommand_Stamped(t *testing.T) {
	path := writeWorkbook(t, tabular.DefaultSheet, tradeRows())

	stdout, _, err := executeCommand(t, "parse", "--file", path, "--year", "2081", "--month", "9")
	require.NoError(t, err)

	var table types.TradeBalanceTable
	require.NoError(t, json.Unmarshal([]byte(stdout), &table))
	require.Len(t, table.Records, 1)
	assert.Equal(t, 250.5, table.Records[0].Import)
	assert.Equal(t, 9, table.Records[0].Month)
}

func TestParseCommand_BadValueFailsBatch(t *testing.T) {
	path := writeWorkbook(t, tabular.DefaultSheet, tradeRows([]any{"02", 100.0, "bad", 0, 0}))
	outPath := filepath.Join(t.TempDir(), "table.json")

	_, stderr, err := executeCommand(t, "parse", "--file", path, "--period-fields", "omit", "--out", outPath, "-v")
	require.Error(t, err)
	assert.Contains(t, err.Error(), tabular.ColumnImports)
	assert.Contains(t, stderr, "VALIDATION ISSUES")

	_, statErr := os.Stat(outPath)
	assert.True(t, os.IsNotExist(statErr), "no output is written for a failed batch")
}

func TestParseCommand_MissingSheet(t *testing.T) {
	path := writeWorkbook(t, "Summary", tradeRows())

	_, _, err := executeCommand(t, "parse", "--file", path, "--period-fields", "omit")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `worksheet "Trade_Balance_Chapter" not found`)
}

func TestParseCommand_CustomSheetCSV(t *testing.T) {
	path := writeWorkbook(t, "Trade_Balance_HS", tradeRows())

	stdout, _, err := executeCommand(t, "parse", "--file", path, "--sheet", "Trade_Balance_HS", "--period-fields", "omit", "--format", "csv")
	require.NoError(t, err)
	assert.Equal(t, "export,import,trade_balance,import_revenue\n100,250.5,-150.5,12\n", stdout)
}
