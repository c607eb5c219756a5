package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/customs-fts/internal/types"
)

func TestRunCommand_WritesJSONToStdout(t *testing.T) {
	server := fakePortal(t, "FTS Shravan", "FTS Kartik")

	stdout, stderr, err := executeCommand(t, "run",
		"--index-url", server.URL+"/index",
		"--year", "2081",
		"--scratch-dir", t.TempDir())
	require.NoError(t, err, stderr)

	var table types.TradeBalanceTable
	require.NoError(t, json.Unmarshal([]byte(stdout), &table), stdout)
	require.Len(t, table.Records, 1)
	assert.Equal(t, 2081, table.Records[0].Year)
	assert.Equal(t, 7, table.Records[0].Month)
	assert.Equal(t, 1, table.DroppedRows)

	assert.Contains(t, stderr, "Step 1/5:")
}

func TestRunCommand_CSVToFile(t *testing.T) {
	server := fakePortal(t, "FTS Baisakh", "FTS Jestha", "FTS Ashad")
	outPath := filepath.Join(t.TempDir(), "table.csv")

	stdout, stderr, err := executeCommand(t, "run",
		"--index-url", server.URL+"/index",
		"--mode", "positional",
		"--year", "2080", "--month", "2",
		"--scratch-dir", t.TempDir(),
		"--format", "csv",
		"--out", outPath)
	require.NoError(t, err, stderr)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "export,import,trade_balance,import_revenue,year,month\n100,250.5,-150.5,12,2080,2\n", string(data))
	assert.Contains(t, stdout, `"FTS Jestha"`)
}

func TestRunCommand_NoReport(t *testing.T) {
	server := fakePortal(t, "Annual Report Kartik")

	_, _, err := executeCommand(t, "run",
		"--index-url", server.URL+"/index",
		"--year", "2081",
		"--scratch-dir", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "report link not found")
}

func TestRunCommand_RequiresYear(t *testing.T) {
	server := fakePortal(t, "FTS Kartik")

	_, _, err := executeCommand(t, "run", "--index-url", server.URL+"/index", "--scratch-dir", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "year")
}

func TestRunCommand_InvalidMode(t *testing.T) {
	_, _, err := executeCommand(t, "run", "--mode", "random", "--year", "2081")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SelectionMode")
}

func TestRunCommand_ConfigFile(t *testing.T) {
	server := fakePortal(t, "FTS Magh")
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(
		"index_url: "+server.URL+"/index\n"+
			"period_fields: omit\n"+
			"scratch_dir: "+t.TempDir()+"\n"), 0644))

	stdout, stderr, err := executeCommand(t, "--config", configPath, "run")
	require.NoError(t, err, stderr)

	var table types.TradeBalanceTable
	require.NoError(t, json.Unmarshal([]byte(stdout), &table))
	assert.False(t, table.PeriodFields)
	assert.Zero(t, table.Records[0].Year)
}
