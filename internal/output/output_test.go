package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/customs-fts/internal/types"
)

func stampedTable() *types.TradeBalanceTable {
	return &types.TradeBalanceTable{
		Sheet:        "Trade_Balance_Chapter",
		PeriodFields: true,
		DroppedRows:  1,
		Records: []types.TradeBalanceRecord{
			{RawTradeRow: types.RawTradeRow{Export: 100, Import: 250.5, TradeBalance: -150.5, ImportRevenue: 12}, Year: 2081, Month: 7},
			{RawTradeRow: types.RawTradeRow{Export: 0.25, Import: 1, TradeBalance: -0.75, ImportRevenue: 0}, Year: 2081, Month: 7},
		},
	}
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, stampedTable(), FormatJSON))

	var decoded types.TradeBalanceTable
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, *stampedTable(), decoded)
}

func TestWrite_JSONRejectsSchemaViolation(t *testing.T) {
	table := stampedTable()
	table.Records[1].Month = 0

	var buf bytes.Buffer
	err := Write(&buf, table, FormatJSON)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output schema")
	assert.Zero(t, buf.Len())
}

func TestWrite_CSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, stampedTable(), FormatCSV))

	assert.Equal(t,
		"export,import,trade_balance,import_revenue,year,month\n"+
			"100,250.5,-150.5,12,2081,7\n"+
			"0.25,1,-0.75,0,2081,7\n",
		buf.String())
}

func TestWrite_CSVWithoutPeriod(t *testing.T) {
	table := &types.TradeBalanceTable{
		Sheet:   "Trade_Balance_Chapter",
		Records: []types.TradeBalanceRecord{{RawTradeRow: types.RawTradeRow{Export: 1, Import: 2, TradeBalance: -1}}},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, table, FormatCSV))
	assert.Equal(t, "export,import,trade_balance,import_revenue\n1,2,-1,0\n", buf.String())
}

func TestWrite_NilTable(t *testing.T) {
	assert.Error(t, Write(&bytes.Buffer{}, nil, FormatJSON))
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "table.csv")
	require.NoError(t, WriteFile(path, stampedTable(), FormatCSV))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "100,250.5,-150.5,12,2081,7")
}

func TestWriteFile_RemovesFileOnFailure(t *testing.T) {
	table := stampedTable()
	table.Records[0].Year = 0
	path := filepath.Join(t.TempDir(), "table.json")

	require.Error(t, WriteFile(path, table, FormatJSON))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatJSON, false},
		{"JSON", FormatJSON, false},
		{"csv", FormatCSV, false},
		{"xlsx", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
