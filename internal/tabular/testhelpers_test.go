package tabular

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var tradeHeader = []any{"Chapter", ColumnExports, ColumnImports, ColumnTradeBalance, ColumnImportsRevenue}

// writeWorkbook saves rows into a single-sheet workbook and returns its path.
// nil cells are left empty.
func writeWorkbook(t *testing.T, sheet string, rows [][]any) string {
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

	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}
