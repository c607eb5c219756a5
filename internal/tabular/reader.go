package tabular

import (
	"strings"

	"github.com/xuri/excelize/v2"
)

// DefaultSheet is the worksheet holding the chapter-wise trade balance.
const DefaultSheet = "Trade_Balance_Chapter"

// Raw column headers of the trade balance worksheet.
const (
	ColumnExports        = "Exports_Value"
	ColumnImports        = "Imports_Value"
	ColumnTradeBalance   = "Trade_Balance"
	ColumnImportsRevenue = "Imports_Revenue"
)

// Sheet is a worksheet split into its header row and data rows.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]string

	index map[string]int
}

// NewSheet builds a Sheet from a header and data rows.
func NewSheet(name string, header []string, rows [][]string) *Sheet {
	s := &Sheet{Name: name, Header: header, Rows: rows, index: make(map[string]int, len(header))}
	for i, h := range header {
		h = strings.TrimSpace(h)
		if _, dup := s.index[h]; !dup && h != "" {
			s.index[h] = i
		}
	}
	return s
}

// Column returns the index of the named header column.
func (s *Sheet) Column(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}

// Cell returns the trimmed value of the named column in row, or "" when the
// column or cell is absent.
func (s *Sheet) Cell(row []string, name string) string {
	i, ok := s.index[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// RowNumber converts a data row index into its 1-based sheet row number.
func RowNumber(dataIndex int) int {
	return dataIndex + 2
}

// ReadSheet opens the workbook at path and reads the named worksheet. Cell
// values are read raw so number formats do not leak into the data.
func ReadSheet(path, name string) (*Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &ReadError{Path: path, Message: "failed to open workbook", Cause: err}
	}
	defer func() { _ = f.Close() }()

	idx, err := f.GetSheetIndex(name)
	if err != nil || idx < 0 {
		return nil, &WorksheetNotFoundError{Sheet: name, Available: f.GetSheetList()}
	}

	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &ReadError{Path: path, Message: "failed to read worksheet " + name + " in", Cause: err}
	}

	if len(rows) == 0 {
		return NewSheet(name, nil, nil), nil
	}
	return NewSheet(name, rows[0], rows[1:]), nil
}
