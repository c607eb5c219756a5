package tabular

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/customs-fts/internal/types"
)

// PeriodFields controls whether records carry year and month.
type PeriodFields string

const (
	// PeriodStamp writes the caller's year and month into every record.
	PeriodStamp PeriodFields = "stamp"
	// PeriodOmit emits raw rows without period fields.
	PeriodOmit PeriodFields = "omit"
)

// ParsePeriodFields parses a period field mode; the empty string means PeriodStamp.
func ParsePeriodFields(s string) (PeriodFields, error) {
	switch PeriodFields(strings.ToLower(strings.TrimSpace(s))) {
	case "", PeriodStamp:
		return PeriodStamp, nil
	case PeriodOmit:
		return PeriodOmit, nil
	default:
		return "", fmt.Errorf("unknown period fields mode %q (want %q or %q)", s, PeriodStamp, PeriodOmit)
	}
}

// Options configures worksheet extraction.
type Options struct {
	Sheet        string
	Year         int
	Month        int
	PeriodFields PeriodFields
}

type valueColumn struct {
	header string
	field  string
	set    func(*types.RawTradeRow, float64)
}

// valueColumns maps raw headers onto record fields.
var valueColumns = []valueColumn{
	{ColumnExports, "export", func(r *types.RawTradeRow, v float64) { r.Export = v }},
	{ColumnImports, "import", func(r *types.RawTradeRow, v float64) { r.Import = v }},
	{ColumnTradeBalance, "trade_balance", func(r *types.RawTradeRow, v float64) { r.TradeBalance = v }},
	{ColumnImportsRevenue, "import_revenue", func(r *types.RawTradeRow, v float64) { r.ImportRevenue = v }},
}

// Extract reads the worksheet at path and validates it into a table.
func Extract(path string, opts Options) (*types.TradeBalanceTable, error) {
	if opts.Sheet == "" {
		opts.Sheet = DefaultSheet
	}
	sheet, err := ReadSheet(path, opts.Sheet)
	if err != nil {
		return nil, err
	}
	return Validate(sheet, opts)
}

// Validate drops rows missing an export or import value, coerces the value
// columns and checks every record. Any issue fails the whole sheet.
func Validate(sheet *Sheet, opts Options) (*types.TradeBalanceTable, error) {
	stamp := opts.PeriodFields != PeriodOmit

	var issues []Issue
	for _, col := range valueColumns {
		if _, ok := sheet.Column(col.header); !ok {
			issues = append(issues, Issue{Column: col.header, Message: "column missing from header"})
		}
	}
	if len(issues) > 0 {
		return nil, &SchemaValidationError{Sheet: sheet.Name, Issues: issues}
	}

	table := &types.TradeBalanceTable{
		Sheet:        sheet.Name,
		PeriodFields: stamp,
		Records:      make([]types.TradeBalanceRecord, 0, len(sheet.Rows)),
	}

	for i, row := range sheet.Rows {
		rowNum := RowNumber(i)
		if sheet.Cell(row, ColumnExports) == "" || sheet.Cell(row, ColumnImports) == "" {
			table.DroppedRows++
			continue
		}

		var rec types.TradeBalanceRecord
		for _, col := range valueColumns {
			raw := sheet.Cell(row, col.header)
			v, msg := coerceFloat(raw)
			if msg != "" {
				issues = append(issues, Issue{Row: rowNum, Column: col.header, Value: raw, Message: msg})
				continue
			}
			col.set(&rec.RawTradeRow, v)
		}

		if stamp {
			rec.Year = opts.Year
			rec.Month = opts.Month
			issues = append(issues, recordIssues(rowNum, &rec)...)
		}
		table.Records = append(table.Records, rec)
	}

	if len(issues) > 0 {
		return nil, &SchemaValidationError{Sheet: sheet.Name, Issues: issues}
	}
	return table, nil
}

func coerceFloat(raw string) (float64, string) {
	if raw == "" {
		return 0, "value is required"
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, "not a finite number"
	}
	return v, ""
}

func recordIssues(rowNum int, rec *types.TradeBalanceRecord) []Issue {
	err := rec.Validate()
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []Issue{{Row: rowNum, Message: err.Error()}}
	}

	issues := make([]Issue, 0, len(verrs))
	for _, fe := range verrs {
		issues = append(issues, Issue{
			Row:     rowNum,
			Column:  fe.Field(),
			Value:   fmt.Sprint(fe.Value()),
			Message: fmt.Sprintf("failed %s=%s", fe.Tag(), fe.Param()),
		})
	}
	return issues
}
