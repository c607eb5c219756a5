package types

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// RawTradeRow is one worksheet row after value coercion.
type RawTradeRow struct {
	Export        float64 `json:"export"`
	Import        float64 `json:"import"`
	TradeBalance  float64 `json:"trade_balance"`
	ImportRevenue float64 `json:"import_revenue"`
}

// TradeBalanceRecord is a RawTradeRow stamped with the reporting period.
// Year and Month are omitted from JSON when the table carries no period fields.
type TradeBalanceRecord struct {
	RawTradeRow
	Year  int `json:"year,omitempty" validate:"gte=1"`
	Month int `json:"month,omitempty" validate:"gte=1,lte=12"`
}

// Validate checks the record against its declared constraints.
func (r *TradeBalanceRecord) Validate() error {
	return newValidator().Struct(r)
}

// TradeBalanceTable is the terminal output of the pipeline.
type TradeBalanceTable struct {
	Sheet        string               `json:"sheet"`
	PeriodFields bool                 `json:"period_fields"`
	DroppedRows  int                  `json:"dropped_rows"`
	Records      []TradeBalanceRecord `json:"records"`
}

// Rows returns the records without their period fields.
func (t *TradeBalanceTable) Rows() []RawTradeRow {
	rows := make([]RawTradeRow, len(t.Records))
	for i, rec := range t.Records {
		rows[i] = rec.RawTradeRow
	}
	return rows
}

// newValidator returns a validator that reports fields by their JSON name.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
