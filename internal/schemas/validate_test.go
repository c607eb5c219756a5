package schemas

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/customs-fts/internal/types"
)

const personSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["name"],
	"properties": {
		"name": {"type": "string"}
	}
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestValidateJSON(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "person.schema.json", personSchema)

	tests := []struct {
		name      string
		document  string
		wantError bool
	}{
		{"valid", `{"name": "Kartik"}`, false},
		{"missing required field", `{"age": 30}`, true},
		{"wrong type", `{"name": 7}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jsonPath := writeFile(t, dir, tt.name+".json", tt.document)
			err := ValidateJSON(schemaPath, jsonPath)
			if !tt.wantError {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			validationErr, ok := err.(*ValidationError)
			require.True(t, ok, "error should be ValidationError type, got %T", err)
			assert.NotEmpty(t, validationErr.Errors)
		})
	}
}

func TestValidateJSON_MissingFiles(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "person.schema.json", personSchema)
	jsonPath := writeFile(t, dir, "doc.json", `{"name": "x"}`)

	err := ValidateJSON(filepath.Join(dir, "nope.schema.json"), jsonPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	err = ValidateJSON(schemaPath, filepath.Join(dir, "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSON_MalformedDocument(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "person.schema.json", personSchema)
	jsonPath := writeFile(t, dir, "malformed.json", "{ invalid json }")

	assert.Error(t, ValidateJSON(schemaPath, jsonPath))
}

func TestValidateJSONString_NestedField(t *testing.T) {
	schemaContent := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"properties": {
			"person": {"type": "object", "required": ["name"]}
		}
	}`

	err := ValidateJSONString(schemaContent, `{"person": {}}`)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	require.NotEmpty(t, validationErr.Errors)
	assert.Contains(t, validationErr.Errors[0].Field, "person")
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "records.0.month", Message: "Must be less than or equal to 12"},
			{Field: "sheet", Message: "is required"},
		},
	}

	msg := err.Error()
	assert.Contains(t, msg, "validation failed")
	assert.Contains(t, msg, "records.0.month")
	assert.Contains(t, msg, "sheet")
}

func sampleTable(periodFields bool) *types.TradeBalanceTable {
	rec := types.TradeBalanceRecord{
		RawTradeRow: types.RawTradeRow{Export: 10, Import: 25.5, TradeBalance: -15.5, ImportRevenue: 3},
	}
	if periodFields {
		rec.Year, rec.Month = 2081, 7
	}
	return &types.TradeBalanceTable{
		Sheet:        "Trade_Balance_Chapter",
		PeriodFields: periodFields,
		Records:      []types.TradeBalanceRecord{rec},
	}
}

func TestValidateTable(t *testing.T) {
	assert.NoError(t, ValidateTable(sampleTable(true)))
	assert.NoError(t, ValidateTable(sampleTable(false)))

	bad := sampleTable(true)
	bad.Records[0].Month = 13
	err := ValidateTable(bad)
	require.Error(t, err)
	_, ok := err.(*ValidationError)
	assert.True(t, ok)

	unstamped := sampleTable(true)
	unstamped.Records[0].Year = 0
	assert.Error(t, ValidateTable(unstamped))
}

func TestValidateDocument(t *testing.T) {
	assert.NoError(t, ValidateDocument([]byte(`{"sheet":"s","period_fields":false,"dropped_rows":0,"records":[]}`)))

	err := ValidateDocument([]byte(`{"sheet":"s","period_fields":true,"dropped_rows":0,
		"records":[{"export":1,"import":1,"trade_balance":0,"import_revenue":0}]}`))
	assert.Error(t, err)

	err = ValidateDocument([]byte(`not json`))
	require.Error(t, err)
	_, ok := err.(*ValidationError)
	assert.True(t, ok)
}

func TestResolveSchemaPath(t *testing.T) {
	assert.NotEmpty(t, ResolveSchemaPath(filepath.Join("schemas", "trade_balance.schema.json")))
	assert.Empty(t, ResolveSchemaPath(filepath.Join("schemas", "missing.schema.json")))
}
