package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/customs-fts/internal/schemas"
)

func writeJSON(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "table.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestValidateCommand_Valid(t *testing.T) {
	path := writeJSON(t, `{"sheet":"Trade_Balance_Chapter","period_fields":true,"dropped_rows":0,
		"records":[{"export":1,"import":2,"trade_balance":-1,"import_revenue":0,"year":2081,"month":7}]}`)

	stdout, _, err := executeCommand(t, "validate", "--file", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "is valid")
}

func TestValidateCommand_Invalid(t *testing.T) {
	path := writeJSON(t, `{"sheet":"Trade_Balance_Chapter","period_fields":true,"dropped_rows":0,
		"records":[{"export":1,"import":2,"trade_balance":-1,"import_revenue":0,"year":2081,"month":14}]}`)

	stdout, _, err := executeCommand(t, "validate", "--file", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not match the schema")
	assert.Contains(t, stdout, "validation failed")
}

func TestValidateCommand_ExplicitSchema(t *testing.T) {
	schemaPath := schemas.ResolveSchemaPath(filepath.Join("schemas", "raw_trade_balance.schema.json"))
	require.NotEmpty(t, schemaPath)
	path := writeJSON(t, `{"sheet":"s","period_fields":false,"dropped_rows":3,"records":[]}`)

	_, _, err := executeCommand(t, "validate", "--file", path, "--schema", schemaPath)
	assert.NoError(t, err)
}

func TestValidateCommand_MissingFile(t *testing.T) {
	_, _, err := executeCommand(t, "validate", "--file", filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read table file")
}
