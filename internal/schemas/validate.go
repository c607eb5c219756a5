// Package schemas validates written documents against their JSON Schemas.
package schemas

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	embedded "github.com/jonathan/customs-fts/schemas"
	"github.com/jonathan/customs-fts/internal/types"
)

// ResolveSchemaPath looks for a schema file relative to the working directory
// and up to two parents, so commands and tests find it from any package.
// Returns "" when none exists.
func ResolveSchemaPath(relativePath string) string {
	candidates := []string{
		relativePath,
		filepath.Join("..", relativePath),
		filepath.Join("..", "..", relativePath),
	}

	for _, candidate := range candidates {
		if absPath, err := filepath.Abs(candidate); err == nil {
			if _, err := os.Stat(absPath); err == nil {
				return absPath
			}
		}
	}

	return ""
}

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// ValidateJSON validates a JSON file against a JSON Schema file
func ValidateJSON(schemaPath, jsonPath string) error {
	schemaAbsPath, err := filepath.Abs(schemaPath)
	if err != nil {
		return fmt.Errorf("failed to resolve schema path: %w", err)
	}
	jsonAbsPath, err := filepath.Abs(jsonPath)
	if err != nil {
		return fmt.Errorf("failed to resolve JSON path: %w", err)
	}

	if _, err := os.Stat(schemaAbsPath); os.IsNotExist(err) {
		return fmt.Errorf("schema file not found: %s", schemaAbsPath)
	}
	if _, err := os.Stat(jsonAbsPath); os.IsNotExist(err) {
		return fmt.Errorf("JSON file not found: %s", jsonAbsPath)
	}

	return validate(
		schemaAbsPath,
		gojsonschema.NewReferenceLoader("file://"+schemaAbsPath),
		gojsonschema.NewReferenceLoader("file://"+jsonAbsPath),
	)
}

// ValidateJSONString validates JSON string content against schema string content
func ValidateJSONString(schemaContent, jsonContent string) error {
	return validate(
		"(string schema)",
		gojsonschema.NewStringLoader(schemaContent),
		gojsonschema.NewStringLoader(jsonContent),
	)
}

// SchemaFor returns the embedded schema for a table with or without period fields.
func SchemaFor(periodFields bool) string {
	if periodFields {
		return embedded.TradeBalance
	}
	return embedded.RawTradeBalance
}

// ValidateDocument validates an encoded table document against the embedded
// schema matching its period_fields flag.
func ValidateDocument(data []byte) error {
	var head struct {
		PeriodFields bool `json:"period_fields"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return &ValidationError{Errors: []FieldError{{Field: "(root)", Message: err.Error()}}}
	}
	return validate(
		"(embedded schema)",
		gojsonschema.NewStringLoader(SchemaFor(head.PeriodFields)),
		gojsonschema.NewBytesLoader(data),
	)
}

// ValidateTable encodes table and validates it against the embedded schema.
func ValidateTable(table *types.TradeBalanceTable) error {
	data, err := json.Marshal(table)
	if err != nil {
		return fmt.Errorf("failed to encode table: %w", err)
	}
	return validate(
		"(embedded schema)",
		gojsonschema.NewStringLoader(SchemaFor(table.PeriodFields)),
		gojsonschema.NewBytesLoader(data),
	)
}

func validate(schemaName string, schemaLoader, documentLoader gojsonschema.JSONLoader) error {
	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &SchemaLoadError{
			Path:    schemaName,
			Message: "schema validation failed during load",
			Cause:   err,
		}
	}

	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}
