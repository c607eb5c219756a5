package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/customs-fts/internal/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a JSON table against the output schema",
	Long:  "Checks a JSON table written by run or parse against the embedded schema matching its period_fields flag, or against the schema given with --schema.",
	RunE:  runValidate,
}

var (
	validateFile   string
	validateSchema string
)

func init() {
	validateCmd.Flags().StringVar(&validateFile, "file", "", "Path to the JSON table (required)")
	validateCmd.Flags().StringVar(&validateSchema, "schema", "", "Path to a JSON Schema file (default: embedded schema)")

	if err := validateCmd.MarkFlagRequired("file"); err != nil {
		panic(fmt.Sprintf("failed to mark file flag as required: %v", err))
	}

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	var err error
	if validateSchema != "" {
		err = schemas.ValidateJSON(validateSchema, validateFile)
	} else {
		var data []byte
		data, err = os.ReadFile(validateFile)
		if err != nil {
			return fmt.Errorf("failed to read table file: %w", err)
		}
		err = schemas.ValidateDocument(data)
	}

	if err != nil {
		var validationErr *schemas.ValidationError
		if errors.As(err, &validationErr) {
			fmt.Fprint(cmd.OutOrStdout(), validationErr.Error()) //nolint:errcheck
			return fmt.Errorf("%s does not match the schema", validateFile)
		}
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ %s is valid\n", validateFile) //nolint:errcheck
	return nil
}
