package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/customs-fts/internal/pipeline/steps"
)

var stagesCmd = &cobra.Command{
	Use:   "stages",
	Short: "Print the pipeline stages in execution order",
	RunE:  runStages,
}

func init() {
	rootCmd.AddCommand(stagesCmd)
}

//nolint:errcheck // writing to stdout; errors are not recoverable
func runStages(cmd *cobra.Command, _ []string) error {
	order, err := steps.Order()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i, name := range order {
		def := steps.StepRegistry[name]
		fmt.Fprintf(out, "%d. %-15s %-12s %s\n", i+1, name, def.Category, def.Description)
		if len(def.Dependencies) > 0 {
			fmt.Fprintf(out, "   after: %s\n", strings.Join(def.Dependencies, ", "))
		}
	}
	return nil
}
