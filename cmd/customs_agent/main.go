// Package main provides the customs_agent CLI, which downloads the customs
// trade balance report and extracts its table.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonathan/customs-fts/internal/config"
	"github.com/jonathan/customs-fts/internal/fetch"
	"github.com/jonathan/customs-fts/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:               "customs_agent",
	Short:             "Customs trade balance report extractor",
	Long:              "customs_agent finds the latest foreign trade statistics report on the customs portal, downloads the workbook and extracts a validated trade balance table.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

var (
	configPath string
	insecure   bool
	verbose    bool
)

// cfg is the merged configuration, set before any subcommand runs.
var cfg *config.Config

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to JSON or YAML config file")
	rootCmd.PersistentFlags().BoolVar(&insecure, "insecure", false, "Skip TLS certificate verification")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print detailed debug information")
}

func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if insecure {
		verify := false
		loaded.VerifyServerCert = &verify
	}
	if verbose {
		loaded.Verbose = true
	}

	level := loaded.LogLevel
	if loaded.Verbose {
		level = "debug"
	}
	if err := logger.Init(logger.Config{
		Level:          level,
		Format:         loaded.LogFormat,
		TracingEnabled: loaded.Tracing,
		Output:         cmd.ErrOrStderr(),
	}); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	cfg = loaded
	return nil
}

// fetchOptions builds HTTP options from the configuration.
func fetchOptions(c *config.Config) *fetch.Options {
	opts := fetch.DefaultOptions()
	opts.Timeout = c.Timeout()
	opts.UserAgent = c.UserAgent
	opts.VerifyServerCert = c.VerifyCert()
	return opts
}

// setString overrides dst with the flag value when the flag was given.
func setString(cmd *cobra.Command, name string, dst *string, value string) {
	if cmd.Flags().Changed(name) {
		*dst = value
	}
}

// setInt overrides dst with the flag value when the flag was given.
func setInt(cmd *cobra.Command, name string, dst *int, value int) {
	if cmd.Flags().Changed(name) {
		*dst = value
	}
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	err := rootCmd.Execute()
	_ = logger.Shutdown(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
