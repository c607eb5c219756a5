// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/customs-fts/internal/fetch"
	"github.com/jonathan/customs-fts/internal/tabular"
)

// EnvPrefix prefixes every environment override, e.g. CUSTOMS_INDEX_URL.
const EnvPrefix = "CUSTOMS"

// DefaultTimeoutSeconds bounds each HTTP request.
const DefaultTimeoutSeconds = 30

// Config represents the CLI configuration. It can be loaded from a JSON or
// YAML file and overridden from the environment; CLI flags win over both.
type Config struct {
	// Source
	IndexURL         string `json:"index_url,omitempty" yaml:"index_url,omitempty" envconfig:"INDEX_URL" validate:"omitempty,url"`
	LinkSelector     string `json:"link_selector,omitempty" yaml:"link_selector,omitempty" envconfig:"LINK_SELECTOR"`
	SheetName        string `json:"sheet_name,omitempty" yaml:"sheet_name,omitempty" envconfig:"SHEET_NAME"`
	VerifyServerCert *bool  `json:"verify_server_cert,omitempty" yaml:"verify_server_cert,omitempty" envconfig:"VERIFY_SERVER_CERT"`
	ScratchDir       string `json:"scratch_dir,omitempty" yaml:"scratch_dir,omitempty" envconfig:"SCRATCH_DIR"`
	TimeoutSeconds   int    `json:"timeout_seconds,omitempty" yaml:"timeout_seconds,omitempty" envconfig:"TIMEOUT_SECONDS" validate:"gte=0"`
	UserAgent        string `json:"user_agent,omitempty" yaml:"user_agent,omitempty" envconfig:"USER_AGENT"`
	UseBrowser       bool   `json:"use_browser,omitempty" yaml:"use_browser,omitempty" envconfig:"USE_BROWSER"` // Render the index page in headless Chrome

	// Selection and extraction
	SelectionMode string `json:"selection_mode,omitempty" yaml:"selection_mode,omitempty" envconfig:"SELECTION_MODE" validate:"omitempty,oneof=latest positional"`
	PeriodFields  string `json:"period_fields,omitempty" yaml:"period_fields,omitempty" envconfig:"PERIOD_FIELDS" validate:"omitempty,oneof=stamp omit"`
	Year          int    `json:"year,omitempty" yaml:"year,omitempty" envconfig:"YEAR" validate:"gte=0"`
	Month         int    `json:"month,omitempty" yaml:"month,omitempty" envconfig:"MONTH" validate:"gte=0,lte=12"` // 0 derives the month from the selected report

	// Output
	OutputFormat string `json:"output_format,omitempty" yaml:"output_format,omitempty" envconfig:"OUTPUT_FORMAT" validate:"omitempty,oneof=json csv"`
	OutputPath   string `json:"output_path,omitempty" yaml:"output_path,omitempty" envconfig:"OUTPUT_PATH"`

	// Diagnostics
	Verbose   bool   `json:"verbose,omitempty" yaml:"verbose,omitempty" envconfig:"VERBOSE"`
	LogLevel  string `json:"log_level,omitempty" yaml:"log_level,omitempty" envconfig:"LOG_LEVEL" validate:"omitempty,oneof=debug info warn error"`
	LogFormat string `json:"log_format,omitempty" yaml:"log_format,omitempty" envconfig:"LOG_FORMAT" validate:"omitempty,oneof=text json"`
	Tracing   bool   `json:"tracing,omitempty" yaml:"tracing,omitempty" envconfig:"TRACING"`
}

// Defaults returns the production configuration.
func Defaults() Config {
	verify := true
	return Config{
		IndexURL:         fetch.DefaultIndexURL,
		SheetName:        tabular.DefaultSheet,
		VerifyServerCert: &verify,
		ScratchDir:       os.TempDir(),
		TimeoutSeconds:   DefaultTimeoutSeconds,
		UserAgent:        fetch.DefaultUserAgent,
		SelectionMode:    "latest",
		PeriodFields:     "stamp",
		OutputFormat:     "json",
		OutputPath:       "-",
		LogLevel:         "info",
		LogFormat:        "text",
	}
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by extension.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// ApplyEnv overlays CUSTOMS_* environment variables onto c. Unset variables
// leave fields untouched.
func (c *Config) ApplyEnv() error {
	if err := envconfig.Process(EnvPrefix, c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if c.Month != 0 && c.Year == 0 {
		return fmt.Errorf("config error: 'month' requires 'year'")
	}
	if c.ScratchDir != "" {
		if info, err := os.Stat(c.ScratchDir); err == nil && !info.IsDir() {
			return fmt.Errorf("config error: scratch_dir is not a directory: %s", c.ScratchDir)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	fill := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
		}
	}
	fill(&result.IndexURL, defaults.IndexURL)
	fill(&result.LinkSelector, defaults.LinkSelector)
	fill(&result.SheetName, defaults.SheetName)
	fill(&result.ScratchDir, defaults.ScratchDir)
	fill(&result.UserAgent, defaults.UserAgent)
	fill(&result.SelectionMode, defaults.SelectionMode)
	fill(&result.PeriodFields, defaults.PeriodFields)
	fill(&result.OutputFormat, defaults.OutputFormat)
	fill(&result.OutputPath, defaults.OutputPath)
	fill(&result.LogLevel, defaults.LogLevel)
	fill(&result.LogFormat, defaults.LogFormat)

	if result.TimeoutSeconds == 0 {
		result.TimeoutSeconds = defaults.TimeoutSeconds
	}
	if result.Year == 0 {
		result.Year = defaults.Year
	}
	if result.Month == 0 {
		result.Month = defaults.Month
	}
	if result.VerifyServerCert == nil && defaults.VerifyServerCert != nil {
		v := *defaults.VerifyServerCert
		result.VerifyServerCert = &v
	}

	// Plain bool fields cannot distinguish unset from false, so they are not
	// merged; CLI flags always win for them.

	return result
}

// VerifyCert reports whether server certificates are verified. Unset means true.
func (c *Config) VerifyCert() bool {
	return c.VerifyServerCert == nil || *c.VerifyServerCert
}

// Timeout returns the per-request timeout.
func (c *Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return DefaultTimeoutSeconds * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Load reads the optional config file at path, applies the environment,
// fills defaults and validates the result.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	merged := cfg.MergeWithDefaults(Defaults())
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}
