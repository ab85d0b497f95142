package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"github.com/emmanuelprah/Tidytuesday/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Dataset DatasetConfig `yaml:"dataset" envconfig:"DATASET"`
	Chart   ChartConfig   `yaml:"chart" envconfig:"CHART"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Paths   PathsConfig   `yaml:"paths" envconfig:"PATHS"`
}

// DatasetConfig identifies the grant dataset to fetch
type DatasetConfig struct {
	Date         string        `yaml:"date" envconfig:"DATE" validate:"required,datetime=2006-01-02"`
	Table        string        `yaml:"table" envconfig:"TABLE" validate:"required"`
	BaseURL      string        `yaml:"base_url" envconfig:"BASE_URL" validate:"required,url"`
	FetchTimeout time.Duration `yaml:"fetch_timeout" envconfig:"FETCH_TIMEOUT" validate:"required"`
}

// ChartConfig contains chart geometry and ranking parameters
type ChartConfig struct {
	TopN         int     `yaml:"top_n" envconfig:"TOP_N" validate:"min=1"`
	InsideLabels int     `yaml:"inside_labels" envconfig:"INSIDE_LABELS" validate:"min=0"`
	WidthInches  float64 `yaml:"width_inches" envconfig:"WIDTH_INCHES" validate:"gt=0"`
	HeightInches float64 `yaml:"height_inches" envconfig:"HEIGHT_INCHES" validate:"gt=0"`
	DPI          float64 `yaml:"dpi" envconfig:"DPI" validate:"gt=0"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	CacheDir  string `yaml:"cache_dir" envconfig:"CACHE_DIR" validate:"required"`
	OutputDir string `yaml:"output_dir" envconfig:"OUTPUT_DIR" validate:"required"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Default returns the default configuration. The defaults reproduce the
// fixed literals of the original visualization: the TidyTuesday 2026-02-24
// sfi_grants table, a top-10 ranking with a 6-bar inside-label split, and a
// 12in x 6in canvas at 400 DPI.
func Default() *Config {
	return &Config{
		Dataset: DatasetConfig{
			Date:         "2026-02-24",
			Table:        "sfi_grants",
			BaseURL:      "https://raw.githubusercontent.com/rfordatascience/tidytuesday/main/data",
			FetchTimeout: 30 * time.Second,
		},
		Chart: ChartConfig{
			TopN:         10,
			InsideLabels: 6,
			WidthInches:  12,
			HeightInches: 6,
			DPI:          400,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/grant-chart.log",
		},
		Paths: PathsConfig{
			CacheDir:  "data/cache",
			OutputDir: "outputs",
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file, and
// GRANTVIZ-prefixed environment variables, in that precedence order.
func Load(configFile string) (*Config, error) {
	cfg := Default()

	if configFile == "" {
		configFile = findConfigFile()
	}
	if configFile != "" {
		data, err := os.ReadFile(configFile)
		if err != nil {
			return nil, errors.NewConfigError("read config file", err).WithContext("path", configFile)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.NewConfigError("parse config file", err).WithContext("path", configFile)
		}
	}

	if err := envconfig.Process("GRANTVIZ", cfg); err != nil {
		return nil, errors.NewConfigError("load config from env", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.NewConfigError("config validation failed", err)
	}

	return cfg, nil
}

// Validate checks field constraints and cross-field invariants
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.Chart.InsideLabels > c.Chart.TopN {
		return fmt.Errorf("chart inside_labels (%d) cannot exceed top_n (%d)",
			c.Chart.InsideLabels, c.Chart.TopN)
	}
	return nil
}

// findConfigFile returns the path to the config file, checking common locations
func findConfigFile() string {
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use defaults and env vars only
}
