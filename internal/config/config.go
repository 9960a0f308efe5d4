package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"github.com/rydeebs/cleanupIPP/internal/pipeline"
)

// envPrefix namespaces every environment variable read by Load.
const envPrefix = "CLEANIPP"

// Config represents the complete application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server" envconfig:"SERVER"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Pipeline PipelineConfig `yaml:"pipeline" envconfig:"PIPELINE"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"30s" validate:"gt=0"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"30s" validate:"gt=0"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s" validate:"gt=0"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"15s" validate:"gt=0"`
	MaxUploadBytes  int64         `yaml:"max_upload_bytes" envconfig:"MAX_UPLOAD_BYTES" default:"33554432" validate:"gt=0"`
	RateLimit       RateLimit     `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimit contains upload rate limiting configuration.
type RateLimit struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"5" validate:"min=0"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"10" validate:"min=0"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"stdout" validate:"oneof=stdout file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/cleanipp.log"`
}

// PipelineConfig exposes the column contract and focus thresholds so
// the positional dependency is a visible, overridable setting instead
// of a hard-coded index.
type PipelineConfig struct {
	SKUPos                int     `yaml:"sku_pos" envconfig:"SKU_POS" validate:"min=0"`
	QuantityPos           int     `yaml:"quantity_pos" envconfig:"QUANTITY_POS" default:"4" validate:"min=0"`
	ReferencePos          int     `yaml:"reference_pos" envconfig:"REFERENCE_POS" default:"6" validate:"min=0"`
	FocusUnits            float64 `yaml:"focus_units" envconfig:"FOCUS_UNITS" default:"200" validate:"min=0"`
	FocusCumulativeCutoff float64 `yaml:"focus_cumulative_cutoff" envconfig:"FOCUS_CUMULATIVE_CUTOFF" default:"80" validate:"min=0,max=100"`
}

// PipelineSettings converts the section to the pipeline's own config
// type.
func (p PipelineConfig) PipelineSettings() pipeline.Config {
	return pipeline.Config{
		Contract: pipeline.ColumnContract{
			SKUPos:       p.SKUPos,
			QuantityPos:  p.QuantityPos,
			ReferencePos: p.ReferencePos,
		},
		FocusUnits:            p.FocusUnits,
		FocusCumulativeCutoff: p.FocusCumulativeCutoff,
	}
}

// Load builds the configuration in three layers: struct defaults,
// then CLEANIPP_* environment variables, then the optional YAML file.
// Keys present in the file override everything; keys absent from the
// file keep their env or default values. A missing file is not an
// error.
func Load(configFile string) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			if err := overlayFile(&cfg, configFile); err != nil {
				return nil, fmt.Errorf("failed to load config file: %w", err)
			}
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// Default returns the configuration produced by defaults alone.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		// Defaults are static and always validate.
		panic(err)
	}
	return cfg
}

// overlayFile unmarshals a YAML file onto an existing config. Only
// keys present in the file are touched.
func overlayFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// validate checks the configuration against its struct constraints.
func (c *Config) validate() error {
	return validator.New().Struct(c)
}
