// Package config provides the demand pipeline configuration: filesystem
// paths, logging options, and the domain validation rules (required fields
// and closed-domain value sets).
//
// Configuration is loaded from environment variables (prefix DEMANDAS) with
// an optional YAML overlay file. The seeded valid-value sets are a starting
// point, not an exhaustive ground truth; values outside them are routed to
// the discovery sets during validation.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete pipeline configuration.
type Config struct {
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
	Pipeline PipelineConfig `yaml:"pipeline" envconfig:"PIPELINE"`
	Rules    RulesConfig    `yaml:"rules" envconfig:"RULES"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/pipeline.log"`
}

// PathsConfig contains filesystem paths configuration.
type PathsConfig struct {
	InputDir  string `yaml:"input_dir" envconfig:"INPUT_DIR" default:"data/input" validate:"required"`
	OutputDir string `yaml:"output_dir" envconfig:"OUTPUT_DIR" default:"data/output" validate:"required"`
}

// PipelineConfig contains processing configuration.
type PipelineConfig struct {
	// InputPrefix selects which workbooks in the input directory are
	// pipeline inputs; the most recent match is processed.
	InputPrefix string `yaml:"input_prefix" envconfig:"INPUT_PREFIX" default:"DEMANDAS_"`
	// Sheets lists the workbook sheets to process. Sheets missing from the
	// input are skipped, not treated as errors.
	Sheets []string `yaml:"sheets" envconfig:"SHEETS" default:"DEMANDAS JULIO,DEMANDA LEANDROADRIANO,QUITADOS"`
	// TopN bounds the problem-frequency and value-distribution tables.
	TopN int `yaml:"top_n" envconfig:"TOP_N" default:"10" validate:"min=1"`
}

// RequiredField names a column that must be non-empty, with the human
// label used in problem messages.
type RequiredField struct {
	Column string `yaml:"column" validate:"required"`
	Label  string `yaml:"label" validate:"required"`
}

// RulesConfig contains the domain validation rules.
type RulesConfig struct {
	DateMin        string          `yaml:"date_min" envconfig:"DATE_MIN" default:"2020-01-01" validate:"required,datetime=2006-01-02"`
	DateMax        string          `yaml:"date_max" envconfig:"DATE_MAX" default:"2026-12-31" validate:"required,datetime=2006-01-02"`
	RequiredFields []RequiredField `yaml:"required_fields" validate:"min=1,dive"`
	ValidBanks     []string        `yaml:"valid_banks" validate:"min=1,dive,required"`
	ValidDirectors []string        `yaml:"valid_directors" validate:"min=1,dive,required"`
}

// DefaultRequiredFields returns the required-field enumeration in its fixed
// validation order.
func DefaultRequiredFields() []RequiredField {
	return []RequiredField{
		{Column: "RESPONSAVEL", Label: "Responsável"},
		{Column: "SITUACAO", Label: "Situação"},
		{Column: "BANCO", Label: "Banco"},
		{Column: "DIRETOR", Label: "Diretor"},
	}
}

// DefaultValidBanks returns the seeded set of recognized partner institutions.
func DefaultValidBanks() []string {
	return []string{
		"BV FINANCEIRA", "BRADESCO", "SANTANDER", "PANAMERICANO",
		"OMNI", "ITAÚ", "RENNER", "GMAC", "SAFRA", "VOLKSWAGEN",
		"TOYOTA", "HONDA", "C6 BANK", "PORTO SEGURO", "RCI",
		"HYUNDAI", "PSA", "MONEYPLUS", "PSA F.", "SANTANA",
		"SINOSSERRA FINANCEIRA", "VW",
	}
}

// DefaultValidDirectors returns the seeded set of recognized directors.
func DefaultValidDirectors() []string {
	return []string{
		"JULIO", "LEANDRO", "ADRIANO", "ANTUNES", "FECHADO", "REVERSÃO",
		"PENDENTE", "EM ANALISE", "FINALIZADO",
	}
}

// Load loads configuration from environment variables and an optional YAML
// file. An empty configFile loads environment and defaults only.
func Load(configFile string) (*Config, error) {
	var cfg Config

	if err := envconfig.Process("DEMANDAS", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	// Rule sets have structured defaults envconfig cannot express.
	if len(cfg.Rules.RequiredFields) == 0 {
		cfg.Rules.RequiredFields = DefaultRequiredFields()
	}
	if len(cfg.Rules.ValidBanks) == 0 {
		cfg.Rules.ValidBanks = DefaultValidBanks()
	}
	if len(cfg.Rules.ValidDirectors) == 0 {
		cfg.Rules.ValidDirectors = DefaultValidDirectors()
	}

	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			if err := loadFromFile(configFile, &cfg); err != nil {
				return nil, fmt.Errorf("failed to load config from file: %w", err)
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile overlays configuration from a YAML file.
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks the configuration structurally.
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		return err
	}
	min, max := c.Rules.DateBounds()
	if max.Before(min) {
		return fmt.Errorf("rules.date_max %s precedes rules.date_min %s", c.Rules.DateMax, c.Rules.DateMin)
	}
	return nil
}

// DateBounds returns the inclusive accepted date range. Validate guarantees
// both bounds parse.
func (r RulesConfig) DateBounds() (time.Time, time.Time) {
	min, _ := time.Parse("2006-01-02", r.DateMin)
	max, _ := time.Parse("2006-01-02", r.DateMax)
	return min, max
}

// ValidValues returns the closed-domain value sets keyed by column.
func (r RulesConfig) ValidValues() map[string][]string {
	return map[string][]string{
		"BANCO":   r.ValidBanks,
		"DIRETOR": r.ValidDirectors,
	}
}
