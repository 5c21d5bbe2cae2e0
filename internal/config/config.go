package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmgilman/go/errors"
	"gopkg.in/yaml.v3"

	"github.com/schaermu/fsprove/internal/model"
	"github.com/schaermu/fsprove/internal/report"
)

// Config represents the complete fsprove configuration
type Config struct {
	Report   ReportConfig   `yaml:"report"`
	Render   RenderConfig   `yaml:"render"`
	Classify ClassifyConfig `yaml:"classify"`
}

// ReportConfig configures where and how results are written
type ReportConfig struct {
	Format report.Format `yaml:"format"`
	Output string        `yaml:"output"`
}

// RenderConfig configures how model values are rendered
type RenderConfig struct {
	Debug bool `yaml:"debug"`
}

// ClassifyConfig configures the classification run
type ClassifyConfig struct {
	Workers       int      `yaml:"workers"`
	Relationships []string `yaml:"relationships"`
}

// Default returns the configuration used when no config file exists
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// DefaultPath returns the default location of the config file
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, ".config", "fsprove", "config.yaml"), nil
}

// Load reads and parses the configuration file
func Load(path string) (*Config, error) {
	// Expand environment variables in path
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(err, errors.CodeNotFound, "config file %s does not exist", path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidInput, "failed to parse config file")
	}

	cfg.expandEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidInput, "invalid configuration")
	}

	return &cfg, nil
}

// expandEnv expands environment variables in path fields
func (c *Config) expandEnv() {
	c.Report.Output = os.ExpandEnv(c.Report.Output)
}

// applyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) applyDefaults() {
	if c.Report.Format == "" {
		c.Report.Format = report.FormatText
	}
	if c.Classify.Workers == 0 {
		c.Classify.Workers = 1
	}
}

// Validate checks the configuration for errors
func (c *Config) Validate() error {
	switch c.Report.Format {
	case report.FormatText, report.FormatYAML:
		// valid
	default:
		return fmt.Errorf("invalid report.format: %s (must be text or yaml)", c.Report.Format)
	}

	if c.Classify.Workers < 1 {
		return fmt.Errorf("classify.workers must be at least 1, got %d", c.Classify.Workers)
	}

	if _, err := c.PairRelationships(); err != nil {
		return err
	}

	return nil
}

// PairRelationships returns the relationships selected for classification.
// An empty result selects every relationship.
func (c *Config) PairRelationships() ([]model.Relationship, error) {
	rels := make([]model.Relationship, 0, len(c.Classify.Relationships))
	for _, name := range c.Classify.Relationships {
		rel, err := model.ParseRelationship(name)
		if err != nil {
			return nil, fmt.Errorf("invalid classify.relationships entry: %w", err)
		}
		rels = append(rels, rel)
	}
	return rels, nil
}
