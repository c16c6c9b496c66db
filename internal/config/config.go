package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/iancoleman/strcase"
	"gopkg.in/yaml.v3"

	"github.com/mcncl/funkinconv/internal/formatter"
	"github.com/mcncl/funkinconv/internal/schema"
)

// Config represents the complete configuration for funkinconv
type Config struct {
	CharacterSchema string       `yaml:"character_schema"`
	Output          OutputConfig `yaml:"output"`
	Batch           BatchConfig  `yaml:"batch"`
	Dev             DevConfig    `yaml:"dev"`
}

// OutputConfig controls where and how converted files are written
type OutputConfig struct {
	Naming string `yaml:"naming"`
	Suffix string `yaml:"suffix"`
	Indent int    `yaml:"indent"`
}

// BatchConfig controls multi-file runs
type BatchConfig struct {
	Jobs int `yaml:"jobs"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug"`
}

// Overrides carries command-line values. Nil fields were not given and leave
// the config untouched.
type Overrides struct {
	CharacterSchema *string
	Naming          *string
	Suffix          *string
	Indent          *int
	Jobs            *int
	Debug           *bool
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		CharacterSchema: string(schema.CharacterAuto),
		Output: OutputConfig{
			Naming: string(formatter.NamingConverted),
			Suffix: formatter.DefaultSuffix,
			Indent: formatter.DefaultIndent,
		},
		Batch: BatchConfig{
			Jobs: 1,
		},
		Dev: DevConfig{
			Debug: false,
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".funkinconv.yml", ".funkinconv.yaml", "funkinconv.yml", "funkinconv.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Validate normalises the suffix and checks every enumerated field
func (c *Config) Validate() error {
	if _, err := schema.ParseCharacterVariant(c.CharacterSchema); err != nil {
		return fmt.Errorf("invalid character_schema: %w", err)
	}
	if c.CharacterSchema == "" {
		c.CharacterSchema = string(schema.CharacterAuto)
	}

	switch formatter.Naming(c.Output.Naming) {
	case formatter.NamingConverted, formatter.NamingDialect:
	case "":
		c.Output.Naming = string(formatter.NamingConverted)
	default:
		return fmt.Errorf("invalid output.naming %q (want converted or dialect)", c.Output.Naming)
	}

	c.Output.Suffix = strcase.ToSnake(c.Output.Suffix)
	if c.Output.Suffix == "" {
		return fmt.Errorf("output.suffix must not be empty")
	}

	if c.Output.Indent < 1 || c.Output.Indent > 8 {
		return fmt.Errorf("invalid output.indent %d (want 1-8)", c.Output.Indent)
	}
	if c.Batch.Jobs < 1 {
		return fmt.Errorf("invalid batch.jobs %d (want at least 1)", c.Batch.Jobs)
	}
	return nil
}

// Apply merges CLI overrides into the config and validates the result
func (c *Config) Apply(o Overrides) error {
	if o.CharacterSchema != nil {
		c.CharacterSchema = *o.CharacterSchema
	}
	if o.Naming != nil {
		c.Output.Naming = *o.Naming
	}
	if o.Suffix != nil {
		c.Output.Suffix = *o.Suffix
	}
	if o.Indent != nil {
		c.Output.Indent = *o.Indent
	}
	if o.Jobs != nil {
		c.Batch.Jobs = *o.Jobs
	}
	if o.Debug != nil && *o.Debug {
		c.Dev.Debug = true
	}
	return c.Validate()
}

// LoadConfigWithCLI loads the config file (explicit path, discovered file, or
// defaults) and applies CLI overrides on top
func LoadConfigWithCLI(configPath string, o Overrides) (*Config, error) {
	cfg := NewConfig()

	if configPath == "" {
		configPath = FindConfigFile()
	}
	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	if err := cfg.Apply(o); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WithDefaults returns a copy of the config with unset fields taken from
// NewConfig. Jobs below one becomes one.
func (c *Config) WithDefaults() *Config {
	d := NewConfig()
	out := *c
	if out.CharacterSchema == "" {
		out.CharacterSchema = d.CharacterSchema
	}
	if out.Output.Naming == "" {
		out.Output.Naming = d.Output.Naming
	}
	if out.Output.Suffix == "" {
		out.Output.Suffix = d.Output.Suffix
	}
	if out.Output.Indent < 1 {
		out.Output.Indent = d.Output.Indent
	}
	if out.Batch.Jobs < 1 {
		out.Batch.Jobs = d.Batch.Jobs
	}
	return &out
}

// Variant returns the configured character schema variant
func (c *Config) Variant() schema.CharacterVariant {
	v, err := schema.ParseCharacterVariant(c.CharacterSchema)
	if err != nil {
		return schema.CharacterAuto
	}
	return v
}

// Formatter builds the output formatter described by the config
func (c *Config) Formatter() *formatter.Formatter {
	return &formatter.Formatter{
		Indent: c.Output.Indent,
		Naming: formatter.Naming(c.Output.Naming),
		Suffix: c.Output.Suffix,
	}
}
