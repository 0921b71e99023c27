// Package config loads tool configuration from a YAML file discovered in the
// working directory or any parent, with CLI flags taking precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	apperrors "github.com/jsonstudio/jsonstudio/internal/errors"
)

// Config represents the complete configuration for jsonstudio
type Config struct {
	Indent  int          `yaml:"indent"`
	Lenient bool         `yaml:"lenient"`
	Worker  WorkerConfig `yaml:"worker"`
	Dev     DevConfig    `yaml:"dev"`
}

// WorkerConfig controls the background worker pool and edit debouncing
type WorkerConfig struct {
	Pool       int `yaml:"pool"`
	DebounceMS int `yaml:"debounce_ms"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Indent:  2,
		Lenient: false,
		Worker: WorkerConfig{
			Pool:       4,
			DebounceMS: 300,
		},
	}
}

// LoadConfig loads configuration from a YAML file, starting from defaults
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewConfigError(fmt.Sprintf("failed to read config file '%s'", path), err)
	}

	cfg := NewConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, apperrors.NewConfigError(fmt.Sprintf("failed to parse config file '%s'", path), err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the engine cannot work with
func (c *Config) Validate() error {
	if c.Indent < 0 || c.Indent > 16 {
		return apperrors.NewConfigError(fmt.Sprintf("indent must be between 0 and 16, got %d", c.Indent), nil)
	}
	if c.Worker.Pool < 0 {
		return apperrors.NewConfigError(fmt.Sprintf("worker pool size must not be negative, got %d", c.Worker.Pool), nil)
	}
	if c.Worker.DebounceMS < 0 {
		return apperrors.NewConfigError(fmt.Sprintf("debounce interval must not be negative, got %d", c.Worker.DebounceMS), nil)
	}
	return nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".jsonstudio.yml", ".jsonstudio.yaml", "jsonstudio.yml", "jsonstudio.yaml"}

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
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}
