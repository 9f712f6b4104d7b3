package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"nboutline/pkg/utils"
)

// TOCConfig holds configuration for table-of-contents rendering
type TOCConfig struct {
	Title         string   `yaml:"title,omitempty"`          // Header text of the TOC cell
	Bullet        string   `yaml:"bullet,omitempty"`         // List bullet for entries ("-" or "*")
	IndentWidth   int      `yaml:"indent_width,omitempty"`   // Spaces per depth step
	MaxDepth      int      `yaml:"max_depth,omitempty"`      // Deepest relative level listed (0 = unlimited)
	ExcludeTitles []string `yaml:"exclude_titles,omitempty"` // Regex patterns for section titles to leave out (matched without numbers, subtree-wide)
}

// NumberingConfig holds configuration for the numbering engine
type NumberingConfig struct {
	MaxDepth int `yaml:"max_depth,omitempty"` // Deepest heading level numbered (0 = unlimited)
}

// ComposeConfig holds configuration for composed notebooks
type ComposeConfig struct {
	KernelName  string `yaml:"kernel_name,omitempty"`  // Kernelspec name written into composed notebooks
	DisplayName string `yaml:"display_name,omitempty"` // Kernelspec display name
	Language    string `yaml:"language,omitempty"`     // Kernelspec language
}

// BatchConfig holds configuration for parallel multi-file runs
type BatchConfig struct {
	Workers int `yaml:"workers,omitempty"` // Max notebooks processed concurrently
}

// Config holds the global application configuration
type Config struct {
	TOC       TOCConfig       `yaml:"toc,omitempty"`
	Numbering NumberingConfig `yaml:"numbering,omitempty"`
	Compose   ComposeConfig   `yaml:"compose,omitempty"`
	Batch     BatchConfig     `yaml:"batch,omitempty"`
}

// Default returns a Config with all defaults applied and no warnings pending
func Default() *Config {
	cfg := &Config{}
	_, _ = cfg.Validate()
	return cfg
}

// Load reads and parses a YAML config file. An empty path yields defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read config: %w", utils.ErrFilesystem, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: parse config: %w", utils.ErrConfigValidation, err)
	}

	return &cfg, nil
}
