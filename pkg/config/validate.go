package config

import (
	"fmt"

	"nboutline/pkg/utils"
)

// Validate checks Config fields and applies sensible defaults.
// Returns collected warnings and any fatal error.
// Modifies receiver in place to apply defaults.
func (c *Config) Validate() (warnings []string, err error) {
	// TOC title
	if c.TOC.Title == "" {
		c.TOC.Title = "Table of Contents"
	}

	// TOC bullet
	switch c.TOC.Bullet {
	case "":
		c.TOC.Bullet = "-"
	case "-", "*", "+":
		// Valid markdown list bullets
	default:
		return warnings, fmt.Errorf("%w: toc.bullet must be one of '-', '*', '+', got %q",
			utils.ErrConfigValidation, c.TOC.Bullet)
	}

	// TOC indent width
	if c.TOC.IndentWidth < 0 {
		warnings = append(warnings, "toc.indent_width cannot be negative, defaulting to 2")
		c.TOC.IndentWidth = 2
	}
	if c.TOC.IndentWidth == 0 {
		c.TOC.IndentWidth = 2
	}

	// TOC max depth
	if c.TOC.MaxDepth < 0 {
		warnings = append(warnings, "toc.max_depth cannot be negative, listing all levels")
		c.TOC.MaxDepth = 0
	}

	// TOC exclude patterns must compile; the renderer compiles them again at
	// construction, but failing here keeps bad configs out of batch runs
	if _, err := utils.CompileRegexPatterns(c.TOC.ExcludeTitles); err != nil {
		return warnings, fmt.Errorf("toc.exclude_titles: %w", err)
	}

	// Numbering max depth
	if c.Numbering.MaxDepth < 0 {
		warnings = append(warnings, "numbering.max_depth cannot be negative, numbering all levels")
		c.Numbering.MaxDepth = 0
	}

	// Compose kernelspec
	if c.Compose.KernelName == "" {
		c.Compose.KernelName = "python3"
	}
	if c.Compose.DisplayName == "" {
		c.Compose.DisplayName = "Python 3"
	}
	if c.Compose.Language == "" {
		c.Compose.Language = "python"
	}

	// Batch workers
	if c.Batch.Workers < 0 {
		warnings = append(warnings, "batch.workers should be > 0, defaulting to 4")
		c.Batch.Workers = 4
	}
	if c.Batch.Workers == 0 {
		c.Batch.Workers = 4
	}

	return warnings, nil
}
