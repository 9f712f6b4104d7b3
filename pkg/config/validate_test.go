package config

import (
	"strings"
	"testing"

	"nboutline/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate_Defaults(t *testing.T) {
	cfg := Config{} // Zero value
	warnings, err := cfg.Validate()

	require.NoError(t, err)

	// Check defaults applied
	assert.Equal(t, "Table of Contents", cfg.TOC.Title)
	assert.Equal(t, "-", cfg.TOC.Bullet)
	assert.Equal(t, 2, cfg.TOC.IndentWidth)
	assert.Equal(t, 0, cfg.TOC.MaxDepth)
	assert.Equal(t, 0, cfg.Numbering.MaxDepth)
	assert.Equal(t, "python3", cfg.Compose.KernelName)
	assert.Equal(t, "Python 3", cfg.Compose.DisplayName)
	assert.Equal(t, "python", cfg.Compose.Language)
	assert.Equal(t, 4, cfg.Batch.Workers)

	// Zero value is fully defaultable, no warnings expected
	assert.Empty(t, warnings)
}

func TestConfig_Validate_ValidConfig(t *testing.T) {
	cfg := Config{
		TOC:       TOCConfig{Title: "Contents", Bullet: "*", IndentWidth: 4, MaxDepth: 3},
		Numbering: NumberingConfig{MaxDepth: 2},
		Compose:   ComposeConfig{KernelName: "ir", DisplayName: "R", Language: "R"},
		Batch:     BatchConfig{Workers: 8},
	}
	warnings, err := cfg.Validate()

	require.NoError(t, err)
	assert.Empty(t, warnings)

	// Explicit values untouched
	assert.Equal(t, "Contents", cfg.TOC.Title)
	assert.Equal(t, "*", cfg.TOC.Bullet)
	assert.Equal(t, 4, cfg.TOC.IndentWidth)
	assert.Equal(t, 3, cfg.TOC.MaxDepth)
	assert.Equal(t, 2, cfg.Numbering.MaxDepth)
	assert.Equal(t, "ir", cfg.Compose.KernelName)
	assert.Equal(t, 8, cfg.Batch.Workers)
}

func TestConfig_Validate_NegativeValues(t *testing.T) {
	cfg := Config{
		TOC:       TOCConfig{IndentWidth: -1, MaxDepth: -2},
		Numbering: NumberingConfig{MaxDepth: -1},
		Batch:     BatchConfig{Workers: -3},
	}
	warnings, err := cfg.Validate()

	require.NoError(t, err)

	assert.Equal(t, 2, cfg.TOC.IndentWidth)
	assert.Equal(t, 0, cfg.TOC.MaxDepth)
	assert.Equal(t, 0, cfg.Numbering.MaxDepth)
	assert.Equal(t, 4, cfg.Batch.Workers)

	assert.True(t, containsWarning(warnings, "toc.indent_width cannot be negative"))
	assert.True(t, containsWarning(warnings, "toc.max_depth cannot be negative"))
	assert.True(t, containsWarning(warnings, "numbering.max_depth cannot be negative"))
	assert.True(t, containsWarning(warnings, "batch.workers should be > 0"))
}

func TestConfig_Validate_InvalidBullet(t *testing.T) {
	cfg := Config{TOC: TOCConfig{Bullet: "1."}}
	_, err := cfg.Validate()

	require.Error(t, err)
	assert.ErrorIs(t, err, utils.ErrConfigValidation)
	assert.Contains(t, err.Error(), "toc.bullet")
}

func TestConfig_Validate_ExcludeTitles(t *testing.T) {
	cfg := Config{TOC: TOCConfig{ExcludeTitles: []string{`^Appendix`, `^Scratch$`}}}
	warnings, err := cfg.Validate()

	require.NoError(t, err)
	assert.Empty(t, warnings)
}

func TestConfig_Validate_BadExcludePattern(t *testing.T) {
	cfg := Config{TOC: TOCConfig{ExcludeTitles: []string{`([unclosed`}}}
	_, err := cfg.Validate()

	require.Error(t, err)
	assert.ErrorIs(t, err, utils.ErrConfigValidation)
	assert.Contains(t, err.Error(), "toc.exclude_titles")
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "Table of Contents", cfg.TOC.Title)
	assert.Equal(t, 4, cfg.Batch.Workers)
}

// containsWarning checks if any warning contains the given substring
func containsWarning(warnings []string, substr string) bool {
	for _, w := range warnings {
		if strings.Contains(w, substr) {
			return true
		}
	}
	return false
}
