package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EmptyPathYieldsDefaults(t *testing.T) {
	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, "Table of Contents", cfg.TOC.Title)
	assert.Equal(t, "-", cfg.TOC.Bullet)
	assert.Equal(t, 4, cfg.Batch.Workers)
}

func TestLoad_ValidFile(t *testing.T) {
	yamlContent := `
toc:
  title: "Inhalt"
  bullet: "*"
  indent_width: 4
  max_depth: 2
numbering:
  max_depth: 3
compose:
  kernel_name: "ir"
batch:
  workers: 2
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlContent), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Inhalt", cfg.TOC.Title)
	assert.Equal(t, "*", cfg.TOC.Bullet)
	assert.Equal(t, 4, cfg.TOC.IndentWidth)
	assert.Equal(t, 2, cfg.TOC.MaxDepth)
	assert.Equal(t, 3, cfg.Numbering.MaxDepth)
	assert.Equal(t, "ir", cfg.Compose.KernelName)
	assert.Equal(t, 2, cfg.Batch.Workers)
}

func TestLoad_PartialFileLeavesZeroValues(t *testing.T) {
	yamlContent := `
toc:
  title: "Contents"
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlContent), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Contents", cfg.TOC.Title)
	assert.Equal(t, 0, cfg.Batch.Workers) // Defaults land in Validate, not Load

	warnings, err := cfg.Validate()
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, 4, cfg.Batch.Workers)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("toc: [not a mapping"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}
