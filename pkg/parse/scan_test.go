package parse

import (
	"testing"

	"nboutline/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mdCell(index int, source string) models.SourceCell {
	return models.SourceCell{Index: index, Type: "markdown", Source: source}
}

func codeCell(index int, source string) models.SourceCell {
	return models.SourceCell{Index: index, Type: "code", Source: source}
}

func TestScanCells_HeadingAndContent(t *testing.T) {
	cells := []models.SourceCell{
		mdCell(0, "# Intro\nWelcome text."),
		codeCell(1, "print('hi')"),
		mdCell(2, "## Details"),
	}

	segments, warnings := ScanCells(cells)
	require.Empty(t, warnings)
	require.Len(t, segments, 4)

	assert.True(t, segments[0].IsHeading())
	assert.Equal(t, "Intro", segments[0].Heading.Title)
	assert.Equal(t, models.Loc{Cell: 0, Line: 0}, segments[0].Loc)

	assert.False(t, segments[1].IsHeading())
	assert.Equal(t, "Welcome text.", segments[1].Block.Source)
	assert.Equal(t, models.Loc{Cell: 0, Line: 1}, segments[1].Loc)

	assert.Equal(t, "code", segments[2].Block.Type)
	assert.Equal(t, "print('hi')", segments[2].Block.Source)

	assert.True(t, segments[3].IsHeading())
	assert.Equal(t, 2, segments[3].Heading.Level)
}

func TestScanCells_NonMarkdownNeverSplit(t *testing.T) {
	source := "# not a heading\nx = 1"
	segments, warnings := ScanCells([]models.SourceCell{codeCell(0, source)})

	require.Empty(t, warnings)
	require.Len(t, segments, 1)
	assert.False(t, segments[0].IsHeading())
	assert.Equal(t, source, segments[0].Block.Source)
}

func TestScanCells_FencedCodeShieldsHeadings(t *testing.T) {
	source := "## Real\n```python\n# comment, not a heading\n```\ntrailing text"
	segments, warnings := ScanCells([]models.SourceCell{mdCell(0, source)})

	require.Empty(t, warnings)
	require.Len(t, segments, 2)
	assert.Equal(t, "Real", segments[0].Heading.Title)
	assert.Equal(t, "```python\n# comment, not a heading\n```\ntrailing text", segments[1].Block.Source)
}

func TestScanCells_TildeFence(t *testing.T) {
	source := "~~~\n# shielded\n~~~\n# Visible"
	segments, warnings := ScanCells([]models.SourceCell{mdCell(0, source)})

	require.Empty(t, warnings)
	require.Len(t, segments, 2)
	assert.False(t, segments[0].IsHeading())
	assert.True(t, segments[1].IsHeading())
	assert.Equal(t, "Visible", segments[1].Heading.Title)
}

func TestScanCells_FenceMarkerMismatchKeepsFenceOpen(t *testing.T) {
	// A ``` fence is not closed by ~~~
	source := "```\n~~~\n# still shielded\n```\n# Visible"
	segments, warnings := ScanCells([]models.SourceCell{mdCell(0, source)})

	require.Empty(t, warnings)
	require.Len(t, segments, 2)
	assert.False(t, segments[0].IsHeading())
	assert.Equal(t, "Visible", segments[1].Heading.Title)
}

func TestScanCells_UnterminatedFenceEndsAtCell(t *testing.T) {
	cells := []models.SourceCell{
		mdCell(0, "```\n# shielded"),
		mdCell(1, "# Visible"),
	}
	segments, warnings := ScanCells(cells)

	require.Empty(t, warnings)
	require.Len(t, segments, 2)
	assert.False(t, segments[0].IsHeading())
	assert.True(t, segments[1].IsHeading())
}

func TestScanCells_MultipleHeadingsInOneCell(t *testing.T) {
	source := "# One\nalpha\n## Two\nbeta"
	segments, warnings := ScanCells([]models.SourceCell{mdCell(0, source)})

	require.Empty(t, warnings)
	require.Len(t, segments, 4)
	assert.Equal(t, "One", segments[0].Heading.Title)
	assert.Equal(t, "alpha", segments[1].Block.Source)
	assert.Equal(t, "Two", segments[2].Heading.Title)
	assert.Equal(t, models.Loc{Cell: 0, Line: 2}, segments[2].Loc)
	assert.Equal(t, "beta", segments[3].Block.Source)
}

func TestScanCells_MalformedHeadingWarnsAndKeepsContent(t *testing.T) {
	source := "# Good\n#bad-no-space"
	segments, warnings := ScanCells([]models.SourceCell{mdCell(0, source)})

	require.Len(t, warnings, 1)
	assert.Equal(t, models.WarnMalformedHeading, warnings[0].Kind)

	require.Len(t, segments, 2)
	assert.Equal(t, "#bad-no-space", segments[1].Block.Source)
}

func TestScanCells_CellWithoutHeadingPassesThroughByteExact(t *testing.T) {
	source := "just text\n\nwith a blank line\n"
	segments, warnings := ScanCells([]models.SourceCell{mdCell(0, source)})

	require.Empty(t, warnings)
	require.Len(t, segments, 1)
	assert.Equal(t, source, segments[0].Block.Source)
}

func TestScanCells_BlankRunAroundHeadingSuppressed(t *testing.T) {
	source := "# Title\n"
	segments, warnings := ScanCells([]models.SourceCell{mdCell(0, source)})

	require.Empty(t, warnings)
	require.Len(t, segments, 1, "trailing newline after a heading is not a content block")
	assert.True(t, segments[0].IsHeading())
}

func TestScanCells_PreambleBeforeFirstHeading(t *testing.T) {
	cells := []models.SourceCell{
		mdCell(0, "Document preamble."),
		mdCell(1, "# First"),
	}
	segments, warnings := ScanCells(cells)

	require.Empty(t, warnings)
	require.Len(t, segments, 2)
	assert.False(t, segments[0].IsHeading())
	assert.True(t, segments[1].IsHeading())
}

func TestScanCells_EmptyInput(t *testing.T) {
	segments, warnings := ScanCells(nil)
	assert.Empty(t, segments)
	assert.Empty(t, warnings)
}
