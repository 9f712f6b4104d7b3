package parse

import (
	"strings"

	"nboutline/pkg/models"
)

// ScanCells walks the ordered cell sequence and emits heading and content
// segments in document order. Non-markdown cells pass through as single
// opaque blocks. Markdown cells are split line by line: heading lines become
// heading segments, runs of other lines become content blocks, and text
// following a heading inside the same cell stays attached as content so cell
// boundaries never lose material. Heading-looking lines that do not parse are
// reported and kept as content.
func ScanCells(cells []models.SourceCell) ([]models.Segment, []models.Warning) {
	var segments []models.Segment
	var warnings []models.Warning

	for _, cell := range cells {
		if cell.Type != models.CellTypeMarkdown {
			block := &models.Block{Type: cell.Type, Source: cell.Source}
			segments = append(segments, models.Segment{Block: block, Loc: models.Loc{Cell: cell.Index}})
			continue
		}

		cellSegments, cellWarnings := scanMarkdownCell(cell)
		segments = append(segments, cellSegments...)
		warnings = append(warnings, cellWarnings...)
	}

	return segments, warnings
}

// scanMarkdownCell scans one markdown cell. A cell without headings passes
// through byte-exact as a single block; a cell with headings is split into
// heading segments and the line runs between them.
func scanMarkdownCell(cell models.SourceCell) ([]models.Segment, []models.Warning) {
	lines := strings.Split(cell.Source, "\n")

	var segments []models.Segment
	var warnings []models.Warning
	var run []string
	runStart := 0
	sawHeading := false

	flush := func() {
		if len(run) == 0 {
			return
		}
		joined := strings.Join(run, "\n")
		// Line runs next to a heading that hold nothing but blank lines are
		// newline shrapnel, not content
		if strings.TrimSpace(joined) != "" {
			block := &models.Block{Type: models.CellTypeMarkdown, Source: joined}
			segments = append(segments, models.Segment{
				Block: block,
				Loc:   models.Loc{Cell: cell.Index, Line: runStart},
			})
		}
		run = nil
	}

	var fence fenceState
	for i, line := range lines {
		if fence.observe(line) {
			// Fence delimiters and fenced lines are plain content
			run = append(run, line)
			continue
		}

		if h, ok := ParseHeading(line); ok {
			flush()
			heading := h
			segments = append(segments, models.Segment{
				Heading: &heading,
				Loc:     models.Loc{Cell: cell.Index, Line: i},
			})
			sawHeading = true
			runStart = i + 1
			continue
		}

		if LooksLikeHeading(line) {
			warnings = append(warnings, models.Warningf(models.WarnMalformedHeading,
				"cell %d line %d: %q has heading markers but no title separator; kept as content",
				cell.Index, i, line))
		}
		run = append(run, line)
	}
	flush()

	if !sawHeading {
		// Preserve the untouched cell byte-exact
		block := &models.Block{Type: models.CellTypeMarkdown, Source: cell.Source}
		return []models.Segment{{Block: block, Loc: models.Loc{Cell: cell.Index}}}, warnings
	}

	return segments, warnings
}

// fenceState tracks fenced code blocks so '#' comment lines inside them are
// never mistaken for headings. The opening marker's character must match the
// closing one; fences reset at cell end.
type fenceState struct {
	open   bool
	marker byte
}

// observe consumes one line and reports whether the line is inside (or
// delimits) a fenced block.
func (f *fenceState) observe(line string) bool {
	trimmed := strings.TrimSpace(line)

	if !f.open {
		if strings.HasPrefix(trimmed, "```") {
			f.open, f.marker = true, '`'
			return true
		}
		if strings.HasPrefix(trimmed, "~~~") {
			f.open, f.marker = true, '~'
			return true
		}
		return false
	}

	if strings.HasPrefix(trimmed, strings.Repeat(string(f.marker), 3)) {
		f.open = false
	}
	return true
}
