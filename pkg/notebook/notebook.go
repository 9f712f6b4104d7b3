package notebook

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"nboutline/pkg/models"
)

// Cell is one notebook cell. Fields are held as raw JSON so attachments,
// outputs, execution counts, and anything a future schema adds survive a
// read/write cycle untouched.
type Cell map[string]json.RawMessage

// Type returns the cell_type, "" when absent
func (c Cell) Type() string {
	return c.stringField("cell_type")
}

// ID returns the cell id, "" when absent (pre-4.5 notebooks)
func (c Cell) ID() string {
	return c.stringField("id")
}

// IsMarkdown reports whether the cell is a markdown cell
func (c Cell) IsMarkdown() bool {
	return c.Type() == models.CellTypeMarkdown
}

// Source returns the cell source as one string. The container allows both a
// plain string and a list of lines; line elements carry their own newlines.
func (c Cell) Source() string {
	raw, ok := c["source"]
	if !ok {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var lines []string
	if err := json.Unmarshal(raw, &lines); err == nil {
		return strings.Join(lines, "")
	}

	return ""
}

// SetSource replaces the cell source, stored in the line-array form the
// reference tooling writes.
func (c Cell) SetSource(src string) {
	data, _ := json.Marshal(SplitSource(src))
	c["source"] = data
}

func (c Cell) stringField(key string) string {
	raw, ok := c[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// SplitSource splits source text into the container's line-array form:
// every element keeps its trailing newline except a final unterminated line.
func SplitSource(src string) []string {
	if src == "" {
		return []string{}
	}
	parts := strings.SplitAfter(src, "\n")
	if parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}

// NewCellID returns a fresh 8-character cell id, the length the reference
// tooling uses for generated cells.
func NewCellID() string {
	return uuid.NewString()[:8]
}

// NewMarkdownCell builds a markdown cell with a fresh id
func NewMarkdownCell(source string) Cell {
	c := Cell{
		"cell_type": json.RawMessage(`"markdown"`),
		"metadata":  json.RawMessage(`{}`),
	}
	c.setID()
	c.SetSource(source)
	return c
}

// NewCodeCell builds an unexecuted code cell with a fresh id
func NewCodeCell(source string) Cell {
	c := Cell{
		"cell_type":       json.RawMessage(`"code"`),
		"execution_count": json.RawMessage(`null`),
		"metadata":        json.RawMessage(`{}`),
		"outputs":         json.RawMessage(`[]`),
	}
	c.setID()
	c.SetSource(source)
	return c
}

// NewRawCell builds a raw cell with a fresh id
func NewRawCell(source string) Cell {
	c := Cell{
		"cell_type": json.RawMessage(`"raw"`),
		"metadata":  json.RawMessage(`{}`),
	}
	c.setID()
	c.SetSource(source)
	return c
}

// NewCell builds a cell of the given type
func NewCell(cellType, source string) Cell {
	switch cellType {
	case models.CellTypeCode:
		return NewCodeCell(source)
	case models.CellTypeRaw:
		return NewRawCell(source)
	default:
		return NewMarkdownCell(source)
	}
}

func (c Cell) setID() {
	data, _ := json.Marshal(NewCellID())
	c["id"] = data
}

// Notebook is the parsed container: the ordered cell sequence plus every
// other top-level field preserved verbatim.
type Notebook struct {
	Cells []Cell

	extra map[string]json.RawMessage
}

// UnmarshalJSON implements json.Unmarshaler
func (nb *Notebook) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	cellsRaw, ok := raw["cells"]
	if !ok {
		return fmt.Errorf("missing 'cells' field")
	}

	var cells []Cell
	if err := json.Unmarshal(cellsRaw, &cells); err != nil {
		return fmt.Errorf("parsing cells: %w", err)
	}

	delete(raw, "cells")
	nb.Cells = cells
	nb.extra = raw
	return nil
}

// MarshalJSON implements json.Marshaler. Keys come out sorted, the order the
// reference tooling writes, so diffs against frontend-saved files stay small.
func (nb Notebook) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(nb.extra)+1)
	for k, v := range nb.extra {
		out[k] = v
	}

	cells := nb.Cells
	if cells == nil {
		cells = []Cell{}
	}
	cellsRaw, err := json.Marshal(cells)
	if err != nil {
		return nil, err
	}
	out["cells"] = cellsRaw

	return json.Marshal(out)
}

// New builds an empty notebook with minimal metadata and the given kernelspec
func New(kernelName, displayName, language string) *Notebook {
	kernelspec, _ := json.Marshal(map[string]string{
		"display_name": displayName,
		"language":     language,
		"name":         kernelName,
	})
	metadata, _ := json.Marshal(map[string]json.RawMessage{
		"kernelspec": kernelspec,
	})

	return &Notebook{
		Cells: []Cell{},
		extra: map[string]json.RawMessage{
			"metadata":       metadata,
			"nbformat":       json.RawMessage(`4`),
			"nbformat_minor": json.RawMessage(`5`),
		},
	}
}

// SourceCells adapts the cell sequence for the scanner
func (nb *Notebook) SourceCells() []models.SourceCell {
	cells := make([]models.SourceCell, len(nb.Cells))
	for i, c := range nb.Cells {
		cells[i] = models.SourceCell{Index: i, Type: c.Type(), Source: c.Source()}
	}
	return cells
}

// InsertCell inserts a cell at index, shifting the rest right
func (nb *Notebook) InsertCell(index int, cell Cell) {
	if index < 0 {
		index = 0
	}
	if index > len(nb.Cells) {
		index = len(nb.Cells)
	}
	nb.Cells = append(nb.Cells[:index], append([]Cell{cell}, nb.Cells[index:]...)...)
}
