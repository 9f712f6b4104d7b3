package template

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/natefinch/atomic"
	"github.com/tailscale/hujson"

	"nboutline/pkg/utils"
)

// ParseTemplate decodes a template: one JSON array of sections in document
// order.
func ParseTemplate(data []byte) ([]*Section, error) {
	var sections []*Section
	if err := json.Unmarshal(data, &sections); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrTemplateFormat, err)
	}
	return sections, nil
}

// LoadTemplate reads and parses a template file
func LoadTemplate(path string) ([]*Section, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", utils.ErrFilesystem, err)
	}
	sections, err := ParseTemplate(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sections, nil
}

// SaveTemplate writes the template atomically as indented JSON
func SaveTemplate(path string, sections []*Section) error {
	if sections == nil {
		sections = []*Section{}
	}
	data, err := json.MarshalIndent(sections, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrTemplateFormat, err)
	}
	data = append(data, '\n')
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("%w: write %s: %w", utils.ErrFilesystem, path, err)
	}
	return nil
}

// ParseSelection decodes a selection. Selections are edited by hand, so
// comments and trailing commas are stripped before decoding.
func ParseSelection(data []byte) (Selection, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrSelectionFormat, err)
	}
	var sel Selection
	if err := json.Unmarshal(standardized, &sel); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrSelectionFormat, err)
	}
	return sel, nil
}

// LoadSelection reads and parses a selection file
func LoadSelection(path string) (Selection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", utils.ErrFilesystem, err)
	}
	sel, err := ParseSelection(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sel, nil
}

// SaveSelection writes a selection atomically as plain indented JSON. Ids
// come out sorted, the order hand-editors expect to scan.
func SaveSelection(path string, sel Selection) error {
	if sel == nil {
		sel = Selection{}
	}
	data, err := json.MarshalIndent(sel, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrSelectionFormat, err)
	}
	data = append(data, '\n')
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("%w: write %s: %w", utils.ErrFilesystem, path, err)
	}
	return nil
}
