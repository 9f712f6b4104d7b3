// Package template turns a section tree into a persisted, addressable form
// and rebuilds notebooks from a chosen subset of sections with variable
// substitution.
package template

import (
	"fmt"

	"nboutline/pkg/models"
	"nboutline/pkg/outline"
	"nboutline/pkg/utils"
)

// PreambleID keys the synthetic section holding material that precedes the
// first heading.
const PreambleID = "_preamble"

// Section is the persisted form of one document section: a heading plus the
// content it owns, with subsections nested under children. Created by
// extraction, never mutated afterwards, read many times during composition.
type Section struct {
	ID       string         `json:"id"`
	Title    string         `json:"title"`
	Level    int            `json:"level"`
	Content  []models.Block `json:"content,omitempty"`
	Children []*Section     `json:"children,omitempty"`
}

// Extract flattens a section tree into template sections in document order.
// Ids are slugs of the number-free titles, deduplicated with numeric
// suffixes so every section stays addressable. Root content preceding the
// first heading persists as the synthetic _preamble section at level 0.
func Extract(root *outline.Node) []*Section {
	ids := &idAllocator{used: map[string]bool{PreambleID: true}}

	sections := []*Section{}
	if len(root.Content) > 0 {
		sections = append(sections, &Section{
			ID:      PreambleID,
			Level:   0,
			Content: cloneBlocks(root.Content),
		})
	}
	for _, child := range root.Children {
		sections = append(sections, extractNode(child, ids))
	}
	return sections
}

func extractNode(n *outline.Node, ids *idAllocator) *Section {
	s := &Section{
		ID:      ids.allocate(n.Heading.Title),
		Title:   n.Heading.RenderedTitle(),
		Level:   n.Heading.Level,
		Content: cloneBlocks(n.Content),
	}
	for _, child := range n.Children {
		s.Children = append(s.Children, extractNode(child, ids))
	}
	return s
}

// cloneBlocks detaches the persisted blocks from the live tree.
func cloneBlocks(blocks []models.Block) []models.Block {
	if len(blocks) == 0 {
		return nil
	}
	out := make([]models.Block, len(blocks))
	copy(out, blocks)
	return out
}

// idAllocator hands out unique ids: the first "methods" keeps the plain
// slug, later ones become methods-2, methods-3, and so on.
type idAllocator struct {
	used map[string]bool
}

func (a *idAllocator) allocate(title string) string {
	base := utils.SanitizeID(title)
	id := base
	for n := 2; a.used[id]; n++ {
		id = fmt.Sprintf("%s-%d", base, n)
	}
	a.used[id] = true
	return id
}
