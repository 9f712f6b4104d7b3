package outline

import (
	"nboutline/pkg/models"
	"nboutline/pkg/parse"
)

// Assign walks the tree depth-first in sibling order and gives every
// unnumbered heading its hierarchical number. Counters are explicit
// per-traversal state so independent documents can be processed concurrently.
//
// A heading that already carries a number keeps its line verbatim; the
// sibling counter continues from the last component of the preserved number,
// so gaps fill sequentially regardless of numbered/unnumbered origin. A
// node's children take its effective number as their prefix and start their
// own counter at 1. Headings deeper than maxDepth (0 = unlimited) are left
// untouched. Returns the line edits to apply.
func Assign(root *Node, maxDepth int) ([]models.LineEdit, models.NumberingReport) {
	var edits []models.LineEdit
	var report models.NumberingReport

	var walk func(n *Node, prefix models.Number)
	walk = func(n *Node, prefix models.Number) {
		counter := 1
		for _, child := range n.Children {
			h := child.Heading

			if maxDepth > 0 && h.Level > maxDepth {
				// Children always sit deeper than the limit too
				report.Skipped += countHeadings(child)
				continue
			}

			if h.Numbered() {
				report.Preserved++
				counter = h.Number.Last() + 1
				walk(child, h.Number)
				continue
			}

			num := append(prefix.Clone(), counter)
			counter++
			h.Number = num
			h.Assigned = true
			edits = append(edits, models.LineEdit{
				Cell: child.Loc.Cell,
				Line: child.Loc.Line,
				Text: parse.RenderLine(*h),
			})
			report.Assigned++
			walk(child, num)
		}
	}
	walk(root, nil)

	return edits, report
}

// Strip removes the number prefix from every numbered heading, whatever its
// origin. Tree structure and content are untouched.
func Strip(root *Node) ([]models.LineEdit, models.NumberingReport) {
	var edits []models.LineEdit
	var report models.NumberingReport

	for _, node := range Flatten(root) {
		h := node.Heading
		if !h.Numbered() {
			continue
		}
		h.Number = nil
		h.Assigned = false
		edits = append(edits, models.LineEdit{
			Cell: node.Loc.Cell,
			Line: node.Loc.Line,
			Text: parse.RenderLine(*h),
		})
		report.Stripped++
	}

	return edits, report
}

// countHeadings counts the node itself plus all descendants.
func countHeadings(n *Node) int {
	total := 1
	for _, child := range n.Children {
		total += countHeadings(child)
	}
	return total
}
