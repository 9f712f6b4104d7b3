package outline

import (
	"nboutline/pkg/models"
)

// Node is one section: a heading plus all content until the next heading of
// equal-or-higher level. The root node has no heading and holds any material
// preceding the first heading.
type Node struct {
	Heading  *models.Heading
	Loc      models.Loc     // Position of the heading line; zero for the root
	Content  []models.Block // Blocks owned by this section, document order
	Children []*Node        // Subsections, document order
}

// Level returns the heading level, 0 for the synthetic root
func (n *Node) Level() int {
	if n.Heading == nil {
		return 0
	}
	return n.Heading.Level
}

// Build folds the scanner's segment sequence into a section tree in one
// left-to-right pass. A stack of open nodes tracks nesting: each heading pops
// until the top is shallower, then attaches as its child, so a level jump
// (1 → 3 with no level 2 between) nests directly under the nearest shallower
// ancestor. Content attaches to the deepest open node.
func Build(segments []models.Segment) *Node {
	root := &Node{}
	stack := []*Node{root}

	for _, seg := range segments {
		top := stack[len(stack)-1]

		if !seg.IsHeading() {
			top.Content = append(top.Content, *seg.Block)
			continue
		}

		node := &Node{Heading: seg.Heading, Loc: seg.Loc}
		for len(stack) > 1 && stack[len(stack)-1].Level() >= node.Level() {
			stack = stack[:len(stack)-1]
		}
		parent := stack[len(stack)-1]
		parent.Children = append(parent.Children, node)
		stack = append(stack, node)
	}

	return root
}

// Flatten returns every heading node in document order, root excluded.
func Flatten(root *Node) []*Node {
	var nodes []*Node
	var walk func(n *Node)
	walk = func(n *Node) {
		for _, child := range n.Children {
			nodes = append(nodes, child)
			walk(child)
		}
	}
	walk(root)
	return nodes
}

// MinLevel returns the shallowest heading level present, 0 when there are no
// headings. TOC indentation is relative to this level.
func MinLevel(root *Node) int {
	min := 0
	for _, n := range Flatten(root) {
		if min == 0 || n.Level() < min {
			min = n.Level()
		}
	}
	return min
}
