package outline

import (
	"fmt"
	"strings"
)

const (
	indentPrefix    = "    "
	entryPrefix     = "├── "
	lastEntryPrefix = "└── "
	verticalLine    = "│   "
)

// RenderTree writes the section tree as a text diagram, one heading per line,
// for the outline command.
func RenderTree(root *Node, label string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", label)
	renderChildren(&b, root, "")
	return b.String()
}

func renderChildren(b *strings.Builder, n *Node, currentIndent string) {
	for i, child := range n.Children {
		isLast := i == len(n.Children)-1

		connector := entryPrefix
		if isLast {
			connector = lastEntryPrefix
		}

		title := child.Heading.RenderedTitle()
		if title == "" {
			title = "(untitled)"
		}
		fmt.Fprintf(b, "%s%s%s\n", currentIndent, connector, title)

		nextIndent := currentIndent
		if isLast {
			nextIndent += indentPrefix
		} else {
			nextIndent += verticalLine
		}
		renderChildren(b, child, nextIndent)
	}
}
