package parse

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"nboutline/pkg/models"
)

// PlainText reduces one line of inline markdown to its visible text: emphasis,
// code spans, and link targets are unwrapped, raw HTML is dropped.
func PlainText(markdown string) string {
	source := []byte(markdown)
	reader := text.NewReader(source)
	parser := goldmark.DefaultParser()
	doc := parser.Parse(reader)

	var buf bytes.Buffer
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if textNode, ok := n.(*ast.Text); ok {
			buf.Write(textNode.Segment.Value(source))
		}
		return ast.WalkContinue, nil
	})

	return strings.TrimSpace(buf.String())
}

// Slug normalizes text into an anchor fragment: plain text, lowercased,
// spaces to hyphens. This mirrors how the notebook frontend derives heading
// anchors, so TOC links resolve in a rendered notebook.
func Slug(s string) string {
	return strings.ReplaceAll(strings.ToLower(PlainText(s)), " ", "-")
}

// Anchor derives the link target for a heading. A pre-numbered heading's
// anchor omits the number so it stays stable across renumbering; a heading
// numbered in the current run anchors on the full rendered text, since the
// generating tool owns both sides of the link.
func Anchor(h models.Heading) string {
	if h.Numbered() && !h.Assigned {
		return Slug(h.Title)
	}
	return Slug(h.RenderedTitle())
}
