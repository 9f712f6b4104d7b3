package toc

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"

	"nboutline/pkg/config"
	"nboutline/pkg/models"
	"nboutline/pkg/notebook"
	"nboutline/pkg/outline"
	"nboutline/pkg/parse"
	"nboutline/pkg/utils"
)

// markerClass tags the cell this tool generated. The frontend's own TOC
// extension uses the same class to skip a heading, so a rendered notebook
// never lists the TOC inside itself.
const markerClass = "jp-toc-ignore"

// UpdateAction reports where Update put the TOC cell.
type UpdateAction string

const (
	ActionReplaced  UpdateAction = "replaced"  // An existing TOC cell was rewritten in place
	ActionInserted  UpdateAction = "inserted"  // A new cell went in above the first heading
	ActionPrepended UpdateAction = "prepended" // No heading anywhere; cell went to document start
)

// Renderer turns a section tree into the TOC cell and places it in a
// notebook. Construct one per config; it is safe to reuse across documents.
type Renderer struct {
	cfg      config.TOCConfig
	excludes []*regexp.Regexp
	log      *logrus.Entry
}

// NewRenderer compiles the configured exclude patterns and returns a ready
// renderer.
func NewRenderer(cfg config.TOCConfig, log *logrus.Entry) (*Renderer, error) {
	excludes, err := utils.CompileRegexPatterns(cfg.ExcludeTitles)
	if err != nil {
		return nil, fmt.Errorf("toc.exclude_titles: %w", err)
	}
	return &Renderer{cfg: cfg, excludes: excludes, log: log}, nil
}

// Render produces the TOC cell source for the tree: a setext header carrying
// the locate marker, a blank line, then one link per listed heading. Link
// text is the heading's rendered title exactly as it appears in the document
// (number included when present, never re-prefixed); indentation is
// proportional to the heading's depth relative to the shallowest heading.
func (r *Renderer) Render(root *outline.Node) string {
	lines := []string{
		fmt.Sprintf("%s <a class=%q></a>", r.cfg.Title, markerClass),
		strings.Repeat("=", utf8.RuneCountInString(r.cfg.Title)),
	}

	entries := r.renderEntries(root.Children, outline.MinLevel(root))
	if len(entries) > 0 {
		lines = append(lines, "")
		lines = append(lines, entries...)
	}

	return strings.Join(lines, "\n")
}

// renderEntries walks the tree in document order. Exclusion matches the
// number-free title so listing never depends on numbering state, and it
// suppresses the whole subtree; the depth limit does the same since children
// always sit deeper than their parent.
func (r *Renderer) renderEntries(nodes []*outline.Node, minLevel int) []string {
	var entries []string
	for _, node := range nodes {
		h := node.Heading
		if utils.MatchesAny(h.Title, r.excludes) {
			r.log.Debugf("TOC: excluding section %q and its subtree", h.Title)
			continue
		}
		depth := h.Level - minLevel
		if r.cfg.MaxDepth > 0 && depth >= r.cfg.MaxDepth {
			continue
		}
		entries = append(entries, fmt.Sprintf("%s%s [%s](#%s)",
			strings.Repeat(" ", depth*r.cfg.IndentWidth),
			r.cfg.Bullet,
			h.RenderedTitle(),
			parse.Anchor(*h)))
		entries = append(entries, r.renderEntries(node.Children, minLevel)...)
	}
	return entries
}

// Update renders the TOC for root and places it in nb. An existing TOC cell
// is rewritten in place; otherwise a new cell goes immediately above the
// first heading, falling back to document start (with a warning) when the
// document has no headings at all.
func (r *Renderer) Update(nb *notebook.Notebook, root *outline.Node) (UpdateAction, []models.Warning) {
	source := r.Render(root)

	for _, cell := range nb.Cells {
		if cell.IsMarkdown() && IsTOCCell(cell.Source()) {
			cell.SetSource(source)
			return ActionReplaced, nil
		}
	}

	// Flatten walks pre-order, so the first node is the first heading in
	// document order
	if flat := outline.Flatten(root); len(flat) > 0 {
		nb.InsertCell(flat[0].Loc.Cell, notebook.NewMarkdownCell(source))
		return ActionInserted, nil
	}

	nb.InsertCell(0, notebook.NewMarkdownCell(source))
	return ActionPrepended, []models.Warning{models.Warningf(models.WarnMissingTOCMarker,
		"no TOC marker and no heading found; TOC prepended at document start")}
}

// IsTOCCell reports whether a markdown cell source is the TOC block this
// tool generated. The heuristic is a single predicate on purpose: a cell is
// the TOC iff its embedded HTML contains an anchor with the marker class.
func IsTOCCell(source string) bool {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(source))
	if err != nil {
		return false
	}
	return doc.Find("a." + markerClass).Length() > 0
}

// HasTOC reports whether any markdown cell in the notebook carries the TOC
// marker.
func HasTOC(nb *notebook.Notebook) bool {
	for _, cell := range nb.Cells {
		if cell.IsMarkdown() && IsTOCCell(cell.Source()) {
			return true
		}
	}
	return false
}
