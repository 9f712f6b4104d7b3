package models

import "strconv"

// Notebook cell types. Only markdown cells are scanned for headings; the
// rest pass through opaque.
const (
	CellTypeMarkdown = "markdown"
	CellTypeCode     = "code"
	CellTypeRaw      = "raw"
)

// Number is a hierarchical heading number, one counter per tree depth,
// rendered as dot-joined integers ("1.2.3").
type Number []int

// String implements fmt.Stringer
func (n Number) String() string {
	if len(n) == 0 {
		return ""
	}
	s := strconv.Itoa(n[0])
	for _, c := range n[1:] {
		s += "." + strconv.Itoa(c)
	}
	return s
}

// Last returns the final component, the counter at the number's own depth
func (n Number) Last() int {
	if len(n) == 0 {
		return 0
	}
	return n[len(n)-1]
}

// Clone returns an independent copy; appends to the copy never alias the original
func (n Number) Clone() Number {
	if n == nil {
		return nil
	}
	out := make(Number, len(n))
	copy(out, n)
	return out
}

// Heading is one parsed markdown heading line
type Heading struct {
	Level    int    // Count of leading '#' markers, never inferred from content
	Number   Number // Dotted number parsed from the source or assigned by numbering; nil if unnumbered
	Assigned bool   // True only when Number was assigned by the current run (not parsed from the source)
	Title    string // Heading text with any number prefix and surrounding whitespace stripped
	Raw      string // Original line, kept verbatim for round-trip fidelity
}

// Numbered reports whether the heading carries a hierarchical number
func (h Heading) Numbered() bool {
	return len(h.Number) > 0
}

// RenderedTitle returns the title as displayed: number prefix included when present
func (h Heading) RenderedTitle() string {
	if !h.Numbered() {
		return h.Title
	}
	if h.Title == "" {
		return h.Number.String()
	}
	return h.Number.String() + " " + h.Title
}

// Loc addresses one line inside the cell sequence
type Loc struct {
	Cell int // Cell index within the notebook
	Line int // Line index within that cell's source
}

// SourceCell is the scanner's view of one notebook cell
type SourceCell struct {
	Index  int    // Position in the notebook cell sequence
	Type   string // "markdown", "code", "raw"
	Source string // Full cell source
}

// Block is one opaque content block: a whole non-markdown cell, or a run of
// markdown lines between headings
type Block struct {
	Type   string `json:"type"`
	Source string `json:"source"`
}

// Segment is one scanner output unit, either a heading or a content block
type Segment struct {
	Heading *Heading // Set for heading segments
	Block   *Block   // Set for content segments
	Loc     Loc      // Position of the heading line or block start
}

// IsHeading reports whether the segment is a heading
func (s Segment) IsHeading() bool {
	return s.Heading != nil
}

// LineEdit is a single-line rewrite produced by the numbering engine and
// applied to the notebook by the processor
type LineEdit struct {
	Cell int
	Line int
	Text string
}

// NumberingReport summarizes one assign/strip pass
type NumberingReport struct {
	Assigned  int // Headings given a fresh number
	Preserved int // Headings whose existing number was kept verbatim
	Stripped  int // Headings whose number prefix was removed
	Skipped   int // Headings left untouched by the depth limit
}
