// Package process wires the scanner, tree builder, numbering engine, TOC
// renderer, and template engine into whole-notebook operations. Each method
// takes a parsed notebook, mutates or derives from it, and reports what
// happened; file I/O stays with the caller.
package process

import (
	"strings"

	"github.com/sirupsen/logrus"

	"nboutline/pkg/config"
	"nboutline/pkg/models"
	"nboutline/pkg/notebook"
	"nboutline/pkg/outline"
	"nboutline/pkg/parse"
	"nboutline/pkg/template"
	"nboutline/pkg/toc"
)

// Processor runs document-level operations against one configuration. It
// holds no per-notebook state, so one Processor serves concurrent workers.
type Processor struct {
	cfg *config.Config
	toc *toc.Renderer
	log *logrus.Entry
}

// NewProcessor builds a Processor, compiling TOC settings up front so
// configuration mistakes surface before any notebook is touched.
func NewProcessor(cfg *config.Config, log *logrus.Entry) (*Processor, error) {
	renderer, err := toc.NewRenderer(cfg.TOC, log)
	if err != nil {
		return nil, err
	}
	return &Processor{cfg: cfg, toc: renderer, log: log}, nil
}

// Report summarizes one notebook transformation.
type Report struct {
	Numbering models.NumberingReport
	TOCAction toc.UpdateAction // "" when no TOC cell was written
	Edits     int              // Heading lines rewritten
	Warnings  []models.Warning
}

// Changed reports whether the transformation touched the notebook at all.
func (r *Report) Changed() bool {
	return r.Edits > 0 || r.TOCAction != ""
}

// Number assigns hierarchical numbers to every heading (or strips them when
// remove is set) and, when updateTOC is set and the notebook already has a
// TOC cell, rewrites that cell against the renumbered tree. A notebook
// without a TOC never gains one here; that is Update TOC's job.
func (p *Processor) Number(nb *notebook.Notebook, remove, updateTOC bool) (*Report, error) {
	root, warnings := p.scan(nb)

	var edits []models.LineEdit
	report := &Report{Warnings: warnings}
	if remove {
		edits, report.Numbering = outline.Strip(root)
	} else {
		edits, report.Numbering = outline.Assign(root, p.cfg.Numbering.MaxDepth)
	}
	report.Edits = len(edits)
	applyEdits(nb, edits)

	if updateTOC && toc.HasTOC(nb) {
		// The mutated tree keeps the Assigned flags, which drive anchor
		// derivation for freshly numbered headings
		action, tocWarnings := p.toc.Update(nb, root)
		report.TOCAction = action
		report.Warnings = append(report.Warnings, tocWarnings...)
	}

	p.logWarnings(report.Warnings)
	return report, nil
}

// UpdateTOC writes the table of contents: an existing TOC cell is rewritten
// in place, otherwise a new one goes in above the first heading.
func (p *Processor) UpdateTOC(nb *notebook.Notebook) (*Report, error) {
	root, warnings := p.scan(nb)

	action, tocWarnings := p.toc.Update(nb, root)
	report := &Report{
		TOCAction: action,
		Warnings:  append(warnings, tocWarnings...),
	}

	p.logWarnings(report.Warnings)
	return report, nil
}

// Outline renders the heading tree as a text diagram labeled with the
// notebook's name.
func (p *Processor) Outline(nb *notebook.Notebook, label string) (string, []models.Warning) {
	root, warnings := p.scan(nb)
	p.logWarnings(warnings)
	return outline.RenderTree(root, label), warnings
}

// Extract converts the notebook into template sections.
func (p *Processor) Extract(nb *notebook.Notebook) ([]*template.Section, []models.Warning) {
	root, warnings := p.scan(nb)
	p.logWarnings(warnings)
	return template.Extract(root), warnings
}

// Compose rebuilds a notebook from a template and selection using the
// configured kernelspec.
func (p *Processor) Compose(sections []*template.Section, sel template.Selection) (*notebook.Notebook, []models.Warning, error) {
	nb, warnings, err := template.Compose(sections, sel, p.cfg.Compose)
	if err != nil {
		return nil, nil, err
	}
	p.logWarnings(warnings)
	return nb, warnings, nil
}

// scan parses the cell sequence into a section tree.
func (p *Processor) scan(nb *notebook.Notebook) (*outline.Node, []models.Warning) {
	segments, warnings := parse.ScanCells(nb.SourceCells())
	return outline.Build(segments), warnings
}

func (p *Processor) logWarnings(warnings []models.Warning) {
	for _, w := range warnings {
		p.log.Warnf("%s", w)
	}
}

// applyEdits rewrites single heading lines in place. Edits are grouped per
// cell so each cell's source is split and rejoined once.
func applyEdits(nb *notebook.Notebook, edits []models.LineEdit) {
	if len(edits) == 0 {
		return
	}

	byCell := map[int][]models.LineEdit{}
	for _, e := range edits {
		byCell[e.Cell] = append(byCell[e.Cell], e)
	}

	for cellIdx, cellEdits := range byCell {
		if cellIdx < 0 || cellIdx >= len(nb.Cells) {
			continue
		}
		cell := nb.Cells[cellIdx]
		lines := strings.Split(cell.Source(), "\n")
		for _, e := range cellEdits {
			if e.Line < 0 || e.Line >= len(lines) {
				continue
			}
			lines[e.Line] = e.Text
		}
		cell.SetSource(strings.Join(lines, "\n"))
	}
}
