package template

import (
	"fmt"
	"sort"
	"strings"

	"nboutline/pkg/config"
	"nboutline/pkg/models"
	"nboutline/pkg/notebook"
	"nboutline/pkg/utils"
)

// Compose rebuilds a notebook from a template and a selection. Excluded
// sections are dropped with their whole subtree; every {{name}} in included
// content is replaced with its variable value. Names with no value stay
// verbatim and are reported once per section, so a partially filled template
// still composes into something inspectable.
func Compose(sections []*Section, sel Selection, cfg config.ComposeConfig) (*notebook.Notebook, []models.Warning, error) {
	if err := checkSelectionIDs(sections, sel); err != nil {
		return nil, nil, err
	}

	nb := notebook.New(cfg.KernelName, cfg.DisplayName, cfg.Language)
	var warnings []models.Warning
	if err := composeSections(nb, sections, sel, &warnings); err != nil {
		return nil, nil, err
	}
	return nb, warnings, nil
}

func composeSections(nb *notebook.Notebook, sections []*Section, sel Selection, warnings *[]models.Warning) error {
	for _, s := range sections {
		entry, ok := sel[s.ID]
		if !ok {
			return fmt.Errorf("%w: no selection entry for section %q", utils.ErrStructuralInconsistency, s.ID)
		}
		if !entry.Included {
			continue // subtree goes with it; descendant entries are not consulted
		}

		if s.Level > 0 {
			heading := strings.Repeat("#", s.Level) + " " + s.Title
			nb.Cells = append(nb.Cells, notebook.NewMarkdownCell(heading))
		}

		reported := map[string]bool{}
		for _, block := range s.Content {
			source := substitute(block.Source, s.ID, entry.Variables, reported, warnings)
			nb.Cells = append(nb.Cells, notebook.NewCell(block.Type, source))
		}

		if err := composeSections(nb, s.Children, sel, warnings); err != nil {
			return err
		}
	}
	return nil
}

// substitute replaces {{name}} tokens from vars. Unknown names stay exactly
// as written; each is reported once per section.
func substitute(source, id string, vars map[string]string, reported map[string]bool, warnings *[]models.Warning) string {
	return placeholderRegex.ReplaceAllStringFunc(source, func(match string) string {
		name := match[2 : len(match)-2]
		if value, ok := vars[name]; ok {
			return value
		}
		if !reported[name] {
			reported[name] = true
			*warnings = append(*warnings, models.Warningf(models.WarnUnresolvedPlaceholder,
				"section %q: {{%s}} has no value, left verbatim", id, name))
		}
		return match
	})
}

// ValidateSelection cross-checks a selection against a template without
// composing: every selection id must name a template section, and every
// section reachable through included parents must carry an entry.
func ValidateSelection(sections []*Section, sel Selection) error {
	if err := checkSelectionIDs(sections, sel); err != nil {
		return err
	}
	return checkEntries(sections, sel)
}

// checkSelectionIDs rejects selection ids that name no template section
func checkSelectionIDs(sections []*Section, sel Selection) error {
	known := map[string]bool{}
	var index func([]*Section)
	index = func(ss []*Section) {
		for _, s := range ss {
			known[s.ID] = true
			index(s.Children)
		}
	}
	index(sections)

	var unknown []string
	for id := range sel {
		if !known[id] {
			unknown = append(unknown, id)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("%w: selection references unknown section id(s): %s",
			utils.ErrStructuralInconsistency, strings.Join(unknown, ", "))
	}
	return nil
}

// checkEntries walks included subtrees only, so sections pruned by an
// excluded ancestor may miss their entry without failing validation.
func checkEntries(sections []*Section, sel Selection) error {
	for _, s := range sections {
		entry, ok := sel[s.ID]
		if !ok {
			return fmt.Errorf("%w: no selection entry for section %q", utils.ErrStructuralInconsistency, s.ID)
		}
		if !entry.Included {
			continue
		}
		if err := checkEntries(s.Children, sel); err != nil {
			return err
		}
	}
	return nil
}
