package template

import "regexp"

// placeholderRegex matches {{name}} variable tokens in section content.
// Names are Go-style identifiers and are used verbatim as lookup keys.
var placeholderRegex = regexp.MustCompile(`\{\{([A-Za-z_][A-Za-z0-9_]*)\}\}`)

// Entry is one decision about a template section: whether it appears in the
// composed notebook, and the values for its placeholders. Excluding a
// section drops its whole subtree regardless of the children's own entries.
type Entry struct {
	Included  bool              `json:"included"`
	Variables map[string]string `json:"variables"`
}

// Selection maps section ids to entries. Users edit this file by hand, so
// the on-disk form tolerates comments and trailing commas.
type Selection map[string]Entry

// Placeholders returns the distinct {{name}} tokens in this section's own
// content, in first-appearance order. Children report their own.
func (s *Section) Placeholders() []string {
	var names []string
	seen := map[string]bool{}
	for _, block := range s.Content {
		for _, m := range placeholderRegex.FindAllStringSubmatch(block.Source, -1) {
			if !seen[m[1]] {
				seen[m[1]] = true
				names = append(names, m[1])
			}
		}
	}
	return names
}

// Scaffold builds the default selection for a template: every section
// included, every placeholder present with an empty value ready to fill in.
func Scaffold(sections []*Section) Selection {
	sel := Selection{}
	var walk func([]*Section)
	walk = func(ss []*Section) {
		for _, s := range ss {
			vars := map[string]string{}
			for _, name := range s.Placeholders() {
				vars[name] = ""
			}
			sel[s.ID] = Entry{Included: true, Variables: vars}
			walk(s.Children)
		}
	}
	walk(sections)
	return sel
}
