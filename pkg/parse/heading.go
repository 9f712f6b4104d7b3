package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"nboutline/pkg/models"
	"nboutline/pkg/utils"
)

// headingLineRegex matches ATX heading lines. Level comes from marker count
// alone; no artificial cap on depth.
var headingLineRegex = regexp.MustCompile(`^(#+)\s+(.*)$`)

// numberPrefixRegex matches a dotted-integer prefix at the start of heading
// text: one or more integers joined by '.', an optional trailing '.', then
// whitespace and the title. A bare number with nothing after it is a title.
var numberPrefixRegex = regexp.MustCompile(`^(\d+(?:\.\d+)*)\.?\s+(.*)$`)

// ParseHeading reports whether line is a markdown heading and, if so, returns
// its parsed form. Pre-numbered headings get Number filled and the prefix
// stripped from Title.
func ParseHeading(line string) (models.Heading, bool) {
	m := headingLineRegex.FindStringSubmatch(line)
	if m == nil {
		return models.Heading{}, false
	}

	h := models.Heading{
		Level: len(m[1]),
		Title: m[2],
		Raw:   line,
	}

	if nm := numberPrefixRegex.FindStringSubmatch(h.Title); nm != nil {
		if num, err := ParseNumber(nm[1]); err == nil {
			h.Number = num
			h.Title = nm[2]
		}
	}

	return h, true
}

// LooksLikeHeading reports whether a non-heading line still starts with a
// marker character, e.g. "#no-space" or a bare "##".
func LooksLikeHeading(line string) bool {
	return strings.HasPrefix(line, "#")
}

// ParseNumber parses a dotted-integer string ("1.2.3") into a Number.
func ParseNumber(s string) (models.Number, error) {
	parts := strings.Split(s, ".")
	num := make(models.Number, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("%w: bad number component %q in %q", utils.ErrMalformedHeading, p, s)
		}
		num = append(num, v)
	}
	return num, nil
}

// RenderLine renders a heading back into its markdown line form: markers,
// number prefix when present, then the title.
func RenderLine(h models.Heading) string {
	return strings.Repeat("#", h.Level) + " " + h.RenderedTitle()
}
