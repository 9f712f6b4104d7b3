package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumber_String(t *testing.T) {
	tests := []struct {
		number Number
		want   string
	}{
		{nil, ""},
		{Number{}, ""},
		{Number{1}, "1"},
		{Number{1, 2}, "1.2"},
		{Number{10, 2, 31}, "10.2.31"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.number.String())
	}
}

func TestNumber_Last(t *testing.T) {
	assert.Equal(t, 0, Number(nil).Last())
	assert.Equal(t, 3, Number{1, 2, 3}.Last())
	assert.Equal(t, 7, Number{7}.Last())
}

func TestNumber_Clone(t *testing.T) {
	orig := Number{1, 2}
	clone := orig.Clone()
	clone = append(clone, 3)
	_ = clone

	assert.Equal(t, Number{1, 2}, orig, "clone append must not alias the original")
	assert.Nil(t, Number(nil).Clone())
}

func TestHeading_RenderedTitle(t *testing.T) {
	tests := []struct {
		name    string
		heading Heading
		want    string
	}{
		{"Unnumbered", Heading{Level: 1, Title: "Intro"}, "Intro"},
		{"Numbered", Heading{Level: 2, Number: Number{1, 2}, Title: "Methods"}, "1.2 Methods"},
		{"NumberedEmptyTitle", Heading{Level: 2, Number: Number{3}}, "3"},
		{"UnnumberedEmptyTitle", Heading{Level: 2}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.heading.RenderedTitle())
		})
	}
}

func TestHeading_Numbered(t *testing.T) {
	assert.False(t, Heading{Title: "x"}.Numbered())
	assert.True(t, Heading{Number: Number{1}}.Numbered())
}

func TestSegment_IsHeading(t *testing.T) {
	h := Segment{Heading: &Heading{Level: 1, Title: "A"}}
	c := Segment{Block: &Block{Type: "markdown", Source: "text"}}

	assert.True(t, h.IsHeading())
	assert.False(t, c.IsHeading())
}

func TestWarningKind_String(t *testing.T) {
	tests := []struct {
		kind WarningKind
		want string
	}{
		{WarningKind(""), "unset"},
		{WarnMalformedHeading, "malformed_heading"},
		{WarnMissingTOCMarker, "missing_toc_marker"},
		{WarnUnresolvedPlaceholder, "unresolved_placeholder"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.kind.String())
	}
}

func TestWarningKind_IsValid(t *testing.T) {
	tests := []struct {
		kind WarningKind
		want bool
	}{
		{WarnMalformedHeading, true},
		{WarnMissingTOCMarker, true},
		{WarnUnresolvedPlaceholder, true},
		{WarningKind(""), false},
		{WarningKind("arbitrary"), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.kind.IsValid(), "WarningKind(%q).IsValid()", string(tt.kind))
	}
}

func TestWarningf(t *testing.T) {
	w := Warningf(WarnUnresolvedPlaceholder, "placeholder {{%s}} in section %q", "name", "intro")

	assert.Equal(t, WarnUnresolvedPlaceholder, w.Kind)
	assert.Equal(t, `placeholder {{name}} in section "intro"`, w.Message)
	assert.Equal(t, `[unresolved_placeholder] placeholder {{name}} in section "intro"`, w.String())
}
