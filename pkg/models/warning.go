package models

import "fmt"

// WarningKind classifies a non-fatal finding surfaced during a transformation
type WarningKind string

const (
	WarnMalformedHeading      WarningKind = "malformed_heading"      // Heading-looking line demoted to plain content
	WarnMissingTOCMarker      WarningKind = "missing_toc_marker"     // No TOC marker and no heading; TOC prepended
	WarnUnresolvedPlaceholder WarningKind = "unresolved_placeholder" // {{name}} left verbatim
)

// String implements fmt.Stringer for logging
func (k WarningKind) String() string {
	if k == "" {
		return "unset"
	}
	return string(k)
}

// IsValid returns true if the kind is a known operational value
func (k WarningKind) IsValid() bool {
	switch k {
	case WarnMalformedHeading, WarnMissingTOCMarker, WarnUnresolvedPlaceholder:
		return true
	}
	return false
}

// Warning is a non-fatal finding; the run continues and partial results stay usable
type Warning struct {
	Kind    WarningKind
	Message string
}

// String implements fmt.Stringer
func (w Warning) String() string {
	return fmt.Sprintf("[%s] %s", w.Kind, w.Message)
}

// Warningf builds a Warning with a formatted message
func Warningf(kind WarningKind, format string, args ...interface{}) Warning {
	return Warning{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
