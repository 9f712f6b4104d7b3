package utils

import (
	"context"
	"errors"
	"os"
)

// --- Sentinel Errors for Categorization ---
var (
	ErrMalformedHeading        = errors.New("malformed heading line")           // Heading-looking line that does not parse; demoted to content
	ErrStructuralInconsistency = errors.New("template/selection inconsistency") // Wraps the offending section id
	ErrMissingTOCMarker        = errors.New("no TOC marker found")              // Update requested but no marker and no heading to anchor on
	ErrUnresolvedPlaceholder   = errors.New("unresolved placeholder")           // {{name}} with no variable value
	ErrNotebookFormat          = errors.New("notebook format error")            // Wraps JSON/container errors
	ErrTemplateFormat          = errors.New("template format error")
	ErrSelectionFormat         = errors.New("selection format error")
	ErrFilesystem              = errors.New("filesystem error") // Wraps os errors
	ErrConfigValidation        = errors.New("configuration validation error")
)

// CategorizeError maps an error to a predefined category string for logging and exit messages.
func CategorizeError(err error) string {
	if err == nil {
		return "None"
	}

	// Check against sentinel errors first
	switch {
	case errors.Is(err, ErrMalformedHeading):
		return "Heading_Malformed"
	case errors.Is(err, ErrStructuralInconsistency):
		return "Structure_Inconsistency"
	case errors.Is(err, ErrMissingTOCMarker):
		return "TOC_MissingMarker"
	case errors.Is(err, ErrUnresolvedPlaceholder):
		return "Compose_UnresolvedPlaceholder"
	case errors.Is(err, ErrNotebookFormat):
		return "Format_Notebook"
	case errors.Is(err, ErrTemplateFormat):
		return "Format_Template"
	case errors.Is(err, ErrSelectionFormat):
		return "Format_Selection"
	case errors.Is(err, ErrFilesystem):
		if errors.Is(err, os.ErrPermission) {
			return "Filesystem_Permission"
		}
		if errors.Is(err, os.ErrNotExist) {
			return "Filesystem_NotExist"
		}
		if errors.Is(err, os.ErrExist) {
			return "Filesystem_Exist"
		}
		return "Filesystem_Other"
	case errors.Is(err, ErrConfigValidation):
		return "Config_Validation"
	}

	// Context errors surface from cancelled batch runs
	if errors.Is(err, context.Canceled) {
		return "System_ContextCanceled"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "System_ContextDeadlineExceeded"
	}

	return "Unknown"
}
