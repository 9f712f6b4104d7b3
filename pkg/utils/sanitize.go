package utils

import (
	"regexp"
	"strings"
)

// --- Section ID Sanitization ---
var invalidIDChars = regexp.MustCompile(`[^a-z0-9._-]`) // Characters outside the id alphabet
var consecutiveHyphens = regexp.MustCompile(`-+`)       // Pattern to collapse hyphen runs

const maxIDLength = 64 // Max length for sanitized section ids

// SanitizeID cleans a string to be safe for use as a template section id
func SanitizeID(name string) string {
	sanitized := strings.ToLower(name)
	sanitized = invalidIDChars.ReplaceAllString(sanitized, "-") // Replace invalid chars with hyphen
	sanitized = consecutiveHyphens.ReplaceAllString(sanitized, "-")
	sanitized = strings.Trim(sanitized, "- ")

	// Limit id length (byte truncation is sufficient here)
	if len(sanitized) > maxIDLength {
		sanitized = sanitized[:maxIDLength]
		sanitized = strings.Trim(sanitized, "- ")
	}

	if sanitized == "" { // Headings can be all punctuation or empty
		sanitized = "section"
	}
	return sanitized
}
