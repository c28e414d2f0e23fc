package utils

import "strings"

// CleanupString collapses runs of whitespace and trims the result; event
// titles and venue names arrive from several write paths with inconsistent
// spacing.
func CleanupString(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
