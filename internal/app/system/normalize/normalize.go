// internal/app/system/normalize/normalize.go
package normalize

import "strings"

// Email lowercases and trims an email address for storage and lookups.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Username trims a username. Case is preserved for display; the folded
// username_ci field handles case-insensitive uniqueness and search.
func Username(s string) string {
	return strings.TrimSpace(s)
}

// Name collapses internal runs of whitespace and trims the result.
func Name(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
