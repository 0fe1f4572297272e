package search

import "strings"

// Normalize turns a raw query into lower-cased search terms.
// Whitespace-only input yields no terms.
func Normalize(raw string) []string {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(raw)))
	if len(fields) == 0 {
		return nil
	}
	return fields
}
