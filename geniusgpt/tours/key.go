package tours

import "strings"

// NormalizeKey canonicalizes a destination component for dedupe matching:
// lower-cased, trimmed, inner whitespace collapsed to single spaces.
// "  New   York " and "new york" resolve to the same cache entry.
func NormalizeKey(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
