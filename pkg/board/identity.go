package board

import (
	"strings"

	"golang.org/x/text/cases"
)

// Key returns the normalized identity key for a display name: trimmed and
// Unicode case-folded. Keys are for lookups and comparisons only; display
// always uses the original casing.
func Key(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

// SameName reports whether two display names share the same identity key.
func SameName(a, b string) bool {
	return Key(a) == Key(b)
}
