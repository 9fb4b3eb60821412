// Package strings provides string and slice helpers
package strings

import (
	std "strings"

	"golang.org/x/text/unicode/norm"
)

// IfEmpty returns def if in is empty, otherwise returns in
func IfEmpty[T any](in []T, def []T) []T {
	if len(in) == 0 {
		return def
	}
	return in
}

// MustPrefix normalizes and asserts a root path like /api or /docs
// ensures a single leading slash and no trailing slash
// panics if the input is empty after trimming
func MustPrefix(s string) string {
	s = std.TrimSpace(s)
	s = "/" + std.Trim(s, " /")
	if s == "/" {
		panic("root path is required")
	}
	return s
}

// Clean trims surrounding whitespace and applies Unicode NFC so visually
// identical input compares and stores identically
func Clean(s string) string {
	return norm.NFC.String(std.TrimSpace(s))
}

// IsBlank reports whether s has no non whitespace content
func IsBlank(s string) bool { return std.TrimSpace(s) == "" }
