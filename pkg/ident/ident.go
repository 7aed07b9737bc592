// Package ident provides text-utility helpers for working with Scheme
// identifier text: lowercase normalization, case-insensitive comparison,
// and a small case-insensitive map used by the built-in procedure and
// module registries.
//
// Symbol values are lowercase-normalized when they are created, so two
// symbols differing only in case are the same data, and the names the
// runtime itself looks up by spelling — special-form keywords, variable
// and builtin procedure names, module names passed to `include` — are
// matched case-insensitively, the way the analyzer's special-form
// dispatch and the module loader's bootstrap table do it.
package ident

import "strings"

// Normalize returns the lowercase form of s. It is idempotent:
// Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	return strings.ToLower(s)
}

// Equal reports whether a and b are the same identifier, ignoring case.
func Equal(a, b string) bool {
	return strings.EqualFold(a, b)
}

// Compare orders a and b case-insensitively. It returns a negative number
// if a sorts before b, zero if they are equal ignoring case, and a
// positive number if a sorts after b.
func Compare(a, b string) int {
	return strings.Compare(Normalize(a), Normalize(b))
}

// Contains reports whether search appears in slice, ignoring case.
func Contains(slice []string, search string) bool {
	return Index(slice, search) >= 0
}

// Index returns the index of the first element of slice equal to search
// ignoring case, or -1 if none matches.
func Index(slice []string, search string) int {
	for i, s := range slice {
		if Equal(s, search) {
			return i
		}
	}
	return -1
}

// IsKeyword reports whether s matches one of keywords, ignoring case.
func IsKeyword(s string, keywords ...string) bool {
	return Contains(keywords, s)
}
