package textutil

import (
	"strings"

	"golang.org/x/text/cases"
)

// Fold returns s trimmed and case-folded, suitable as a comparison key.
func Fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// EqualFold reports whether a and b are equal after trimming and Unicode
// case folding.
func EqualFold(a, b string) bool {
	return Fold(a) == Fold(b)
}

// Matcher returns a predicate that compares its argument against want. The
// folded form of want is computed once.
func Matcher(want string) func(string) bool {
	key := Fold(want)
	return func(s string) bool {
		return Fold(s) == key
	}
}
