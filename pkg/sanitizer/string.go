package sanitizer

import (
	"strings"
	"unicode"
)

// TrimAndNormalize drops control characters and collapses whitespace runs to
// a single space.
func TrimAndNormalize(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && !unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

func NormalizePurpose(purpose string) string {
	return TrimAndNormalize(purpose)
}

// NormalizeIdentifier is used for room numbers and block names, which are
// compared exactly: no inner whitespace and upper case.
func NormalizeIdentifier(id string) string {
	return strings.ToUpper(strings.Join(strings.Fields(id), ""))
}
