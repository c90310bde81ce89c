package sanitizer

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// NormalizeWeekday title-cases a day name, so "monday" becomes "Monday".
func NormalizeWeekday(day string) string {
	day = strings.ToLower(strings.TrimSpace(day))
	r, size := utf8.DecodeRuneInString(day)
	if size == 0 {
		return ""
	}
	return string(unicode.ToTitle(r)) + day[size:]
}

// NormalizeClockTime zero-pads a single-digit hour ("9:00" to "09:00") so
// that string order matches chronological order.
func NormalizeClockTime(t string) string {
	t = strings.TrimSpace(t)
	if len(t) == 4 && t[1] == ':' && t[0] >= '0' && t[0] <= '9' {
		return "0" + t
	}
	return t
}
