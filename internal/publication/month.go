package publication

import (
	"strconv"
	"strings"
	"unicode"
)

// monthNames maps lowercase month names and abbreviations to month numbers.
var monthNames = map[string]int{
	"jan": 1, "january": 1,
	"feb": 2, "february": 2,
	"mar": 3, "march": 3,
	"apr": 4, "april": 4,
	"may": 5,
	"jun": 6, "june": 6,
	"jul": 7, "july": 7,
	"aug": 8, "august": 8,
	"sep": 9, "september": 9, "sept": 9,
	"oct": 10, "october": 10,
	"nov": 11, "november": 11,
	"dec": 12, "december": 12,
}

// MonthName looks up a month name or abbreviation (case-insensitive).
func MonthName(s string) (int, bool) {
	m, ok := monthNames[strings.ToLower(s)]
	return m, ok
}

// MonthNumber resolves a month field to a number. Names are tried first,
// then a leading integer ("3", "03", "3rd"). Zero is not a month.
func MonthNumber(s string) (int, bool) {
	if m, ok := MonthName(s); ok {
		return m, true
	}
	if n, ok := LeadingInt(s); ok && n != 0 {
		return n, true
	}
	return 0, false
}

// LeadingInt parses the integer prefix of s after leading whitespace,
// ignoring anything that follows the digits. It reports false when s has
// no digits at that position.
func LeadingInt(s string) (int, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
