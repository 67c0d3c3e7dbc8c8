package author

import (
	"regexp"
	"strings"
)

// parentheticalRegex matches an alternate-script name such as "(珍 杜)".
var parentheticalRegex = regexp.MustCompile(`\([^)]*\)`)

// OwnerMatcher decides whether an author name refers to the site owner.
type OwnerMatcher struct {
	full     string   // lowercase owner name without parentheticals
	reversed string   // "last first" for two-token names, else ""
	tokens   []string // whitespace tokens of full
}

// NewOwnerMatcher prepares the owner's display name for matching.
// Parenthesized portions are ignored: "Jane Doe (珍 杜)" matches as "jane doe".
func NewOwnerMatcher(owner string) OwnerMatcher {
	cleaned := parentheticalRegex.ReplaceAllString(strings.ToLower(owner), "")
	tokens := strings.Fields(cleaned)

	m := OwnerMatcher{
		full:   strings.Join(tokens, " "),
		tokens: tokens,
	}
	if len(tokens) == 2 {
		m.reversed = tokens[1] + " " + tokens[0]
	}
	return m
}

// Matches reports whether name refers to the owner.
//
// Matching rules, first success wins:
//   - the owner name is a case-insensitive substring of name
//   - for two-token owners, the reversed "Last First" order is a substring
//   - every owner token is individually a substring of name
//
// The last rule tolerates middle initials and punctuation drift at the cost
// of false positives for short names.
func (m OwnerMatcher) Matches(name string) bool {
	if m.full == "" {
		return false
	}

	lower := strings.ToLower(name)
	if strings.Contains(lower, m.full) {
		return true
	}
	if m.reversed != "" && strings.Contains(lower, m.reversed) {
		return true
	}
	for _, token := range m.tokens {
		if !strings.Contains(lower, token) {
			return false
		}
	}
	return true
}
