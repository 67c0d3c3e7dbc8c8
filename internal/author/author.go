// Package author parses BibTeX author lists into display entries and
// detects the site owner among them.
package author

import (
	"regexp"
	"strings"

	"github.com/scholarfolio/folio/internal/bibtex"
	"github.com/scholarfolio/folio/internal/publication"
)

// separatorRegex matches the "and" delimiter between authors. Either side
// may be any single whitespace character, so a tab or newline next to
// "and" splits the same as a space. Uppercase "AND" does not split.
var separatorRegex = regexp.MustCompile(`\sand\s`)

var markerStripper = strings.NewReplacer("*", "", "#", "")

// ParseList splits a raw author field into authors in source order.
//
// Supported segment formats:
//   - "Jane Doe"    → "Jane Doe"
//   - "Doe, Jane"   → "Jane Doe" (only the first comma is used)
//   - "Doe, Jane*"  → corresponding author
//   - "Jane Doe#"   → co-first author
//
// Segments that normalize to an empty name are dropped. owner may be empty,
// in which case nobody is highlighted.
func ParseList(raw, owner string) []publication.Author {
	if strings.TrimSpace(raw) == "" {
		return []publication.Author{}
	}

	matcher := NewOwnerMatcher(owner)
	segments := separatorRegex.Split(raw, -1)
	authors := make([]publication.Author, 0, len(segments))

	for _, segment := range segments {
		a, ok := parseSegment(segment, matcher)
		if !ok {
			continue
		}
		authors = append(authors, a)
	}
	return authors
}

func parseSegment(segment string, matcher OwnerMatcher) (publication.Author, bool) {
	name := strings.TrimSpace(segment)

	isCorresponding := strings.Contains(name, "*")
	isCoAuthor := strings.Contains(name, "#")
	name = markerStripper.Replace(name)

	if strings.Contains(name, ",") {
		parts := strings.Split(name, ",")
		last := strings.TrimSpace(parts[0])
		first := strings.TrimSpace(parts[1])
		name = first + " " + last
	}

	name = bibtex.Normalize(name)
	if name == "" {
		return publication.Author{}, false
	}

	return publication.Author{
		Name:            name,
		IsHighlighted:   matcher.Matches(name),
		IsCorresponding: isCorresponding,
		IsCoAuthor:      isCoAuthor,
	}, true
}
