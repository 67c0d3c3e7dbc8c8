package bibtex

import (
	"fmt"
	"strings"
)

var markerStripper = strings.NewReplacer("*", "", "#", "")

// Reconstruct renders an entry back to BibTeX, leaving out the excluded
// fields (matched case-insensitively). Fields keep their source order and
// the author field loses its * and # markers but is otherwise untouched.
func Reconstruct(entry RawEntry, exclude []string) string {
	skip := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		skip[strings.ToLower(name)] = true
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("@%s{%s,\n", entry.Type, entry.Key))

	for _, f := range entry.Fields {
		name := strings.ToLower(f.Name)
		if skip[name] {
			continue
		}
		value := f.Value
		if name == "author" {
			value = markerStripper.Replace(value)
		}
		b.WriteString(fmt.Sprintf("  %s = {%s},\n", f.Name, value))
	}

	out := b.String()
	out = out[:len(out)-2] + "\n}"
	return out
}

// ReconstructAll renders entries separated by blank lines.
func ReconstructAll(entries []RawEntry, exclude []string) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, Reconstruct(e, exclude))
	}
	return strings.Join(parts, "\n\n")
}
