package bibtex

import (
	"strings"
	"testing"
)

var internalFields = []string{"selected", "preview", "description", "keywords", "code"}

func TestReconstruct(t *testing.T) {
	entry := NewEntry("article", "doe2024",
		"title", "{Deep} Learning",
		"author", "Doe, Jane* and Smith#, John",
		"selected", "true",
		"keywords", "a, b",
		"year", "2024",
	)

	got := Reconstruct(entry, internalFields)
	want := "@article{doe2024,\n" +
		"  title = {{Deep} Learning},\n" +
		"  author = {Doe, Jane and Smith, John},\n" +
		"  year = {2024}\n" +
		"}"

	if got != want {
		t.Errorf("Reconstruct() =\n%s\nwant\n%s", got, want)
	}
}

func TestReconstruct_NoFields(t *testing.T) {
	got := Reconstruct(NewEntry("misc", "empty"), nil)
	if want := "@misc{empty\n}"; got != want {
		t.Errorf("Reconstruct() = %q, want %q", got, want)
	}
}

func TestReconstruct_ExclusionIsCaseInsensitive(t *testing.T) {
	entry := NewEntry("misc", "k", "selected", "yes", "title", "T")
	got := Reconstruct(entry, []string{"SELECTED"})
	if strings.Contains(got, "selected") {
		t.Errorf("Reconstruct() kept excluded field:\n%s", got)
	}
}

func TestReconstruct_MarkersOnlyStrippedFromAuthor(t *testing.T) {
	entry := NewEntry("misc", "k", "author", "A* and B#", "note", "C# and D*")
	got := Reconstruct(entry, nil)
	if !strings.Contains(got, "author = {A and B}") {
		t.Errorf("author markers not stripped:\n%s", got)
	}
	if !strings.Contains(got, "note = {C# and D*}") {
		t.Errorf("non-author field was modified:\n%s", got)
	}
}

func TestReconstruct_NeverEmitsExcludedFields(t *testing.T) {
	entries := []RawEntry{
		NewEntry("article", "a", "title", "X", "code", "https://github.com/x", "preview", "x.png"),
		NewEntry("inproceedings", "b", "description", "d", "keywords", "k", "selected", "true"),
		NewEntry("misc", "c", "note", "n", "doi", "10.1/x"),
	}
	exclusions := [][]string{
		internalFields,
		{"doi"},
		{"title", "note"},
		nil,
	}

	for _, e := range entries {
		for _, exclude := range exclusions {
			out := Reconstruct(e, exclude)
			for _, line := range strings.Split(out, "\n") {
				line = strings.TrimSpace(line)
				for _, name := range exclude {
					if strings.HasPrefix(line, name+" =") {
						t.Errorf("Reconstruct(%s, %v) emitted excluded line %q", e.Key, exclude, line)
					}
				}
			}
		}
	}
}

func TestReconstruct_RoundTripsThroughParse(t *testing.T) {
	entry := NewEntry("article", "rt", "title", "{Deep} Learning", "year", "2024")
	parsed := Parse(Reconstruct(entry, nil), nil)
	if len(parsed) != 1 {
		t.Fatalf("Parse(Reconstruct()) returned %d entries, want 1", len(parsed))
	}
	if parsed[0].Value("title") != "{Deep} Learning" || parsed[0].Value("year") != "2024" {
		t.Errorf("round trip changed fields: %+v", parsed[0].Fields)
	}
}

func TestReconstructAll(t *testing.T) {
	got := ReconstructAll([]RawEntry{NewEntry("misc", "a"), NewEntry("misc", "b")}, nil)
	if want := "@misc{a\n}\n\n@misc{b\n}"; got != want {
		t.Errorf("ReconstructAll() = %q, want %q", got, want)
	}
}
