package main

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/scholarfolio/folio/internal/bibtex"
)

func TestCheckEntries(t *testing.T) {
	entries := []bibtex.RawEntry{
		bibtex.NewEntry("article", "doe2024", "title", "A", "author", "Jane Doe", "year", "2024", "doi", "10.1/ABC"),
		bibtex.NewEntry("misc", "doe2024", "title", "B", "author", "Jane Doe", "year", "2024"),
		bibtex.NewEntry("inproceedings", "lee2025", "title", "C", "author", "Ann Lee", "year", "2025", "doi", "https://doi.org/10.1/abc"),
		bibtex.NewEntry("poster", "odd", "title", "{}", "year", "n.d."),
	}

	want := []CheckIssue{
		{Type: "duplicate_key", Key: "doe2024"},
		{Type: "duplicate_doi", Value: "10.1/abc", Keys: []string{"doe2024", "lee2025"}},
		{Type: "unknown_type", Key: "odd", Value: "poster"},
		{Type: "missing_title", Key: "odd"},
		{Type: "missing_author", Key: "odd"},
		{Type: "missing_year", Key: "odd", Value: "n.d."},
	}

	if diff := cmp.Diff(want, checkEntries(entries)); diff != "" {
		t.Errorf("checkEntries() mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckEntries_Clean(t *testing.T) {
	entries := []bibtex.RawEntry{
		bibtex.NewEntry("article", "a", "title", "A", "author", "X", "year", "2020"),
	}
	got := checkEntries(entries)
	if got == nil || len(got) != 0 {
		t.Errorf("checkEntries() = %#v, want empty non-nil slice", got)
	}
}
