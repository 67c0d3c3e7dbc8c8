package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/scholarfolio/folio/internal/bibtex"
	"github.com/scholarfolio/folio/internal/publication"
)

func exportFixture() exportSet {
	entries := []bibtex.RawEntry{
		bibtex.NewEntry("misc", "c", "title", "C"),
		bibtex.NewEntry("article", "a", "title", "A", "selected", "true"),
	}
	return exportSet{
		Pubs: []publication.Publication{
			{ID: "a", Title: "A", Year: 2025, BibTeX: "@article{a,\n  title = {A}\n}"},
			{ID: "b", Title: "B", Year: 2024},
			{ID: "c", Title: "C", Year: 2023, BibTeX: "@misc{c,\n  title = {C}\n}"},
		},
		Entries: entries,
	}
}

func TestWriteExport_BibTeX(t *testing.T) {
	var buf bytes.Buffer
	if err := writeExport(&buf, "bibtex", exportFixture()); err != nil {
		t.Fatalf("writeExport() error = %v", err)
	}

	// display order, internal fields dropped
	want := "@article{a,\n  title = {A}\n}\n\n@misc{c,\n  title = {C}\n}\n"
	if got := buf.String(); got != want {
		t.Errorf("writeExport(bibtex) = %q, want %q", got, want)
	}
}

func TestWriteExport_RepeatedKeys(t *testing.T) {
	first := bibtex.NewEntry("article", "doe2024", "title", "First")
	second := bibtex.NewEntry("misc", "doe2024", "title", "Second")
	exp := exportSet{
		Pubs: []publication.Publication{
			{ID: "doe2024", BibTeX: bibtex.Reconstruct(second, nil)},
			{ID: "doe2024", BibTeX: bibtex.Reconstruct(first, nil)},
		},
		Entries: []bibtex.RawEntry{first, second},
	}

	var buf bytes.Buffer
	if err := writeExport(&buf, "bibtex", exp); err != nil {
		t.Fatalf("writeExport() error = %v", err)
	}

	want := "@misc{doe2024,\n  title = {Second}\n}\n\n@article{doe2024,\n  title = {First}\n}\n"
	if got := buf.String(); got != want {
		t.Errorf("writeExport(bibtex) = %q, want %q", got, want)
	}
}

func TestWriteExport_JSONL(t *testing.T) {
	var buf bytes.Buffer
	if err := writeExport(&buf, "jsonl", exportFixture()); err != nil {
		t.Fatalf("writeExport() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("writeExport(jsonl) wrote %d lines, want 3", len(lines))
	}
	if !strings.HasPrefix(lines[1], `{"id":"b"`) {
		t.Errorf("line 2 = %s", lines[1])
	}
}

func TestWriteExport_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := writeExport(&buf, "bibtex", exportSet{}); err != nil {
		t.Fatalf("writeExport() error = %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("writeExport(nil) = %q, want empty", buf.String())
	}
}

func TestSelectByID(t *testing.T) {
	got, missing := selectByID(exportFixture().Pubs, []string{"c", " a ", "", "zzz"})

	ids := make([]string, len(got))
	for i, p := range got {
		ids[i] = p.ID
	}
	if diff := cmp.Diff([]string{"c", "a"}, ids); diff != "" {
		t.Errorf("selectByID() ids mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"zzz"}, missing); diff != "" {
		t.Errorf("selectByID() missing mismatch (-want +got):\n%s", diff)
	}
}
