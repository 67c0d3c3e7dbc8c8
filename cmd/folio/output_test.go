package main

import (
	"strings"
	"testing"

	"github.com/scholarfolio/folio/internal/publication"
	"github.com/scholarfolio/folio/internal/query"
)

func TestParseYearFlag(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"", 0, false},
		{"all", 0, false},
		{"ALL", 0, false},
		{"2025", 2025, false},
		{"twenty", 0, true},
		{"-1", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseYearFlag(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseYearFlag(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseYearFlag(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseTypeFlag(t *testing.T) {
	tests := []struct {
		input   string
		want    publication.Type
		wantErr bool
	}{
		{"", query.AllTypes, false},
		{"all", query.AllTypes, false},
		{"conference", publication.TypeConference, false},
		{"Book-Chapter", publication.TypeBookChapter, false},
		{"poster", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseTypeFlag(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseTypeFlag(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseTypeFlag(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatAuthors(t *testing.T) {
	authors := []publication.Author{
		{Name: "Jane Doe", IsHighlighted: true, IsCorresponding: true},
		{Name: "John Smith", IsCoAuthor: true},
		{Name: "Ann Lee"},
	}

	want := "Jane Doe*, John Smith#, Ann Lee"
	if got := formatAuthors(authors); got != want {
		t.Errorf("formatAuthors() = %q, want %q", got, want)
	}
	if got := formatAuthors(nil); got != "" {
		t.Errorf("formatAuthors(nil) = %q, want empty", got)
	}

	highlighted := highlightedAuthors(authors)
	if len(highlighted) != 1 || highlighted[0] != "Jane Doe" {
		t.Errorf("highlightedAuthors() = %v, want [Jane Doe]", highlighted)
	}
}

func TestVenueLabel(t *testing.T) {
	tests := []struct {
		pub  publication.Publication
		want string
	}{
		{publication.Publication{Conference: "Proceedings of EMNLP 2023", Year: 2023}, "EMNLP 2023"},
		{publication.Publication{Journal: "arXiv preprint arXiv:2401.00001", Year: 2024}, "arXiv"},
		{publication.Publication{Year: 2024}, "2024"},
	}

	for _, tt := range tests {
		t.Run(tt.pub.Venue(), func(t *testing.T) {
			if got := venueLabel(tt.pub); got != tt.want {
				t.Errorf("venueLabel(%q) = %q, want %q", tt.pub.Venue(), got, tt.want)
			}
		})
	}
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		input  string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly ten", 11, "exactly ten"},
		{"a longer title here", 10, "a longe..."},
		{"Ünïcödé title", 8, "Ünïcö..."},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := truncateString(tt.input, tt.maxLen); got != tt.want {
				t.Errorf("truncateString(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestWrapText(t *testing.T) {
	got := wrapText("one two three four five", 9, "  ")
	want := "one two\n  three\n  four five"
	if got != want {
		t.Errorf("wrapText() = %q, want %q", got, want)
	}

	if got := wrapText("short", 20, "  "); got != "short" {
		t.Errorf("wrapText(short) = %q", got)
	}
	for _, line := range strings.Split(wrapText(strings.Repeat("word ", 40), 30, ""), "\n") {
		if len(line) > 30 {
			t.Errorf("line %q longer than 30", line)
		}
	}
}
