package author

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/scholarfolio/folio/internal/publication"
)

func TestParseList(t *testing.T) {
	got := ParseList("Doe, Jane* and John Smith# and {van der Berg}, Anna", "Jane Doe (珍 杜)")
	want := []publication.Author{
		{Name: "Jane Doe", IsHighlighted: true, IsCorresponding: true},
		{Name: "John Smith", IsCoAuthor: true},
		{Name: "Anna van der Berg"},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseList() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseList_OwnerWithAlternateScript(t *testing.T) {
	got := ParseList("Doe, Jane*", "Jane Doe (珍 杜)")
	if len(got) != 1 {
		t.Fatalf("ParseList() returned %d authors, want 1", len(got))
	}
	a := got[0]
	if a.Name != "Jane Doe" || !a.IsHighlighted || !a.IsCorresponding || a.IsCoAuthor {
		t.Errorf("ParseList() = %+v, want highlighted corresponding Jane Doe", a)
	}
}

func TestParseList_Empty(t *testing.T) {
	for _, raw := range []string{"", "   "} {
		got := ParseList(raw, "Jane Doe")
		if got == nil || len(got) != 0 {
			t.Errorf("ParseList(%q) = %#v, want empty non-nil slice", raw, got)
		}
	}
}

func TestParseList_DropsEmptyNames(t *testing.T) {
	got := ParseList("Jane Doe and {} and *", "")
	if len(got) != 1 || got[0].Name != "Jane Doe" {
		t.Errorf("ParseList() = %+v, want only Jane Doe", got)
	}
}

func TestParseList_WhitespaceAroundSeparator(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"spaces", "Jane Doe and John Smith"},
		{"newline after", "Jane Doe and\nJohn Smith"},
		{"newline before", "Jane Doe\nand John Smith"},
		{"tabs", "Jane Doe\tand\tJohn Smith"},
		{"crlf wrap", "Jane Doe and\r\n  John Smith"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseList(tt.raw, "")
			if len(got) != 2 || got[0].Name != "Jane Doe" || got[1].Name != "John Smith" {
				t.Errorf("ParseList(%q) = %+v, want Jane Doe and John Smith", tt.raw, got)
			}
		})
	}
}

func TestParseList_AndInsideNameDoesNotSplit(t *testing.T) {
	got := ParseList("Alexander Sandberg and Ann Lee", "")
	if len(got) != 2 || got[0].Name != "Alexander Sandberg" {
		t.Errorf("ParseList() = %+v", got)
	}
}

func TestParseList_SeparatorIsCaseSensitive(t *testing.T) {
	got := ParseList("Jane Doe AND John Smith", "")
	if len(got) != 1 {
		t.Errorf("ParseList() split on uppercase AND: %+v", got)
	}
}

func TestParseList_OnlyFirstCommaIsUsed(t *testing.T) {
	got := ParseList("Doe, Jane, Jr.", "")
	if len(got) != 1 || got[0].Name != "Jane Doe" {
		t.Errorf("ParseList() = %+v, want Jane Doe", got)
	}
}

func TestParseList_MarkersNeverInName(t *testing.T) {
	segments := []string{"*Doe, Jane", "Jane# Doe*", "#*Smith", "Wu*#, Li", "A*B#C"}
	for _, s := range segments {
		got := ParseList(s, "")
		if len(got) != 1 {
			t.Fatalf("ParseList(%q) returned %d authors, want 1", s, len(got))
		}
		a := got[0]
		if strings.ContainsAny(a.Name, "*#") {
			t.Errorf("ParseList(%q) name %q still has a marker", s, a.Name)
		}
		if a.IsCorresponding != strings.Contains(s, "*") {
			t.Errorf("ParseList(%q) IsCorresponding = %v", s, a.IsCorresponding)
		}
		if a.IsCoAuthor != strings.Contains(s, "#") {
			t.Errorf("ParseList(%q) IsCoAuthor = %v", s, a.IsCoAuthor)
		}
	}
}

func TestOwnerMatcher(t *testing.T) {
	tests := []struct {
		name   string
		owner  string
		author string
		want   bool
	}{
		{"exact", "Jane Doe", "Jane Doe", true},
		{"case-insensitive", "jane doe", "JANE DOE", true},
		{"parenthetical ignored", "Jane Doe (珍 杜)", "Jane Doe", true},
		{"reversed order", "Jane Doe", "Doe Jane", true},
		{"middle initial", "Jane Doe", "Jane Q. Doe", true},
		{"tokens out of order three names", "Jane Q Doe", "Doe Jane Q", true},
		{"different person", "Jane Doe", "John Smith", false},
		{"shares last name only", "Jane Doe", "John Doe", false},
		{"substring false positive", "Li Wu", "William Wuster", true},
		{"diacritics differ", "José Díaz", "Jose Diaz", false},
		{"empty owner", "", "Jane Doe", false},
		{"only parenthetical owner", "(珍 杜)", "Jane Doe", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewOwnerMatcher(tt.owner).Matches(tt.author)
			if got != tt.want {
				t.Errorf("NewOwnerMatcher(%q).Matches(%q) = %v, want %v", tt.owner, tt.author, got, tt.want)
			}
		})
	}
}
