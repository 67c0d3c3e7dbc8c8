package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/scholarfolio/folio/internal/publication"
	"github.com/scholarfolio/folio/internal/query"
	"github.com/scholarfolio/folio/internal/venue"
)

const (
	ListTitleMaxLen = 70 // Used in list output
	TextWrapWidth   = 68 // Wrap width for detail views
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// parseYearFlag accepts a year or "all" (also the empty string).
func parseYearFlag(s string) (int, error) {
	if s == "" || strings.EqualFold(s, "all") {
		return 0, nil
	}
	year, err := strconv.Atoi(s)
	if err != nil || year < 1 {
		return 0, fmt.Errorf("invalid year %q (use a year or \"all\")", s)
	}
	return year, nil
}

// parseTypeFlag accepts a publication type or "all" (also the empty string).
func parseTypeFlag(s string) (publication.Type, error) {
	if s == "" || strings.EqualFold(s, string(query.AllTypes)) {
		return query.AllTypes, nil
	}
	t := publication.Type(strings.ToLower(s))
	if !t.IsValid() {
		return "", fmt.Errorf("invalid type %q (valid: all, %s)", s, joinTypes(publication.Types))
	}
	return t, nil
}

func joinTypes(types []publication.Type) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

// formatAuthors joins author names, marking corresponding authors with *
// and co-first authors with #.
func formatAuthors(authors []publication.Author) string {
	names := make([]string, len(authors))
	for i, a := range authors {
		name := a.Name
		if a.IsCorresponding {
			name += "*"
		}
		if a.IsCoAuthor {
			name += "#"
		}
		names[i] = name
	}
	return strings.Join(names, ", ")
}

// highlightedAuthors returns the names of highlighted authors.
func highlightedAuthors(authors []publication.Author) []string {
	var names []string
	for _, a := range authors {
		if a.IsHighlighted {
			names = append(names, a.Name)
		}
	}
	return names
}

// venueLabel is the short venue shown next to a publication.
func venueLabel(p publication.Publication) string {
	return venue.Format(p.Venue(), p.Year)
}

// printPublicationLine prints one publication as a list entry.
func printPublicationLine(n int, p publication.Publication) {
	fmt.Printf("%2d. %s\n", n, truncateString(p.Title, ListTitleMaxLen))
	fmt.Printf("    %s\n", wrapText(formatAuthors(p.Authors), TextWrapWidth, "    "))
	label := venueLabel(p)
	if label == "" {
		label = strconv.Itoa(p.Year)
	}
	fmt.Printf("    %s | %s | %s\n\n", label, p.Type, p.ID)
}

// printPublicationDetail prints a publication with every populated field.
func printPublicationDetail(p publication.Publication) {
	fmt.Println(p.ID)
	fmt.Println(strings.Repeat("═", 70))
	fmt.Println()

	fmt.Printf("Title:    %s\n", wrapText(p.Title, 60, "          "))
	if len(p.Authors) > 0 {
		fmt.Printf("Authors:  %s\n", wrapText(formatAuthors(p.Authors), 60, "          "))
	}
	fmt.Println()

	if v := p.Venue(); v != "" {
		fmt.Printf("Venue:    %s\n", v)
		fmt.Printf("Label:    %s\n", venueLabel(p))
	}
	date := strconv.Itoa(p.Year)
	if p.Month != "" {
		date += "-" + p.Month
	}
	fmt.Printf("Date:     %s\n", date)
	fmt.Printf("Type:     %s\n", p.Type)
	fmt.Printf("Area:     %s\n", p.ResearchArea)

	optional := []struct{ label, value string }{
		{"Volume", p.Volume},
		{"Issue", p.Issue},
		{"Pages", p.Pages},
		{"DOI", p.DOI},
		{"URL", p.URL},
		{"Code", p.Code},
	}
	for _, f := range optional {
		if f.value != "" {
			fmt.Printf("%-9s %s\n", f.label+":", f.value)
		}
	}
	if len(p.Keywords) > 0 {
		fmt.Printf("Keywords: %s\n", strings.Join(p.Keywords, ", "))
	}

	if p.Abstract != "" {
		fmt.Println()
		fmt.Println("Abstract:")
		fmt.Printf("  %s\n", wrapText(p.Abstract, TextWrapWidth, "  "))
	}
	if p.BibTeX != "" {
		fmt.Println()
		fmt.Println(p.BibTeX)
	}
}

// truncateString truncates a string to maxLen runes, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

// wrapText wraps text to the specified width with indentation on subsequent lines.
func wrapText(text string, width int, indent string) string {
	if len(text) <= width {
		return text
	}

	var lines []string
	var currentLine strings.Builder

	for _, word := range strings.Fields(text) {
		if currentLine.Len() == 0 {
			currentLine.WriteString(word)
		} else if currentLine.Len()+1+len(word) <= width {
			currentLine.WriteString(" ")
			currentLine.WriteString(word)
		} else {
			lines = append(lines, currentLine.String())
			currentLine.Reset()
			currentLine.WriteString(word)
		}
	}
	if currentLine.Len() > 0 {
		lines = append(lines, currentLine.String())
	}

	return strings.Join(lines, "\n"+indent)
}
