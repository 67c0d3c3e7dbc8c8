package bibtex

import (
	"regexp"
	"strings"
)

var (
	outerQuoteRegex  = regexp.MustCompile(`^["']|["']$`)
	doubleBraceRegex = regexp.MustCompile(`\{\{([^}]*)\}\}`)
	singleBraceRegex = regexp.MustCompile(`\{([^{}]*)\}`)
	textbfRegex      = regexp.MustCompile(`\\textbf\{([^}]*)\}`)
	emphRegex        = regexp.MustCompile(`\\emph\{([^}]*)\}`)
	citeRegex        = regexp.MustCompile(`\\cite\{[^}]*\}`)
	braceStripper    = strings.NewReplacer("{", "", "}", "")
	quoteCutset      = `"'`
)

// Normalize cleans a raw field value for display: outer quotes, grouping
// braces, \textbf and \emph wrappers, \cite references, ~ and backslashes
// are removed and whitespace is collapsed.
//
// The result never starts or ends with a quote, never contains a brace or
// backslash, and Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	if s == "" {
		return ""
	}

	cleaned := outerQuoteRegex.ReplaceAllString(strings.TrimSpace(s), "")

	// Markup commands are resolved while their argument braces still exist.
	cleaned = textbfRegex.ReplaceAllString(cleaned, "$1")
	cleaned = emphRegex.ReplaceAllString(cleaned, "$1")
	cleaned = citeRegex.ReplaceAllString(cleaned, "")

	cleaned = doubleBraceRegex.ReplaceAllString(cleaned, "$1")

	// Peel innermost groups until a pass makes no progress; unbalanced
	// braces stop the loop and are stripped below.
	for strings.Contains(cleaned, "{") && strings.Contains(cleaned, "}") {
		next := singleBraceRegex.ReplaceAllString(cleaned, "$1")
		if len(next) == len(cleaned) {
			break
		}
		cleaned = next
	}
	cleaned = braceStripper.Replace(cleaned)

	cleaned = strings.ReplaceAll(cleaned, "~", " ")
	cleaned = strings.ReplaceAll(cleaned, `\`, "")
	cleaned = strings.Join(strings.Fields(cleaned), " ")

	// Quotes exposed by brace or whitespace removal.
	for cleaned != "" && (strings.ContainsAny(cleaned[:1], quoteCutset) || strings.ContainsAny(cleaned[len(cleaned)-1:], quoteCutset)) {
		cleaned = strings.TrimSpace(strings.Trim(cleaned, quoteCutset))
	}

	return cleaned
}
