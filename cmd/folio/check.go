package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scholarfolio/folio/internal/bibtex"
	"github.com/scholarfolio/folio/internal/content"
	"github.com/scholarfolio/folio/internal/importer"
	"github.com/scholarfolio/folio/internal/publication"
)

var checkSource string

func init() {
	checkCmd.Flags().StringVar(&checkSource, "source", "", "BibTeX file relative to the content directory (default: from config)")
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check a bibliography for duplicates and missing fields",
	Long: `Check a BibTeX source for duplicate citation keys, duplicate DOIs,
unknown entry types and entries missing a title, author or year.

Problems are reported but never stop the site from rendering: the parser
falls back to defaults for every missing field.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

// CheckResult is the response for the check command.
type CheckResult struct {
	Status  string       `json:"status"`
	Source  string       `json:"source"`
	Entries int          `json:"entries"`
	Issues  []CheckIssue `json:"issues"`
}

// CheckIssue represents a single issue found during check.
type CheckIssue struct {
	Type  string   `json:"type"`
	Key   string   `json:"key,omitempty"`
	Keys  []string `json:"keys,omitempty"`
	Value string   `json:"value,omitempty"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	root := mustFindContent()
	site := mustLoadSite(root)

	source := content.PublicationSource(site, checkSource)
	entries, err := newLoader(root).Entries(source)
	if err != nil {
		exitWithError(ExitDataError, "reading %s: %v", source, err)
	}

	issues := checkEntries(entries)

	status := "ok"
	if len(issues) > 0 {
		status = "issues"
	}

	if humanOutput {
		if len(issues) == 0 {
			fmt.Printf("Bibliography check: OK\n\n%d entries checked in %s\n", len(entries), source)
		} else {
			fmt.Printf("Bibliography check: %d issues found\n\n", len(issues))
			for _, issue := range issues {
				printCheckIssue(issue)
			}
			fmt.Printf("%d entries checked in %s\n", len(entries), source)
		}
	} else {
		outputJSON(CheckResult{
			Status:  status,
			Source:  source,
			Entries: len(entries),
			Issues:  issues,
		})
	}

	return nil
}

// checkEntries reports duplicates first, then per-entry problems in file order.
func checkEntries(entries []bibtex.RawEntry) []CheckIssue {
	issues := []CheckIssue{}

	for _, d := range bibtex.BuildIndex(entries).Duplicates(entries) {
		issue := CheckIssue{Type: "duplicate_" + d.Kind, Value: d.Value, Keys: d.Keys}
		if d.Kind == "key" {
			issue.Key = d.Value
			issue.Value = ""
		}
		issues = append(issues, issue)
	}

	for _, e := range entries {
		if _, ok := importer.MapType(e.Type); !ok {
			issues = append(issues, CheckIssue{Type: "unknown_type", Key: e.Key, Value: e.Type})
		}
		if strings.TrimSpace(bibtex.Normalize(e.Value("title"))) == "" {
			issues = append(issues, CheckIssue{Type: "missing_title", Key: e.Key})
		}
		if strings.TrimSpace(e.Value("author")) == "" {
			issues = append(issues, CheckIssue{Type: "missing_author", Key: e.Key})
		}
		if year, ok := publication.LeadingInt(e.Value("year")); !ok || year == 0 {
			issues = append(issues, CheckIssue{Type: "missing_year", Key: e.Key, Value: e.Value("year")})
		}
	}

	return issues
}

func printCheckIssue(issue CheckIssue) {
	switch issue.Type {
	case "duplicate_key":
		fmt.Printf("  [WARN] Duplicate citation key %s\n\n", issue.Key)
	case "duplicate_doi":
		fmt.Printf("  [WARN] Duplicate DOI %s\n", issue.Value)
		fmt.Printf("         Found in: %s\n\n", strings.Join(issue.Keys, ", "))
	case "unknown_type":
		fmt.Printf("  [INFO] %s: unknown entry type @%s, shown as journal\n\n", issue.Key, issue.Value)
	case "missing_year":
		fmt.Printf("  [INFO] %s: no usable year (%q), current year used\n\n", issue.Key, issue.Value)
	default:
		fmt.Printf("  [INFO] %s: %s\n\n", issue.Key, strings.ReplaceAll(issue.Type, "_", " "))
	}
}
