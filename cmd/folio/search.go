package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scholarfolio/folio/internal/publication"
)

// DefaultSearchLimit is the default limit for search results.
const DefaultSearchLimit = 50

var searchLimit int

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", DefaultSearchLimit, "Maximum results")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Full-text search over the publication cache",
	Long: `Search titles, authors, venues and keywords in the publication cache.

Run 'folio cache rebuild' after editing the bibliography.

Examples:
  folio search transformer
  folio search "jane doe" --limit 5`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

// SearchResponse is the response for the search command.
type SearchResponse struct {
	Query        string                    `json:"query"`
	Count        int                       `json:"count"`
	Publications []publication.Publication `json:"publications"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	root := mustFindContent()
	db := mustOpenDatabase(root)
	defer db.Close()

	count, err := db.Count()
	if err != nil {
		exitWithError(ExitError, "reading cache: %v", err)
	}
	if count == 0 {
		exitWithError(ExitConfigError, "publication cache is empty\n\nRun 'folio cache rebuild' to create it.")
	}

	q := strings.Join(args, " ")
	pubs, err := db.Search(q, searchLimit)
	if err != nil {
		exitWithError(ExitError, "searching: %v", err)
	}
	if pubs == nil {
		pubs = []publication.Publication{}
	}

	if !humanOutput {
		outputJSON(SearchResponse{Query: q, Count: len(pubs), Publications: pubs})
		return nil
	}

	if len(pubs) == 0 {
		fmt.Printf("No publications match %q\n", q)
		return nil
	}
	fmt.Printf("Found %d publications matching %q\n\n", len(pubs), q)
	for i, p := range pubs {
		printPublicationLine(i+1, p)
	}
	return nil
}
