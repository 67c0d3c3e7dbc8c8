package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/scholarfolio/folio/internal/clipboard"
	"github.com/scholarfolio/folio/internal/config"
	"github.com/scholarfolio/folio/internal/content"
	"github.com/scholarfolio/folio/internal/publication"
	"github.com/scholarfolio/folio/internal/query"
	"github.com/scholarfolio/folio/internal/storage"
)

var (
	pubsSource   string
	listSearch   string
	listYear     string
	listType     string
	listPage     int
	listPageSize int
	getCopy      bool
	selectLimit  int
)

func init() {
	pubsCmd.PersistentFlags().StringVar(&pubsSource, "source", "", "BibTeX file relative to the content directory (default: from config)")

	pubsListCmd.Flags().StringVarP(&listSearch, "search", "s", "", "Case-insensitive text in title, authors or venue")
	pubsListCmd.Flags().StringVarP(&listYear, "year", "y", "all", "Publication year or \"all\"")
	pubsListCmd.Flags().StringVarP(&listType, "type", "t", "all", "Publication type or \"all\"")
	pubsListCmd.Flags().IntVarP(&listPage, "page", "p", 1, "Page number (clamped to the available pages)")
	pubsListCmd.Flags().IntVar(&listPageSize, "page-size", 0, "Publications per page (default: publications.page_size)")

	pubsGetCmd.Flags().BoolVar(&getCopy, "copy", false, "Copy the cleaned BibTeX to the clipboard")

	pubsSelectedCmd.Flags().IntVarP(&selectLimit, "limit", "n", 0, "Maximum number of publications (0 for all)")

	pubsCmd.AddCommand(pubsListCmd, pubsGetCmd, pubsFacetsCmd, pubsSelectedCmd)
	rootCmd.AddCommand(pubsCmd)
}

var pubsCmd = &cobra.Command{
	Use:   "pubs",
	Short: "Query publications parsed from BibTeX",
}

var pubsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List publications with filters and pagination",
	Long: `List publications newest first, filtered by search text, year and type.

Examples:
  folio pubs list
  folio pubs list --year 2025 --type conference
  folio pubs list --search transformer --page 2`,
	Args: cobra.NoArgs,
	RunE: runPubsList,
}

// ListResponse is the response for the pubs list command.
type ListResponse struct {
	query.Result
	Filters query.Filters `json:"filters"`
	Facets  query.Facets  `json:"facets"`
}

func runPubsList(cmd *cobra.Command, args []string) error {
	year, err := parseYearFlag(listYear)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	pubType, err := parseTypeFlag(listType)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	root := mustFindContent()
	site := mustLoadSite(root)
	pubs := mustLoadPublications(root, site, pubsSource)

	pageSize := listPageSize
	if pageSize < 1 {
		pageSize = site.Publications.PageSize
	}

	session := query.NewSession(pubs, pageSize)
	session.SetSearch(listSearch)
	session.SetYear(year)
	session.SetType(pubType)
	session.SetPage(listPage)
	res := session.Result()

	if !humanOutput {
		outputJSON(ListResponse{Result: res, Filters: session.Filters(), Facets: session.Facets()})
		return nil
	}

	if res.TotalFiltered == 0 {
		fmt.Println("No publications match the current filters.")
		return nil
	}
	fmt.Printf("Showing %d-%d of %d publications (page %d of %d)\n\n",
		res.RangeStart, res.RangeEnd, res.TotalFiltered, res.Page, res.TotalPages)
	for i, p := range res.Items {
		printPublicationLine(res.RangeStart+i, p)
	}
	return nil
}

var pubsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Get a single publication by ID",
	Long: `Get a single publication by its citation key.

Reads from the search cache when it is newer than the bibliography,
otherwise parses the bibliography. If a key repeats, the first
publication in display order is returned.

Examples:
  folio pubs get doe2025sparse
  folio pubs get doe2025sparse --copy`,
	Args: cobra.ExactArgs(1),
	RunE: runPubsGet,
}

// CopyResponse is the response for pubs get --copy.
type CopyResponse struct {
	Status string `json:"status"`
	ID     string `json:"id"`
	BibTeX string `json:"bibtex"`
}

func runPubsGet(cmd *cobra.Command, args []string) error {
	root := mustFindContent()
	site := mustLoadSite(root)

	id := args[0]
	pub, found := cachedPublication(root, site, id)
	if !found {
		pubs := mustLoadPublications(root, site, pubsSource)
		idx, ok := storage.FindByID(pubs, id)
		if !ok {
			exitWithError(ExitError, "publication not found: %s", id)
		}
		pub = pubs[idx]
	}

	if getCopy {
		if err := clipboard.Copy(pub.BibTeX); err != nil {
			if errors.Is(err, clipboard.ErrClipboardUnavailable) {
				exitWithError(ExitError, "clipboard unavailable (install pbcopy, wl-copy, xclip or xsel)")
			}
			exitWithError(ExitError, "copying BibTeX: %v", err)
		}
		if humanOutput {
			fmt.Printf("Copied BibTeX for %s\n", pub.ID)
		} else {
			outputJSON(CopyResponse{Status: "copied", ID: pub.ID, BibTeX: pub.BibTeX})
		}
		return nil
	}

	if humanOutput {
		printPublicationDetail(pub)
	} else {
		outputJSON(pub)
	}
	return nil
}

// cachedPublication reads id from the search cache. The cache is skipped
// when --source is set or when it is older than the default bibliography.
func cachedPublication(root string, site *config.Site, id string) (publication.Publication, bool) {
	if pubsSource != "" {
		return publication.Publication{}, false
	}
	dbInfo, err := os.Stat(config.DBPath(root))
	if err != nil {
		return publication.Publication{}, false
	}
	bibPath := config.SourcePath(root, content.PublicationSource(site, ""))
	if bibInfo, err := os.Stat(bibPath); err == nil && bibInfo.ModTime().After(dbInfo.ModTime()) {
		logger.Debug("search cache is stale", zap.String("bibliography", bibPath))
		return publication.Publication{}, false
	}

	db, err := storage.OpenDB(config.DBPath(root))
	if err != nil {
		logger.Debug("search cache unavailable", zap.Error(err))
		return publication.Publication{}, false
	}
	defer db.Close()

	pub, err := db.GetByID(id)
	if err != nil {
		logger.Debug("search cache lookup failed", zap.String("id", id), zap.Error(err))
		return publication.Publication{}, false
	}
	if pub == nil {
		return publication.Publication{}, false
	}
	logger.Debug("publication read from cache", zap.String("id", id))
	return *pub, true
}

var pubsFacetsCmd = &cobra.Command{
	Use:   "facets",
	Short: "Show the years and types available as filters",
	Args:  cobra.NoArgs,
	RunE:  runPubsFacets,
}

func runPubsFacets(cmd *cobra.Command, args []string) error {
	root := mustFindContent()
	site := mustLoadSite(root)
	facets := query.BuildFacets(mustLoadPublications(root, site, pubsSource))

	if !humanOutput {
		outputJSON(facets)
		return nil
	}

	fmt.Print("Years: all")
	for _, y := range facets.Years {
		fmt.Printf(", %d", y)
	}
	fmt.Println()
	fmt.Printf("Types: all")
	for _, t := range facets.Types {
		fmt.Printf(", %s", t)
	}
	fmt.Println()
	return nil
}

var pubsSelectedCmd = &cobra.Command{
	Use:   "selected",
	Short: "List publications marked selected",
	Long: `List publications marked selected, newest first.

Without --limit, the limit of the first home page section that shows
selected publications applies.`,
	Args: cobra.NoArgs,
	RunE: runPubsSelected,
}

// SelectedResponse is the response for the pubs selected command.
type SelectedResponse struct {
	Count        int                       `json:"count"`
	Publications []publication.Publication `json:"publications"`
}

func runPubsSelected(cmd *cobra.Command, args []string) error {
	root := mustFindContent()
	site := mustLoadSite(root)
	limit := selectLimit
	if !cmd.Flags().Changed("limit") {
		limit = selectedSectionLimit(site)
	}
	selected := query.Selected(mustLoadPublications(root, site, pubsSource), limit)

	if !humanOutput {
		outputJSON(SelectedResponse{Count: len(selected), Publications: selected})
		return nil
	}

	if len(selected) == 0 {
		fmt.Println("No selected publications.")
		return nil
	}
	for i, p := range selected {
		printPublicationLine(i+1, p)
	}
	return nil
}

// selectedSectionLimit returns the limit of the first publications section
// filtered to selected entries, or 0 when there is none.
func selectedSectionLimit(site *config.Site) int {
	for _, sec := range site.Sections {
		if sec.Type == "publications" && sec.Filter == "selected" {
			return sec.Limit
		}
	}
	return 0
}
