package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scholarfolio/folio/internal/config"
	"github.com/scholarfolio/folio/internal/publication"
)

func init() {
	rootCmd.AddCommand(sectionCmd)
}

var sectionCmd = &cobra.Command{
	Use:   "section <id>",
	Short: "Show a home page section",
	Long: `Show the home page section with the given id from config.yml.

Markdown sections render their source file. Publication sections list
their bibliography, keeping only selected entries when filter is
"selected" and stopping at limit. List and card sections show the items
of the page config named by source.

Examples:
  folio section about --human
  folio section selected`,
	Args: cobra.ExactArgs(1),
	RunE: runSection,
}

// SectionResponse is the response for the section command.
type SectionResponse struct {
	Section      config.Section            `json:"section"`
	Markdown     string                    `json:"markdown,omitempty"`
	Publications []publication.Publication `json:"publications,omitempty"`
	Items        []config.CardItem         `json:"items,omitempty"`
}

func runSection(cmd *cobra.Command, args []string) error {
	root := mustFindContent()
	site := mustLoadSite(root)
	loader := newLoader(root)

	sec, ok := site.Section(args[0])
	if !ok {
		ids := make([]string, len(site.Sections))
		for i, s := range site.Sections {
			ids[i] = s.ID
		}
		exitWithError(ExitConfigError, "section not found: %s (configured: %s)", args[0], strings.Join(ids, ", "))
	}

	resp := SectionResponse{Section: sec}
	switch sec.Type {
	case "markdown":
		md, err := loader.Markdown(sec.Source)
		if err != nil {
			exitWithError(ExitDataError, "loading markdown: %v", err)
		}
		resp.Markdown = md
	case "publications":
		pubs, err := loader.SectionPublications(site, sec)
		if err != nil {
			exitWithError(ExitDataError, "loading publications: %v", err)
		}
		resp.Publications = pubs
	case "list", "cards":
		if sec.Source != "" {
			slug := strings.TrimSuffix(sec.Source, filepath.Ext(sec.Source))
			page, err := loader.Page(slug)
			if err != nil {
				exitWithError(exitCodeFor(err), "loading section items: %v", err)
			}
			resp.Items = page.Items
		}
	}

	if !humanOutput {
		outputJSON(resp)
		return nil
	}

	title := sec.Title
	if title == "" {
		title = sec.ID
	}
	fmt.Println(title)
	fmt.Println()

	if resp.Markdown != "" {
		fmt.Print(renderMarkdown(resp.Markdown))
	}
	if sec.Type == "publications" && len(resp.Publications) == 0 {
		fmt.Println("No publications.")
	}
	for i, p := range resp.Publications {
		printPublicationLine(i+1, p)
	}
	for _, item := range resp.Items {
		printCard(item)
	}
	return nil
}
