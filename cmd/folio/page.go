package main

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/scholarfolio/folio/internal/config"
	"github.com/scholarfolio/folio/internal/publication"
)

func init() {
	rootCmd.AddCommand(pageCmd)
}

var pageCmd = &cobra.Command{
	Use:   "page <slug>",
	Short: "Show a standalone page",
	Long: `Show the page configured in <slug>.yml of the content directory.

Publication pages list their bibliography, text pages render their
markdown, card pages list their items.

Examples:
  folio page publications
  folio page blog --human`,
	Args: cobra.ExactArgs(1),
	RunE: runPage,
}

// PageResponse is the response for the page command.
type PageResponse struct {
	Slug         string                    `json:"slug"`
	Page         *config.Page              `json:"page"`
	Markdown     string                    `json:"markdown,omitempty"`
	Publications []publication.Publication `json:"publications,omitempty"`
	Author       *config.Author            `json:"author,omitempty"`
}

func runPage(cmd *cobra.Command, args []string) error {
	root := mustFindContent()
	site := mustLoadSite(root)
	loader := newLoader(root)

	slug := args[0]
	page, err := loader.Page(slug)
	if err != nil {
		exitWithError(exitCodeFor(err), "loading page: %v", err)
	}

	resp := PageResponse{Slug: slug, Page: page}
	switch page.Type {
	case "publication":
		resp.Publications = mustLoadPublications(root, site, page.Source)
	case "text":
		md, err := loader.Markdown(page.Source)
		if err != nil {
			exitWithError(ExitDataError, "loading markdown: %v", err)
		}
		resp.Markdown = md
	case "about":
		resp.Author = &site.Author
		if page.Source != "" {
			md, err := loader.Markdown(page.Source)
			if err != nil {
				exitWithError(ExitDataError, "loading markdown: %v", err)
			}
			resp.Markdown = md
		}
	}

	if !humanOutput {
		outputJSON(resp)
		return nil
	}

	fmt.Println(page.Title)
	if page.Description != "" {
		fmt.Println(page.Description)
	}
	fmt.Println()

	if resp.Author != nil {
		fmt.Printf("%s\n%s, %s\n\n", resp.Author.Name, resp.Author.Title, resp.Author.Institution)
	}
	if resp.Markdown != "" {
		fmt.Print(renderMarkdown(resp.Markdown))
	}
	for i, p := range resp.Publications {
		printPublicationLine(i+1, p)
	}
	for _, item := range page.Items {
		printCard(item)
	}
	return nil
}

// renderMarkdown renders markdown for the terminal, falling back to the
// raw text when rendering fails.
func renderMarkdown(md string) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		logger.Warn("markdown renderer unavailable", zap.Error(err))
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		logger.Warn("rendering markdown", zap.Error(err))
		return md
	}
	return out
}

func printCard(item config.CardItem) {
	fmt.Println(item.Title)
	if item.Subtitle != "" {
		fmt.Printf("  %s\n", item.Subtitle)
	}
	if item.Date != "" {
		fmt.Printf("  %s\n", item.Date)
	}
	if item.Content != "" {
		fmt.Printf("  %s\n", wrapText(item.Content, TextWrapWidth, "  "))
	}
	if len(item.Tags) > 0 {
		fmt.Printf("  tags: %v\n", item.Tags)
	}
	if item.Link != "" {
		fmt.Printf("  %s\n", item.Link)
	}
	fmt.Println()
}
