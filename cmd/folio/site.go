package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/scholarfolio/folio/internal/config"
)

func init() {
	rootCmd.AddCommand(siteCmd)
}

var siteCmd = &cobra.Command{
	Use:   "site",
	Short: "Show the site profile, navigation and sections",
	Args:  cobra.NoArgs,
	RunE:  runSite,
}

// SiteResponse is the response for the site command.
type SiteResponse struct {
	Root  string       `json:"root"`
	Owner string       `json:"owner"`
	Site  *config.Site `json:"site"`
}

func runSite(cmd *cobra.Command, args []string) error {
	root := mustFindContent()
	site := mustLoadSite(root)

	if !humanOutput {
		outputJSON(SiteResponse{Root: root, Owner: site.OwnerName(), Site: site})
		return nil
	}

	fmt.Println(site.Site.Title)
	if site.Site.Description != "" {
		fmt.Println(site.Site.Description)
	}
	fmt.Println()

	fmt.Printf("Author:   %s\n", site.Author.Name)
	if site.Author.Title != "" {
		fmt.Printf("Title:    %s\n", site.Author.Title)
	}
	if site.Author.Institution != "" {
		fmt.Printf("Affil.:   %s\n", site.Author.Institution)
	}
	if owner := site.OwnerName(); owner != site.Author.Name {
		fmt.Printf("Owner:    %s (from $%s)\n", owner, config.EnvOwner)
	}

	links := socialLinks(site.Social)
	if len(links) > 0 {
		fmt.Println()
		fmt.Println("Links:")
		for _, l := range links {
			fmt.Printf("  %-15s %s\n", l[0], l[1])
		}
	}

	if len(site.Navigation) > 0 {
		fmt.Println()
		fmt.Println("Navigation:")
		for _, n := range site.Navigation {
			target := n.Target
			if n.Type == "link" {
				target = n.Href
			}
			fmt.Printf("  %-15s %-8s %s\n", n.Title, n.Type, target)
		}
	}

	if len(site.Sections) > 0 {
		fmt.Println()
		fmt.Println("Sections:")
		for _, s := range site.Sections {
			fmt.Printf("  %-15s %-13s %s\n", s.ID, s.Type, s.Source)
		}
	}
	return nil
}

// socialLinks lists populated social fields, known ones first. List
// values are joined with commas.
func socialLinks(s config.Social) [][2]string {
	var links [][2]string
	known := [][2]string{
		{"email", s.Email},
		{"location", s.Location},
		{"google_scholar", s.GoogleScholar},
		{"orcid", s.ORCID},
		{"github", s.GitHub},
		{"linkedin", s.LinkedIn},
	}
	for _, l := range known {
		if l[1] != "" {
			links = append(links, l)
		}
	}

	extra := make([]string, 0, len(s.Extra))
	for k := range s.Extra {
		extra = append(extra, k)
	}
	sort.Strings(extra)
	for _, k := range extra {
		if v := s.Extra[k].String(); v != "" {
			links = append(links, [2]string{k, v})
		}
	}
	return links
}
