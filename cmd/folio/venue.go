package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scholarfolio/folio/internal/venue"
)

var venueYear int

func init() {
	venueCmd.Flags().IntVarP(&venueYear, "year", "y", 0, "Publication year used when the venue text has none")
	rootCmd.AddCommand(venueCmd)
}

var venueCmd = &cobra.Command{
	Use:   "venue <venue>",
	Short: "Format a venue string as a short label",
	Long: `Format a journal or conference name as the short label shown on the site.

Examples:
  folio venue "Findings of the Association for Computational Linguistics: EMNLP 2023"
  folio venue "Advances in Neural Information Processing Systems" --year 2024`,
	Args: cobra.ExactArgs(1),
	RunE: runVenue,
}

// VenueResponse is the response for the venue command.
type VenueResponse struct {
	Venue     string `json:"venue"`
	Year      int    `json:"year"`
	Formatted string `json:"formatted"`
}

func runVenue(cmd *cobra.Command, args []string) error {
	formatted := venue.Format(args[0], venueYear)
	if humanOutput {
		fmt.Println(formatted)
	} else {
		outputJSON(VenueResponse{Venue: args[0], Year: venueYear, Formatted: formatted})
	}
	return nil
}
