package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/scholarfolio/folio/internal/config"
	"github.com/scholarfolio/folio/internal/storage"
)

var cacheSource string

func init() {
	cacheRebuildCmd.Flags().StringVar(&cacheSource, "source", "", "BibTeX file relative to the content directory (default: from config)")
	cacheCmd.AddCommand(cacheRebuildCmd)
	rootCmd.AddCommand(cacheCmd)
}

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the publication search cache",
}

var cacheRebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the search cache from the bibliography",
	Long: `Parse the bibliography, write a JSONL snapshot of the publications
and rebuild the SQLite full-text index from it.

The cache lives in .folio/ inside the content directory and can be deleted
at any time.`,
	Args: cobra.NoArgs,
	RunE: runCacheRebuild,
}

// RebuildResult is the response for the cache rebuild command.
type RebuildResult struct {
	Status       string `json:"status"`
	Snapshot     string `json:"snapshot"`
	Publications int    `json:"publications"`
}

func runCacheRebuild(cmd *cobra.Command, args []string) error {
	root := mustFindContent()
	site := mustLoadSite(root)
	pubs := mustLoadPublications(root, site, cacheSource)

	snapshot := config.SnapshotPath(root)
	if err := storage.WriteAll(snapshot, pubs); err != nil {
		exitWithError(ExitError, "writing snapshot: %v", err)
	}

	db := mustOpenDatabase(root)
	defer db.Close()

	count, err := db.RebuildFromJSONL(snapshot)
	if err != nil {
		exitWithError(ExitError, "rebuilding database: %v", err)
	}
	logger.Debug("cache rebuilt", zap.String("db", config.DBPath(root)), zap.Int("publications", count))

	if humanOutput {
		fmt.Printf("Rebuilt cache with %d publications\n", count)
	} else {
		outputJSON(RebuildResult{Status: "rebuilt", Snapshot: snapshot, Publications: count})
	}
	return nil
}
