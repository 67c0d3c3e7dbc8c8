// Package main provides the folio CLI entry point.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/scholarfolio/folio/internal/config"
	"github.com/scholarfolio/folio/internal/content"
	"github.com/scholarfolio/folio/internal/publication"
	"github.com/scholarfolio/folio/internal/storage"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	humanOutput bool
	verbose     bool
	contentFlag string

	logger = zap.NewNop()
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		// SilenceErrors is set, so cobra usage errors are printed here
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "Academic portfolio content tool",
	Long: `folio reads the content directory of an academic portfolio site:
site configuration, page configs, markdown and BibTeX bibliographies.

It parses BibTeX into display-ready publications (normalized titles,
highlighted authors, venue labels, research areas) and answers the same
queries the site does. All commands output JSON by default; use --human
for readable text.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env may set FOLIO_CONTENT or FOLIO_OWNER
		_ = godotenv.Load()

		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		l, err := cfg.Build()
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging on stderr")
	rootCmd.PersistentFlags().StringVar(&contentFlag, "content", "", "Content directory (default: $"+config.EnvContent+" or search upward for "+config.ConfigFile+")")
	rootCmd.Version = Version
}

// mustFindContent resolves the content directory, exits on error.
func mustFindContent() string {
	root, err := config.ResolveContentDir(contentFlag)
	if err != nil {
		exitWithError(ExitConfigError, "%v\n\nPass --content or set %s.", err, config.EnvContent)
	}
	logger.Debug("using content directory", zap.String("path", root))
	return root
}

// mustLoadSite loads config.yml, exits on error.
func mustLoadSite(root string) *config.Site {
	site, err := config.Load(root)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return site
}

// newLoader returns a content loader logging to the CLI logger.
func newLoader(root string) *content.Loader {
	return content.New(root, logger)
}

// mustLoadPublications parses the bibliography named by source (or the
// site default), exits on error.
func mustLoadPublications(root string, site *config.Site, source string) []publication.Publication {
	source = content.PublicationSource(site, source)
	pubs, err := newLoader(root).Publications(site, source)
	if err != nil {
		exitWithError(ExitDataError, "loading publications: %v", err)
	}
	return pubs
}

// mustOpenDatabase opens the SQLite cache, exits on error.
// The caller is responsible for calling Close() on the returned DB.
func mustOpenDatabase(root string) *storage.DB {
	db, err := storage.OpenDB(config.DBPath(root))
	if err != nil {
		exitWithError(ExitError, "opening database: %v", err)
	}
	return db
}

// exitCodeFor maps loader errors to exit codes.
func exitCodeFor(err error) int {
	switch {
	case errors.Is(err, config.ErrPageNotFound), errors.Is(err, config.ErrConfigNotFound):
		return ExitConfigError
	default:
		return ExitDataError
	}
}
