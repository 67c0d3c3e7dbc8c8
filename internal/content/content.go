// Package content reads site configuration, bibliographies and markdown
// from a content directory.
package content

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/scholarfolio/folio/internal/bibtex"
	"github.com/scholarfolio/folio/internal/config"
	"github.com/scholarfolio/folio/internal/importer"
	"github.com/scholarfolio/folio/internal/publication"
	"github.com/scholarfolio/folio/internal/query"
)

// DefaultBibSource is used when neither the caller nor the site config
// names a bibliography.
const DefaultBibSource = "publications.bib"

// Loader reads files below Root.
type Loader struct {
	Root string
	Log  *zap.Logger
	Now  func() time.Time // passed to the record parser; nil means time.Now
}

// New returns a loader for root. A nil logger discards output.
func New(root string, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{Root: root, Log: log}
}

func (l *Loader) logger() *zap.Logger {
	if l.Log == nil {
		return zap.NewNop()
	}
	return l.Log
}

// Site loads config.yml.
func (l *Loader) Site() (*config.Site, error) {
	return config.Load(l.Root)
}

// Page loads the page config for slug.
func (l *Loader) Page(slug string) (*config.Page, error) {
	return config.LoadPage(l.Root, slug)
}

// readOptional returns the file's text, or "" with a warning when it does
// not exist.
func (l *Loader) readOptional(source, kind string) (string, error) {
	path := config.SourcePath(l.Root, source)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			l.logger().Warn("content file missing", zap.String("kind", kind), zap.String("path", path))
			return "", nil
		}
		return "", fmt.Errorf("reading %s: %w", source, err)
	}
	return string(data), nil
}

// Entries reads and parses a .bib file. A missing file yields no entries.
func (l *Loader) Entries(source string) ([]bibtex.RawEntry, error) {
	text, err := l.readOptional(source, "bibliography")
	if err != nil {
		return nil, err
	}
	entries := bibtex.Parse(text, l.logger())
	l.logger().Debug("parsed bibliography", zap.String("source", source), zap.Int("entries", len(entries)))
	return entries, nil
}

// Publications reads a .bib file and converts it with the site's owner,
// excluded fields and month ordering.
func (l *Loader) Publications(site *config.Site, source string) ([]publication.Publication, error) {
	entries, err := l.Entries(source)
	if err != nil {
		return nil, err
	}

	p := importer.Parser{
		Owner:         site.OwnerName(),
		ExcludeFields: site.Publications.ExcludeFields,
		MonthlessLast: site.MonthlessLast(),
		Now:           l.Now,
		Logger:        l.logger(),
	}
	return p.Parse(entries), nil
}

// SectionPublications loads the publications of a home page section,
// applying its selected filter and limit.
func (l *Loader) SectionPublications(site *config.Site, sec config.Section) ([]publication.Publication, error) {
	source := sec.Source
	if source == "" {
		source = DefaultBibSource
	}
	pubs, err := l.Publications(site, source)
	if err != nil {
		return nil, err
	}
	if sec.Filter == "selected" {
		return query.Selected(pubs, sec.Limit), nil
	}
	if sec.Limit > 0 && len(pubs) > sec.Limit {
		pubs = pubs[:sec.Limit]
	}
	return pubs, nil
}

// Markdown reads a markdown file. A missing file yields "".
func (l *Loader) Markdown(source string) (string, error) {
	return l.readOptional(source, "markdown")
}

// PublicationSource picks the bibliography to use: explicit wins, then the
// first publications section with a source, then DefaultBibSource.
func PublicationSource(site *config.Site, explicit string) string {
	if explicit != "" {
		return explicit
	}
	if site != nil {
		for _, sec := range site.Sections {
			if sec.Type == "publications" && sec.Source != "" {
				return sec.Source
			}
		}
	}
	return DefaultBibSource
}
