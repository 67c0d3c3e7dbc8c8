// Package config handles site and page configuration stored in the
// content directory.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/scholarfolio/folio/internal/publication"
)

const (
	ContentDir   = "content"
	ConfigFile   = "config.yml"
	PageExt      = ".yml"
	StateDir     = ".folio"
	CacheDir     = "cache"
	DBFile       = "publications.db"
	SnapshotFile = "publications.jsonl"

	// EnvContent names the content directory when --content is not given.
	EnvContent = "FOLIO_CONTENT"
	// EnvOwner overrides author.name for highlighting.
	EnvOwner = "FOLIO_OWNER"

	// DefaultPageSize is the publication list page size when unset.
	DefaultPageSize = 8
)

var (
	// ErrConfigNotFound is returned when config.yml does not exist.
	ErrConfigNotFound = errors.New("site config not found")
	// ErrPageNotFound is returned when a page config does not exist.
	ErrPageNotFound = errors.New("page not found")
	// ErrContentNotFound is returned when no content directory can be located.
	ErrContentNotFound = errors.New("no content directory found")
)

// Valid enumerations.
var (
	ValidNavTypes     = []string{"section", "page", "link"}
	ValidSectionTypes = []string{"markdown", "publications", "list", "cards"}
	ValidPageTypes    = []string{"about", "publication", "text", "card"}
)

// Site is the site-wide configuration in config.yml.
type Site struct {
	Site         SiteInfo     `yaml:"site" json:"site"`
	Author       Author       `yaml:"author" json:"author"`
	Social       Social       `yaml:"social" json:"social"`
	Features     Features     `yaml:"features" json:"features"`
	Navigation   []NavItem    `yaml:"navigation" json:"navigation"`
	Sections     []Section    `yaml:"sections" json:"sections"`
	Publications Publications `yaml:"publications" json:"publications"`
}

// SiteInfo describes the site itself.
type SiteInfo struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Favicon     string `yaml:"favicon" json:"favicon"`
	LastUpdated string `yaml:"last_updated,omitempty" json:"last_updated,omitempty"`
}

// Author is the site owner's profile.
type Author struct {
	Name        string `yaml:"name" json:"name"` // may carry an alternate-script name, e.g. "Jane Doe (珍 杜)"
	Title       string `yaml:"title" json:"title"`
	Institution string `yaml:"institution" json:"institution"`
	Avatar      string `yaml:"avatar" json:"avatar"`
}

// Social holds contact links. Unknown keys are kept in Extra.
type Social struct {
	Email           string               `yaml:"email,omitempty" json:"email,omitempty"`
	Location        string               `yaml:"location,omitempty" json:"location,omitempty"`
	LocationURL     string               `yaml:"location_url,omitempty" json:"location_url,omitempty"`
	LocationDetails []string             `yaml:"location_details,omitempty" json:"location_details,omitempty"`
	GoogleScholar   string               `yaml:"google_scholar,omitempty" json:"google_scholar,omitempty"`
	ORCID           string               `yaml:"orcid,omitempty" json:"orcid,omitempty"`
	GitHub          string               `yaml:"github,omitempty" json:"github,omitempty"`
	LinkedIn        string               `yaml:"linkedin,omitempty" json:"linkedin,omitempty"`
	Extra           map[string]LinkValue `yaml:",inline" json:"extra,omitempty"`
}

// LinkValue is an extra social entry, written in YAML as a string or a
// list of strings.
type LinkValue []string

// UnmarshalYAML accepts a scalar or a sequence of scalars. An empty value
// decodes to nil.
func (v *LinkValue) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			*v = nil
			return nil
		}
		*v = LinkValue{node.Value}
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := node.Decode(&items); err != nil {
			return fmt.Errorf("line %d: social list must hold strings: %w", node.Line, err)
		}
		*v = items
		return nil
	}
	return fmt.Errorf("line %d: social entry must be a string or a list of strings", node.Line)
}

// MarshalJSON writes a single value as a string and anything else as an
// array.
func (v LinkValue) MarshalJSON() ([]byte, error) {
	if len(v) == 1 {
		return json.Marshal(v[0])
	}
	return json.Marshal([]string(v))
}

// String joins the values with ", ".
func (v LinkValue) String() string {
	return strings.Join(v, ", ")
}

// Features toggles optional behavior.
type Features struct {
	EnableLikes       bool `yaml:"enable_likes" json:"enable_likes"`
	EnableOnePageMode bool `yaml:"enable_one_page_mode" json:"enable_one_page_mode"`
	// MonthlessAsJanuary sorts publications without a month as if published
	// in January. Defaults to true.
	MonthlessAsJanuary *bool `yaml:"monthless_as_january,omitempty" json:"monthless_as_january,omitempty"`
}

// NavItem is one navigation link.
type NavItem struct {
	Title  string `yaml:"title" json:"title"`
	Type   string `yaml:"type" json:"type"` // section, page, link
	Target string `yaml:"target" json:"target"`
	Href   string `yaml:"href" json:"href"`
}

// Section is one block of the home page.
type Section struct {
	ID     string `yaml:"id" json:"id"`
	Type   string `yaml:"type" json:"type"` // markdown, publications, list, cards
	Source string `yaml:"source,omitempty" json:"source,omitempty"`
	Title  string `yaml:"title,omitempty" json:"title,omitempty"`
	Filter string `yaml:"filter,omitempty" json:"filter,omitempty"` // "selected" for selected publications
	Limit  int    `yaml:"limit,omitempty" json:"limit,omitempty"`
}

// Publications configures the publication list.
type Publications struct {
	PageSize      int      `yaml:"page_size,omitempty" json:"page_size,omitempty"`
	ExcludeFields []string `yaml:"exclude_fields,omitempty" json:"exclude_fields,omitempty"`
}

// Page is a standalone page config in <slug>.yml.
type Page struct {
	Type        string     `yaml:"type" json:"type"` // about, publication, text, card
	Title       string     `yaml:"title" json:"title"`
	Description string     `yaml:"description,omitempty" json:"description,omitempty"`
	Source      string     `yaml:"source,omitempty" json:"source,omitempty"` // .bib for publication pages, .md for text pages
	Items       []CardItem `yaml:"items,omitempty" json:"items,omitempty"`
}

// CardItem is one card of a card page.
type CardItem struct {
	Title    string   `yaml:"title" json:"title"`
	Subtitle string   `yaml:"subtitle,omitempty" json:"subtitle,omitempty"`
	Date     string   `yaml:"date,omitempty" json:"date,omitempty"`
	Content  string   `yaml:"content,omitempty" json:"content,omitempty"`
	Tags     []string `yaml:"tags,omitempty" json:"tags,omitempty"`
	Link     string   `yaml:"link,omitempty" json:"link,omitempty"`
	Image    string   `yaml:"image,omitempty" json:"image,omitempty"`
}

// ConfigPath returns the path to config.yml in a content root.
func ConfigPath(root string) string {
	return filepath.Join(root, ConfigFile)
}

// PagePath returns the path to a page config in a content root.
func PagePath(root, slug string) string {
	return filepath.Join(root, slug+PageExt)
}

// SourcePath returns the path of a content file referenced by a page or section.
func SourcePath(root, source string) string {
	return filepath.Join(root, filepath.FromSlash(source))
}

// CachePath returns the path to the cache directory of a content root.
func CachePath(root string) string {
	return filepath.Join(root, StateDir, CacheDir)
}

// DBPath returns the path to the publication query database.
func DBPath(root string) string {
	return filepath.Join(root, StateDir, CacheDir, DBFile)
}

// SnapshotPath returns the path to the JSONL publication snapshot.
func SnapshotPath(root string) string {
	return filepath.Join(root, StateDir, SnapshotFile)
}

// IsContentDir checks if the given path holds a config.yml.
func IsContentDir(root string) bool {
	info, err := os.Stat(ConfigPath(root))
	return err == nil && !info.IsDir()
}

// FindContentDir walks up from start looking for a directory that is a
// content root or has a content/ child that is one.
func FindContentDir(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	for {
		if IsContentDir(abs) {
			return abs, nil
		}
		if nested := filepath.Join(abs, ContentDir); IsContentDir(nested) {
			return nested, nil
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return "", fmt.Errorf("%w (no %s above %s)", ErrContentNotFound, ConfigFile, start)
		}
		abs = parent
	}
}

// ResolveContentDir picks the content root: the explicit flag value, then
// $FOLIO_CONTENT, then a search upward from the working directory.
func ResolveContentDir(flag string) (string, error) {
	for _, candidate := range []string{flag, os.Getenv(EnvContent)} {
		if candidate == "" {
			continue
		}
		dir := ExpandPath(candidate)
		if !IsContentDir(dir) {
			return "", fmt.Errorf("%w: %s has no %s", ErrContentNotFound, dir, ConfigFile)
		}
		return filepath.Abs(dir)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting current directory: %w", err)
	}
	return FindContentDir(cwd)
}

// Load reads and validates config.yml from the content root.
func Load(root string) (*Site, error) {
	data, err := os.ReadFile(ConfigPath(root))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, ConfigPath(root))
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var site Site
	if err := yaml.Unmarshal(data, &site); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	site.applyDefaults()
	if err := site.Validate(); err != nil {
		return nil, err
	}
	return &site, nil
}

func (s *Site) applyDefaults() {
	if s.Publications.PageSize == 0 {
		s.Publications.PageSize = DefaultPageSize
	}
	if s.Publications.ExcludeFields == nil {
		s.Publications.ExcludeFields = slices.Clone(publication.DefaultExcludeFields)
	}
}

// Validate checks enumerated values and numeric ranges.
func (s *Site) Validate() error {
	if s.Publications.PageSize < 1 {
		return fmt.Errorf("invalid publications.page_size: %d (must be at least 1)", s.Publications.PageSize)
	}
	for i, nav := range s.Navigation {
		if !oneOf(nav.Type, ValidNavTypes) {
			return fmt.Errorf("invalid navigation[%d].type: %q (valid: %v)", i, nav.Type, ValidNavTypes)
		}
	}
	for i, sec := range s.Sections {
		if !oneOf(sec.Type, ValidSectionTypes) {
			return fmt.Errorf("invalid sections[%d].type: %q (valid: %v)", i, sec.Type, ValidSectionTypes)
		}
		if sec.Limit < 0 {
			return fmt.Errorf("invalid sections[%d].limit: %d", i, sec.Limit)
		}
	}
	return nil
}

// OwnerName returns the name used for author highlighting. $FOLIO_OWNER
// takes precedence over author.name.
func (s *Site) OwnerName() string {
	if owner := os.Getenv(EnvOwner); owner != "" {
		return owner
	}
	return s.Author.Name
}

// MonthlessLast reports whether month-less publications sort after dated
// ones of the same year.
func (s *Site) MonthlessLast() bool {
	return s.Features.MonthlessAsJanuary != nil && !*s.Features.MonthlessAsJanuary
}

// Section returns the home page section with the given id.
func (s *Site) Section(id string) (Section, bool) {
	for _, sec := range s.Sections {
		if sec.ID == id {
			return sec, true
		}
	}
	return Section{}, false
}

// LoadPage reads the page config for slug.
func LoadPage(root, slug string) (*Page, error) {
	if slug == "" || slug != filepath.Base(slug) || strings.HasPrefix(slug, ".") {
		return nil, fmt.Errorf("%w: invalid slug %q", ErrPageNotFound, slug)
	}

	data, err := os.ReadFile(PagePath(root, slug))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrPageNotFound, slug)
		}
		return nil, fmt.Errorf("reading page %s: %w", slug, err)
	}

	var page Page
	if err := yaml.Unmarshal(data, &page); err != nil {
		return nil, fmt.Errorf("parsing page %s: %w", slug, err)
	}
	if !oneOf(page.Type, ValidPageTypes) {
		return nil, fmt.Errorf("invalid page type %q in %s (valid: %v)", page.Type, slug, ValidPageTypes)
	}
	if (page.Type == "publication" || page.Type == "text") && page.Source == "" {
		return nil, fmt.Errorf("page %s of type %s needs a source", slug, page.Type)
	}
	return &page, nil
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, path[1:])
}

func oneOf(v string, valid []string) bool {
	return slices.Contains(valid, v)
}
