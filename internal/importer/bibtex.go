// Package importer converts bibliographic entries into publications.
package importer

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/scholarfolio/folio/internal/author"
	"github.com/scholarfolio/folio/internal/bibtex"
	"github.com/scholarfolio/folio/internal/publication"
)

// typeMapping maps lowercase BibTeX entry types to publication types.
var typeMapping = map[string]publication.Type{
	"article":       publication.TypeJournal,
	"inproceedings": publication.TypeConference,
	"conference":    publication.TypeConference,
	"incollection":  publication.TypeBookChapter,
	"book":          publication.TypeBook,
	"phdthesis":     publication.TypeThesis,
	"mastersthesis": publication.TypeThesis,
	"techreport":    publication.TypeTechnicalReport,
	"unpublished":   publication.TypePreprint,
	"misc":          publication.TypePreprint,
}

const untitled = "Untitled"

// Parser converts BibTeX entries into publications. The zero value is
// ready to use and highlights nobody.
type Parser struct {
	Owner         string           // site owner's display name, used for highlighting
	ExcludeFields []string         // fields left out of the BibTeX text; nil means publication.DefaultExcludeFields
	MonthlessLast bool             // sort month-less entries after every dated entry of their year
	Now           func() time.Time // clock for year defaults and fallback IDs; nil means time.Now
	Logger        *zap.Logger      // receives debug notes about substituted defaults; may be nil
}

// ParseBibTeX converts entries into publications sorted newest first.
func ParseBibTeX(entries []bibtex.RawEntry, owner string) []publication.Publication {
	return Parser{Owner: owner}.Parse(entries)
}

// Parse converts every entry into a publication. It never fails: missing or
// malformed fields fall back to defaults. The result is sorted by year
// descending, then by month descending.
func (p Parser) Parse(entries []bibtex.RawEntry) []publication.Publication {
	now := p.Now
	if now == nil {
		now = time.Now
	}
	log := p.Logger
	if log == nil {
		log = zap.NewNop()
	}
	exclude := p.ExcludeFields
	if exclude == nil {
		exclude = publication.DefaultExcludeFields
	}

	batch := now()
	pubs := make([]publication.Publication, 0, len(entries))
	for i, e := range entries {
		pubs = append(pubs, p.convert(e, i, batch, exclude, log))
	}

	SortPublications(pubs, p.MonthlessLast)
	return pubs
}

// convert builds one publication from an entry.
func (p Parser) convert(e bibtex.RawEntry, index int, batch time.Time, exclude []string, log *zap.Logger) publication.Publication {
	f := extractFields(e)

	year, ok := publication.LeadingInt(f.year.value)
	if !ok || year == 0 {
		year = batch.Year()
		log.Debug("defaulting year", zap.String("key", e.Key), zap.String("raw", f.year.value))
	}

	pubType, ok := MapType(e.Type)
	if !ok {
		log.Debug("defaulting entry type", zap.String("key", e.Key), zap.String("type", e.Type))
	}

	title := bibtex.Normalize(f.title.value)
	if title == "" {
		title = untitled
	}

	keywords := splitKeywords(f.keywords.value)

	description := f.description.value
	if description == "" {
		description = f.note.value
	}

	return publication.Publication{
		ID:           resolveID(e.Key, f.id.value, batch, index),
		Title:        title,
		Authors:      author.ParseList(f.author.value, p.Owner),
		Year:         year,
		Month:        displayMonth(f.month),
		Type:         pubType,
		Status:       publication.StatusPublished,
		Tags:         keywords,
		Keywords:     slices.Clone(keywords),
		ResearchArea: ClassifyArea(title, keywords),

		Journal:    bibtex.Normalize(f.journal.value),
		Conference: bibtex.Normalize(f.booktitle.value),
		Volume:     f.volume.value,
		Issue:      f.number.value,
		Pages:      f.pages.value,

		DOI:  f.doi.value,
		URL:  f.url.value,
		Code: f.code.value,

		Abstract:    bibtex.Normalize(f.abstract.value),
		Description: bibtex.Normalize(description),
		Selected:    f.selected.value == "true" || f.selected.value == "yes",
		Preview:     strings.NewReplacer("{", "", "}", "").Replace(f.preview.value),

		BibTeX: bibtex.Reconstruct(e, exclude),
	}
}

// MapType returns the publication type for a BibTeX entry type, matched
// case-insensitively. Unknown types map to journal with ok false.
func MapType(entryType string) (t publication.Type, ok bool) {
	t, ok = typeMapping[strings.ToLower(entryType)]
	if !ok {
		return publication.TypeJournal, false
	}
	return t, true
}

// field is a raw value that may be absent.
type field struct {
	value string
	set   bool
}

// entryFields holds the known fields of an entry before defaults apply.
type entryFields struct {
	id, title, author, year, month            field
	journal, booktitle, volume, number, pages field
	doi, url, code, abstract, keywords, note  field
	selected, preview, description            field
}

func extractFields(e bibtex.RawEntry) entryFields {
	get := func(name string) field {
		v, ok := e.Get(name)
		return field{value: v, set: ok}
	}
	return entryFields{
		id: get("id"), title: get("title"), author: get("author"),
		year: get("year"), month: get("month"),
		journal: get("journal"), booktitle: get("booktitle"),
		volume: get("volume"), number: get("number"), pages: get("pages"),
		doi: get("doi"), url: get("url"), code: get("code"),
		abstract: get("abstract"), keywords: get("keywords"), note: get("note"),
		selected: get("selected"), preview: get("preview"), description: get("description"),
	}
}

// resolveID prefers the citation key, then an explicit id field, then a
// value unique within the batch.
func resolveID(key, explicit string, batch time.Time, index int) string {
	if key != "" {
		return key
	}
	if explicit != "" {
		return explicit
	}
	return fmt.Sprintf("pub-%d-%d", batch.UnixMilli(), index)
}

// displayMonth returns the month number for recognized month names and the
// raw text otherwise.
func displayMonth(f field) string {
	if !f.set {
		return ""
	}
	if m, ok := publication.MonthName(f.value); ok {
		return strconv.Itoa(m)
	}
	return f.value
}

// splitKeywords splits a comma-separated keyword field, dropping blanks.
func splitKeywords(raw string) []string {
	keywords := []string{}
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keywords = append(keywords, k)
		}
	}
	return keywords
}

// SortPublications orders publications by year descending, then month
// descending. Entries without a resolvable month count as January unless
// monthlessLast is set, in which case they follow every dated entry of the
// same year. The sort is stable.
func SortPublications(pubs []publication.Publication, monthlessLast bool) {
	monthKey := func(p publication.Publication) int {
		if m, ok := publication.MonthNumber(p.Month); ok {
			return m
		}
		if monthlessLast {
			return 0
		}
		return 1
	}

	slices.SortStableFunc(pubs, func(a, b publication.Publication) int {
		if a.Year != b.Year {
			return cmp.Compare(b.Year, a.Year)
		}
		return cmp.Compare(monthKey(b), monthKey(a))
	})
}
