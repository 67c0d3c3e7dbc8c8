package query

import "github.com/scholarfolio/folio/internal/publication"

// Session holds the filter and page state of one publication list view.
// Changing any filter returns to the first page.
type Session struct {
	pubs     []publication.Publication
	facets   Facets
	filters  Filters
	page     int
	pageSize int
}

// NewSession starts a view over pubs on page 1 with no filters.
func NewSession(pubs []publication.Publication, pageSize int) *Session {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return &Session{
		pubs:     pubs,
		facets:   BuildFacets(pubs),
		page:     1,
		pageSize: pageSize,
	}
}

// Filters returns the active filters.
func (s *Session) Filters() Filters { return s.filters }

// Facets returns the facets of the unfiltered list.
func (s *Session) Facets() Facets { return s.facets }

// Page returns the current page, clamped to the available pages.
func (s *Session) Page() int { return s.Result().Page }

// SetFilters replaces the filters, resetting to page 1 if they changed.
func (s *Session) SetFilters(f Filters) {
	if f != s.filters {
		s.filters = f
		s.page = 1
	}
}

// SetSearch updates only the search text.
func (s *Session) SetSearch(search string) {
	f := s.filters
	f.Search = search
	s.SetFilters(f)
}

// SetYear updates only the year filter. 0 means all years.
func (s *Session) SetYear(year int) {
	f := s.filters
	f.Year = year
	s.SetFilters(f)
}

// SetType updates only the type filter.
func (s *Session) SetType(t publication.Type) {
	f := s.filters
	f.Type = t
	s.SetFilters(f)
}

// SetPage moves to page n, clamped to [1, TotalPages].
func (s *Session) SetPage(n int) {
	s.page = n
	s.page = s.Result().Page
}

// Result returns the current page.
func (s *Session) Result() Result {
	return Run(s.pubs, s.filters, s.page, s.pageSize)
}
