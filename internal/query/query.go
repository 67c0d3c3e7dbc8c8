// Package query filters, pages and summarizes a parsed publication list.
package query

import (
	"cmp"
	"slices"
	"strings"

	"github.com/scholarfolio/folio/internal/publication"
)

// DefaultPageSize is the number of publications shown per page.
const DefaultPageSize = 8

// AllTypes matches every publication type. The empty type does too.
const AllTypes publication.Type = "all"

// Filters narrows a publication list. Zero values match everything.
type Filters struct {
	Search string           `json:"search"` // case-insensitive substring of title, author, journal or conference
	Year   int              `json:"year"`   // exact year, 0 for all years
	Type   publication.Type `json:"type"`   // exact type, "" or AllTypes for all types
}

// Matches reports whether p passes every filter.
func (f Filters) Matches(p publication.Publication) bool {
	if f.Year != 0 && p.Year != f.Year {
		return false
	}
	if f.Type != "" && f.Type != AllTypes && p.Type != f.Type {
		return false
	}
	return matchesSearch(p, strings.ToLower(f.Search))
}

func matchesSearch(p publication.Publication, q string) bool {
	if strings.Contains(strings.ToLower(p.Title), q) {
		return true
	}
	for _, a := range p.Authors {
		if strings.Contains(strings.ToLower(a.Name), q) {
			return true
		}
	}
	if p.Journal != "" && strings.Contains(strings.ToLower(p.Journal), q) {
		return true
	}
	return p.Conference != "" && strings.Contains(strings.ToLower(p.Conference), q)
}

// Result is one page of matching publications.
type Result struct {
	Items         []publication.Publication `json:"items"`
	TotalFiltered int                       `json:"total_filtered"`
	TotalPages    int                       `json:"total_pages"`
	Page          int                       `json:"page"`
	RangeStart    int                       `json:"range_start"` // 1-based, 0 when nothing matched
	RangeEnd      int                       `json:"range_end"`   // inclusive, 0 when nothing matched
}

// Filter returns the publications matching f in their original order.
func Filter(pubs []publication.Publication, f Filters) []publication.Publication {
	out := make([]publication.Publication, 0, len(pubs))
	for _, p := range pubs {
		if f.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}

// Run filters pubs and returns the requested page. The page is clamped to
// [1, TotalPages] and there is always at least one page. A pageSize below
// 1 uses DefaultPageSize.
func Run(pubs []publication.Publication, f Filters, page, pageSize int) Result {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	filtered := Filter(pubs, f)
	total := len(filtered)
	totalPages := max(1, (total+pageSize-1)/pageSize)
	page = min(max(page, 1), totalPages)

	start := (page - 1) * pageSize
	end := min(start+pageSize, total)

	res := Result{
		Items:         filtered[start:end],
		TotalFiltered: total,
		TotalPages:    totalPages,
		Page:          page,
	}
	if total > 0 {
		res.RangeStart = start + 1
		res.RangeEnd = end
	}
	return res
}

// Facets are the distinct filter values present in a publication list.
type Facets struct {
	Years []int              `json:"years"` // newest first
	Types []publication.Type `json:"types"` // lexicographic
}

// BuildFacets collects distinct years and types. Pass the unfiltered list
// so the choices stay stable while filters change.
func BuildFacets(pubs []publication.Publication) Facets {
	years := make(map[int]bool)
	types := make(map[publication.Type]bool)
	for _, p := range pubs {
		years[p.Year] = true
		types[p.Type] = true
	}

	f := Facets{
		Years: make([]int, 0, len(years)),
		Types: make([]publication.Type, 0, len(types)),
	}
	for y := range years {
		f.Years = append(f.Years, y)
	}
	for t := range types {
		f.Types = append(f.Types, t)
	}
	slices.SortFunc(f.Years, func(a, b int) int { return cmp.Compare(b, a) })
	slices.Sort(f.Types)
	return f
}

// Selected returns the publications flagged as selected, in list order,
// keeping at most limit of them when limit > 0.
func Selected(pubs []publication.Publication, limit int) []publication.Publication {
	out := []publication.Publication{}
	for _, p := range pubs {
		if !p.Selected {
			continue
		}
		out = append(out, p)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
