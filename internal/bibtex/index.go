package bibtex

import "strings"

// Index records citation keys and DOIs of a set of entries so duplicates
// can be reported before publications are built.
type Index struct {
	// Keys maps citation keys to the number of entries using them
	Keys map[string]int
	// DOIs maps normalized DOI values to the citation keys that carry them
	DOIs map[string][]string
}

// Duplicate describes a key or DOI shared by more than one entry.
type Duplicate struct {
	Kind  string   `json:"kind"` // "key" or "doi"
	Value string   `json:"value"`
	Keys  []string `json:"keys,omitempty"`
	Count int      `json:"count"`
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{
		Keys: make(map[string]int),
		DOIs: make(map[string][]string),
	}
}

// BuildIndex indexes the given entries.
func BuildIndex(entries []RawEntry) *Index {
	idx := NewIndex()
	for _, e := range entries {
		idx.Add(e)
	}
	return idx
}

// Add indexes one entry. Entries without a key are only indexed by DOI.
func (idx *Index) Add(e RawEntry) {
	if e.Key != "" {
		idx.Keys[e.Key]++
	}
	if doi := normalizeDOI(e.Value("doi")); doi != "" {
		idx.DOIs[doi] = append(idx.DOIs[doi], e.Key)
	}
}

// Duplicates lists keys and DOIs used by more than one entry, keys first,
// each group in first-seen order of the given entries.
func (idx *Index) Duplicates(entries []RawEntry) []Duplicate {
	var dups []Duplicate
	seen := make(map[string]bool)

	for _, e := range entries {
		if e.Key == "" || seen["key:"+e.Key] {
			continue
		}
		seen["key:"+e.Key] = true
		if n := idx.Keys[e.Key]; n > 1 {
			dups = append(dups, Duplicate{Kind: "key", Value: e.Key, Count: n})
		}
	}

	for _, e := range entries {
		doi := normalizeDOI(e.Value("doi"))
		if doi == "" || seen["doi:"+doi] {
			continue
		}
		seen["doi:"+doi] = true
		if keys := idx.DOIs[doi]; len(keys) > 1 {
			dups = append(dups, Duplicate{Kind: "doi", Value: doi, Keys: keys, Count: len(keys)})
		}
	}

	return dups
}

// normalizeDOI normalizes a DOI for comparison.
// Removes common prefixes like "https://doi.org/" and lowercases.
func normalizeDOI(doi string) string {
	doi = strings.TrimSpace(doi)
	doi = strings.TrimPrefix(doi, "https://doi.org/")
	doi = strings.TrimPrefix(doi, "http://doi.org/")
	doi = strings.TrimPrefix(doi, "doi.org/")
	doi = strings.TrimPrefix(doi, "DOI:")
	doi = strings.TrimPrefix(doi, "doi:")
	return strings.ToLower(doi)
}
