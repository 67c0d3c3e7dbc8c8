// Package publication defines the display-ready records produced from
// bibliographic entries.
package publication

// Type is the coarse kind of a publication.
type Type string

const (
	TypeJournal         Type = "journal"
	TypeConference      Type = "conference"
	TypeWorkshop        Type = "workshop"
	TypeBookChapter     Type = "book-chapter"
	TypeBook            Type = "book"
	TypeThesis          Type = "thesis"
	TypePreprint        Type = "preprint"
	TypePatent          Type = "patent"
	TypeTechnicalReport Type = "technical-report"
)

// Types lists every publication type.
var Types = []Type{
	TypeJournal, TypeConference, TypeWorkshop, TypeBookChapter, TypeBook,
	TypeThesis, TypePreprint, TypePatent, TypeTechnicalReport,
}

// IsValid reports whether t is one of the known types.
func (t Type) IsValid() bool {
	for _, v := range Types {
		if t == v {
			return true
		}
	}
	return false
}

// ResearchArea is a topical classification assigned from title and keyword text.
type ResearchArea string

const (
	AreaAIHealthcare             ResearchArea = "ai-healthcare"
	AreaSignalProcessing         ResearchArea = "signal-processing"
	AreaReliabilityEngineering   ResearchArea = "reliability-engineering"
	AreaQuantumComputing         ResearchArea = "quantum-computing"
	AreaMachineLearning          ResearchArea = "machine-learning"
	AreaNeuralNetworks           ResearchArea = "neural-networks"
	AreaTransformerArchitectures ResearchArea = "transformer-architectures"
)

// Status is the workflow state of a publication. Only published is produced.
type Status string

const StatusPublished Status = "published"

// Author is one entry of a publication's author list.
type Author struct {
	Name            string `json:"name"`
	IsHighlighted   bool   `json:"is_highlighted"`
	IsCorresponding bool   `json:"is_corresponding"`
	IsCoAuthor      bool   `json:"is_co_author"`
}

// Publication is a normalized bibliographic record.
//
// Optional string fields use the empty string for "absent"; consumers must
// not distinguish a missing value from an empty one.
type Publication struct {
	// Identity
	ID string `json:"id"`

	// Metadata
	Title        string       `json:"title"`
	Authors      []Author     `json:"authors"`
	Year         int          `json:"year"`
	Month        string       `json:"month,omitempty"` // numeric when recognized, raw text otherwise
	Type         Type         `json:"type"`
	Status       Status       `json:"status"`
	Tags         []string     `json:"tags"`
	Keywords     []string     `json:"keywords"`
	ResearchArea ResearchArea `json:"research_area"`

	// Venue
	Journal    string `json:"journal,omitempty"`
	Conference string `json:"conference,omitempty"` // from booktitle
	Volume     string `json:"volume,omitempty"`
	Issue      string `json:"issue,omitempty"` // from number
	Pages      string `json:"pages,omitempty"`

	// Links
	DOI  string `json:"doi,omitempty"`
	URL  string `json:"url,omitempty"`
	Code string `json:"code,omitempty"`

	// Display
	Abstract    string `json:"abstract,omitempty"`
	Description string `json:"description,omitempty"` // from description, else note
	Selected    bool   `json:"selected"`
	Preview     string `json:"preview,omitempty"`

	// Cleaned citation text with internal-only fields removed
	BibTeX string `json:"bibtex,omitempty"`
}

// Venue returns the journal, falling back to the conference.
func (p Publication) Venue() string {
	if p.Journal != "" {
		return p.Journal
	}
	return p.Conference
}

// DefaultExcludeFields are the internal-only fields stripped from
// reconstructed citation text.
var DefaultExcludeFields = []string{"selected", "preview", "description", "keywords", "code"}
