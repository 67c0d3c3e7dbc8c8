package importer

import (
	"strings"

	"github.com/scholarfolio/folio/internal/publication"
)

// areaRules are checked in order; the first rule with a matching term wins.
var areaRules = []struct {
	area  publication.ResearchArea
	terms []string
}{
	{publication.AreaAIHealthcare, []string{"healthcare", "medical", "health"}},
	{publication.AreaSignalProcessing, []string{"signal", "processing"}},
	{publication.AreaReliabilityEngineering, []string{"reliability", "fault", "diagnosis"}},
	{publication.AreaQuantumComputing, []string{"quantum"}},
	{publication.AreaNeuralNetworks, []string{"neural", "spiking"}},
	{publication.AreaTransformerArchitectures, []string{"transformer", "attention"}},
}

// ClassifyArea assigns a research area from substrings of the title and
// keywords (case-insensitive), defaulting to machine learning.
func ClassifyArea(title string, keywords []string) publication.ResearchArea {
	text := strings.ToLower(title + " " + strings.Join(keywords, " "))
	for _, r := range areaRules {
		for _, term := range r.terms {
			if strings.Contains(text, term) {
				return r.area
			}
		}
	}
	return publication.AreaMachineLearning
}
