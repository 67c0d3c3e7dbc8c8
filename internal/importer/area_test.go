package importer

import (
	"strconv"
	"testing"

	"github.com/scholarfolio/folio/internal/publication"
)

func TestClassifyArea(t *testing.T) {
	tests := []struct {
		title    string
		keywords []string
		want     publication.ResearchArea
	}{
		{"Deep Learning for Medical Imaging", nil, publication.AreaAIHealthcare},
		{"A Study", []string{"Healthcare"}, publication.AreaAIHealthcare},
		{"Graph Signal Denoising", nil, publication.AreaSignalProcessing},
		{"Natural Language Processing with Transformers", nil, publication.AreaSignalProcessing},
		{"Fault Diagnosis of Bearings", nil, publication.AreaReliabilityEngineering},
		{"Quantum Annealing", nil, publication.AreaQuantumComputing},
		{"Spiking Networks", nil, publication.AreaNeuralNetworks},
		{"Neural Attention", nil, publication.AreaNeuralNetworks},
		{"Efficient Attention", nil, publication.AreaTransformerArchitectures},
		{"Dense Retrieval", []string{"search"}, publication.AreaMachineLearning},
		{"Data Preprocessing Pipelines", nil, publication.AreaSignalProcessing}, // substring, not whole word
		{"", nil, publication.AreaMachineLearning},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			got := ClassifyArea(tt.title, tt.keywords)
			if got != tt.want {
				t.Errorf("ClassifyArea(%q, %v) = %q, want %q", tt.title, tt.keywords, got, tt.want)
			}
		})
	}
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
