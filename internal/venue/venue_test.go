package venue

import "testing"

func TestFormat(t *testing.T) {
	tests := []struct {
		name  string
		venue string
		year  int
		want  string
	}{
		{"emnlp findings", "Findings of EMNLP", 2024, "EMNLP 2024 Findings"},
		{"emnlp main", "Proceedings of EMNLP", 2023, "EMNLP 2023"},
		{"emnlp no year", "EMNLP Findings", 0, "EMNLP Findings"},
		{"acl findings", "Findings of the Association for Computational Linguistics: ACL 2024", 0, "ACL 2024 Findings"},
		{"acl main", "Annual Meeting of the ACL", 2022, "ACL 2022"},
		{"acl embedded year wins", "ACL 2021", 2024, "ACL 2021"},
		{"tois full name", "ACM Transactions on Information Systems", 2024, "TOIS 2024"},
		{"tois alias no year", "TOIS", 0, "TOIS"},
		{"neurips", "Advances in NeurIPS", 2023, "NeurIPS 2023"},
		{"wsdm long name", "Web Search and Data Mining", 2025, "WSDM 2025"},
		{"arxiv drops year", "arXiv preprint", 2023, "arXiv"},
		{"arxiv with embedded year", "arXiv preprint 2023", 0, "arXiv"},
		{"unknown with embedded year", "ICML 2024", 2023, "ICML 2024"},
		{"unknown with year", "Nature", 2022, "Nature 2022"},
		{"unknown without year", "Nature", 0, "Nature"},
		{"empty venue with year", "", 2022, "2022"},
		{"empty venue no year", "", 0, ""},
		{"whitespace venue", "   ", 2021, "2021"},
		{"year outside range not embedded", "Journal 1999", 2020, "Journal 1999 2020"},
		{"acl substring of oracle", "Oracle Workshop", 2020, "ACL 2020"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Format(tt.venue, tt.year)
			if got != tt.want {
				t.Errorf("Format(%q, %d) = %q, want %q", tt.venue, tt.year, got, tt.want)
			}
		})
	}
}
