package bibtex

import (
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"plain", "Deep Learning", "Deep Learning"},
		{"single braces", "{Deep Learning}", "Deep Learning"},
		{"double braces", "{{BERT}}: Pre-training", "BERT: Pre-training"},
		{"nested braces", "A {Nested {Brace}} Title", "A Nested Brace Title"},
		{"outer double quotes", `"Quoted Title"`, "Quoted Title"},
		{"outer single quotes", `'Quoted'`, "Quoted"},
		{"quotes inside braces", `"{"Inner"}"`, "Inner"},
		{"unbalanced open", "Unbalanced {brace", "Unbalanced brace"},
		{"reversed braces", "}{", ""},
		{"only braces", "{{}}", ""},
		{"textbf", `\textbf{Bold} move`, "Bold move"},
		{"emph", `A \emph{very} good idea`, "A very good idea"},
		{"cite dropped", `As shown \cite{smith2020} here`, "As shown here"},
		{"accent backslash", `Caf\'e`, "Caf'e"},
		{"tilde", "New~York", "New York"},
		{"whitespace", "  many   spaces\n here ", "many spaces here"},
		{"trailing apostrophe", "The Students'", "The Students"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

var normalizeCorpus = []string{
	"",
	"{",
	"}",
	"}{",
	`""`,
	`"'`,
	`"{"x"}"`,
	`""x""`,
	`"x" `,
	`{"}x`,
	`\textbf{\emph{x}}`,
	`\text\emph{}bf{x}`,
	`\\cite{a}b`,
	"{{a}{b}}",
	"a~~b",
	"  {  } ",
	`'{'}'`,
	"Ünïcödé {Tïtle}",
	"{A {B {C {D}}}}",
	"x\\",
}

func TestNormalize_Idempotent(t *testing.T) {
	for _, s := range normalizeCorpus {
		once := Normalize(s)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q then %q", s, once, twice)
		}
	}
}

func TestNormalize_Invariants(t *testing.T) {
	for _, s := range normalizeCorpus {
		got := Normalize(s)
		if strings.ContainsAny(got, `{}\`) {
			t.Errorf("Normalize(%q) = %q contains a brace or backslash", s, got)
		}
		if got != "" && (strings.ContainsAny(got[:1], `"'`) || strings.ContainsAny(got[len(got)-1:], `"'`)) {
			t.Errorf("Normalize(%q) = %q has an outer quote", s, got)
		}
		if got != strings.TrimSpace(got) {
			t.Errorf("Normalize(%q) = %q is not trimmed", s, got)
		}
	}
}
