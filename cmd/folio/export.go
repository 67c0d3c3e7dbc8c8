package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scholarfolio/folio/internal/bibtex"
	"github.com/scholarfolio/folio/internal/content"
	"github.com/scholarfolio/folio/internal/publication"
	"github.com/scholarfolio/folio/internal/storage"
)

var (
	exportFormat string
	exportOutput string
	exportSource string
	exportKeys   string
)

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "bibtex", "Output format: bibtex or jsonl")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to a file instead of stdout")
	exportCmd.Flags().StringVar(&exportSource, "source", "", "BibTeX file relative to the content directory (default: from config)")
	exportCmd.Flags().StringVar(&exportKeys, "keys", "", "Export only specified IDs (comma-separated)")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export cleaned BibTeX or parsed publications",
	Long: `Export publications in display order.

The bibtex format writes the cleaned citation text of each publication,
with internal fields such as selected and preview removed. The jsonl
format writes one parsed publication per line.

Examples:
  folio export > site.bib
  folio export --format jsonl --output publications.jsonl
  folio export --keys doe2025sparse,lee2024notes`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

// ExportResult is the response for export when writing to a file.
type ExportResult struct {
	Status       string `json:"status"`
	Format       string `json:"format"`
	Path         string `json:"path"`
	Publications int    `json:"publications"`
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportFormat != "bibtex" && exportFormat != "jsonl" {
		exitWithError(ExitError, "invalid format %q (valid: bibtex, jsonl)", exportFormat)
	}

	root := mustFindContent()
	site := mustLoadSite(root)
	source := content.PublicationSource(site, exportSource)
	entries, err := newLoader(root).Entries(source)
	if err != nil {
		exitWithError(ExitDataError, "loading publications: %v", err)
	}
	pubs := mustLoadPublications(root, site, source)

	if exportKeys != "" {
		var missing []string
		pubs, missing = selectByID(pubs, strings.Split(exportKeys, ","))
		if len(missing) > 0 {
			exitWithError(ExitError, "publications not found: %s", strings.Join(missing, ", "))
		}
	}

	exp := exportSet{
		Pubs:    pubs,
		Entries: entries,
		Exclude: site.Publications.ExcludeFields,
	}

	if exportOutput == "" {
		if err := writeExport(os.Stdout, exportFormat, exp); err != nil {
			exitWithError(ExitError, "writing export: %v", err)
		}
		return nil
	}

	f, err := os.Create(exportOutput)
	if err != nil {
		exitWithError(ExitError, "creating %s: %v", exportOutput, err)
	}
	w := bufio.NewWriter(f)
	if err := writeExport(w, exportFormat, exp); err != nil {
		f.Close()
		exitWithError(ExitError, "writing export: %v", err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		exitWithError(ExitError, "writing export: %v", err)
	}
	if err := f.Close(); err != nil {
		exitWithError(ExitError, "closing %s: %v", exportOutput, err)
	}

	if humanOutput {
		fmt.Printf("Exported %d publications to %s\n", len(pubs), exportOutput)
	} else {
		outputJSON(ExportResult{Status: "exported", Format: exportFormat, Path: exportOutput, Publications: len(pubs)})
	}
	return nil
}

// exportSet is what an export writes: publications in display order and
// the source entries they were parsed from.
type exportSet struct {
	Pubs    []publication.Publication
	Entries []bibtex.RawEntry
	Exclude []string // nil means publication.DefaultExcludeFields
}

// writeExport writes the set in the given format.
func writeExport(w io.Writer, format string, exp exportSet) error {
	if format == "jsonl" {
		return storage.Encode(w, exp.Pubs)
	}

	exclude := exp.Exclude
	if exclude == nil {
		exclude = publication.DefaultExcludeFields
	}
	text := bibtex.ReconstructAll(matchEntries(exp.Pubs, exp.Entries, exclude), exclude)
	if text == "" {
		return nil
	}
	_, err := io.WriteString(w, text+"\n")
	return err
}

// matchEntries returns the source entry of each publication, in the
// publications' order. An entry matches when it renders to the
// publication's BibTeX, so repeated keys pair up with the right entry.
// Publications with no matching entry are skipped.
func matchEntries(pubs []publication.Publication, entries []bibtex.RawEntry, exclude []string) []bibtex.RawEntry {
	byText := make(map[string][]int, len(entries))
	for i, e := range entries {
		text := bibtex.Reconstruct(e, exclude)
		byText[text] = append(byText[text], i)
	}

	out := make([]bibtex.RawEntry, 0, len(pubs))
	for _, p := range pubs {
		queue := byText[p.BibTeX]
		if len(queue) == 0 {
			continue
		}
		out = append(out, entries[queue[0]])
		byText[p.BibTeX] = queue[1:]
	}
	return out
}

// selectByID returns the publications with the given IDs in the order
// requested, plus the IDs that were not found.
func selectByID(pubs []publication.Publication, ids []string) ([]publication.Publication, []string) {
	var out []publication.Publication
	var missing []string
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if i, ok := storage.FindByID(pubs, id); ok {
			out = append(out, pubs[i])
		} else {
			missing = append(missing, id)
		}
	}
	return out, missing
}
