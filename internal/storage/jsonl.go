// Package storage handles publication snapshots in JSONL and the SQLite
// query cache built from them.
package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/scholarfolio/folio/internal/publication"
)

// MaxJSONLLineCapacity is the maximum buffer size for reading JSONL lines (1MB per line).
const MaxJSONLLineCapacity = 1024 * 1024

// ReadAll reads all publications from a JSONL file.
func ReadAll(path string) ([]publication.Publication, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // Missing snapshot reads as empty
		}
		return nil, fmt.Errorf("opening snapshot: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode reads publications, one JSON object per line.
func Decode(r io.Reader) ([]publication.Publication, error) {
	var pubs []publication.Publication
	scanner := bufio.NewScanner(r)

	buf := make([]byte, MaxJSONLLineCapacity)
	scanner.Buffer(buf, MaxJSONLLineCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var pub publication.Publication
		if err := json.Unmarshal(line, &pub); err != nil {
			return nil, fmt.Errorf("parsing line %d: %w", lineNum, err)
		}
		pubs = append(pubs, pub)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	return pubs, nil
}

// Encode writes publications as JSONL.
func Encode(w io.Writer, pubs []publication.Publication) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for i, pub := range pubs {
		if err := enc.Encode(pub); err != nil {
			return fmt.Errorf("encoding publication %d: %w", i, err)
		}
	}
	return nil
}

// WriteAll writes all publications to a JSONL file, replacing existing
// content. Parent directories are created as needed.
func WriteAll(path string, pubs []publication.Publication) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating snapshot directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating snapshot: %w", err)
	}

	w := bufio.NewWriter(f)
	if err := Encode(w, pubs); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return f.Close()
}

// FindByID searches for a publication by ID.
func FindByID(pubs []publication.Publication, id string) (int, bool) {
	for i, pub := range pubs {
		if pub.ID == id {
			return i, true
		}
	}
	return -1, false
}
