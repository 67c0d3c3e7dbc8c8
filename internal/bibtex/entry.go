// Package bibtex reads, cleans and writes BibTeX entries.
package bibtex

import "strings"

// Field is one name/value pair of an entry.
type Field struct {
	Name  string
	Value string
}

// RawEntry is one bibliographic record as written in the source file.
// Field names are lowercase and unique; Fields keeps their first-seen order.
type RawEntry struct {
	Type   string // entry type as written, e.g. "article" or "InProceedings"
	Key    string // citation key, may be empty
	Fields []Field
}

// Get returns the value of the named field.
func (e RawEntry) Get(name string) (string, bool) {
	name = strings.ToLower(name)
	for _, f := range e.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// Value returns the named field, or "" when absent.
func (e RawEntry) Value(name string) string {
	v, _ := e.Get(name)
	return v
}

// Set assigns a field. A repeated name overwrites the value in place.
func (e *RawEntry) Set(name, value string) {
	name = strings.ToLower(name)
	for i := range e.Fields {
		if e.Fields[i].Name == name {
			e.Fields[i].Value = value
			return
		}
	}
	e.Fields = append(e.Fields, Field{Name: name, Value: value})
}

// NewEntry builds an entry from ordered name/value pairs.
func NewEntry(entryType, key string, pairs ...string) RawEntry {
	e := RawEntry{Type: entryType, Key: key}
	for i := 0; i+1 < len(pairs); i += 2 {
		e.Set(pairs[i], pairs[i+1])
	}
	return e
}
