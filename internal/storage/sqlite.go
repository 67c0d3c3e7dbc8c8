package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/scholarfolio/folio/internal/publication"
	_ "modernc.org/sqlite"
)

// DB wraps the SQLite publication cache.
type DB struct {
	db *sql.DB
}

// OpenDB opens or creates a SQLite database at the given path.
func OpenDB(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// schemaVersion is stored in PRAGMA user_version. The cache is derived
// data, so a mismatch drops the tables instead of migrating them.
const schemaVersion = 2

// createSchema creates the database schema if it doesn't exist.
// Rows are keyed by display position: a bibliography may repeat a citation
// key and both entries are kept. Each row holds the full record as JSON;
// the other columns exist for filtering and ordering.
func createSchema(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}
	if version != schemaVersion {
		if _, err := db.Exec(`
			DROP TABLE IF EXISTS publications;
			DROP TABLE IF EXISTS publications_fts;
		`); err != nil {
			return fmt.Errorf("dropping stale cache: %w", err)
		}
	}

	schema := `
		CREATE TABLE IF NOT EXISTS publications (
			position INTEGER PRIMARY KEY,
			id TEXT NOT NULL,
			title TEXT NOT NULL,
			year INTEGER NOT NULL,
			type TEXT NOT NULL,
			venue TEXT,
			doi TEXT,
			selected INTEGER NOT NULL DEFAULT 0,
			record_json TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_publications_id ON publications(id);
		CREATE INDEX IF NOT EXISTS idx_publications_year ON publications(year);

		-- rowid matches publications.position
		CREATE VIRTUAL TABLE IF NOT EXISTS publications_fts USING fts5(
			title,
			authors_text,
			venue,
			keywords_text
		);
	`
	if _, err := db.Exec(schema); err != nil {
		return err
	}

	_, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", schemaVersion))
	return err
}

// Rebuild clears the cache and loads pubs in order. Repeated IDs are kept.
func (d *DB) Rebuild(pubs []publication.Publication) (int, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM publications"); err != nil {
		return 0, fmt.Errorf("clearing publications table: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM publications_fts"); err != nil {
		return 0, fmt.Errorf("clearing publications_fts table: %w", err)
	}

	pubStmt, err := tx.Prepare(`
		INSERT INTO publications (position, id, title, year, type, venue, doi, selected, record_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing publications insert: %w", err)
	}
	defer pubStmt.Close()

	ftsStmt, err := tx.Prepare(`
		INSERT INTO publications_fts (rowid, title, authors_text, venue, keywords_text)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing fts insert: %w", err)
	}
	defer ftsStmt.Close()

	for i, pub := range pubs {
		record, err := json.Marshal(pub)
		if err != nil {
			return 0, fmt.Errorf("marshaling %s: %w", pub.ID, err)
		}

		_, err = pubStmt.Exec(
			i, pub.ID, pub.Title, pub.Year, string(pub.Type),
			nullableString(pub.Venue()), nullableString(pub.DOI),
			pub.Selected, string(record),
		)
		if err != nil {
			return 0, fmt.Errorf("inserting %s: %w", pub.ID, err)
		}

		_, err = ftsStmt.Exec(i, pub.Title, formatAuthorsText(pub.Authors), pub.Venue(), strings.Join(pub.Keywords, " "))
		if err != nil {
			return 0, fmt.Errorf("inserting fts for %s: %w", pub.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing rebuild: %w", err)
	}
	return len(pubs), nil
}

// RebuildFromJSONL clears the database and rebuilds it from a JSONL snapshot.
func (d *DB) RebuildFromJSONL(jsonlPath string) (int, error) {
	pubs, err := ReadAll(jsonlPath)
	if err != nil {
		return 0, fmt.Errorf("reading JSONL: %w", err)
	}
	return d.Rebuild(pubs)
}

// formatAuthorsText creates a searchable text representation of authors.
func formatAuthorsText(authors []publication.Author) string {
	names := make([]string, len(authors))
	for i, a := range authors {
		names[i] = a.Name
	}
	return strings.Join(names, ", ")
}

// GetByID retrieves a publication by its ID, the first in display order
// when the ID repeats. It returns nil, nil when no publication has that ID.
func (d *DB) GetByID(id string) (*publication.Publication, error) {
	row := d.db.QueryRow(`SELECT record_json FROM publications WHERE id = ? ORDER BY position LIMIT 1`, id)
	return scanPublication(row)
}

// Search performs a full-text search over title, authors, venue and
// keywords. Results keep the cache's display order.
func (d *DB) Search(query string, limit int) ([]publication.Publication, error) {
	ftsQuery := prepareFTSQuery(query)
	if ftsQuery == "" {
		return nil, nil
	}

	rows, err := d.db.Query(`
		SELECT record_json
		FROM publications
		WHERE position IN (SELECT rowid FROM publications_fts WHERE publications_fts MATCH ?)
		ORDER BY position
		LIMIT ?`, ftsQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("searching: %w", err)
	}
	defer rows.Close()

	return scanPublications(rows)
}

// Count returns the total number of publications.
func (d *DB) Count() (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM publications").Scan(&count)
	return count, err
}

// scanner interface for sql.Row and sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanPublication(s scanner) (*publication.Publication, error) {
	var record string
	if err := s.Scan(&record); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	var pub publication.Publication
	if err := json.Unmarshal([]byte(record), &pub); err != nil {
		return nil, fmt.Errorf("parsing cached record: %w", err)
	}
	return &pub, nil
}

func scanPublications(rows *sql.Rows) ([]publication.Publication, error) {
	var pubs []publication.Publication
	for rows.Next() {
		pub, err := scanPublication(rows)
		if err != nil {
			return nil, err
		}
		if pub != nil {
			pubs = append(pubs, *pub)
		}
	}
	return pubs, rows.Err()
}

// nullableString converts a string to sql.NullString, treating empty as NULL.
func nullableString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// prepareFTSQuery quotes each whitespace-separated term so FTS5 operators
// such as OR, NOT and NEAR are matched as plain words. Terms are ANDed.
func prepareFTSQuery(query string) string {
	terms := strings.Fields(query)
	for i, term := range terms {
		terms[i] = "\"" + strings.ReplaceAll(term, "\"", "\"\"") + "\""
	}
	return strings.Join(terms, " ")
}
