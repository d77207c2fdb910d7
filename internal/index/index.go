// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package index maintains a SQLite full-text index over the library so
// records can be found by title, author, or journal without remembering
// the DOI.
package index

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/yongrenjie/cygnet/pkg/types"
)

const dbFile = "index.db"

// Index wraps the SQLite database holding the search index. The index is
// derived data: it can always be rebuilt from db.yaml.
type Index struct {
	db         *sql.DB
	maxResults int
}

// Hit is one search result.
type Hit struct {
	DOI     string
	Title   string
	Authors string
	Journal string
	Year    int
}

// Open opens or creates the index database inside the library directory.
func Open(libraryDir string, maxResults int) (*Index, error) {
	if err := os.MkdirAll(libraryDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating library directory: %w", err)
	}
	dbPath := filepath.Join(libraryDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening index database: %w", err)
	}
	if maxResults <= 0 {
		maxResults = 20
	}
	idx := &Index{db: db, maxResults: maxResults}
	if err := idx.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return idx, nil
}

// Close releases the database connection.
func (idx *Index) Close() error {
	return idx.db.Close()
}

func (idx *Index) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS records (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			doi TEXT NOT NULL UNIQUE,
			title TEXT,
			authors TEXT,
			journal TEXT,
			year INTEGER
		)`,
	}
	for _, stmt := range statements {
		if _, err := idx.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	var ftsExists int
	if err := idx.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='records_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}
	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE records_fts USING fts5(title, authors, journal, content=records, content_rowid=rowid)`,
			`CREATE TRIGGER records_ai AFTER INSERT ON records BEGIN
				INSERT INTO records_fts(rowid, title, authors, journal) VALUES (new.rowid, new.title, new.authors, new.journal);
			END`,
			`CREATE TRIGGER records_ad AFTER DELETE ON records BEGIN
				INSERT INTO records_fts(records_fts, rowid, title, authors, journal) VALUES('delete', old.rowid, old.title, old.authors, old.journal);
			END`,
			`CREATE TRIGGER records_au AFTER UPDATE ON records BEGIN
				INSERT INTO records_fts(records_fts, rowid, title, authors, journal) VALUES('delete', old.rowid, old.title, old.authors, old.journal);
				INSERT INTO records_fts(rowid, title, authors, journal) VALUES (new.rowid, new.title, new.authors, new.journal);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := idx.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}
	return nil
}

// Rebuild replaces the entire index with the given records. It runs in
// one transaction so a crash never leaves a half-built index.
func (idx *Index) Rebuild(ctx context.Context, records []types.Record) error {
	tx, err := idx.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting rebuild: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM records`); err != nil {
		return fmt.Errorf("clearing index: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO records (doi, title, authors, journal, year) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		authors := strings.Join(rec.FormatAuthors(types.StyleFull), ", ")
		journal := rec.JournalLong + " " + rec.JournalShort
		if _, err := stmt.ExecContext(ctx, rec.DOI, rec.Title, authors, journal, rec.Year); err != nil {
			return fmt.Errorf("indexing %s: %w", rec.DOI, err)
		}
	}
	return tx.Commit()
}

// Search runs a full-text query over titles, authors, and journal
// names. A query that parses as a year instead filters on the year
// column. Results are ranked by FTS5 relevance.
func (idx *Index) Search(ctx context.Context, query string) ([]Hit, error) {
	if year, err := strconv.Atoi(strings.TrimSpace(query)); err == nil && year > 1000 && year < 3000 {
		return idx.searchYear(ctx, year)
	}

	rows, err := idx.db.QueryContext(ctx,
		`SELECT r.doi, r.title, r.authors, r.journal, r.year
		 FROM records_fts
		 JOIN records r ON r.rowid = records_fts.rowid
		 WHERE records_fts MATCH ?
		 ORDER BY records_fts.rank
		 LIMIT ?`, ftsQuery(query), idx.maxResults)
	if err != nil {
		return nil, fmt.Errorf("searching index: %w", err)
	}
	defer rows.Close()
	return scanHits(rows)
}

func (idx *Index) searchYear(ctx context.Context, year int) ([]Hit, error) {
	rows, err := idx.db.QueryContext(ctx,
		`SELECT doi, title, authors, journal, year FROM records
		 WHERE year = ? ORDER BY doi LIMIT ?`, year, idx.maxResults)
	if err != nil {
		return nil, fmt.Errorf("searching index: %w", err)
	}
	defer rows.Close()
	return scanHits(rows)
}

func scanHits(rows *sql.Rows) ([]Hit, error) {
	var hits []Hit
	for rows.Next() {
		var h Hit
		if err := rows.Scan(&h.DOI, &h.Title, &h.Authors, &h.Journal, &h.Year); err != nil {
			return nil, fmt.Errorf("scanning result: %w", err)
		}
		hits = append(hits, h)
	}
	return hits, rows.Err()
}

// ftsQuery quotes each term so user input containing FTS5 operators
// (hyphens, quotes) cannot break the query syntax.
func ftsQuery(query string) string {
	terms := strings.Fields(query)
	for i, t := range terms {
		terms[i] = `"` + strings.ReplaceAll(t, `"`, `""`) + `"`
	}
	return strings.Join(terms, " ")
}
