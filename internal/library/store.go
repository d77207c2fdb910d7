// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package library owns the on-disk library: a YAML document stream of
// records plus the pdf/ and si/ artifact folders next to it.
package library

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/yongrenjie/cygnet/pkg/types"
)

// dbFilename is the record database inside the library directory.
const dbFilename = "db.yaml"

// ArtifactKind distinguishes the main PDF from supporting information.
type ArtifactKind string

const (
	KindPDF ArtifactKind = "pdf"
	KindSI  ArtifactKind = "si"
)

// ErrNotFound is returned when a DOI is not in the store.
var ErrNotFound = errors.New("record not found")

// Store is an in-memory view of one library directory. Mutations happen
// in memory; Save writes the whole database back out.
type Store struct {
	dir        string
	maxBackups int
	records    []types.Record
}

// Open loads the library at cfg.Dir, creating the directory if needed.
// A missing db.yaml is an empty library, not an error.
func Open(cfg types.LibraryConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating library directory %s: %w", cfg.Dir, err)
	}
	s := &Store{dir: cfg.Dir, maxBackups: cfg.MaxBackups}

	f, err := os.Open(filepath.Join(cfg.Dir, dbFilename))
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", dbFilename, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	for {
		var rec types.Record
		if err := dec.Decode(&rec); err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", dbFilename, err)
		}
		s.records = append(s.records, rec)
	}
	return s, nil
}

// Dir returns the library directory.
func (s *Store) Dir() string { return s.dir }

// Records returns the records in storage order. The slice is a copy.
func (s *Store) Records() []types.Record {
	out := make([]types.Record, len(s.records))
	copy(out, s.records)
	return out
}

// Len returns the number of records.
func (s *Store) Len() int { return len(s.records) }

// Get looks up a record by DOI.
func (s *Store) Get(doi string) (types.Record, bool) {
	for _, r := range s.records {
		if r.DOI == doi {
			return r, true
		}
	}
	return types.Record{}, false
}

// Add appends a new record, stamping TimeAdded. Duplicate DOIs are
// rejected.
func (s *Store) Add(rec types.Record) error {
	if _, ok := s.Get(rec.DOI); ok {
		return fmt.Errorf("record %s already in library", rec.DOI)
	}
	if rec.TimeAdded.IsZero() {
		rec.TimeAdded = time.Now()
	}
	s.records = append(s.records, rec)
	return nil
}

// Replace swaps in new metadata for doi, keeping the bookkeeping
// timestamps of the existing record.
func (s *Store) Replace(doi string, rec types.Record) error {
	for i, r := range s.records {
		if r.DOI == doi {
			rec.TimeAdded = r.TimeAdded
			rec.TimeOpened = r.TimeOpened
			s.records[i] = rec
			return nil
		}
	}
	return fmt.Errorf("replacing %s: %w", doi, ErrNotFound)
}

// Delete removes a record by DOI. Artifact files are left in place.
func (s *Store) Delete(doi string) error {
	for i, r := range s.records {
		if r.DOI == doi {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("deleting %s: %w", doi, ErrNotFound)
}

// Touch stamps TimeOpened on a record, for tracking which PDFs have
// actually been read.
func (s *Store) Touch(doi string) error {
	for i := range s.records {
		if s.records[i].DOI == doi {
			s.records[i].TimeOpened = time.Now()
			return nil
		}
	}
	return fmt.Errorf("touching %s: %w", doi, ErrNotFound)
}

// ArtifactPath is where the PDF or SI file for doi lives. Slashes in the
// DOI are replaced with "#" so each artifact is a single filename.
func (s *Store) ArtifactPath(doi string, kind ArtifactKind) string {
	return filepath.Join(s.dir, string(kind), strings.ReplaceAll(doi, "/", "#")+".pdf")
}

// HasArtifact reports whether the PDF or SI file for doi is on disk.
func (s *Store) HasArtifact(doi string, kind ArtifactKind) bool {
	_, err := os.Stat(s.ArtifactPath(doi, kind))
	return err == nil
}

// Save writes all records to db.yaml as a YAML document stream, one
// document per record.
func (s *Store) Save() error {
	tmp := filepath.Join(s.dir, dbFilename+".tmp")
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("writing %s: %w", dbFilename, err)
	}
	if err := encodeRecords(f, s.records); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("writing %s: %w", dbFilename, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, filepath.Join(s.dir, dbFilename))
}

func encodeRecords(w io.Writer, records []types.Record) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return err
		}
	}
	return enc.Close()
}

// Backup writes a timestamped snapshot into backups/ and rotates old
// ones. A snapshot identical to the previous backup is deleted again, so
// the rotation is not churned by no-op saves.
func (s *Store) Backup() error {
	if s.maxBackups <= 0 || len(s.records) == 0 {
		return nil
	}
	dir := filepath.Join(s.dir, "backups")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	name := dbFilename + time.Now().Format(".060102_150405")
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating backup: %w", err)
	}
	if err := encodeRecords(f, s.records); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("writing backup: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	return s.rotateBackups(dir)
}

// rotateBackups keeps at most maxBackups files. Backup names sort
// chronologically, so the most recent is last.
func (s *Store) rotateBackups(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	// If the newest backup duplicates the one before, drop the newest.
	if len(names) >= 2 && sameContents(filepath.Join(dir, names[len(names)-1]), filepath.Join(dir, names[len(names)-2])) {
		if err := os.Remove(filepath.Join(dir, names[len(names)-1])); err != nil {
			return err
		}
		names = names[:len(names)-1]
	}

	for len(names) > s.maxBackups {
		if err := os.Remove(filepath.Join(dir, names[0])); err != nil {
			return err
		}
		names = names[1:]
	}
	return nil
}

func sameContents(a, b string) bool {
	da, err := os.ReadFile(a)
	if err != nil {
		return false
	}
	db, err := os.ReadFile(b)
	if err != nil {
		return false
	}
	return bytes.Equal(da, db)
}
