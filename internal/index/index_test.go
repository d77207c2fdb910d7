// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"context"
	"testing"

	"github.com/yongrenjie/cygnet/pkg/types"
)

func testIndex(t *testing.T) *Index {
	t.Helper()
	idx, err := Open(t.TempDir(), 20)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { idx.Close() })
	return idx
}

func testRecords() []types.Record {
	return []types.Record{
		{
			DOI:   "10.1016/j.pnmrs.2019.12.001",
			Title: "Pure shift NMR",
			Authors: []types.Author{
				{Family: "Yong", Given: "Jonathan R. J."},
				{Family: "Foroozandeh", Given: "Mohammadali"},
			},
			JournalLong:  "Progress in Nuclear Magnetic Resonance Spectroscopy",
			JournalShort: "Prog. Nucl. Magn. Reson. Spectrosc.",
			Year:         2020,
		},
		{
			DOI:          "10.1039/C6CC06824C",
			Title:        "Ultrafast diffusion-ordered spectroscopy",
			Authors:      []types.Author{{Family: "Guduff", Given: "Ludmilla"}},
			JournalLong:  "Chemical Communications",
			JournalShort: "Chem. Commun.",
			Year:         2017,
		},
	}
}

func TestSearchByTitle(t *testing.T) {
	idx := testIndex(t)
	if err := idx.Rebuild(context.Background(), testRecords()); err != nil {
		t.Fatal(err)
	}

	hits, err := idx.Search(context.Background(), "pure shift")
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 1 {
		t.Fatalf("got %d hits, want 1", len(hits))
	}
	if hits[0].DOI != "10.1016/j.pnmrs.2019.12.001" {
		t.Errorf("hit = %+v", hits[0])
	}
}

func TestSearchByAuthor(t *testing.T) {
	idx := testIndex(t)
	if err := idx.Rebuild(context.Background(), testRecords()); err != nil {
		t.Fatal(err)
	}

	hits, err := idx.Search(context.Background(), "Foroozandeh")
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 1 || hits[0].DOI != "10.1016/j.pnmrs.2019.12.001" {
		t.Errorf("hits = %+v", hits)
	}
}

func TestSearchByYear(t *testing.T) {
	idx := testIndex(t)
	if err := idx.Rebuild(context.Background(), testRecords()); err != nil {
		t.Fatal(err)
	}

	hits, err := idx.Search(context.Background(), "2017")
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 1 || hits[0].DOI != "10.1039/C6CC06824C" {
		t.Errorf("hits = %+v", hits)
	}
}

func TestSearchNoResults(t *testing.T) {
	idx := testIndex(t)
	if err := idx.Rebuild(context.Background(), testRecords()); err != nil {
		t.Fatal(err)
	}

	hits, err := idx.Search(context.Background(), "nonexistent topic")
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 0 {
		t.Errorf("got %d hits, want 0", len(hits))
	}
}

func TestSearchHyphenatedQuery(t *testing.T) {
	idx := testIndex(t)
	if err := idx.Rebuild(context.Background(), testRecords()); err != nil {
		t.Fatal(err)
	}

	// Hyphens are FTS5 operators when unquoted.
	hits, err := idx.Search(context.Background(), "diffusion-ordered")
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 1 || hits[0].DOI != "10.1039/C6CC06824C" {
		t.Errorf("hits = %+v", hits)
	}
}

func TestRebuildReplacesOldEntries(t *testing.T) {
	idx := testIndex(t)
	if err := idx.Rebuild(context.Background(), testRecords()); err != nil {
		t.Fatal(err)
	}
	// Rebuild with only one record: the other must disappear.
	if err := idx.Rebuild(context.Background(), testRecords()[:1]); err != nil {
		t.Fatal(err)
	}

	hits, err := idx.Search(context.Background(), "Guduff")
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 0 {
		t.Errorf("stale entry survived rebuild: %+v", hits)
	}
}
