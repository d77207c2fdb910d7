// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package diff

import (
	"strings"
	"testing"
	"time"

	"github.com/yongrenjie/cygnet/pkg/types"
)

func sampleRecord() types.Record {
	return types.Record{
		DOI:   "10.1016/j.pnmrs.2019.12.001",
		Title: "Pure shift NMR",
		Authors: []types.Author{
			{Family: "Yong", Given: "Jonathan R. J."},
			{Family: "Foroozandeh", Given: "Mohammadali"},
		},
		JournalLong:  "Progress in Nuclear Magnetic Resonance Spectroscopy",
		JournalShort: "Prog. Nucl. Magn. Reson. Spectrosc.",
		Year:         2020,
		Volume:       "118",
		Issue:        "2",
		Pages:        "101-134",
		TimeAdded:    time.Date(2020, 7, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestDiffIdenticalRecords(t *testing.T) {
	a := sampleRecord()
	b := sampleRecord()
	// Timestamps must never count as differences.
	b.TimeAdded = b.TimeAdded.Add(48 * time.Hour)
	b.TimeOpened = time.Now()

	entries, changed := Diff(a, b)
	if changed != 0 {
		t.Fatalf("changed = %d, want 0", changed)
	}
	// Equal records produce no entries at all, not nine unchanged ones.
	if len(entries) != 0 {
		t.Errorf("len(entries) = %d, want 0", len(entries))
	}
}

func TestDiffReflexive(t *testing.T) {
	a := sampleRecord()
	entries, changed := Diff(a, a)
	if changed != 0 || len(entries) != 0 {
		t.Errorf("Diff(x, x) = (%d entries, %d changed), want (0, 0)", len(entries), changed)
	}
}

func TestDiffSingleFieldChange(t *testing.T) {
	a := sampleRecord()
	b := sampleRecord()
	b.Year = 2021

	entries, changed := Diff(a, b)
	if changed != 1 {
		t.Fatalf("changed = %d, want 1", changed)
	}
	for _, e := range entries {
		if e.Field == "year" {
			if !e.Changed || e.Old != "2020" || e.New != "2021" {
				t.Errorf("year entry = %+v", e)
			}
		} else if e.Changed {
			t.Errorf("unexpected change in %q", e.Field)
		}
	}
}

func TestDiffAlphabeticalOrder(t *testing.T) {
	b := sampleRecord()
	b.Title = "Pure shift NMR spectroscopy"
	entries, _ := Diff(sampleRecord(), b)
	want := []string{"authors", "doi", "issue", "journalLong", "journalShort", "pages", "title", "volume", "year"}
	for i, e := range entries {
		if e.Field != want[i] {
			t.Fatalf("entries[%d].Field = %q, want %q", i, e.Field, want[i])
		}
	}
}

func TestDiffAuthorsRendered(t *testing.T) {
	a := sampleRecord()
	b := sampleRecord()
	b.Authors = b.Authors[:1]

	entries, changed := Diff(a, b)
	if changed != 1 {
		t.Fatalf("changed = %d, want 1", changed)
	}
	e := entries[0]
	if e.Field != "authors" {
		t.Fatalf("entries[0].Field = %q", e.Field)
	}
	if e.Old != "Jonathan R. J. Yong, Mohammadali Foroozandeh" {
		t.Errorf("Old = %q", e.Old)
	}
	if e.New != "Jonathan R. J. Yong" {
		t.Errorf("New = %q", e.New)
	}
}

func TestDiffAgainstBlankRecord(t *testing.T) {
	entries, changed := Diff(types.Record{}, sampleRecord())
	if changed != 9 {
		t.Fatalf("changed = %d, want 9", changed)
	}
	for _, e := range entries {
		if e.OldSet {
			t.Errorf("field %q: OldSet = true for a blank record", e.Field)
		}
		if !e.NewSet {
			t.Errorf("field %q: NewSet = false", e.Field)
		}
	}
}

func TestRenderShowsOnlyChanges(t *testing.T) {
	a := sampleRecord()
	b := sampleRecord()
	b.Year = 2021
	b.Pages = "101-135"

	entries, _ := Diff(a, b)
	var buf strings.Builder
	n := Render(&buf, entries)
	if n != 2 {
		t.Fatalf("Render returned %d, want 2", n)
	}

	out := buf.String()
	if !strings.Contains(out, "- pages") || !strings.Contains(out, "+ pages") {
		t.Errorf("output missing pages lines:\n%s", out)
	}
	if !strings.Contains(out, "2021") {
		t.Errorf("output missing new year:\n%s", out)
	}
	if strings.Contains(out, "title") {
		t.Errorf("unchanged field rendered:\n%s", out)
	}
	if !strings.Contains(out, ansiRed) || !strings.Contains(out, ansiGreen) {
		t.Error("expected colored output")
	}
}

func TestRenderSkipsAbsentSides(t *testing.T) {
	entries, _ := Diff(types.Record{}, sampleRecord())
	var buf strings.Builder
	Render(&buf, entries)
	if strings.Contains(buf.String(), ansiRed+"- ") {
		t.Errorf("blank old record should produce no removal lines:\n%s", buf.String())
	}
}
