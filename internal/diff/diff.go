// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package diff compares two bibliographic records field by field and
// renders the differences for terminal review.
package diff

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yongrenjie/cygnet/pkg/types"
)

const (
	ansiRed   = "\033[31;1m"
	ansiGreen = "\033[32;1m"
	ansiReset = "\033[0m"
)

// Entry is the comparison result for one field. Old and New are the
// rendered values; OldSet and NewSet distinguish an empty value from an
// absent one, which matters when diffing against a blank record.
type Entry struct {
	Field   string
	Old     string
	New     string
	OldSet  bool
	NewSet  bool
	Changed bool
}

// Diff compares old and new field by field, excluding the bookkeeping
// timestamps. Structurally equal records yield an empty entry list;
// otherwise entries come back in alphabetical field order, one per
// field, and changed counts how many differ.
func Diff(old, new types.Record) (entries []Entry, changed int) {
	if old.Equal(new) {
		return nil, 0
	}

	fields := []struct {
		name string
		get  func(types.Record) string
	}{
		{"authors", renderAuthors},
		{"doi", func(r types.Record) string { return r.DOI }},
		{"issue", func(r types.Record) string { return r.Issue }},
		{"journalLong", func(r types.Record) string { return r.JournalLong }},
		{"journalShort", func(r types.Record) string { return r.JournalShort }},
		{"pages", func(r types.Record) string { return r.Pages }},
		{"title", func(r types.Record) string { return r.Title }},
		{"volume", func(r types.Record) string { return r.Volume }},
		{"year", renderYear},
	}

	for _, f := range fields {
		e := Entry{
			Field: f.name,
			Old:   f.get(old),
			New:   f.get(new),
		}
		e.OldSet = e.Old != ""
		e.NewSet = e.New != ""
		e.Changed = e.Old != e.New
		if e.Changed {
			changed++
		}
		entries = append(entries, e)
	}
	return entries, changed
}

func renderAuthors(r types.Record) string {
	return strings.Join(r.FormatAuthors(types.StyleFull), ", ")
}

func renderYear(r types.Record) string {
	if r.Year == 0 {
		return ""
	}
	return strconv.Itoa(r.Year)
}

// Render writes the changed entries to w as paired "- old" and "+ new"
// lines, red and green, with field names aligned. Unchanged fields are
// not shown. It returns the number of changes written.
func Render(w io.Writer, entries []Entry) int {
	width := 0
	for _, e := range entries {
		if e.Changed && len(e.Field) > width {
			width = len(e.Field)
		}
	}

	n := 0
	for _, e := range entries {
		if !e.Changed {
			continue
		}
		n++
		if e.OldSet {
			fmt.Fprintf(w, "%s- %-*s : %s%s\n", ansiRed, width, e.Field, e.Old, ansiReset)
		}
		if e.NewSet {
			fmt.Fprintf(w, "%s+ %-*s : %s%s\n", ansiGreen, width, e.Field, e.New, ansiReset)
		}
	}
	return n
}
