// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the shared data model and configuration structs.
package types

import (
	"fmt"
	"strings"
	"time"
)

// Author is one author of an article. Order within Record.Authors matters:
// the first author is citation-significant.
type Author struct {
	// Family is the family (last) name.
	Family string `json:"family" yaml:"family"`

	// Given is the given name(s), canonicalized to "J. R. J." form.
	Given string `json:"given" yaml:"given"`
}

// AuthorStyle selects how FormatAuthors renders author names.
type AuthorStyle string

const (
	// StyleDisplay renders "JRJ Yong".
	StyleDisplay AuthorStyle = "display"
	// StyleACS renders "Yong, J. R. J.".
	StyleACS AuthorStyle = "acs"
	// StyleBib renders "Yong, Jonathan R.\ J." (control spaces for BibLaTeX).
	StyleBib AuthorStyle = "bib"
	// StyleFull renders "Jonathan R. J. Yong".
	StyleFull AuthorStyle = "full"
)

// Record is one bibliographic entry. A Record with an empty Title is the
// failure sentinel for its DOI: the lookup did not produce valid metadata
// and callers must check Resolved() before treating the fields as real.
type Record struct {
	// DOI is the globally unique key. Immutable once resolved.
	DOI string `json:"doi" yaml:"doi"`

	// Title is the article title. Empty means resolution failed.
	Title string `json:"title" yaml:"title"`

	// Authors lists the article authors in source order.
	Authors []Author `json:"authors" yaml:"authors"`

	// JournalLong is the full journal name.
	JournalLong string `json:"journalLong" yaml:"journalLong"`

	// JournalShort is the abbreviated journal name (CASSI style where known).
	JournalShort string `json:"journalShort" yaml:"journalShort"`

	// Year is the print publication year, or the online one if no print
	// date exists.
	Year int `json:"year" yaml:"year"`

	// Volume and Issue are kept as strings: some records carry ranges
	// like "12-13", and an empty string means "none".
	Volume string `json:"volume" yaml:"volume"`
	Issue  string `json:"issue" yaml:"issue"`

	// Pages may contain a hyphenated range.
	Pages string `json:"pages" yaml:"pages"`

	// TimeAdded and TimeOpened are bookkeeping timestamps. They are
	// excluded from equality and diff comparisons.
	TimeAdded  time.Time `json:"timeAdded" yaml:"timeAdded"`
	TimeOpened time.Time `json:"timeOpened" yaml:"timeOpened"`
}

// Resolved reports whether the record holds real metadata, as opposed to
// the failure sentinel produced for an invalid or unknown DOI.
func (r Record) Resolved() bool {
	return r.Title != ""
}

// Equal compares two records field by field, excluding TimeAdded and
// TimeOpened.
func (r Record) Equal(other Record) bool {
	if r.DOI != other.DOI ||
		r.Title != other.Title ||
		r.JournalLong != other.JournalLong ||
		r.JournalShort != other.JournalShort ||
		r.Year != other.Year ||
		r.Volume != other.Volume ||
		r.Issue != other.Issue ||
		r.Pages != other.Pages {
		return false
	}
	if len(r.Authors) != len(other.Authors) {
		return false
	}
	for i := range r.Authors {
		if r.Authors[i] != other.Authors[i] {
			return false
		}
	}
	return true
}

// FormatAuthors renders every author in the requested style, in source order.
func (r Record) FormatAuthors(style AuthorStyle) []string {
	out := make([]string, len(r.Authors))
	for i, a := range r.Authors {
		out[i] = formatOneAuthor(a, style)
	}
	return out
}

func formatOneAuthor(a Author, style AuthorStyle) string {
	// Some records genuinely have no given name (e.g. consortia).
	if a.Given == "" {
		return a.Family
	}
	switch style {
	case StyleDisplay:
		return initials(a.Given, "") + " " + a.Family
	case StyleACS:
		return a.Family + ", " + initials(a.Given, ". ") + "."
	case StyleBib:
		return strings.ReplaceAll(a.Family+", "+a.Given, ". ", ".\\ ")
	case StyleFull:
		return a.Given + " " + a.Family
	default:
		return a.Given + " " + a.Family
	}
}

// initials joins the first rune of each word in given with sep.
func initials(given, sep string) string {
	words := strings.Fields(given)
	parts := make([]string, len(words))
	for i, w := range words {
		parts[i] = string([]rune(w)[0])
	}
	return strings.Join(parts, sep)
}

// VolumeInfo renders "vol (issue), pages", or "vol, pages" when the record
// has no issue number.
func (r Record) VolumeInfo() string {
	if r.Issue != "" {
		return fmt.Sprintf("%s (%s), %s", r.Volume, r.Issue, r.Pages)
	}
	return fmt.Sprintf("%s, %s", r.Volume, r.Pages)
}
