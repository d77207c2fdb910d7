// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cite renders bibliographic records as citations in several
// output formats, from a bare DOI up to a BibLaTeX entry.
package cite

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/yongrenjie/cygnet/pkg/types"
)

// Format selects a citation output format.
type Format string

const (
	// FormatDOI is just the DOI string.
	FormatDOI Format = "doi"
	// FormatMarkdown is a short Markdown citation without authors or title.
	FormatMarkdown Format = "markdown"
	// FormatMarkdownLong prepends ACS-style authors and the title.
	FormatMarkdownLong Format = "Markdown"
	// FormatWord is plain text for pasting into a document.
	FormatWord Format = "word"
	// FormatBib is a BibLaTeX @article entry.
	FormatBib Format = "bib"
)

// ParseFormat maps a format name or its one-letter abbreviation to a
// Format. "M" is the long Markdown form, "m" the short one.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "doi", "d":
		return FormatDOI, nil
	case "markdown", "m":
		return FormatMarkdown, nil
	case "Markdown", "M":
		return FormatMarkdownLong, nil
	case "word", "w":
		return FormatWord, nil
	case "bib", "b":
		return FormatBib, nil
	}
	return "", fmt.Errorf("invalid citation format %q", s)
}

// Cite renders rec in the requested format.
func Cite(rec types.Record, format Format) (string, error) {
	if !rec.Resolved() {
		return "", fmt.Errorf("cannot cite unresolved record %s", rec.DOI)
	}

	acsAuthors := strings.Join(rec.FormatAuthors(types.StyleACS), "; ")
	pages := strings.ReplaceAll(rec.Pages, "-", "–")
	doiURL := "https://doi.org/" + quoteDOI(rec.DOI)

	switch format {
	case FormatDOI:
		return rec.DOI, nil

	case FormatMarkdown:
		if rec.Issue != "" {
			return fmt.Sprintf("*%s* **%d**, *%s* (%s), %s. [DOI: %s](%s).",
				rec.JournalShort, rec.Year, rec.Volume, rec.Issue, pages, rec.DOI, doiURL), nil
		}
		return fmt.Sprintf("*%s* **%d**, *%s,* %s. [DOI: %s](%s).",
			rec.JournalShort, rec.Year, rec.Volume, pages, rec.DOI, doiURL), nil

	case FormatMarkdownLong:
		if rec.Issue != "" {
			return fmt.Sprintf("%s %s. *%s* **%d**, *%s* (%s), %s. [DOI: %s](%s).",
				acsAuthors, rec.Title, rec.JournalShort, rec.Year, rec.Volume, rec.Issue, pages, rec.DOI, doiURL), nil
		}
		return fmt.Sprintf("%s %s. *%s* **%d**, *%s,* %s. [DOI: %s](%s).",
			acsAuthors, rec.Title, rec.JournalShort, rec.Year, rec.Volume, pages, rec.DOI, doiURL), nil

	case FormatWord:
		if rec.Issue != "" {
			return fmt.Sprintf("%s %s %d, %s (%s), %s.",
				acsAuthors, rec.JournalShort, rec.Year, rec.Volume, rec.Issue, pages), nil
		}
		return fmt.Sprintf("%s %s %d, %s, %s.",
			acsAuthors, rec.JournalShort, rec.Year, rec.Volume, pages), nil

	case FormatBib:
		return bibEntry(rec), nil
	}
	return "", fmt.Errorf("invalid citation format %q", format)
}

// BibKey builds the entry key: first author's family name (folded to
// ASCII), the year, and the uppercase initials of the journal
// abbreviation, e.g. "Yong2020PNMRS".
func BibKey(rec types.Record) string {
	family := ""
	if len(rec.Authors) > 0 {
		family = asciiFold(rec.Authors[0].Family)
	}
	var initials strings.Builder
	for _, r := range rec.JournalShort {
		if unicode.IsUpper(r) {
			initials.WriteRune(r)
		}
	}
	return fmt.Sprintf("%s%d%s", family, rec.Year, initials.String())
}

func bibEntry(rec types.Record) string {
	authors := strings.Join(rec.FormatAuthors(types.StyleBib), " and ")
	journal := strings.ReplaceAll(rec.JournalShort, ". ", ".\\ ")

	var b strings.Builder
	fmt.Fprintf(&b, "@article{%s,\n", BibKey(rec))
	fmt.Fprintf(&b, "    doi = {%s},\n", rec.DOI)
	fmt.Fprintf(&b, "    author = {%s},\n", authors)
	fmt.Fprintf(&b, "    journal = {%s},\n", journal)
	fmt.Fprintf(&b, "    title = {%s},\n", rec.Title)
	fmt.Fprintf(&b, "    year = {%d},\n", rec.Year)
	if rec.Volume != "" {
		fmt.Fprintf(&b, "    volume = {%s},\n", rec.Volume)
	}
	if rec.Issue != "" {
		fmt.Fprintf(&b, "    issue = {%s},\n", rec.Issue)
	}
	if rec.Pages != "" {
		fmt.Fprintf(&b, "    pages = {%s},\n", strings.ReplaceAll(rec.Pages, "-", "--"))
	}
	b.WriteString("}")
	return toLatex(b.String())
}

// quoteDOI percent-encodes a DOI for use in a URL, keeping "/" literal.
// Parentheses are escaped too: Markdown link targets end at the first
// unescaped close paren in some renderers.
func quoteDOI(doi string) string {
	var b strings.Builder
	for i := 0; i < len(doi); i++ {
		c := doi[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9',
			c == '-', c == '.', c == '_', c == '~', c == '/':
			b.WriteByte(c)
		default:
			fmt.Fprintf(&b, "%%%02X", c)
		}
	}
	return b.String()
}
