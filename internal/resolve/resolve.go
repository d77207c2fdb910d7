// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package resolve turns DOIs into normalized bibliographic records using
// the Crossref registry.
package resolve

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/yongrenjie/cygnet/internal/httputil"
	"github.com/yongrenjie/cygnet/pkg/types"
)

// crossrefAPIBase is the Crossref works endpoint. Declared as a var so
// tests can substitute an httptest server.
var crossrefAPIBase = "https://api.crossref.org/works/"

// Crossref API JSON structures.
type crossrefResponse struct {
	Message crossrefWork `json:"message"`
}

type crossrefWork struct {
	Title           []string         `json:"title"`
	ContainerTitle  []string         `json:"container-title"`
	ShortContainer  []string         `json:"short-container-title"`
	Author          []crossrefAuthor `json:"author"`
	PublishedPrint  *crossrefDate    `json:"published-print"`
	PublishedOnline *crossrefDate    `json:"published-online"`
	Volume          string           `json:"volume"`
	Issue           string           `json:"issue"`
	Page            string           `json:"page"`
}

type crossrefAuthor struct {
	Given  string `json:"given"`
	Family string `json:"family"`
}

type crossrefDate struct {
	DateParts [][]int `json:"date-parts"`
}

// Metadata looks up doi on Crossref and returns a normalized Record. It
// never returns an error: a malformed or unknown DOI, a non-JSON reply,
// or a record without any publication date all yield the failure sentinel
// (a Record with only the DOI set), so batch callers can keep iterating
// past individual failures.
func Metadata(ctx context.Context, client *httputil.Client, doi string) types.Record {
	sentinel := types.Record{DOI: doi}

	resp, err := client.Get(ctx, crossrefAPIBase+doi)
	if err != nil {
		return sentinel
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return sentinel
	}
	// Crossref answers unknown DOIs with a plain-text "Resource not found".
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "json") {
		return sentinel
	}

	var cr crossrefResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return sentinel
	}
	msg := cr.Message

	year, ok := publicationYear(msg)
	if !ok {
		return sentinel
	}
	if len(msg.Title) == 0 || msg.Title[0] == "" {
		return sentinel
	}

	rec := types.Record{
		DOI:    doi,
		Title:  expandGreek(msg.Title[0]),
		Year:   year,
		Volume: msg.Volume,
		Issue:  msg.Issue,
		Pages:  msg.Page,
	}

	for _, a := range msg.Author {
		rec.Authors = append(rec.Authors, types.Author{
			Family: norm.NFKC.String(a.Family),
			Given:  canonicalGiven(a.Given),
		})
	}

	if len(msg.ContainerTitle) > 0 {
		rec.JournalLong = msg.ContainerTitle[0]
	}
	// Some records (10.1126/science.280.5362.421 among them) carry an
	// empty short-container-title list; fall back to the long name.
	if len(msg.ShortContainer) > 0 && msg.ShortContainer[0] != "" {
		rec.JournalShort = msg.ShortContainer[0]
	} else {
		rec.JournalShort = rec.JournalLong
	}
	if corrected, ok := journalReplacements[rec.JournalShort]; ok {
		rec.JournalShort = corrected
	}

	return rec
}

// publicationYear prefers the print publication date and falls back to
// the online one. Records with neither cannot be resolved.
func publicationYear(msg crossrefWork) (int, bool) {
	for _, d := range []*crossrefDate{msg.PublishedPrint, msg.PublishedOnline} {
		if d != nil && len(d.DateParts) > 0 && len(d.DateParts[0]) > 0 {
			return d.DateParts[0][0], true
		}
	}
	return 0, false
}

// canonicalGiven rewrites initials like "J.R.J." to "J. R. J." so that
// citation formatting downstream is consistent, then composes the result
// with NFKC.
func canonicalGiven(given string) string {
	g := strings.ReplaceAll(given, ". ", ".")
	g = strings.ReplaceAll(g, ".", ". ")
	g = strings.TrimRight(g, " ")
	return norm.NFKC.String(g)
}

// expandGreek replaces tokens like ".alpha." in titles (an ACS habit)
// with the corresponding Unicode glyph.
func expandGreek(title string) string {
	for name, glyph := range greekUnicode {
		token := "." + name + "."
		if strings.Contains(title, token) {
			title = strings.ReplaceAll(title, token, glyph)
		}
	}
	return title
}
