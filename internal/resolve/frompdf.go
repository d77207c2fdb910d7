// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// doiPatterns are tried in order against each line; the first match wins.
// They target the places publishers stash the article DOI inside a PDF:
// PRISM/XMP metadata, link annotations to doi.org, and the visible
// "DOI: ..." text on the first page.
var doiPatterns = []*regexp.Regexp{
	regexp.MustCompile(`<prism:doi>(10\.\d{4,9}/[-._;()/:a-zA-Z0-9]+)</prism:doi>`),
	regexp.MustCompile(`["'](?:doi|DOI):(10\.\d{4,9}/[-._;()/:a-zA-Z0-9]+)["']`),
	regexp.MustCompile(`URI\s*\(https?://doi\.org/(10\.\d{4,9}/[-._;()/:a-zA-Z0-9]+)\)\s*>`),
	regexp.MustCompile(`URI\s*\((?:https?://)?www\.nature\.com/doifinder/(10\.\d{4,9}/[-._;()/:a-zA-Z0-9]+)\)\s*>`),
	regexp.MustCompile(`/WPS-ARTICLEDOI\s*\((10\.\d{4,9}/[-._;()/:a-zA-Z0-9]+)\)`),
	regexp.MustCompile(`\((?:doi|DOI):\s*(10\.\d{4,9}/[-._;()/:a-zA-Z0-9]+)\)`),
	regexp.MustCompile(`<rdf:li.+>(?:doi|DOI):(10\.\d{4,9}/[-._;()/:a-zA-Z0-9]+)</rdf:li>`),
}

// DOIFromPDF attempts to extract an article's DOI from a PDF file. It
// first scans the raw file bytes (where link annotations and XMP
// metadata live), then falls back to the extracted page text.
func DOIFromPDF(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("reading PDF %s: %w", path, err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading PDF %s: %w", path, err)
	}
	if doi, ok := doiFromLines(bytes.NewReader(raw)); ok {
		return doi, nil
	}

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("parsing PDF %s: %w", path, err)
	}
	defer f.Close()

	text, err := r.GetPlainText()
	if err == nil {
		var buf bytes.Buffer
		if _, err := buf.ReadFrom(text); err == nil {
			if doi, ok := doiFromLines(&buf); ok {
				return doi, nil
			}
		}
	}

	return "", fmt.Errorf("no DOI found in %s", path)
}

// doiFromLines scans r line by line against doiPatterns, returning the
// first match. Trailing unbalanced parentheses are pruned from the
// captured DOI (link annotations often close over it).
func doiFromLines(r io.Reader) (string, bool) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.Contains(strings.ToLower(line), "doi") {
			continue
		}
		for _, re := range doiPatterns {
			if m := re.FindStringSubmatch(line); m != nil {
				return pruneParens(m[1]), true
			}
		}
	}
	return "", false
}

func pruneParens(doi string) string {
	open := strings.Count(doi, "(")
	closed := strings.Count(doi, ")")
	for ; closed > open; closed-- {
		i := strings.LastIndex(doi, ")")
		doi = doi[:i]
	}
	return doi
}
