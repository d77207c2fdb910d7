// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package publisher figures out which publisher hosts a DOI's landing
// page and builds the direct URL to its full-text PDF. There is no
// uniform API across publishers, so detection is heuristic: cheap header
// signals first, then a line-by-line scan of the page body against a
// fixed table of patterns.
package publisher

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/yongrenjie/cygnet/internal/httputil"
)

// Publisher identifies one supported publisher.
type Publisher string

const (
	ACS      Publisher = "acs"
	Wiley    Publisher = "wiley"
	Elsevier Publisher = "elsevier"
	Nature   Publisher = "nature"
	Science  Publisher = "science"
	Springer Publisher = "springer"
	TandF    Publisher = "tandf"
	AnnRev   Publisher = "annrev"
	RSC      Publisher = "rsc"
)

// Outcome classifies a detection result.
type Outcome int

const (
	// Found means a publisher was identified.
	Found Outcome = iota
	// NoMatch means the page was read fully and no heuristic matched.
	// This is an expected, non-fatal outcome.
	NoMatch
	// Unreachable means the landing page could not be fetched or
	// returned a non-200 status.
	Unreachable
)

// Detection is the result of a detect call. Publisher and Identifier are
// only meaningful when Outcome is Found; Err is only set for Unreachable.
type Detection struct {
	Outcome    Outcome
	Publisher  Publisher
	Identifier string
	Err        error
}

// pdfURLTemplates maps each publisher to the URL of its full-text PDF,
// parameterized by the detection identifier.
var pdfURLTemplates = map[Publisher]string{
	ACS:      "https://pubs.acs.org/doi/pdf/%s",
	Wiley:    "https://onlinelibrary.wiley.com/doi/pdfdirect/%s",
	Elsevier: "https://www.sciencedirect.com/science/article/pii/%s/pdfft",
	Nature:   "https://www.nature.com/articles/%s.pdf",
	Science:  "https://science.sciencemag.org/content/sci/%s.full.pdf",
	Springer: "https://link.springer.com/content/pdf/%s.pdf",
	TandF:    "https://www.tandfonline.com/doi/pdf/%s",
	AnnRev:   "https://www.annualreviews.org/doi/pdf/%s",
	RSC:      "https://pubs.rsc.org/en/content/articlepdf/%s",
}

// bodyPattern is one entry in the body-scan table. The line must match
// re, and the captured group must additionally contain requires: several
// publishers share generic meta-tag shapes, and the substring check is
// what tells them apart. useCapture selects whether the identifier is
// the captured group or the DOI itself.
type bodyPattern struct {
	publisher  Publisher
	re         *regexp.Regexp
	requires   string
	useCapture bool
}

// bodyPatterns is evaluated in order; the first line matching any entry
// wins. First-match-wins, not best-match.
var bodyPatterns = []bodyPattern{
	{Wiley, regexp.MustCompile(`<meta name=["']citation_publisher["']\s+content=["'](.+?)["']\s*/?>`), "John Wiley", false},
	{Elsevier, regexp.MustCompile(`<input type="hidden" name="redirectURL" value="https%3A%2F%2Fwww.sciencedirect.com%2Fscience%2Farticle%2Fpii%2F(.+?)%3Fvia%253Dihub" id="redirectURL"/>`), "", true},
	{TandF, regexp.MustCompile(`<meta name=["']dc.Publisher["']\s+content=["'](.+?)["']\s*/?>`), "Taylor", false},
	{AnnRev, regexp.MustCompile(`<meta name=["']dc.Publisher["']\s+content=["'](.+?)["']\s*/?>`), "Annual Reviews", false},
	{RSC, regexp.MustCompile(`<meta content=["']https://pubs.rsc.org/en/content/articlepdf/(.+?)["']\s+name="citation_pdf_url"\s*/>`), "", true},
}

// doiBase is the DOI resolver. Declared as a var so tests can substitute
// an httptest server.
var doiBase = "https://doi.org/"

// Detect fetches the landing page for doi and classifies its publisher.
// Transport errors are reported as Unreachable, never returned as Go
// errors, so batch callers can keep going.
func Detect(ctx context.Context, client *httputil.Client, doi string) Detection {
	resp, err := client.Get(ctx, doiBase+doi)
	if err != nil {
		return Detection{Outcome: Unreachable, Err: err}
	}
	defer resp.Body.Close()
	return Classify(doi, resp)
}

// Classify inspects an already-issued landing-page response. Header
// signals are checked first so that, for the publishers that can be
// identified from them, the body is never read: several publishers'
// pages are large and reading them wastes bandwidth.
func Classify(doi string, resp *http.Response) Detection {
	if resp.StatusCode != http.StatusOK {
		return Detection{
			Outcome: Unreachable,
			Err:     fmt.Errorf("landing page for %s returned HTTP %d", doi, resp.StatusCode),
		}
	}

	if d, ok := classifyHeaders(doi, resp.Header); ok {
		return d
	}

	// No header shortcut: scan the body line by line. The whole body is
	// never held in memory.
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		for _, p := range bodyPatterns {
			m := p.re.FindStringSubmatch(line)
			if m == nil || !strings.Contains(m[1], p.requires) {
				continue
			}
			id := doi
			if p.useCapture {
				id = m[1]
			}
			return Detection{Outcome: Found, Publisher: p.publisher, Identifier: id}
		}
	}
	if err := scanner.Err(); err != nil {
		return Detection{Outcome: Unreachable, Err: err}
	}

	return Detection{Outcome: NoMatch}
}

// classifyHeaders applies the cheap header shortcuts.
func classifyHeaders(doi string, h http.Header) (Detection, bool) {
	found := func(p Publisher, id string) (Detection, bool) {
		return Detection{Outcome: Found, Publisher: p, Identifier: id}, true
	}

	if headerContains(h.Values("Set-Cookie"), "pubs.acs.org") {
		return found(ACS, doi)
	}
	if headerContains(h.Values("X-Forwarded-Host"), "www.nature.com") {
		// Nature articles are keyed by the DOI suffix only.
		_, suffix, _ := strings.Cut(doi, "/")
		return found(Nature, suffix)
	}
	// Does not work for Science Advances, which serves no such header.
	if headerContains(h.Values("Link"), "science.sciencemag.org") {
		link := h.Get("Link")
		link, _, _ = strings.Cut(link, ">")
		if _, id, ok := strings.Cut(link, "/content/"); ok {
			return found(Science, id)
		}
	}
	if headerContains(h.Values("Set-Cookie"), ".springer.com") {
		return found(Springer, doi)
	}
	if headerContains(h.Values("Set-Cookie"), ".tandfonline.com") {
		return found(TandF, doi)
	}
	return Detection{}, false
}

func headerContains(values []string, substr string) bool {
	for _, v := range values {
		if strings.Contains(v, substr) {
			return true
		}
	}
	return false
}

// PDFURL builds the full-text PDF URL for a successful detection.
func PDFURL(d Detection) (string, error) {
	if d.Outcome != Found {
		return "", fmt.Errorf("no publisher detected")
	}
	tmpl, ok := pdfURLTemplates[d.Publisher]
	if !ok {
		return "", fmt.Errorf("no PDF URL template for publisher %q", d.Publisher)
	}
	return fmt.Sprintf(tmpl, d.Identifier), nil
}
