// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package publisher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/yongrenjie/cygnet/internal/httputil"
	"github.com/yongrenjie/cygnet/pkg/types"
)

// forbiddenBody fails the test if anything reads it. Used to prove that
// header shortcuts never consume the body.
type forbiddenBody struct {
	t *testing.T
}

func (b forbiddenBody) Read([]byte) (int, error) {
	b.t.Fatal("body was read despite a header shortcut")
	return 0, io.EOF
}

func (forbiddenBody) Close() error { return nil }

// countingBody counts how many times the stream is drained.
type countingBody struct {
	r     io.Reader
	reads *int
}

func (b countingBody) Read(p []byte) (int, error) {
	n, err := b.r.Read(p)
	if n > 0 {
		*b.reads++
	}
	return n, err
}

func (countingBody) Close() error { return nil }

func respWithHeaders(t *testing.T, h http.Header) *http.Response {
	t.Helper()
	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     h,
		Body:       forbiddenBody{t},
	}
}

func respWithBody(body string) *http.Response {
	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestClassifyHeaderShortcuts(t *testing.T) {
	tests := []struct {
		name    string
		header  http.Header
		doi     string
		want    Publisher
		wantID  string
	}{
		{
			"acs cookie",
			http.Header{"Set-Cookie": []string{"SERVER=x; domain=pubs.acs.org; path=/"}},
			"10.1021/acs.nanolett.9b05148",
			ACS, "10.1021/acs.nanolett.9b05148",
		},
		{
			"nature forwarded host",
			http.Header{"X-Forwarded-Host": []string{"www.nature.com"}},
			"10.1038/s41586-020-2649-2",
			Nature, "s41586-020-2649-2",
		},
		{
			"science link header",
			http.Header{"Link": []string{"<https://science.sciencemag.org/content/368/6497/1331>; rel=\"canonical\""}},
			"10.1126/science.abb8178",
			Science, "368/6497/1331",
		},
		{
			"springer cookie",
			http.Header{"Set-Cookie": []string{"trackid=y; domain=.springer.com"}},
			"10.1007/s00723-020-01201-5",
			Springer, "10.1007/s00723-020-01201-5",
		},
		{
			"tandf cookie",
			http.Header{"Set-Cookie": []string{"JSESSIONID=z; Domain=.tandfonline.com"}},
			"10.1080/00268976.2020.1797916",
			TandF, "10.1080/00268976.2020.1797916",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Classify(tt.doi, respWithHeaders(t, tt.header))
			if d.Outcome != Found {
				t.Fatalf("Outcome = %v, want Found", d.Outcome)
			}
			if d.Publisher != tt.want {
				t.Errorf("Publisher = %q, want %q", d.Publisher, tt.want)
			}
			if d.Identifier != tt.wantID {
				t.Errorf("Identifier = %q, want %q", d.Identifier, tt.wantID)
			}
		})
	}
}

func TestClassifyBodyPatterns(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		doi    string
		want   Publisher
		wantID string
	}{
		{
			"wiley meta tag",
			"<html>\n<meta name=\"citation_publisher\" content=\"John Wiley &amp; Sons, Ltd\"/>\n</html>",
			"10.1002/anie.201915844",
			Wiley, "10.1002/anie.201915844",
		},
		{
			"elsevier redirect input",
			"<input type=\"hidden\" name=\"redirectURL\" value=\"https%3A%2F%2Fwww.sciencedirect.com%2Fscience%2Farticle%2Fpii%2FS0022236419302994%3Fvia%253Dihub\" id=\"redirectURL\"/>",
			"10.1016/j.jmr.2019.106636",
			Elsevier, "S0022236419302994",
		},
		{
			"tandf dc.Publisher",
			"<meta name=\"dc.Publisher\" content=\"Taylor &amp; Francis\">",
			"10.1080/00268976.2020.1797916",
			TandF, "10.1080/00268976.2020.1797916",
		},
		{
			"annual reviews dc.Publisher",
			"<meta name=\"dc.Publisher\" content=\"Annual Reviews\">",
			"10.1146/annurev-biochem-061516-044700",
			AnnRev, "10.1146/annurev-biochem-061516-044700",
		},
		{
			"rsc citation_pdf_url",
			"<meta content=\"https://pubs.rsc.org/en/content/articlepdf/2020/cc/d0cc01194k\" name=\"citation_pdf_url\" />",
			"10.1039/D0CC01194K",
			RSC, "2020/cc/d0cc01194k",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Classify(tt.doi, respWithBody(tt.body))
			if d.Outcome != Found {
				t.Fatalf("Outcome = %v, want Found", d.Outcome)
			}
			if d.Publisher != tt.want {
				t.Errorf("Publisher = %q, want %q", d.Publisher, tt.want)
			}
			if d.Identifier != tt.wantID {
				t.Errorf("Identifier = %q, want %q", d.Identifier, tt.wantID)
			}
		})
	}
}

func TestClassifyGenericMetaTagNeedsRequiredSubstring(t *testing.T) {
	// A citation_publisher tag that is not Wiley must not match the
	// Wiley entry even though the regex itself matches.
	body := "<meta name=\"citation_publisher\" content=\"Some Other House\"/>"
	d := Classify("10.9999/x", respWithBody(body))
	if d.Outcome != NoMatch {
		t.Fatalf("Outcome = %v, want NoMatch", d.Outcome)
	}
}

func TestClassifyNoMatchConsumesStreamOnce(t *testing.T) {
	reads := 0
	body := strings.Repeat("<p>nothing interesting</p>\n", 50)
	resp := &http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{},
		Body:       countingBody{r: strings.NewReader(body), reads: &reads},
	}
	d := Classify("10.9999/x", resp)
	if d.Outcome != NoMatch {
		t.Fatalf("Outcome = %v, want NoMatch", d.Outcome)
	}
	if reads == 0 {
		t.Error("body should have been consumed")
	}
}

func TestClassifyNon200IsUnreachable(t *testing.T) {
	resp := &http.Response{
		StatusCode: http.StatusForbidden,
		Header:     http.Header{},
		Body:       io.NopCloser(strings.NewReader("")),
	}
	d := Classify("10.9999/x", resp)
	if d.Outcome != Unreachable {
		t.Fatalf("Outcome = %v, want Unreachable", d.Outcome)
	}
	if d.Err == nil {
		t.Error("Unreachable detection should carry an error")
	}
}

func TestDetectTransportErrorIsUnreachable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	client := httputil.NewWithHTTPClient(ts.Client(), types.HTTPConfig{})
	ts.Close() // connection refused from here on

	orig := doiBase
	doiBase = ts.URL + "/"
	defer func() { doiBase = orig }()

	d := Detect(context.Background(), client, "10.9999/x")
	if d.Outcome != Unreachable {
		t.Fatalf("Outcome = %v, want Unreachable", d.Outcome)
	}
}

func TestPDFURL(t *testing.T) {
	tests := []struct {
		det  Detection
		want string
	}{
		{Detection{Outcome: Found, Publisher: ACS, Identifier: "10.1021/x"}, "https://pubs.acs.org/doi/pdf/10.1021/x"},
		{Detection{Outcome: Found, Publisher: Nature, Identifier: "s41586-020-2649-2"}, "https://www.nature.com/articles/s41586-020-2649-2.pdf"},
		{Detection{Outcome: Found, Publisher: Elsevier, Identifier: "S0022236419302994"}, "https://www.sciencedirect.com/science/article/pii/S0022236419302994/pdfft"},
	}
	for _, tt := range tests {
		got, err := PDFURL(tt.det)
		if err != nil {
			t.Fatalf("PDFURL(%v): %v", tt.det, err)
		}
		if got != tt.want {
			t.Errorf("PDFURL = %q, want %q", got, tt.want)
		}
	}

	if _, err := PDFURL(Detection{Outcome: NoMatch}); err == nil {
		t.Error("PDFURL of a NoMatch detection should error")
	}
}

func TestDetectEndToEndViaBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintln(w, "<html><head>")
		fmt.Fprintln(w, `<meta name="citation_publisher" content="John Wiley &amp; Sons, Ltd"/>`)
		fmt.Fprintln(w, "</head></html>")
	}))
	defer ts.Close()

	orig := doiBase
	doiBase = ts.URL + "/"
	defer func() { doiBase = orig }()

	client := httputil.NewWithHTTPClient(ts.Client(), types.HTTPConfig{})
	d := Detect(context.Background(), client, "10.1002/anie.201915844")
	if d.Outcome != Found || d.Publisher != Wiley {
		t.Fatalf("Detect = %+v, want Wiley found", d)
	}
}
