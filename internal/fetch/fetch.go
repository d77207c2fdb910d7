// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch saves full-text PDFs into the library, either by copying
// a file already on disk or by streaming it down from a publisher URL.
package fetch

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/yongrenjie/cygnet/internal/httputil"
	"github.com/yongrenjie/cygnet/internal/progress"
)

// pathEscapes undoes the backslash escaping that terminals apply when a
// file is dragged and dropped onto the prompt.
var pathEscapes = [][2]string{
	{`\ `, " "}, {`\,`, ","}, {`\'`, "'"}, {`\"`, `"`},
}

// redirectPattern matches the inline script ScienceDirect serves instead
// of a real HTTP redirect when asked for a PDF.
var redirectPattern = regexp.MustCompile(`window.location\s*=\s*'(https?://.+)';`)

// maxRedirectHops bounds how many ScienceDirect-style page redirects are
// followed before giving up.
const maxRedirectHops = 3

const chunkSize = 2048

// Fetch saves the resource at src to dest. A src beginning with "/" is
// treated as an absolute path on disk and copied; anything else is
// treated as a URL and downloaded. counter, if non-nil, is advanced in
// megabytes as the download proceeds.
func Fetch(ctx context.Context, client *httputil.Client, src, dest string, counter *progress.Counter) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(dest), err)
	}
	if strings.HasPrefix(src, "/") {
		return copyFile(src, dest)
	}
	return download(ctx, client, strings.TrimSpace(src), dest, counter, 0)
}

func copyFile(src, dest string) error {
	src = strings.TrimSpace(unescapePath(src))
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening PDF %s: %w", src, err)
	}
	defer in.Close()

	tmp := dest + ".part"
	out, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("creating %s: %w", tmp, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(tmp)
		return fmt.Errorf("copying %s: %w", src, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, dest)
}

func unescapePath(p string) string {
	for _, e := range pathEscapes {
		p = strings.ReplaceAll(p, e[0], e[1])
	}
	return p
}

func download(ctx context.Context, client *httputil.Client, url, dest string, counter *progress.Counter, hops int) error {
	resp, err := client.Get(ctx, url)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetching %s: HTTP %d", url, resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")

	// ScienceDirect answers PDF requests with an HTML page whose script
	// redirects the browser. Follow it by refetching the new URL.
	if strings.Contains(url, "sciencedirect") && strings.Contains(contentType, "text/html") {
		if hops >= maxRedirectHops {
			return fmt.Errorf("fetching %s: too many page redirects", url)
		}
		newURL, ok := scanRedirect(resp.Body)
		if !ok {
			return fmt.Errorf("fetching %s: HTML page with no redirect target", url)
		}
		return download(ctx, client, newURL, dest, counter, hops+1)
	}

	if !strings.Contains(contentType, "application/pdf") {
		return fmt.Errorf("the URL %s was not a PDF file", url)
	}

	if counter != nil && resp.ContentLength > 0 {
		counter.SetTotal(float64(resp.ContentLength) / (1 << 20))
	}

	tmp := dest + ".part"
	out, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("creating %s: %w", tmp, err)
	}
	if err := stream(resp.Body, out, counter); err != nil {
		out.Close()
		os.Remove(tmp)
		return fmt.Errorf("downloading %s: %w", url, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, dest)
}

// stream copies body to out in small chunks, advancing the counter after
// each one so the display tracks the transfer rather than jumping at the
// end.
func stream(body io.Reader, out io.Writer, counter *progress.Counter) error {
	buf := make([]byte, chunkSize)
	for {
		n, err := body.Read(buf)
		if n > 0 {
			if _, werr := out.Write(buf[:n]); werr != nil {
				return werr
			}
			if counter != nil {
				counter.Add(float64(n) / (1 << 20))
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func scanRedirect(body io.Reader) (string, bool) {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if m := redirectPattern.FindStringSubmatch(scanner.Text()); m != nil {
			return m[1], true
		}
	}
	return "", false
}
