// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yongrenjie/cygnet/internal/batch"
	"github.com/yongrenjie/cygnet/internal/fetch"
	"github.com/yongrenjie/cygnet/internal/httputil"
	"github.com/yongrenjie/cygnet/internal/library"
	"github.com/yongrenjie/cygnet/internal/progress"
	"github.com/yongrenjie/cygnet/internal/publisher"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [DOIs...]",
	Short: "Download full-text PDFs from publishers",
	Long: `Fetch identifies the publisher hosting each DOI's landing page and
downloads the full-text PDF into the library's pdf/ folder. Detection is
heuristic and only works for a fixed set of publishers; anything behind
an unrecognized paywall is reported and skipped.`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().Bool("force", false, "re-download PDFs that are already on disk")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")

	store, cfg, err := openLibrary()
	if err != nil {
		return err
	}
	client := newClient(cfg)

	dois := args
	if len(dois) == 0 {
		for _, rec := range store.Records() {
			dois = append(dois, rec.DOI)
		}
	}

	var wanted []string
	for _, doi := range dois {
		if _, ok := store.Get(doi); !ok {
			return fmt.Errorf("record %s not in library", doi)
		}
		if !force && store.HasArtifact(doi, library.KindPDF) {
			fmt.Printf("skipped %s: PDF already on disk\n", doi)
			continue
		}
		wanted = append(wanted, doi)
	}
	if len(wanted) == 0 {
		return nil
	}

	counter := progress.NewCounter(float64(len(wanted)), "PDFs", "")
	spinner := progress.NewSpinner(os.Stderr, "Downloading PDFs", counter)
	spinner.Start()

	ch := batch.Run(cmd.Context(), wanted, cfg.HTTP.MaxConnections, counter,
		func(ctx context.Context, doi string) (string, error) {
			return fetchOne(ctx, client, store, doi)
		})
	results := batch.Collect(ch)
	spinner.Stop()

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			fmt.Printf("failed  %s: %v\n", r.Key, r.Err)
			failed++
			continue
		}
		fmt.Printf("fetched %s -> %s\n", r.Key, r.Value)
	}
	if failed > 0 {
		return fmt.Errorf("%d PDF(s) failed to download", failed)
	}
	return nil
}

// fetchOne runs the detect-then-download pipeline for a single DOI and
// returns the path the PDF was saved to.
func fetchOne(ctx context.Context, client *httputil.Client, store *library.Store, doi string) (string, error) {
	det := publisher.Detect(ctx, client, doi)
	switch det.Outcome {
	case publisher.NoMatch:
		return "", fmt.Errorf("no supported publisher recognized")
	case publisher.Unreachable:
		return "", fmt.Errorf("landing page unreachable: %w", det.Err)
	}

	url, err := publisher.PDFURL(det)
	if err != nil {
		return "", err
	}
	dest := store.ArtifactPath(doi, library.KindPDF)
	if err := fetch.Fetch(ctx, client, url, dest, nil); err != nil {
		return "", err
	}
	return dest, nil
}
