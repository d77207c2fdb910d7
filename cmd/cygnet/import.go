// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yongrenjie/cygnet/internal/fetch"
	"github.com/yongrenjie/cygnet/internal/library"
	"github.com/yongrenjie/cygnet/internal/progress"
	"github.com/yongrenjie/cygnet/internal/resolve"
)

var importCmd = &cobra.Command{
	Use:   "import <file-or-url> [DOI]",
	Short: "Attach a PDF to a library record",
	Long: `Import copies a PDF into the library, from an absolute path on disk or
from a URL. When the DOI is omitted the PDF itself is scanned for one;
a record is then resolved and added if the DOI is not in the library yet.

Paths may contain the backslash escapes a terminal inserts on
drag-and-drop.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runImport,
}

func init() {
	importCmd.Flags().Bool("si", false, "store the file as supporting information instead of the main PDF")

	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	si, _ := cmd.Flags().GetBool("si")
	src := args[0]

	store, cfg, err := openLibrary()
	if err != nil {
		return err
	}
	client := newClient(cfg)

	var doi string
	if len(args) == 2 {
		doi = args[1]
	} else {
		if !strings.HasPrefix(src, "/") {
			return fmt.Errorf("a DOI is required when importing from a URL")
		}
		doi, err = resolve.DOIFromPDF(src)
		if err != nil {
			return fmt.Errorf("could not determine DOI (pass it explicitly): %w", err)
		}
		fmt.Printf("found DOI %s in %s\n", doi, src)
	}

	if _, ok := store.Get(doi); !ok {
		rec := resolve.Metadata(cmd.Context(), client, doi)
		if !rec.Resolved() {
			return fmt.Errorf("record %s not in library and Crossref lookup failed", doi)
		}
		if err := store.Add(rec); err != nil {
			return err
		}
		fmt.Printf("added   %s (%s, %d)\n", doi, rec.Title, rec.Year)
		if err := saveWithBackup(store); err != nil {
			return err
		}
	}

	kind := library.KindPDF
	if si {
		kind = library.KindSI
	}
	dest := store.ArtifactPath(doi, kind)

	counter := progress.NewCounter(0, "MB", "%.2f")
	spinner := progress.NewSpinner(os.Stderr, "Importing PDF", counter)
	spinner.Start()
	err = fetch.Fetch(cmd.Context(), client, src, dest, counter)
	spinner.Stop()
	if err != nil {
		return err
	}

	fmt.Printf("saved   %s -> %s\n", doi, dest)
	return nil
}
