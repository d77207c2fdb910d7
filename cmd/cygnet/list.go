// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yongrenjie/cygnet/internal/library"
	"github.com/yongrenjie/cygnet/pkg/types"
)

const (
	ansiGreen = "\033[32;1m"
	ansiRed   = "\033[31;1m"
	ansiReset = "\033[0m"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every article in the library",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	store, _, err := openLibrary()
	if err != nil {
		return err
	}

	records := store.Records()
	if len(records) == 0 {
		fmt.Println("library is empty")
		return nil
	}

	for i, rec := range records {
		authors := strings.Join(rec.FormatAuthors(types.StyleDisplay), ", ")
		fmt.Printf("%3d. %s\n", i+1, rec.Title)
		fmt.Printf("     %s\n", authors)
		fmt.Printf("     %s %d, %s\n", rec.JournalShort, rec.Year, rec.VolumeInfo())
		fmt.Printf("     %s  %s  %s\n", rec.DOI,
			availability(store, rec.DOI, library.KindPDF, "pdf"),
			availability(store, rec.DOI, library.KindSI, "si"))
	}
	return nil
}

// availability renders a colored tick or cross for one artifact kind.
func availability(store *library.Store, doi string, kind library.ArtifactKind, label string) string {
	if store.HasArtifact(doi, kind) {
		return ansiGreen + "✔" + ansiReset + label
	}
	return ansiRed + "✘" + ansiReset + label
}
