// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yongrenjie/cygnet/internal/cite"
)

var citeCmd = &cobra.Command{
	Use:   "cite [DOIs...]",
	Short: "Print citations for library records",
	Long: `Cite renders one citation per DOI. Formats: doi (d), markdown (m),
Markdown (M, with authors and title), word (w), and bib (b, a BibLaTeX
entry with Unicode converted to LaTeX escapes).`,
	RunE: runCite,
}

func init() {
	citeCmd.Flags().StringP("format", "f", "doi", "citation format: doi|markdown|Markdown|word|bib")

	rootCmd.AddCommand(citeCmd)
}

func runCite(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more DOIs")
	}
	formatName, _ := cmd.Flags().GetString("format")
	format, err := cite.ParseFormat(formatName)
	if err != nil {
		return err
	}

	store, _, err := openLibrary()
	if err != nil {
		return err
	}

	for i, doi := range args {
		rec, ok := store.Get(doi)
		if !ok {
			return fmt.Errorf("record %s not in library", doi)
		}
		citation, err := cite.Cite(rec, format)
		if err != nil {
			return err
		}
		if i > 0 && format == cite.FormatBib {
			fmt.Println()
		}
		fmt.Println(citation)
	}
	return nil
}
