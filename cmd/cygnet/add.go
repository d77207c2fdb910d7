// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add [DOIs...]",
	Short: "Resolve DOIs and add the articles to the library",
	Long: `Add resolves each DOI against the Crossref registry and stores the
resulting metadata in the library. DOIs already present are skipped, and
one failed lookup never stops the others.`,
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more DOIs")
	}

	store, cfg, err := openLibrary()
	if err != nil {
		return err
	}
	client := newClient(cfg)

	var dois []string
	for _, doi := range args {
		if _, ok := store.Get(doi); ok {
			fmt.Printf("skipped %s: already in library\n", doi)
			continue
		}
		dois = append(dois, doi)
	}
	if len(dois) == 0 {
		return nil
	}

	results := resolveAll(cmd.Context(), client, dois, cfg.HTTP.MaxConnections)

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			fmt.Printf("failed  %s: %v\n", r.Key, r.Err)
			failed++
			continue
		}
		if err := store.Add(r.Value); err != nil {
			fmt.Printf("failed  %s: %v\n", r.Key, err)
			failed++
			continue
		}
		fmt.Printf("added   %s (%s, %d)\n", r.Key, r.Value.Title, r.Value.Year)
	}

	if err := saveWithBackup(store); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d DOI(s) failed to resolve", failed)
	}
	return nil
}
