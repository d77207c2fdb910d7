// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yongrenjie/cygnet/internal/diff"
)

var updateCmd = &cobra.Command{
	Use:   "update [DOIs...]",
	Short: "Refresh library metadata from the Crossref registry",
	Long: `Update re-resolves metadata for the given DOIs (or the whole library if
none are given), shows what changed, and writes the new metadata back.
The time-added and time-opened stamps survive an update.`,
	RunE: runUpdate,
}

func init() {
	updateCmd.Flags().Bool("dry-run", false, "show changes without applying them")

	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")

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
	if len(dois) == 0 {
		fmt.Println("library is empty, nothing to update")
		return nil
	}
	for _, doi := range dois {
		if _, ok := store.Get(doi); !ok {
			return fmt.Errorf("record %s not in library", doi)
		}
	}

	results := resolveAll(cmd.Context(), client, dois, cfg.HTTP.MaxConnections)

	failed, updated := 0, 0
	for _, r := range results {
		if r.Err != nil {
			fmt.Printf("failed    %s: %v\n", r.Key, r.Err)
			failed++
			continue
		}
		old, _ := store.Get(r.Key)
		entries, changed := diff.Diff(old, r.Value)
		if changed == 0 {
			fmt.Printf("unchanged %s\n", r.Key)
			continue
		}
		fmt.Printf("updated   %s:\n", r.Key)
		diff.Render(os.Stdout, entries)
		if !dryRun {
			if err := store.Replace(r.Key, r.Value); err != nil {
				return err
			}
		}
		updated++
	}

	if !dryRun && updated > 0 {
		if err := saveWithBackup(store); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d DOI(s) failed to resolve", failed)
	}
	return nil
}
