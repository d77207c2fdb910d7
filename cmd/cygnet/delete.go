// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [DOIs...]",
	Short: "Remove records from the library",
	Long: `Delete removes the given records from the database. PDFs and
supporting information already on disk are left alone.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	store, _, err := openLibrary()
	if err != nil {
		return err
	}

	for _, doi := range args {
		if err := store.Delete(doi); err != nil {
			return err
		}
		fmt.Printf("deleted %s\n", doi)
	}
	return saveWithBackup(store)
}
