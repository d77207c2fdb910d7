// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/yongrenjie/cygnet/internal/index"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the library by title, author, journal, or year",
	Long: `Search runs a full-text query over the library. The index is rebuilt
from db.yaml on every invocation, so it never drifts out of date. A
query that is a bare year matches on publication year instead.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().Int("max-results", 0, "maximum number of results (default 20)")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	maxResults, _ := cmd.Flags().GetInt("max-results")
	if maxResults == 0 {
		maxResults = viper.GetInt("search.max_results")
	}

	store, cfg, err := openLibrary()
	if err != nil {
		return err
	}

	idx, err := index.Open(cfg.Library.Dir, maxResults)
	if err != nil {
		return err
	}
	defer idx.Close()

	if err := idx.Rebuild(cmd.Context(), store.Records()); err != nil {
		return err
	}
	hits, err := idx.Search(cmd.Context(), query)
	if err != nil {
		return err
	}

	if len(hits) == 0 {
		fmt.Println("no matches")
		return nil
	}
	for _, h := range hits {
		fmt.Printf("%s\n    %s\n    %s, %d\n", h.DOI, h.Title, h.Authors, h.Year)
	}
	return nil
}
