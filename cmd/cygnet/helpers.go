// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/yongrenjie/cygnet/internal/batch"
	"github.com/yongrenjie/cygnet/internal/httputil"
	"github.com/yongrenjie/cygnet/internal/library"
	"github.com/yongrenjie/cygnet/internal/progress"
	"github.com/yongrenjie/cygnet/internal/resolve"
	"github.com/yongrenjie/cygnet/pkg/types"
)

// resolveAll fetches metadata for every DOI with bounded concurrency,
// showing a spinner while the batch runs. Results come back sorted by
// DOI.
func resolveAll(ctx context.Context, client *httputil.Client, dois []string, limit int) []batch.Result[types.Record] {
	counter := progress.NewCounter(float64(len(dois)), "articles", "")
	spinner := progress.NewSpinner(os.Stderr, "Fetching metadata", counter)
	spinner.Start()
	defer spinner.Stop()

	ch := batch.Run(ctx, dois, limit, counter, func(ctx context.Context, doi string) (types.Record, error) {
		rec := resolve.Metadata(ctx, client, doi)
		if !rec.Resolved() {
			return rec, fmt.Errorf("no valid metadata for %s", doi)
		}
		return rec, nil
	})
	return batch.Collect(ch)
}

// saveWithBackup persists the store and rotates a backup snapshot.
func saveWithBackup(store *library.Store) error {
	if err := store.Save(); err != nil {
		return err
	}
	return store.Backup()
}
