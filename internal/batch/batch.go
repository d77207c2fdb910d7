// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package batch runs one operation over many DOIs with bounded
// concurrency. One failing item never aborts the rest: each item's
// outcome is reported individually and the caller decides what to do
// with the failures.
package batch

import (
	"context"
	"sort"

	"github.com/yongrenjie/cygnet/internal/progress"
)

// Result is the outcome for one key.
type Result[R any] struct {
	Key   string
	Value R
	Err   error
}

// Run executes fn for every key, with at most limit invocations in
// flight at once. Results arrive on the returned channel in completion
// order, not submission order; the channel is closed once every key has
// been accounted for. counter, if non-nil, is advanced by one per
// completed key.
//
// When ctx is cancelled, items that have not started return ctx.Err()
// as their result; items already in flight run to completion. The
// channel still closes only after all goroutines have finished, so a
// caller that drains it never leaks work.
func Run[R any](ctx context.Context, keys []string, limit int, counter *progress.Counter, fn func(context.Context, string) (R, error)) <-chan Result[R] {
	if limit < 1 {
		limit = 1
	}
	out := make(chan Result[R])
	sem := make(chan struct{}, limit)

	go func() {
		defer close(out)
		done := make(chan Result[R])
		for _, key := range keys {
			go func(key string) {
				select {
				case sem <- struct{}{}:
				case <-ctx.Done():
					done <- Result[R]{Key: key, Err: ctx.Err()}
					return
				}
				defer func() { <-sem }()
				v, err := fn(ctx, key)
				done <- Result[R]{Key: key, Value: v, Err: err}
			}(key)
		}
		for range keys {
			r := <-done
			if counter != nil {
				counter.Add(1)
			}
			out <- r
		}
	}()
	return out
}

// Collect drains ch and returns the results sorted by key, so batch
// output is stable regardless of completion order.
func Collect[R any](ch <-chan Result[R]) []Result[R] {
	var results []Result[R]
	for r := range ch {
		results = append(results, r)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Key < results[j].Key })
	return results
}
