package batch

import (
	"context"
	"sync"
)

const DefaultConcurrency = 10

// Failure records one item whose callback returned an error.
type Failure[T any] struct {
	Item T
	Err  error
}

// Report summarizes one batch run. Failures are collected explicitly so
// callers can assert on them instead of scraping logs.
type Report[T any] struct {
	Succeeded int
	Failed    int
	Failures  []Failure[T]
}

// Process runs fn over items in consecutive chunks of size concurrency.
// Every item in a chunk runs concurrently and the next chunk starts only
// after the whole current chunk has settled, which caps peak concurrency and
// gives a natural checkpoint. A failing item never aborts its chunk
// siblings. Empty input returns an empty report without invoking fn.
func Process[T any](ctx context.Context, items []T, concurrency int, fn func(ctx context.Context, item T) error) Report[T] {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	var report Report[T]
	if len(items) == 0 {
		return report
	}

	errs := make([]error, len(items))
	for start := 0; start < len(items); start += concurrency {
		end := min(start+concurrency, len(items))

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				errs[i] = fn(ctx, items[i])
			}(i)
		}
		wg.Wait()
	}

	for i, err := range errs {
		if err != nil {
			report.Failed++
			report.Failures = append(report.Failures, Failure[T]{Item: items[i], Err: err})
			continue
		}
		report.Succeeded++
	}
	return report
}
