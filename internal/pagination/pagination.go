package pagination

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"omnia-sync/internal/retry"
)

const (
	DefaultConcurrency = 5
	DefaultMaxRetries  = 3
)

// Page is one page of a paginated list endpoint. TotalPages comes from the
// response's pagination metadata and only the value on page 1 is consulted.
type Page[T any] struct {
	Records    []T
	TotalPages int
}

// Result aggregates every fetched page in page order. Pages that still
// failed after their retries contribute no records and are listed in
// FailedPages so callers can tell a lost page from a legitimately empty one.
type Result[T any] struct {
	Records     []T
	TotalPages  int
	FailedPages []int
}

// Partial reports whether at least one page was lost.
func (r Result[T]) Partial() bool {
	return len(r.FailedPages) > 0
}

type Options struct {
	Concurrency    int
	MaxRetries     int
	RetryBaseDelay time.Duration
}

// FetchAll drains a paginated source. Page 1 is fetched first to learn the
// page count, then pages 2..N arrive in waves of opts.Concurrency; each wave
// settles fully before the next one starts. Every page is retried
// independently with linear backoff. Failure of page 1 aborts the whole
// fetch since without it the page count is unknown.
func FetchAll[T any](ctx context.Context, opts Options, fetchPage func(ctx context.Context, page int) (Page[T], error)) (Result[T], error) {
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	maxRetries := opts.MaxRetries
	if maxRetries <= 0 {
		maxRetries = DefaultMaxRetries
	}
	baseDelay := opts.RetryBaseDelay
	if baseDelay <= 0 {
		baseDelay = retry.DefaultBaseDelay
	}

	first, err := retry.Do(ctx, maxRetries, baseDelay, func(ctx context.Context) (Page[T], error) {
		return fetchPage(ctx, 1)
	})
	if err != nil {
		return Result[T]{}, fmt.Errorf("fetch page 1: %w", err)
	}

	totalPages := first.TotalPages
	if totalPages < 1 {
		totalPages = 1
	}

	byPage := make([][]T, totalPages+1)
	byPage[1] = first.Records

	var (
		mu     sync.Mutex
		failed []int
	)

	for waveStart := 2; waveStart <= totalPages; waveStart += concurrency {
		waveEnd := min(waveStart+concurrency-1, totalPages)

		var wg sync.WaitGroup
		for page := waveStart; page <= waveEnd; page++ {
			wg.Add(1)
			go func(page int) {
				defer wg.Done()
				p, err := retry.Do(ctx, maxRetries, baseDelay, func(ctx context.Context) (Page[T], error) {
					return fetchPage(ctx, page)
				})
				if err != nil {
					mu.Lock()
					failed = append(failed, page)
					mu.Unlock()
					return
				}
				byPage[page] = p.Records
			}(page)
		}
		wg.Wait()
	}

	sort.Ints(failed)
	result := Result[T]{TotalPages: totalPages, FailedPages: failed}
	for _, records := range byPage[1:] {
		result.Records = append(result.Records, records...)
	}
	return result, nil
}
