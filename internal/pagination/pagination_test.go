package pagination

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func opts() Options {
	return Options{Concurrency: 2, MaxRetries: 2, RetryBaseDelay: time.Millisecond}
}

func TestFetchAllAggregatesInPageOrder(t *testing.T) {
	result, err := FetchAll(context.Background(), opts(), func(ctx context.Context, page int) (Page[string], error) {
		return Page[string]{
			Records:    []string{fmt.Sprintf("p%d-a", page), fmt.Sprintf("p%d-b", page)},
			TotalPages: 5,
		}, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 5, result.TotalPages)
	assert.False(t, result.Partial())
	require.Len(t, result.Records, 10)
	assert.Equal(t, "p1-a", result.Records[0])
	assert.Equal(t, "p3-a", result.Records[4])
	assert.Equal(t, "p5-b", result.Records[9])
}

func TestFetchAllSinglePage(t *testing.T) {
	calls := 0
	result, err := FetchAll(context.Background(), opts(), func(ctx context.Context, page int) (Page[int], error) {
		calls++
		return Page[int]{Records: []int{1, 2, 3}, TotalPages: 1}, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, []int{1, 2, 3}, result.Records)
}

func TestFetchAllRetriesIndividualPages(t *testing.T) {
	var mu sync.Mutex
	attempts := map[int]int{}

	result, err := FetchAll(context.Background(), opts(), func(ctx context.Context, page int) (Page[int], error) {
		mu.Lock()
		attempts[page]++
		n := attempts[page]
		mu.Unlock()

		if page == 2 && n == 1 {
			return Page[int]{}, errors.New("transient")
		}
		return Page[int]{Records: []int{page}, TotalPages: 3}, nil
	})

	require.NoError(t, err)
	assert.False(t, result.Partial())
	assert.Equal(t, []int{1, 2, 3}, result.Records)
	assert.Equal(t, 2, attempts[2])
}

func TestFetchAllRecordsLostPages(t *testing.T) {
	result, err := FetchAll(context.Background(), opts(), func(ctx context.Context, page int) (Page[int], error) {
		if page == 3 {
			return Page[int]{}, errors.New("down for good")
		}
		return Page[int]{Records: []int{page}, TotalPages: 4}, nil
	})

	require.NoError(t, err)
	assert.True(t, result.Partial())
	assert.Equal(t, []int{3}, result.FailedPages)
	assert.Equal(t, []int{1, 2, 4}, result.Records)
}

func TestFetchAllFailsWhenFirstPageUnreachable(t *testing.T) {
	calls := 0
	_, err := FetchAll(context.Background(), opts(), func(ctx context.Context, page int) (Page[int], error) {
		calls++
		return Page[int]{}, errors.New("unreachable")
	})

	require.Error(t, err)
	assert.Equal(t, 2, calls) // MaxRetries attempts on page 1, then abort
}

func TestFetchAllWaveBound(t *testing.T) {
	var mu sync.Mutex
	inFlight, peak := 0, 0

	_, err := FetchAll(context.Background(), Options{Concurrency: 3, MaxRetries: 1, RetryBaseDelay: time.Millisecond},
		func(ctx context.Context, page int) (Page[int], error) {
			if page > 1 {
				mu.Lock()
				inFlight++
				if inFlight > peak {
					peak = inFlight
				}
				mu.Unlock()

				time.Sleep(5 * time.Millisecond)

				mu.Lock()
				inFlight--
				mu.Unlock()
			}
			return Page[int]{Records: []int{page}, TotalPages: 10}, nil
		})

	require.NoError(t, err)
	assert.LessOrEqual(t, peak, 3)
	assert.Greater(t, peak, 1)
}
