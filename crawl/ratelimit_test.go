package crawl_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/kbscrape/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainLimiter_Wait(t *testing.T) {
	t.Parallel()

	t.Run("first request passes immediately", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewDomainLimiter(10)

		start := time.Now()
		require.NoError(t, limiter.Wait(context.Background(), "example.com"))
		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("spaces requests to the same host", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewDomainLimiter(10)
		require.NoError(t, limiter.Wait(context.Background(), "example.com"))

		start := time.Now()
		require.NoError(t, limiter.Wait(context.Background(), "example.com"))
		assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
	})

	t.Run("www and case variants share a bucket", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewDomainLimiter(10)
		require.NoError(t, limiter.Wait(context.Background(), "www.Example.com"))

		start := time.Now()
		require.NoError(t, limiter.Wait(context.Background(), "example.com"))
		assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
	})

	t.Run("hosts are limited independently", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewDomainLimiter(10)
		require.NoError(t, limiter.Wait(context.Background(), "example.com"))

		start := time.Now()
		require.NoError(t, limiter.Wait(context.Background(), "other.com"))
		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("returns error when context expires while waiting", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewDomainLimiter(1)
		require.NoError(t, limiter.Wait(context.Background(), "example.com"))

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		assert.Error(t, limiter.Wait(ctx, "example.com"))
	})

	t.Run("non-positive rate disables limiting", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewDomainLimiter(0)

		start := time.Now()
		for range 20 {
			require.NoError(t, limiter.Wait(context.Background(), "example.com"))
		}
		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("unlimited still honors a cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		assert.ErrorIs(t, crawl.NewDomainLimiter(0).Wait(ctx, "example.com"), context.Canceled)
	})

	t.Run("concurrent waiters all complete", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewDomainLimiter(100)

		var wg sync.WaitGroup
		errs := make([]error, 5)
		for i := range errs {
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs[i] = limiter.Wait(context.Background(), "example.com")
			}()
		}
		wg.Wait()

		for _, err := range errs {
			assert.NoError(t, err)
		}
	})
}
