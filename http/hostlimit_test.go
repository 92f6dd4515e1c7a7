package http_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	adhttp "github.com/ziyacivan/autodocs-mcp/http"
)

func TestHostLimiter(t *testing.T) {
	t.Parallel()

	t.Run("allows the first request immediately", func(t *testing.T) {
		t.Parallel()

		limiter := adhttp.NewHostLimiter(1.0)

		start := time.Now()
		err := limiter.Wait(context.Background(), "example.com")
		require.NoError(t, err)
		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("paces consecutive requests to the same host", func(t *testing.T) {
		t.Parallel()

		limiter := adhttp.NewHostLimiter(10.0)

		ctx := context.Background()
		require.NoError(t, limiter.Wait(ctx, "example.com"))

		start := time.Now()
		require.NoError(t, limiter.Wait(ctx, "example.com"))
		assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("hosts do not pace each other", func(t *testing.T) {
		t.Parallel()

		limiter := adhttp.NewHostLimiter(1.0)

		ctx := context.Background()
		require.NoError(t, limiter.Wait(ctx, "a.example.com"))

		start := time.Now()
		require.NoError(t, limiter.Wait(ctx, "b.example.com"))
		assert.Less(t, time.Since(start), 100*time.Millisecond)
	})

	t.Run("backoff pauses all requests to a host", func(t *testing.T) {
		t.Parallel()

		limiter := adhttp.NewHostLimiter(100.0)
		limiter.Backoff("example.com", 100*time.Millisecond)

		start := time.Now()
		err := limiter.Wait(context.Background(), "example.com")
		require.NoError(t, err)
		assert.GreaterOrEqual(t, time.Since(start), 100*time.Millisecond)
	})

	t.Run("a later deadline never shrinks to an earlier one", func(t *testing.T) {
		t.Parallel()

		limiter := adhttp.NewHostLimiter(100.0)
		limiter.Backoff("example.com", 150*time.Millisecond)
		limiter.Backoff("example.com", time.Millisecond)

		start := time.Now()
		err := limiter.Wait(context.Background(), "example.com")
		require.NoError(t, err)
		assert.GreaterOrEqual(t, time.Since(start), 150*time.Millisecond)
	})

	t.Run("wait respects context cancellation during a pause", func(t *testing.T) {
		t.Parallel()

		limiter := adhttp.NewHostLimiter(1.0)
		limiter.Backoff("example.com", 5*time.Second)

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		err := limiter.Wait(ctx, "example.com")
		require.Error(t, err)
	})
}
