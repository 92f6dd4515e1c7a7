package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	autodocs "github.com/ziyacivan/autodocs-mcp"
	adhttp "github.com/ziyacivan/autodocs-mcp/http"
	"github.com/ziyacivan/autodocs-mcp/mock"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns HTML body from server", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html><body>Hello World</body></html>"))
		}))
		defer server.Close()

		fetcher := adhttp.NewFetcher()
		defer fetcher.Close()

		result, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "<html><body>Hello World</body></html>", string(result.Body))
		assert.Equal(t, http.StatusOK, result.Status)
	})

	t.Run("reports canonical URL after redirects", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		server := httptest.NewServer(mux)
		defer server.Close()

		mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/new", http.StatusMovedPermanently)
		})
		mux.HandleFunc("/new", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("moved"))
		})

		fetcher := adhttp.NewFetcher()
		defer fetcher.Close()

		result, err := fetcher.Fetch(context.Background(), server.URL+"/old")
		require.NoError(t, err)
		assert.Equal(t, server.URL+"/new", result.URL)
	})

	t.Run("stops after the redirect bound", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, r.URL.Path+"x", http.StatusFound)
		}))
		defer server.Close()

		fetcher := adhttp.NewFetcher()
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)

		assert.Equal(t, autodocs.EREDIRECT, autodocs.ErrorCode(err))
	})

	t.Run("respects custom timeout option", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		fetcher := adhttp.NewFetcher(adhttp.WithTimeout(10 * time.Millisecond))
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		fetcher := adhttp.NewFetcher()
		defer fetcher.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := fetcher.Fetch(ctx, server.URL)
		require.Error(t, err)
	})

	t.Run("returns HTTPError for non-2xx status codes", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte("404 Not Found"))
		}))
		defer server.Close()

		fetcher := adhttp.NewFetcher()
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)
		assert.Equal(t, autodocs.ENOTFOUND, autodocs.ErrorCode(err))
	})
}

func TestFetcher_RateLimit(t *testing.T) {
	t.Parallel()

	t.Run("retries 429 and succeeds", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) == 1 {
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}
			_, _ = w.Write([]byte("ok"))
		}))
		defer server.Close()

		fetcher := adhttp.NewFetcher(adhttp.WithBackoffBase(time.Millisecond))
		defer fetcher.Close()

		result, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "ok", string(result.Body))
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("honors integer Retry-After header", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) == 1 {
				w.Header().Set("Retry-After", "1")
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}
			_, _ = w.Write([]byte("ok"))
		}))
		defer server.Close()

		fetcher := adhttp.NewFetcher(adhttp.WithBackoffBase(time.Millisecond))
		defer fetcher.Close()

		start := time.Now()
		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, time.Since(start), time.Second)
	})

	t.Run("computed delays strictly increase", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		var times []time.Time
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			mu.Lock()
			times = append(times, time.Now())
			mu.Unlock()
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		fetcher := adhttp.NewFetcher(
			adhttp.WithBackoffBase(50*time.Millisecond),
			adhttp.WithMaxAttempts(3),
		)
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)

		mu.Lock()
		defer mu.Unlock()
		require.Len(t, times, 3)
		first := times[1].Sub(times[0])
		second := times[2].Sub(times[1])
		assert.GreaterOrEqual(t, first, 50*time.Millisecond)
		assert.GreaterOrEqual(t, second, 100*time.Millisecond)
	})

	t.Run("returns RateLimitError after exhausting attempts", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		fetcher := adhttp.NewFetcher(
			adhttp.WithBackoffBase(time.Millisecond),
			adhttp.WithMaxAttempts(3),
		)
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)

		assert.Equal(t, autodocs.ERATELIMIT, autodocs.ErrorCode(err))
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("reports retry waits", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) == 1 {
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}
			_, _ = w.Write([]byte("ok"))
		}))
		defer server.Close()

		var messages []string
		reporter := autodocs.ReporterFunc(func(msg string) {
			messages = append(messages, msg)
		})

		fetcher := adhttp.NewFetcher(
			adhttp.WithBackoffBase(time.Millisecond),
			adhttp.WithReporter(reporter),
		)
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		require.Len(t, messages, 1)
		assert.Contains(t, messages[0], "429")
	})
}

func TestFetcher_Probe(t *testing.T) {
	t.Parallel()

	t.Run("uses HEAD when the server supports it", func(t *testing.T) {
		t.Parallel()

		var methods []string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			methods = append(methods, r.Method)
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		fetcher := adhttp.NewFetcher()
		defer fetcher.Close()

		result, err := fetcher.Probe(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, []string{http.MethodHead}, methods)
		assert.Empty(t, result.Body)
	})

	t.Run("falls back to a single GET on 405", func(t *testing.T) {
		t.Parallel()

		var methods []string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			methods = append(methods, r.Method)
			if r.Method == http.MethodHead {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			_, _ = w.Write([]byte("content"))
		}))
		defer server.Close()

		fetcher := adhttp.NewFetcher()
		defer fetcher.Close()

		result, err := fetcher.Probe(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, []string{http.MethodHead, http.MethodGet}, methods)
		assert.Equal(t, "content", string(result.Body))
	})

	t.Run("does not fall back on 404", func(t *testing.T) {
		t.Parallel()

		var methods []string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			methods = append(methods, r.Method)
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		fetcher := adhttp.NewFetcher()
		defer fetcher.Close()

		_, err := fetcher.Probe(context.Background(), server.URL)
		require.Error(t, err)
		assert.Equal(t, []string{http.MethodHead}, methods)
	})

	t.Run("does not fall back on rate-limit exhaustion", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		fetcher := adhttp.NewFetcher(
			adhttp.WithBackoffBase(time.Millisecond),
			adhttp.WithMaxAttempts(2),
		)
		defer fetcher.Close()

		_, err := fetcher.Probe(context.Background(), server.URL)
		require.Error(t, err)

		assert.Equal(t, autodocs.ERATELIMIT, autodocs.ErrorCode(err))
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("does not fall back to GET once the context is cancelled", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32
		fetcher := adhttp.NewFetcher(
			adhttp.WithHostLimiter(&mock.HostLimiter{
				WaitFn: func(ctx context.Context, host string) error {
					attempts.Add(1)
					return ctx.Err()
				},
			}),
		)
		defer fetcher.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := fetcher.Probe(ctx, "https://docs.example.com")
		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, int32(1), attempts.Load())
	})

	t.Run("does not fall back to GET for an unparseable URL", func(t *testing.T) {
		t.Parallel()

		fetcher := adhttp.NewFetcher()
		defer fetcher.Close()

		_, err := fetcher.Probe(context.Background(), "://missing-scheme")
		require.Error(t, err)
		assert.Equal(t, autodocs.EINVALID, autodocs.ErrorCode(err))
	})
}

// Compile-time verification that Fetcher implements autodocs.Fetcher
var _ autodocs.Fetcher = (*adhttp.Fetcher)(nil)
