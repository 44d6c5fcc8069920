package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	return New(Options{
		CacheDir:    t.TempDir(),
		Timeout:     2 * time.Second,
		MaxAttempts: 1,
		UserAgent:   "iconify-test",
	})
}

func TestFetchJSONCachesResponse(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"hello": "world"}`))
	}))
	defer srv.Close()

	c := newTestClient(t)

	data, err := c.FetchJSON(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.JSONEq(t, `{"hello": "world"}`, string(data))

	// Second fetch is served from cache; no second request.
	data, err = c.FetchJSON(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.JSONEq(t, `{"hello": "world"}`, string(data))
	assert.Equal(t, int32(1), calls.Load())

	// Cache entry is durable on disk.
	_, err = os.Stat(c.CachePath(srv.URL))
	assert.NoError(t, err)
}

func TestFetchJSONCacheHasNoExpiry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"v": 1}`))
	}))

	c := newTestClient(t)
	_, err := c.FetchJSON(context.Background(), srv.URL)
	require.NoError(t, err)

	// Even with the server gone, the cached document is trusted forever.
	url := srv.URL
	srv.Close()

	data, err := c.FetchJSON(context.Background(), url)
	require.NoError(t, err)
	assert.JSONEq(t, `{"v": 1}`, string(data))
}

func TestFetchJSONStaleFallbackOnNetworkFailure(t *testing.T) {
	c := newTestClient(t)

	// Seed a cache entry as if written by a prior run, then point at a
	// dead server.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	require.NoError(t, os.MkdirAll(c.cacheDir, 0o755))
	require.NoError(t, os.WriteFile(c.CachePath(url), []byte(`{"stale": true}`), 0o644))

	data, err := c.FetchJSON(context.Background(), url)
	require.NoError(t, err)
	assert.JSONEq(t, `{"stale": true}`, string(data))
}

func TestFetchJSONUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := newTestClient(t)
	_, err := c.FetchJSON(context.Background(), url)
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestFetchJSONRejectsMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json at all`))
	}))
	defer srv.Close()

	c := newTestClient(t)
	_, err := c.FetchJSON(context.Background(), srv.URL)
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestFetchJSONNon200Status(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	c := newTestClient(t)
	_, err := c.FetchJSON(context.Background(), srv.URL)
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestFetchJSONInvalidCacheEntryIsRefetched(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"fresh": true}`))
	}))
	defer srv.Close()

	c := newTestClient(t)
	require.NoError(t, os.MkdirAll(c.cacheDir, 0o755))
	require.NoError(t, os.WriteFile(c.CachePath(srv.URL), []byte(`{truncated`), 0o644))

	data, err := c.FetchJSON(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.JSONEq(t, `{"fresh": true}`, string(data))
}

func TestFetchJSONRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "flaky", http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"ok": true}`))
	}))
	defer srv.Close()

	c := New(Options{
		CacheDir:    t.TempDir(),
		Timeout:     2 * time.Second,
		MaxAttempts: 3,
	})

	data, err := c.FetchJSON(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok": true}`, string(data))
	assert.Equal(t, int32(3), calls.Load())
}

func TestCachePathIsStable(t *testing.T) {
	c := newTestClient(t)
	assert.Equal(t, c.CachePath("https://example.com/a.json"), c.CachePath("https://example.com/a.json"))
	assert.NotEqual(t, c.CachePath("https://example.com/a.json"), c.CachePath("https://example.com/b.json"))
}
