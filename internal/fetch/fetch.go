// Package fetch retrieves JSON documents from the Iconify catalog with a
// content-addressed on-disk cache. Cached documents never expire: after
// one successful run the tool keeps working fully offline, and a rebuild
// is the only way to refresh an entry.
package fetch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// ErrUnavailable indicates that the network request failed and no cached
// copy of the document exists.
var ErrUnavailable = errors.New("document unavailable: network failed and no cached copy")

// maxResponseBytes bounds catalog responses. The largest collection
// documents are a few tens of MB; anything bigger is malformed.
const maxResponseBytes = 256 << 20

// Options configures a Client.
type Options struct {
	// CacheDir is the directory for cached documents. Required.
	CacheDir string

	// Timeout bounds each network request.
	Timeout time.Duration

	// MaxAttempts is the number of network attempts before falling back
	// to a stale cache entry.
	MaxAttempts int

	// UserAgent is sent with every request.
	UserAgent string

	// Logger for fetch operations.
	Logger *slog.Logger
}

// Client fetches JSON documents with caching.
type Client struct {
	http        *http.Client
	cacheDir    string
	userAgent   string
	maxAttempts int
	logger      *slog.Logger
}

// New creates a fetch client.
func New(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 3
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return &Client{
		http: &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 4,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		cacheDir:    opts.CacheDir,
		userAgent:   opts.UserAgent,
		maxAttempts: opts.MaxAttempts,
		logger:      opts.Logger,
	}
}

// CachePath returns the on-disk cache location for a URL. The key is a
// hash of the URL string, so distinct URLs never collide and repeated
// fetches of the same URL hit the same entry.
func (c *Client) CachePath(url string) string {
	sum := sha256.Sum256([]byte(url))
	return filepath.Join(c.cacheDir, hex.EncodeToString(sum[:])+".json")
}

// FetchJSON returns the JSON document at url, preferring a cached copy.
//
// A valid cache entry is returned immediately. On a cache miss the
// network is tried with bounded retries; a successful response is
// persisted to the cache before being returned. If the network fails but
// a cache entry exists from any prior run, the stale entry is returned
// instead of the error. Only when both fail does FetchJSON report
// ErrUnavailable.
func (c *Client) FetchJSON(ctx context.Context, url string) ([]byte, error) {
	cachePath := c.CachePath(url)

	if data, err := os.ReadFile(cachePath); err == nil {
		if json.Valid(data) {
			c.logger.Debug("cache hit", "url", url)
			return data, nil
		}
		c.logger.Warn("invalid cache entry, refetching", "url", url, "path", cachePath)
	}

	data, netErr := c.get(ctx, url)
	if netErr == nil {
		if err := writeFileAtomic(cachePath, data); err != nil {
			// A failed cache write is not fatal; the document is still good.
			c.logger.Warn("cache write failed", "url", url, "error", err)
		}
		return data, nil
	}

	// Stale fallback: any entry from a prior run, even one written by a
	// previously failed attempt, beats propagating the network error.
	if data, err := os.ReadFile(cachePath); err == nil && json.Valid(data) {
		c.logger.Warn("network failed, serving stale cache", "url", url, "error", netErr)
		return data, nil
	}

	return nil, fmt.Errorf("%w: %s: %v", ErrUnavailable, url, netErr)
}

// get performs the network request with retries and exponential backoff.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	var lastErr error
	delay := 200 * time.Millisecond

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		data, err := c.getOnce(ctx, url)
		if err == nil {
			if attempt > 1 {
				c.logger.Debug("fetch succeeded after retry", "url", url, "attempt", attempt)
			}
			return data, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if attempt < c.maxAttempts {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			delay *= 2
		}
	}
	return nil, lastErr
}

func (c *Client) getOnce(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("malformed JSON response from %s", url)
	}
	return data, nil
}

// writeFileAtomic writes data via a temp file and rename so that a
// concurrent reader never observes a partial cache entry.
func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".fetch-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}
