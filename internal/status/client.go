// Package status reads job progress from the download server's status endpoints.
package status

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"

	"ydwatch/internal/progress"
)

// Endpoint paths served by the download server.
const (
	SinglePath   = "/get_progress"
	PlaylistPath = "/get_playlist_downloading_progress"
)

// maxBody bounds how much of a status response is read.
const maxBody = 64 * 1024

// TransportError means the status could not be read: the server was
// unreachable, answered with a non-2xx code, or sent an undecodable body.
type TransportError struct {
	URL        string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("status %s: http %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("status %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Options configures the client.
type Options struct {
	// BaseURL of the download server, e.g. http://127.0.0.1:5000.
	BaseURL string

	// Timeout for a single attempt.
	// Default: 10s
	Timeout time.Duration

	// RetryMax is the number of extra attempts within one poll.
	// Default: 2. The poller itself retries on its next tick regardless.
	RetryMax int

	// RetryWaitMin and RetryWaitMax bound the backoff between attempts.
	// Default: 250ms / 2s
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
}

// DefaultOptions returns options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		BaseURL:      "http://127.0.0.1:5000",
		Timeout:      10 * time.Second,
		RetryMax:     2,
		RetryWaitMin: 250 * time.Millisecond,
		RetryWaitMax: 2 * time.Second,
	}
}

// Client fetches status snapshots.
type Client struct {
	http    *http.Client
	baseURL string
}

// NewClient builds a client whose transport retries transient failures.
func NewClient(opts Options, log zerolog.Logger) *Client {
	rc := retryablehttp.NewClient()
	rc.HTTPClient.Timeout = opts.Timeout
	rc.RetryMax = opts.RetryMax
	if opts.RetryWaitMin > 0 {
		rc.RetryWaitMin = opts.RetryWaitMin
	}
	if opts.RetryWaitMax > 0 {
		rc.RetryWaitMax = opts.RetryWaitMax
	}
	rc.Logger = retryLogger{log: log}
	// Exhausted retries surface the last response's status, not a generic error.
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return &Client{
		http:    rc.StandardClient(),
		baseURL: strings.TrimSuffix(opts.BaseURL, "/"),
	}
}

// Endpoint returns a Fetcher for one status path.
func (c *Client) Endpoint(path string) *Endpoint {
	return &Endpoint{client: c, url: c.baseURL + path}
}

// Endpoint is a status URL. It implements poller.Fetcher.
type Endpoint struct {
	client *Client
	url    string
}

// URL returns the full endpoint address.
func (e *Endpoint) URL() string { return e.url }

// Fetch performs one idempotent status read.
func (e *Endpoint) Fetch(ctx context.Context) (progress.Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.url, nil)
	if err != nil {
		return progress.Snapshot{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := e.client.http.Do(req)
	if err != nil {
		return progress.Snapshot{}, &TransportError{URL: e.url, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return progress.Snapshot{}, &TransportError{URL: e.url, StatusCode: resp.StatusCode, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return progress.Snapshot{}, &TransportError{
			URL:        e.url,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	var snap progress.Snapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		return progress.Snapshot{}, &TransportError{URL: e.url, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode: %w", err)}
	}
	return snap, nil
}

// retryLogger implements retryablehttp.LeveledLogger on zerolog.
type retryLogger struct {
	log zerolog.Logger
}

func (l retryLogger) Error(msg string, keysAndValues ...interface{}) {
	l.log.Error().Fields(keysAndValues).Msg(msg)
}

func (l retryLogger) Info(msg string, keysAndValues ...interface{}) {
	// Per-attempt request lines are noise at info.
	l.log.Trace().Fields(keysAndValues).Msg(msg)
}

func (l retryLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.log.Trace().Fields(keysAndValues).Msg(msg)
}

func (l retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg(msg)
}
