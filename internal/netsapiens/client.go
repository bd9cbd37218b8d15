// Package netsapiens is the client for the upstream telephony platform API.
// All outbound calls go through a single Client instance that attaches the
// bearer credential, applies the request timeout and retries failed calls
// on a fixed backoff schedule.
package netsapiens

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yabbit-au/reseller-dashboard-tui/internal/logger"
)

const (
	// DefaultTimeout is the per-request timeout for upstream calls.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxRetries is how many times a failed call is retried.
	// 3 retries means 4 total attempts.
	DefaultMaxRetries = 3
)

// TokenSource supplies the bearer credential for outbound requests. The
// token is resolved on every call so a rotated credential is picked up
// without restarting the client.
type TokenSource interface {
	Token() string
}

// StaticToken is a TokenSource returning a fixed credential.
type StaticToken string

// Token returns the static credential.
func (s StaticToken) Token() string { return string(s) }

// RetryPolicy controls how failed upstream calls are retried. The delay
// before retry n is Backoff[n-1]; once the schedule is exhausted the last
// value repeats for all further attempts.
type RetryPolicy struct {
	MaxRetries int
	Backoff    []time.Duration
}

// DefaultRetryPolicy returns the standard schedule: 3 retries with
// delays of 1s, 2s, 3s, 5s.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries: DefaultMaxRetries,
		Backoff: []time.Duration{
			1 * time.Second,
			2 * time.Second,
			3 * time.Second,
			5 * time.Second,
		},
	}
}

// Delay returns the wait before the retry that follows the given 1-based
// failed attempt.
func (p RetryPolicy) Delay(attempt int) time.Duration {
	if len(p.Backoff) == 0 {
		return 0
	}
	idx := attempt - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(p.Backoff) {
		idx = len(p.Backoff) - 1
	}
	return p.Backoff[idx]
}

// StatusError reports a non-2xx upstream response. Status errors are
// retried identically to transport errors; the upstream API is trusted to
// be flaky rather than wrong.
type StatusError struct {
	StatusCode int
	Path       string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream %s returned status %d: %s", e.Path, e.StatusCode, e.Body)
}

// Config holds the client configuration. Zero fields fall back to defaults.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Retry   RetryPolicy
}

// Client issues calls against the upstream API.
type Client struct {
	baseURL    string
	tokens     TokenSource
	retry      RetryPolicy
	httpClient *http.Client

	// sleep waits between attempts; swapped out in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// New creates a client for the given upstream. The client is constructed
// once at startup and passed by reference to every collaborator; there is
// no process-wide singleton.
func New(cfg Config, tokens TokenSource) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Retry.Backoff == nil {
		cfg.Retry = DefaultRetryPolicy()
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		tokens:     tokens,
		retry:      cfg.Retry,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		sleep:      sleepContext,
	}
}

// sleepContext waits for d or until the context is cancelled. The wait
// suspends only the retrying call; other in-flight calls are unaffected.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// get performs one logical GET including retries and returns the raw
// response body. After exhausting all attempts the final underlying error
// is surfaced to the caller unchanged.
func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	attempts := c.retry.MaxRetries + 1

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		body, err := c.getOnce(ctx, path, query)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if attempt == attempts {
			break
		}

		logger.Warn("upstream call failed, retrying",
			"path", path, "attempt", attempt, "error", err)

		if err := c.sleep(ctx, c.retry.Delay(attempt)); err != nil {
			return nil, err
		}
	}

	return nil, lastErr
}

// getOnce performs a single upstream request attempt.
func (c *Client) getOnce(ctx context.Context, path string, query url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", path, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.tokens.Token())
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Error("failed to close response body", "error", err)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Path:       path,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	return body, nil
}
