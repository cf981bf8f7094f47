// Package upstream performs outbound provider requests, consulting a cache
// keyed by the full request URL before going to the network.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/neexbeast/tourinfo/internal/cache"
)

// DefaultTimeout bounds every outbound call.
const DefaultTimeout = 10 * time.Second

// maxErrorBody caps how much of a failed response body is kept for logging.
const maxErrorBody = 512

// StatusError is returned when a provider answers with a non-2xx status.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s returned status %d", e.Method, e.URL, e.StatusCode)
}

// Client issues provider requests with an optional response cache.
type Client struct {
	http  *http.Client
	cache cache.Store
	log   *slog.Logger
}

// NewClient constructs a Client. store may be nil, which disables caching.
func NewClient(timeout time.Duration, store cache.Store, log *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = slog.Default()
	}
	return &Client{http: &http.Client{Timeout: timeout}, cache: store, log: log}
}

// PostForm sends a form-encoded POST and decodes the JSON answer. It is never cached.
func (c *Client) PostForm(ctx context.Context, rawURL string, form url.Values, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("creating request for %s: %w", rawURL, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.Do(req, 0, dst)
}

// GetJSON fetches rawURL and decodes the JSON body into dst.
func (c *Client) GetJSON(ctx context.Context, rawURL string, ttl time.Duration, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("creating request for %s: %w", rawURL, err)
	}
	return c.Do(req, ttl, dst)
}

// Do sends req and decodes the JSON body into dst. With ttl > 0 the body is
// served from, and stored in, the cache under req.URL; headers are not part
// of the key.
func (c *Client) Do(req *http.Request, ttl time.Duration, dst any) error {
	ctx := req.Context()
	rawURL := req.URL.String()

	if ttl > 0 && c.cache != nil {
		body, ok, err := c.cache.Get(ctx, rawURL)
		if err != nil {
			c.log.Warn("cache get failed", "url", rawURL, "err", err)
		}
		if ok {
			if err := json.Unmarshal(body, dst); err != nil {
				return fmt.Errorf("decoding cached response for %s: %w", rawURL, err)
			}
			return nil
		}
	}

	body, err := c.fetch(req)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("decoding response from %s: %w", rawURL, err)
	}

	if ttl > 0 && c.cache != nil {
		if err := c.cache.Set(ctx, rawURL, body, ttl); err != nil {
			c.log.Warn("cache set failed", "url", rawURL, "err", err)
		}
	}

	return nil
}

func (c *Client) fetch(req *http.Request) ([]byte, error) {
	rawURL := req.URL.String()
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{Method: req.Method, URL: rawURL, StatusCode: resp.StatusCode, Body: string(snippet)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response from %s: %w", rawURL, err)
	}
	return body, nil
}
