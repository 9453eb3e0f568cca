// Package jokes provides a minimal client for the Italian Jokes API.
package jokes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the public Italian Jokes API endpoint.
const DefaultBaseURL = "https://italian-jokes.vercel.app/api/jokes"

// SubtypeAll is the sentinel meaning "no subtype filter".
const SubtypeAll = "All"

const userAgent = "italian-jokes-mcp/1.0.0"

// Joke is a single joke as returned by the API. The wire field for the
// body is "joke"; downstream layers may present it as "text" but the
// wire name must not change.
type Joke struct {
	ID      int    `json:"id"`
	Joke    string `json:"joke"`
	Type    string `json:"type"`
	Subtype string `json:"subtype"`
}

// StatusError reports a non-2xx response from the API.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("API status %d", e.Code)
	}
	return fmt.Sprintf("API status %d: %s", e.Code, e.Body)
}

// Client is a minimal HTTP client for the Italian Jokes API.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// New returns a new client. If httpClient is nil, a default with a 10s
// timeout is used.
func New(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{BaseURL: strings.TrimRight(baseURL, "/"), HTTP: httpClient}
}

// Get fetches a single joke. An empty subtype or "All" means an
// unfiltered random joke; any other value is sent as a query parameter.
// The caller is expected to have validated subtype already.
func (c *Client) Get(ctx context.Context, subtype string) (*Joke, error) {
	reqURL, err := c.buildURL(subtype)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var joke Joke
	if err := json.NewDecoder(resp.Body).Decode(&joke); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &joke, nil
}

// Probe checks that the API answers at all. Used by health reporting;
// a short deadline keeps /health responsive when the API is down.
func (c *Client) Probe(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode != http.StatusOK {
		return &StatusError{Code: resp.StatusCode}
	}
	return nil
}

func (c *Client) buildURL(subtype string) (string, error) {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base url: %w", err)
	}
	if subtype != "" && subtype != SubtypeAll {
		q := u.Query()
		q.Set("subtype", subtype)
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

// IsTimeout reports whether err represents a timed-out or aborted
// request rather than a structural failure.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
