// Package jira provides the upstream Jira search client.
package jira

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jirareport/worklog-report/internal/model"
)

const (
	// DefaultTimeout is the total request timeout.
	DefaultTimeout = 60 * time.Second
	// DialTimeout is the connection timeout.
	DialTimeout = 10 * time.Second
	// TLSHandshakeTimeout is the TLS negotiation timeout.
	TLSHandshakeTimeout = 10 * time.Second
)

// Config holds the static search query and credentials.
type Config struct {
	BaseURL    string
	Username   string
	Token      string
	APIVersion string // "2" or "3"
	JQL        string
	Fields     string
	Expand     string
	Timeout    time.Duration
}

// Client issues the report search against Jira.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient creates a Client with a tuned HTTP client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		cfg: cfg,
		http: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout:   DialTimeout,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout: TLSHandshakeTimeout,
				MaxIdleConns:        10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// WithHTTPClient replaces the underlying HTTP client, e.g. to install a
// custom transport.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.http = hc
	return c
}

// SearchURL returns the fully built search URL.
func (c *Client) SearchURL() string {
	q := url.Values{}
	q.Set("jql", c.cfg.JQL)
	if c.cfg.Fields != "" {
		q.Set("fields", c.cfg.Fields)
	}
	if c.cfg.Expand != "" {
		q.Set("expand", c.cfg.Expand)
	}

	version := c.cfg.APIVersion
	if version == "" {
		version = "2"
	}

	base := strings.TrimRight(c.cfg.BaseURL, "/")
	return base + "/rest/api/" + version + "/search?" + q.Encode()
}

// Search runs the configured search once and returns every issue in the
// response. There is no pagination loop and no retry.
func (c *Client) Search(ctx context.Context) (*model.SearchResult, error) {
	if c.cfg.BaseURL == "" {
		return nil, ErrMissingBaseURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.SearchURL(), nil)
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	req.SetBasicAuth(c.cfg.Username, c.cfg.Token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "Worklog-Report/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("jira search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a bounded amount so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Status:     statusText(resp),
		}
	}

	var result model.SearchResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	return &result, nil
}

// statusText returns the reason phrase of the response status line,
// e.g. "Unauthorized" for "401 Unauthorized".
func statusText(resp *http.Response) string {
	if _, reason, ok := strings.Cut(resp.Status, " "); ok && reason != "" {
		return reason
	}
	return http.StatusText(resp.StatusCode)
}
