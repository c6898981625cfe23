// Package httpclient provides the HTTP client the readers fetch pages
// with.
package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// userAgent identifies the scraper politely to the source site.
const userAgent = "parliai-public/1.0 (+https://github.com/datasciencecampus/parliai-public)"

// Client wraps an http.Client with the headers and timeout we use for
// every fetch.
type Client struct {
	client *http.Client
}

// NewClient creates a client with a sensible timeout and bounded
// redirect following.
func NewClient() *Client {
	return &Client{
		client: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return http.ErrUseLastResponse
				}
				return nil
			},
		},
	}
}

// Do executes a request with the client's headers applied.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	return c.client.Do(req)
}

// Get fetches a URL and returns the response.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return c.Do(req)
}

// GetBody fetches a URL and returns its body, failing on any non-200
// status.
func (c *Client) GetBody(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, nil
}
