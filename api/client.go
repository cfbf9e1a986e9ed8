package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"rechord-client/config"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Client issues authenticated requests against the Rechord API. It keeps no
// local state beyond its configuration; all profile and reaction state lives
// with the controllers.
type Client struct {
	baseURL     string
	jpegQuality int
	httpClient  *http.Client
}

func NewClient(cfg config.Config) *Client {
	return &Client{
		baseURL:     strings.TrimSuffix(cfg.API.BaseURL, "/"),
		jpegQuality: cfg.Avatar.JPEGQuality,
		httpClient: &http.Client{
			Timeout:   cfg.API.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

func (c *Client) url(path string) string {
	return c.baseURL + "/" + path
}

func (c *Client) newRequest(ctx context.Context, method, path, token, contentType string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return req, nil
}

// do sends the request and enforces the shared success criterion: any status
// in [200,300) passes, everything else is a RequestError. The body is
// returned for callers that decode it.
func (c *Client) do(op string, req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, newRequestError(op, 0, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newRequestError(op, 0, fmt.Errorf("reading response body: %w", err))
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, newRequestError(op, resp.StatusCode, nil)
	}
	return body, nil
}
