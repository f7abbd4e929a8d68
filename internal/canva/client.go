// Package canva is a thin client for the Canva Connect REST API. It does not
// interpret upstream responses: handlers pass status and body through to the
// caller verbatim.
package canva

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultTimeout bounds every upstream call so an unresponsive API cannot
// hang a request indefinitely.
const DefaultTimeout = 30 * time.Second

// Response is an upstream reply captured for passthrough.
type Response struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// Client calls the Connect API with a per-request bearer token.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client against baseURL (e.g. https://api.canva.com/rest/v1).
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ListDesigns fetches the user's designs, optionally filtered by a search query.
func (c *Client) ListDesigns(ctx context.Context, accessToken, query string) (*Response, error) {
	path := "/designs"
	if query != "" {
		path += "?query=" + url.QueryEscape(query)
	}
	return c.do(ctx, accessToken, http.MethodGet, path, nil)
}

// GetDesign fetches a single design by ID. Callers extract fields such as
// the editor URL from the body themselves.
func (c *Client) GetDesign(ctx context.Context, accessToken, designID string) (*Response, error) {
	return c.do(ctx, accessToken, http.MethodGet, "/designs/"+url.PathEscape(designID), nil)
}

// ImportFromURL asks Canva to import a design from a publicly reachable file URL.
func (c *Client) ImportFromURL(ctx context.Context, accessToken, fileURL string) (*Response, error) {
	return c.do(ctx, accessToken, http.MethodPost, "/design-imports/url", map[string]string{
		"url": fileURL,
	})
}

// do performs one upstream call. An HTTP response of any status is returned
// as a Response for passthrough; only network-level failures return an error.
func (c *Client) do(ctx context.Context, accessToken, method, path string, body any) (*Response, error) {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("canva api request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read canva api response: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/json"
	}

	return &Response{
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
		Body:        respBody,
	}, nil
}
