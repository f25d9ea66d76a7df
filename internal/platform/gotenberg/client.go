// Package gotenberg converts HTML documents to PDF through a Gotenberg server.
package gotenberg

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// Page sizes in inches, as Gotenberg expects them.
const (
	A4Width  = "8.27"
	A4Height = "11.7"
)

// Client wraps interactions with the Gotenberg API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a new client.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Options tune the rendered page.
type Options struct {
	Landscape bool
}

// Ping checks if the remote Gotenberg service is available.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("gotenberg: ping: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("gotenberg: ping: status %d", resp.StatusCode)
	}
	return nil
}

// RenderHTML converts a complete HTML document into an A4 PDF.
func (c *Client) RenderHTML(ctx context.Context, html string, opts Options) ([]byte, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	// Chromium route requires the entry file to be named index.html.
	part, err := writer.CreateFormFile("files", "index.html")
	if err != nil {
		return nil, err
	}
	if _, err := io.WriteString(part, html); err != nil {
		return nil, err
	}
	fields := map[string]string{
		"paperWidth":      A4Width,
		"paperHeight":     A4Height,
		"printBackground": "true",
		"landscape":       fmt.Sprint(opts.Landscape),
	}
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			return nil, err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/forms/chromium/convert/html", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gotenberg: render: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("gotenberg: render failed with status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
