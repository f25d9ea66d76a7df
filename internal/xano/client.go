// Package xano is the HTTP client for the remote restaurant API that owns
// every record the back office displays.
package xano

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// AuthHeader carries the bearer token expected by the backend.
const AuthHeader = "X-Xano-Authorization"

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 64 << 10

// Recorder receives one observation per upstream call.
type Recorder interface {
	ObserveUpstream(method, endpoint string, status int, elapsed time.Duration)
}

// File is one part of a multipart upload.
type File struct {
	Field       string
	Name        string
	ContentType string
	Reader      io.Reader
}

// Client issues authenticated requests against the backend.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
	recorder   Recorder
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the overall request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithLogger attaches a logger for upstream failures.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithRecorder attaches a metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(c *Client) { c.recorder = r }
}

// New constructs a client for the API group rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(strings.TrimSpace(baseURL), "/"))
	if err != nil {
		return nil, fmt.Errorf("xano: parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("xano: base url %q must be absolute", baseURL)
	}
	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Get performs a GET request decoding the JSON answer into out.
func (c *Client) Get(ctx context.Context, path, token string, query url.Values, out any) error {
	return c.Do(ctx, http.MethodGet, path, token, query, nil, out)
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path, token string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, token, nil, body, out)
}

// Patch performs a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path, token string, body, out any) error {
	return c.Do(ctx, http.MethodPatch, path, token, nil, body, out)
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path, token string) error {
	return c.Do(ctx, http.MethodDelete, path, token, nil, nil, nil)
}

// Do sends a JSON request. A nil body sends no payload; a nil out discards the answer.
func (c *Client) Do(ctx context.Context, method, path, token string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("xano: encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := c.newRequest(ctx, method, path, token, query, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, path, out)
}

// Upload sends a multipart/form-data request with plain fields and files.
func (c *Client) Upload(ctx context.Context, method, path, token string, fields map[string]string, files []File, out any) error {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return fmt.Errorf("xano: write field %s: %w", name, err)
		}
	}
	for _, f := range files {
		if f.Reader == nil {
			continue
		}
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, escapeQuotes(f.Field), escapeQuotes(f.Name)))
		contentType := f.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		header.Set("Content-Type", contentType)
		part, err := writer.CreatePart(header)
		if err != nil {
			return fmt.Errorf("xano: create part %s: %w", f.Field, err)
		}
		if _, err := io.Copy(part, f.Reader); err != nil {
			return fmt.Errorf("xano: copy part %s: %w", f.Field, err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("xano: close multipart: %w", err)
	}
	req, err := c.newRequest(ctx, method, path, token, nil, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return c.send(req, path, out)
}

func (c *Client) newRequest(ctx context.Context, method, path, token string, query url.Values, body io.Reader) (*http.Request, error) {
	target := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		target.RawQuery = query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return nil, fmt.Errorf("xano: build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set(AuthHeader, "Bearer "+token)
	}
	return req, nil
}

func (c *Client) send(req *http.Request, path string, out any) error {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(req.Method, path, 0, start)
		return fmt.Errorf("xano: %s %s: %w", req.Method, path, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	c.observe(req.Method, path, resp.StatusCode, start)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Method: req.Method, Path: path}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		var envelope errorBody
		if json.Unmarshal(raw, &envelope) == nil {
			apiErr.Code = envelope.Code
			apiErr.Message = envelope.Message
		}
		if c.logger != nil {
			c.logger.Warn("xano request failed",
				slog.String("method", req.Method),
				slog.String("path", path),
				slog.Int("status", resp.StatusCode),
				slog.String("code", apiErr.Code))
		}
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("xano: decode %s %s: %w", req.Method, path, err)
	}
	return nil
}

func (c *Client) observe(method, path string, status int, start time.Time) {
	if c.recorder == nil {
		return
	}
	c.recorder.ObserveUpstream(method, Endpoint(path), status, time.Since(start))
}

var idSegment = regexp.MustCompile(`/\d+(/|$)`)

// Endpoint collapses numeric path segments so metric labels stay bounded.
func Endpoint(path string) string {
	for idSegment.MatchString(path) {
		path = idSegment.ReplaceAllString(path, "/:id$1")
	}
	return path
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
