// Package client is the Go API client for the media registry: listing,
// upload with the duplicate pre-check, the conflict-resolution state machine,
// and the static-credential session gate.
package client

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mediakeep/mediakeep"
)

const defaultTimeout = 30 * time.Second

// Client talks to the registry's HTTP API. Safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Config describes how to reach the API.
type Config struct {
	// BaseURL is the server root, e.g. "http://localhost:8080".
	// The "/api" prefix is appended by the client.
	BaseURL string

	// Timeout applies per request. Zero means 30s.
	Timeout time.Duration

	// HTTPClient overrides the underlying client when set. Timeout is
	// ignored in that case.
	HTTPClient *http.Client
}

// New creates an API client.
func New(cfg Config) (*Client, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		return nil, mediakeep.Invalid("base URL is required")
	}

	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}

	return &Client{
		httpClient: hc,
		baseURL:    strings.TrimRight(base, "/"),
	}, nil
}

type uploadRequest struct {
	Type      string `json:"type"`
	Name      string `json:"name"`
	Base64    string `json:"base64"`
	Mimetype  string `json:"mimetype"`
	Overwrite bool   `json:"overwrite,omitempty"`
}

type uploadResponse struct {
	Message string `json:"message"`
	URL     string `json:"url"`
}

type listItem struct {
	Name         string     `json:"name"`
	URL          string     `json:"url"`
	Size         *int64     `json:"size,omitempty"`
	LastModified *time.Time `json:"lastModified,omitempty"`
}

type urlResponse struct {
	URL string `json:"url"`
}

type deleteAllResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// List fetches the raw listing for a category.
func (c *Client) List(ctx context.Context, category mediakeep.Category) ([]*mediakeep.FileRecord, error) {
	var items []listItem
	if err := c.get(ctx, "/api/all/"+category.String(), &items); err != nil {
		return nil, err
	}

	records := make([]*mediakeep.FileRecord, 0, len(items))
	for _, item := range items {
		records = append(records, &mediakeep.FileRecord{
			Name:         item.Name,
			Category:     category,
			ContentType:  InferContentType(item.Name),
			Size:         item.Size,
			LastModified: item.LastModified,
			URL:          item.URL,
		})
	}
	return records, nil
}

// Upload sends one file. A name collision on the server comes back as
// ECONFLICT; overwrite suppresses the collision check.
func (c *Client) Upload(ctx context.Context, in mediakeep.UploadInput) (string, error) {
	body := uploadRequest{
		Type:      in.Category,
		Name:      in.Name,
		Base64:    base64.StdEncoding.EncodeToString(in.Payload),
		Mimetype:  in.ContentType,
		Overwrite: in.Overwrite,
	}

	var out uploadResponse
	if err := c.post(ctx, "/api/upload", body, &out); err != nil {
		return "", err
	}
	return out.URL, nil
}

// SignedURL fetches a time-limited read URL for one file.
func (c *Client) SignedURL(ctx context.Context, category mediakeep.Category, filename string) (string, error) {
	var out urlResponse
	path := fmt.Sprintf("/api/%s/%s", category, url.PathEscape(filename))
	if err := c.get(ctx, path, &out); err != nil {
		return "", err
	}
	return out.URL, nil
}

// Delete removes one file.
func (c *Client) Delete(ctx context.Context, category mediakeep.Category, filename string) error {
	path := fmt.Sprintf("/api/%s/%s", category, url.PathEscape(filename))
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// DeleteAll removes every file in the category and reports how many were
// deleted. Zero files is a normal outcome, not an error.
func (c *Client) DeleteAll(ctx context.Context, category mediakeep.Category) (int, error) {
	var out deleteAllResponse
	if err := c.do(ctx, http.MethodDelete, "/api/all/"+category.String(), nil, &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPost, path, in, out)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return mediakeep.Internal("encode request body", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return mediakeep.Internal("build request", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return mediakeep.Unavailable("server unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return mediakeep.Unavailable("malformed server response", err)
	}
	return nil
}

// decodeError maps the server's error envelope back onto the domain
// taxonomy so callers can tell a duplicate (ECONFLICT) from an outage.
func decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	var envelope errorResponse
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Error != "" {
		return &mediakeep.Error{Code: envelope.Error, Message: envelope.Message}
	}

	switch {
	case resp.StatusCode == http.StatusConflict:
		return &mediakeep.Error{Code: mediakeep.ECONFLICT, Message: "file already exists"}
	case resp.StatusCode == http.StatusNotFound:
		return &mediakeep.Error{Code: mediakeep.ENOTFOUND, Message: "not found"}
	case resp.StatusCode >= 500:
		return &mediakeep.Error{
			Code:    mediakeep.EUNAVAILABLE,
			Message: fmt.Sprintf("server error: status %d", resp.StatusCode),
		}
	default:
		return &mediakeep.Error{
			Code:    mediakeep.EINVALID,
			Message: fmt.Sprintf("request rejected: status %d", resp.StatusCode),
		}
	}
}
