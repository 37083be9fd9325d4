package sentiment

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/goccy/go-json"
)

const (
	// DefaultEndpoint matches the service's local development address.
	DefaultEndpoint = "http://127.0.0.1:8000"
	maxBodyBytes    = 1 << 20
)

// Client talks to the comment sentiment-analysis service.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a client for the service rooted at baseURL. Deadlines come
// from the caller's context, so the default HTTP client carries no timeout.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultEndpoint
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{baseURL: baseURL, http: httpClient}
}

// Endpoint returns the service root this client posts to.
func (c *Client) Endpoint() string {
	return c.baseURL
}

// Analyze submits one video URL and returns the aggregate counts.
func (c *Client) Analyze(ctx context.Context, req Request) (Result, error) {
	buf, err := json.Marshal(req)
	if err != nil {
		return Result{}, fmt.Errorf("encode analyze request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyze", bytes.NewReader(buf))
	if err != nil {
		return Result{}, fmt.Errorf("build analyze request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return Result{}, &TransportError{Op: "analyze", Err: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Result{}, &TransportError{Op: "read analyze response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Result{}, &ServiceError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Detail:     extractDetail(payload),
		}
	}

	result, err := DecodeResult(payload)
	if err != nil {
		return Result{}, &ServiceError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Detail:     extractDetail(payload),
			Cause:      err,
		}
	}
	return result, nil
}

// Health asks the service root for its status line.
func (c *Client) Health(ctx context.Context) (string, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return "", fmt.Errorf("build health request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", &TransportError{Op: "health", Err: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", &TransportError{Op: "read health response", Err: err}
	}
	if resp.StatusCode >= 400 {
		return "", &ServiceError{StatusCode: resp.StatusCode, Status: resp.Status, Detail: extractDetail(payload)}
	}

	var parsed struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return "", &ServiceError{StatusCode: resp.StatusCode, Status: resp.Status, Cause: err}
	}
	return strings.TrimSpace(parsed.Status), nil
}

var videoIDRegexp = regexp.MustCompile(`(?:https?://)?(?:www\.)?(?:youtube\.com/(?:[^/\s]+/\S+/|(?:v|e(?:mbed)?)/|\S*?[?&]v=)|youtu\.be/)([a-zA-Z0-9_-]{11})`)

// VideoID returns the eleven character YouTube video ID embedded in input, or
// "" when none is recognizable. It is used for display only; the service does
// its own validation.
func VideoID(input string) string {
	if matches := videoIDRegexp.FindStringSubmatch(strings.TrimSpace(input)); len(matches) > 1 {
		return matches[1]
	}
	return ""
}
