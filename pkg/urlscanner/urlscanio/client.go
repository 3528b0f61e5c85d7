// Package urlscanio provides a urlscanner.Client implementation backed by the
// public urlscan.io API.
package urlscanio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"pen/pkg/serrors"
	"pen/pkg/urlscanner"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL is the public urlscan.io API root.
const DefaultBaseURL = "https://urlscan.io"

// Client talks to the urlscan.io REST API. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// ParseRateLimit extracts urlscan.io rate‑limit information from response
// headers. A missing reset header leaves ResetAt zero.
func ParseRateLimit(h http.Header) (urlscanner.RateLimitStatus, error) {
	atoi := func(s string) int {
		n, _ := strconv.Atoi(s)

		return n
	}
	rl := urlscanner.RateLimitStatus{
		Limit:     atoi(h.Get("X-Rate-Limit-Limit")),
		Remaining: atoi(h.Get("X-Rate-Limit-Remaining")),
	}

	resetStr := h.Get("X-Rate-Limit-Reset")
	if resetStr == "" {
		return rl, nil
	}
	resetAt, err := time.Parse(time.RFC3339Nano, resetStr)
	if err != nil {
		return rl, fmt.Errorf("could not parse reset at: %w", err)
	}
	rl.ResetAt = resetAt

	return rl, nil
}

// SubmitURL submits URL for an unlisted scan.
func (c *Client) SubmitURL(ctx context.Context, URL string) (urlscanner.SubmitRes, urlscanner.RateLimitStatus, error) {
	// https://docs.urlscan.io/apis/urlscan-openapi/scanning/submitscan
	type submitReq struct {
		URL        string `json:"url"`
		Visibility string `json:"visibility,omitempty"`
	}
	bodyBytes, err := json.Marshal(submitReq{URL: URL, Visibility: "unlisted"})
	if err != nil {
		return urlscanner.SubmitRes{}, urlscanner.RateLimitStatus{}, fmt.Errorf("could not marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/scan/", bytes.NewReader(bodyBytes))
	if err != nil {
		return urlscanner.SubmitRes{}, urlscanner.RateLimitStatus{}, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Api-Key", c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return urlscanner.SubmitRes{}, urlscanner.RateLimitStatus{}, fmt.Errorf("could not send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	rl, err := ParseRateLimit(resp.Header)
	if err != nil {
		return urlscanner.SubmitRes{}, rl, fmt.Errorf("could not parse rate limit: %w", err)
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return urlscanner.SubmitRes{}, rl, fmt.Errorf("could not read response body: %w", err)
	}
	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return urlscanner.SubmitRes{}, rl,
			serrors.With(serrors.ErrRateLimited, "rate limited: %s", strings.TrimSpace(string(b)))
	case resp.StatusCode == http.StatusBadRequest:
		// urlscan.io refuses unresolvable or blocked hosts with 400
		return urlscanner.SubmitRes{}, rl,
			serrors.With(serrors.ErrBadRequest, "submission refused: %s", strings.TrimSpace(string(b)))
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return urlscanner.SubmitRes{}, rl, fmt.Errorf("submit failed: %s", strings.TrimSpace(string(b)))
	}

	var submitResp struct {
		UUID string `json:"uuid"`
	}
	if err := json.Unmarshal(b, &submitResp); err != nil {
		return urlscanner.SubmitRes{}, rl, fmt.Errorf("could not decode response: %w", err)
	}

	return urlscanner.SubmitRes{ID: submitResp.UUID}, rl, nil
}

// resultBody is the part of the urlscan.io result document we read.
type resultBody struct {
	Page struct {
		URL     string `json:"url"`
		Domain  string `json:"domain"`
		Country string `json:"country"`
	} `json:"page"`
	Verdicts struct {
		Overall struct {
			Malicious  bool     `json:"malicious"`
			Score      int      `json:"score"`
			Categories []string `json:"categories"`
		} `json:"overall"`
	} `json:"verdicts"`
}

// Result fetches the report of scanID. It returns an ErrNotFound error while
// the scan is still running.
func (c *Client) Result(ctx context.Context, scanID string) (*urlscanner.Report, error) {
	// https://docs.urlscan.io/apis/urlscan-openapi/scanning/resultapi
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/result/"+scanID+"/", nil)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Api-Key", c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read response body: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, serrors.With(serrors.ErrNotFound, "result not found")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("get result failed: %s", strings.TrimSpace(string(b)))
	}

	var rs resultBody
	if err := json.Unmarshal(b, &rs); err != nil {
		return nil, fmt.Errorf("could not decode response: %w", err)
	}

	return &urlscanner.Report{
		URL:        rs.Page.URL,
		Domain:     rs.Page.Domain,
		Country:    rs.Page.Country,
		Malicious:  rs.Verdicts.Overall.Malicious,
		Score:      rs.Verdicts.Overall.Score,
		Categories: rs.Verdicts.Overall.Categories,
		Secure:     strings.HasPrefix(rs.Page.URL, "https://"),
	}, nil
}

var _ urlscanner.Client = (*Client)(nil)

// New constructs a Client against baseURL (DefaultBaseURL when empty).
func New(httpClient *http.Client, baseURL, token string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		token:      token,
	}
}
