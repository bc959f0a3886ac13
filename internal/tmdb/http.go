package tmdb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	merrors "github.com/lepinkainen/marquee/internal/errors"
)

// StatusResponse is the body TMDB returns from write endpoints.
type StatusResponse struct {
	Success       bool   `json:"success"`
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}

func (c *Client) getJSON(ctx context.Context, endpoint string, target any) error {
	return c.doJSONRequest(ctx, http.MethodGet, endpoint, nil, target)
}

func (c *Client) getJSONMap(ctx context.Context, endpoint string) (map[string]any, error) {
	var data map[string]any
	if err := c.getJSON(ctx, endpoint, &data); err != nil {
		return nil, err
	}
	return data, nil
}

// sendStatus sends a write request and turns a success:false body into a
// RequestRejectedError.
func (c *Client) sendStatus(ctx context.Context, method, endpoint string, payload any) error {
	var status StatusResponse
	if err := c.doJSONRequest(ctx, method, endpoint, payload, &status); err != nil {
		return err
	}
	if !status.Success {
		return merrors.NewRequestRejectedError(status.StatusCode, status.StatusMessage)
	}
	return nil
}

func (c *Client) doJSONRequest(ctx context.Context, method, endpoint string, payload any, target any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("tmdb: failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json;charset=utf-8")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(resp)
	}

	if target == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("tmdb: failed to decode response: %w", err)
	}
	return nil
}

func statusError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))

	if resp.StatusCode == http.StatusTooManyRequests {
		return merrors.NewRateLimitErrorWithRetry("tmdb: rate limit exceeded", retryAfter(resp.Header.Get("Retry-After")))
	}

	var status StatusResponse
	if err := json.Unmarshal(raw, &status); err == nil && status.StatusMessage != "" {
		return merrors.NewAPIError(resp.StatusCode, status.StatusCode, status.StatusMessage)
	}
	return merrors.NewAPIError(resp.StatusCode, 0, strings.TrimSpace(string(raw)))
}

func retryAfter(header string) time.Duration {
	if header == "" {
		return 0
	}
	seconds, err := strconv.Atoi(strings.TrimSpace(header))
	if err != nil || seconds < 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}
