package alphavantage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"time"
)

// APIError represents an HTTP-level error from the Alpha Vantage API.
type APIError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("alphavantage api error %d: %s", e.StatusCode, e.Message)
}

// IsRetryable returns true if the error should trigger a retry.
func (e *APIError) IsRetryable() bool {
	return e.StatusCode >= 500 || e.StatusCode == 429
}

// ResponseError represents a 200-OK response whose body carries an error
// marker instead of data. Field is the marker key the provider used:
// "Error Message" (bad request), "Note" (rate limit) or "Information".
// These are never retried: the daily rate limit does not clear within a
// request's lifetime, and the other two are permanent for the input.
type ResponseError struct {
	Field   string
	Message string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("alphavantage response error (%s): %s", e.Field, e.Message)
}

// doRequest performs a GET against the query endpoint. The API key is
// appended to the caller's query parameters.
func (c *Client) doRequest(ctx context.Context, query url.Values, accept string) ([]byte, error) {
	q := url.Values{}
	for k, vs := range query {
		q[k] = vs
	}
	if c.apiKey != "" {
		q.Set("apikey", c.apiKey)
	}

	fullURL := c.baseURL + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", accept)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
			Body:       body,
		}
	}

	return body, nil
}

// doWithRetry performs a request with exponential backoff retry.
func (c *Client) doWithRetry(ctx context.Context, query url.Values, accept string) ([]byte, error) {
	var lastErr error
	backoff := c.retryBackoff

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			// Add jitter: backoff * (0.5 to 1.5)
			jitter := backoff/2 + time.Duration(rand.Int63n(int64(backoff)))
			c.logger.Debug("retrying request",
				"attempt", attempt,
				"backoff", jitter,
				"function", query.Get("function"),
			)

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(jitter):
			}

			backoff *= 2
		}

		body, err := c.doRequest(ctx, query, accept)
		if err == nil {
			return body, nil
		}

		lastErr = err

		apiErr, ok := err.(*APIError)
		if !ok || !apiErr.IsRetryable() {
			return nil, err
		}
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

// checkNotice detects the provider's soft-error markers in a 200-OK
// body. Non-object bodies (the CSV endpoint) pass through untouched.
func checkNotice(body []byte) error {
	var notice struct {
		ErrorMessage string `json:"Error Message"`
		Note         string `json:"Note"`
		Information  string `json:"Information"`
	}
	if err := json.Unmarshal(body, &notice); err != nil {
		return nil
	}

	switch {
	case notice.ErrorMessage != "":
		return &ResponseError{Field: "Error Message", Message: notice.ErrorMessage}
	case notice.Note != "":
		return &ResponseError{Field: "Note", Message: notice.Note}
	case notice.Information != "":
		return &ResponseError{Field: "Information", Message: notice.Information}
	}

	return nil
}
