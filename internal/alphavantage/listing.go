package alphavantage

import (
	"context"
	"fmt"
	"net/url"
)

// ListingStatus fetches the listing universe as raw CSV. An empty date
// requests the current universe; an ISO date (YYYY-MM-DD) requests the
// universe as it stood on that day.
func (c *Client) ListingStatus(ctx context.Context, date string) ([]byte, error) {
	query := url.Values{}
	query.Set("function", "LISTING_STATUS")
	if date != "" {
		query.Set("date", date)
	}

	body, err := c.doWithRetry(ctx, query, "text/csv")
	if err != nil {
		return nil, fmt.Errorf("get listing status: %w", err)
	}

	// Success is CSV, but the endpoint still reports soft errors as JSON.
	if err := checkNotice(body); err != nil {
		return nil, fmt.Errorf("get listing status: %w", err)
	}

	return body, nil
}
