package alphavantage

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Report is one fiscal-period statement. The provider serializes every
// value as a string; numeric fields use "None" for missing data.
type Report map[string]string

// FiscalDateEnding returns the report's fiscal period end date.
func (r Report) FiscalDateEnding() string {
	return r["fiscalDateEnding"]
}

// Value returns the numeric value for key. ok is false when the key is
// absent or holds one of the provider's missing-value markers.
func (r Report) Value(key string) (float64, bool) {
	raw, ok := r[key]
	if !ok {
		return 0, false
	}
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "None" || raw == "-" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// StatementResponse is the common shape of the three statement
// endpoints. Raw preserves the response body for archival.
type StatementResponse struct {
	Symbol           string   `json:"symbol"`
	AnnualReports    []Report `json:"annualReports"`
	QuarterlyReports []Report `json:"quarterlyReports"`

	Raw []byte `json:"-"`
}

// BalanceSheet fetches annual and quarterly balance sheets for symbol.
func (c *Client) BalanceSheet(ctx context.Context, symbol string) (*StatementResponse, error) {
	return c.statement(ctx, "BALANCE_SHEET", symbol)
}

// CashFlow fetches annual and quarterly cash-flow statements for symbol.
func (c *Client) CashFlow(ctx context.Context, symbol string) (*StatementResponse, error) {
	return c.statement(ctx, "CASH_FLOW", symbol)
}

// IncomeStatement fetches annual and quarterly income statements for symbol.
func (c *Client) IncomeStatement(ctx context.Context, symbol string) (*StatementResponse, error) {
	return c.statement(ctx, "INCOME_STATEMENT", symbol)
}

func (c *Client) statement(ctx context.Context, function, symbol string) (*StatementResponse, error) {
	query := url.Values{}
	query.Set("function", function)
	query.Set("symbol", symbol)

	body, err := c.doWithRetry(ctx, query, "application/json")
	if err != nil {
		return nil, fmt.Errorf("get %s %s: %w", strings.ToLower(function), symbol, err)
	}

	if err := checkNotice(body); err != nil {
		return nil, fmt.Errorf("get %s %s: %w", strings.ToLower(function), symbol, err)
	}

	var resp StatementResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal %s response: %w", strings.ToLower(function), err)
	}

	if len(resp.AnnualReports) == 0 && len(resp.QuarterlyReports) == 0 {
		return nil, fmt.Errorf("get %s %s: %w", strings.ToLower(function), symbol,
			&ResponseError{Field: "annualReports", Message: "no report data in response"})
	}

	resp.Raw = body
	return &resp, nil
}
