// Package alphavantage provides the Alpha Vantage REST API client.
//
// All endpoints share a single URL (https://www.alphavantage.co/query)
// selected by the "function" query parameter:
//   - LISTING_STATUS: the listing universe as CSV, optionally as of a
//     historical date
//   - BALANCE_SHEET, CASH_FLOW, INCOME_STATEMENT: annual and quarterly
//     statements as JSON
//
// The API reports failures two ways: HTTP status codes, and 200-OK
// bodies carrying an "Error Message", "Note" (rate limit) or
// "Information" field instead of data. Both are surfaced as typed
// errors.
package alphavantage
