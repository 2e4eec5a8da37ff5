// Package prices fetches daily price history from the Yahoo Finance
// chart API and aligns fiscal dates to trading days. Adjusted close is
// preferred; the raw close is used when no adjusted series is present.
package prices
