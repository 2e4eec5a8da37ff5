// Package export writes pipeline outputs to disk: the merged listing
// universe as CSV, the conflict log as JSON and per-ticker fundamentals
// as CSV. Missing values come out as empty CSV cells and JSON nulls.
package export
