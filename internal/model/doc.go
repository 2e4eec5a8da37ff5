// Package model defines shared data types used across the equity data pipeline.
//
// All types mirror the database schema created by cmd/dbsetup.
//
// Conventions:
//   - Dates: ISO-8601 strings ("2001-01-01"); empty string means absent.
//     Listing rows flow CSV-to-CSV through the merge, so dates keep their
//     wire form and are parsed only at the database boundary.
//   - Statement values: float64, NaN for absent.
package model
