// Package snapshot loads listing-status snapshot CSV files for the
// merge step.
//
// A snapshot is one LISTING_STATUS export saved by cmd/universe as
// listing_status_<date>.csv. Files are processed in lexicographic name
// order, which is chronological because the names embed ISO dates. A
// file that cannot be parsed into listing rows fails the whole load:
// merging from a partial universe would silently un-see securities and
// corrupt later conflict detection.
package snapshot
