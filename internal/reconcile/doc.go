// Package reconcile merges time-stamped listing-universe snapshots into a
// single deduplicated table of securities.
//
// Snapshots are folded strictly in the order given (oldest first). Each
// incoming row is compared against the merged rows sharing its exact
// (symbol, exchange) key: identical rows, rows differing only in IPO
// date, and rows whose normalized names score at or above the similarity
// threshold are treated as the same security. Anything else is
// quarantined to a conflict log for manual review and never merged in.
//
// The fold is single-threaded and deterministic: candidate scans run in
// table insertion order, and the same snapshot sequence always produces
// the same merged table and conflict log.
package reconcile
