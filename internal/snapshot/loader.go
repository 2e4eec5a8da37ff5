package snapshot

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/rickgao/equity-data/internal/model"
	"github.com/rickgao/equity-data/internal/reconcile"
)

// FilePattern matches snapshot files inside the input directory.
const FilePattern = "listing_status_*.csv"

// requiredColumns must be present in every snapshot header.
var requiredColumns = []string{"symbol", "name", "exchange", "assetType"}

// UnreadableSnapshotError reports a snapshot source that could not be
// parsed into listing rows. It aborts the whole merge run.
type UnreadableSnapshotError struct {
	Path string
	Err  error
}

func (e *UnreadableSnapshotError) Error() string {
	return fmt.Sprintf("unreadable snapshot %s: %v", e.Path, e.Err)
}

func (e *UnreadableSnapshotError) Unwrap() error {
	return e.Err
}

// LoadDir loads every snapshot file in dir, sorted by file name so the
// merge sees snapshots in chronological order.
func LoadDir(dir string) ([]reconcile.Snapshot, error) {
	paths, err := filepath.Glob(filepath.Join(dir, FilePattern))
	if err != nil {
		return nil, fmt.Errorf("glob snapshots: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no %s files found in %s", FilePattern, dir)
	}

	// Lexicographic name order is chronological: names embed ISO dates.
	sort.Strings(paths)

	snapshots := make([]reconcile.Snapshot, 0, len(paths))
	for _, path := range paths {
		rows, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, reconcile.Snapshot{
			ID:   filepath.Base(path),
			Rows: rows,
		})
	}

	return snapshots, nil
}

// LoadFile parses one listing CSV file. The header must carry the
// required listing columns; provider null markers are normalized to
// empty strings.
func LoadFile(path string) ([]model.Listing, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &UnreadableSnapshotError{Path: path, Err: err}
	}

	if err := validateHeader(data); err != nil {
		return nil, &UnreadableSnapshotError{Path: path, Err: err}
	}

	var rows []model.Listing
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		return nil, &UnreadableSnapshotError{Path: path, Err: err}
	}

	for i := range rows {
		normalizeRow(&rows[i])
	}

	return rows, nil
}

func validateHeader(data []byte) error {
	r := csv.NewReader(bytes.NewReader(data))
	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}

	have := make(map[string]bool, len(header))
	for _, col := range header {
		have[strings.TrimSpace(col)] = true
	}

	for _, col := range requiredColumns {
		if !have[col] {
			return fmt.Errorf("header missing required column %q", col)
		}
	}

	return nil
}

func normalizeRow(l *model.Listing) {
	l.Symbol = cleanValue(l.Symbol)
	l.Name = cleanValue(l.Name)
	l.Exchange = cleanValue(l.Exchange)
	l.AssetType = cleanValue(l.AssetType)
	l.IPODate = cleanValue(l.IPODate)
	l.DelistingDate = cleanValue(l.DelistingDate)
	l.Status = cleanValue(l.Status)
}

// cleanValue trims whitespace and maps the provider's null markers to
// the empty string ("null" appears in delistingDate for active stocks).
func cleanValue(s string) string {
	s = strings.TrimSpace(s)
	switch s {
	case "null", "NULL", "None", "N/A", "NaN":
		return ""
	}
	return s
}
