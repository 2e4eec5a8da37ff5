package reconcile

import (
	"log/slog"

	"github.com/rickgao/equity-data/internal/model"
)

// DefaultSimilarityThreshold is the normalized-name similarity at or
// above which two listings sharing a (symbol, exchange) key are treated
// as the same security.
const DefaultSimilarityThreshold = 0.90

// Snapshot is one point-in-time export of the listing universe.
type Snapshot struct {
	ID   string // originating file name or date, recorded in conflicts
	Rows []model.Listing
}

// FieldDiff holds the two sides of a differing field.
type FieldDiff struct {
	Existing string
	Incoming string
}

// Conflict records an incoming row that could not be confidently
// identified as any existing candidate sharing its key. ExistingRows is
// a by-value copy of the candidate set at comparison time; later merges
// never alter it. FieldDiffs is computed against the first candidate in
// table order.
type Conflict struct {
	Symbol         string
	Exchange       string
	SourceSnapshot string
	FieldDiffs     map[string]FieldDiff
	ExistingRows   []model.Listing
	IncomingRow    model.Listing
}

// SnapshotStats counts row outcomes of a snapshot pass.
type SnapshotStats struct {
	Matched   int // rows identified as an already-merged security
	Inserted  int // rows appended as new securities
	Conflicts int // rows quarantined to the conflict log
	Skipped   int // malformed rows (missing symbol)
}

type key struct {
	symbol   string
	exchange string
}

// Merger folds listing snapshots into a single merged table. It owns
// all merge state; concurrent runs must use separate Merger instances.
type Merger struct {
	threshold float64
	logger    *slog.Logger

	rows      []model.Listing // merged table, insertion order
	index     map[key][]int   // (symbol, exchange) -> indexes into rows
	conflicts []Conflict
	totals    SnapshotStats
}

// NewMerger creates an empty Merger. A zero threshold selects
// DefaultSimilarityThreshold; a nil logger selects slog.Default().
func NewMerger(threshold float64, logger *slog.Logger) *Merger {
	if threshold == 0 {
		threshold = DefaultSimilarityThreshold
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Merger{
		threshold: threshold,
		logger:    logger,
		index:     make(map[key][]int),
	}
}

// AddSnapshot compares every row of the snapshot against the merged
// table and returns the counts for this pass. If the table is empty
// when the snapshot arrives, its rows seed the table without comparison.
func (m *Merger) AddSnapshot(snap Snapshot) SnapshotStats {
	var stats SnapshotStats

	seed := len(m.rows) == 0
	for _, row := range snap.Rows {
		if row.Symbol == "" {
			stats.Skipped++
			continue
		}
		if seed {
			m.insert(row)
			stats.Inserted++
			continue
		}
		m.mergeRow(snap.ID, row, &stats)
	}

	m.totals.Matched += stats.Matched
	m.totals.Inserted += stats.Inserted
	m.totals.Conflicts += stats.Conflicts
	m.totals.Skipped += stats.Skipped

	m.logger.Info("snapshot processed",
		"snapshot", snap.ID,
		"seed", seed,
		"matched", stats.Matched,
		"inserted", stats.Inserted,
		"conflicts", stats.Conflicts,
		"skipped", stats.Skipped,
	)
	return stats
}

// mergeRow applies the per-row matching rules, in order: exact key
// lookup, no-diff, IPO-date-only, name similarity. Unmatched rows with
// candidates go to the conflict log and are not inserted.
func (m *Merger) mergeRow(snapshotID string, incoming model.Listing, stats *SnapshotStats) {
	k := key{symbol: incoming.Symbol, exchange: incoming.Exchange}
	candidates := m.index[k]

	if len(candidates) == 0 {
		m.insert(incoming)
		stats.Inserted++
		return
	}

	for _, idx := range candidates {
		existing := m.rows[idx]

		diffs := fieldDiffs(existing, incoming)
		if len(diffs) == 0 {
			stats.Matched++
			return
		}

		// IPO date corrections across snapshots are expected noise.
		if onlyIPODate(diffs) {
			stats.Matched++
			return
		}

		sim := Ratio(NormalizeName(existing.Name), NormalizeName(incoming.Name))
		if sim >= m.threshold {
			stats.Matched++
			return
		}
	}

	existingRows := make([]model.Listing, 0, len(candidates))
	for _, idx := range candidates {
		existingRows = append(existingRows, m.rows[idx])
	}

	m.conflicts = append(m.conflicts, Conflict{
		Symbol:         incoming.Symbol,
		Exchange:       incoming.Exchange,
		SourceSnapshot: snapshotID,
		FieldDiffs:     fieldDiffs(m.rows[candidates[0]], incoming),
		ExistingRows:   existingRows,
		IncomingRow:    incoming,
	})
	stats.Conflicts++
}

func (m *Merger) insert(row model.Listing) {
	k := key{symbol: row.Symbol, exchange: row.Exchange}
	m.rows = append(m.rows, row)
	m.index[k] = append(m.index[k], len(m.rows)-1)
}

// Merged returns a copy of the merged table in insertion order.
func (m *Merger) Merged() []model.Listing {
	return append([]model.Listing(nil), m.rows...)
}

// Conflicts returns a copy of the conflict log in emission order.
func (m *Merger) Conflicts() []Conflict {
	return append([]Conflict(nil), m.conflicts...)
}

// Totals returns the accumulated counts across all snapshots.
func (m *Merger) Totals() SnapshotStats {
	return m.totals
}

// Result is the outcome of a full reconciliation run.
type Result struct {
	Merged    []model.Listing
	Conflicts []Conflict
	Totals    SnapshotStats
}

// Reconcile folds the snapshots, in the order given, into a merged
// table and conflict log. Callers are responsible for supplying the
// snapshots in chronological order.
func Reconcile(snapshots []Snapshot, threshold float64, logger *slog.Logger) *Result {
	m := NewMerger(threshold, logger)
	for _, snap := range snapshots {
		m.AddSnapshot(snap)
	}
	return &Result{
		Merged:    m.Merged(),
		Conflicts: m.Conflicts(),
		Totals:    m.Totals(),
	}
}
