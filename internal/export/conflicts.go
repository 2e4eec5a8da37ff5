package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rickgao/equity-data/internal/model"
	"github.com/rickgao/equity-data/internal/reconcile"
)

// conflictDoc is the on-disk shape of one quarantined row. Missing
// values serialize as null, not empty strings.
type conflictDoc struct {
	Symbol         string                `json:"symbol"`
	Exchange       string                `json:"exchange"`
	SourceSnapshot string                `json:"source_snapshot"`
	Diffs          map[string][2]*string `json:"diffs"`
	ExistingRows   []listingDoc          `json:"existing_rows"`
	IncomingRow    listingDoc            `json:"incoming_row"`
}

type listingDoc struct {
	Symbol        *string `json:"symbol"`
	Name          *string `json:"name"`
	Exchange      *string `json:"exchange"`
	AssetType     *string `json:"asset_type"`
	IPODate       *string `json:"ipo_date"`
	DelistingDate *string `json:"delisting_date"`
	Status        *string `json:"status"`
}

// WriteConflicts writes the conflict log as indented JSON. An empty
// conflict set still produces a file holding an empty array, so a
// missing file always means the merge did not run.
func WriteConflicts(path string, conflicts []reconcile.Conflict) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	docs := make([]conflictDoc, 0, len(conflicts))
	for _, c := range conflicts {
		docs = append(docs, toConflictDoc(c))
	}

	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal conflicts: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func toConflictDoc(c reconcile.Conflict) conflictDoc {
	diffs := make(map[string][2]*string, len(c.FieldDiffs))
	for field, d := range c.FieldDiffs {
		diffs[field] = [2]*string{nullable(d.Existing), nullable(d.Incoming)}
	}

	existing := make([]listingDoc, 0, len(c.ExistingRows))
	for _, row := range c.ExistingRows {
		existing = append(existing, toListingDoc(row))
	}

	return conflictDoc{
		Symbol:         c.Symbol,
		Exchange:       c.Exchange,
		SourceSnapshot: c.SourceSnapshot,
		Diffs:          diffs,
		ExistingRows:   existing,
		IncomingRow:    toListingDoc(c.IncomingRow),
	}
}

func toListingDoc(l model.Listing) listingDoc {
	return listingDoc{
		Symbol:        nullable(l.Symbol),
		Name:          nullable(l.Name),
		Exchange:      nullable(l.Exchange),
		AssetType:     nullable(l.AssetType),
		IPODate:       nullable(l.IPODate),
		DelistingDate: nullable(l.DelistingDate),
		Status:        nullable(l.Status),
	}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
