package reconcile

import "github.com/rickgao/equity-data/internal/model"

// listingColumns fixes the comparison order of listing fields. Column
// names match the provider's CSV header and key the conflict-log diffs.
var listingColumns = []string{
	"symbol",
	"name",
	"exchange",
	"assetType",
	"ipoDate",
	"delistingDate",
	"status",
}

func fieldValue(l model.Listing, column string) string {
	switch column {
	case "symbol":
		return l.Symbol
	case "name":
		return l.Name
	case "exchange":
		return l.Exchange
	case "assetType":
		return l.AssetType
	case "ipoDate":
		return l.IPODate
	case "delistingDate":
		return l.DelistingDate
	case "status":
		return l.Status
	}
	return ""
}

// fieldDiffs returns the columns whose values differ between the rows.
// Two empty values can never differ, so every diff has at least one
// non-empty side.
func fieldDiffs(existing, incoming model.Listing) map[string]FieldDiff {
	diffs := make(map[string]FieldDiff)
	for _, col := range listingColumns {
		ev, iv := fieldValue(existing, col), fieldValue(incoming, col)
		if ev != iv {
			diffs[col] = FieldDiff{Existing: ev, Incoming: iv}
		}
	}
	return diffs
}

func onlyIPODate(diffs map[string]FieldDiff) bool {
	_, ok := diffs["ipoDate"]
	return ok && len(diffs) == 1
}
