package export

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rickgao/equity-data/internal/fundamentals"
	"github.com/rickgao/equity-data/internal/model"
	"github.com/rickgao/equity-data/internal/reconcile"
)

func TestWriteListings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "merged.csv")

	listings := []model.Listing{
		{Symbol: "ABC", Name: "ABC CORP", Exchange: "NYSE", AssetType: "Stock", IPODate: "2001-01-01", Status: "Active"},
		{Symbol: "XYZ", Name: "XYZ INC", Exchange: "NASDAQ", AssetType: "Stock", Status: "Delisted"},
	}

	if err := WriteListings(path, listings); err != nil {
		t.Fatalf("WriteListings failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	if lines[0] != "symbol,name,exchange,assetType,ipoDate,delistingDate,status" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "ABC,ABC CORP,NYSE,Stock,2001-01-01,,Active") {
		t.Errorf("row 1 = %q", lines[1])
	}
}

func TestWriteConflicts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conflicts.json")

	conflicts := []reconcile.Conflict{
		{
			Symbol:         "ABC",
			Exchange:       "NYSE",
			SourceSnapshot: "listing_status_2015-01-01.csv",
			FieldDiffs: map[string]reconcile.FieldDiff{
				"name":    {Existing: "ABC CORP", Incoming: "TOTALLY DIFFERENT"},
				"ipoDate": {Existing: "", Incoming: "2010-01-01"},
			},
			ExistingRows: []model.Listing{
				{Symbol: "ABC", Name: "ABC CORP", Exchange: "NYSE", AssetType: "Stock", Status: "Active"},
			},
			IncomingRow: model.Listing{Symbol: "ABC", Name: "TOTALLY DIFFERENT", Exchange: "NYSE", AssetType: "Stock", IPODate: "2010-01-01", Status: "Active"},
		},
	}

	if err := WriteConflicts(path, conflicts); err != nil {
		t.Fatalf("WriteConflicts failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}

	var docs []map[string]any
	if err := json.Unmarshal(data, &docs); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("got %d docs, want 1", len(docs))
	}

	doc := docs[0]
	if doc["symbol"] != "ABC" {
		t.Errorf("symbol = %v, want ABC", doc["symbol"])
	}
	if doc["source_snapshot"] != "listing_status_2015-01-01.csv" {
		t.Errorf("source_snapshot = %v", doc["source_snapshot"])
	}

	diffs, ok := doc["diffs"].(map[string]any)
	if !ok {
		t.Fatalf("diffs has wrong shape: %T", doc["diffs"])
	}
	ipo, ok := diffs["ipoDate"].([]any)
	if !ok || len(ipo) != 2 {
		t.Fatalf("ipoDate diff = %v", diffs["ipoDate"])
	}
	// Missing existing value serializes as null.
	if ipo[0] != nil {
		t.Errorf("ipoDate existing = %v, want null", ipo[0])
	}
	if ipo[1] != "2010-01-01" {
		t.Errorf("ipoDate incoming = %v, want 2010-01-01", ipo[1])
	}

	rows, ok := doc["existing_rows"].([]any)
	if !ok || len(rows) != 1 {
		t.Fatalf("existing_rows = %v", doc["existing_rows"])
	}
	row := rows[0].(map[string]any)
	if row["ipo_date"] != nil {
		t.Errorf("existing row ipo_date = %v, want null", row["ipo_date"])
	}
}

func TestWriteConflictsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conflicts.json")

	if err := WriteConflicts(path, nil); err != nil {
		t.Fatalf("WriteConflicts failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if strings.TrimSpace(string(data)) != "[]" {
		t.Errorf("empty conflict log = %q, want []", string(data))
	}
}

func TestWriteFundamentals(t *testing.T) {
	path := filepath.Join(t.TempDir(), "abc_fundamentals.csv")

	rows := []fundamentals.Row{
		{
			FiscalDate: "2023-12-31",
			Price:      50,
			MarketCap:  5000,
			ROE:        0.25,
			EPS:        2,
			PE:         25,
			Revenue:    1000,
			NetIncome:  200,
			// Everything else NaN
			ROA: math.NaN(), ROIC: math.NaN(), BookToMarket: math.NaN(),
			DividendYield: math.NaN(), Payout: math.NaN(), OperatingMargin: math.NaN(),
			Capex: math.NaN(), Debt: math.NaN(),
			RevenueCAGR: math.NaN(), EPSCAGR: math.NaN(),
		},
	}

	if err := WriteFundamentals(path, rows); err != nil {
		t.Fatalf("WriteFundamentals failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if !strings.HasPrefix(lines[0], "fiscal_date_ending,price,market_cap,roe") {
		t.Errorf("header = %q", lines[0])
	}

	fields := strings.Split(lines[1], ",")
	if fields[0] != "2023-12-31" {
		t.Errorf("fiscal date = %q", fields[0])
	}
	if fields[1] != "50" {
		t.Errorf("price = %q, want 50", fields[1])
	}
	// NaN columns are empty cells. roa is column index 4.
	if fields[4] != "" {
		t.Errorf("roa = %q, want empty", fields[4])
	}
	if len(fields) != len(strings.Split(lines[0], ",")) {
		t.Error("row width does not match header")
	}
}
