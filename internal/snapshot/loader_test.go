package snapshot

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

const validCSV = `symbol,name,exchange,assetType,ipoDate,delistingDate,status
ABC,ABC CORP,NYSE,Stock,2001-01-01,null,Active
XYZ,XYZ INC,NASDAQ,Stock,2010-06-15,null,Active
`

func TestLoadFile(t *testing.T) {
	t.Run("valid file", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "listing_status_2010-01-01.csv", validCSV)

		rows, err := LoadFile(path)
		if err != nil {
			t.Fatalf("LoadFile failed: %v", err)
		}
		if len(rows) != 2 {
			t.Fatalf("len(rows) = %d, want 2", len(rows))
		}
		if rows[0].Symbol != "ABC" {
			t.Errorf("rows[0].Symbol = %q, want %q", rows[0].Symbol, "ABC")
		}
		if rows[0].DelistingDate != "" {
			t.Errorf("DelistingDate = %q, want empty (null marker normalized)", rows[0].DelistingDate)
		}
		if rows[1].IPODate != "2010-06-15" {
			t.Errorf("rows[1].IPODate = %q, want %q", rows[1].IPODate, "2010-06-15")
		}
	})

	t.Run("missing required column", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "listing_status_2010-01-01.csv",
			"symbol,name,assetType\nABC,ABC CORP,Stock\n")

		_, err := LoadFile(path)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		var unreadable *UnreadableSnapshotError
		if !errors.As(err, &unreadable) {
			t.Fatalf("expected *UnreadableSnapshotError, got %T: %v", err, err)
		}
		if unreadable.Path != path {
			t.Errorf("Path = %q, want %q", unreadable.Path, path)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "nope.csv"))
		var unreadable *UnreadableSnapshotError
		if !errors.As(err, &unreadable) {
			t.Fatalf("expected *UnreadableSnapshotError, got %T: %v", err, err)
		}
	})

	t.Run("optional columns absent", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "listing_status_2010-01-01.csv",
			"symbol,name,exchange,assetType\nABC,ABC CORP,NYSE,Stock\n")

		rows, err := LoadFile(path)
		if err != nil {
			t.Fatalf("LoadFile failed: %v", err)
		}
		if rows[0].IPODate != "" || rows[0].Status != "" {
			t.Errorf("optional fields = (%q, %q), want empty", rows[0].IPODate, rows[0].Status)
		}
	})
}

func TestLoadDir(t *testing.T) {
	t.Run("chronological order by file name", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "listing_status_2012-01-01.csv", validCSV)
		writeFile(t, dir, "listing_status_2010-01-01.csv", validCSV)
		writeFile(t, dir, "listing_status_2011-01-01.csv", validCSV)
		writeFile(t, dir, "unrelated.txt", "ignore me")

		snaps, err := LoadDir(dir)
		if err != nil {
			t.Fatalf("LoadDir failed: %v", err)
		}
		if len(snaps) != 3 {
			t.Fatalf("len(snaps) = %d, want 3", len(snaps))
		}
		want := []string{
			"listing_status_2010-01-01.csv",
			"listing_status_2011-01-01.csv",
			"listing_status_2012-01-01.csv",
		}
		for i, id := range want {
			if snaps[i].ID != id {
				t.Errorf("snaps[%d].ID = %q, want %q", i, snaps[i].ID, id)
			}
		}
	})

	t.Run("one bad file fails the whole load", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "listing_status_2010-01-01.csv", validCSV)
		writeFile(t, dir, "listing_status_2011-01-01.csv", "not,a,listing\nfile,at,all\n")

		_, err := LoadDir(dir)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		var unreadable *UnreadableSnapshotError
		if !errors.As(err, &unreadable) {
			t.Fatalf("expected *UnreadableSnapshotError, got %T: %v", err, err)
		}
	})

	t.Run("empty directory", func(t *testing.T) {
		_, err := LoadDir(t.TempDir())
		if err == nil {
			t.Fatal("expected error, got nil")
		}
	})
}
