package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/rickgao/equity-data/internal/model"
)

// WriteListings writes the merged universe as CSV with the provider's
// column header, creating parent directories as needed.
func WriteListings(path string, listings []model.Listing) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := gocsv.Marshal(&listings, f); err != nil {
		return fmt.Errorf("write listings csv: %w", err)
	}
	return nil
}
