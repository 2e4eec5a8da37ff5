package export

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rickgao/equity-data/internal/fundamentals"
)

// fundamentalsHeader fixes the metric column order.
var fundamentalsHeader = []string{
	"fiscal_date_ending",
	"price", "market_cap",
	"roe", "roa", "roic",
	"eps", "pe", "book_to_market",
	"dividend_yield", "payout",
	"operating_margin",
	"capex", "revenue", "net_income", "debt",
	"revenue_cagr", "eps_cagr",
}

// WriteFundamentals writes one ticker's metric rows as CSV. NaN values
// come out as empty cells.
func WriteFundamentals(path string, rows []fundamentals.Row) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(fundamentalsHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, r := range rows {
		record := []string{
			r.FiscalDate,
			cell(r.Price), cell(r.MarketCap),
			cell(r.ROE), cell(r.ROA), cell(r.ROIC),
			cell(r.EPS), cell(r.PE), cell(r.BookToMarket),
			cell(r.DividendYield), cell(r.Payout),
			cell(r.OperatingMargin),
			cell(r.Capex), cell(r.Revenue), cell(r.NetIncome), cell(r.Debt),
			cell(r.RevenueCAGR), cell(r.EPSCAGR),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write row %s: %w", r.FiscalDate, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

func cell(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
