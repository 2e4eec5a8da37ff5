package fundamentals

import (
	"math"
	"testing"

	"github.com/rickgao/equity-data/internal/alphavantage"
	"github.com/rickgao/equity-data/internal/prices"
)

func report(kv map[string]string) alphavantage.Report {
	return alphavantage.Report(kv)
}

func statements() Statements {
	return Statements{
		Income: &alphavantage.StatementResponse{
			Symbol: "ABC",
			AnnualReports: []alphavantage.Report{
				report(map[string]string{
					"fiscalDateEnding": "2023-12-31",
					"netIncome":        "200",
					"totalRevenue":     "1000",
					"operatingIncome":  "300",
					"incomeBeforeTax":  "250",
					"incomeTaxExpense": "50",
				}),
				report(map[string]string{
					"fiscalDateEnding": "2022-12-31",
					"netIncome":        "150",
					"totalRevenue":     "900",
					"operatingIncome":  "250",
					"incomeBeforeTax":  "200",
					"incomeTaxExpense": "50",
				}),
			},
		},
		Balance: &alphavantage.StatementResponse{
			Symbol: "ABC",
			AnnualReports: []alphavantage.Report{
				report(map[string]string{
					"fiscalDateEnding":                      "2023-12-31",
					"totalAssets":                           "2000",
					"totalLiabilities":                      "1200",
					"totalShareholderEquity":                "800",
					"cashAndCashEquivalentsAtCarryingValue": "100",
					"longTermDebt":                          "400",
					"shortTermDebt":                         "100",
				}),
			},
			QuarterlyReports: []alphavantage.Report{
				report(map[string]string{
					"fiscalDateEnding":             "2023-09-30",
					"commonStockSharesOutstanding": "95",
				}),
				report(map[string]string{
					"fiscalDateEnding":             "2023-12-31",
					"commonStockSharesOutstanding": "100",
				}),
			},
		},
		CashFlow: &alphavantage.StatementResponse{
			Symbol: "ABC",
			AnnualReports: []alphavantage.Report{
				report(map[string]string{
					"fiscalDateEnding":    "2023-12-31",
					"capitalExpenditures": "-80",
					"dividendPayout":      "40",
				}),
			},
		},
	}
}

func priceSeries() *prices.Series {
	return &prices.Series{
		Symbol: "ABC",
		Bars: []prices.Bar{
			{Date: "2023-01-03", Close: 40},
			{Date: "2024-01-02", Close: 50},
		},
	}
}

func approx(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

// TestBuildMetrics checks the derived metric set for a fully populated
// fiscal year.
func TestBuildMetrics(t *testing.T) {
	rows := Build(statements(), priceSeries())
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}

	// Rows come out oldest first.
	if rows[0].FiscalDate != "2022-12-31" || rows[1].FiscalDate != "2023-12-31" {
		t.Fatalf("row order = %q, %q", rows[0].FiscalDate, rows[1].FiscalDate)
	}

	r := rows[1]
	// 2023-12-31 falls between bars, so the 2024-01-02 close applies.
	approx(t, "Price", r.Price, 50)
	approx(t, "MarketCap", r.MarketCap, 50*100)
	approx(t, "EPS", r.EPS, 200.0/100)
	approx(t, "PE", r.PE, 50/(200.0/100))
	approx(t, "ROE", r.ROE, 200.0/(2000-1200))
	approx(t, "ROA", r.ROA, 200.0/2000)
	// NOPAT = 300 * (1 - 50/250) = 240; invested = 500 + 800 - 100 = 1200.
	approx(t, "ROIC", r.ROIC, 240.0/1200)
	approx(t, "BookToMarket", r.BookToMarket, 800.0/5000)
	approx(t, "DividendYield", r.DividendYield, 40.0/5000)
	approx(t, "Payout", r.Payout, 40.0/200)
	approx(t, "OperatingMargin", r.OperatingMargin, 300.0/1000)
	approx(t, "Capex", r.Capex, 80)
	approx(t, "Debt", r.Debt, 500)
}

// TestBuildMissingStatements verifies the left-join behavior: income
// rows without matching balance or cash flow data keep their income
// metrics and get NaN for the rest.
func TestBuildMissingStatements(t *testing.T) {
	rows := Build(statements(), priceSeries())
	r := rows[0] // 2022 has no balance sheet or cash flow report

	approx(t, "Revenue", r.Revenue, 900)
	approx(t, "NetIncome", r.NetIncome, 150)
	approx(t, "OperatingMargin", r.OperatingMargin, 250.0/900)

	for name, v := range map[string]float64{
		"ROE":          r.ROE,
		"ROA":          r.ROA,
		"ROIC":         r.ROIC,
		"EPS":          r.EPS,
		"Capex":        r.Capex,
		"BookToMarket": r.BookToMarket,
	} {
		if !math.IsNaN(v) {
			t.Errorf("%s = %v, want NaN", name, v)
		}
	}
	// No quarterly shares in 2022, so Debt stays 0 (missing legs count
	// as zero) while share-derived metrics are NaN.
	approx(t, "Debt", r.Debt, 0)
}

// TestBuildSharesYearEnd verifies the latest quarterly share count of
// each fiscal year wins.
func TestBuildSharesYearEnd(t *testing.T) {
	rows := Build(statements(), priceSeries())
	r := rows[1]
	// 2023-12-31 quarter (100 shares) outranks 2023-09-30 (95).
	approx(t, "MarketCap", r.MarketCap, 5000)
}

// TestBuildCAGR checks the rolling growth rate over the lookback window.
func TestBuildCAGR(t *testing.T) {
	st := Statements{
		CAGRYears: 2,
		Income:    &alphavantage.StatementResponse{Symbol: "ABC"},
	}
	for year, rev := range map[string]string{
		"2021-12-31": "100",
		"2022-12-31": "150",
		"2023-12-31": "400",
	} {
		st.Income.AnnualReports = append(st.Income.AnnualReports, report(map[string]string{
			"fiscalDateEnding": year,
			"totalRevenue":     rev,
			"netIncome":        "10",
		}))
	}

	rows := Build(st, nil)
	if len(rows) != 3 {
		t.Fatalf("len(rows) = %d, want 3", len(rows))
	}
	if !math.IsNaN(rows[0].RevenueCAGR) || !math.IsNaN(rows[1].RevenueCAGR) {
		t.Error("rows inside the lookback window should have NaN CAGR")
	}
	// (400/100)^(1/2) - 1 = 1.0
	approx(t, "RevenueCAGR", rows[2].RevenueCAGR, 1.0)
}

// TestBuildFiltersEmptyRows drops fiscal years with neither revenue
// nor net income.
func TestBuildFiltersEmptyRows(t *testing.T) {
	st := Statements{
		Income: &alphavantage.StatementResponse{
			Symbol: "ABC",
			AnnualReports: []alphavantage.Report{
				report(map[string]string{
					"fiscalDateEnding": "2023-12-31",
					"totalRevenue":     "None",
					"netIncome":        "None",
				}),
				report(map[string]string{
					"fiscalDateEnding": "2022-12-31",
					"totalRevenue":     "500",
				}),
			},
		},
	}

	rows := Build(st, nil)
	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1", len(rows))
	}
	if rows[0].FiscalDate != "2022-12-31" {
		t.Errorf("FiscalDate = %q, want 2022-12-31", rows[0].FiscalDate)
	}
}

// TestBuildNoPriceSeries keeps statement metrics when no price data
// exists.
func TestBuildNoPriceSeries(t *testing.T) {
	rows := Build(statements(), nil)
	r := rows[1]
	if !math.IsNaN(r.Price) || !math.IsNaN(r.PE) || !math.IsNaN(r.MarketCap) {
		t.Error("price-derived metrics should be NaN without a price series")
	}
	approx(t, "ROE", r.ROE, 0.25)
}
