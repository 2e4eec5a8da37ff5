package fundamentals

import (
	"math"
	"sort"

	"github.com/rickgao/equity-data/internal/alphavantage"
	"github.com/rickgao/equity-data/internal/prices"
)

// DefaultCAGRYears is the lookback window for rolling growth rates.
const DefaultCAGRYears = 5

// Row holds one fiscal year's inputs and derived metrics. Missing
// values are NaN.
type Row struct {
	FiscalDate string

	Price           float64
	MarketCap       float64
	ROE             float64
	ROA             float64
	ROIC            float64
	EPS             float64
	PE              float64
	BookToMarket    float64
	DividendYield   float64
	Payout          float64
	OperatingMargin float64
	Capex           float64
	Revenue         float64
	NetIncome       float64
	Debt            float64
	RevenueCAGR     float64
	EPSCAGR         float64
}

// Statements bundles the three statement responses for one symbol.
type Statements struct {
	Income    *alphavantage.StatementResponse
	Balance   *alphavantage.StatementResponse
	CashFlow  *alphavantage.StatementResponse
	CAGRYears int
}

// Build joins the annual reports on the income statement's fiscal
// dates, aligns prices and computes the metric set. The income
// statement drives the row set; balance sheet and cash flow data
// missing for a fiscal date leave their metrics NaN. Rows with neither
// revenue nor net income are dropped.
func Build(st Statements, series *prices.Series) []Row {
	years := st.CAGRYears
	if years <= 0 {
		years = DefaultCAGRYears
	}

	income := append([]alphavantage.Report(nil), st.Income.AnnualReports...)
	sort.Slice(income, func(i, j int) bool {
		return income[i].FiscalDateEnding() < income[j].FiscalDateEnding()
	})

	balanceByDate := indexByFiscalDate(st.Balance)
	cashflowByDate := indexByFiscalDate(st.CashFlow)
	sharesByYear := sharesOutstandingByYear(st.Balance)

	rows := make([]Row, 0, len(income))
	for _, inc := range income {
		date := inc.FiscalDateEnding()
		if date == "" {
			continue
		}

		bal := balanceByDate[date]
		cf := cashflowByDate[date]

		netIncome := num(inc, "netIncome")
		revenue := num(inc, "totalRevenue")
		operatingIncome := num(inc, "operatingIncome")
		incomeBeforeTax := num(inc, "incomeBeforeTax")
		incomeTaxExpense := num(inc, "incomeTaxExpense")

		totalAssets := num(bal, "totalAssets")
		totalLiabilities := num(bal, "totalLiabilities")
		totalEquity := num(bal, "totalShareholderEquity")
		cash := num(bal, "cashAndCashEquivalentsAtCarryingValue")

		// Missing debt legs count as zero rather than poisoning the sum.
		totalDebt := zeroIfNaN(num(bal, "longTermDebt")) + zeroIfNaN(num(bal, "shortTermDebt"))

		capex := math.Abs(num(cf, "capitalExpenditures"))
		dividendsPaid := math.Abs(num(cf, "dividendPayout"))

		shares := math.NaN()
		if v, ok := sharesByYear[date[:4]]; ok {
			shares = v
		}

		price := math.NaN()
		if series != nil {
			if p, ok := series.OnOrAfter(date); ok {
				price = p
			}
		}

		marketCap := price * shares
		eps := netIncome / shares
		bookEquity := totalAssets - totalLiabilities
		nopat := operatingIncome * (1 - incomeTaxExpense/incomeBeforeTax)
		investedCapital := totalDebt + totalEquity - cash

		rows = append(rows, Row{
			FiscalDate:      date,
			Price:           price,
			MarketCap:       marketCap,
			ROE:             netIncome / bookEquity,
			ROA:             netIncome / totalAssets,
			ROIC:            nopat / investedCapital,
			EPS:             eps,
			PE:              price / eps,
			BookToMarket:    bookEquity / marketCap,
			DividendYield:   dividendsPaid / marketCap,
			Payout:          dividendsPaid / netIncome,
			OperatingMargin: operatingIncome / revenue,
			Capex:           capex,
			Revenue:         revenue,
			NetIncome:       netIncome,
			Debt:            totalDebt,
			RevenueCAGR:     math.NaN(),
			EPSCAGR:         math.NaN(),
		})
	}

	for i := years; i < len(rows); i++ {
		rows[i].RevenueCAGR = cagr(rows[i].Revenue, rows[i-years].Revenue, years)
		rows[i].EPSCAGR = cagr(rows[i].EPS, rows[i-years].EPS, years)
	}

	filtered := rows[:0]
	for _, r := range rows {
		if math.IsNaN(r.Revenue) && math.IsNaN(r.NetIncome) {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}

// cagr is the rolling compound annual growth rate. Sign flips and
// zero baselines come out as NaN or infinity through normal float
// arithmetic, matching the missing-value convention.
func cagr(current, previous float64, years int) float64 {
	return math.Pow(current/previous, 1/float64(years)) - 1
}

// num reads a numeric field from a report, NaN when absent or marked
// missing. A nil report yields NaN for every key.
func num(r alphavantage.Report, key string) float64 {
	v, ok := r.Value(key)
	if !ok {
		return math.NaN()
	}
	return v
}

func zeroIfNaN(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}

func indexByFiscalDate(resp *alphavantage.StatementResponse) map[string]alphavantage.Report {
	byDate := make(map[string]alphavantage.Report)
	if resp == nil {
		return byDate
	}
	for _, r := range resp.AnnualReports {
		if d := r.FiscalDateEnding(); d != "" {
			byDate[d] = r
		}
	}
	return byDate
}

// sharesOutstandingByYear reduces the quarterly balance sheets to one
// diluted share count per fiscal year, taking the latest quarter that
// reports one.
func sharesOutstandingByYear(resp *alphavantage.StatementResponse) map[string]float64 {
	byYear := make(map[string]float64)
	if resp == nil {
		return byYear
	}

	latest := make(map[string]string)
	for _, r := range resp.QuarterlyReports {
		date := r.FiscalDateEnding()
		if len(date) < 4 {
			continue
		}
		v, ok := r.Value("commonStockSharesOutstanding")
		if !ok {
			continue
		}
		year := date[:4]
		if date >= latest[year] {
			latest[year] = date
			byYear[year] = v
		}
	}
	return byYear
}
