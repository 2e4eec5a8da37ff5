package prices

import "sort"

// Bar is a single trading day's closing price. Date is ISO (YYYY-MM-DD).
type Bar struct {
	Date  string
	Close float64
}

// Series holds a symbol's daily closes sorted by date ascending.
type Series struct {
	Symbol string
	Bars   []Bar
}

// OnOrAfter returns the close of the first trading day on or after
// date. Fiscal period ends often fall on weekends or holidays, so the
// next session's close stands in for them. ok is false when the series
// ends before date.
func (s *Series) OnOrAfter(date string) (float64, bool) {
	i := sort.Search(len(s.Bars), func(i int) bool {
		return s.Bars[i].Date >= date
	})
	if i == len(s.Bars) {
		return 0, false
	}
	return s.Bars[i].Close, true
}
