// Package fundamentals joins a company's annual financial statements,
// aligns market prices to fiscal period ends and derives the valuation
// and profitability ratio set. Missing inputs are carried as NaN so
// that every derived metric degrades to NaN instead of a zero that
// looks like data.
package fundamentals
