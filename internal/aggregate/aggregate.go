// Package aggregate computes derived, read-only views over a transaction
// collection. Every function here is a pure transform: no state, no side
// effects, deterministic for a given input. Callers pass whatever snapshot
// they hold; nothing in this package ever mutates it.
package aggregate

import (
	"sort"
	"time"

	"github.com/ymykhal/pocket/internal/model"
)

// Summary holds the income and expense totals for a collection.
type Summary struct {
	TotalIncome   float64
	TotalExpenses float64
}

// Balance returns income minus expenses. It is derived on demand rather than
// stored, so the two totals remain the single source of truth.
func (s Summary) Balance() float64 {
	return s.TotalIncome - s.TotalExpenses
}

// Summarize sums amounts by transaction type. An empty input yields zero
// totals, not an error.
func Summarize(transactions []model.Transaction) Summary {
	var s Summary
	for _, t := range transactions {
		if t.Type == model.TypeIncome {
			s.TotalIncome += t.Amount
		} else {
			s.TotalExpenses += t.Amount
		}
	}
	return s
}

// ByCategory groups transactions of the given type by category and sums the
// amounts per group. Grouping is exact, case-sensitive string equality:
// "Food" and "food" are distinct categories. Map iteration order carries no
// guarantee; callers needing stable output must sort the keys.
func ByCategory(transactions []model.Transaction, typ model.TransactionType) map[string]float64 {
	sums := make(map[string]float64)
	for _, t := range transactions {
		if t.Type != typ {
			continue
		}
		sums[t.Category] += t.Amount
	}
	return sums
}

// MonthTotal is the summed amount for one calendar month.
type MonthTotal struct {
	Year  int
	Month time.Month
	Sum   float64
}

// Label renders the month in the short human-readable form used by the
// dashboard, e.g. "Jan 2024".
func (m MonthTotal) Label() string {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).Format("Jan 2006")
}

// ByMonth groups transactions of the given type by calendar month and sums
// the amounts per month. The result is ordered ascending by (year, month);
// consumers render it as a time series, so chronological order is part of
// the contract. Dates are interpreted calendar-locally from the stored
// string; entries whose date does not parse are skipped.
func ByMonth(transactions []model.Transaction, typ model.TransactionType) []MonthTotal {
	type monthKey struct {
		year  int
		month time.Month
	}

	sums := make(map[monthKey]float64)
	for _, t := range transactions {
		if t.Type != typ {
			continue
		}
		date, err := model.ParseDate(t.Date)
		if err != nil {
			continue
		}
		sums[monthKey{date.Year(), date.Month()}] += t.Amount
	}

	totals := make([]MonthTotal, 0, len(sums))
	for k, sum := range sums {
		totals = append(totals, MonthTotal{Year: k.year, Month: k.month, Sum: sum})
	}
	sort.Slice(totals, func(i, j int) bool {
		if totals[i].Year != totals[j].Year {
			return totals[i].Year < totals[j].Year
		}
		return totals[i].Month < totals[j].Month
	})
	return totals
}
