// Package analytics derives read-only views from a transaction set: category
// breakdowns, highest/lowest entries, average daily spending and the moving
// average trend. Every function is pure over the slice it is given.
package analytics

import (
	"sort"

	"fintrack/internal/core"
)

// DefaultTrendWindow is the number of recent expenses the trend prediction
// averages over.
const DefaultTrendWindow = 7

// CategoryTotal is one row of a breakdown.
type CategoryTotal struct {
	Category string
	Total    core.Money
}

// Extremes holds the entries with the largest and smallest stored magnitude.
// Kind is carried on the entries themselves for display.
type Extremes struct {
	Highest core.TransactionEntry
	Lowest  core.TransactionEntry
}

// CategoryBreakdown filters entries by kind, sums the magnitudes per
// category and returns the rows sorted descending by total. Ties keep the
// first-seen category order. An empty filtered set yields an empty slice.
func CategoryBreakdown(entries []core.TransactionEntry, kind core.EntryKind) []CategoryTotal {
	totals := make(map[string]int64)
	order := make([]string, 0)
	for _, e := range entries {
		if e.Kind != kind {
			continue
		}
		if _, seen := totals[e.Category]; !seen {
			order = append(order, e.Category)
		}
		totals[e.Category] += e.Amount.Cents
	}

	rows := make([]CategoryTotal, 0, len(order))
	for _, name := range order {
		rows = append(rows, CategoryTotal{Category: name, Total: core.Money{Cents: totals[name]}})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Total.Cents > rows[j].Total.Cents
	})
	return rows
}

// HighestLowest scans once and returns the entries with the largest and
// smallest magnitude. Comparison is over the stored non-negative amount
// regardless of kind. Fails with ErrEmptyInput on an empty set; callers
// render a placeholder rather than guessing a default.
func HighestLowest(entries []core.TransactionEntry) (Extremes, error) {
	if len(entries) == 0 {
		return Extremes{}, core.ErrEmptyInput
	}
	ex := Extremes{Highest: entries[0], Lowest: entries[0]}
	for _, e := range entries[1:] {
		if e.Amount.Cents > ex.Highest.Amount.Cents {
			ex.Highest = e
		}
		if e.Amount.Cents < ex.Lowest.Amount.Cents {
			ex.Lowest = e
		}
	}
	return ex, nil
}

// AverageDailySpending divides the total expense magnitude by the number of
// distinct calendar days that carry at least one expense. With no expense
// entries the division is undefined and ErrDivisionUndefined is returned;
// callers special-case "no expenses yet" instead of receiving a NaN.
func AverageDailySpending(entries []core.TransactionEntry) (core.Money, error) {
	var total int64
	days := make(map[[3]int]struct{})
	for _, e := range entries {
		if e.Kind != core.KindExpense {
			continue
		}
		total += e.Amount.Cents
		y, m, d := e.OccurredAt.Date()
		days[[3]int{y, int(m), d}] = struct{}{}
	}
	if len(days) == 0 {
		return core.Money{}, core.ErrDivisionUndefined
	}
	return core.DivideRounded(total, int64(len(days))), nil
}

// MovingAverageTrend averages the magnitudes of the chronologically last
// `window` expense entries, always dividing by the full window size even
// when fewer entries exist. The fixed divisor under-reports early averages
// on purpose; see DESIGN.md. The second return value is false when there is
// nothing to predict from, which is distinct from a numeric zero.
func MovingAverageTrend(entries []core.TransactionEntry, window int) (core.Money, bool) {
	if window <= 0 {
		return core.Money{}, false
	}
	expenses := make([]core.TransactionEntry, 0, len(entries))
	for _, e := range entries {
		if e.Kind == core.KindExpense {
			expenses = append(expenses, e)
		}
	}
	if len(expenses) == 0 {
		return core.Money{}, false
	}
	sort.SliceStable(expenses, func(i, j int) bool {
		return expenses[i].OccurredAt.Before(expenses[j].OccurredAt)
	})
	if len(expenses) > window {
		expenses = expenses[len(expenses)-window:]
	}
	var total int64
	for _, e := range expenses {
		total += e.Amount.Cents
	}
	return core.DivideRounded(total, int64(window)), true
}
