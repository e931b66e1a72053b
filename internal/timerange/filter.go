// Package timerange filters and orders transaction slices by occurrence
// time: quick relative lookback windows, explicit inclusive date ranges,
// stable descending sort and calendar-month grouping. All functions are pure
// and take the clock as a parameter where one is needed.
package timerange

import (
	"sort"
	"time"

	"fintrack/internal/core"
)

// QuickRange is a named relative lookback window.
type QuickRange string

const (
	Week        QuickRange = "week"
	Month       QuickRange = "month"
	ThreeMonths QuickRange = "threeMonths"
	SixMonths   QuickRange = "sixMonths"
	Year        QuickRange = "year"
)

// LowerBound computes the inclusive start of the window ending at now,
// normalized to midnight. Unknown ranges fail with ErrInvalidInput.
func (r QuickRange) LowerBound(now time.Time) (time.Time, error) {
	var from time.Time
	switch r {
	case Week:
		from = now.AddDate(0, 0, -7)
	case Month:
		from = now.AddDate(0, -1, 0)
	case ThreeMonths:
		from = now.AddDate(0, -3, 0)
	case SixMonths:
		from = now.AddDate(0, -6, 0)
	case Year:
		from = now.AddDate(-1, 0, 0)
	default:
		return time.Time{}, core.ErrInvalidInput
	}
	return dayOf(from), nil
}

// ByQuickRange keeps entries from now-duration(r) (inclusive, midnight
// normalized) up to now with no upper bound. Entries without a valid
// occurrence time are excluded.
func ByQuickRange(entries []core.TransactionEntry, r QuickRange, now time.Time) ([]core.TransactionEntry, error) {
	lower, err := r.LowerBound(now)
	if err != nil {
		return nil, err
	}
	out := make([]core.TransactionEntry, 0, len(entries))
	for _, e := range entries {
		if e.OccurredAt.IsZero() {
			continue
		}
		if !e.OccurredAt.Before(lower) {
			out = append(out, e)
		}
	}
	return out, nil
}

// ByExplicitRange keeps entries whose calendar date falls inside
// [start, end], both bounds inclusive at day granularity (time-of-day is
// ignored for the boundary test). start after end yields an empty result,
// not an error.
func ByExplicitRange(entries []core.TransactionEntry, start, end time.Time) []core.TransactionEntry {
	from, to := dayOf(start), dayOf(end)
	out := make([]core.TransactionEntry, 0, len(entries))
	if from.After(to) {
		return out
	}
	for _, e := range entries {
		d := dayOf(e.OccurredAt)
		if !d.Before(from) && !d.After(to) {
			out = append(out, e)
		}
	}
	return out
}

// SortDescending returns a copy ordered by occurrence time descending.
// Entries with identical timestamps keep their relative input order so the
// rendered list is reproducible.
func SortDescending(entries []core.TransactionEntry) []core.TransactionEntry {
	out := make([]core.TransactionEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OccurredAt.After(out[j].OccurredAt)
	})
	return out
}

// Reset is the identity filter: it hands back the unfiltered set. The
// "filter active" flag lives with the caller.
func Reset(entries []core.TransactionEntry) []core.TransactionEntry {
	return entries
}

// Subtotal carries the income and expense sums of one slice.
type Subtotal struct {
	Income  core.Money
	Expense core.Money
}

// Subtotals recomputes income/expense sums over exactly the slice given.
// Callers pass the currently filtered view, never the unfiltered ledger.
func Subtotals(entries []core.TransactionEntry) Subtotal {
	var st Subtotal
	for _, e := range entries {
		switch e.Kind {
		case core.KindIncome:
			st.Income.Cents += e.Amount.Cents
		case core.KindExpense:
			st.Expense.Cents += e.Amount.Cents
		}
	}
	return st
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
