package timerange

import (
	"strconv"
	"time"

	"fintrack/internal/core"
)

// MonthGroup bundles the entries of one calendar month with the month's
// income and expense totals.
type MonthGroup struct {
	Label        string // e.g. "March 2025"
	Year         int
	Month        time.Month
	IncomeTotal  core.Money
	ExpenseTotal core.Money
	Entries      []core.TransactionEntry
}

// GroupByMonth partitions entries by the year-month of their occurrence
// time. Groups appear in first-encountered order, so a caller wanting
// reverse-chronological sections sorts descending first. Every entry lands
// in exactly one group.
func GroupByMonth(entries []core.TransactionEntry) []MonthGroup {
	index := make(map[[2]int]int)
	groups := make([]MonthGroup, 0)
	for _, e := range entries {
		y, m, _ := e.OccurredAt.Date()
		key := [2]int{y, int(m)}
		i, seen := index[key]
		if !seen {
			i = len(groups)
			index[key] = i
			groups = append(groups, MonthGroup{
				Label: m.String() + " " + strconv.Itoa(y),
				Year:  y,
				Month: m,
			})
		}
		groups[i].Entries = append(groups[i].Entries, e)
		switch e.Kind {
		case core.KindIncome:
			groups[i].IncomeTotal.Cents += e.Amount.Cents
		case core.KindExpense:
			groups[i].ExpenseTotal.Cents += e.Amount.Cents
		}
	}
	return groups
}
