package export

import (
	"fintrack/internal/core"
	"fintrack/internal/timerange"
)

// Report is a month-sectioned view of a user's ledger, newest month first.
type Report struct {
	Months []timerange.MonthGroup
}

// BuildMonthlyReport orders entries newest-first and sections them by
// calendar month. Undated entries are kept in their own trailing section
// so nothing silently disappears from the export.
func BuildMonthlyReport(entries []core.TransactionEntry) Report {
	sorted := timerange.SortDescending(entries)
	return Report{Months: timerange.GroupByMonth(sorted)}
}

// Rows flattens the report into sheet rows. Each month contributes a header
// row followed by one row per entry.
func (r Report) Rows() [][]any {
	var rows [][]any
	for _, m := range r.Months {
		rows = append(rows, []any{m.Label, "", "", "", ""})
		for _, e := range m.Entries {
			date := ""
			if !e.OccurredAt.IsZero() {
				date = e.OccurredAt.Format("2006-01-02")
			}
			rows = append(rows, []any{date, string(e.Kind), e.Category, e.Amount.Units(), e.Note})
		}
		rows = append(rows, []any{
			"", "", "Income / Expense",
			m.IncomeTotal.Units(), m.ExpenseTotal.Units(),
		})
	}
	return rows
}
