package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/export"
	"fintrack/internal/timerange"
)

type transactionJSON struct {
	ID         string `json:"id"`
	Kind       string `json:"kind"`
	Amount     string `json:"amount"`
	Category   string `json:"category"`
	OccurredAt string `json:"occurred_at,omitempty"`
	Note       string `json:"note,omitempty"`
}

func toTransactionJSON(e core.TransactionEntry) transactionJSON {
	out := transactionJSON{
		ID:       e.ID,
		Kind:     string(e.Kind),
		Amount:   e.Amount.String(),
		Category: e.Category,
		Note:     e.Note,
	}
	if !e.OccurredAt.IsZero() {
		out.OccurredAt = e.OccurredAt.Format(time.RFC3339)
	}
	return out
}

func toTransactionListJSON(entries []core.TransactionEntry) []transactionJSON {
	out := make([]transactionJSON, 0, len(entries))
	for _, e := range entries {
		out = append(out, toTransactionJSON(e))
	}
	return out
}

type subtotalJSON struct {
	Income  string `json:"income"`
	Expense string `json:"expense"`
}

type transactionListResponse struct {
	Entries   []transactionJSON `json:"entries"`
	Subtotals subtotalJSON      `json:"subtotals"`
	Filtered  bool              `json:"filtered"`
}

// cachedTransactions reads the user's ledger through the list cache.
func (s *Server) cachedTransactions(ctx context.Context, uid string) ([]core.TransactionEntry, error) {
	if entries, ok := s.listCache.Get(uid); ok {
		return entries, nil
	}
	entries, err := s.ledger.Transactions(ctx, uid)
	if err != nil {
		return nil, err
	}
	s.listCache.Set(uid, entries)
	return entries, nil
}

// handleListTransactions serves the ledger newest-first, optionally narrowed
// by a quick range (?range=week) or an explicit one (?start=...&end=...).
// Subtotals always cover exactly the returned entries.
func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	entries, err := s.cachedTransactions(r.Context(), uid)
	if err != nil {
		writeError(w, err)
		return
	}

	q := r.URL.Query()
	filtered := false
	switch {
	case q.Get("range") != "":
		entries, err = timerange.ByQuickRange(entries, timerange.QuickRange(q.Get("range")), time.Now())
		if err != nil {
			writeErrorMessage(w, http.StatusBadRequest, "unknown range: "+q.Get("range"))
			return
		}
		filtered = true
	case q.Get("start") != "" || q.Get("end") != "":
		start, err := time.Parse("2006-01-02", q.Get("start"))
		if err != nil {
			writeErrorMessage(w, http.StatusBadRequest, "invalid start date, want YYYY-MM-DD")
			return
		}
		end, err := time.Parse("2006-01-02", q.Get("end"))
		if err != nil {
			writeErrorMessage(w, http.StatusBadRequest, "invalid end date, want YYYY-MM-DD")
			return
		}
		entries = timerange.ByExplicitRange(entries, start, end)
		filtered = true
	}

	entries = timerange.SortDescending(entries)
	st := timerange.Subtotals(entries)

	writeJSON(w, http.StatusOK, transactionListResponse{
		Entries: toTransactionListJSON(entries),
		Subtotals: subtotalJSON{
			Income:  st.Income.String(),
			Expense: st.Expense.String(),
		},
		Filtered: filtered,
	})
}

type createTransactionRequest struct {
	Kind       string `json:"kind"`
	Amount     string `json:"amount"`
	Category   string `json:"category"`
	OccurredAt string `json:"occurred_at"`
	Note       string `json:"note"`
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	cents, err := core.ParseDecimalToCents(req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}

	entry := core.TransactionEntry{
		Kind:     core.EntryKind(req.Kind),
		Amount:   core.Money{Cents: cents},
		Category: req.Category,
		Note:     req.Note,
	}
	if req.OccurredAt != "" {
		occurred, err := time.Parse(time.RFC3339, req.OccurredAt)
		if err != nil {
			writeErrorMessage(w, http.StatusBadRequest, "invalid occurred_at, want RFC3339")
			return
		}
		entry.OccurredAt = occurred
	} else {
		entry.OccurredAt = time.Now()
	}

	created, err := s.ledger.AddTransaction(r.Context(), uid, entry)
	if err != nil {
		writeError(w, err)
		return
	}

	s.listCache.Delete(uid)
	writeJSON(w, http.StatusCreated, toTransactionJSON(created))
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	if err := s.ledger.DeleteTransaction(r.Context(), uid, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}

	s.listCache.Delete(uid)
	w.WriteHeader(http.StatusNoContent)
}

type monthGroupJSON struct {
	Label        string            `json:"label"`
	IncomeTotal  string            `json:"income_total"`
	ExpenseTotal string            `json:"expense_total"`
	Entries      []transactionJSON `json:"entries"`
}

// handleMonthlyReport serves the month-sectioned ledger view, newest month
// first.
func (s *Server) handleMonthlyReport(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	entries, err := s.cachedTransactions(r.Context(), uid)
	if err != nil {
		writeError(w, err)
		return
	}

	report := export.BuildMonthlyReport(entries)
	months := make([]monthGroupJSON, 0, len(report.Months))
	for _, m := range report.Months {
		months = append(months, monthGroupJSON{
			Label:        m.Label,
			IncomeTotal:  m.IncomeTotal.String(),
			ExpenseTotal: m.ExpenseTotal.String(),
			Entries:      toTransactionListJSON(m.Entries),
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"months": months})
}
