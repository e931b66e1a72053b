package http

import (
	"errors"
	"net/http"
	"strconv"

	"fintrack/internal/analytics"
	"fintrack/internal/core"
)

func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	view, err := s.ledger.BalanceView(r.Context(), uid)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"current_balance":   view.CurrentBalance.String(),
		"available_balance": view.AvailableBalance.String(),
	})
}

type breakdownRowJSON struct {
	Category string `json:"category"`
	Total    string `json:"total"`
}

// handleBreakdown serves per-category totals for one kind, largest first.
func (s *Server) handleBreakdown(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	kind := core.EntryKind(r.URL.Query().Get("kind"))
	if kind == "" {
		kind = core.KindExpense
	}
	if !kind.Valid() {
		writeErrorMessage(w, http.StatusBadRequest, "unknown kind: "+string(kind))
		return
	}

	entries, err := s.cachedTransactions(r.Context(), uid)
	if err != nil {
		writeError(w, err)
		return
	}

	rows := analytics.CategoryBreakdown(entries, kind)
	out := make([]breakdownRowJSON, 0, len(rows))
	for _, row := range rows {
		out = append(out, breakdownRowJSON{Category: row.Category, Total: row.Total.String()})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"kind": string(kind),
		"rows": out,
	})
}

// handleExtremes serves the largest and smallest entries by magnitude. An
// empty ledger is a valid state, reported with has_data=false rather than an
// error.
func (s *Server) handleExtremes(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	entries, err := s.cachedTransactions(r.Context(), uid)
	if err != nil {
		writeError(w, err)
		return
	}

	ex, err := analytics.HighestLowest(entries)
	if errors.Is(err, core.ErrEmptyInput) {
		writeJSON(w, http.StatusOK, map[string]any{"has_data": false})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"has_data": true,
		"highest":  toTransactionJSON(ex.Highest),
		"lowest":   toTransactionJSON(ex.Lowest),
	})
}

// handleAverageDaily serves total expenses divided by the number of distinct
// spending days. No spending days means the average is undefined, reported
// with has_data=false.
func (s *Server) handleAverageDaily(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	entries, err := s.cachedTransactions(r.Context(), uid)
	if err != nil {
		writeError(w, err)
		return
	}

	avg, err := analytics.AverageDailySpending(entries)
	if errors.Is(err, core.ErrDivisionUndefined) {
		writeJSON(w, http.StatusOK, map[string]any{"has_data": false})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"has_data": true,
		"average":  avg.String(),
	})
}

// handleTrend serves the moving-average spending prediction.
func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	window := analytics.DefaultTrendWindow
	if v := r.URL.Query().Get("window"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeErrorMessage(w, http.StatusBadRequest, "invalid window: must be a positive integer")
			return
		}
		window = n
	}

	entries, err := s.cachedTransactions(r.Context(), uid)
	if err != nil {
		writeError(w, err)
		return
	}

	prediction, ok := analytics.MovingAverageTrend(entries, window)
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{"has_data": false})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"has_data":   true,
		"window":     window,
		"prediction": prediction.String(),
	})
}
