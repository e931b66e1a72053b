package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"fintrack/internal/core"
)

type planItemJSON struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	CreatedAt   string `json:"created_at,omitempty"`
}

type budgetCategoryJSON struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Items       []planItemJSON `json:"items"`
	TotalAmount string         `json:"total_amount"`
	CreatedAt   string         `json:"created_at,omitempty"`
}

func toBudgetCategoryJSON(c core.BudgetCategory) budgetCategoryJSON {
	items := make([]planItemJSON, 0, len(c.Items))
	for _, it := range c.Items {
		item := planItemJSON{
			ID:          it.ID,
			Description: it.Description,
			Amount:      it.Amount.String(),
		}
		if !it.CreatedAt.IsZero() {
			item.CreatedAt = it.CreatedAt.Format(time.RFC3339)
		}
		items = append(items, item)
	}
	out := budgetCategoryJSON{
		ID:          c.ID,
		Name:        c.Name,
		Items:       items,
		TotalAmount: c.TotalAmount.String(),
	}
	if !c.CreatedAt.IsZero() {
		out.CreatedAt = c.CreatedAt.Format(time.RFC3339)
	}
	return out
}

func (s *Server) handleListBudgetCategories(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	cats, err := s.planner.Categories(r.Context(), uid)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]budgetCategoryJSON, 0, len(cats))
	for _, c := range cats {
		out = append(out, toBudgetCategoryJSON(c))
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": out})
}

func (s *Server) handleCreateBudgetCategory(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	cat, err := s.planner.CreateCategory(r.Context(), uid, req.Name)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toBudgetCategoryJSON(cat))
}

func (s *Server) handleDeleteBudgetCategory(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	if err := s.planner.DeleteCategory(r.Context(), uid, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddBudgetItem(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	var req struct {
		Description string `json:"description"`
		Amount      string `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	cents, err := core.ParseDecimalToCents(req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}

	cat, err := s.planner.AddItem(r.Context(), uid, r.PathValue("id"), req.Description, core.Money{Cents: cents})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toBudgetCategoryJSON(cat))
}

func (s *Server) handleRemoveBudgetItem(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid item index")
		return
	}

	cat, err := s.planner.RemoveItem(r.Context(), uid, r.PathValue("id"), index)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toBudgetCategoryJSON(cat))
}
