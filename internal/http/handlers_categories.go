package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"fintrack/internal/core"
)

type categoryJSON struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
	Kind string `json:"kind"`
}

// handleListCategories serves the selectable entry categories for one kind.
func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	kind := core.EntryKind(r.URL.Query().Get("kind"))
	if kind == "" {
		kind = core.KindExpense
	}
	if !kind.Valid() {
		writeErrorMessage(w, http.StatusBadRequest, "unknown kind: "+string(kind))
		return
	}

	s.catMu.Lock()
	cats := s.categories.List(kind)
	s.catMu.Unlock()

	out := make([]categoryJSON, 0, len(cats))
	for _, c := range cats {
		out = append(out, categoryJSON{Name: c.Name, Icon: c.Icon, Kind: string(c.Kind)})
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": out})
}

// handleAddCategory registers an ad-hoc category alongside the stock set.
func (s *Server) handleAddCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryJSON
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	cat := core.Category{Name: strings.TrimSpace(req.Name), Icon: req.Icon, Kind: core.EntryKind(req.Kind)}

	s.catMu.Lock()
	err := s.categories.Add(cat)
	s.catMu.Unlock()
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, categoryJSON{Name: cat.Name, Icon: cat.Icon, Kind: string(cat.Kind)})
}
