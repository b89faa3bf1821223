package http

import (
	"net/http"

	"planner/internal/core"
)

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.svc.Categories(r.Context(), userFrom(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var c core.Category
	if err := decodeJSON(r, &c); err != nil {
		badRequest(w, "invalid category payload: "+err.Error())
		return
	}
	added, err := s.svc.AddCategory(r.Context(), userFrom(r), c.Name, c.Color)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, added)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.RemoveCategory(r.Context(), userFrom(r), r.PathValue("name")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCategoryStats(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	if stats, ok := s.statsCache.Get(user); ok {
		writeJSON(w, http.StatusOK, stats)
		return
	}
	stats, err := s.svc.CategoryStats(r.Context(), user)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.statsCache.Set(user, stats)
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleSpendingTotals(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	if totals, ok := s.spendingCache.Get(user); ok {
		writeJSON(w, http.StatusOK, totals)
		return
	}
	totals, err := s.svc.SpendingTotals(r.Context(), user)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.spendingCache.Set(user, totals)
	writeJSON(w, http.StatusOK, totals)
}
