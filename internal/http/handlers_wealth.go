package http

import (
	"net/http"

	"planner/internal/core"
)

func (s *Server) handleGetWealth(w http.ResponseWriter, r *http.Request) {
	wealth, err := s.svc.Wealth(r.Context(), userFrom(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, wealth)
}

type distributeRequest struct {
	Income float64 `json:"income"`
}

func (s *Server) handleDistribute(w http.ResponseWriter, r *http.Request) {
	var req distributeRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid distribute payload: "+err.Error())
		return
	}
	user := userFrom(r)
	d, err := s.svc.DistributeIncome(r.Context(), user, req.Income)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.spendingCache.Delete(user)
	// An empty distribution means the income was rejected as non-positive;
	// the caller sees the untouched result rather than an error.
	writeJSON(w, http.StatusOK, d)
}

type addJarRequest struct {
	Label   string  `json:"label"`
	Percent float64 `json:"percent"`
}

func (s *Server) handleAddJar(w http.ResponseWriter, r *http.Request) {
	var req addJarRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid jar payload: "+err.Error())
		return
	}
	jar, err := s.svc.AddJar(r.Context(), userFrom(r), req.Label, req.Percent)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, jar)
}

func (s *Server) handleDeleteJar(w http.ResponseWriter, r *http.Request) {
	transferTo := r.URL.Query().Get("transfer_to")
	if err := s.svc.DeleteJar(r.Context(), userFrom(r), r.PathValue("id"), transferTo); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddTransaction(w http.ResponseWriter, r *http.Request) {
	var tx core.Transaction
	if err := decodeJSON(r, &tx); err != nil {
		badRequest(w, "invalid transaction payload: "+err.Error())
		return
	}
	user := userFrom(r)
	added, err := s.svc.AddTransaction(r.Context(), user, tx)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.spendingCache.Delete(user)
	writeJSON(w, http.StatusCreated, added)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	if err := s.svc.RemoveTransaction(r.Context(), user, r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	s.spendingCache.Delete(user)
	w.WriteHeader(http.StatusNoContent)
}
