package http

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"planner/internal/core"
	"planner/internal/export"
)

func (s *Server) handleGetCycles(w http.ResponseWriter, r *http.Request) {
	set, err := s.svc.Cycles(r.Context(), userFrom(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, set)
}

type regenerateRequest struct {
	StartDate string `json:"startDate"`
}

func (s *Server) handleRegenerateCycles(w http.ResponseWriter, r *http.Request) {
	var req regenerateRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid regenerate payload: "+err.Error())
		return
	}
	set, err := s.svc.RegenerateCycles(r.Context(), userFrom(r), req.StartDate)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, set)
}

func (s *Server) handleExportCycles(w http.ResponseWriter, r *http.Request) {
	set, err := s.svc.Cycles(r.Context(), userFrom(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	filename := fmt.Sprintf("cycles-%s.xls", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", export.XLSContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := export.WriteCycleXLS(w, set); err != nil {
		writeError(w, r, err)
	}
}

func (s *Server) cycleID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id < 1 || id > core.CycleCount {
		return 0, fmt.Errorf("invalid cycle id %q", r.PathValue("id"))
	}
	return id, nil
}

func (s *Server) handleAddCycleTask(w http.ResponseWriter, r *http.Request) {
	id, err := s.cycleID(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	t, err := s.svc.AddCycleTask(r.Context(), userFrom(r), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) handleUpdateCycleTask(w http.ResponseWriter, r *http.Request) {
	id, err := s.cycleID(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	var u core.CycleTaskUpdate
	if err := decodeJSON(r, &u); err != nil {
		badRequest(w, "invalid task payload: "+err.Error())
		return
	}
	t, err := s.svc.UpdateCycleTask(r.Context(), userFrom(r), id, r.PathValue("taskID"), u)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleDeleteCycleTask(w http.ResponseWriter, r *http.Request) {
	id, err := s.cycleID(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	if err := s.svc.DeleteCycleTask(r.Context(), userFrom(r), id, r.PathValue("taskID")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
