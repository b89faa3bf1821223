package http

import (
	"net/http"
	"time"

	"planner/internal/core"
)

func (s *Server) handleListHabits(w http.ResponseWriter, r *http.Request) {
	habits, err := s.svc.Habits(r.Context(), userFrom(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, habits)
}

type createHabitRequest struct {
	Name   string `json:"name"`
	Target int    `json:"target"`
	Reward string `json:"reward"`
}

func (s *Server) handleCreateHabit(w http.ResponseWriter, r *http.Request) {
	var req createHabitRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid habit payload: "+err.Error())
		return
	}
	h, err := s.svc.AddHabit(r.Context(), userFrom(r), req.Name, req.Target, req.Reward)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, h)
}

type toggleHabitRequest struct {
	Date string `json:"date"`
}

func (s *Server) handleToggleHabit(w http.ResponseWriter, r *http.Request) {
	var req toggleHabitRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid toggle payload: "+err.Error())
		return
	}
	date := req.Date
	if date == "" {
		date = core.TodayKey(time.Now())
	} else if _, err := core.ParseDateKey(date); err != nil {
		badRequest(w, "invalid date, want YYYY-MM-DD")
		return
	}
	h, err := s.svc.ToggleHabit(r.Context(), userFrom(r), r.PathValue("id"), date)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h)
}

func (s *Server) handleDeleteHabit(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.RemoveHabit(r.Context(), userFrom(r), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
