package http

import (
	"net/http"

	"planner/internal/core"
)

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.svc.Tasks(r.Context(), userFrom(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (s *Server) handleTasksOn(w http.ResponseWriter, r *http.Request) {
	date := r.PathValue("date")
	if _, err := core.ParseDateKey(date); err != nil {
		badRequest(w, "invalid date, want YYYY-MM-DD")
		return
	}
	tasks, err := s.svc.TasksOn(r.Context(), userFrom(r), date)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var t core.Task
	if err := decodeJSON(r, &t); err != nil {
		badRequest(w, "invalid task payload: "+err.Error())
		return
	}
	user := userFrom(r)
	added, err := s.svc.AddTask(r.Context(), user, t)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.statsCache.Delete(user)
	writeJSON(w, http.StatusCreated, added)
}

func (s *Server) handleToggleTask(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	t, err := s.svc.ToggleTask(r.Context(), user, r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.statsCache.Delete(user)
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	var u core.TaskUpdate
	if err := decodeJSON(r, &u); err != nil {
		badRequest(w, "invalid update payload: "+err.Error())
		return
	}
	user := userFrom(r)
	t, err := s.svc.UpdateTask(r.Context(), user, r.PathValue("id"), u)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.statsCache.Delete(user)
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	if err := s.svc.RemoveTask(r.Context(), user, r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	s.statsCache.Delete(user)
	w.WriteHeader(http.StatusNoContent)
}

type reorderRequest struct {
	DragID   string `json:"dragId"`
	TargetID string `json:"targetId"`
	Position string `json:"position"`
}

func (s *Server) handleReorderTasks(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid reorder payload: "+err.Error())
		return
	}
	err := s.svc.ReorderTasks(r.Context(), userFrom(r), req.DragID, req.TargetID, core.Position(req.Position))
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type cloneDayRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type cloneDayResponse struct {
	Cloned int `json:"cloned"`
}

func (s *Server) handleCloneDay(w http.ResponseWriter, r *http.Request) {
	var req cloneDayRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid clone payload: "+err.Error())
		return
	}
	if _, err := core.ParseDateKey(req.From); err != nil {
		badRequest(w, "invalid from date, want YYYY-MM-DD")
		return
	}
	if _, err := core.ParseDateKey(req.To); err != nil {
		badRequest(w, "invalid to date, want YYYY-MM-DD")
		return
	}
	user := userFrom(r)
	n, err := s.svc.CloneDay(r.Context(), user, req.From, req.To)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if n > 0 {
		s.statsCache.Delete(user)
	}
	// Zero clones is a notice, not an error.
	writeJSON(w, http.StatusOK, cloneDayResponse{Cloned: n})
}
