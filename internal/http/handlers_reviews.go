package http

import (
	"fmt"
	"net/http"
	"strconv"

	"planner/internal/core"
)

func (s *Server) handleGetDailyReview(w http.ResponseWriter, r *http.Request) {
	date := r.PathValue("date")
	if _, err := core.ParseDateKey(date); err != nil {
		badRequest(w, "invalid date, want YYYY-MM-DD")
		return
	}
	review, err := s.svc.DailyReview(r.Context(), userFrom(r), date)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, review)
}

func (s *Server) handlePutDailyReview(w http.ResponseWriter, r *http.Request) {
	date := r.PathValue("date")
	if _, err := core.ParseDateKey(date); err != nil {
		badRequest(w, "invalid date, want YYYY-MM-DD")
		return
	}
	var review core.DailyReview
	if err := decodeJSON(r, &review); err != nil {
		badRequest(w, "invalid review payload: "+err.Error())
		return
	}
	if err := s.svc.SetDailyReview(r.Context(), userFrom(r), date, review); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, review)
}

func reviewCycleID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id < 1 || id > core.CycleCount {
		return 0, fmt.Errorf("invalid cycle review id %q", r.PathValue("id"))
	}
	return id, nil
}

func (s *Server) handleGetCycleReview(w http.ResponseWriter, r *http.Request) {
	id, err := reviewCycleID(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	review, err := s.svc.CycleReview(r.Context(), userFrom(r), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, review)
}

func (s *Server) handlePutCycleReview(w http.ResponseWriter, r *http.Request) {
	id, err := reviewCycleID(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	var review core.CycleReview
	if err := decodeJSON(r, &review); err != nil {
		badRequest(w, "invalid review payload: "+err.Error())
		return
	}
	if err := s.svc.SetCycleReview(r.Context(), userFrom(r), id, review); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, review)
}

func reviewYear(r *http.Request) (int, error) {
	year, err := strconv.Atoi(r.PathValue("year"))
	if err != nil || year < 1970 || year > 9999 {
		return 0, fmt.Errorf("invalid year %q", r.PathValue("year"))
	}
	return year, nil
}

func (s *Server) handleGetYearlyReview(w http.ResponseWriter, r *http.Request) {
	year, err := reviewYear(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	review, err := s.svc.YearlyReview(r.Context(), userFrom(r), year)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, review)
}

func (s *Server) handlePutYearlyReview(w http.ResponseWriter, r *http.Request) {
	year, err := reviewYear(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	var review core.YearlyReview
	if err := decodeJSON(r, &review); err != nil {
		badRequest(w, "invalid review payload: "+err.Error())
		return
	}
	if err := s.svc.SetYearlyReview(r.Context(), userFrom(r), year, review); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, review)
}
