package http

import (
	"net/http"
)

func (s *Server) handleGetDailyRevenue(w http.ResponseWriter, r *http.Request) {
	date, err := queryDate(r, "date")
	if err != nil {
		writeError(w, err)
		return
	}
	summary, err := s.services.Revenue.Summarize(r.Context(), date, date)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleRevenueSummary(w http.ResponseWriter, r *http.Request) {
	start, err := queryDate(r, "start_date")
	if err != nil {
		writeError(w, err)
		return
	}
	end, err := queryDate(r, "end_date")
	if err != nil {
		writeError(w, err)
		return
	}
	summary, err := s.services.Revenue.Summarize(r.Context(), start, end)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleWeeklyRevenue(w http.ResponseWriter, r *http.Request) {
	summary, err := s.services.Revenue.WeeklySummary(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleRecomputeRevenue(w http.ResponseWriter, r *http.Request) {
	date, err := queryDate(r, "date")
	if err != nil {
		writeError(w, err)
		return
	}
	stats, err := s.services.Revenue.Recompute(r.Context(), date)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
