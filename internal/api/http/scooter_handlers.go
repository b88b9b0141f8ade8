package http

import (
	"net/http"

	"scooter-rental-backend/internal/domain"
)

func (s *Server) handleCreateScooter(w http.ResponseWriter, r *http.Request) {
	var scooter domain.Scooter
	if err := decodeBody(r, &scooter); err != nil {
		writeError(w, err)
		return
	}
	if err := s.services.Scooter.AddScooter(r.Context(), &scooter); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, scooter)
}

func (s *Server) handleGetScooter(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	scooter, err := s.services.Scooter.GetScooter(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, scooter)
}

func (s *Server) handleUpdateScooter(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var scooter domain.Scooter
	if err := decodeBody(r, &scooter); err != nil {
		writeError(w, err)
		return
	}
	scooter.ID = id
	if err := s.services.Scooter.UpdateScooter(r.Context(), &scooter); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, scooter)
}

func (s *Server) handleSetScooterStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var body struct {
		Status domain.ScooterStatus `json:"status"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}
	scooter, err := s.services.Scooter.SetStatus(r.Context(), id, body.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, scooter)
}

func (s *Server) handleDeleteScooter(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.services.Scooter.RemoveScooter(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleListScooters(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	status := domain.ScooterStatus(r.URL.Query().Get("status"))
	scooters, total, err := s.services.Scooter.ListScooters(r.Context(), status, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: scooters, Total: total, Page: page, PageSize: pageSize})
}
