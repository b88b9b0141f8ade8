package http

import (
	"net/http"

	"scooter-rental-backend/internal/domain"
)

func (s *Server) handleCreateRental(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var body struct {
		ScooterID int32               `json:"scooter_id"`
		Period    domain.RentalPeriod `json:"rental_period"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}
	rental, err := s.services.Rental.CreateRental(r.Context(), uid, body.ScooterID, body.Period)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rental)
}

func (s *Server) handleGetRental(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	rental, err := s.services.Rental.GetRental(r.Context(), uid, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (s *Server) handleListRentals(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	page, pageSize := pagination(r)
	status := domain.RentalStatus(r.URL.Query().Get("status"))
	rentals, total, err := s.services.Rental.ListRentals(r.Context(), uid, status, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: rentals, Total: total, Page: page, PageSize: pageSize})
}

func (s *Server) handleEndRental(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	rental, err := s.services.Rental.EndRental(r.Context(), uid, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (s *Server) handleTransitionRental(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var body struct {
		Status domain.RentalStatus `json:"status"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}
	rental, err := s.services.Rental.TransitionRental(r.Context(), id, body.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (s *Server) handleDeleteRental(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.services.Rental.RemoveRental(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleListRentalPayments(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	payments, err := s.services.Payment.ListRentalPayments(r.Context(), uid, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payments)
}
