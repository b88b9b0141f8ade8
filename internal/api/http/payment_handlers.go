package http

import (
	"net/http"

	"scooter-rental-backend/internal/domain"
	"scooter-rental-backend/internal/service"
)

type settleBody struct {
	RentalID int32                `json:"rental_id"`
	Amount   float64              `json:"amount"`
	Currency string               `json:"currency"`
	Method   domain.PaymentMethod `json:"payment_method"`
	CardID   *int32               `json:"payment_card_id,omitempty"`
	Card     *domain.CardInput    `json:"card,omitempty"`
	SaveCard bool                 `json:"save_card"`
}

func (s *Server) handleSettle(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var body settleBody
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}
	confirmation, err := s.services.Payment.Settle(r.Context(), uid, &service.SettleRequest{
		RentalID: body.RentalID,
		Amount:   body.Amount,
		Currency: body.Currency,
		Method:   body.Method,
		CardID:   body.CardID,
		Card:     body.Card,
		SaveCard: body.SaveCard,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, confirmation)
}

func (s *Server) handleGetPayment(w http.ResponseWriter, r *http.Request) {
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
	payment, err := s.services.Payment.GetPayment(r.Context(), uid, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payment)
}

func (s *Server) handleListPayments(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	page, pageSize := pagination(r)
	payments, total, err := s.services.Payment.ListPayments(r.Context(), uid, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: payments, Total: total, Page: page, PageSize: pageSize})
}
