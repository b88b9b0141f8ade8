package http

import (
	"net/http"

	"scooter-rental-backend/internal/domain"
)

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	period := domain.RentalPeriod(r.URL.Query().Get("rental_period"))
	quote, err := s.services.Pricing.Quote(r.Context(), period)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

func (s *Server) handleCreatePricingConfig(w http.ResponseWriter, r *http.Request) {
	var cfg domain.PricingConfig
	if err := decodeBody(r, &cfg); err != nil {
		writeError(w, err)
		return
	}
	if err := s.services.Pricing.CreateConfig(r.Context(), &cfg); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, cfg)
}

func (s *Server) handleUpdatePricingConfig(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var cfg domain.PricingConfig
	if err := decodeBody(r, &cfg); err != nil {
		writeError(w, err)
		return
	}
	cfg.ID = id
	if err := s.services.Pricing.UpdateConfig(r.Context(), &cfg); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

func (s *Server) handleGetActivePricingConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.services.Pricing.GetActiveConfig(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

func (s *Server) handleListPricingConfigs(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	configs, total, err := s.services.Pricing.ListConfigs(r.Context(), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: configs, Total: total, Page: page, PageSize: pageSize})
}
