package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"scooter-rental-backend/internal/security"
	"scooter-rental-backend/internal/service"
)

// Services bundles everything the HTTP layer exposes.
type Services struct {
	Scooter service.ScooterService
	Pricing service.PricingService
	Rental  service.RentalService
	Card    service.CardService
	Payment service.PaymentService
	Revenue service.RevenueService
}

// Server wires the REST routes onto the service layer.
type Server struct {
	router   *mux.Router
	services *Services
	tokens   security.TokenManager
}

func NewServer(services *Services, tokens security.TokenManager) *Server {
	s := &Server{
		router:   mux.NewRouter(),
		services: services,
		tokens:   tokens,
	}
	s.routes()
	return s
}

// Router returns the configured handler for the HTTP server.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) routes() {
	s.router.Use(loggingMiddleware)
	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	api := s.router.PathPrefix("/api/v1").Subrouter()
	api.Use(authMiddleware(s.tokens))

	// Scooter fleet
	api.HandleFunc("/scooters", s.handleCreateScooter).Methods(http.MethodPost)
	api.HandleFunc("/scooters", s.handleListScooters).Methods(http.MethodGet)
	api.HandleFunc("/scooters/{id:[0-9]+}", s.handleGetScooter).Methods(http.MethodGet)
	api.HandleFunc("/scooters/{id:[0-9]+}", s.handleUpdateScooter).Methods(http.MethodPut)
	api.HandleFunc("/scooters/{id:[0-9]+}", s.handleDeleteScooter).Methods(http.MethodDelete)
	api.HandleFunc("/scooters/{id:[0-9]+}/status", s.handleSetScooterStatus).Methods(http.MethodPut)

	// Pricing
	api.HandleFunc("/pricing/quote", s.handleQuote).Methods(http.MethodGet)
	api.HandleFunc("/pricing/configs", s.handleCreatePricingConfig).Methods(http.MethodPost)
	api.HandleFunc("/pricing/configs", s.handleListPricingConfigs).Methods(http.MethodGet)
	api.HandleFunc("/pricing/configs/active", s.handleGetActivePricingConfig).Methods(http.MethodGet)
	api.HandleFunc("/pricing/configs/{id:[0-9]+}", s.handleUpdatePricingConfig).Methods(http.MethodPut)

	// Rentals
	api.HandleFunc("/rentals", s.handleCreateRental).Methods(http.MethodPost)
	api.HandleFunc("/rentals", s.handleListRentals).Methods(http.MethodGet)
	api.HandleFunc("/rentals/{id:[0-9]+}", s.handleGetRental).Methods(http.MethodGet)
	api.HandleFunc("/rentals/{id:[0-9]+}", s.handleDeleteRental).Methods(http.MethodDelete)
	api.HandleFunc("/rentals/{id:[0-9]+}/end", s.handleEndRental).Methods(http.MethodPost)
	api.HandleFunc("/rentals/{id:[0-9]+}/status", s.handleTransitionRental).Methods(http.MethodPut)
	api.HandleFunc("/rentals/{id:[0-9]+}/payments", s.handleListRentalPayments).Methods(http.MethodGet)

	// Cards
	api.HandleFunc("/cards", s.handleAddCard).Methods(http.MethodPost)
	api.HandleFunc("/cards", s.handleListCards).Methods(http.MethodGet)
	api.HandleFunc("/cards/default", s.handleGetDefaultCard).Methods(http.MethodGet)
	api.HandleFunc("/cards/{id:[0-9]+}", s.handleUpdateCard).Methods(http.MethodPatch)
	api.HandleFunc("/cards/{id:[0-9]+}", s.handleDeleteCard).Methods(http.MethodDelete)

	// Payments
	api.HandleFunc("/payments", s.handleSettle).Methods(http.MethodPost)
	api.HandleFunc("/payments", s.handleListPayments).Methods(http.MethodGet)
	api.HandleFunc("/payments/{id:[0-9]+}", s.handleGetPayment).Methods(http.MethodGet)

	// Revenue
	api.HandleFunc("/revenue/daily", s.handleGetDailyRevenue).Methods(http.MethodGet)
	api.HandleFunc("/revenue/summary", s.handleRevenueSummary).Methods(http.MethodGet)
	api.HandleFunc("/revenue/weekly", s.handleWeeklyRevenue).Methods(http.MethodGet)
	api.HandleFunc("/revenue/recompute", s.handleRecomputeRevenue).Methods(http.MethodPost)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
