package service

import (
	"context"
	"time"

	"scooter-rental-backend/internal/domain"
)

type PricingService interface {
	// Quote resolves the active config and prices the duration tier. The
	// result is frozen into the rental at creation and never recomputed.
	Quote(ctx context.Context, period domain.RentalPeriod) (*domain.Quote, error)
	CreateConfig(ctx context.Context, cfg *domain.PricingConfig) error
	UpdateConfig(ctx context.Context, cfg *domain.PricingConfig) error
	GetActiveConfig(ctx context.Context) (*domain.PricingConfig, error)
	ListConfigs(ctx context.Context, page, pageSize int32) ([]domain.PricingConfig, int32, error)
}

type ScooterService interface {
	AddScooter(ctx context.Context, s *domain.Scooter) error
	GetScooter(ctx context.Context, id int32) (*domain.Scooter, error)
	UpdateScooter(ctx context.Context, s *domain.Scooter) error
	// SetStatus applies administrative transitions (maintenance,
	// unavailable, back to available). in_use is reserved for the allocator.
	SetStatus(ctx context.Context, id int32, status domain.ScooterStatus) (*domain.Scooter, error)
	RemoveScooter(ctx context.Context, id int32) error
	ListScooters(ctx context.Context, status domain.ScooterStatus, page, pageSize int32) ([]domain.Scooter, int32, error)
}

type RentalService interface {
	// CreateRental reserves the scooter, quotes the tier, and persists the
	// rental atomically.
	CreateRental(ctx context.Context, userID, scooterID int32, period domain.RentalPeriod) (*domain.Rental, error)
	GetRental(ctx context.Context, userID, rentalID int32) (*domain.Rental, error)
	ListRentals(ctx context.Context, userID int32, status domain.RentalStatus, page, pageSize int32) ([]domain.Rental, int32, error)
	// EndRental is the renter-initiated finalization: requires ownership and
	// an active rental, stamps end_time and releases the scooter.
	EndRental(ctx context.Context, userID, rentalID int32) (*domain.Rental, error)
	// TransitionRental applies the generic transition table (active ->
	// completed only); every other edge is a conflict.
	TransitionRental(ctx context.Context, rentalID int32, status domain.RentalStatus) (*domain.Rental, error)
	// SweepExpired force-completes active rentals older than the grace
	// window and returns how many were swept.
	SweepExpired(ctx context.Context) (int, error)
	RemoveRental(ctx context.Context, rentalID int32) error
}

type CardService interface {
	AddCard(ctx context.Context, userID int32, input *domain.CardInput) (*domain.PaymentCard, error)
	GetCard(ctx context.Context, userID, cardID int32) (*domain.PaymentCard, error)
	UpdateCard(ctx context.Context, userID, cardID int32, patch *domain.CardPatch) (*domain.PaymentCard, error)
	RemoveCard(ctx context.Context, userID, cardID int32) error
	ListCards(ctx context.Context, userID int32) ([]domain.PaymentCard, error)
	GetDefaultCard(ctx context.Context, userID int32) (*domain.PaymentCard, error)
}

// CardVault is the settlement engine's private view of the card store. It is
// never wired to the HTTP layer.
type CardVault interface {
	CardService
	DecryptCardNumber(ctx context.Context, userID, cardID int32) (string, error)
}

// SettleRequest describes one settlement attempt against a rental.
type SettleRequest struct {
	RentalID int32
	Amount   float64
	Currency string
	Method   domain.PaymentMethod
	// CardID selects a vaulted card for saved_card payments.
	CardID *int32
	// Card is the inline material for new_card payments.
	Card *domain.CardInput
	// SaveCard vaults the inline card for future use.
	SaveCard bool
}

// PaymentConfirmation is returned after a successful settlement. Declined
// charges surface as a gateway_declined error with the failed attempt still
// recorded.
type PaymentConfirmation struct {
	Payment *domain.Payment `json:"payment"`
	Message string          `json:"message"`
}

type PaymentService interface {
	Settle(ctx context.Context, userID int32, req *SettleRequest) (*PaymentConfirmation, error)
	GetPayment(ctx context.Context, userID, paymentID int32) (*domain.Payment, error)
	ListPayments(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Payment, int32, error)
	ListRentalPayments(ctx context.Context, userID, rentalID int32) ([]domain.Payment, error)
}

type RevenueService interface {
	// Recompute re-derives the stats row for the date from payment and
	// rental records. Idempotent; safe to run concurrently for distinct
	// dates.
	Recompute(ctx context.Context, date time.Time) (*domain.RevenueStats, error)
	Summarize(ctx context.Context, start, end time.Time) (*domain.RevenueSummary, error)
	WeeklySummary(ctx context.Context) (*domain.RevenueSummary, error)
}

type EmailService interface {
	SendPaymentConfirmation(ctx context.Context, email string, payment *domain.Payment) error
	SendRentalConfirmation(ctx context.Context, email string, rental *domain.Rental) error
}

// GatewayResult is the synchronous outcome of a charge attempt.
type GatewayResult struct {
	Success       bool
	TransactionID string
	DeclineCode   string
	Message       string
}

// PaymentGateway abstracts the (simulated) external payment processor.
type PaymentGateway interface {
	Charge(ctx context.Context, amount float64) *GatewayResult
}
