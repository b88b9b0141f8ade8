package repository

import (
	"context"
	"time"

	"scooter-rental-backend/internal/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type ScooterRepository interface {
	Create(ctx context.Context, s *domain.Scooter) error
	GetByID(ctx context.Context, id int32) (*domain.Scooter, error)
	Update(ctx context.Context, s *domain.Scooter) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context, status domain.ScooterStatus, page, pageSize int32) ([]domain.Scooter, int32, error)
}

type PricingConfigRepository interface {
	// CreateAndActivate inserts the config as active and deactivates every
	// other config in the same transaction.
	CreateAndActivate(ctx context.Context, cfg *domain.PricingConfig) error
	GetActive(ctx context.Context) (*domain.PricingConfig, error)
	GetByID(ctx context.Context, id int32) (*domain.PricingConfig, error)
	Update(ctx context.Context, cfg *domain.PricingConfig) error
	List(ctx context.Context, page, pageSize int32) ([]domain.PricingConfig, int32, error)
}

type RentalRepository interface {
	// CreateWithScooter reserves the scooter and inserts the rental as one
	// transaction. Returns domain.Conflict when the scooter is not available.
	CreateWithScooter(ctx context.Context, r *domain.Rental) error
	GetByID(ctx context.Context, id int32) (*domain.Rental, error)
	// FinalizeAndRelease moves an active rental to the given terminal status,
	// stamps end_time, and releases the scooter in one transaction. Returns
	// false without error when the rental was already finalized (the CAS
	// guard saw zero rows), so racing finalizers no-op.
	FinalizeAndRelease(ctx context.Context, id int32, status domain.RentalStatus, endTime time.Time) (bool, error)
	ListByUser(ctx context.Context, userID int32, status domain.RentalStatus, page, pageSize int32) ([]domain.Rental, int32, error)
	ListExpiredActive(ctx context.Context, cutoff time.Time) ([]domain.Rental, error)
	Delete(ctx context.Context, id int32) error
}

type CardRepository interface {
	// Create inserts the card; when makeDefault is set every other card of
	// the same owner is demoted in the same transaction.
	Create(ctx context.Context, c *domain.PaymentCard, makeDefault bool) error
	GetByIDAndUser(ctx context.Context, id, userID int32) (*domain.PaymentCard, error)
	GetDefault(ctx context.Context, userID int32) (*domain.PaymentCard, error)
	ListByUser(ctx context.Context, userID int32) ([]domain.PaymentCard, error)
	// Update persists the card; when makeDefault is set the owner's other
	// cards are demoted transactionally.
	Update(ctx context.Context, c *domain.PaymentCard, makeDefault bool) error
	// Delete removes the card and, if it was the default and other cards
	// remain, promotes one of them in the same transaction.
	Delete(ctx context.Context, id, userID int32) error
}

type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) error
	GetByIDAndUser(ctx context.Context, id, userID int32) (*domain.Payment, error)
	UpdateStatus(ctx context.Context, id int32, status domain.PaymentStatus, transactionID *string) error
	// CompleteSettlement marks the payment completed with its transaction id
	// and finalizes the rental as paid, releasing the scooter, in one
	// transaction. An already-paid rental still commits the payment update.
	CompleteSettlement(ctx context.Context, paymentID, rentalID int32, transactionID string) error
	ListByUser(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Payment, int32, error)
	ListByRental(ctx context.Context, rentalID int32) ([]domain.Payment, error)
	// ListCompletedInWindow returns completed payments created inside the
	// half-open day window used by the revenue recompute.
	ListCompletedInWindow(ctx context.Context, from, to time.Time) ([]domain.Payment, error)
}

type RevenueStatsRepository interface {
	// Upsert writes the stats row for its date, overwriting any previous
	// computation (unique date key, last writer wins).
	Upsert(ctx context.Context, s *domain.RevenueStats) error
	GetByDate(ctx context.Context, date time.Time) (*domain.RevenueStats, error)
	GetDateRange(ctx context.Context, start, end time.Time) ([]domain.RevenueStats, error)
}
