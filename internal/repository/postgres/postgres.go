package postgres

import (
	"database/sql"

	"scooter-rental-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.ScooterRepository
	repository.PricingConfigRepository
	repository.RentalRepository
	repository.CardRepository
	repository.PaymentRepository
	repository.RevenueStatsRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                      db,
		UserRepository:          NewUserRepository(db),
		ScooterRepository:       NewScooterRepository(db),
		PricingConfigRepository: NewPricingConfigRepository(db),
		RentalRepository:        NewRentalRepository(db),
		CardRepository:          NewCardRepository(db),
		PaymentRepository:       NewPaymentRepository(db),
		RevenueStatsRepository:  NewRevenueStatsRepository(db),
	}
}
