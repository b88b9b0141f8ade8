package service

import (
	"context"
	"time"

	"scooter-rental-backend/internal/domain"
	"scooter-rental-backend/internal/logger"
	"scooter-rental-backend/internal/repository"
)

type rentalService struct {
	rentalRepo repository.RentalRepository
	userRepo   repository.UserRepository
	pricingSvc PricingService
	emailSvc   EmailService
	grace      time.Duration
}

func NewRentalService(
	rentalRepo repository.RentalRepository,
	userRepo repository.UserRepository,
	pricingSvc PricingService,
	emailSvc EmailService,
	grace time.Duration,
) RentalService {
	return &rentalService{
		rentalRepo: rentalRepo,
		userRepo:   userRepo,
		pricingSvc: pricingSvc,
		emailSvc:   emailSvc,
		grace:      grace,
	}
}

func (s *rentalService) CreateRental(ctx context.Context, userID, scooterID int32, period domain.RentalPeriod) (*domain.Rental, error) {
	quote, err := s.pricingSvc.Quote(ctx, period)
	if err != nil {
		return nil, err
	}

	rental := &domain.Rental{
		UserID:    userID,
		ScooterID: scooterID,
		Period:    period,
		StartTime: time.Now().UTC(),
		Status:    domain.RentalStatusActive,
		Cost:      quote.Cost,
	}
	if err := s.rentalRepo.CreateWithScooter(ctx, rental); err != nil {
		return nil, wrap(err)
	}

	s.sendRentalConfirmation(rental)
	return rental, nil
}

// sendRentalConfirmation delivers the confirmation off the request path; a
// delivery failure never affects the rental.
func (s *rentalService) sendRentalConfirmation(rental *domain.Rental) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		user, err := s.userRepo.GetByID(ctx, rental.UserID)
		if err != nil {
			logger.Warn("rental confirmation skipped, user lookup failed", "rental_id", rental.ID, "error", err)
			return
		}
		if err := s.emailSvc.SendRentalConfirmation(ctx, user.Email, rental); err != nil {
			logger.Warn("rental confirmation email failed", "rental_id", rental.ID, "error", err)
		}
	}()
}

func (s *rentalService) GetRental(ctx context.Context, userID, rentalID int32) (*domain.Rental, error) {
	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, wrap(err)
	}
	if rental.UserID != userID {
		return nil, domain.NotFound("rental %d not found", rentalID)
	}
	return rental, nil
}

func (s *rentalService) ListRentals(ctx context.Context, userID int32, status domain.RentalStatus, page, pageSize int32) ([]domain.Rental, int32, error) {
	rentals, total, err := s.rentalRepo.ListByUser(ctx, userID, status, page, pageSize)
	if err != nil {
		return nil, 0, wrap(err)
	}
	return rentals, total, nil
}

func (s *rentalService) EndRental(ctx context.Context, userID, rentalID int32) (*domain.Rental, error) {
	rental, err := s.GetRental(ctx, userID, rentalID)
	if err != nil {
		return nil, err
	}
	if rental.Status != domain.RentalStatusActive {
		return nil, domain.Conflict("rental %d is %s, only active rentals can be ended", rentalID, rental.Status)
	}

	ended, err := s.rentalRepo.FinalizeAndRelease(ctx, rentalID, domain.RentalStatusCompleted, time.Now().UTC())
	if err != nil {
		return nil, wrap(err)
	}
	if !ended {
		// A concurrent finalizer (settlement or sweep) won the race.
		return nil, domain.Conflict("rental %d was already finalized", rentalID)
	}

	rental, err = s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, wrap(err)
	}
	return rental, nil
}

func (s *rentalService) TransitionRental(ctx context.Context, rentalID int32, status domain.RentalStatus) (*domain.Rental, error) {
	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, wrap(err)
	}
	if !domain.CanTransition(rental.Status, status) {
		return nil, domain.Conflict("cannot transition rental %d from %s to %s", rentalID, rental.Status, status)
	}

	// The only permitted edge is active -> completed, which also stamps
	// end_time and frees the scooter.
	ok, err := s.rentalRepo.FinalizeAndRelease(ctx, rentalID, status, time.Now().UTC())
	if err != nil {
		return nil, wrap(err)
	}
	if !ok {
		return nil, domain.Conflict("rental %d was already finalized", rentalID)
	}

	rental, err = s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, wrap(err)
	}
	return rental, nil
}

func (s *rentalService) SweepExpired(ctx context.Context) (int, error) {
	now := time.Now().UTC()
	// Any active rental whose start is older than the grace window is
	// overdue, whatever its tier.
	cutoff := now.Add(-s.grace)
	candidates, err := s.rentalRepo.ListExpiredActive(ctx, cutoff)
	if err != nil {
		return 0, wrap(err)
	}

	swept := 0
	for _, rental := range candidates {
		ok, err := s.rentalRepo.FinalizeAndRelease(ctx, rental.ID, domain.RentalStatusCompleted, now)
		if err != nil {
			logger.Error("failed to sweep expired rental", "rental_id", rental.ID, "error", err)
			continue
		}
		if ok {
			logger.Info("swept expired rental", "rental_id", rental.ID, "scooter_id", rental.ScooterID, "started", rental.StartTime)
			swept++
		}
	}
	return swept, nil
}

func (s *rentalService) RemoveRental(ctx context.Context, rentalID int32) error {
	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return wrap(err)
	}
	if rental.Status == domain.RentalStatusActive {
		return domain.Conflict("rental %d is active, end it before removal", rentalID)
	}
	if err := s.rentalRepo.Delete(ctx, rentalID); err != nil {
		return wrap(err)
	}
	return nil
}
