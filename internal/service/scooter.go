package service

import (
	"context"

	"scooter-rental-backend/internal/domain"
	"scooter-rental-backend/internal/repository"
)

type scooterService struct {
	scooterRepo repository.ScooterRepository
}

func NewScooterService(scooterRepo repository.ScooterRepository) ScooterService {
	return &scooterService{scooterRepo: scooterRepo}
}

func (s *scooterService) AddScooter(ctx context.Context, sc *domain.Scooter) error {
	if sc.Model == "" {
		return domain.Validation("scooter model is required")
	}
	if sc.BatteryLevel < 0 || sc.BatteryLevel > 100 {
		return domain.Validation("battery level must be between 0 and 100")
	}
	if sc.Status == "" {
		sc.Status = domain.ScooterStatusAvailable
	}
	if err := s.scooterRepo.Create(ctx, sc); err != nil {
		return wrap(err)
	}
	return nil
}

func (s *scooterService) GetScooter(ctx context.Context, id int32) (*domain.Scooter, error) {
	sc, err := s.scooterRepo.GetByID(ctx, id)
	if err != nil {
		return nil, wrap(err)
	}
	return sc, nil
}

func (s *scooterService) UpdateScooter(ctx context.Context, sc *domain.Scooter) error {
	if sc.BatteryLevel < 0 || sc.BatteryLevel > 100 {
		return domain.Validation("battery level must be between 0 and 100")
	}
	if _, err := s.scooterRepo.GetByID(ctx, sc.ID); err != nil {
		return wrap(err)
	}
	if err := s.scooterRepo.Update(ctx, sc); err != nil {
		return wrap(err)
	}
	return nil
}

func (s *scooterService) SetStatus(ctx context.Context, id int32, status domain.ScooterStatus) (*domain.Scooter, error) {
	switch status {
	case domain.ScooterStatusAvailable, domain.ScooterStatusMaintenance, domain.ScooterStatusUnavailable:
	case domain.ScooterStatusInUse:
		return nil, domain.Validation("in_use is set by the rental allocator, not directly")
	default:
		return nil, domain.Validation("invalid scooter status %q", status)
	}

	sc, err := s.scooterRepo.GetByID(ctx, id)
	if err != nil {
		return nil, wrap(err)
	}
	if sc.Status == domain.ScooterStatusInUse {
		return nil, domain.Conflict("scooter %d is in use", id)
	}
	sc.Status = status
	if err := s.scooterRepo.Update(ctx, sc); err != nil {
		return nil, wrap(err)
	}
	return sc, nil
}

func (s *scooterService) RemoveScooter(ctx context.Context, id int32) error {
	sc, err := s.scooterRepo.GetByID(ctx, id)
	if err != nil {
		return wrap(err)
	}
	if sc.Status == domain.ScooterStatusInUse {
		return domain.Conflict("scooter %d is in use", id)
	}
	if err := s.scooterRepo.Delete(ctx, id); err != nil {
		return wrap(err)
	}
	return nil
}

func (s *scooterService) ListScooters(ctx context.Context, status domain.ScooterStatus, page, pageSize int32) ([]domain.Scooter, int32, error) {
	scooters, total, err := s.scooterRepo.List(ctx, status, page, pageSize)
	if err != nil {
		return nil, 0, wrap(err)
	}
	return scooters, total, nil
}
