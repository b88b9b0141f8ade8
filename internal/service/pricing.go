package service

import (
	"context"
	"errors"

	"scooter-rental-backend/internal/domain"
	"scooter-rental-backend/internal/repository"
)

type pricingService struct {
	pricingRepo repository.PricingConfigRepository
}

func NewPricingService(pricingRepo repository.PricingConfigRepository) PricingService {
	return &pricingService{pricingRepo: pricingRepo}
}

func (s *pricingService) Quote(ctx context.Context, period domain.RentalPeriod) (*domain.Quote, error) {
	if !domain.ValidPeriod(period) {
		return nil, domain.Validation("invalid rental period %q", period)
	}
	cfg, err := s.pricingRepo.GetActive(ctx)
	if err != nil {
		return nil, wrap(err)
	}
	hours := domain.RentalPeriodHours[period]
	return &domain.Quote{
		Period: period,
		Hours:  hours,
		Cost:   float64(hours) * cfg.BaseHourlyRate * cfg.Discount(period),
	}, nil
}

func validatePricingConfig(cfg *domain.PricingConfig) error {
	if cfg.BaseHourlyRate <= 0 {
		return domain.Validation("base hourly rate must be positive")
	}
	for period, discount := range cfg.PeriodDiscounts {
		if !domain.ValidPeriod(period) {
			return domain.Validation("unknown rental period %q in discounts", period)
		}
		if discount < 0 || discount > 1 {
			return domain.Validation("discount for %s must be in [0, 1], got %v", period, discount)
		}
	}
	return nil
}

func (s *pricingService) CreateConfig(ctx context.Context, cfg *domain.PricingConfig) error {
	if err := validatePricingConfig(cfg); err != nil {
		return err
	}
	if err := s.pricingRepo.CreateAndActivate(ctx, cfg); err != nil {
		return wrap(err)
	}
	return nil
}

func (s *pricingService) UpdateConfig(ctx context.Context, cfg *domain.PricingConfig) error {
	if err := validatePricingConfig(cfg); err != nil {
		return err
	}
	if _, err := s.pricingRepo.GetByID(ctx, cfg.ID); err != nil {
		return wrap(err)
	}
	if err := s.pricingRepo.Update(ctx, cfg); err != nil {
		return wrap(err)
	}
	return nil
}

func (s *pricingService) GetActiveConfig(ctx context.Context) (*domain.PricingConfig, error) {
	cfg, err := s.pricingRepo.GetActive(ctx)
	if err != nil {
		return nil, wrap(err)
	}
	return cfg, nil
}

func (s *pricingService) ListConfigs(ctx context.Context, page, pageSize int32) ([]domain.PricingConfig, int32, error) {
	configs, total, err := s.pricingRepo.List(ctx, page, pageSize)
	if err != nil {
		return nil, 0, wrap(err)
	}
	return configs, total, nil
}

// wrap passes typed domain errors through unchanged and classifies anything
// else as internal.
func wrap(err error) error {
	var de *domain.Error
	if errors.As(err, &de) {
		return err
	}
	return domain.Internal(err)
}
