package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"scooter-rental-backend/internal/domain"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockScooterRepo
type MockScooterRepo struct {
	mock.Mock
}

func (m *MockScooterRepo) Create(ctx context.Context, s *domain.Scooter) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}
func (m *MockScooterRepo) GetByID(ctx context.Context, id int32) (*domain.Scooter, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Scooter), args.Error(1)
}
func (m *MockScooterRepo) Update(ctx context.Context, s *domain.Scooter) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}
func (m *MockScooterRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockScooterRepo) List(ctx context.Context, status domain.ScooterStatus, page, pageSize int32) ([]domain.Scooter, int32, error) {
	args := m.Called(ctx, status, page, pageSize)
	return args.Get(0).([]domain.Scooter), args.Get(1).(int32), args.Error(2)
}

// MockPricingConfigRepo
type MockPricingConfigRepo struct {
	mock.Mock
}

func (m *MockPricingConfigRepo) CreateAndActivate(ctx context.Context, cfg *domain.PricingConfig) error {
	args := m.Called(ctx, cfg)
	return args.Error(0)
}
func (m *MockPricingConfigRepo) GetActive(ctx context.Context) (*domain.PricingConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PricingConfig), args.Error(1)
}
func (m *MockPricingConfigRepo) GetByID(ctx context.Context, id int32) (*domain.PricingConfig, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PricingConfig), args.Error(1)
}
func (m *MockPricingConfigRepo) Update(ctx context.Context, cfg *domain.PricingConfig) error {
	args := m.Called(ctx, cfg)
	return args.Error(0)
}
func (m *MockPricingConfigRepo) List(ctx context.Context, page, pageSize int32) ([]domain.PricingConfig, int32, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]domain.PricingConfig), args.Get(1).(int32), args.Error(2)
}

// MockRentalRepo
type MockRentalRepo struct {
	mock.Mock
}

func (m *MockRentalRepo) CreateWithScooter(ctx context.Context, r *domain.Rental) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockRentalRepo) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) FinalizeAndRelease(ctx context.Context, id int32, status domain.RentalStatus, endTime time.Time) (bool, error) {
	args := m.Called(ctx, id, status, endTime)
	return args.Bool(0), args.Error(1)
}
func (m *MockRentalRepo) ListByUser(ctx context.Context, userID int32, status domain.RentalStatus, page, pageSize int32) ([]domain.Rental, int32, error) {
	args := m.Called(ctx, userID, status, page, pageSize)
	return args.Get(0).([]domain.Rental), args.Get(1).(int32), args.Error(2)
}
func (m *MockRentalRepo) ListExpiredActive(ctx context.Context, cutoff time.Time) ([]domain.Rental, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCardRepo
type MockCardRepo struct {
	mock.Mock
}

func (m *MockCardRepo) Create(ctx context.Context, c *domain.PaymentCard, makeDefault bool) error {
	args := m.Called(ctx, c, makeDefault)
	return args.Error(0)
}
func (m *MockCardRepo) GetByIDAndUser(ctx context.Context, id, userID int32) (*domain.PaymentCard, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentCard), args.Error(1)
}
func (m *MockCardRepo) GetDefault(ctx context.Context, userID int32) (*domain.PaymentCard, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentCard), args.Error(1)
}
func (m *MockCardRepo) ListByUser(ctx context.Context, userID int32) ([]domain.PaymentCard, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.PaymentCard), args.Error(1)
}
func (m *MockCardRepo) Update(ctx context.Context, c *domain.PaymentCard, makeDefault bool) error {
	args := m.Called(ctx, c, makeDefault)
	return args.Error(0)
}
func (m *MockCardRepo) Delete(ctx context.Context, id, userID int32) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockPaymentRepo
type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) Create(ctx context.Context, p *domain.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockPaymentRepo) GetByIDAndUser(ctx context.Context, id, userID int32) (*domain.Payment, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) UpdateStatus(ctx context.Context, id int32, status domain.PaymentStatus, transactionID *string) error {
	args := m.Called(ctx, id, status, transactionID)
	return args.Error(0)
}
func (m *MockPaymentRepo) CompleteSettlement(ctx context.Context, paymentID, rentalID int32, transactionID string) error {
	args := m.Called(ctx, paymentID, rentalID, transactionID)
	return args.Error(0)
}
func (m *MockPaymentRepo) ListByUser(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Payment, int32, error) {
	args := m.Called(ctx, userID, page, pageSize)
	return args.Get(0).([]domain.Payment), args.Get(1).(int32), args.Error(2)
}
func (m *MockPaymentRepo) ListByRental(ctx context.Context, rentalID int32) ([]domain.Payment, error) {
	args := m.Called(ctx, rentalID)
	return args.Get(0).([]domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) ListCompletedInWindow(ctx context.Context, from, to time.Time) ([]domain.Payment, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]domain.Payment), args.Error(1)
}

// MockRevenueStatsRepo
type MockRevenueStatsRepo struct {
	mock.Mock
}

func (m *MockRevenueStatsRepo) Upsert(ctx context.Context, s *domain.RevenueStats) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}
func (m *MockRevenueStatsRepo) GetByDate(ctx context.Context, date time.Time) (*domain.RevenueStats, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RevenueStats), args.Error(1)
}
func (m *MockRevenueStatsRepo) GetDateRange(ctx context.Context, start, end time.Time) ([]domain.RevenueStats, error) {
	args := m.Called(ctx, start, end)
	return args.Get(0).([]domain.RevenueStats), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendPaymentConfirmation(ctx context.Context, email string, payment *domain.Payment) error {
	args := m.Called(ctx, email, payment)
	return args.Error(0)
}
func (m *MockEmailService) SendRentalConfirmation(ctx context.Context, email string, rental *domain.Rental) error {
	args := m.Called(ctx, email, rental)
	return args.Error(0)
}

// stubGateway returns a canned result for every charge.
type stubGateway struct {
	result *GatewayResult
}

func (g *stubGateway) Charge(ctx context.Context, amount float64) *GatewayResult {
	return g.result
}
