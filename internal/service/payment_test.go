package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"scooter-rental-backend/internal/domain"
	"scooter-rental-backend/internal/security"
)

type paymentFixture struct {
	paymentRepo *MockPaymentRepo
	rentalRepo  *MockRentalRepo
	cardRepo    *MockCardRepo
	gateway     *stubGateway
	svc         PaymentService
}

func newPaymentFixture(t *testing.T) *paymentFixture {
	t.Helper()
	cipher, err := security.NewCardCipher(testVaultKey)
	require.NoError(t, err)

	f := &paymentFixture{
		paymentRepo: new(MockPaymentRepo),
		rentalRepo:  new(MockRentalRepo),
		cardRepo:    new(MockCardRepo),
		gateway:     &stubGateway{result: &GatewayResult{Success: true, TransactionID: "txn_test", Message: "Charge approved"}},
	}
	userRepo := new(MockUserRepo)
	userRepo.On("GetByID", mock.Anything, mock.Anything).Return(&domain.User{ID: 7, Email: "rider@example.com"}, nil).Maybe()
	emailSvc := new(MockEmailService)
	emailSvc.On("SendPaymentConfirmation", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

	vault := NewCardService(f.cardRepo, cipher)
	f.svc = NewPaymentService(f.paymentRepo, f.rentalRepo, userRepo, vault, f.gateway, emailSvc)
	return f
}

func (f *paymentFixture) vaultedCard(t *testing.T) *domain.PaymentCard {
	t.Helper()
	cipher, err := security.NewCardCipher(testVaultKey)
	require.NoError(t, err)
	encrypted, err := cipher.Encrypt("4242424242424242")
	require.NoError(t, err)
	return &domain.PaymentCard{
		ID: 5, UserID: 7, CardNumberLast4: "4242", EncryptedCardNumber: encrypted,
		ExpiryMonth: "12", ExpiryYear: "30", CardType: domain.NetworkVisa, IsDefault: true,
	}
}

func activeRental() *domain.Rental {
	return &domain.Rental{ID: 1, UserID: 7, ScooterID: 3, Period: domain.PeriodFourHours,
		Status: domain.RentalStatusActive, Cost: 72.0}
}

func TestSettleSavedCardSuccess(t *testing.T) {
	f := newPaymentFixture(t)
	f.rentalRepo.On("GetByID", mock.Anything, int32(1)).Return(activeRental(), nil)
	f.cardRepo.On("GetByIDAndUser", mock.Anything, int32(5), int32(7)).Return(f.vaultedCard(t), nil)
	f.paymentRepo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Payment).ID = 11
	}).Return(nil)
	f.paymentRepo.On("CompleteSettlement", mock.Anything, int32(11), int32(1), "txn_test").Return(nil)

	cardID := int32(5)
	confirmation, err := f.svc.Settle(context.Background(), 7, &SettleRequest{
		RentalID: 1,
		Amount:   72.0,
		Method:   domain.PaymentMethodSavedCard,
		CardID:   &cardID,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusCompleted, confirmation.Payment.Status)
	require.NotNil(t, confirmation.Payment.TransactionID)
	assert.Equal(t, "txn_test", *confirmation.Payment.TransactionID)
	assert.Equal(t, domain.DefaultCurrency, confirmation.Payment.Currency)
	f.paymentRepo.AssertCalled(t, "CompleteSettlement", mock.Anything, int32(11), int32(1), "txn_test")
}

func TestSettleFallsBackToDefaultCard(t *testing.T) {
	f := newPaymentFixture(t)
	f.rentalRepo.On("GetByID", mock.Anything, int32(1)).Return(activeRental(), nil)
	card := f.vaultedCard(t)
	f.cardRepo.On("GetDefault", mock.Anything, int32(7)).Return(card, nil)
	f.cardRepo.On("GetByIDAndUser", mock.Anything, int32(5), int32(7)).Return(card, nil)
	f.paymentRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.paymentRepo.On("CompleteSettlement", mock.Anything, mock.Anything, int32(1), "txn_test").Return(nil)

	confirmation, err := f.svc.Settle(context.Background(), 7, &SettleRequest{
		RentalID: 1,
		Amount:   72.0,
		Method:   domain.PaymentMethodSavedCard,
	})
	require.NoError(t, err)
	require.NotNil(t, confirmation.Payment.PaymentCardID)
	assert.Equal(t, int32(5), *confirmation.Payment.PaymentCardID)
}

func TestSettleAmountMismatch(t *testing.T) {
	// Any nonzero delta from the frozen cost is rejected, down to fractions
	// of a cent.
	for _, amount := range []float64{72.01, 72.004, 71.9999999, 0, -72.0} {
		f := newPaymentFixture(t)
		f.rentalRepo.On("GetByID", mock.Anything, int32(1)).Return(activeRental(), nil)

		_, err := f.svc.Settle(context.Background(), 7, &SettleRequest{
			RentalID: 1,
			Amount:   amount,
			Method:   domain.PaymentMethodSavedCard,
		})
		require.Error(t, err, "amount %v", amount)
		assert.Equal(t, domain.CodeValidation, domain.CodeOf(err))
		f.paymentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	}
}

func TestSettleAlreadyPaid(t *testing.T) {
	f := newPaymentFixture(t)
	paid := activeRental()
	paid.Status = domain.RentalStatusPaid
	f.rentalRepo.On("GetByID", mock.Anything, int32(1)).Return(paid, nil)

	_, err := f.svc.Settle(context.Background(), 7, &SettleRequest{
		RentalID: 1, Amount: 72.0, Method: domain.PaymentMethodSavedCard,
	})
	require.Error(t, err)
	assert.Equal(t, domain.CodeConflict, domain.CodeOf(err))
}

func TestSettleOtherUsersRentalHidden(t *testing.T) {
	f := newPaymentFixture(t)
	f.rentalRepo.On("GetByID", mock.Anything, int32(1)).Return(activeRental(), nil)

	_, err := f.svc.Settle(context.Background(), 99, &SettleRequest{
		RentalID: 1, Amount: 72.0, Method: domain.PaymentMethodSavedCard,
	})
	require.Error(t, err)
	assert.Equal(t, domain.CodeNotFound, domain.CodeOf(err))
}

func TestSettleDeclineRecordsFailedAttempt(t *testing.T) {
	f := newPaymentFixture(t)
	f.gateway.result = &GatewayResult{Success: false, DeclineCode: "insufficient_funds", Message: "The card has insufficient funds"}
	f.rentalRepo.On("GetByID", mock.Anything, int32(1)).Return(activeRental(), nil)
	f.cardRepo.On("GetByIDAndUser", mock.Anything, int32(5), int32(7)).Return(f.vaultedCard(t), nil)
	f.paymentRepo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Payment).ID = 11
	}).Return(nil)
	f.paymentRepo.On("UpdateStatus", mock.Anything, int32(11), domain.PaymentStatusFailed, (*string)(nil)).Return(nil)

	cardID := int32(5)
	_, err := f.svc.Settle(context.Background(), 7, &SettleRequest{
		RentalID: 1, Amount: 72.0, Method: domain.PaymentMethodSavedCard, CardID: &cardID,
	})
	require.Error(t, err)
	assert.Equal(t, domain.CodeGatewayDeclined, domain.CodeOf(err))
	assert.Contains(t, err.Error(), "insufficient_funds")
	// A failed attempt never finalizes the rental; the renter can retry.
	f.paymentRepo.AssertNotCalled(t, "CompleteSettlement", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.paymentRepo.AssertCalled(t, "UpdateStatus", mock.Anything, int32(11), domain.PaymentStatusFailed, (*string)(nil))
}

func TestSettleNewCardRequiresDetails(t *testing.T) {
	f := newPaymentFixture(t)
	f.rentalRepo.On("GetByID", mock.Anything, int32(1)).Return(activeRental(), nil)

	_, err := f.svc.Settle(context.Background(), 7, &SettleRequest{
		RentalID: 1, Amount: 72.0, Method: domain.PaymentMethodNewCard,
	})
	require.Error(t, err)
	assert.Equal(t, domain.CodeValidation, domain.CodeOf(err))
}

func TestSettleNewCardSavesToVault(t *testing.T) {
	f := newPaymentFixture(t)
	f.rentalRepo.On("GetByID", mock.Anything, int32(1)).Return(activeRental(), nil)
	f.cardRepo.On("ListByUser", mock.Anything, int32(7)).Return([]domain.PaymentCard{}, nil)
	f.cardRepo.On("Create", mock.Anything, mock.Anything, true).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.PaymentCard).ID = 9
	}).Return(nil)
	f.paymentRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.paymentRepo.On("CompleteSettlement", mock.Anything, mock.Anything, int32(1), "txn_test").Return(nil)

	confirmation, err := f.svc.Settle(context.Background(), 7, &SettleRequest{
		RentalID: 1,
		Amount:   72.0,
		Method:   domain.PaymentMethodNewCard,
		Card: &domain.CardInput{
			CardHolderName: "Wei Zhang",
			CardNumber:     "4242424242424242",
			ExpiryMonth:    "12",
			ExpiryYear:     "30",
			CVV:            "123",
		},
		SaveCard: true,
	})
	require.NoError(t, err)
	require.NotNil(t, confirmation.Payment.PaymentCardID)
	assert.Equal(t, int32(9), *confirmation.Payment.PaymentCardID)
}

func TestSettleExpiredSavedCard(t *testing.T) {
	f := newPaymentFixture(t)
	f.rentalRepo.On("GetByID", mock.Anything, int32(1)).Return(activeRental(), nil)
	card := f.vaultedCard(t)
	card.ExpiryYear = "20"
	f.cardRepo.On("GetByIDAndUser", mock.Anything, int32(5), int32(7)).Return(card, nil)

	cardID := int32(5)
	_, err := f.svc.Settle(context.Background(), 7, &SettleRequest{
		RentalID: 1, Amount: 72.0, Method: domain.PaymentMethodSavedCard, CardID: &cardID,
	})
	require.Error(t, err)
	assert.Equal(t, domain.CodeValidation, domain.CodeOf(err))
	f.paymentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
