package service

import (
	"context"
	"time"

	"scooter-rental-backend/internal/domain"
	"scooter-rental-backend/internal/logger"
	"scooter-rental-backend/internal/repository"
	"scooter-rental-backend/internal/utils"
)

type paymentService struct {
	paymentRepo repository.PaymentRepository
	rentalRepo  repository.RentalRepository
	userRepo    repository.UserRepository
	vault       CardVault
	gateway     PaymentGateway
	emailSvc    EmailService
}

func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	rentalRepo repository.RentalRepository,
	userRepo repository.UserRepository,
	vault CardVault,
	gateway PaymentGateway,
	emailSvc EmailService,
) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		rentalRepo:  rentalRepo,
		userRepo:    userRepo,
		vault:       vault,
		gateway:     gateway,
		emailSvc:    emailSvc,
	}
}

func (s *paymentService) Settle(ctx context.Context, userID int32, req *SettleRequest) (*PaymentConfirmation, error) {
	rental, err := s.rentalRepo.GetByID(ctx, req.RentalID)
	if err != nil {
		return nil, wrap(err)
	}
	if rental.UserID != userID {
		return nil, domain.NotFound("rental %d not found", req.RentalID)
	}
	switch rental.Status {
	case domain.RentalStatusActive, domain.RentalStatusCompleted:
	case domain.RentalStatusPaid:
		return nil, domain.Conflict("rental %d is already paid", req.RentalID)
	default:
		return nil, domain.Conflict("rental %d is %s and cannot be settled", req.RentalID, rental.Status)
	}

	// The charge must equal the cost frozen at creation. Both values carry
	// the same quote snapshot, so equality is exact.
	if req.Amount != rental.Cost {
		return nil, domain.Validation("payment amount %.2f does not match rental cost %.2f", req.Amount, rental.Cost)
	}

	currency := req.Currency
	if currency == "" {
		currency = domain.DefaultCurrency
	}

	cardID, err := s.resolveCard(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	payment := &domain.Payment{
		UserID:        userID,
		RentalID:      req.RentalID,
		PaymentCardID: cardID,
		Amount:        req.Amount,
		Currency:      currency,
		Status:        domain.PaymentStatusPending,
		Method:        req.Method,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, wrap(err)
	}

	result := s.gateway.Charge(ctx, payment.Amount)
	if !result.Success {
		payment.Status = domain.PaymentStatusFailed
		if err := s.paymentRepo.UpdateStatus(ctx, payment.ID, domain.PaymentStatusFailed, nil); err != nil {
			logger.Error("failed to record declined payment", "payment_id", payment.ID, "error", err)
		}
		logger.Info("payment declined", "payment_id", payment.ID, "rental_id", rental.ID, "decline_code", result.DeclineCode)
		return nil, domain.GatewayDeclined(result.DeclineCode, result.Message)
	}

	// Completing the payment and finalizing the rental commit as one
	// transaction; a completed payment never stands against a still-active
	// rental.
	if err := s.paymentRepo.CompleteSettlement(ctx, payment.ID, rental.ID, result.TransactionID); err != nil {
		return nil, wrap(err)
	}
	payment.Status = domain.PaymentStatusCompleted
	payment.TransactionID = &result.TransactionID
	logger.Info("payment completed", "payment_id", payment.ID, "rental_id", rental.ID, "amount", payment.Amount, "currency", payment.Currency)

	s.sendPaymentConfirmation(payment)

	return &PaymentConfirmation{
		Payment: payment,
		Message: "Payment processed successfully",
	}, nil
}

// resolveCard validates the card material for the attempt and returns the
// vaulted card id, when one is involved.
func (s *paymentService) resolveCard(ctx context.Context, userID int32, req *SettleRequest) (*int32, error) {
	switch req.Method {
	case domain.PaymentMethodSavedCard:
		var card *domain.PaymentCard
		var err error
		if req.CardID != nil {
			card, err = s.vault.GetCard(ctx, userID, *req.CardID)
		} else {
			card, err = s.vault.GetDefaultCard(ctx, userID)
		}
		if err != nil {
			return nil, err
		}
		// Re-validate at charge time; the card may have expired since it
		// was vaulted.
		if err := utils.ValidateExpiry(card.ExpiryMonth, card.ExpiryYear); err != nil {
			return nil, domain.Validation("%s", err.Error())
		}
		number, err := s.vault.DecryptCardNumber(ctx, userID, card.ID)
		if err != nil {
			return nil, err
		}
		if !utils.IsValidCardNumber(number) {
			return nil, domain.Validation("invalid card number")
		}
		return &card.ID, nil

	case domain.PaymentMethodNewCard:
		if req.Card == nil {
			return nil, domain.Validation("card details are required for a new card payment")
		}
		number := utils.NormalizeCardNumber(req.Card.CardNumber)
		if err := utils.ValidateCard(number, req.Card.ExpiryMonth, req.Card.ExpiryYear, req.Card.CVV); err != nil {
			return nil, domain.Validation("%s", err.Error())
		}
		if req.SaveCard {
			card, err := s.vault.AddCard(ctx, userID, req.Card)
			if err != nil {
				return nil, err
			}
			return &card.ID, nil
		}
		return nil, nil

	default:
		return nil, domain.Validation("invalid payment method %q", req.Method)
	}
}

// sendPaymentConfirmation delivers the receipt off the request path.
func (s *paymentService) sendPaymentConfirmation(payment *domain.Payment) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		user, err := s.userRepo.GetByID(ctx, payment.UserID)
		if err != nil {
			logger.Warn("payment confirmation skipped, user lookup failed", "payment_id", payment.ID, "error", err)
			return
		}
		if err := s.emailSvc.SendPaymentConfirmation(ctx, user.Email, payment); err != nil {
			logger.Warn("payment confirmation email failed", "payment_id", payment.ID, "error", err)
		}
	}()
}

func (s *paymentService) GetPayment(ctx context.Context, userID, paymentID int32) (*domain.Payment, error) {
	payment, err := s.paymentRepo.GetByIDAndUser(ctx, paymentID, userID)
	if err != nil {
		return nil, wrap(err)
	}
	return payment, nil
}

func (s *paymentService) ListPayments(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Payment, int32, error) {
	payments, total, err := s.paymentRepo.ListByUser(ctx, userID, page, pageSize)
	if err != nil {
		return nil, 0, wrap(err)
	}
	return payments, total, nil
}

func (s *paymentService) ListRentalPayments(ctx context.Context, userID, rentalID int32) ([]domain.Payment, error) {
	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, wrap(err)
	}
	if rental.UserID != userID {
		return nil, domain.NotFound("rental %d not found", rentalID)
	}
	payments, err := s.paymentRepo.ListByRental(ctx, rentalID)
	if err != nil {
		return nil, wrap(err)
	}
	return payments, nil
}
