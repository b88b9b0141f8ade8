package service

import (
	"context"

	"scooter-rental-backend/internal/domain"
	"scooter-rental-backend/internal/repository"
	"scooter-rental-backend/internal/security"
	"scooter-rental-backend/internal/utils"
)

type cardService struct {
	cardRepo repository.CardRepository
	cipher   *security.CardCipher
}

func NewCardService(cardRepo repository.CardRepository, cipher *security.CardCipher) CardVault {
	return &cardService{cardRepo: cardRepo, cipher: cipher}
}

func (s *cardService) AddCard(ctx context.Context, userID int32, input *domain.CardInput) (*domain.PaymentCard, error) {
	number := utils.NormalizeCardNumber(input.CardNumber)
	if err := utils.ValidateCard(number, input.ExpiryMonth, input.ExpiryYear, input.CVV); err != nil {
		return nil, domain.Validation("%s", err.Error())
	}

	encNumber, err := s.cipher.Encrypt(number)
	if err != nil {
		return nil, domain.Internal(err)
	}
	encCVV, err := s.cipher.Encrypt(input.CVV)
	if err != nil {
		return nil, domain.Internal(err)
	}

	existing, err := s.cardRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, wrap(err)
	}

	card := &domain.PaymentCard{
		UserID:              userID,
		CardHolderName:      input.CardHolderName,
		CardNumberLast4:     number[len(number)-4:],
		EncryptedCardNumber: encNumber,
		ExpiryMonth:         input.ExpiryMonth,
		ExpiryYear:          input.ExpiryYear,
		EncryptedCVV:        encCVV,
		CardType:            utils.ClassifyCardNetwork(number),
	}
	// The owner's first card is always promoted to default.
	makeDefault := input.IsDefault || len(existing) == 0
	if err := s.cardRepo.Create(ctx, card, makeDefault); err != nil {
		return nil, wrap(err)
	}
	return card, nil
}

func (s *cardService) GetCard(ctx context.Context, userID, cardID int32) (*domain.PaymentCard, error) {
	card, err := s.cardRepo.GetByIDAndUser(ctx, cardID, userID)
	if err != nil {
		return nil, wrap(err)
	}
	return card, nil
}

func (s *cardService) UpdateCard(ctx context.Context, userID, cardID int32, patch *domain.CardPatch) (*domain.PaymentCard, error) {
	card, err := s.cardRepo.GetByIDAndUser(ctx, cardID, userID)
	if err != nil {
		return nil, wrap(err)
	}

	if patch.CardHolderName != nil {
		card.CardHolderName = *patch.CardHolderName
	}
	if patch.ExpiryMonth != nil {
		card.ExpiryMonth = *patch.ExpiryMonth
	}
	if patch.ExpiryYear != nil {
		card.ExpiryYear = *patch.ExpiryYear
	}
	if patch.ExpiryMonth != nil || patch.ExpiryYear != nil {
		if err := utils.ValidateExpiry(card.ExpiryMonth, card.ExpiryYear); err != nil {
			return nil, domain.Validation("%s", err.Error())
		}
	}

	makeDefault := false
	if patch.IsDefault != nil {
		if !*patch.IsDefault && card.IsDefault {
			return nil, domain.Validation("cannot unset the default card; set another card as default instead")
		}
		makeDefault = *patch.IsDefault && !card.IsDefault
	}

	if err := s.cardRepo.Update(ctx, card, makeDefault); err != nil {
		return nil, wrap(err)
	}
	if makeDefault {
		card.IsDefault = true
	}
	return card, nil
}

func (s *cardService) RemoveCard(ctx context.Context, userID, cardID int32) error {
	if err := s.cardRepo.Delete(ctx, cardID, userID); err != nil {
		return wrap(err)
	}
	return nil
}

func (s *cardService) ListCards(ctx context.Context, userID int32) ([]domain.PaymentCard, error) {
	cards, err := s.cardRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, wrap(err)
	}
	return cards, nil
}

func (s *cardService) GetDefaultCard(ctx context.Context, userID int32) (*domain.PaymentCard, error) {
	card, err := s.cardRepo.GetDefault(ctx, userID)
	if err != nil {
		return nil, wrap(err)
	}
	return card, nil
}

// DecryptCardNumber recovers the full card number for a settlement attempt.
// Only the payment service holds the CardVault view.
func (s *cardService) DecryptCardNumber(ctx context.Context, userID, cardID int32) (string, error) {
	card, err := s.cardRepo.GetByIDAndUser(ctx, cardID, userID)
	if err != nil {
		return "", wrap(err)
	}
	number, err := s.cipher.Decrypt(card.EncryptedCardNumber)
	if err != nil {
		return "", domain.Internal(err)
	}
	return number, nil
}
