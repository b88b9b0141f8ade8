package postgres

import (
	"context"
	"database/sql"
	"errors"

	"scooter-rental-backend/internal/domain"
	"scooter-rental-backend/internal/repository"
)

type cardRepository struct {
	db *sql.DB
}

func NewCardRepository(db *sql.DB) repository.CardRepository {
	return &cardRepository{db: db}
}

const cardColumns = `id, user_id, card_holder_name, card_number_last4, encrypted_card_number, card_expiry_month, card_expiry_year, encrypted_cvv, card_type, is_default`

func scanCard(row interface{ Scan(...interface{}) error }) (*domain.PaymentCard, error) {
	c := &domain.PaymentCard{}
	err := row.Scan(&c.ID, &c.UserID, &c.CardHolderName, &c.CardNumberLast4, &c.EncryptedCardNumber,
		&c.ExpiryMonth, &c.ExpiryYear, &c.EncryptedCVV, &c.CardType, &c.IsDefault)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Create inserts the card. When makeDefault is set, the owner's other cards
// are demoted in the same transaction so the single-default invariant holds
// at every commit point.
func (r *cardRepository) Create(ctx context.Context, c *domain.PaymentCard, makeDefault bool) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if makeDefault {
		if _, err := tx.ExecContext(ctx,
			`UPDATE payment_cards SET is_default = FALSE WHERE user_id = $1`, c.UserID); err != nil {
			return err
		}
		c.IsDefault = true
	}

	err = tx.QueryRowContext(ctx,
		`INSERT INTO payment_cards (user_id, card_holder_name, card_number_last4, encrypted_card_number, card_expiry_month, card_expiry_year, encrypted_cvv, card_type, is_default)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`,
		c.UserID, c.CardHolderName, c.CardNumberLast4, c.EncryptedCardNumber,
		c.ExpiryMonth, c.ExpiryYear, c.EncryptedCVV, c.CardType, c.IsDefault).Scan(&c.ID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *cardRepository) GetByIDAndUser(ctx context.Context, id, userID int32) (*domain.PaymentCard, error) {
	query := `SELECT ` + cardColumns + ` FROM payment_cards WHERE id = $1 AND user_id = $2`
	c, err := scanCard(r.db.QueryRowContext(ctx, query, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound("payment card %d not found", id)
	}
	return c, err
}

func (r *cardRepository) GetDefault(ctx context.Context, userID int32) (*domain.PaymentCard, error) {
	query := `SELECT ` + cardColumns + ` FROM payment_cards WHERE user_id = $1 AND is_default = TRUE`
	c, err := scanCard(r.db.QueryRowContext(ctx, query, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound("no default card for user %d", userID)
	}
	return c, err
}

func (r *cardRepository) ListByUser(ctx context.Context, userID int32) ([]domain.PaymentCard, error) {
	query := `SELECT ` + cardColumns + ` FROM payment_cards WHERE user_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []domain.PaymentCard
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, *c)
	}
	return cards, rows.Err()
}

func (r *cardRepository) Update(ctx context.Context, c *domain.PaymentCard, makeDefault bool) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if makeDefault {
		if _, err := tx.ExecContext(ctx,
			`UPDATE payment_cards SET is_default = FALSE WHERE user_id = $1 AND id <> $2`, c.UserID, c.ID); err != nil {
			return err
		}
		c.IsDefault = true
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE payment_cards SET card_holder_name=$1, card_expiry_month=$2, card_expiry_year=$3, is_default=$4 WHERE id=$5 AND user_id=$6`,
		c.CardHolderName, c.ExpiryMonth, c.ExpiryYear, c.IsDefault, c.ID, c.UserID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFound("payment card %d not found", c.ID)
	}

	return tx.Commit()
}

// Delete removes the card and, when it was the default and the owner still
// has cards left, promotes one of the remaining cards inside the same
// transaction.
func (r *cardRepository) Delete(ctx context.Context, id, userID int32) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var wasDefault bool
	err = tx.QueryRowContext(ctx,
		`DELETE FROM payment_cards WHERE id = $1 AND user_id = $2 RETURNING is_default`, id, userID).Scan(&wasDefault)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFound("payment card %d not found", id)
	}
	if err != nil {
		return err
	}

	if wasDefault {
		_, err = tx.ExecContext(ctx,
			`UPDATE payment_cards SET is_default = TRUE
			 WHERE id = (SELECT id FROM payment_cards WHERE user_id = $1 ORDER BY id LIMIT 1)`, userID)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}
