package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"scooter-rental-backend/internal/domain"
	"scooter-rental-backend/internal/repository"
)

type paymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

const paymentColumns = `id, user_id, rental_id, payment_card_id, amount, currency, status, payment_method, transaction_id, created_on, updated_on`

func scanPayment(row interface{ Scan(...interface{}) error }) (*domain.Payment, error) {
	p := &domain.Payment{}
	var cardID sql.NullInt32
	var transactionID sql.NullString
	err := row.Scan(&p.ID, &p.UserID, &p.RentalID, &cardID, &p.Amount, &p.Currency, &p.Status, &p.Method, &transactionID, &p.CreatedOn, &p.UpdatedOn)
	if err != nil {
		return nil, err
	}
	if cardID.Valid {
		p.PaymentCardID = &cardID.Int32
	}
	if transactionID.Valid {
		p.TransactionID = &transactionID.String
	}
	return p, nil
}

func (r *paymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	now := time.Now().UTC()
	query := `INSERT INTO payments (user_id, rental_id, payment_card_id, amount, currency, status, payment_method, transaction_id, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, p.UserID, p.RentalID, p.PaymentCardID, p.Amount, p.Currency, p.Status, p.Method, p.TransactionID, now, now).Scan(&p.ID)
	if err != nil {
		return err
	}
	p.CreatedOn = now
	p.UpdatedOn = now
	return nil
}

func (r *paymentRepository) GetByIDAndUser(ctx context.Context, id, userID int32) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1 AND user_id = $2`
	p, err := scanPayment(r.db.QueryRowContext(ctx, query, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound("payment %d not found", id)
	}
	return p, err
}

func (r *paymentRepository) UpdateStatus(ctx context.Context, id int32, status domain.PaymentStatus, transactionID *string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE payments SET status=$1, transaction_id=COALESCE($2, transaction_id), updated_on=$3 WHERE id=$4`,
		status, transactionID, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFound("payment %d not found", id)
	}
	return nil
}

// CompleteSettlement commits the payment completion and the rental finalize
// as one transaction. Active and completed rentals both move to paid; the
// scooter release is an idempotent CAS. A rental that is already paid still
// commits the payment update, so replayed settlements stay consistent.
func (r *paymentRepository) CompleteSettlement(ctx context.Context, paymentID, rentalID int32, transactionID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	res, err := tx.ExecContext(ctx,
		`UPDATE payments SET status=$1, transaction_id=$2, updated_on=$3 WHERE id=$4`,
		domain.PaymentStatusCompleted, transactionID, now, paymentID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFound("payment %d not found", paymentID)
	}

	var scooterID int32
	err = tx.QueryRowContext(ctx,
		`UPDATE rentals SET status=$1, updated_on=$2 WHERE id=$3 AND status IN ($4, $5) RETURNING scooter_id`,
		domain.RentalStatusPaid, now, rentalID, domain.RentalStatusActive, domain.RentalStatusCompleted).Scan(&scooterID)
	if errors.Is(err, sql.ErrNoRows) {
		return tx.Commit()
	}
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE scooters SET status=$1, updated_on=$2 WHERE id=$3 AND status=$4`,
		domain.ScooterStatusAvailable, now, scooterID, domain.ScooterStatusInUse)
	if err != nil {
		return err
	}
	return tx.Commit()
}

func (r *paymentRepository) ListByUser(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Payment, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM payments WHERE user_id = $1`, userID).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + paymentColumns + ` FROM payments WHERE user_id = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, userID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, 0, err
		}
		payments = append(payments, *p)
	}
	return payments, count, rows.Err()
}

func (r *paymentRepository) ListByRental(ctx context.Context, rentalID int32) ([]domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE rental_id = $1 ORDER BY created_on`
	rows, err := r.db.QueryContext(ctx, query, rentalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, *p)
	}
	return payments, rows.Err()
}

func (r *paymentRepository) ListCompletedInWindow(ctx context.Context, from, to time.Time) ([]domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE status = $1 AND created_on >= $2 AND created_on <= $3 ORDER BY created_on`
	rows, err := r.db.QueryContext(ctx, query, domain.PaymentStatusCompleted, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, *p)
	}
	return payments, rows.Err()
}
