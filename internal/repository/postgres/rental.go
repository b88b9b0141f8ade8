package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"scooter-rental-backend/internal/domain"
	"scooter-rental-backend/internal/repository"
)

type rentalRepository struct {
	db *sql.DB
}

func NewRentalRepository(db *sql.DB) repository.RentalRepository {
	return &rentalRepository{db: db}
}

const rentalColumns = `id, user_id, scooter_id, rental_period, start_time, end_time, status, cost, created_on, updated_on`

func scanRental(row interface{ Scan(...interface{}) error }) (*domain.Rental, error) {
	rt := &domain.Rental{}
	var endTime sql.NullTime
	err := row.Scan(&rt.ID, &rt.UserID, &rt.ScooterID, &rt.Period, &rt.StartTime, &endTime, &rt.Status, &rt.Cost, &rt.CreatedOn, &rt.UpdatedOn)
	if err != nil {
		return nil, err
	}
	if endTime.Valid {
		rt.EndTime = &endTime.Time
	}
	return rt, nil
}

// CreateWithScooter reserves the scooter and inserts the rental in one
// transaction. The reserve is a compare-and-set on status=available, so two
// concurrent creates for the same scooter cannot both commit.
func (r *rentalRepository) CreateWithScooter(ctx context.Context, rt *domain.Rental) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE scooters SET status=$1, updated_on=$2 WHERE id=$3 AND status=$4`,
		domain.ScooterStatusInUse, time.Now().UTC(), rt.ScooterID, domain.ScooterStatusAvailable)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var exists bool
		if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM scooters WHERE id = $1)`, rt.ScooterID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return domain.NotFound("scooter %d not found", rt.ScooterID)
		}
		return domain.Conflict("scooter %d is not available", rt.ScooterID)
	}

	now := time.Now().UTC()
	err = tx.QueryRowContext(ctx,
		`INSERT INTO rentals (user_id, scooter_id, rental_period, start_time, end_time, status, cost, created_on, updated_on)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`,
		rt.UserID, rt.ScooterID, rt.Period, rt.StartTime, rt.EndTime, rt.Status, rt.Cost, now, now).Scan(&rt.ID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *rentalRepository) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1`
	rt, err := scanRental(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound("rental %d not found", id)
	}
	return rt, err
}

// FinalizeAndRelease moves an active rental to a terminal status and frees
// the scooter in one transaction. The status guard makes racing finalizers
// (renter end vs. expiry sweep) commute: the loser sees zero rows and no-ops.
func (r *rentalRepository) FinalizeAndRelease(ctx context.Context, id int32, status domain.RentalStatus, endTime time.Time) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var scooterID int32
	err = tx.QueryRowContext(ctx,
		`UPDATE rentals SET status=$1, end_time=$2, updated_on=$3 WHERE id=$4 AND status=$5 RETURNING scooter_id`,
		status, endTime, time.Now().UTC(), id, domain.RentalStatusActive).Scan(&scooterID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE scooters SET status=$1, updated_on=$2 WHERE id=$3 AND status=$4`,
		domain.ScooterStatusAvailable, time.Now().UTC(), scooterID, domain.ScooterStatusInUse)
	if err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

func (r *rentalRepository) ListByUser(ctx context.Context, userID int32, status domain.RentalStatus, page, pageSize int32) ([]domain.Rental, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE user_id = $1`
	args := []interface{}{userID}
	argIdx := 2
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		rt, err := scanRental(rows)
		if err != nil {
			return nil, 0, err
		}
		rentals = append(rentals, *rt)
	}
	return rentals, count, rows.Err()
}

func (r *rentalRepository) ListExpiredActive(ctx context.Context, cutoff time.Time) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE status = $1 AND start_time <= $2`
	rows, err := r.db.QueryContext(ctx, query, domain.RentalStatusActive, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		rt, err := scanRental(rows)
		if err != nil {
			return nil, err
		}
		rentals = append(rentals, *rt)
	}
	return rentals, rows.Err()
}

func (r *rentalRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM rentals WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFound("rental %d not found", id)
	}
	return nil
}
