package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"scooter-rental-backend/internal/domain"
	"scooter-rental-backend/internal/repository"
)

type scooterRepository struct {
	db *sql.DB
}

func NewScooterRepository(db *sql.DB) repository.ScooterRepository {
	return &scooterRepository{db: db}
}

func (r *scooterRepository) Create(ctx context.Context, s *domain.Scooter) error {
	location, err := json.Marshal(s.Location)
	if err != nil {
		return err
	}
	query := `INSERT INTO scooters (model, status, battery_level, location, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	now := time.Now().UTC()
	return r.db.QueryRowContext(ctx, query, s.Model, s.Status, s.BatteryLevel, location, now, now).Scan(&s.ID)
}

func (r *scooterRepository) GetByID(ctx context.Context, id int32) (*domain.Scooter, error) {
	s := &domain.Scooter{}
	var location []byte
	query := `SELECT id, model, status, battery_level, location, created_on, updated_on FROM scooters WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&s.ID, &s.Model, &s.Status, &s.BatteryLevel, &location, &s.CreatedOn, &s.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound("scooter %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	if len(location) > 0 {
		if err := json.Unmarshal(location, &s.Location); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (r *scooterRepository) Update(ctx context.Context, s *domain.Scooter) error {
	location, err := json.Marshal(s.Location)
	if err != nil {
		return err
	}
	query := `UPDATE scooters SET model=$1, status=$2, battery_level=$3, location=$4, updated_on=$5 WHERE id=$6`
	res, err := r.db.ExecContext(ctx, query, s.Model, s.Status, s.BatteryLevel, location, time.Now().UTC(), s.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFound("scooter %d not found", s.ID)
	}
	return nil
}

func (r *scooterRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM scooters WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFound("scooter %d not found", id)
	}
	return nil
}

func (r *scooterRepository) List(ctx context.Context, status domain.ScooterStatus, page, pageSize int32) ([]domain.Scooter, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT id, model, status, battery_level, location, created_on, updated_on FROM scooters`
	args := []interface{}{}
	argIdx := 1
	if status != "" {
		query += fmt.Sprintf(" WHERE status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY id LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var scooters []domain.Scooter
	for rows.Next() {
		var s domain.Scooter
		var location []byte
		if err := rows.Scan(&s.ID, &s.Model, &s.Status, &s.BatteryLevel, &location, &s.CreatedOn, &s.UpdatedOn); err != nil {
			return nil, 0, err
		}
		if len(location) > 0 {
			if err := json.Unmarshal(location, &s.Location); err != nil {
				return nil, 0, err
			}
		}
		scooters = append(scooters, s)
	}
	return scooters, count, rows.Err()
}

