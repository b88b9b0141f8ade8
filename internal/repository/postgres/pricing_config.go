package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"scooter-rental-backend/internal/domain"
	"scooter-rental-backend/internal/repository"
)

type pricingConfigRepository struct {
	db *sql.DB
}

func NewPricingConfigRepository(db *sql.DB) repository.PricingConfigRepository {
	return &pricingConfigRepository{db: db}
}

// CreateAndActivate deactivates every other config and inserts the new one as
// active inside a single transaction, preserving the at-most-one-active
// invariant under concurrent creates.
func (r *pricingConfigRepository) CreateAndActivate(ctx context.Context, cfg *domain.PricingConfig) error {
	discounts, err := json.Marshal(cfg.PeriodDiscounts)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `UPDATE pricing_configs SET is_active = FALSE WHERE is_active = TRUE`); err != nil {
		return err
	}

	err = tx.QueryRowContext(ctx,
		`INSERT INTO pricing_configs (base_hourly_rate, period_discounts, description, is_active, created_on)
		 VALUES ($1, $2, $3, TRUE, $4) RETURNING id`,
		cfg.BaseHourlyRate, discounts, cfg.Description, time.Now().UTC()).Scan(&cfg.ID)
	if err != nil {
		return err
	}
	cfg.IsActive = true

	return tx.Commit()
}

const pricingConfigColumns = `id, base_hourly_rate, period_discounts, description, is_active, created_on`

func scanPricingConfig(row interface{ Scan(...interface{}) error }) (*domain.PricingConfig, error) {
	cfg := &domain.PricingConfig{}
	var discounts []byte
	var description sql.NullString
	err := row.Scan(&cfg.ID, &cfg.BaseHourlyRate, &discounts, &description, &cfg.IsActive, &cfg.CreatedOn)
	if err != nil {
		return nil, err
	}
	cfg.Description = description.String
	if len(discounts) > 0 {
		if err := json.Unmarshal(discounts, &cfg.PeriodDiscounts); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func (r *pricingConfigRepository) GetActive(ctx context.Context) (*domain.PricingConfig, error) {
	query := `SELECT ` + pricingConfigColumns + ` FROM pricing_configs WHERE is_active = TRUE`
	cfg, err := scanPricingConfig(r.db.QueryRowContext(ctx, query))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.Conflict("no active pricing config")
	}
	return cfg, err
}

func (r *pricingConfigRepository) GetByID(ctx context.Context, id int32) (*domain.PricingConfig, error) {
	query := `SELECT ` + pricingConfigColumns + ` FROM pricing_configs WHERE id = $1`
	cfg, err := scanPricingConfig(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound("pricing config %d not found", id)
	}
	return cfg, err
}

func (r *pricingConfigRepository) Update(ctx context.Context, cfg *domain.PricingConfig) error {
	discounts, err := json.Marshal(cfg.PeriodDiscounts)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE pricing_configs SET base_hourly_rate=$1, period_discounts=$2, description=$3 WHERE id=$4`,
		cfg.BaseHourlyRate, discounts, cfg.Description, cfg.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFound("pricing config %d not found", cfg.ID)
	}
	return nil
}

func (r *pricingConfigRepository) List(ctx context.Context, page, pageSize int32) ([]domain.PricingConfig, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM pricing_configs`).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + pricingConfigColumns + ` FROM pricing_configs ORDER BY created_on DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var configs []domain.PricingConfig
	for rows.Next() {
		cfg, err := scanPricingConfig(rows)
		if err != nil {
			return nil, 0, err
		}
		configs = append(configs, *cfg)
	}
	return configs, count, rows.Err()
}
