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

type revenueStatsRepository struct {
	db *sql.DB
}

func NewRevenueStatsRepository(db *sql.DB) repository.RevenueStatsRepository {
	return &revenueStatsRepository{db: db}
}

// Upsert overwrites the stats row for its date. The unique date key plus
// DO UPDATE gives last-writer-wins, which is safe because recompute is a
// pure re-derivation of the same underlying records.
func (r *revenueStatsRepository) Upsert(ctx context.Context, s *domain.RevenueStats) error {
	byPeriod, err := json.Marshal(s.RevenueByPeriod)
	if err != nil {
		return err
	}
	query := `INSERT INTO revenue_stats (date, total_revenue, rental_count, revenue_by_period, created_on)
	          VALUES ($1, $2, $3, $4, $5)
	          ON CONFLICT (date) DO UPDATE
	          SET total_revenue = EXCLUDED.total_revenue,
	              rental_count = EXCLUDED.rental_count,
	              revenue_by_period = EXCLUDED.revenue_by_period
	          RETURNING id`
	return r.db.QueryRowContext(ctx, query, s.Date, s.TotalRevenue, s.RentalCount, byPeriod, time.Now().UTC()).Scan(&s.ID)
}

const revenueColumns = `id, date, total_revenue, rental_count, revenue_by_period, created_on`

func scanRevenueStats(row interface{ Scan(...interface{}) error }) (*domain.RevenueStats, error) {
	s := &domain.RevenueStats{}
	var byPeriod []byte
	err := row.Scan(&s.ID, &s.Date, &s.TotalRevenue, &s.RentalCount, &byPeriod, &s.CreatedOn)
	if err != nil {
		return nil, err
	}
	if len(byPeriod) > 0 {
		if err := json.Unmarshal(byPeriod, &s.RevenueByPeriod); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (r *revenueStatsRepository) GetByDate(ctx context.Context, date time.Time) (*domain.RevenueStats, error) {
	query := `SELECT ` + revenueColumns + ` FROM revenue_stats WHERE date = $1`
	s, err := scanRevenueStats(r.db.QueryRowContext(ctx, query, date))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound("no revenue stats for %s", date.Format("2006-01-02"))
	}
	return s, err
}

func (r *revenueStatsRepository) GetDateRange(ctx context.Context, start, end time.Time) ([]domain.RevenueStats, error) {
	query := `SELECT ` + revenueColumns + ` FROM revenue_stats WHERE date >= $1 AND date <= $2 ORDER BY date`
	rows, err := r.db.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []domain.RevenueStats
	for rows.Next() {
		s, err := scanRevenueStats(rows)
		if err != nil {
			return nil, err
		}
		stats = append(stats, *s)
	}
	return stats, rows.Err()
}
