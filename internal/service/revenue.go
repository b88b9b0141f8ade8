package service

import (
	"context"
	"time"

	"scooter-rental-backend/internal/domain"
	"scooter-rental-backend/internal/logger"
	"scooter-rental-backend/internal/repository"
)

type revenueService struct {
	revenueRepo repository.RevenueStatsRepository
	paymentRepo repository.PaymentRepository
	rentalRepo  repository.RentalRepository
}

func NewRevenueService(
	revenueRepo repository.RevenueStatsRepository,
	paymentRepo repository.PaymentRepository,
	rentalRepo repository.RentalRepository,
) RevenueService {
	return &revenueService{
		revenueRepo: revenueRepo,
		paymentRepo: paymentRepo,
		rentalRepo:  rentalRepo,
	}
}

// dayWindow truncates the date to UTC midnight and returns the half-open
// [start, next) window around it.
func dayWindow(date time.Time) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.Add(24 * time.Hour)
}

func (s *revenueService) Recompute(ctx context.Context, date time.Time) (*domain.RevenueStats, error) {
	start, end := dayWindow(date)
	payments, err := s.paymentRepo.ListCompletedInWindow(ctx, start, end)
	if err != nil {
		return nil, wrap(err)
	}

	stats := &domain.RevenueStats{
		Date:            start,
		RevenueByPeriod: map[domain.RentalPeriod]domain.PeriodRevenue{},
	}
	for _, payment := range payments {
		// Only payments whose rental reached a revenue-bearing terminal
		// state count; a charge against a still-open rental does not.
		rental, err := s.rentalRepo.GetByID(ctx, payment.RentalID)
		if err != nil {
			logger.Warn("revenue recompute skipped payment, rental lookup failed",
				"payment_id", payment.ID, "rental_id", payment.RentalID, "error", err)
			continue
		}
		if !rental.Finalized() {
			continue
		}

		stats.TotalRevenue += payment.Amount
		stats.RentalCount++

		// Buckets follow the wall-clock span of the rental, not the booked
		// tier. A rental without an end time keeps its tier label.
		bucket := rental.Period
		if rental.EndTime != nil {
			bucket = domain.ClassifyElapsed(rental.StartTime, *rental.EndTime)
		}
		pr := stats.RevenueByPeriod[bucket]
		pr.Count++
		pr.Revenue += payment.Amount
		stats.RevenueByPeriod[bucket] = pr
	}

	if err := s.revenueRepo.Upsert(ctx, stats); err != nil {
		return nil, wrap(err)
	}
	logger.Info("recomputed revenue stats",
		"date", start.Format("2006-01-02"),
		"total_revenue", stats.TotalRevenue,
		"rental_count", stats.RentalCount)
	return stats, nil
}

func (s *revenueService) Summarize(ctx context.Context, startDate, endDate time.Time) (*domain.RevenueSummary, error) {
	start, _ := dayWindow(startDate)
	end, _ := dayWindow(endDate)
	if end.Before(start) {
		return nil, domain.Validation("end date is before start date")
	}

	daily, err := s.revenueRepo.GetDateRange(ctx, start, end)
	if err != nil {
		return nil, wrap(err)
	}

	// Days without a stored row are computed on demand so the summary always
	// covers the full range.
	have := make(map[string]bool, len(daily))
	for _, day := range daily {
		have[day.Date.Format("2006-01-02")] = true
	}
	backfilled := false
	for d := start; !d.After(end); d = d.Add(24 * time.Hour) {
		if have[d.Format("2006-01-02")] {
			continue
		}
		if _, err := s.Recompute(ctx, d); err != nil {
			return nil, err
		}
		backfilled = true
	}
	if backfilled {
		daily, err = s.revenueRepo.GetDateRange(ctx, start, end)
		if err != nil {
			return nil, wrap(err)
		}
	}

	days := int32(end.Sub(start).Hours()/24) + 1
	summary := &domain.RevenueSummary{
		StartDate:       start,
		EndDate:         end,
		RevenueByPeriod: map[domain.RentalPeriod]domain.PeriodSummary{},
		DailyStats:      daily,
	}
	for _, day := range daily {
		summary.TotalRevenue += day.TotalRevenue
		summary.TotalRentals += day.RentalCount
		for period, pr := range day.RevenueByPeriod {
			ps := summary.RevenueByPeriod[period]
			ps.Count += pr.Count
			ps.Revenue += pr.Revenue
			summary.RevenueByPeriod[period] = ps
		}
	}
	summary.DailyAverage = summary.TotalRevenue / float64(days)
	for period, ps := range summary.RevenueByPeriod {
		ps.AverageDaily = ps.Revenue / float64(days)
		summary.RevenueByPeriod[period] = ps
	}
	return summary, nil
}

func (s *revenueService) WeeklySummary(ctx context.Context) (*domain.RevenueSummary, error) {
	today, _ := dayWindow(time.Now().UTC())
	return s.Summarize(ctx, today.AddDate(0, 0, -6), today)
}
