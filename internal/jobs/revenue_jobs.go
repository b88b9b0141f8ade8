package jobs

import (
	"context"
	"time"

	"scooter-rental-backend/internal/logger"
)

// RecomputeRevenueStats re-derives the daily revenue rollups for yesterday
// and today. Recomputation is idempotent, so re-running after late payments
// simply overwrites the rows.
func (jr *JobRunner) RecomputeRevenueStats() {
	jr.runWithRecovery("RecomputeRevenueStats", func() {
		ctx := context.Background()

		today := time.Now().UTC()
		for _, date := range []time.Time{today.AddDate(0, 0, -1), today} {
			stats, err := jr.services.Revenue.Recompute(ctx, date)
			if err != nil {
				logger.Error("Failed to recompute revenue stats", "date", date.Format("2006-01-02"), "error", err)
				continue
			}
			logger.Info("Revenue stats recomputed",
				"date", stats.Date.Format("2006-01-02"),
				"total_revenue", stats.TotalRevenue,
				"rental_count", stats.RentalCount)
		}
	})
}
