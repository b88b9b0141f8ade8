package jobs

import (
	"context"

	"scooter-rental-backend/internal/logger"
)

// SweepExpiredRentals force-completes active rentals whose booked period plus
// the grace window has elapsed, releasing their scooters.
func (jr *JobRunner) SweepExpiredRentals() {
	jr.runWithRecovery("SweepExpiredRentals", func() {
		ctx := context.Background()

		swept, err := jr.services.Rental.SweepExpired(ctx)
		if err != nil {
			logger.Error("Failed to sweep expired rentals", "error", err)
			return
		}
		logger.Info("Swept expired rentals", "count", swept)
	})
}
