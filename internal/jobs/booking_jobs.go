package jobs

import (
	"context"

	"rentflow-backend/internal/logger"
)

// ExpirePendingBookings transitions every PENDING booking whose expiry
// window has passed to EXPIRED. Re-running is harmless: an expired
// booking no longer matches the sweep.
func (jr *JobRunner) ExpirePendingBookings() {
	jr.runWithRecovery("ExpirePendingBookings", func() {
		ctx := context.Background()

		count, err := jr.services.Booking.ExpirePendingBookings(ctx)
		if err != nil {
			logger.Error("Failed to expire pending bookings", "error", err)
			return
		}
		logger.Info("Expired pending bookings", "count", count)
	})
}
