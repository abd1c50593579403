package booking

import (
	"context"

	"bookhive/utils"

	"go.uber.org/zap"
)

// CompleteDueBookings transitions active bookings whose service date has fully
// passed to completed, and reports how many it moved. Individual failures are
// logged and skipped so one bad record does not stall the sweep.
func (e *DefaultBookingEngine) CompleteDueBookings(ctx context.Context) (int, error) {
	today := dayFloor(e.now()).Format(dateLayout)
	due, err := e.Repo.FindActiveEndedBefore(ctx, today)
	if err != nil {
		return 0, err
	}

	logger := utils.GetLogger()
	completed := 0
	for i := range due {
		if err := e.Repo.MarkCompleted(ctx, due[i].ID, e.now()); err != nil {
			logger.Warn("completion sweep: failed to complete booking",
				zap.String("bookingID", due[i].ID), zap.Error(err))
			continue
		}
		e.invalidateAvailabilityCache(ctx, due[i].ServiceID)
		completed++
	}
	if completed > 0 {
		logger.Info("completion sweep finished", zap.Int("completed", completed))
	}
	return completed, nil
}
