package booking

import (
	"context"

	"bookhive/models"
	"bookhive/utils"

	"go.uber.org/zap"
)

// RequestCancellation opens the super-admin escalation path: the booking stays
// active with a pending sub-record until an admin processes the request.
func (e *DefaultBookingEngine) RequestCancellation(ctx context.Context, bookingID string, by models.CancelActor, reason string) (*models.Booking, error) {
	if !by.Valid() {
		return nil, NewValidationError("unknown cancel actor %q", by)
	}
	if reason == "" {
		return nil, NewValidationError("a cancellation request requires a reason")
	}

	booking, err := e.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status.Terminal() {
		return nil, &InvalidStateError{Status: booking.Status}
	}
	if booking.CancellationRequest != nil && booking.CancellationRequest.Status == models.RequestPending {
		return nil, &ConflictError{Message: "a cancellation request is already pending for this booking"}
	}

	req := &models.CancellationRequest{
		Status:      models.RequestPending,
		RequestedAt: e.now(),
		RequestedBy: by,
		Reason:      reason,
	}
	if err := e.Repo.SetCancellationRequest(ctx, bookingID, req); err != nil {
		return nil, err
	}

	utils.GetLogger().Info("cancellation requested",
		zap.String("bookingID", bookingID), zap.String("requestedBy", string(by)))
	return e.Repo.GetByID(ctx, bookingID)
}

// ProcessCancellationRequest resolves a pending escalation. Approval runs the
// normal cancellation path, so the refund engine decides the outcome there
// too; rejection only closes the sub-record.
func (e *DefaultBookingEngine) ProcessCancellationRequest(ctx context.Context, bookingID string, approve bool, adminID, notes string) (*models.Booking, error) {
	if adminID == "" {
		return nil, NewValidationError("adminId is required")
	}

	booking, err := e.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	req := booking.CancellationRequest
	if req == nil || req.Status != models.RequestPending {
		return nil, NewValidationError("booking %s has no pending cancellation request", bookingID)
	}

	if approve {
		if _, err := e.CancelBooking(ctx, bookingID, req.RequestedBy, req.Reason); err != nil {
			return nil, err
		}
	}

	now := e.now()
	processed := *req
	processed.Status = models.RequestRejected
	if approve {
		processed.Status = models.RequestApproved
	}
	processed.ProcessedAt = &now
	processed.ProcessedBy = adminID
	processed.AdminNotes = notes
	if err := e.Repo.SetCancellationRequest(ctx, bookingID, &processed); err != nil {
		return nil, err
	}

	utils.GetLogger().Info("cancellation request processed",
		zap.String("bookingID", bookingID),
		zap.Bool("approved", approve),
		zap.String("processedBy", adminID))
	return e.Repo.GetByID(ctx, bookingID)
}
