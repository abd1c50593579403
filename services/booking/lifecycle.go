package booking

import (
	"context"
	"errors"

	bookingRepo "bookhive/database/repository/booking"
	"bookhive/models"
	"bookhive/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateBooking validates the input, re-checks availability under the
// per-service lock, and inserts the booking. Holding the lock across the
// check and the insert is what prevents two concurrent requests from
// double-booking the same range.
func (e *DefaultBookingEngine) CreateBooking(ctx context.Context, input models.CreateBookingInput) (*models.Booking, error) {
	if err := validateCreateInput(&input); err != nil {
		return nil, err
	}

	lock := e.locks.get(input.ServiceID)
	lock.Lock()
	defer lock.Unlock()

	var result *AvailabilityResult
	var err error
	switch input.ServiceType {
	case models.ServiceTypeDateBased:
		result, err = e.CheckAvailability(ctx, input.ServiceID, input.CheckInDate, input.CheckOutDate)
	case models.ServiceTypeTimeBased:
		result, err = e.CheckTimeSlotAvailability(ctx, input.ServiceID, *input.TimeSlot)
	}
	if err != nil {
		return nil, err
	}
	if !result.Available {
		return nil, &ConflictError{Conflicts: result.Conflicts}
	}

	booking := &models.Booking{
		ID:              uuid.New().String(),
		ServiceID:       input.ServiceID,
		UserID:          input.UserID,
		ProviderID:      input.ProviderID,
		ServiceName:     input.ServiceName,
		ServiceLocation: input.ServiceLocation,
		ServiceImages:   input.ServiceImages,
		ServiceType:     input.ServiceType,
		Guests:          input.Guests,
		TotalAmount:     input.TotalAmount,
		Status:          models.StatusConfirmed,
		Policy:          input.Policy,
		CreatedAt:       e.now(),
	}
	switch input.ServiceType {
	case models.ServiceTypeDateBased:
		booking.CheckInDate = input.CheckInDate
		booking.CheckOutDate = input.CheckOutDate
	case models.ServiceTypeTimeBased:
		slot := *input.TimeSlot
		booking.TimeSlot = &slot
	}

	if err := e.Repo.Create(ctx, booking); err != nil {
		return nil, err
	}
	e.invalidateAvailabilityCache(ctx, input.ServiceID)

	utils.GetLogger().Info("booking created",
		zap.String("bookingID", booking.ID),
		zap.String("serviceID", booking.ServiceID),
		zap.String("serviceType", string(booking.ServiceType)))
	return booking, nil
}

// CancelBooking moves an active booking to cancelled, computing and persisting
// the refund outcome exactly once.
func (e *DefaultBookingEngine) CancelBooking(ctx context.Context, bookingID string, by models.CancelActor, reason string) (*models.Booking, error) {
	if !by.Valid() {
		return nil, NewValidationError("unknown cancel actor %q", by)
	}

	booking, err := e.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	lock := e.locks.get(booking.ServiceID)
	lock.Lock()
	defer lock.Unlock()

	if booking.Status.Terminal() {
		return nil, &InvalidStateError{Status: booking.Status}
	}

	now := e.now()
	quote, err := CalculateRefund(booking, now)
	if err != nil {
		return nil, err
	}

	outcome := bookingRepo.CancellationOutcome{
		At:               now,
		By:               by,
		Reason:           reason,
		RefundAmount:     quote.RefundAmount,
		RefundPercentage: quote.RefundPercentage,
	}
	if err := e.Repo.ApplyCancellation(ctx, bookingID, outcome); err != nil {
		if errors.Is(err, bookingRepo.ErrNotActive) {
			return nil, e.staleStateError(ctx, bookingID, booking.Status)
		}
		return nil, err
	}
	e.invalidateAvailabilityCache(ctx, booking.ServiceID)

	utils.GetLogger().Info("booking cancelled",
		zap.String("bookingID", bookingID),
		zap.String("cancelledBy", string(by)),
		zap.Int("refundPercentage", quote.RefundPercentage),
		zap.Float64("refundAmount", quote.RefundAmount))
	return e.Repo.GetByID(ctx, bookingID)
}

// CompleteBooking moves an active booking to completed.
func (e *DefaultBookingEngine) CompleteBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	booking, err := e.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	lock := e.locks.get(booking.ServiceID)
	lock.Lock()
	defer lock.Unlock()

	if booking.Status.Terminal() {
		return nil, &InvalidStateError{Status: booking.Status}
	}

	if err := e.Repo.MarkCompleted(ctx, bookingID, e.now()); err != nil {
		if errors.Is(err, bookingRepo.ErrNotActive) {
			return nil, e.staleStateError(ctx, bookingID, booking.Status)
		}
		return nil, err
	}
	e.invalidateAvailabilityCache(ctx, booking.ServiceID)

	utils.GetLogger().Info("booking completed", zap.String("bookingID", bookingID))
	return e.Repo.GetByID(ctx, bookingID)
}

func (e *DefaultBookingEngine) GetBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	return e.Repo.GetByID(ctx, bookingID)
}

func (e *DefaultBookingEngine) ListUserBookings(ctx context.Context, userID string) ([]models.Booking, error) {
	return e.Repo.FindByUser(ctx, userID)
}

func (e *DefaultBookingEngine) ListProviderBookings(ctx context.Context, providerID string) ([]models.Booking, error) {
	return e.Repo.FindByProvider(ctx, providerID)
}

// staleStateError refetches the booking so the reported terminal status is the
// current one, not the snapshot taken before the transition raced.
func (e *DefaultBookingEngine) staleStateError(ctx context.Context, bookingID string, fallback models.BookingStatus) error {
	status := fallback
	if fresh, err := e.Repo.GetByID(ctx, bookingID); err == nil {
		status = fresh.Status
	}
	return &InvalidStateError{Status: status}
}

// validateCreateInput enforces the per-serviceType field requirements before
// any store access.
func validateCreateInput(input *models.CreateBookingInput) error {
	if input.ServiceID == "" {
		return NewValidationError("serviceId is required")
	}
	if input.UserID == "" {
		return NewValidationError("userId is required")
	}
	if !input.ServiceType.Valid() {
		return NewValidationError("unknown serviceType %q", input.ServiceType)
	}
	if input.Guests < 1 {
		return NewValidationError("guests must be at least 1")
	}
	if input.TotalAmount < 0 {
		return NewValidationError("totalAmount must not be negative")
	}
	if input.Policy == "" {
		input.Policy = models.Policy24Hours
	} else if !input.Policy.Valid() {
		return NewValidationError("unknown cancellationPolicy %q", input.Policy)
	}

	switch input.ServiceType {
	case models.ServiceTypeDateBased:
		in, err := parseDay(input.CheckInDate)
		if err != nil {
			return NewValidationError("invalid checkInDate %q", input.CheckInDate)
		}
		out, err := parseDay(input.CheckOutDate)
		if err != nil {
			return NewValidationError("invalid checkOutDate %q", input.CheckOutDate)
		}
		if out.Before(in) {
			return NewValidationError("checkOutDate %s is before checkInDate %s", input.CheckOutDate, input.CheckInDate)
		}
	case models.ServiceTypeTimeBased:
		if err := validateTimeSlot(input.TimeSlot); err != nil {
			return err
		}
	}
	return nil
}
