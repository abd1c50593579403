package bookingRepo

import (
	"context"
	"errors"
	"time"

	"bookhive/models"
)

// ErrNotFound is returned when no booking matches the given id.
var ErrNotFound = errors.New("booking not found")

// ErrNotActive is returned when a state transition targets a booking that is
// already cancelled or completed.
var ErrNotActive = errors.New("booking is not active")

// CancellationOutcome holds the write-once fields persisted when a booking is
// cancelled.
type CancellationOutcome struct {
	At               time.Time
	By               models.CancelActor
	Reason           string
	RefundAmount     float64
	RefundPercentage int
}

// BookingRepository defines the interface for booking data access.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	FindActiveByService(ctx context.Context, serviceID string) ([]models.Booking, error)
	FindByUser(ctx context.Context, userID string) ([]models.Booking, error)
	FindByProvider(ctx context.Context, providerID string) ([]models.Booking, error)

	// ApplyCancellation atomically moves an active booking to cancelled and
	// records the outcome. Returns ErrNotActive if the booking exists but is
	// terminal, ErrNotFound if it does not exist.
	ApplyCancellation(ctx context.Context, id string, outcome CancellationOutcome) error

	// MarkCompleted atomically moves an active booking to completed. Same
	// error contract as ApplyCancellation.
	MarkCompleted(ctx context.Context, id string, at time.Time) error

	SetCancellationRequest(ctx context.Context, id string, req *models.CancellationRequest) error

	// FindActiveEndedBefore returns active bookings whose authoritative end
	// date is strictly before the given "YYYY-MM-DD" date.
	FindActiveEndedBefore(ctx context.Context, date string) ([]models.Booking, error)
}
