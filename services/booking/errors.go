package booking

import (
	"fmt"

	"bookhive/models"
)

// ValidationError rejects malformed input before any store access.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func NewValidationError(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ConflictError signals that an overlapping active booking blocked the
// requested operation. Conflicts carries a count only, never the identities of
// other customers' bookings.
type ConflictError struct {
	Message   string
	Conflicts int
}

func (e *ConflictError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("requested range conflicts with %d existing booking(s)", e.Conflicts)
}

// InvalidStateError signals a lifecycle transition on a terminal booking.
type InvalidStateError struct {
	Status models.BookingStatus
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("booking is already %s", e.Status)
}
