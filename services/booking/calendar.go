package booking

import (
	"context"
	"time"

	"bookhive/models"
	"bookhive/utils"

	"go.uber.org/zap"
)

// CalendarBooking is a month-view entry enriched with customer display fields.
type CalendarBooking struct {
	ID            string               `json:"id"`
	CheckInDate   string               `json:"checkInDate"`
	CheckOutDate  string               `json:"checkOutDate"`
	Status        models.BookingStatus `json:"status"`
	Guests        int                  `json:"guests"`
	CustomerName  string               `json:"customerName"`
	CustomerEmail string               `json:"customerEmail"`
}

// CalendarData is the month view for a service: the bookings touching the
// month and the dates still available. A date is available when it falls in
// the target month, is not covered by an active booking, and is not before the
// server's local today.
type CalendarData struct {
	Bookings       []CalendarBooking `json:"bookings"`
	AvailableDates []string          `json:"availableDates"`
}

func (e *DefaultBookingEngine) GetCalendarData(ctx context.Context, serviceID string, year, month int) (*CalendarData, error) {
	if serviceID == "" {
		return nil, NewValidationError("serviceId is required")
	}
	if month < 1 || month > 12 {
		return nil, NewValidationError("month %d is out of range", month)
	}

	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	monthEnd := monthStart.AddDate(0, 1, -1)

	bookings, err := e.Repo.FindActiveByService(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	logger := utils.GetLogger()
	blocked := make(map[string]struct{})
	monthBookings := []CalendarBooking{}
	for i := range bookings {
		b := &bookings[i]
		if b.ServiceType != models.ServiceTypeDateBased {
			continue
		}
		in, out, err := bookingRange(b)
		if err != nil {
			logger.Warn("skipping booking with unparseable dates",
				zap.String("bookingID", b.ID), zap.Error(err))
			continue
		}
		if !DateRangesOverlap(in, out, monthStart, monthEnd) {
			continue
		}
		for d := maxDay(in, monthStart); !d.After(minDay(out, monthEnd)); d = d.AddDate(0, 0, 1) {
			blocked[d.Format(dateLayout)] = struct{}{}
		}

		name, email := e.customerDisplay(ctx, b.UserID)
		monthBookings = append(monthBookings, CalendarBooking{
			ID:            b.ID,
			CheckInDate:   b.CheckInDate,
			CheckOutDate:  b.CheckOutDate,
			Status:        b.Status,
			Guests:        b.Guests,
			CustomerName:  name,
			CustomerEmail: email,
		})
	}

	today := dayFloor(e.now())
	available := []string{}
	for d := monthStart; !d.After(monthEnd); d = d.AddDate(0, 0, 1) {
		if d.Before(today) {
			continue
		}
		if _, taken := blocked[d.Format(dateLayout)]; taken {
			continue
		}
		available = append(available, d.Format(dateLayout))
	}

	return &CalendarData{Bookings: monthBookings, AvailableDates: available}, nil
}

// customerDisplay resolves display fields from the user reference, falling
// back to "Unknown" / empty when the user is missing.
func (e *DefaultBookingEngine) customerDisplay(ctx context.Context, userID string) (string, string) {
	if e.UserRepo == nil || userID == "" {
		return "Unknown", ""
	}
	user, err := e.UserRepo.GetByID(ctx, userID)
	if err != nil {
		return "Unknown", ""
	}
	name := user.Name
	if name == "" {
		name = "Unknown"
	}
	return name, user.Email
}
