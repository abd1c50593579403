package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"bookhive/models"
	"bookhive/utils"

	"go.uber.org/zap"
)

const bookedDatesCacheTTL = 5 * time.Minute

// AvailabilityResult reports whether a requested range is free and how many
// active bookings conflict with it. Conflicting bookings are counted, never
// identified.
type AvailabilityResult struct {
	Available bool `json:"available"`
	Conflicts int  `json:"conflicts"`
}

// CheckAvailability reports whether the closed date range [checkIn, checkOut]
// is free of active date-based bookings for the service.
func (e *DefaultBookingEngine) CheckAvailability(ctx context.Context, serviceID, checkIn, checkOut string) (*AvailabilityResult, error) {
	if serviceID == "" {
		return nil, NewValidationError("serviceId is required")
	}
	in, err := parseDay(checkIn)
	if err != nil {
		return nil, NewValidationError("invalid check-in date %q", checkIn)
	}
	out, err := parseDay(checkOut)
	if err != nil {
		return nil, NewValidationError("invalid check-out date %q", checkOut)
	}
	if out.Before(in) {
		return nil, NewValidationError("check-out date %s is before check-in date %s", checkOut, checkIn)
	}

	bookings, err := e.Repo.FindActiveByService(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	logger := utils.GetLogger()
	conflicts := 0
	for i := range bookings {
		b := &bookings[i]
		if b.ServiceType != models.ServiceTypeDateBased {
			continue
		}
		bIn, bOut, err := bookingRange(b)
		if err != nil {
			logger.Warn("skipping booking with unparseable dates",
				zap.String("bookingID", b.ID), zap.Error(err))
			continue
		}
		if DateRangesOverlap(in, out, bIn, bOut) {
			conflicts++
		}
	}
	return &AvailabilityResult{Available: conflicts == 0, Conflicts: conflicts}, nil
}

// CheckTimeSlotAvailability reports whether the requested slot is free of
// active time-based bookings on the same date.
func (e *DefaultBookingEngine) CheckTimeSlotAvailability(ctx context.Context, serviceID string, slot models.TimeSlot) (*AvailabilityResult, error) {
	if serviceID == "" {
		return nil, NewValidationError("serviceId is required")
	}
	if err := validateTimeSlot(&slot); err != nil {
		return nil, err
	}

	bookings, err := e.Repo.FindActiveByService(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	conflicts := 0
	for i := range bookings {
		b := &bookings[i]
		if b.ServiceType != models.ServiceTypeTimeBased || b.TimeSlot == nil {
			continue
		}
		if b.TimeSlot.Date != slot.Date {
			continue
		}
		if TimeSlotsOverlap(slot.StartTime, slot.EndTime, b.TimeSlot.StartTime, b.TimeSlot.EndTime) {
			conflicts++
		}
	}
	return &AvailabilityResult{Available: conflicts == 0, Conflicts: conflicts}, nil
}

// GetBookedDates flattens all active date ranges for the service into a
// deduplicated, sorted list of ISO date strings.
func (e *DefaultBookingEngine) GetBookedDates(ctx context.Context, serviceID string) ([]string, error) {
	if serviceID == "" {
		return nil, NewValidationError("serviceId is required")
	}

	cacheKey := bookedDatesKey(serviceID)
	if e.Cache != nil {
		if cached, err := e.Cache.Get(ctx, cacheKey).Result(); err == nil {
			var dates []string
			if err := json.Unmarshal([]byte(cached), &dates); err == nil {
				return dates, nil
			}
		}
	}

	bookings, err := e.Repo.FindActiveByService(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	logger := utils.GetLogger()
	seen := make(map[string]struct{})
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
		for d := in; !d.After(out); d = d.AddDate(0, 0, 1) {
			seen[d.Format(dateLayout)] = struct{}{}
		}
	}

	dates := make([]string, 0, len(seen))
	for date := range seen {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	if e.Cache != nil {
		if data, err := json.Marshal(dates); err == nil {
			if err := e.Cache.Set(ctx, cacheKey, data, bookedDatesCacheTTL).Err(); err != nil {
				logger.Warn("failed to cache booked dates", zap.String("serviceID", serviceID), zap.Error(err))
			}
		}
	}
	return dates, nil
}

func bookedDatesKey(serviceID string) string {
	return fmt.Sprintf("bookhive:booked_dates:%s", serviceID)
}

// invalidateAvailabilityCache drops cached booked dates after a write.
func (e *DefaultBookingEngine) invalidateAvailabilityCache(ctx context.Context, serviceID string) {
	if e.Cache == nil {
		return
	}
	if err := e.Cache.Del(ctx, bookedDatesKey(serviceID)).Err(); err != nil {
		utils.GetLogger().Warn("failed to invalidate booked dates cache",
			zap.String("serviceID", serviceID), zap.Error(err))
	}
}

// bookingRange parses the authoritative date range of a date-based booking.
func bookingRange(b *models.Booking) (time.Time, time.Time, error) {
	in, err := parseDay(b.CheckInDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid checkInDate %q: %w", b.CheckInDate, err)
	}
	out, err := parseDay(b.CheckOutDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid checkOutDate %q: %w", b.CheckOutDate, err)
	}
	return in, out, nil
}

// validateTimeSlot checks the date and the "HH:mm" bounds of a slot.
func validateTimeSlot(slot *models.TimeSlot) error {
	if slot == nil {
		return NewValidationError("timeSlot is required")
	}
	if _, err := parseDay(slot.Date); err != nil {
		return NewValidationError("invalid timeSlot date %q", slot.Date)
	}
	if _, err := time.Parse(timeLayout, slot.StartTime); err != nil {
		return NewValidationError("invalid timeSlot start time %q", slot.StartTime)
	}
	if _, err := time.Parse(timeLayout, slot.EndTime); err != nil {
		return NewValidationError("invalid timeSlot end time %q", slot.EndTime)
	}
	if slot.EndTime <= slot.StartTime {
		return NewValidationError("timeSlot end time %s must be after start time %s", slot.EndTime, slot.StartTime)
	}
	return nil
}
