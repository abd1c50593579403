package booking

import (
	"context"
	"time"

	bookingRepo "bookhive/database/repository/booking"
	userRepo "bookhive/database/repository/user"
	"bookhive/models"

	"github.com/go-redis/redis/v8"
)

// BookingService defines the operations the request layer consumes.
type BookingService interface {
	CheckAvailability(ctx context.Context, serviceID, checkIn, checkOut string) (*AvailabilityResult, error)
	CheckTimeSlotAvailability(ctx context.Context, serviceID string, slot models.TimeSlot) (*AvailabilityResult, error)
	GetBookedDates(ctx context.Context, serviceID string) ([]string, error)
	GetCalendarData(ctx context.Context, serviceID string, year, month int) (*CalendarData, error)

	CreateBooking(ctx context.Context, input models.CreateBookingInput) (*models.Booking, error)
	CancelBooking(ctx context.Context, bookingID string, by models.CancelActor, reason string) (*models.Booking, error)
	CompleteBooking(ctx context.Context, bookingID string) (*models.Booking, error)

	GetBooking(ctx context.Context, bookingID string) (*models.Booking, error)
	ListUserBookings(ctx context.Context, userID string) ([]models.Booking, error)
	ListProviderBookings(ctx context.Context, providerID string) ([]models.Booking, error)

	RequestCancellation(ctx context.Context, bookingID string, by models.CancelActor, reason string) (*models.Booking, error)
	ProcessCancellationRequest(ctx context.Context, bookingID string, approve bool, adminID, notes string) (*models.Booking, error)

	CompleteDueBookings(ctx context.Context) (int, error)
}

// DefaultBookingEngine implements BookingService on top of the booking store.
type DefaultBookingEngine struct {
	Repo     bookingRepo.BookingRepository
	UserRepo userRepo.UserRepository

	// Cache, when set, backs GetBookedDates with a short-TTL Redis entry.
	Cache *redis.Client

	// Now is overridable for tests; defaults to time.Now.
	Now func() time.Time

	locks *serviceLocks
}

// NewDefaultBookingEngine wires a booking engine.
func NewDefaultBookingEngine(repo bookingRepo.BookingRepository, users userRepo.UserRepository, cache *redis.Client) *DefaultBookingEngine {
	return &DefaultBookingEngine{
		Repo:     repo,
		UserRepo: users,
		Cache:    cache,
		locks:    newServiceLocks(),
	}
}

func (e *DefaultBookingEngine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}
