package booking

import (
	"context"
	"sync"
	"time"

	bookingRepo "bookhive/database/repository/booking"
	"bookhive/models"

	"github.com/stretchr/testify/mock"
)

// Mock repositories

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, b *models.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindActiveByService(ctx context.Context, serviceID string) ([]models.Booking, error) {
	args := m.Called(ctx, serviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindByProvider(ctx context.Context, providerID string) ([]models.Booking, error) {
	args := m.Called(ctx, providerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *MockBookingRepository) ApplyCancellation(ctx context.Context, id string, outcome bookingRepo.CancellationOutcome) error {
	args := m.Called(ctx, id, outcome)
	return args.Error(0)
}

func (m *MockBookingRepository) MarkCompleted(ctx context.Context, id string, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockBookingRepository) SetCancellationRequest(ctx context.Context, id string, req *models.CancellationRequest) error {
	args := m.Called(ctx, id, req)
	return args.Error(0)
}

func (m *MockBookingRepository) FindActiveEndedBefore(ctx context.Context, date string) ([]models.Booking, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Booking), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// fakeBookingRepo is an in-memory store for concurrency tests, where the
// canned-response style of testify mocks cannot express read-your-writes.
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]*models.Booking)}
}

func (f *fakeBookingRepo) Create(ctx context.Context, b *models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *b
	f.bookings[b.ID] = &clone
	return nil
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	clone := *b
	return &clone, nil
}

func (f *fakeBookingRepo) FindActiveByService(ctx context.Context, serviceID string) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Booking
	for _, b := range f.bookings {
		if b.ServiceID == serviceID && b.Active() {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) FindByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Booking
	for _, b := range f.bookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) FindByProvider(ctx context.Context, providerID string) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Booking
	for _, b := range f.bookings {
		if b.ProviderID == providerID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) ApplyCancellation(ctx context.Context, id string, outcome bookingRepo.CancellationOutcome) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	if !b.Active() {
		return bookingRepo.ErrNotActive
	}
	at := outcome.At
	amount := outcome.RefundAmount
	pct := outcome.RefundPercentage
	b.Status = models.StatusCancelled
	b.CancelledAt = &at
	b.CancelledBy = outcome.By
	b.CancellationReason = outcome.Reason
	b.RefundAmount = &amount
	b.RefundPercentage = &pct
	return nil
}

func (f *fakeBookingRepo) MarkCompleted(ctx context.Context, id string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	if !b.Active() {
		return bookingRepo.ErrNotActive
	}
	b.Status = models.StatusCompleted
	b.CompletedAt = &at
	return nil
}

func (f *fakeBookingRepo) SetCancellationRequest(ctx context.Context, id string, req *models.CancellationRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	clone := *req
	b.CancellationRequest = &clone
	return nil
}

func (f *fakeBookingRepo) FindActiveEndedBefore(ctx context.Context, date string) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Booking
	for _, b := range f.bookings {
		if !b.Active() {
			continue
		}
		switch b.ServiceType {
		case models.ServiceTypeDateBased:
			if b.CheckOutDate < date {
				out = append(out, *b)
			}
		case models.ServiceTypeTimeBased:
			if b.TimeSlot != nil && b.TimeSlot.Date < date {
				out = append(out, *b)
			}
		}
	}
	return out, nil
}
