package booking

import (
	"context"
	"sync"
	"testing"

	"bookhive/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDateInput(serviceID string) models.CreateBookingInput {
	return models.CreateBookingInput{
		ServiceID:    serviceID,
		UserID:       "user-1",
		ProviderID:   "prov-1",
		ServiceName:  "Lakeside Cabin",
		ServiceType:  models.ServiceTypeDateBased,
		CheckInDate:  "2026-09-10",
		CheckOutDate: "2026-09-14",
		Guests:       2,
		TotalAmount:  800,
		Policy:       models.PolicyFlexible,
	}
}

func validSlotInput(serviceID string) models.CreateBookingInput {
	return models.CreateBookingInput{
		ServiceID:   serviceID,
		UserID:      "user-1",
		ProviderID:  "prov-1",
		ServiceName: "Private Chef Evening",
		ServiceType: models.ServiceTypeTimeBased,
		TimeSlot:    &models.TimeSlot{Date: "2026-09-10", StartTime: "18:00", EndTime: "21:00"},
		Guests:      4,
		TotalAmount: 300,
		Policy:      models.Policy24Hours,
	}
}

func TestCreateBooking_Success(t *testing.T) {
	engine := NewDefaultBookingEngine(newFakeBookingRepo(), nil, nil)

	created, err := engine.CreateBooking(context.Background(), validDateInput("svc-1"))
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, models.StatusConfirmed, created.Status)
	assert.Equal(t, "2026-09-10", created.CheckInDate)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestCreateBooking_ValidationErrors(t *testing.T) {
	engine := NewDefaultBookingEngine(newFakeBookingRepo(), nil, nil)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*models.CreateBookingInput)
	}{
		{"missing serviceId", func(in *models.CreateBookingInput) { in.ServiceID = "" }},
		{"missing userId", func(in *models.CreateBookingInput) { in.UserID = "" }},
		{"zero guests", func(in *models.CreateBookingInput) { in.Guests = 0 }},
		{"negative amount", func(in *models.CreateBookingInput) { in.TotalAmount = -1 }},
		{"unknown serviceType", func(in *models.CreateBookingInput) { in.ServiceType = "subscription" }},
		{"unknown policy", func(in *models.CreateBookingInput) { in.Policy = "whenever" }},
		{"check-out before check-in", func(in *models.CreateBookingInput) { in.CheckOutDate = "2026-09-01" }},
		{"garbled check-in", func(in *models.CreateBookingInput) { in.CheckInDate = "Sept 10" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validDateInput("svc-1")
			tt.mutate(&input)
			_, err := engine.CreateBooking(ctx, input)
			var validationErr *ValidationError
			assert.ErrorAs(t, err, &validationErr)
		})
	}

	// time_based without a slot is rejected before any store access.
	input := validSlotInput("svc-1")
	input.TimeSlot = nil
	_, err := engine.CreateBooking(ctx, input)
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestCreateBooking_ConflictOnOverlap(t *testing.T) {
	engine := NewDefaultBookingEngine(newFakeBookingRepo(), nil, nil)
	ctx := context.Background()

	_, err := engine.CreateBooking(ctx, validDateInput("svc-1"))
	require.NoError(t, err)

	second := validDateInput("svc-1")
	second.CheckInDate = "2026-09-13"
	second.CheckOutDate = "2026-09-16"
	_, err = engine.CreateBooking(ctx, second)

	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, 1, conflictErr.Conflicts)
}

func TestCreateBooking_SlotConflictAndAdjacency(t *testing.T) {
	engine := NewDefaultBookingEngine(newFakeBookingRepo(), nil, nil)
	ctx := context.Background()

	_, err := engine.CreateBooking(ctx, validSlotInput("svc-1"))
	require.NoError(t, err)

	// Identical slot conflicts.
	_, err = engine.CreateBooking(ctx, validSlotInput("svc-1"))
	var conflictErr *ConflictError
	assert.ErrorAs(t, err, &conflictErr)

	// Back-to-back slot does not.
	adjacent := validSlotInput("svc-1")
	adjacent.TimeSlot = &models.TimeSlot{Date: "2026-09-10", StartTime: "21:00", EndTime: "23:00"}
	_, err = engine.CreateBooking(ctx, adjacent)
	assert.NoError(t, err)
}

func TestCreateBooking_CancelledBookingDoesNotBlock(t *testing.T) {
	repo := newFakeBookingRepo()
	engine := NewDefaultBookingEngine(repo, nil, nil)
	ctx := context.Background()

	created, err := engine.CreateBooking(ctx, validDateInput("svc-1"))
	require.NoError(t, err)
	_, err = engine.CancelBooking(ctx, created.ID, models.CancelledByCustomer, "changed plans")
	require.NoError(t, err)

	_, err = engine.CreateBooking(ctx, validDateInput("svc-1"))
	assert.NoError(t, err)
}

func TestCancelBooking_PersistsRefundOutcome(t *testing.T) {
	repo := newFakeBookingRepo()
	engine := NewDefaultBookingEngine(repo, nil, nil)
	ctx := context.Background()

	created, err := engine.CreateBooking(ctx, validDateInput("svc-1"))
	require.NoError(t, err)

	// Cancel two full days before check-in: flexible policy pays out 100%.
	engine.Now = fixedNow(t, "2026-09-08")
	cancelled, err := engine.CancelBooking(ctx, created.ID, models.CancelledByCustomer, "weather")
	require.NoError(t, err)

	assert.Equal(t, models.StatusCancelled, cancelled.Status)
	assert.Equal(t, models.CancelledByCustomer, cancelled.CancelledBy)
	assert.Equal(t, "weather", cancelled.CancellationReason)
	require.NotNil(t, cancelled.RefundPercentage)
	assert.Equal(t, 100, *cancelled.RefundPercentage)
	require.NotNil(t, cancelled.RefundAmount)
	assert.Equal(t, 800.0, *cancelled.RefundAmount)
	require.NotNil(t, cancelled.CancelledAt)
}

func TestCancelBooking_TerminalGuard(t *testing.T) {
	repo := newFakeBookingRepo()
	engine := NewDefaultBookingEngine(repo, nil, nil)
	ctx := context.Background()

	created, err := engine.CreateBooking(ctx, validDateInput("svc-1"))
	require.NoError(t, err)
	_, err = engine.CancelBooking(ctx, created.ID, models.CancelledByCustomer, "first")
	require.NoError(t, err)

	_, err = engine.CancelBooking(ctx, created.ID, models.CancelledByCustomer, "second")
	var stateErr *InvalidStateError
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, models.StatusCancelled, stateErr.Status)

	// The first outcome stays untouched.
	b, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "first", b.CancellationReason)
}

func TestCompleteBooking(t *testing.T) {
	repo := newFakeBookingRepo()
	engine := NewDefaultBookingEngine(repo, nil, nil)
	ctx := context.Background()

	created, err := engine.CreateBooking(ctx, validDateInput("svc-1"))
	require.NoError(t, err)

	completed, err := engine.CompleteBooking(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, completed.Status)
	require.NotNil(t, completed.CompletedAt)

	// Completed is terminal for both transitions.
	_, err = engine.CancelBooking(ctx, created.ID, models.CancelledByProvider, "late")
	var stateErr *InvalidStateError
	assert.ErrorAs(t, err, &stateErr)
	_, err = engine.CompleteBooking(ctx, created.ID)
	assert.ErrorAs(t, err, &stateErr)
}

// Two concurrent creates for fully overlapping ranges: exactly one must
// succeed and the other must see a conflict.
func TestCreateBooking_ConcurrentOverlapSerialized(t *testing.T) {
	engine := NewDefaultBookingEngine(newFakeBookingRepo(), nil, nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = engine.CreateBooking(ctx, validDateInput("svc-race"))
		}(i)
	}
	wg.Wait()

	var conflicts, successes int
	for _, err := range errs {
		var conflictErr *ConflictError
		switch {
		case err == nil:
			successes++
		case assert.ErrorAs(t, err, &conflictErr):
			conflicts++
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, conflicts)
}
