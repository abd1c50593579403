package booking

import (
	"context"
	"testing"

	"bookhive/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompleteDueBookings(t *testing.T) {
	repo := newFakeBookingRepo()
	engine := NewDefaultBookingEngine(repo, nil, nil)
	ctx := context.Background()

	past := activeDateBooking("b-past", "svc-1", "2026-08-20", "2026-08-25")
	current := activeDateBooking("b-current", "svc-1", "2026-08-28", "2026-09-02")
	future := activeDateBooking("b-future", "svc-2", "2026-09-10", "2026-09-14")
	pastSlot := activeSlotBooking("b-slot", "svc-3", "2026-08-29", "10:00", "12:00")
	require.NoError(t, repo.Create(ctx, &past))
	require.NoError(t, repo.Create(ctx, &current))
	require.NoError(t, repo.Create(ctx, &future))
	require.NoError(t, repo.Create(ctx, &pastSlot))

	engine.Now = fixedNow(t, "2026-09-01")
	n, err := engine.CompleteDueBookings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	for id, want := range map[string]models.BookingStatus{
		"b-past":    models.StatusCompleted,
		"b-slot":    models.StatusCompleted,
		"b-current": models.StatusConfirmed,
		"b-future":  models.StatusConfirmed,
	} {
		b, err := repo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, want, b.Status, id)
	}
}

func TestCompleteDueBookings_SkipsCancelled(t *testing.T) {
	repo := newFakeBookingRepo()
	engine := NewDefaultBookingEngine(repo, nil, nil)
	ctx := context.Background()

	cancelled := activeDateBooking("b-cancelled", "svc-1", "2026-08-20", "2026-08-25")
	cancelled.Status = models.StatusCancelled
	require.NoError(t, repo.Create(ctx, &cancelled))

	engine.Now = fixedNow(t, "2026-09-01")
	n, err := engine.CompleteDueBookings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	b, err := repo.GetByID(ctx, "b-cancelled")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, b.Status)
}

func TestCompleteDueBookings_NothingDue(t *testing.T) {
	repo := newFakeBookingRepo()
	engine := NewDefaultBookingEngine(repo, nil, nil)
	engine.Now = fixedNow(t, "2026-09-01")

	n, err := engine.CompleteDueBookings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
