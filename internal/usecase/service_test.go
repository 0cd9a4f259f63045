package usecase

import (
	"context"
	"testing"
	"time"

	"club-booking/internal/data/entity"
	"club-booking/internal/data/repository"
	"club-booking/internal/dto/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestService_FridayFriendly walks one booking from creation to selection
// night through the assembled service: book the rinks, open the pool, take
// registrations, read the day sheet, close the pool.
func TestService_FridayFriendly(t *testing.T) {
	f, repo := newFakes()
	svc := newTestService(f, repo)
	ctx := context.Background()

	// The finders serve whatever the creates stored, so the flow reads its
	// own writes the way it would against a real database.
	var booking *entity.Booking
	f.bookings.CreateFunc = func(_ context.Context, b *entity.Booking) error {
		b.ID = 1
		b.CreatedAt = time.Now()
		booking = b
		return nil
	}
	f.bookings.FindByIDFunc = func(_ context.Context, id int64) (*entity.Booking, error) {
		if booking != nil && booking.ID == id {
			return booking, nil
		}
		return nil, nil
	}
	f.bookings.FindByDateRangeFunc = func(_ context.Context, _, _ time.Time) ([]*entity.Booking, error) {
		if booking == nil {
			return nil, nil
		}
		return []*entity.Booking{booking}, nil
	}

	var pool *entity.Pool
	f.pools.CreateFunc = func(_ context.Context, p *entity.Pool) error {
		p.ID = 10
		p.CreatedAt = time.Now()
		pool = p
		return nil
	}
	f.pools.FindByIDFunc = func(_ context.Context, id int64) (*entity.Pool, error) {
		if pool != nil && pool.ID == id {
			return pool, nil
		}
		return nil, nil
	}
	f.pools.FindByBookingIDFunc = func(_ context.Context, bookingID int64) (*entity.Pool, error) {
		if pool != nil && pool.BookingID == bookingID {
			return pool, nil
		}
		return nil, nil
	}

	var registration *entity.PoolRegistration
	f.registrations.CreateFunc = func(_ context.Context, r *entity.PoolRegistration) error {
		r.ID = 100
		r.RegisteredAt = time.Now()
		r.IsActive = true
		registration = r
		return nil
	}
	f.registrations.FindActiveFunc = func(_ context.Context, poolID, memberID int64) (*entity.PoolRegistration, error) {
		if registration != nil && registration.IsActive && registration.PoolID == poolID && registration.MemberID == memberID {
			return registration, nil
		}
		return nil, nil
	}
	f.registrations.DeactivateFunc = func(_ context.Context, id int64) error {
		if registration == nil || registration.ID != id {
			return repository.ErrNotFound
		}
		registration.IsActive = false
		return nil
	}

	created, err := svc.Booking.CreateBooking(ctx, testActor, &request.CreateBookingRequest{
		PlayDate:          "2026-09-19",
		Session:           1,
		RinkCount:         2,
		Kind:              "event",
		EventType:         ptrString("friendly"),
		PoolEnabled:       true,
		PoolAutoCloseDate: ptrString("2026-09-17"),
	})
	require.NoError(t, err)
	require.NotNil(t, pool)
	assert.Equal(t, created.ID, pool.BookingID)

	member := entity.Actor{ID: 11, Name: "Margaret Holt"}
	reg, err := svc.Pool.Register(ctx, member, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), reg.PoolID)

	_, err = svc.Pool.Register(ctx, member, created.ID)
	assert.ErrorIs(t, err, ErrAlreadyRegistered)

	day, err := svc.Calendar.DayView(ctx, "2026-09-19")
	require.NoError(t, err)
	require.Len(t, day.Sessions, 3)
	assert.Equal(t, 2, day.Sessions[0].RinksUsed)
	assert.Equal(t, 4, day.Sessions[0].RinksAvailable)

	closed, err := svc.Pool.TogglePool(ctx, testActor, 10)
	require.NoError(t, err)
	assert.False(t, closed.IsOpen)

	err = svc.Pool.Withdraw(ctx, member, created.ID)
	assert.ErrorIs(t, err, ErrPoolClosed)
	assert.True(t, registration.IsActive)
}
