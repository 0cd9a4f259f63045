package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"club-booking/internal/data/entity"
	"club-booking/internal/data/repository"
	"club-booking/internal/dto/request"
	"club-booking/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newPoolHarness(f *fakes, repo *repository.Repository) (PoolService, *recordingSink, *metrics.Metrics) {
	log := zap.NewNop()
	sink := &recordingSink{}
	m := metrics.New()
	strategy := NewStrategyResolver(testClubConfig().PoolStrategies, log)
	series := NewSeriesService(repo, strategy, log)
	return NewPoolService(repo, f.db, series, sink, m, log), sink, m
}

// withOwnPool programs a friendly booking 5 that carries pool 10.
func withOwnPool(f *fakes, open bool, maxPlayers *int) {
	f.bookings.FindByIDFunc = func(_ context.Context, _ int64) (*entity.Booking, error) {
		return &entity.Booking{
			Base:        entity.Base{ID: 5},
			Reference:   "BK-TEST-5",
			PlayDate:    mustDate("2026-09-18"),
			Session:     1,
			RinkCount:   2,
			Kind:        entity.BookingKindEvent,
			EventType:   ptrString("friendly"),
			PoolEnabled: true,
		}, nil
	}
	f.pools.FindByBookingIDFunc = func(_ context.Context, bookingID int64) (*entity.Pool, error) {
		if bookingID == 5 {
			pool := &entity.Pool{Base: entity.Base{ID: 10}, BookingID: 5, IsOpen: open, MaxPlayers: maxPlayers}
			if !open {
				now := time.Now()
				pool.ClosedAt = &now
			}
			return pool, nil
		}
		return nil, nil
	}
}

func TestPoolService_Register(t *testing.T) {
	t.Run("joins the booking's own pool", func(t *testing.T) {
		f, repo := newFakes()
		withOwnPool(f, true, nil)
		svc, sink, m := newPoolHarness(f, repo)

		resp, err := svc.Register(context.Background(), testActor, 5)

		require.NoError(t, err)
		assert.Equal(t, int64(10), resp.PoolID)
		assert.Equal(t, testActor.ID, resp.MemberID)
		assert.Equal(t, testActor.Name, resp.MemberName)
		assert.True(t, resp.IsActive)
		require.Len(t, sink.entries, 1)
		assert.Equal(t, "pool.register", sink.entries[0].Operation)
		assert.Equal(t, float64(1), testutil.ToFloat64(m.PoolRegistrations))
	})

	t.Run("series member registers into the shared pool", func(t *testing.T) {
		f, repo := newFakes()
		f.bookings.FindByIDFunc = func(_ context.Context, _ int64) (*entity.Booking, error) {
			return seriesBooking(2, "2026-09-10", "thursday-league"), nil
		}
		f.bookings.FindBySeriesKeyFunc = func(_ context.Context, seriesKey string) ([]*entity.Booking, error) {
			return []*entity.Booking{
				seriesBooking(1, "2026-09-03", seriesKey),
				seriesBooking(2, "2026-09-10", seriesKey),
			}, nil
		}
		f.pools.FindByBookingIDFunc = func(_ context.Context, bookingID int64) (*entity.Pool, error) {
			if bookingID == 1 {
				return &entity.Pool{Base: entity.Base{ID: 10}, BookingID: 1, IsOpen: true}, nil
			}
			return nil, nil
		}
		svc, _, _ := newPoolHarness(f, repo)

		resp, err := svc.Register(context.Background(), testActor, 2)

		require.NoError(t, err)
		assert.Equal(t, int64(10), resp.PoolID)
	})

	t.Run("registering twice is rejected", func(t *testing.T) {
		f, repo := newFakes()
		withOwnPool(f, true, nil)
		f.registrations.FindActiveFunc = func(_ context.Context, poolID, memberID int64) (*entity.PoolRegistration, error) {
			return &entity.PoolRegistration{ID: 1, PoolID: poolID, MemberID: memberID, IsActive: true}, nil
		}
		svc, sink, _ := newPoolHarness(f, repo)

		_, err := svc.Register(context.Background(), testActor, 5)

		assert.ErrorIs(t, err, ErrAlreadyRegistered)
		assert.Empty(t, sink.entries)
	})

	t.Run("unique index race still reads as already registered", func(t *testing.T) {
		f, repo := newFakes()
		withOwnPool(f, true, nil)
		f.registrations.CreateFunc = func(_ context.Context, _ *entity.PoolRegistration) error {
			return repository.ErrDuplicateRegistration
		}
		svc, _, _ := newPoolHarness(f, repo)

		_, err := svc.Register(context.Background(), testActor, 5)

		assert.ErrorIs(t, err, ErrAlreadyRegistered)
	})

	t.Run("closed pool takes no registrations", func(t *testing.T) {
		f, repo := newFakes()
		withOwnPool(f, false, nil)
		svc, _, _ := newPoolHarness(f, repo)

		_, err := svc.Register(context.Background(), testActor, 5)

		assert.ErrorIs(t, err, ErrPoolClosed)
	})

	t.Run("full pool takes no registrations", func(t *testing.T) {
		f, repo := newFakes()
		withOwnPool(f, true, ptrInt(2))
		f.registrations.CountActiveFunc = func(_ context.Context, _ int64) (int, error) {
			return 2, nil
		}
		svc, _, _ := newPoolHarness(f, repo)

		_, err := svc.Register(context.Background(), testActor, 5)

		assert.ErrorIs(t, err, ErrPoolFull)
	})

	t.Run("booking without a pool", func(t *testing.T) {
		f, repo := newFakes()
		f.bookings.FindByIDFunc = func(_ context.Context, _ int64) (*entity.Booking, error) {
			return &entity.Booking{Base: entity.Base{ID: 5}, Kind: entity.BookingKindEvent}, nil
		}
		svc, _, _ := newPoolHarness(f, repo)

		_, err := svc.Register(context.Background(), testActor, 5)

		assert.ErrorIs(t, err, ErrPoolNotFound)
	})

	t.Run("unknown booking", func(t *testing.T) {
		f, repo := newFakes()
		svc, _, _ := newPoolHarness(f, repo)

		_, err := svc.Register(context.Background(), testActor, 404)

		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestPoolService_Withdraw(t *testing.T) {
	t.Run("deactivates the member's registration", func(t *testing.T) {
		f, repo := newFakes()
		withOwnPool(f, true, nil)
		f.registrations.FindActiveFunc = func(_ context.Context, poolID, memberID int64) (*entity.PoolRegistration, error) {
			return &entity.PoolRegistration{ID: 33, PoolID: poolID, MemberID: memberID, IsActive: true}, nil
		}
		var deactivated int64
		f.registrations.DeactivateFunc = func(_ context.Context, id int64) error {
			deactivated = id
			return nil
		}
		svc, sink, m := newPoolHarness(f, repo)

		err := svc.Withdraw(context.Background(), testActor, 5)

		require.NoError(t, err)
		assert.Equal(t, int64(33), deactivated)
		require.Len(t, sink.entries, 1)
		assert.Equal(t, "pool.withdraw", sink.entries[0].Operation)
		assert.Equal(t, float64(1), testutil.ToFloat64(m.PoolWithdrawals))
	})

	t.Run("no withdrawal once the pool has closed", func(t *testing.T) {
		f, repo := newFakes()
		withOwnPool(f, false, nil)
		f.registrations.FindActiveFunc = func(_ context.Context, poolID, memberID int64) (*entity.PoolRegistration, error) {
			return &entity.PoolRegistration{ID: 33, PoolID: poolID, MemberID: memberID, IsActive: true}, nil
		}
		svc, _, _ := newPoolHarness(f, repo)

		err := svc.Withdraw(context.Background(), testActor, 5)

		assert.ErrorIs(t, err, ErrPoolClosed)
	})

	t.Run("nothing to withdraw", func(t *testing.T) {
		f, repo := newFakes()
		withOwnPool(f, true, nil)
		svc, _, _ := newPoolHarness(f, repo)

		err := svc.Withdraw(context.Background(), testActor, 5)

		assert.ErrorIs(t, err, ErrNotRegistered)
	})

	t.Run("unknown booking", func(t *testing.T) {
		f, repo := newFakes()
		svc, _, _ := newPoolHarness(f, repo)

		err := svc.Withdraw(context.Background(), testActor, 404)

		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestPoolService_TogglePool(t *testing.T) {
	t.Run("closing stamps the close time", func(t *testing.T) {
		f, repo := newFakes()
		f.pools.FindByIDFunc = func(_ context.Context, _ int64) (*entity.Pool, error) {
			return &entity.Pool{Base: entity.Base{ID: 10}, BookingID: 5, IsOpen: true}, nil
		}
		var updated *entity.Pool
		f.pools.UpdateFunc = func(_ context.Context, pool *entity.Pool) error {
			updated = pool
			return nil
		}
		svc, sink, _ := newPoolHarness(f, repo)

		resp, err := svc.TogglePool(context.Background(), testActor, 10)

		require.NoError(t, err)
		assert.False(t, resp.IsOpen)
		assert.NotNil(t, resp.ClosedAt)
		require.NotNil(t, updated)
		assert.False(t, updated.IsOpen)
		assert.NotNil(t, updated.ClosedAt)
		require.Len(t, sink.entries, 1)
		assert.Equal(t, "pool.toggle", sink.entries[0].Operation)
	})

	t.Run("reopening clears the close time", func(t *testing.T) {
		f, repo := newFakes()
		closedAt := time.Now().Add(-time.Hour)
		f.pools.FindByIDFunc = func(_ context.Context, _ int64) (*entity.Pool, error) {
			return &entity.Pool{Base: entity.Base{ID: 10}, BookingID: 5, IsOpen: false, ClosedAt: &closedAt}, nil
		}
		svc, _, _ := newPoolHarness(f, repo)

		resp, err := svc.TogglePool(context.Background(), testActor, 10)

		require.NoError(t, err)
		assert.True(t, resp.IsOpen)
		assert.Nil(t, resp.ClosedAt)
	})

	t.Run("unknown pool", func(t *testing.T) {
		f, repo := newFakes()
		svc, _, _ := newPoolHarness(f, repo)

		_, err := svc.TogglePool(context.Background(), testActor, 404)

		assert.ErrorIs(t, err, ErrPoolNotFound)
	})
}

func TestPoolService_CreatePool(t *testing.T) {
	t.Run("opens a pool for a bare booking", func(t *testing.T) {
		f, repo := newFakes()
		f.bookings.FindByIDFunc = func(_ context.Context, _ int64) (*entity.Booking, error) {
			return &entity.Booking{Base: entity.Base{ID: 5}, Reference: "BK-TEST-5"}, nil
		}
		svc, _, _ := newPoolHarness(f, repo)

		resp, err := svc.CreatePool(context.Background(), testActor, &request.CreatePoolRequest{
			BookingID:     5,
			AutoCloseDate: ptrString("2026-09-15"),
			MaxPlayers:    ptrInt(12),
		})

		require.NoError(t, err)
		assert.Equal(t, int64(5), resp.BookingID)
		assert.True(t, resp.IsOpen)
		require.NotNil(t, resp.AutoCloseDate)
		assert.Equal(t, "2026-09-15", *resp.AutoCloseDate)
		assert.Equal(t, 12, *resp.MaxPlayers)
	})

	t.Run("one pool per booking", func(t *testing.T) {
		f, repo := newFakes()
		withOwnPool(f, true, nil)
		svc, _, _ := newPoolHarness(f, repo)

		_, err := svc.CreatePool(context.Background(), testActor, &request.CreatePoolRequest{BookingID: 5})

		assert.ErrorIs(t, err, ErrPoolExists)
	})

	t.Run("insert race surfaces the same conflict", func(t *testing.T) {
		f, repo := newFakes()
		f.bookings.FindByIDFunc = func(_ context.Context, _ int64) (*entity.Booking, error) {
			return &entity.Booking{Base: entity.Base{ID: 5}}, nil
		}
		f.pools.CreateFunc = func(_ context.Context, _ *entity.Pool) error {
			return repository.ErrDuplicatePool
		}
		svc, _, _ := newPoolHarness(f, repo)

		_, err := svc.CreatePool(context.Background(), testActor, &request.CreatePoolRequest{BookingID: 5})

		assert.ErrorIs(t, err, ErrPoolExists)
	})

	t.Run("unknown booking", func(t *testing.T) {
		f, repo := newFakes()
		svc, _, _ := newPoolHarness(f, repo)

		_, err := svc.CreatePool(context.Background(), testActor, &request.CreatePoolRequest{BookingID: 404})

		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestPoolService_GetPoolByID(t *testing.T) {
	t.Run("lists the registrations", func(t *testing.T) {
		f, repo := newFakes()
		f.pools.FindByIDFunc = func(_ context.Context, _ int64) (*entity.Pool, error) {
			return &entity.Pool{Base: entity.Base{ID: 10}, BookingID: 5, IsOpen: true}, nil
		}
		f.registrations.FindByPoolIDFunc = func(_ context.Context, _ int64) ([]*entity.PoolRegistration, error) {
			return []*entity.PoolRegistration{
				{ID: 1, PoolID: 10, MemberID: 11, MemberName: "Margaret Holt", IsActive: true},
				{ID: 2, PoolID: 10, MemberID: 12, MemberName: "Arthur Penn", IsActive: false},
			}, nil
		}
		svc, _, _ := newPoolHarness(f, repo)

		resp, err := svc.GetPoolByID(context.Background(), 10)

		require.NoError(t, err)
		assert.Len(t, resp.Registrations, 2)
		assert.False(t, resp.Registrations[1].IsActive)
	})

	t.Run("unknown pool", func(t *testing.T) {
		f, repo := newFakes()
		svc, _, _ := newPoolHarness(f, repo)

		_, err := svc.GetPoolByID(context.Background(), 404)

		assert.ErrorIs(t, err, ErrPoolNotFound)
	})
}

func TestPoolService_DeletePool(t *testing.T) {
	t.Run("deletes together with its registrations", func(t *testing.T) {
		f, repo := newFakes()
		f.pools.FindByIDFunc = func(_ context.Context, _ int64) (*entity.Pool, error) {
			return &entity.Pool{Base: entity.Base{ID: 10}, BookingID: 5, IsOpen: true}, nil
		}
		f.registrations.CountActiveFunc = func(_ context.Context, _ int64) (int, error) {
			return 3, nil
		}
		var deleted int64
		f.pools.DeleteFunc = func(_ context.Context, id int64) error {
			deleted = id
			return nil
		}
		svc, sink, _ := newPoolHarness(f, repo)

		err := svc.DeletePool(context.Background(), testActor, 10)

		require.NoError(t, err)
		assert.Equal(t, int64(10), deleted)
		require.Len(t, sink.entries, 1)
		assert.Equal(t, "pool.delete", sink.entries[0].Operation)
	})

	t.Run("unknown pool", func(t *testing.T) {
		f, repo := newFakes()
		svc, _, _ := newPoolHarness(f, repo)

		err := svc.DeletePool(context.Background(), testActor, 404)

		assert.ErrorIs(t, err, ErrPoolNotFound)
	})
}

func TestPoolService_ResolveForBooking(t *testing.T) {
	t.Run("reports the booking's own pool", func(t *testing.T) {
		f, repo := newFakes()
		withOwnPool(f, true, nil)
		svc, _, _ := newPoolHarness(f, repo)

		resp, err := svc.ResolveForBooking(context.Background(), 5)

		require.NoError(t, err)
		assert.Equal(t, entity.PoolResolutionOwn, resp.Kind)
		require.NotNil(t, resp.Pool)
		assert.Equal(t, int64(10), resp.Pool.ID)
	})

	t.Run("unknown booking", func(t *testing.T) {
		f, repo := newFakes()
		svc, _, _ := newPoolHarness(f, repo)

		_, err := svc.ResolveForBooking(context.Background(), 404)

		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestPoolService_CloseDuePools(t *testing.T) {
	duePool := func(id int64) *entity.Pool {
		autoClose := mustDate("2026-09-15")
		return &entity.Pool{Base: entity.Base{ID: id}, BookingID: id, IsOpen: true, AutoCloseDate: &autoClose}
	}

	t.Run("closes every due pool", func(t *testing.T) {
		f, repo := newFakes()
		f.pools.FindDueForCloseFunc = func(_ context.Context, _ time.Time) ([]*entity.Pool, error) {
			return []*entity.Pool{duePool(1), duePool(2)}, nil
		}
		var updates []*entity.Pool
		f.pools.UpdateFunc = func(_ context.Context, pool *entity.Pool) error {
			updates = append(updates, pool)
			return nil
		}
		svc, _, m := newPoolHarness(f, repo)

		closed, err := svc.CloseDuePools(context.Background(), mustDate("2026-09-16"))

		require.NoError(t, err)
		assert.Equal(t, 2, closed)
		require.Len(t, updates, 2)
		for _, pool := range updates {
			assert.False(t, pool.IsOpen)
			assert.NotNil(t, pool.ClosedAt)
		}
		assert.Equal(t, float64(2), testutil.ToFloat64(m.PoolsAutoClosed))
	})

	t.Run("one failed close does not stop the sweep", func(t *testing.T) {
		f, repo := newFakes()
		f.pools.FindDueForCloseFunc = func(_ context.Context, _ time.Time) ([]*entity.Pool, error) {
			return []*entity.Pool{duePool(1), duePool(2)}, nil
		}
		f.pools.UpdateFunc = func(_ context.Context, pool *entity.Pool) error {
			if pool.ID == 1 {
				return errors.New("connection reset")
			}
			return nil
		}
		svc, _, _ := newPoolHarness(f, repo)

		closed, err := svc.CloseDuePools(context.Background(), mustDate("2026-09-16"))

		require.NoError(t, err)
		assert.Equal(t, 1, closed)
	})

	t.Run("finder failure aborts the sweep", func(t *testing.T) {
		f, repo := newFakes()
		f.pools.FindDueForCloseFunc = func(_ context.Context, _ time.Time) ([]*entity.Pool, error) {
			return nil, errors.New("connection reset")
		}
		svc, _, _ := newPoolHarness(f, repo)

		_, err := svc.CloseDuePools(context.Background(), mustDate("2026-09-16"))

		assert.Error(t, err)
	})
}
