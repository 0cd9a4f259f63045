package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"club-booking/internal/audit"
	"club-booking/internal/data/entity"
	"club-booking/internal/data/repository"
	"club-booking/internal/dto/request"
	"club-booking/internal/dto/response"
	"club-booking/pkg/database"
	"club-booking/pkg/metrics"
	"club-booking/pkg/utils"

	"go.uber.org/zap"
)

type PoolService interface {
	CreatePool(ctx context.Context, actor entity.Actor, req *request.CreatePoolRequest) (*response.PoolResponse, error)
	GetPoolByID(ctx context.Context, poolID int64) (*response.PoolDetailResponse, error)
	ResolveForBooking(ctx context.Context, bookingID int64) (*response.PoolResolutionResponse, error)
	Register(ctx context.Context, actor entity.Actor, bookingID int64) (*response.RegistrationResponse, error)
	Withdraw(ctx context.Context, actor entity.Actor, bookingID int64) error
	TogglePool(ctx context.Context, actor entity.Actor, poolID int64) (*response.PoolResponse, error)
	DeletePool(ctx context.Context, actor entity.Actor, poolID int64) error
	CloseDuePools(ctx context.Context, asOf time.Time) (int, error)
}

type poolService struct {
	repo    *repository.Repository
	db      database.PgxIface
	series  SeriesService
	audit   audit.Sink
	metrics *metrics.Metrics
	log     *zap.Logger
}

func NewPoolService(
	repo *repository.Repository,
	db database.PgxIface,
	series SeriesService,
	auditSink audit.Sink,
	m *metrics.Metrics,
	log *zap.Logger,
) PoolService {
	return &poolService{
		repo:    repo,
		db:      db,
		series:  series,
		audit:   auditSink,
		metrics: m,
		log:     log.With(zap.String("service", "pool")),
	}
}

// CreatePool opens a registration list for a booking that does not already
// have one. This is the explicit admin path; the usual path creates the
// pool together with the booking.
func (s *poolService) CreatePool(ctx context.Context, actor entity.Actor, req *request.CreatePoolRequest) (*response.PoolResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create pool validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	booking, err := s.repo.Booking.FindByID(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %d: %w", req.BookingID, ErrBookingNotFound)
	}

	existing, err := s.repo.Pool.FindByBookingID(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("booking %d: %w", req.BookingID, ErrPoolExists)
	}

	var autoClose *time.Time
	if req.AutoCloseDate != nil {
		d, err := utils.ParseDate(*req.AutoCloseDate)
		if err != nil {
			return nil, fmt.Errorf("invalid auto close date %s: %w", *req.AutoCloseDate, err)
		}
		autoClose = &d
	}

	pool := &entity.Pool{
		BookingID:     req.BookingID,
		IsOpen:        true,
		AutoCloseDate: autoClose,
		MaxPlayers:    req.MaxPlayers,
	}

	if err := s.repo.Pool.Create(ctx, pool); err != nil {
		if errors.Is(err, repository.ErrDuplicatePool) {
			return nil, fmt.Errorf("booking %d: %w", req.BookingID, ErrPoolExists)
		}
		s.log.Error("Failed to create pool", zap.Error(err), zap.Int64("booking_id", req.BookingID))
		return nil, err
	}

	s.audit.Record(ctx, audit.Entry{
		Operation:  "pool.create",
		EntityKind: "pool",
		EntityID:   pool.ID,
		Actor:      actor,
		Summary:    fmt.Sprintf("pool for booking %s", booking.Reference),
	})

	s.log.Info("Pool created",
		zap.Int64("pool_id", pool.ID),
		zap.Int64("booking_id", req.BookingID),
	)

	resp := response.PoolToResponse(pool)
	return &resp, nil
}

func (s *poolService) GetPoolByID(ctx context.Context, poolID int64) (*response.PoolDetailResponse, error) {
	pool, err := s.repo.Pool.FindByID(ctx, poolID)
	if err != nil {
		return nil, err
	}
	if pool == nil {
		return nil, fmt.Errorf("pool %d: %w", poolID, ErrPoolNotFound)
	}

	registrations, err := s.repo.PoolRegistration.FindByPoolID(ctx, poolID)
	if err != nil {
		return nil, err
	}

	detail := &response.PoolDetailResponse{
		PoolResponse:  response.PoolToResponse(pool),
		Registrations: make([]response.RegistrationResponse, 0, len(registrations)),
	}
	for _, registration := range registrations {
		detail.Registrations = append(detail.Registrations, response.RegistrationToResponse(registration))
	}

	return detail, nil
}

// ResolveForBooking reports which pool, if any, the booking exposes:
// its own, the series primary's, or none.
func (s *poolService) ResolveForBooking(ctx context.Context, bookingID int64) (*response.PoolResolutionResponse, error) {
	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %d: %w", bookingID, ErrBookingNotFound)
	}

	resolution, err := s.series.EffectivePool(ctx, booking)
	if err != nil {
		return nil, err
	}

	return response.PoolResolutionToResponse(resolution), nil
}

// Register puts the actor on the pool a booking resolves to. Registration
// and the player cap check run in one serializable transaction so two
// members cannot both take the last place; the partial unique index backs
// up the one-active-registration invariant.
func (s *poolService) Register(ctx context.Context, actor entity.Actor, bookingID int64) (*response.RegistrationResponse, error) {
	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %d: %w", bookingID, ErrBookingNotFound)
	}

	resolution, err := s.series.EffectivePool(ctx, booking)
	if err != nil {
		return nil, err
	}
	if resolution.Kind == entity.PoolResolutionNone {
		return nil, fmt.Errorf("booking %d: %w", bookingID, ErrPoolNotFound)
	}
	pool := resolution.Pool

	if !pool.IsOpen {
		return nil, fmt.Errorf("pool %d: %w", pool.ID, ErrPoolClosed)
	}

	registration := &entity.PoolRegistration{
		PoolID:     pool.ID,
		MemberID:   actor.ID,
		MemberName: actor.Name,
	}

	err = s.db.RunInTx(ctx, func(q database.Querier) error {
		registrations := s.repo.PoolRegistration.WithTx(q)

		existing, err := registrations.FindActive(ctx, pool.ID, actor.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("member %d in pool %d: %w", actor.ID, pool.ID, ErrAlreadyRegistered)
		}

		if pool.MaxPlayers != nil {
			count, err := registrations.CountActive(ctx, pool.ID)
			if err != nil {
				return err
			}
			if count >= *pool.MaxPlayers {
				return fmt.Errorf("pool %d is capped at %d players: %w", pool.ID, *pool.MaxPlayers, ErrPoolFull)
			}
		}

		return registrations.Create(ctx, registration)
	})

	if err != nil {
		if errors.Is(err, repository.ErrDuplicateRegistration) {
			return nil, fmt.Errorf("member %d in pool %d: %w", actor.ID, pool.ID, ErrAlreadyRegistered)
		}
		if errors.Is(err, ErrAlreadyRegistered) || errors.Is(err, ErrPoolFull) {
			return nil, err
		}
		s.log.Error("Failed to register in pool",
			zap.Error(err),
			zap.Int64("pool_id", pool.ID),
			zap.Int64("member_id", actor.ID),
		)
		return nil, err
	}

	s.metrics.PoolRegistrations.Inc()
	s.audit.Record(ctx, audit.Entry{
		Operation:  "pool.register",
		EntityKind: "pool_registration",
		EntityID:   registration.ID,
		Actor:      actor,
		Summary:    fmt.Sprintf("registered in pool %d for booking %s", pool.ID, booking.Reference),
	})

	s.log.Info("Member registered in pool",
		zap.Int64("pool_id", pool.ID),
		zap.Int64("booking_id", bookingID),
		zap.Int64("member_id", actor.ID),
		zap.String("resolution", string(resolution.Kind)),
	)

	resp := response.RegistrationToResponse(registration)
	return &resp, nil
}

// Withdraw deactivates the actor's registration. Once the pool has closed,
// withdrawal is refused so team selection can rely on the final list;
// members must contact an organizer instead.
func (s *poolService) Withdraw(ctx context.Context, actor entity.Actor, bookingID int64) error {
	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if booking == nil {
		return fmt.Errorf("booking %d: %w", bookingID, ErrBookingNotFound)
	}

	resolution, err := s.series.EffectivePool(ctx, booking)
	if err != nil {
		return err
	}
	if resolution.Kind == entity.PoolResolutionNone {
		return fmt.Errorf("booking %d: %w", bookingID, ErrPoolNotFound)
	}
	pool := resolution.Pool

	if !pool.IsOpen {
		return fmt.Errorf("pool %d: %w", pool.ID, ErrPoolClosed)
	}

	registration, err := s.repo.PoolRegistration.FindActive(ctx, pool.ID, actor.ID)
	if err != nil {
		return err
	}
	if registration == nil {
		return fmt.Errorf("member %d in pool %d: %w", actor.ID, pool.ID, ErrNotRegistered)
	}

	if err := s.repo.PoolRegistration.Deactivate(ctx, registration.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("member %d in pool %d: %w", actor.ID, pool.ID, ErrNotRegistered)
		}
		s.log.Error("Failed to withdraw from pool",
			zap.Error(err),
			zap.Int64("pool_id", pool.ID),
			zap.Int64("member_id", actor.ID),
		)
		return err
	}

	s.metrics.PoolWithdrawals.Inc()
	s.audit.Record(ctx, audit.Entry{
		Operation:  "pool.withdraw",
		EntityKind: "pool_registration",
		EntityID:   registration.ID,
		Actor:      actor,
		Summary:    fmt.Sprintf("withdrew from pool %d for booking %s", pool.ID, booking.Reference),
	})

	s.log.Info("Member withdrew from pool",
		zap.Int64("pool_id", pool.ID),
		zap.Int64("booking_id", bookingID),
		zap.Int64("member_id", actor.ID),
	)

	return nil
}

// TogglePool flips a pool between open and closed. Closing stamps the
// closed timestamp; reopening clears it.
func (s *poolService) TogglePool(ctx context.Context, actor entity.Actor, poolID int64) (*response.PoolResponse, error) {
	pool, err := s.repo.Pool.FindByID(ctx, poolID)
	if err != nil {
		return nil, err
	}
	if pool == nil {
		return nil, fmt.Errorf("pool %d: %w", poolID, ErrPoolNotFound)
	}

	wasOpen := pool.IsOpen
	if pool.IsOpen {
		now := time.Now()
		pool.IsOpen = false
		pool.ClosedAt = &now
	} else {
		pool.IsOpen = true
		pool.ClosedAt = nil
	}

	if err := s.repo.Pool.Update(ctx, pool); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("pool %d: %w", poolID, ErrPoolNotFound)
		}
		s.log.Error("Failed to toggle pool", zap.Error(err), zap.Int64("pool_id", poolID))
		return nil, err
	}

	s.audit.Record(ctx, audit.Entry{
		Operation:  "pool.toggle",
		EntityKind: "pool",
		EntityID:   pool.ID,
		Actor:      actor,
		Before:     map[string]any{"is_open": wasOpen},
		After:      map[string]any{"is_open": pool.IsOpen},
	})

	s.log.Info("Pool toggled",
		zap.Int64("pool_id", pool.ID),
		zap.Bool("is_open", pool.IsOpen),
	)

	resp := response.PoolToResponse(pool)
	return &resp, nil
}

// DeletePool removes a pool and all its registrations. Non-empty pools can
// be deleted; the registrations go with them.
func (s *poolService) DeletePool(ctx context.Context, actor entity.Actor, poolID int64) error {
	pool, err := s.repo.Pool.FindByID(ctx, poolID)
	if err != nil {
		return err
	}
	if pool == nil {
		return fmt.Errorf("pool %d: %w", poolID, ErrPoolNotFound)
	}

	count, err := s.repo.PoolRegistration.CountActive(ctx, poolID)
	if err != nil {
		return err
	}
	if count > 0 {
		s.log.Warn("Deleting pool with active registrations",
			zap.Int64("pool_id", poolID),
			zap.Int("registrations", count),
		)
	}

	if err := s.repo.Pool.Delete(ctx, poolID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("pool %d: %w", poolID, ErrPoolNotFound)
		}
		return err
	}

	s.audit.Record(ctx, audit.Entry{
		Operation:  "pool.delete",
		EntityKind: "pool",
		EntityID:   poolID,
		Actor:      actor,
		Summary:    fmt.Sprintf("deleted with %d active registrations", count),
	})

	return nil
}

// CloseDuePools closes every open pool whose auto-close date has passed.
// Failures on individual pools are logged and skipped; the next sweep picks
// them up again.
func (s *poolService) CloseDuePools(ctx context.Context, asOf time.Time) (int, error) {
	pools, err := s.repo.Pool.FindDueForClose(ctx, asOf)
	if err != nil {
		s.log.Error("Failed to find pools due for close", zap.Error(err))
		return 0, err
	}

	closed := 0
	now := time.Now()
	for _, pool := range pools {
		pool.IsOpen = false
		pool.ClosedAt = &now
		if err := s.repo.Pool.Update(ctx, pool); err != nil {
			s.log.Error("Failed to auto-close pool", zap.Error(err), zap.Int64("pool_id", pool.ID))
			continue
		}
		closed++
	}

	if closed > 0 {
		s.metrics.PoolsAutoClosed.Add(float64(closed))
		s.log.Info("Pools auto-closed",
			zap.Int("closed", closed),
			zap.Int("due", len(pools)),
			zap.String("as_of", asOf.Format(time.DateOnly)),
		)
	}

	return closed, nil
}
