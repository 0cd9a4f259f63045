package usecase

import (
	"context"
	"fmt"

	"club-booking/internal/data/entity"
	"club-booking/internal/data/repository"
	"club-booking/internal/dto/response"

	"go.uber.org/zap"
)

// SeriesService resolves the indirection between a booking and its series.
// A series has no row of its own: it is the set of bookings sharing a
// series key, and the primary booking is the earliest by play date with the
// lowest id breaking ties. Everything here is read-only.
type SeriesService interface {
	PrimaryBooking(ctx context.Context, seriesKey string) (*entity.Booking, error)
	IsPrimary(ctx context.Context, booking *entity.Booking) (bool, error)
	EffectiveOrganizer(ctx context.Context, booking *entity.Booking) (*entity.Organizer, error)
	EffectivePool(ctx context.Context, booking *entity.Booking) (*entity.PoolResolution, error)
	GetSeries(ctx context.Context, seriesKey string) (*response.SeriesResponse, error)
}

type seriesService struct {
	repo     *repository.Repository
	strategy *StrategyResolver
	log      *zap.Logger
}

func NewSeriesService(repo *repository.Repository, strategy *StrategyResolver, log *zap.Logger) SeriesService {
	return &seriesService{
		repo:     repo,
		strategy: strategy,
		log:      log.With(zap.String("service", "series")),
	}
}

// PrimaryBooking returns the primary member of a series, or nil when the
// series has no members. Deleting a primary needs no fixup: the next
// earliest booking takes over because the role is derived, never stored.
func (s *seriesService) PrimaryBooking(ctx context.Context, seriesKey string) (*entity.Booking, error) {
	if seriesKey == "" {
		return nil, nil
	}

	bookings, err := s.repo.Booking.FindBySeriesKey(ctx, seriesKey)
	if err != nil {
		return nil, fmt.Errorf("resolve primary of series %s: %w", seriesKey, err)
	}
	if len(bookings) == 0 {
		return nil, nil
	}
	return bookings[0], nil
}

// IsPrimary reports whether a booking leads its series. A booking outside
// any series counts as primary: it owns its organizer and pool outright.
func (s *seriesService) IsPrimary(ctx context.Context, booking *entity.Booking) (bool, error) {
	if !booking.InSeries() {
		return true, nil
	}

	primary, err := s.PrimaryBooking(ctx, *booking.SeriesKey)
	if err != nil {
		return false, err
	}
	return primary == nil || primary.ID == booking.ID, nil
}

// EffectiveOrganizer returns the booking's own organizer when set,
// otherwise the primary booking's organizer for series members, otherwise
// nil.
func (s *seriesService) EffectiveOrganizer(ctx context.Context, booking *entity.Booking) (*entity.Organizer, error) {
	if organizer := booking.Organizer(); organizer != nil {
		return organizer, nil
	}
	if !booking.InSeries() {
		return nil, nil
	}

	primary, err := s.PrimaryBooking(ctx, *booking.SeriesKey)
	if err != nil {
		return nil, err
	}
	if primary == nil || primary.ID == booking.ID {
		return nil, nil
	}
	return primary.Organizer(), nil
}

// EffectivePool resolves which pool a booking exposes. A booking's own pool
// always wins. Series members without one borrow the primary's pool, but
// only under the event strategy, and a primary never borrows: a primary
// without a pool resolves to none.
func (s *seriesService) EffectivePool(ctx context.Context, booking *entity.Booking) (*entity.PoolResolution, error) {
	own, err := s.repo.Pool.FindByBookingID(ctx, booking.ID)
	if err != nil {
		return nil, fmt.Errorf("resolve pool of booking %d: %w", booking.ID, err)
	}
	if own != nil {
		return &entity.PoolResolution{Kind: entity.PoolResolutionOwn, Pool: own}, nil
	}

	none := &entity.PoolResolution{Kind: entity.PoolResolutionNone}

	if !booking.InSeries() {
		return none, nil
	}
	if s.strategy.StrategyForBooking(booking) != entity.PoolStrategyEvent {
		return none, nil
	}

	primary, err := s.PrimaryBooking(ctx, *booking.SeriesKey)
	if err != nil {
		return nil, err
	}
	if primary == nil || primary.ID == booking.ID {
		return none, nil
	}

	shared, err := s.repo.Pool.FindByBookingID(ctx, primary.ID)
	if err != nil {
		return nil, fmt.Errorf("resolve shared pool of booking %d: %w", booking.ID, err)
	}
	if shared == nil {
		return none, nil
	}
	return &entity.PoolResolution{Kind: entity.PoolResolutionShared, Pool: shared}, nil
}

func (s *seriesService) GetSeries(ctx context.Context, seriesKey string) (*response.SeriesResponse, error) {
	bookings, err := s.repo.Booking.FindBySeriesKey(ctx, seriesKey)
	if err != nil {
		s.log.Error("Failed to get series", zap.Error(err), zap.String("series_key", seriesKey))
		return nil, fmt.Errorf("get series %s: %w", seriesKey, err)
	}
	if len(bookings) == 0 {
		return nil, fmt.Errorf("series %s: %w", seriesKey, ErrSeriesNotFound)
	}

	primary := bookings[0]
	resolution, err := s.EffectivePool(ctx, primary)
	if err != nil {
		return nil, err
	}

	resp := &response.SeriesResponse{
		SeriesKey:        seriesKey,
		PrimaryBookingID: primary.ID,
		Organizer:        response.OrganizerToResponse(primary.Organizer()),
		Pool:             response.PoolResolutionToResponse(resolution),
	}
	if primary.SeriesLabel != nil {
		resp.SeriesLabel = *primary.SeriesLabel
	}
	for _, booking := range bookings {
		resp.Bookings = append(resp.Bookings, response.BookingToResponse(booking))
	}

	s.log.Info("Series retrieved",
		zap.String("series_key", seriesKey),
		zap.Int64("primary_booking_id", primary.ID),
		zap.Int("bookings", len(bookings)),
	)

	return resp, nil
}
