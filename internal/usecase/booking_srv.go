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

type BookingService interface {
	CreateBooking(ctx context.Context, actor entity.Actor, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetBookingByID(ctx context.Context, bookingID int64) (*response.BookingDetailResponse, error)
	GetBookingByReference(ctx context.Context, reference string) (*response.BookingDetailResponse, error)
	ListBookings(ctx context.Context, req *request.ListBookingsRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	UpdateBooking(ctx context.Context, actor entity.Actor, bookingID int64, req *request.UpdateBookingRequest) (*response.BookingResponse, error)
	DeleteBooking(ctx context.Context, actor entity.Actor, bookingID int64) error
	DuplicateBooking(ctx context.Context, actor entity.Actor, bookingID int64, req *request.DuplicateBookingRequest) (*response.BookingResponse, error)
	CheckCapacity(ctx context.Context, playDate string, session, rinks int, excludeBookingID *int64) (*response.CapacityResponse, error)
}

type bookingService struct {
	repo     *repository.Repository
	db       database.PgxIface
	club     utils.ClubConfig
	strategy *StrategyResolver
	series   SeriesService
	audit    audit.Sink
	metrics  *metrics.Metrics
	log      *zap.Logger
}

func NewBookingService(
	repo *repository.Repository,
	db database.PgxIface,
	club utils.ClubConfig,
	strategy *StrategyResolver,
	series SeriesService,
	auditSink audit.Sink,
	m *metrics.Metrics,
	log *zap.Logger,
) BookingService {
	return &bookingService{
		repo:     repo,
		db:       db,
		club:     club,
		strategy: strategy,
		series:   series,
		audit:    auditSink,
		metrics:  m,
		log:      log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, actor entity.Actor, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	playDate, err := utils.ParseDate(req.PlayDate)
	if err != nil {
		return nil, fmt.Errorf("invalid play date %s: %w", req.PlayDate, err)
	}

	if !s.club.HasSession(req.Session) {
		return nil, fmt.Errorf("session %d: %w", req.Session, ErrInvalidSession)
	}

	var autoClose *time.Time
	if req.PoolAutoCloseDate != nil {
		d, err := utils.ParseDate(*req.PoolAutoCloseDate)
		if err != nil {
			return nil, fmt.Errorf("invalid pool auto close date %s: %w", *req.PoolAutoCloseDate, err)
		}
		autoClose = &d
	}

	// Build booking entity
	booking := &entity.Booking{
		Reference:     utils.GenerateBookingReference(),
		PlayDate:      playDate,
		Session:       req.Session,
		RinkCount:     req.RinkCount,
		Kind:          entity.BookingKind(req.Kind),
		Venue:         venueFrom(req.Venue),
		OrganizerID:   req.OrganizerID,
		OrganizerName: req.OrganizerName,
		SeriesKey:     req.SeriesKey,
		SeriesLabel:   req.SeriesLabel,
		EventType:     req.EventType,
		EventFormat:   req.EventFormat,
		EventGender:   req.EventGender,
		PoolEnabled:   req.PoolEnabled,
	}

	err = s.db.RunInTx(ctx, func(q database.Querier) error {
		bookings := s.repo.Booking.WithTx(q)

		// Check capacity; away fixtures never occupy home rinks
		if !booking.IsAway() {
			if err := s.checkSlotCapacity(ctx, bookings, playDate, req.Session, req.RinkCount, nil); err != nil {
				return err
			}
		}

		if err := bookings.Create(ctx, booking); err != nil {
			return err
		}

		// Create the pool when the strategy gives this booking its own
		if err := s.createPoolIfOwed(ctx, q, booking, autoClose, req.PoolMaxPlayers); err != nil {
			return err
		}

		// A roll-up organizer plays in their own game
		return s.confirmOrganizer(ctx, q, booking)
	})

	if err != nil {
		if errors.Is(err, ErrCapacityExceeded) {
			s.metrics.CapacityRejections.Inc()
			s.log.Warn("Booking rejected, not enough rinks",
				zap.String("play_date", req.PlayDate),
				zap.Int("session", req.Session),
				zap.Int("rink_count", req.RinkCount),
			)
			return nil, err
		}
		s.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("play_date", req.PlayDate),
			zap.Int("session", req.Session),
		)
		return nil, err
	}

	s.metrics.BookingsCreated.WithLabelValues(string(booking.Kind)).Inc()
	s.audit.Record(ctx, audit.Entry{
		Operation:  "booking.create",
		EntityKind: "booking",
		EntityID:   booking.ID,
		Actor:      actor,
		Summary:    booking.Reference,
		After: map[string]any{
			"play_date":  req.PlayDate,
			"session":    booking.Session,
			"rink_count": booking.RinkCount,
			"kind":       booking.Kind,
		},
	})

	s.log.Info("Booking created",
		zap.Int64("booking_id", booking.ID),
		zap.String("reference", booking.Reference),
		zap.String("play_date", req.PlayDate),
		zap.Int("session", booking.Session),
		zap.Int("rink_count", booking.RinkCount),
		zap.String("kind", string(booking.Kind)),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) GetBookingByID(ctx context.Context, bookingID int64) (*response.BookingDetailResponse, error) {
	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %d: %w", bookingID, ErrBookingNotFound)
	}

	return s.buildBookingDetail(ctx, booking)
}

func (s *bookingService) GetBookingByReference(ctx context.Context, reference string) (*response.BookingDetailResponse, error) {
	booking, err := s.repo.Booking.FindByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s: %w", reference, ErrBookingNotFound)
	}

	return s.buildBookingDetail(ctx, booking)
}

func (s *bookingService) ListBookings(ctx context.Context, req *request.ListBookingsRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	var from, to *time.Time
	if req.From != nil {
		d, err := utils.ParseDate(*req.From)
		if err != nil {
			return nil, fmt.Errorf("invalid from date %s: %w", *req.From, err)
		}
		from = &d
	}
	if req.To != nil {
		d, err := utils.ParseDate(*req.To)
		if err != nil {
			return nil, fmt.Errorf("invalid to date %s: %w", *req.To, err)
		}
		to = &d
	}

	limit := req.Limit()
	offset := req.Offset()

	bookings, err := s.repo.Booking.List(ctx, from, to, limit, offset)
	if err != nil {
		s.log.Error("Failed to list bookings", zap.Error(err))
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	total, err := s.repo.Booking.Count(ctx, from, to)
	if err != nil {
		s.log.Error("Failed to count bookings", zap.Error(err))
		return nil, fmt.Errorf("count bookings: %w", err)
	}

	// Convert to response
	bookingResponses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		bookingResponses[i] = response.BookingToResponse(booking)
	}

	// Calculate pagination
	totalPages := utils.CalculateTotalPages(total, limit)

	s.log.Info("Bookings retrieved",
		zap.Int("count", len(bookings)),
		zap.Int64("total", total),
		zap.Int("page", req.CurrentPage()),
		zap.Int("page_size", limit),
		zap.Int("total_pages", totalPages),
	)

	return response.NewPaginatedResponse(bookingResponses, req.CurrentPage(), limit, total), nil
}

func (s *bookingService) UpdateBooking(ctx context.Context, actor entity.Actor, bookingID int64, req *request.UpdateBookingRequest) (*response.BookingResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %d: %w", bookingID, ErrBookingNotFound)
	}

	// Apply changes to a copy; the original is kept for the audit trail
	updated := *booking
	slotChanged := false

	if req.PlayDate != nil {
		d, err := utils.ParseDate(*req.PlayDate)
		if err != nil {
			return nil, fmt.Errorf("invalid play date %s: %w", *req.PlayDate, err)
		}
		if !d.Equal(updated.PlayDate) {
			updated.PlayDate = d
			slotChanged = true
		}
	}
	if req.Session != nil && *req.Session != updated.Session {
		if !s.club.HasSession(*req.Session) {
			return nil, fmt.Errorf("session %d: %w", *req.Session, ErrInvalidSession)
		}
		updated.Session = *req.Session
		slotChanged = true
	}
	if req.RinkCount != nil && *req.RinkCount != updated.RinkCount {
		updated.RinkCount = *req.RinkCount
		slotChanged = true
	}
	if req.Venue != nil {
		venue := entity.Venue(*req.Venue)
		if updated.Venue == nil || *updated.Venue != venue {
			updated.Venue = &venue
			slotChanged = true
		}
	}
	if req.OrganizerID != nil {
		updated.OrganizerID = req.OrganizerID
	}
	if req.OrganizerName != nil {
		updated.OrganizerName = req.OrganizerName
	}
	if req.SeriesLabel != nil {
		updated.SeriesLabel = req.SeriesLabel
	}
	if req.EventFormat != nil {
		updated.EventFormat = req.EventFormat
	}
	if req.EventGender != nil {
		updated.EventGender = req.EventGender
	}

	err = s.db.RunInTx(ctx, func(q database.Querier) error {
		bookings := s.repo.Booking.WithTx(q)

		// Re-check capacity when the slot or rink demand moved. The booking's
		// own rinks are left out of the sum so it competes only with others.
		if slotChanged && !updated.IsAway() {
			if err := s.checkSlotCapacity(ctx, bookings, updated.PlayDate, updated.Session, updated.RinkCount, &updated.ID); err != nil {
				return err
			}
		}

		return bookings.Update(ctx, &updated)
	})

	if err != nil {
		if errors.Is(err, ErrCapacityExceeded) {
			s.metrics.CapacityRejections.Inc()
			s.log.Warn("Booking update rejected, not enough rinks",
				zap.Int64("booking_id", bookingID),
				zap.Int("rink_count", updated.RinkCount),
			)
			return nil, err
		}
		s.log.Error("Failed to update booking", zap.Error(err), zap.Int64("booking_id", bookingID))
		return nil, err
	}

	s.audit.Record(ctx, audit.Entry{
		Operation:  "booking.update",
		EntityKind: "booking",
		EntityID:   booking.ID,
		Actor:      actor,
		Summary:    booking.Reference,
		Before: map[string]any{
			"play_date":  booking.PlayDate.Format(time.DateOnly),
			"session":    booking.Session,
			"rink_count": booking.RinkCount,
		},
		After: map[string]any{
			"play_date":  updated.PlayDate.Format(time.DateOnly),
			"session":    updated.Session,
			"rink_count": updated.RinkCount,
		},
	})

	s.log.Info("Booking updated",
		zap.Int64("booking_id", booking.ID),
		zap.String("reference", booking.Reference),
		zap.Bool("slot_changed", slotChanged),
	)

	resp := response.BookingToResponse(&updated)
	return &resp, nil
}

func (s *bookingService) DeleteBooking(ctx context.Context, actor entity.Actor, bookingID int64) error {
	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if booking == nil {
		return fmt.Errorf("booking %d: %w", bookingID, ErrBookingNotFound)
	}

	// Flag deletions that strand members before the cascade removes them
	pool, err := s.repo.Pool.FindByBookingID(ctx, bookingID)
	if err != nil {
		return err
	}
	if pool != nil {
		count, err := s.repo.PoolRegistration.CountActive(ctx, pool.ID)
		if err != nil {
			return err
		}
		if count > 0 {
			s.log.Warn("Deleting booking with active pool registrations",
				zap.Int64("booking_id", bookingID),
				zap.Int64("pool_id", pool.ID),
				zap.Int("registrations", count),
			)
		}
	}

	if booking.InSeries() {
		isPrimary, err := s.series.IsPrimary(ctx, booking)
		if err != nil {
			return err
		}
		if isPrimary {
			s.log.Warn("Deleting the primary booking of a series, the next earliest member takes over",
				zap.Int64("booking_id", bookingID),
				zap.String("series_key", *booking.SeriesKey),
			)
		}
	}

	if err := s.repo.Booking.Delete(ctx, bookingID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("booking %d: %w", bookingID, ErrBookingNotFound)
		}
		return err
	}

	s.audit.Record(ctx, audit.Entry{
		Operation:  "booking.delete",
		EntityKind: "booking",
		EntityID:   bookingID,
		Actor:      actor,
		Summary:    booking.Reference,
		Before: map[string]any{
			"play_date":  booking.PlayDate.Format(time.DateOnly),
			"session":    booking.Session,
			"rink_count": booking.RinkCount,
		},
	})

	return nil
}

// DuplicateBooking copies a booking onto a new slot and links both into the
// same series. A standalone original gets a fresh series key stamped on it
// in the same transaction, so the pair is a series from the start.
func (s *bookingService) DuplicateBooking(ctx context.Context, actor entity.Actor, bookingID int64, req *request.DuplicateBookingRequest) (*response.BookingResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	playDate, err := utils.ParseDate(req.PlayDate)
	if err != nil {
		return nil, fmt.Errorf("invalid play date %s: %w", req.PlayDate, err)
	}

	if !s.club.HasSession(req.Session) {
		return nil, fmt.Errorf("session %d: %w", req.Session, ErrInvalidSession)
	}

	original, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if original == nil {
		return nil, fmt.Errorf("booking %d: %w", bookingID, ErrBookingNotFound)
	}

	copied := &entity.Booking{
		Reference:     utils.GenerateBookingReference(),
		PlayDate:      playDate,
		Session:       req.Session,
		RinkCount:     original.RinkCount,
		Kind:          original.Kind,
		Venue:         original.Venue,
		OrganizerID:   original.OrganizerID,
		OrganizerName: original.OrganizerName,
		SeriesLabel:   original.SeriesLabel,
		EventType:     original.EventType,
		EventFormat:   original.EventFormat,
		EventGender:   original.EventGender,
		PoolEnabled:   original.PoolEnabled,
	}

	var poolReason string

	err = s.db.RunInTx(ctx, func(q database.Querier) error {
		bookings := s.repo.Booking.WithTx(q)
		pools := s.repo.Pool.WithTx(q)

		if !copied.IsAway() {
			if err := s.checkSlotCapacity(ctx, bookings, playDate, req.Session, copied.RinkCount, nil); err != nil {
				return err
			}
		}

		// Link original and copy into one series
		if original.SeriesKey == nil {
			key := utils.GenerateSeriesKey()
			original.SeriesKey = &key
			if err := bookings.Update(ctx, original); err != nil {
				return err
			}
		}
		copied.SeriesKey = original.SeriesKey

		if err := bookings.Create(ctx, copied); err != nil {
			return err
		}

		originalPool, err := pools.FindByBookingID(ctx, original.ID)
		if err != nil {
			return err
		}

		create, reason := s.strategy.ShouldCreatePoolOnDuplicate(original, originalPool)
		poolReason = reason
		if create {
			pool := &entity.Pool{
				BookingID:     copied.ID,
				IsOpen:        true,
				AutoCloseDate: originalPool.AutoCloseDate,
				MaxPlayers:    originalPool.MaxPlayers,
			}
			if err := pools.Create(ctx, pool); err != nil {
				return err
			}
		}

		return s.confirmOrganizer(ctx, q, copied)
	})

	if err != nil {
		if errors.Is(err, ErrCapacityExceeded) {
			s.metrics.CapacityRejections.Inc()
			s.log.Warn("Duplicate rejected, not enough rinks",
				zap.Int64("original_id", bookingID),
				zap.String("play_date", req.PlayDate),
				zap.Int("session", req.Session),
			)
			return nil, err
		}
		s.log.Error("Failed to duplicate booking", zap.Error(err), zap.Int64("original_id", bookingID))
		return nil, err
	}

	s.metrics.BookingsCreated.WithLabelValues(string(copied.Kind)).Inc()
	s.audit.Record(ctx, audit.Entry{
		Operation:  "booking.duplicate",
		EntityKind: "booking",
		EntityID:   copied.ID,
		Actor:      actor,
		Summary:    fmt.Sprintf("%s from %s", copied.Reference, original.Reference),
		After: map[string]any{
			"play_date": req.PlayDate,
			"session":   req.Session,
			"series":    *copied.SeriesKey,
		},
	})

	s.log.Info("Booking duplicated",
		zap.Int64("original_id", original.ID),
		zap.Int64("booking_id", copied.ID),
		zap.String("series_key", *copied.SeriesKey),
		zap.String("pool_decision", poolReason),
	)

	resp := response.BookingToResponse(copied)
	return &resp, nil
}

// CheckCapacity reports whether a number of rinks is still bookable for a
// date and session. excludeBookingID leaves one booking out of the sum so
// edit forms can probe the slot without counting themselves. Read-only; the
// authoritative check runs again inside the write transaction.
func (s *bookingService) CheckCapacity(ctx context.Context, playDate string, session, rinks int, excludeBookingID *int64) (*response.CapacityResponse, error) {
	date, err := utils.ParseDate(playDate)
	if err != nil {
		return nil, fmt.Errorf("invalid play date %s: %w", playDate, err)
	}
	if !s.club.HasSession(session) {
		return nil, fmt.Errorf("session %d: %w", session, ErrInvalidSession)
	}
	if rinks < 1 {
		return nil, fmt.Errorf("%w: rink count must be at least 1", ErrValidation)
	}

	used, err := s.repo.Booking.SumRinks(ctx, date, session, excludeBookingID)
	if err != nil {
		return nil, err
	}

	check := &entity.CapacityCheck{
		OK:             rinks <= s.club.TotalRinks-used,
		RequestedRinks: rinks,
		AvailableRinks: s.club.TotalRinks - used,
		TotalRinks:     s.club.TotalRinks,
	}

	resp := response.CapacityToResponse(check, date, session)
	return &resp, nil
}

// checkSlotCapacity enforces the rink budget for one date and session.
// excludeID leaves one booking out of the sum so updates can re-check
// against their own slot.
func (s *bookingService) checkSlotCapacity(ctx context.Context, bookings repository.BookingRepository, playDate time.Time, session, rinks int, excludeID *int64) error {
	used, err := bookings.SumRinks(ctx, playDate, session, excludeID)
	if err != nil {
		return err
	}

	available := s.club.TotalRinks - used
	if rinks > available {
		return &CapacityError{Requested: rinks, Available: available}
	}
	return nil
}

// createPoolIfOwed gives a freshly created booking its own pool when the
// strategy says so. Under the event strategy only the series primary gets
// one, and never a second pool for a series that already has one.
func (s *bookingService) createPoolIfOwed(ctx context.Context, q database.Querier, booking *entity.Booking, autoClose *time.Time, maxPlayers *int) error {
	if !booking.PoolEnabled {
		return nil
	}

	strategy := s.strategy.StrategyForBooking(booking)
	switch strategy {
	case entity.PoolStrategyNone:
		return nil
	case entity.PoolStrategyEvent:
		if booking.InSeries() {
			owed, err := s.seriesOwesPool(ctx, q, booking)
			if err != nil || !owed {
				return err
			}
		}
	}

	pool := &entity.Pool{
		BookingID:     booking.ID,
		IsOpen:        true,
		AutoCloseDate: autoClose,
		MaxPlayers:    maxPlayers,
	}
	if err := s.repo.Pool.WithTx(q).Create(ctx, pool); err != nil {
		return err
	}

	s.log.Info("Pool created with booking",
		zap.Int64("booking_id", booking.ID),
		zap.Int64("pool_id", pool.ID),
		zap.String("strategy", string(strategy)),
	)
	return nil
}

// seriesOwesPool reports whether a booking that just joined a series under
// the event strategy should carry the series pool: it must be the primary,
// and no member may have one already.
func (s *bookingService) seriesOwesPool(ctx context.Context, q database.Querier, booking *entity.Booking) (bool, error) {
	bookings := s.repo.Booking.WithTx(q)
	pools := s.repo.Pool.WithTx(q)

	members, err := bookings.FindBySeriesKey(ctx, *booking.SeriesKey)
	if err != nil {
		return false, err
	}
	if len(members) == 0 || members[0].ID != booking.ID {
		return false, nil
	}

	for _, member := range members {
		if member.ID == booking.ID {
			continue
		}
		pool, err := pools.FindByBookingID(ctx, member.ID)
		if err != nil {
			return false, err
		}
		if pool != nil {
			return false, nil
		}
	}
	return true, nil
}

// confirmOrganizer seats a roll-up organizer on their own player list as
// confirmed. Other kinds and organizerless roll-ups are left alone.
func (s *bookingService) confirmOrganizer(ctx context.Context, q database.Querier, booking *entity.Booking) error {
	if booking.Kind != entity.BookingKindRollup || booking.OrganizerID == nil {
		return nil
	}

	name := ""
	if booking.OrganizerName != nil {
		name = *booking.OrganizerName
	}

	now := time.Now()
	player := &entity.BookingPlayer{
		BookingID:   booking.ID,
		MemberID:    *booking.OrganizerID,
		MemberName:  name,
		Status:      entity.PlayerStatusConfirmed,
		RespondedAt: &now,
	}
	if err := s.repo.BookingPlayer.WithTx(q).Create(ctx, player); err != nil {
		return fmt.Errorf("confirm organizer for booking %d: %w", booking.ID, err)
	}
	return nil
}

func (s *bookingService) buildBookingDetail(ctx context.Context, booking *entity.Booking) (*response.BookingDetailResponse, error) {
	isPrimary, err := s.series.IsPrimary(ctx, booking)
	if err != nil {
		return nil, err
	}

	organizer, err := s.series.EffectiveOrganizer(ctx, booking)
	if err != nil {
		return nil, err
	}

	resolution, err := s.series.EffectivePool(ctx, booking)
	if err != nil {
		return nil, err
	}

	detail := &response.BookingDetailResponse{
		BookingResponse: response.BookingToResponse(booking),
		IsPrimary:       isPrimary,
		Organizer:       response.OrganizerToResponse(organizer),
		Pool:            response.PoolResolutionToResponse(resolution),
	}

	teams, err := s.repo.Team.FindByBookingID(ctx, booking.ID)
	if err != nil {
		return nil, err
	}
	for _, team := range teams {
		members, err := s.repo.TeamMember.FindByTeamID(ctx, team.ID)
		if err != nil {
			return nil, err
		}
		detail.Teams = append(detail.Teams, response.TeamToResponse(team, members))
	}

	players, err := s.repo.BookingPlayer.FindByBookingID(ctx, booking.ID)
	if err != nil {
		return nil, err
	}
	for _, player := range players {
		detail.Players = append(detail.Players, response.PlayerToResponse(player))
	}

	return detail, nil
}

func venueFrom(value *string) *entity.Venue {
	if value == nil {
		return nil
	}
	venue := entity.Venue(*value)
	return &venue
}
