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
	"club-booking/pkg/utils"

	"go.uber.org/zap"
)

// RollupService manages the player list of roll-up bookings. Players follow
// the same pending-then-terminal pattern as roster entries, without
// positions or substitutions.
type RollupService interface {
	InvitePlayer(ctx context.Context, actor entity.Actor, bookingID int64, req *request.InvitePlayerRequest) (*response.PlayerResponse, error)
	RespondToInvite(ctx context.Context, actor entity.Actor, playerID int64, req *request.PlayerRespondRequest) (*response.PlayerResponse, error)
	ListPlayers(ctx context.Context, bookingID int64) ([]response.PlayerResponse, error)
	RemovePlayer(ctx context.Context, actor entity.Actor, playerID int64) error
}

type rollupService struct {
	repo  *repository.Repository
	db    database.PgxIface
	audit audit.Sink
	log   *zap.Logger
}

func NewRollupService(
	repo *repository.Repository,
	db database.PgxIface,
	auditSink audit.Sink,
	log *zap.Logger,
) RollupService {
	return &rollupService{
		repo:  repo,
		db:    db,
		audit: auditSink,
		log:   log.With(zap.String("service", "rollup")),
	}
}

func (s *rollupService) InvitePlayer(ctx context.Context, actor entity.Actor, bookingID int64, req *request.InvitePlayerRequest) (*response.PlayerResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Invite player validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %d: %w", bookingID, ErrBookingNotFound)
	}
	if booking.Kind != entity.BookingKindRollup {
		return nil, fmt.Errorf("%w: booking %d is not a roll-up", ErrValidation, bookingID)
	}

	existing, err := s.repo.BookingPlayer.FindByBookingAndMember(ctx, bookingID, req.MemberID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("member %d on booking %d: %w", req.MemberID, bookingID, ErrAlreadyInvited)
	}

	player := &entity.BookingPlayer{
		BookingID:  bookingID,
		MemberID:   req.MemberID,
		MemberName: req.MemberName,
		Status:     entity.PlayerStatusPending,
		InvitedBy:  &actor.ID,
	}

	if err := s.repo.BookingPlayer.Create(ctx, player); err != nil {
		if errors.Is(err, repository.ErrDuplicatePlayer) {
			return nil, fmt.Errorf("member %d on booking %d: %w", req.MemberID, bookingID, ErrAlreadyInvited)
		}
		s.log.Error("Failed to invite player",
			zap.Error(err),
			zap.Int64("booking_id", bookingID),
			zap.Int64("member_id", req.MemberID),
		)
		return nil, err
	}

	s.audit.Record(ctx, audit.Entry{
		Operation:  "rollup.invite",
		EntityKind: "booking_player",
		EntityID:   player.ID,
		Actor:      actor,
		Summary:    fmt.Sprintf("%s invited to %s", req.MemberName, booking.Reference),
	})

	s.log.Info("Player invited",
		zap.Int64("booking_id", bookingID),
		zap.Int64("player_id", player.ID),
		zap.Int64("member_id", req.MemberID),
	)

	resp := response.PlayerToResponse(player)
	return &resp, nil
}

// RespondToInvite records the invitee's decision. A pending invitation
// accepts exactly one response; later calls are rejected, never
// overwritten. Guard and write share a serializable transaction.
func (s *rollupService) RespondToInvite(ctx context.Context, actor entity.Actor, playerID int64, req *request.PlayerRespondRequest) (*response.PlayerResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	var player *entity.BookingPlayer

	err := s.db.RunInTx(ctx, func(q database.Querier) error {
		players := s.repo.BookingPlayer.WithTx(q)

		var err error
		player, err = players.FindByID(ctx, playerID)
		if err != nil {
			return err
		}
		if player == nil {
			return fmt.Errorf("player %d: %w", playerID, ErrPlayerNotFound)
		}

		if player.Status != entity.PlayerStatusPending {
			return fmt.Errorf("player %d is already %s: %w", playerID, player.Status, ErrInvalidTransition)
		}

		now := time.Now()
		player.Status = entity.PlayerStatus(req.Decision)
		player.RespondedAt = &now

		return players.Update(ctx, player)
	})

	if err != nil {
		if errors.Is(err, ErrPlayerNotFound) || errors.Is(err, ErrInvalidTransition) {
			return nil, err
		}
		s.log.Error("Failed to record invite response", zap.Error(err), zap.Int64("player_id", playerID))
		return nil, err
	}

	s.audit.Record(ctx, audit.Entry{
		Operation:  "rollup.respond",
		EntityKind: "booking_player",
		EntityID:   playerID,
		Actor:      actor,
		After:      map[string]any{"status": player.Status},
	})

	s.log.Info("Invite response recorded",
		zap.Int64("player_id", playerID),
		zap.Int64("member_id", player.MemberID),
		zap.String("decision", req.Decision),
	)

	resp := response.PlayerToResponse(player)
	return &resp, nil
}

func (s *rollupService) ListPlayers(ctx context.Context, bookingID int64) ([]response.PlayerResponse, error) {
	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %d: %w", bookingID, ErrBookingNotFound)
	}

	players, err := s.repo.BookingPlayer.FindByBookingID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	playerResponses := make([]response.PlayerResponse, 0, len(players))
	for _, player := range players {
		playerResponses = append(playerResponses, response.PlayerToResponse(player))
	}
	return playerResponses, nil
}

func (s *rollupService) RemovePlayer(ctx context.Context, actor entity.Actor, playerID int64) error {
	player, err := s.repo.BookingPlayer.FindByID(ctx, playerID)
	if err != nil {
		return err
	}
	if player == nil {
		return fmt.Errorf("player %d: %w", playerID, ErrPlayerNotFound)
	}

	if err := s.repo.BookingPlayer.Delete(ctx, playerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("player %d: %w", playerID, ErrPlayerNotFound)
		}
		return err
	}

	s.audit.Record(ctx, audit.Entry{
		Operation:  "rollup.remove",
		EntityKind: "booking_player",
		EntityID:   playerID,
		Actor:      actor,
		Summary:    player.MemberName,
	})

	return nil
}
