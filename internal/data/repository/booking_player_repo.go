package repository

import (
	"context"
	"fmt"

	"club-booking/internal/data/entity"
	"club-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingPlayerRepository interface {
	WithTx(q database.Querier) BookingPlayerRepository
	Create(ctx context.Context, player *entity.BookingPlayer) error
	FindByID(ctx context.Context, id int64) (*entity.BookingPlayer, error)
	FindByBookingID(ctx context.Context, bookingID int64) ([]*entity.BookingPlayer, error)
	FindByBookingAndMember(ctx context.Context, bookingID, memberID int64) (*entity.BookingPlayer, error)
	Update(ctx context.Context, player *entity.BookingPlayer) error
	Delete(ctx context.Context, id int64) error
}

type bookingPlayerRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewBookingPlayerRepository(db database.PgxIface, log *zap.Logger) BookingPlayerRepository {
	return &bookingPlayerRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking_player")),
	}
}

func (r *bookingPlayerRepository) WithTx(q database.Querier) BookingPlayerRepository {
	return &bookingPlayerRepository{db: q, log: r.log}
}

func (r *bookingPlayerRepository) Create(ctx context.Context, player *entity.BookingPlayer) error {
	query := `
		INSERT INTO booking_players (booking_id, member_id, member_name, status, invited_by, responded_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		player.BookingID,
		player.MemberID,
		player.MemberName,
		player.Status,
		player.InvitedBy,
		player.RespondedAt,
	).Scan(&player.ID, &player.CreatedAt, &player.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("member %d on booking %d: %w", player.MemberID, player.BookingID, ErrDuplicatePlayer)
		}
		r.log.Error("Failed to create booking player",
			zap.Error(err),
			zap.Int64("booking_id", player.BookingID),
			zap.Int64("member_id", player.MemberID),
		)
		return fmt.Errorf("add player %d to booking %d: %w", player.MemberID, player.BookingID, err)
	}

	return nil
}

func (r *bookingPlayerRepository) FindByID(ctx context.Context, id int64) (*entity.BookingPlayer, error) {
	query := `
		SELECT id, booking_id, member_id, member_name, status, invited_by, responded_at, created_at, updated_at
		FROM booking_players
		WHERE id = $1
	`

	var player entity.BookingPlayer
	err := r.db.QueryRow(ctx, query, id).Scan(
		&player.ID,
		&player.BookingID,
		&player.MemberID,
		&player.MemberName,
		&player.Status,
		&player.InvitedBy,
		&player.RespondedAt,
		&player.CreatedAt,
		&player.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking player by ID",
			zap.Error(err),
			zap.Int64("player_id", id),
		)
		return nil, fmt.Errorf("find booking player by ID %d: %w", id, err)
	}

	return &player, nil
}

func (r *bookingPlayerRepository) FindByBookingID(ctx context.Context, bookingID int64) ([]*entity.BookingPlayer, error) {
	query := `
		SELECT id, booking_id, member_id, member_name, status, invited_by, responded_at, created_at, updated_at
		FROM booking_players
		WHERE booking_id = $1
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		r.log.Error("Failed to find players by booking ID",
			zap.Error(err),
			zap.Int64("booking_id", bookingID),
		)
		return nil, fmt.Errorf("find players for booking %d: %w", bookingID, err)
	}
	defer rows.Close()

	var players []*entity.BookingPlayer
	for rows.Next() {
		var player entity.BookingPlayer
		err := rows.Scan(
			&player.ID,
			&player.BookingID,
			&player.MemberID,
			&player.MemberName,
			&player.Status,
			&player.InvitedBy,
			&player.RespondedAt,
			&player.CreatedAt,
			&player.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan booking player row", zap.Error(err))
			return nil, fmt.Errorf("scan booking player row: %w", err)
		}
		players = append(players, &player)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read booking player rows: %w", err)
	}

	return players, nil
}

func (r *bookingPlayerRepository) FindByBookingAndMember(ctx context.Context, bookingID, memberID int64) (*entity.BookingPlayer, error) {
	query := `
		SELECT id, booking_id, member_id, member_name, status, invited_by, responded_at, created_at, updated_at
		FROM booking_players
		WHERE booking_id = $1 AND member_id = $2
	`

	var player entity.BookingPlayer
	err := r.db.QueryRow(ctx, query, bookingID, memberID).Scan(
		&player.ID,
		&player.BookingID,
		&player.MemberID,
		&player.MemberName,
		&player.Status,
		&player.InvitedBy,
		&player.RespondedAt,
		&player.CreatedAt,
		&player.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking player",
			zap.Error(err),
			zap.Int64("booking_id", bookingID),
			zap.Int64("member_id", memberID),
		)
		return nil, fmt.Errorf("find player %d on booking %d: %w", memberID, bookingID, err)
	}

	return &player, nil
}

func (r *bookingPlayerRepository) Update(ctx context.Context, player *entity.BookingPlayer) error {
	query := `
		UPDATE booking_players
		SET status = $2, responded_at = $3, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		player.ID,
		player.Status,
		player.RespondedAt,
	)

	if err != nil {
		r.log.Error("Failed to update booking player",
			zap.Error(err),
			zap.Int64("player_id", player.ID),
		)
		return fmt.Errorf("update booking player %d: %w", player.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking player %d: %w", player.ID, ErrNotFound)
	}

	return nil
}

func (r *bookingPlayerRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM booking_players WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete booking player",
			zap.Error(err),
			zap.Int64("player_id", id),
		)
		return fmt.Errorf("delete booking player %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking player %d: %w", id, ErrNotFound)
	}

	return nil
}
