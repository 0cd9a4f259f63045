package repository

import (
	"context"
	"fmt"

	"club-booking/internal/data/entity"
	"club-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type TeamRepository interface {
	WithTx(q database.Querier) TeamRepository
	Create(ctx context.Context, team *entity.Team) error
	FindByID(ctx context.Context, id int64) (*entity.Team, error)
	FindByBookingID(ctx context.Context, bookingID int64) ([]*entity.Team, error)
	Delete(ctx context.Context, id int64) error
}

type teamRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewTeamRepository(db database.PgxIface, log *zap.Logger) TeamRepository {
	return &teamRepository{
		db:  db,
		log: log.With(zap.String("repository", "team")),
	}
}

func (r *teamRepository) WithTx(q database.Querier) TeamRepository {
	return &teamRepository{db: q, log: r.log}
}

func (r *teamRepository) Create(ctx context.Context, team *entity.Team) error {
	query := `
		INSERT INTO teams (booking_id, name)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		team.BookingID,
		team.Name,
	).Scan(&team.ID, &team.CreatedAt, &team.UpdatedAt)

	if err != nil {
		r.log.Error("Failed to create team",
			zap.Error(err),
			zap.Int64("booking_id", team.BookingID),
			zap.String("name", team.Name),
		)
		return fmt.Errorf("create team for booking %d: %w", team.BookingID, err)
	}

	return nil
}

func (r *teamRepository) FindByID(ctx context.Context, id int64) (*entity.Team, error) {
	query := `
		SELECT id, booking_id, name, created_at, updated_at
		FROM teams
		WHERE id = $1
	`

	var team entity.Team
	err := r.db.QueryRow(ctx, query, id).Scan(
		&team.ID,
		&team.BookingID,
		&team.Name,
		&team.CreatedAt,
		&team.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find team by ID",
			zap.Error(err),
			zap.Int64("team_id", id),
		)
		return nil, fmt.Errorf("find team by ID %d: %w", id, err)
	}

	return &team, nil
}

func (r *teamRepository) FindByBookingID(ctx context.Context, bookingID int64) ([]*entity.Team, error) {
	query := `
		SELECT id, booking_id, name, created_at, updated_at
		FROM teams
		WHERE booking_id = $1
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		r.log.Error("Failed to find teams by booking ID",
			zap.Error(err),
			zap.Int64("booking_id", bookingID),
		)
		return nil, fmt.Errorf("find teams for booking %d: %w", bookingID, err)
	}
	defer rows.Close()

	var teams []*entity.Team
	for rows.Next() {
		var team entity.Team
		err := rows.Scan(
			&team.ID,
			&team.BookingID,
			&team.Name,
			&team.CreatedAt,
			&team.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan team row", zap.Error(err))
			return nil, fmt.Errorf("scan team row: %w", err)
		}
		teams = append(teams, &team)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read team rows: %w", err)
	}

	return teams, nil
}

func (r *teamRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM teams WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete team",
			zap.Error(err),
			zap.Int64("team_id", id),
		)
		return fmt.Errorf("delete team %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("team %d: %w", id, ErrNotFound)
	}

	r.log.Info("Team deleted", zap.Int64("team_id", id))
	return nil
}
