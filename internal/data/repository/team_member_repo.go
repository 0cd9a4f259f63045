package repository

import (
	"context"
	"fmt"

	"club-booking/internal/data/entity"
	"club-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type TeamMemberRepository interface {
	WithTx(q database.Querier) TeamMemberRepository
	Create(ctx context.Context, member *entity.TeamMember) error
	FindByID(ctx context.Context, id int64) (*entity.TeamMember, error)
	FindByTeamID(ctx context.Context, teamID int64) ([]*entity.TeamMember, error)
	Update(ctx context.Context, member *entity.TeamMember) error
	Delete(ctx context.Context, id int64) error
}

type teamMemberRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewTeamMemberRepository(db database.PgxIface, log *zap.Logger) TeamMemberRepository {
	return &teamMemberRepository{
		db:  db,
		log: log.With(zap.String("repository", "team_member")),
	}
}

func (r *teamMemberRepository) WithTx(q database.Querier) TeamMemberRepository {
	return &teamMemberRepository{db: q, log: r.log}
}

func (r *teamMemberRepository) Create(ctx context.Context, member *entity.TeamMember) error {
	query := `
		INSERT INTO team_members (team_id, member_id, member_name, position, availability,
			confirmed_at, is_substitute, substituted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		member.TeamID,
		member.MemberID,
		member.MemberName,
		member.Position,
		member.Availability,
		member.ConfirmedAt,
		member.IsSubstitute,
		member.SubstitutedAt,
	).Scan(&member.ID, &member.CreatedAt, &member.UpdatedAt)

	if err != nil {
		r.log.Error("Failed to create team member",
			zap.Error(err),
			zap.Int64("team_id", member.TeamID),
			zap.Int64("member_id", member.MemberID),
		)
		return fmt.Errorf("add member %d to team %d: %w", member.MemberID, member.TeamID, err)
	}

	return nil
}

func (r *teamMemberRepository) FindByID(ctx context.Context, id int64) (*entity.TeamMember, error) {
	query := `
		SELECT id, team_id, member_id, member_name, position, availability,
			confirmed_at, is_substitute, substituted_at, created_at, updated_at
		FROM team_members
		WHERE id = $1
	`

	var member entity.TeamMember
	err := r.db.QueryRow(ctx, query, id).Scan(
		&member.ID,
		&member.TeamID,
		&member.MemberID,
		&member.MemberName,
		&member.Position,
		&member.Availability,
		&member.ConfirmedAt,
		&member.IsSubstitute,
		&member.SubstitutedAt,
		&member.CreatedAt,
		&member.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find team member by ID",
			zap.Error(err),
			zap.Int64("entry_id", id),
		)
		return nil, fmt.Errorf("find team member by ID %d: %w", id, err)
	}

	return &member, nil
}

func (r *teamMemberRepository) FindByTeamID(ctx context.Context, teamID int64) ([]*entity.TeamMember, error) {
	query := `
		SELECT id, team_id, member_id, member_name, position, availability,
			confirmed_at, is_substitute, substituted_at, created_at, updated_at
		FROM team_members
		WHERE team_id = $1
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, teamID)
	if err != nil {
		r.log.Error("Failed to find members by team ID",
			zap.Error(err),
			zap.Int64("team_id", teamID),
		)
		return nil, fmt.Errorf("find members for team %d: %w", teamID, err)
	}
	defer rows.Close()

	var members []*entity.TeamMember
	for rows.Next() {
		var member entity.TeamMember
		err := rows.Scan(
			&member.ID,
			&member.TeamID,
			&member.MemberID,
			&member.MemberName,
			&member.Position,
			&member.Availability,
			&member.ConfirmedAt,
			&member.IsSubstitute,
			&member.SubstitutedAt,
			&member.CreatedAt,
			&member.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan team member row", zap.Error(err))
			return nil, fmt.Errorf("scan team member row: %w", err)
		}
		members = append(members, &member)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read team member rows: %w", err)
	}

	return members, nil
}

func (r *teamMemberRepository) Update(ctx context.Context, member *entity.TeamMember) error {
	query := `
		UPDATE team_members
		SET member_id = $2, member_name = $3, position = $4, availability = $5,
		    confirmed_at = $6, is_substitute = $7, substituted_at = $8, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		member.ID,
		member.MemberID,
		member.MemberName,
		member.Position,
		member.Availability,
		member.ConfirmedAt,
		member.IsSubstitute,
		member.SubstitutedAt,
	)

	if err != nil {
		r.log.Error("Failed to update team member",
			zap.Error(err),
			zap.Int64("entry_id", member.ID),
		)
		return fmt.Errorf("update team member %d: %w", member.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("team member %d: %w", member.ID, ErrNotFound)
	}

	return nil
}

func (r *teamMemberRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM team_members WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete team member",
			zap.Error(err),
			zap.Int64("entry_id", id),
		)
		return fmt.Errorf("delete team member %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("team member %d: %w", id, ErrNotFound)
	}

	return nil
}
