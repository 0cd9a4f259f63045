package repository

import (
	"context"
	"fmt"

	"club-booking/internal/data/entity"
	"club-booking/pkg/database"

	"go.uber.org/zap"
)

type SubstitutionRepository interface {
	WithTx(q database.Querier) SubstitutionRepository
	Append(ctx context.Context, sub *entity.Substitution) error
	FindByTeamID(ctx context.Context, teamID int64) ([]*entity.Substitution, error)
}

type substitutionRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewSubstitutionRepository(db database.PgxIface, log *zap.Logger) SubstitutionRepository {
	return &substitutionRepository{
		db:  db,
		log: log.With(zap.String("repository", "substitution")),
	}
}

func (r *substitutionRepository) WithTx(q database.Querier) SubstitutionRepository {
	return &substitutionRepository{db: q, log: r.log}
}

// Append writes the next record of a team's substitution history. Seq is
// assigned here, one past the team's current maximum; UNIQUE(team_id, seq)
// backs this up when two appends race.
func (r *substitutionRepository) Append(ctx context.Context, sub *entity.Substitution) error {
	query := `
		INSERT INTO team_substitutions (team_id, seq, out_member_id, out_member_name,
			in_member_id, in_member_name, position, actor_id, actor_name, reason)
		VALUES (
			$1,
			(SELECT COALESCE(MAX(seq), 0) + 1 FROM team_substitutions WHERE team_id = $1),
			$2, $3, $4, $5, $6, $7, $8, $9
		)
		RETURNING id, seq, occurred_at
	`

	err := r.db.QueryRow(ctx, query,
		sub.TeamID,
		sub.OutMemberID,
		sub.OutMemberName,
		sub.InMemberID,
		sub.InMemberName,
		sub.Position,
		sub.ActorID,
		sub.ActorName,
		sub.Reason,
	).Scan(&sub.ID, &sub.Seq, &sub.OccurredAt)

	if err != nil {
		r.log.Error("Failed to append substitution record",
			zap.Error(err),
			zap.Int64("team_id", sub.TeamID),
			zap.Int64("out_member_id", sub.OutMemberID),
			zap.Int64("in_member_id", sub.InMemberID),
		)
		return fmt.Errorf("append substitution for team %d: %w", sub.TeamID, err)
	}

	return nil
}

func (r *substitutionRepository) FindByTeamID(ctx context.Context, teamID int64) ([]*entity.Substitution, error) {
	query := `
		SELECT id, team_id, seq, occurred_at, out_member_id, out_member_name,
			in_member_id, in_member_name, position, actor_id, actor_name, reason
		FROM team_substitutions
		WHERE team_id = $1
		ORDER BY seq
	`

	rows, err := r.db.Query(ctx, query, teamID)
	if err != nil {
		r.log.Error("Failed to find substitutions by team ID",
			zap.Error(err),
			zap.Int64("team_id", teamID),
		)
		return nil, fmt.Errorf("find substitutions for team %d: %w", teamID, err)
	}
	defer rows.Close()

	var subs []*entity.Substitution
	for rows.Next() {
		var sub entity.Substitution
		err := rows.Scan(
			&sub.ID,
			&sub.TeamID,
			&sub.Seq,
			&sub.OccurredAt,
			&sub.OutMemberID,
			&sub.OutMemberName,
			&sub.InMemberID,
			&sub.InMemberName,
			&sub.Position,
			&sub.ActorID,
			&sub.ActorName,
			&sub.Reason,
		)
		if err != nil {
			r.log.Error("Failed to scan substitution row", zap.Error(err))
			return nil, fmt.Errorf("scan substitution row: %w", err)
		}
		subs = append(subs, &sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read substitution rows: %w", err)
	}

	return subs, nil
}
