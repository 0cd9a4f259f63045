package repository

import (
	"context"
	"fmt"

	"club-booking/internal/data/entity"
	"club-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type PoolRegistrationRepository interface {
	WithTx(q database.Querier) PoolRegistrationRepository
	Create(ctx context.Context, registration *entity.PoolRegistration) error
	FindActive(ctx context.Context, poolID, memberID int64) (*entity.PoolRegistration, error)
	FindByPoolID(ctx context.Context, poolID int64) ([]*entity.PoolRegistration, error)
	CountActive(ctx context.Context, poolID int64) (int, error)
	Deactivate(ctx context.Context, id int64) error
}

type poolRegistrationRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewPoolRegistrationRepository(db database.PgxIface, log *zap.Logger) PoolRegistrationRepository {
	return &poolRegistrationRepository{
		db:  db,
		log: log.With(zap.String("repository", "pool_registration")),
	}
}

func (r *poolRegistrationRepository) WithTx(q database.Querier) PoolRegistrationRepository {
	return &poolRegistrationRepository{db: q, log: r.log}
}

// Create inserts a new active registration. A withdrawn member registering
// again gets a fresh row; the old one stays behind as history. The partial
// unique index rejects a second active row per member and surfaces as
// ErrDuplicateRegistration.
func (r *poolRegistrationRepository) Create(ctx context.Context, registration *entity.PoolRegistration) error {
	query := `
		INSERT INTO pool_registrations (pool_id, member_id, member_name, is_active)
		VALUES ($1, $2, $3, TRUE)
		RETURNING id, registered_at, is_active, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		registration.PoolID,
		registration.MemberID,
		registration.MemberName,
	).Scan(
		&registration.ID,
		&registration.RegisteredAt,
		&registration.IsActive,
		&registration.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("member %d in pool %d: %w", registration.MemberID, registration.PoolID, ErrDuplicateRegistration)
		}
		r.log.Error("Failed to create pool registration",
			zap.Error(err),
			zap.Int64("pool_id", registration.PoolID),
			zap.Int64("member_id", registration.MemberID),
		)
		return fmt.Errorf("register member %d in pool %d: %w", registration.MemberID, registration.PoolID, err)
	}

	return nil
}

func (r *poolRegistrationRepository) FindActive(ctx context.Context, poolID, memberID int64) (*entity.PoolRegistration, error) {
	query := `
		SELECT id, pool_id, member_id, member_name, registered_at, is_active, updated_at
		FROM pool_registrations
		WHERE pool_id = $1 AND member_id = $2 AND is_active
	`

	var registration entity.PoolRegistration
	err := r.db.QueryRow(ctx, query, poolID, memberID).Scan(
		&registration.ID,
		&registration.PoolID,
		&registration.MemberID,
		&registration.MemberName,
		&registration.RegisteredAt,
		&registration.IsActive,
		&registration.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find active registration",
			zap.Error(err),
			zap.Int64("pool_id", poolID),
			zap.Int64("member_id", memberID),
		)
		return nil, fmt.Errorf("find registration of member %d in pool %d: %w", memberID, poolID, err)
	}

	return &registration, nil
}

func (r *poolRegistrationRepository) FindByPoolID(ctx context.Context, poolID int64) ([]*entity.PoolRegistration, error) {
	query := `
		SELECT id, pool_id, member_id, member_name, registered_at, is_active, updated_at
		FROM pool_registrations
		WHERE pool_id = $1 AND is_active
		ORDER BY registered_at, id
	`

	rows, err := r.db.Query(ctx, query, poolID)
	if err != nil {
		r.log.Error("Failed to find registrations by pool ID",
			zap.Error(err),
			zap.Int64("pool_id", poolID),
		)
		return nil, fmt.Errorf("find registrations for pool %d: %w", poolID, err)
	}
	defer rows.Close()

	var registrations []*entity.PoolRegistration
	for rows.Next() {
		var registration entity.PoolRegistration
		err := rows.Scan(
			&registration.ID,
			&registration.PoolID,
			&registration.MemberID,
			&registration.MemberName,
			&registration.RegisteredAt,
			&registration.IsActive,
			&registration.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan registration row", zap.Error(err))
			return nil, fmt.Errorf("scan registration row: %w", err)
		}
		registrations = append(registrations, &registration)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read registration rows: %w", err)
	}

	return registrations, nil
}

func (r *poolRegistrationRepository) CountActive(ctx context.Context, poolID int64) (int, error) {
	query := `SELECT COUNT(*) FROM pool_registrations WHERE pool_id = $1 AND is_active`

	var count int
	err := r.db.QueryRow(ctx, query, poolID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count active registrations",
			zap.Error(err),
			zap.Int64("pool_id", poolID),
		)
		return 0, fmt.Errorf("count registrations for pool %d: %w", poolID, err)
	}

	return count, nil
}

func (r *poolRegistrationRepository) Deactivate(ctx context.Context, id int64) error {
	query := `
		UPDATE pool_registrations
		SET is_active = FALSE, updated_at = NOW()
		WHERE id = $1 AND is_active
	`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to deactivate registration",
			zap.Error(err),
			zap.Int64("registration_id", id),
		)
		return fmt.Errorf("deactivate registration %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("registration %d: %w", id, ErrNotFound)
	}

	return nil
}
