package repository

import (
	"context"
	"fmt"
	"time"

	"club-booking/internal/data/entity"
	"club-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type PoolRepository interface {
	WithTx(q database.Querier) PoolRepository
	Create(ctx context.Context, pool *entity.Pool) error
	FindByID(ctx context.Context, id int64) (*entity.Pool, error)
	FindByBookingID(ctx context.Context, bookingID int64) (*entity.Pool, error)
	FindDueForClose(ctx context.Context, asOf time.Time) ([]*entity.Pool, error)
	Update(ctx context.Context, pool *entity.Pool) error
	Delete(ctx context.Context, id int64) error
}

type poolRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewPoolRepository(db database.PgxIface, log *zap.Logger) PoolRepository {
	return &poolRepository{
		db:  db,
		log: log.With(zap.String("repository", "pool")),
	}
}

func (r *poolRepository) WithTx(q database.Querier) PoolRepository {
	return &poolRepository{db: q, log: r.log}
}

func (r *poolRepository) Create(ctx context.Context, pool *entity.Pool) error {
	query := `
		INSERT INTO pools (booking_id, is_open, auto_close_date, max_players)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		pool.BookingID,
		pool.IsOpen,
		pool.AutoCloseDate,
		pool.MaxPlayers,
	).Scan(&pool.ID, &pool.CreatedAt, &pool.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("booking %d: %w", pool.BookingID, ErrDuplicatePool)
		}
		r.log.Error("Failed to create pool",
			zap.Error(err),
			zap.Int64("booking_id", pool.BookingID),
		)
		return fmt.Errorf("create pool for booking %d: %w", pool.BookingID, err)
	}

	return nil
}

func (r *poolRepository) FindByID(ctx context.Context, id int64) (*entity.Pool, error) {
	query := `
		SELECT id, booking_id, is_open, auto_close_date, closed_at, max_players, created_at, updated_at
		FROM pools
		WHERE id = $1
	`

	var pool entity.Pool
	err := r.db.QueryRow(ctx, query, id).Scan(
		&pool.ID,
		&pool.BookingID,
		&pool.IsOpen,
		&pool.AutoCloseDate,
		&pool.ClosedAt,
		&pool.MaxPlayers,
		&pool.CreatedAt,
		&pool.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find pool by ID",
			zap.Error(err),
			zap.Int64("pool_id", id),
		)
		return nil, fmt.Errorf("find pool by ID %d: %w", id, err)
	}

	return &pool, nil
}

func (r *poolRepository) FindByBookingID(ctx context.Context, bookingID int64) (*entity.Pool, error) {
	query := `
		SELECT id, booking_id, is_open, auto_close_date, closed_at, max_players, created_at, updated_at
		FROM pools
		WHERE booking_id = $1
	`

	var pool entity.Pool
	err := r.db.QueryRow(ctx, query, bookingID).Scan(
		&pool.ID,
		&pool.BookingID,
		&pool.IsOpen,
		&pool.AutoCloseDate,
		&pool.ClosedAt,
		&pool.MaxPlayers,
		&pool.CreatedAt,
		&pool.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find pool by booking ID",
			zap.Error(err),
			zap.Int64("booking_id", bookingID),
		)
		return nil, fmt.Errorf("find pool for booking %d: %w", bookingID, err)
	}

	return &pool, nil
}

func (r *poolRepository) FindDueForClose(ctx context.Context, asOf time.Time) ([]*entity.Pool, error) {
	query := `
		SELECT id, booking_id, is_open, auto_close_date, closed_at, max_players, created_at, updated_at
		FROM pools
		WHERE is_open AND auto_close_date IS NOT NULL AND auto_close_date <= $1::date
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, asOf)
	if err != nil {
		r.log.Error("Failed to find pools due for close", zap.Error(err))
		return nil, fmt.Errorf("find pools due for close: %w", err)
	}
	defer rows.Close()

	var pools []*entity.Pool
	for rows.Next() {
		var pool entity.Pool
		err := rows.Scan(
			&pool.ID,
			&pool.BookingID,
			&pool.IsOpen,
			&pool.AutoCloseDate,
			&pool.ClosedAt,
			&pool.MaxPlayers,
			&pool.CreatedAt,
			&pool.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan pool row", zap.Error(err))
			return nil, fmt.Errorf("scan pool row: %w", err)
		}
		pools = append(pools, &pool)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read pool rows: %w", err)
	}

	return pools, nil
}

func (r *poolRepository) Update(ctx context.Context, pool *entity.Pool) error {
	query := `
		UPDATE pools
		SET is_open = $2, auto_close_date = $3, closed_at = $4, max_players = $5, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		pool.ID,
		pool.IsOpen,
		pool.AutoCloseDate,
		pool.ClosedAt,
		pool.MaxPlayers,
	)

	if err != nil {
		r.log.Error("Failed to update pool",
			zap.Error(err),
			zap.Int64("pool_id", pool.ID),
		)
		return fmt.Errorf("update pool %d: %w", pool.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("pool %d: %w", pool.ID, ErrNotFound)
	}

	return nil
}

func (r *poolRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM pools WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete pool",
			zap.Error(err),
			zap.Int64("pool_id", id),
		)
		return fmt.Errorf("delete pool %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("pool %d: %w", id, ErrNotFound)
	}

	r.log.Info("Pool deleted", zap.Int64("pool_id", id))
	return nil
}
