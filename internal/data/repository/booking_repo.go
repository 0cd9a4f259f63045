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

type BookingRepository interface {
	WithTx(q database.Querier) BookingRepository
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id int64) (*entity.Booking, error)
	FindByReference(ctx context.Context, reference string) (*entity.Booking, error)
	FindByDateRange(ctx context.Context, from, to time.Time) ([]*entity.Booking, error)
	FindBySeriesKey(ctx context.Context, seriesKey string) ([]*entity.Booking, error)
	List(ctx context.Context, from, to *time.Time, limit, offset int) ([]*entity.Booking, error)
	Count(ctx context.Context, from, to *time.Time) (int64, error)
	Update(ctx context.Context, booking *entity.Booking) error
	Delete(ctx context.Context, id int64) error

	// Capacity queries
	SumRinks(ctx context.Context, playDate time.Time, session int, excludeID *int64) (int, error)
	UsageByDateRange(ctx context.Context, from, to time.Time) ([]*entity.SessionUsage, error)
}

const bookingColumns = `id, reference, play_date, session, rink_count, kind, venue,
		organizer_id, organizer_name, series_key, series_label,
		event_type, event_format, event_gender, pool_enabled, created_at, updated_at`

type bookingRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

func (r *bookingRepository) WithTx(q database.Querier) BookingRepository {
	return &bookingRepository{db: q, log: r.log}
}

func (r *bookingRepository) scanBooking(row pgx.Row) (*entity.Booking, error) {
	var booking entity.Booking
	err := row.Scan(
		&booking.ID,
		&booking.Reference,
		&booking.PlayDate,
		&booking.Session,
		&booking.RinkCount,
		&booking.Kind,
		&booking.Venue,
		&booking.OrganizerID,
		&booking.OrganizerName,
		&booking.SeriesKey,
		&booking.SeriesLabel,
		&booking.EventType,
		&booking.EventFormat,
		&booking.EventGender,
		&booking.PoolEnabled,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) scanBookings(rows pgx.Rows) ([]*entity.Booking, error) {
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := r.scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read booking rows: %w", err)
	}
	return bookings, nil
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (reference, play_date, session, rink_count, kind, venue,
			organizer_id, organizer_name, series_key, series_label,
			event_type, event_format, event_gender, pool_enabled)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		booking.Reference,
		booking.PlayDate,
		booking.Session,
		booking.RinkCount,
		booking.Kind,
		booking.Venue,
		booking.OrganizerID,
		booking.OrganizerName,
		booking.SeriesKey,
		booking.SeriesLabel,
		booking.EventType,
		booking.EventFormat,
		booking.EventGender,
		booking.PoolEnabled,
	).Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("reference", booking.Reference),
			zap.String("play_date", booking.PlayDate.Format(time.DateOnly)),
			zap.Int("session", booking.Session),
		)
		return fmt.Errorf("create booking %s: %w", booking.Reference, err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id int64) (*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE id = $1
	`

	booking, err := r.scanBooking(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.Int64("booking_id", id),
		)
		return nil, fmt.Errorf("find booking by ID %d: %w", id, err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByReference(ctx context.Context, reference string) (*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE reference = $1
	`

	booking, err := r.scanBooking(r.db.QueryRow(ctx, query, reference))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by reference",
			zap.Error(err),
			zap.String("reference", reference),
		)
		return nil, fmt.Errorf("find booking by reference %s: %w", reference, err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByDateRange(ctx context.Context, from, to time.Time) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE play_date BETWEEN $1 AND $2
		ORDER BY play_date, session, id
	`

	rows, err := r.db.Query(ctx, query, from, to)
	if err != nil {
		r.log.Error("Failed to find bookings by date range",
			zap.Error(err),
			zap.String("from", from.Format(time.DateOnly)),
			zap.String("to", to.Format(time.DateOnly)),
		)
		return nil, fmt.Errorf("find bookings between %s and %s: %w", from.Format(time.DateOnly), to.Format(time.DateOnly), err)
	}

	return r.scanBookings(rows)
}

// FindBySeriesKey returns the members of a series ordered so that the
// primary booking (earliest play date, then lowest id) comes first.
func (r *bookingRepository) FindBySeriesKey(ctx context.Context, seriesKey string) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE series_key = $1
		ORDER BY play_date, id
	`

	rows, err := r.db.Query(ctx, query, seriesKey)
	if err != nil {
		r.log.Error("Failed to find bookings by series key",
			zap.Error(err),
			zap.String("series_key", seriesKey),
		)
		return nil, fmt.Errorf("find bookings for series %s: %w", seriesKey, err)
	}

	return r.scanBookings(rows)
}

func (r *bookingRepository) List(ctx context.Context, from, to *time.Time, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE ($1::date IS NULL OR play_date >= $1)
		  AND ($2::date IS NULL OR play_date <= $2)
		ORDER BY play_date DESC, session, id
		LIMIT $3 OFFSET $4
	`

	rows, err := r.db.Query(ctx, query, from, to, limit, offset)
	if err != nil {
		r.log.Error("Failed to list bookings",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	return r.scanBookings(rows)
}

func (r *bookingRepository) Count(ctx context.Context, from, to *time.Time) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM bookings
		WHERE ($1::date IS NULL OR play_date >= $1)
		  AND ($2::date IS NULL OR play_date <= $2)
	`

	var count int64
	err := r.db.QueryRow(ctx, query, from, to).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings", zap.Error(err))
		return 0, fmt.Errorf("count bookings: %w", err)
	}

	return count, nil
}

func (r *bookingRepository) Update(ctx context.Context, booking *entity.Booking) error {
	query := `
		UPDATE bookings
		SET reference = $2, play_date = $3, session = $4, rink_count = $5, kind = $6,
		    venue = $7, organizer_id = $8, organizer_name = $9, series_key = $10,
		    series_label = $11, event_type = $12, event_format = $13, event_gender = $14,
		    pool_enabled = $15, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.Reference,
		booking.PlayDate,
		booking.Session,
		booking.RinkCount,
		booking.Kind,
		booking.Venue,
		booking.OrganizerID,
		booking.OrganizerName,
		booking.SeriesKey,
		booking.SeriesLabel,
		booking.EventType,
		booking.EventFormat,
		booking.EventGender,
		booking.PoolEnabled,
	)

	if err != nil {
		r.log.Error("Failed to update booking",
			zap.Error(err),
			zap.Int64("booking_id", booking.ID),
		)
		return fmt.Errorf("update booking %d: %w", booking.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %d: %w", booking.ID, ErrNotFound)
	}

	return nil
}

func (r *bookingRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM bookings WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete booking",
			zap.Error(err),
			zap.Int64("booking_id", id),
		)
		return fmt.Errorf("delete booking %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %d: %w", id, ErrNotFound)
	}

	r.log.Info("Booking deleted", zap.Int64("booking_id", id))
	return nil
}

// SumRinks totals committed rinks for a date and session. Away fixtures do
// not occupy home rinks and are excluded; excludeID leaves one booking out
// so updates can re-check capacity against their own slot.
func (r *bookingRepository) SumRinks(ctx context.Context, playDate time.Time, session int, excludeID *int64) (int, error) {
	query := `
		SELECT COALESCE(SUM(rink_count), 0)
		FROM bookings
		WHERE play_date = $1 AND session = $2
		  AND venue IS DISTINCT FROM 'away'
		  AND ($3::bigint IS NULL OR id <> $3)
	`

	var total int
	err := r.db.QueryRow(ctx, query, playDate, session, excludeID).Scan(&total)
	if err != nil {
		r.log.Error("Failed to sum rinks",
			zap.Error(err),
			zap.String("play_date", playDate.Format(time.DateOnly)),
			zap.Int("session", session),
		)
		return 0, fmt.Errorf("sum rinks for %s session %d: %w", playDate.Format(time.DateOnly), session, err)
	}

	return total, nil
}

func (r *bookingRepository) UsageByDateRange(ctx context.Context, from, to time.Time) ([]*entity.SessionUsage, error) {
	query := `
		SELECT play_date, session, COALESCE(SUM(rink_count), 0)
		FROM bookings
		WHERE play_date BETWEEN $1 AND $2
		  AND venue IS DISTINCT FROM 'away'
		GROUP BY play_date, session
		ORDER BY play_date, session
	`

	rows, err := r.db.Query(ctx, query, from, to)
	if err != nil {
		r.log.Error("Failed to load rink usage",
			zap.Error(err),
			zap.String("from", from.Format(time.DateOnly)),
			zap.String("to", to.Format(time.DateOnly)),
		)
		return nil, fmt.Errorf("load rink usage between %s and %s: %w", from.Format(time.DateOnly), to.Format(time.DateOnly), err)
	}
	defer rows.Close()

	var usage []*entity.SessionUsage
	for rows.Next() {
		var u entity.SessionUsage
		if err := rows.Scan(&u.PlayDate, &u.Session, &u.RinksUsed); err != nil {
			r.log.Error("Failed to scan rink usage row", zap.Error(err))
			return nil, fmt.Errorf("scan rink usage row: %w", err)
		}
		usage = append(usage, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read rink usage rows: %w", err)
	}

	return usage, nil
}
