package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned by updates and deletes that matched no row.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateRegistration is returned when the partial unique index on
	// active pool registrations rejects an insert.
	ErrDuplicateRegistration = errors.New("active registration already exists")

	// ErrDuplicatePlayer is returned when a member is already on a booking's
	// player list.
	ErrDuplicatePlayer = errors.New("player already on booking")

	// ErrDuplicatePool is returned when a booking already has a pool.
	ErrDuplicatePool = errors.New("pool already exists for booking")
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
