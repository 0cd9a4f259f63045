package entity

import (
	"time"
)

type PoolStrategy string

const (
	PoolStrategyBooking PoolStrategy = "booking"
	PoolStrategyEvent   PoolStrategy = "event"
	PoolStrategyNone    PoolStrategy = "none"
)

type PoolResolutionKind string

const (
	PoolResolutionOwn    PoolResolutionKind = "own"
	PoolResolutionShared PoolResolutionKind = "shared"
	PoolResolutionNone   PoolResolutionKind = "none"
)

// PoolResolution is the outcome of resolving which pool, if any, a booking
// exposes. Pool is nil exactly when Kind is PoolResolutionNone.
type PoolResolution struct {
	Kind PoolResolutionKind
	Pool *Pool
}

type Pool struct {
	Base
	BookingID     int64      `db:"booking_id"`
	IsOpen        bool       `db:"is_open"`
	AutoCloseDate *time.Time `db:"auto_close_date"`
	ClosedAt      *time.Time `db:"closed_at"`
	MaxPlayers    *int       `db:"max_players"`
}
