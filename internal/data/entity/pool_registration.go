package entity

import (
	"time"
)

type PoolRegistration struct {
	ID           int64     `db:"id"`
	PoolID       int64     `db:"pool_id"`
	MemberID     int64     `db:"member_id"`
	MemberName   string    `db:"member_name"`
	RegisteredAt time.Time `db:"registered_at"`
	IsActive     bool      `db:"is_active"`
	UpdatedAt    time.Time `db:"updated_at"`
}
