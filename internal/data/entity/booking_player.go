package entity

import (
	"time"
)

type PlayerStatus string

const (
	PlayerStatusPending   PlayerStatus = "pending"
	PlayerStatusConfirmed PlayerStatus = "confirmed"
	PlayerStatusDeclined  PlayerStatus = "declined"
)

type BookingPlayer struct {
	Base
	BookingID   int64        `db:"booking_id"`
	MemberID    int64        `db:"member_id"`
	MemberName  string       `db:"member_name"`
	Status      PlayerStatus `db:"status"`
	InvitedBy   *int64       `db:"invited_by"`
	RespondedAt *time.Time   `db:"responded_at"`
}
