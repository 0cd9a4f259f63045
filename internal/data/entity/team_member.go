package entity

import (
	"time"
)

type Availability string

const (
	AvailabilityPending     Availability = "pending"
	AvailabilityAvailable   Availability = "available"
	AvailabilityUnavailable Availability = "unavailable"
)

type TeamMember struct {
	Base
	TeamID        int64        `db:"team_id"`
	MemberID      int64        `db:"member_id"`
	MemberName    string       `db:"member_name"`
	Position      string       `db:"position"`
	Availability  Availability `db:"availability"`
	ConfirmedAt   *time.Time   `db:"confirmed_at"`
	IsSubstitute  bool         `db:"is_substitute"`
	SubstitutedAt *time.Time   `db:"substituted_at"`
}
