package entity

import (
	"time"
)

// Substitution is one record of the append-only substitution history of a
// team. Records are never updated or deleted; Seq is assigned per team in
// strictly increasing order.
type Substitution struct {
	ID            int64     `db:"id"`
	TeamID        int64     `db:"team_id"`
	Seq           int       `db:"seq"`
	OccurredAt    time.Time `db:"occurred_at"`
	OutMemberID   int64     `db:"out_member_id"`
	OutMemberName string    `db:"out_member_name"`
	InMemberID    int64     `db:"in_member_id"`
	InMemberName  string    `db:"in_member_name"`
	Position      string    `db:"position"`
	ActorID       int64     `db:"actor_id"`
	ActorName     string    `db:"actor_name"`
	Reason        string    `db:"reason"`
}
