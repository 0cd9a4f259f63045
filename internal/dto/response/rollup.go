package response

import (
	"time"

	"club-booking/internal/data/entity"
)

type PlayerResponse struct {
	ID          int64               `json:"id"`
	BookingID   int64               `json:"booking_id"`
	MemberID    int64               `json:"member_id"`
	MemberName  string              `json:"member_name"`
	Status      entity.PlayerStatus `json:"status"`
	InvitedBy   *int64              `json:"invited_by,omitempty"`
	RespondedAt *time.Time          `json:"responded_at,omitempty"`
}

func PlayerToResponse(player *entity.BookingPlayer) PlayerResponse {
	return PlayerResponse{
		ID:          player.ID,
		BookingID:   player.BookingID,
		MemberID:    player.MemberID,
		MemberName:  player.MemberName,
		Status:      player.Status,
		InvitedBy:   player.InvitedBy,
		RespondedAt: player.RespondedAt,
	}
}
