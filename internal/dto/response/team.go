package response

import (
	"time"

	"club-booking/internal/data/entity"
)

type TeamResponse struct {
	ID        int64                `json:"id"`
	BookingID int64                `json:"booking_id"`
	Name      string               `json:"name"`
	Members   []TeamMemberResponse `json:"members,omitempty"`
	CreatedAt time.Time            `json:"created_at"`
}

type TeamMemberResponse struct {
	ID            int64               `json:"id"`
	TeamID        int64               `json:"team_id"`
	MemberID      int64               `json:"member_id"`
	MemberName    string              `json:"member_name"`
	Position      string              `json:"position,omitempty"`
	Availability  entity.Availability `json:"availability"`
	ConfirmedAt   *time.Time          `json:"confirmed_at,omitempty"`
	IsSubstitute  bool                `json:"is_substitute"`
	SubstitutedAt *time.Time          `json:"substituted_at,omitempty"`
}

type SubstitutionResponse struct {
	Seq           int       `json:"seq"`
	OccurredAt    time.Time `json:"occurred_at"`
	OutMemberID   int64     `json:"out_member_id"`
	OutMemberName string    `json:"out_member_name"`
	InMemberID    int64     `json:"in_member_id"`
	InMemberName  string    `json:"in_member_name"`
	Position      string    `json:"position,omitempty"`
	ActorID       int64     `json:"actor_id"`
	ActorName     string    `json:"actor_name"`
	Reason        string    `json:"reason,omitempty"`
}

func TeamToResponse(team *entity.Team, members []*entity.TeamMember) TeamResponse {
	resp := TeamResponse{
		ID:        team.ID,
		BookingID: team.BookingID,
		Name:      team.Name,
		CreatedAt: team.CreatedAt,
	}
	for _, member := range members {
		resp.Members = append(resp.Members, TeamMemberToResponse(member))
	}
	return resp
}

func TeamMemberToResponse(member *entity.TeamMember) TeamMemberResponse {
	return TeamMemberResponse{
		ID:            member.ID,
		TeamID:        member.TeamID,
		MemberID:      member.MemberID,
		MemberName:    member.MemberName,
		Position:      member.Position,
		Availability:  member.Availability,
		ConfirmedAt:   member.ConfirmedAt,
		IsSubstitute:  member.IsSubstitute,
		SubstitutedAt: member.SubstitutedAt,
	}
}

func SubstitutionToResponse(sub *entity.Substitution) SubstitutionResponse {
	return SubstitutionResponse{
		Seq:           sub.Seq,
		OccurredAt:    sub.OccurredAt,
		OutMemberID:   sub.OutMemberID,
		OutMemberName: sub.OutMemberName,
		InMemberID:    sub.InMemberID,
		InMemberName:  sub.InMemberName,
		Position:      sub.Position,
		ActorID:       sub.ActorID,
		ActorName:     sub.ActorName,
		Reason:        sub.Reason,
	}
}
