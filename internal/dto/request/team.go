package request

type CreateTeamRequest struct {
	BookingID int64  `json:"booking_id" validate:"required,min=1"`
	Name      string `json:"name" validate:"required,min=1,max=100"`
}

type AddTeamMemberRequest struct {
	MemberID   int64  `json:"member_id" validate:"required,min=1"`
	MemberName string `json:"member_name" validate:"required,min=1,max=100"`
	Position   string `json:"position" validate:"omitempty,max=50"`
}

type UpdatePositionRequest struct {
	Position string `json:"position" validate:"required,max=50"`
}

type RespondRequest struct {
	Decision string `json:"decision" validate:"required,oneof=available unavailable"`
}

type SubstituteRequest struct {
	MemberID   int64  `json:"member_id" validate:"required,min=1"`
	MemberName string `json:"member_name" validate:"required,min=1,max=100"`
	Reason     string `json:"reason" validate:"omitempty,max=255"`
}
