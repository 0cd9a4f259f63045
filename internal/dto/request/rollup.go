package request

type InvitePlayerRequest struct {
	MemberID   int64  `json:"member_id" validate:"required,min=1"`
	MemberName string `json:"member_name" validate:"required,min=1,max=100"`
}

type PlayerRespondRequest struct {
	Decision string `json:"decision" validate:"required,oneof=confirmed declined"`
}
