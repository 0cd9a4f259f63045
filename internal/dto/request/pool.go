package request

type CreatePoolRequest struct {
	BookingID     int64   `json:"booking_id" validate:"required,min=1"`
	AutoCloseDate *string `json:"auto_close_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	MaxPlayers    *int    `json:"max_players,omitempty" validate:"omitempty,min=1"`
}
