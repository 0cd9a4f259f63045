package request

type CreateBookingRequest struct {
	PlayDate          string  `json:"play_date" validate:"required,datetime=2006-01-02"`
	Session           int     `json:"session" validate:"required,min=1"`
	RinkCount         int     `json:"rink_count" validate:"required,min=1"`
	Kind              string  `json:"kind" validate:"required,oneof=event rollup"`
	Venue             *string `json:"venue,omitempty" validate:"omitempty,oneof=home away neutral"`
	OrganizerID       *int64  `json:"organizer_id,omitempty" validate:"omitempty,min=1"`
	OrganizerName     *string `json:"organizer_name,omitempty" validate:"omitempty,max=100"`
	SeriesKey         *string `json:"series_key,omitempty" validate:"omitempty,max=100"`
	SeriesLabel       *string `json:"series_label,omitempty" validate:"omitempty,max=150"`
	EventType         *string `json:"event_type,omitempty" validate:"omitempty,max=50"`
	EventFormat       *string `json:"event_format,omitempty" validate:"omitempty,max=50"`
	EventGender       *string `json:"event_gender,omitempty" validate:"omitempty,max=20"`
	PoolEnabled       bool    `json:"pool_enabled"`
	PoolAutoCloseDate *string `json:"pool_auto_close_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	PoolMaxPlayers    *int    `json:"pool_max_players,omitempty" validate:"omitempty,min=1"`
}

type UpdateBookingRequest struct {
	PlayDate      *string `json:"play_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Session       *int    `json:"session,omitempty" validate:"omitempty,min=1"`
	RinkCount     *int    `json:"rink_count,omitempty" validate:"omitempty,min=1"`
	Venue         *string `json:"venue,omitempty" validate:"omitempty,oneof=home away neutral"`
	OrganizerID   *int64  `json:"organizer_id,omitempty" validate:"omitempty,min=1"`
	OrganizerName *string `json:"organizer_name,omitempty" validate:"omitempty,max=100"`
	SeriesLabel   *string `json:"series_label,omitempty" validate:"omitempty,max=150"`
	EventFormat   *string `json:"event_format,omitempty" validate:"omitempty,max=50"`
	EventGender   *string `json:"event_gender,omitempty" validate:"omitempty,max=20"`
}

// DuplicateBookingRequest copies a booking onto a new slot. The copy joins
// the original's series; a standalone original gets a fresh series key.
type DuplicateBookingRequest struct {
	PlayDate string `json:"play_date" validate:"required,datetime=2006-01-02"`
	Session  int    `json:"session" validate:"required,min=1"`
}

type ListBookingsRequest struct {
	PaginatedRequest
	From *string `json:"from,omitempty" validate:"omitempty,datetime=2006-01-02"`
	To   *string `json:"to,omitempty" validate:"omitempty,datetime=2006-01-02"`
}
