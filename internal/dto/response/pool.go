package response

import (
	"time"

	"club-booking/internal/data/entity"
)

type PoolResponse struct {
	ID            int64      `json:"id"`
	BookingID     int64      `json:"booking_id"`
	IsOpen        bool       `json:"is_open"`
	AutoCloseDate *string    `json:"auto_close_date,omitempty"`
	ClosedAt      *time.Time `json:"closed_at,omitempty"`
	MaxPlayers    *int       `json:"max_players,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

type PoolDetailResponse struct {
	PoolResponse
	Registrations []RegistrationResponse `json:"registrations"`
}

type RegistrationResponse struct {
	ID           int64     `json:"id"`
	PoolID       int64     `json:"pool_id"`
	MemberID     int64     `json:"member_id"`
	MemberName   string    `json:"member_name"`
	RegisteredAt time.Time `json:"registered_at"`
	IsActive     bool      `json:"is_active"`
}

func PoolToResponse(pool *entity.Pool) PoolResponse {
	resp := PoolResponse{
		ID:         pool.ID,
		BookingID:  pool.BookingID,
		IsOpen:     pool.IsOpen,
		ClosedAt:   pool.ClosedAt,
		MaxPlayers: pool.MaxPlayers,
		CreatedAt:  pool.CreatedAt,
	}
	if pool.AutoCloseDate != nil {
		date := pool.AutoCloseDate.Format(time.DateOnly)
		resp.AutoCloseDate = &date
	}
	return resp
}

func RegistrationToResponse(registration *entity.PoolRegistration) RegistrationResponse {
	return RegistrationResponse{
		ID:           registration.ID,
		PoolID:       registration.PoolID,
		MemberID:     registration.MemberID,
		MemberName:   registration.MemberName,
		RegisteredAt: registration.RegisteredAt,
		IsActive:     registration.IsActive,
	}
}
