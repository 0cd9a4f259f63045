package response

import (
	"time"

	"club-booking/internal/data/entity"
)

type CalendarSessionResponse struct {
	Session        int               `json:"session"`
	TotalRinks     int               `json:"total_rinks"`
	RinksUsed      int               `json:"rinks_used"`
	RinksAvailable int               `json:"rinks_available"`
	Bookings       []BookingResponse `json:"bookings"`
	AwayBookings   []BookingResponse `json:"away_bookings,omitempty"`
}

type CalendarDayResponse struct {
	PlayDate string                    `json:"play_date"`
	Sessions []CalendarSessionResponse `json:"sessions"`
}

// SessionUsageResponse is one row of the flat usage report: committed and
// remaining rinks for a single date and session.
type SessionUsageResponse struct {
	PlayDate       string `json:"play_date"`
	Session        int    `json:"session"`
	RinksUsed      int    `json:"rinks_used"`
	RinksAvailable int    `json:"rinks_available"`
	TotalRinks     int    `json:"total_rinks"`
}

func CalendarDayToResponse(day *entity.CalendarDay) CalendarDayResponse {
	resp := CalendarDayResponse{
		PlayDate: day.PlayDate.Format(time.DateOnly),
		Sessions: make([]CalendarSessionResponse, 0, len(day.Sessions)),
	}
	for _, session := range day.Sessions {
		sessionResp := CalendarSessionResponse{
			Session:        session.Session,
			TotalRinks:     session.TotalRinks,
			RinksUsed:      session.RinksUsed,
			RinksAvailable: session.RinksAvailable,
			Bookings:       make([]BookingResponse, 0, len(session.Bookings)),
		}
		for _, booking := range session.Bookings {
			sessionResp.Bookings = append(sessionResp.Bookings, BookingToResponse(booking))
		}
		for _, booking := range session.AwayBookings {
			sessionResp.AwayBookings = append(sessionResp.AwayBookings, BookingToResponse(booking))
		}
		resp.Sessions = append(resp.Sessions, sessionResp)
	}
	return resp
}
