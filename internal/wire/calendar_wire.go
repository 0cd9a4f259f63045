package wire

import (
	"club-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireCalendar(r chi.Router, calendarHandler *adaptor.CalendarHandler) {
	// All calendar views are public.

	// GET /api/calendar/usage - Per-slot rink usage over a date range
	r.Get("/api/calendar/usage", calendarHandler.UsageReport)

	// GET /api/calendar/{date} - One day with its sessions and bookings
	r.Get("/api/calendar/{date}", calendarHandler.DayView)
}
