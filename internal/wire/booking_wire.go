package wire

import (
	"club-booking/internal/adaptor"
	"club-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler, log *zap.Logger) {
	// ==================== PROTECTED ROUTES (require member identity) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireActor(log))

		// POST /api/bookings - Create new booking
		r.Post("/api/bookings", bookingHandler.CreateBooking)

		// PUT /api/bookings/{id} - Reschedule or edit a booking
		r.Put("/api/bookings/{id}", bookingHandler.UpdateBooking)

		// DELETE /api/bookings/{id} - Remove a booking and its attachments
		r.Delete("/api/bookings/{id}", bookingHandler.DeleteBooking)

		// POST /api/bookings/{id}/duplicate - Copy a booking onto a new slot
		r.Post("/api/bookings/{id}/duplicate", bookingHandler.DuplicateBooking)
	})

	// ==================== PUBLIC ROUTES ====================
	// GET /api/bookings - List bookings with optional date range
	r.Get("/api/bookings", bookingHandler.ListBookings)

	// GET /api/bookings/reference/{reference} - Look up a booking by reference
	r.Get("/api/bookings/reference/{reference}", bookingHandler.GetBookingByReference)

	// GET /api/bookings/{id} - Booking details with resolved series state
	r.Get("/api/bookings/{id}", bookingHandler.GetBookingByID)

	// GET /api/capacity - Check remaining rinks for a slot
	r.Get("/api/capacity", bookingHandler.CheckCapacity)

	// GET /api/series/{key} - All bookings sharing a series key
	r.Get("/api/series/{key}", bookingHandler.GetSeries)
}
