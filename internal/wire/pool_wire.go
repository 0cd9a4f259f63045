package wire

import (
	"club-booking/internal/adaptor"
	"club-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wirePool(r chi.Router, poolHandler *adaptor.PoolHandler, log *zap.Logger) {
	// ==================== PROTECTED ROUTES (require member identity) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireActor(log))

		// POST /api/pools - Attach a pool to a booking
		r.Post("/api/pools", poolHandler.CreatePool)

		// PUT /api/pools/{id}/toggle - Open or close a pool
		r.Put("/api/pools/{id}/toggle", poolHandler.TogglePool)

		// DELETE /api/pools/{id} - Remove a pool and its registrations
		r.Delete("/api/pools/{id}", poolHandler.DeletePool)

		// POST /api/bookings/{id}/pool/register - Register the acting member
		r.Post("/api/bookings/{id}/pool/register", poolHandler.Register)

		// DELETE /api/bookings/{id}/pool/register - Withdraw the acting member
		r.Delete("/api/bookings/{id}/pool/register", poolHandler.Withdraw)
	})

	// ==================== PUBLIC ROUTES ====================
	// GET /api/pools/{id} - Pool details with registrations
	r.Get("/api/pools/{id}", poolHandler.GetPoolByID)

	// GET /api/bookings/{id}/pool - Pool the booking actually uses
	r.Get("/api/bookings/{id}/pool", poolHandler.ResolveForBooking)
}
