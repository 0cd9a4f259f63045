package wire

import (
	"club-booking/internal/adaptor"
	"club-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireRollup(r chi.Router, rollupHandler *adaptor.RollupHandler, log *zap.Logger) {
	// ==================== PROTECTED ROUTES (require member identity) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireActor(log))

		// POST /api/bookings/{id}/players - Invite a member to a roll-up
		r.Post("/api/bookings/{id}/players", rollupHandler.InvitePlayer)

		// PUT /api/players/{id}/respond - Confirm or decline an invite
		r.Put("/api/players/{id}/respond", rollupHandler.RespondToInvite)

		// DELETE /api/players/{id} - Remove a player from a roll-up
		r.Delete("/api/players/{id}", rollupHandler.RemovePlayer)
	})

	// ==================== PUBLIC ROUTES ====================
	// GET /api/bookings/{id}/players - Roll-up attendance list
	r.Get("/api/bookings/{id}/players", rollupHandler.ListPlayers)
}
