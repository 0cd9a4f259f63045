package wire

import (
	"club-booking/internal/adaptor"
	"club-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireTeam(r chi.Router, teamHandler *adaptor.TeamHandler, log *zap.Logger) {
	// ==================== PROTECTED ROUTES (require member identity) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireActor(log))

		// POST /api/teams - Create a team under a booking
		r.Post("/api/teams", teamHandler.CreateTeam)

		// DELETE /api/teams/{id} - Remove a team and its roster
		r.Delete("/api/teams/{id}", teamHandler.DeleteTeam)

		// POST /api/teams/{id}/members - Add a member to the roster
		r.Post("/api/teams/{id}/members", teamHandler.AddMember)

		// DELETE /api/team-members/{id} - Remove a roster entry
		r.Delete("/api/team-members/{id}", teamHandler.RemoveMember)

		// PUT /api/team-members/{id}/position - Assign a playing position
		r.Put("/api/team-members/{id}/position", teamHandler.UpdatePosition)

		// PUT /api/team-members/{id}/respond - Record an availability decision
		r.Put("/api/team-members/{id}/respond", teamHandler.Respond)

		// PUT /api/team-members/{id}/substitute - Swap in a replacement
		r.Put("/api/team-members/{id}/substitute", teamHandler.Substitute)
	})

	// ==================== PUBLIC ROUTES ====================
	// GET /api/teams/{id} - Team with its roster
	r.Get("/api/teams/{id}", teamHandler.GetTeamByID)

	// GET /api/teams/{id}/substitutions - Ordered substitution history
	r.Get("/api/teams/{id}/substitutions", teamHandler.SubstitutionLog)
}
