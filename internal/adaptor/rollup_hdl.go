package adaptor

import (
	"encoding/json"
	"net/http"

	"club-booking/internal/dto/request"
	"club-booking/internal/usecase"
	"club-booking/pkg/utils"

	"go.uber.org/zap"
)

type RollupHandler struct {
	service usecase.RollupService
	log     *zap.Logger
}

func NewRollupHandler(service usecase.RollupService, log *zap.Logger) *RollupHandler {
	return &RollupHandler{
		service: service,
		log:     log.With(zap.String("handler", "rollup")),
	}
}

// InvitePlayer handles POST /api/bookings/{id}/players (protected)
func (h *RollupHandler) InvitePlayer(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Member identity required")
		return
	}

	bookingID, ok := pathID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Booking ID must be a positive integer", nil)
		return
	}

	var req request.InvitePlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	player, err := h.service.InvitePlayer(r.Context(), actor, bookingID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "invite player")
		return
	}

	utils.ResponseCreated(w, "success", player)
}

// ListPlayers handles GET /api/bookings/{id}/players (public)
func (h *RollupHandler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := pathID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Booking ID must be a positive integer", nil)
		return
	}

	players, err := h.service.ListPlayers(r.Context(), bookingID)
	if err != nil {
		handleServiceError(h.log, w, err, "list players")
		return
	}

	utils.ResponseSuccess(w, "success", players)
}

// RespondToInvite handles PUT /api/players/{id}/respond (protected)
func (h *RollupHandler) RespondToInvite(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Member identity required")
		return
	}

	playerID, ok := pathID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Player ID must be a positive integer", nil)
		return
	}

	var req request.PlayerRespondRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	player, err := h.service.RespondToInvite(r.Context(), actor, playerID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "respond to invite")
		return
	}

	utils.ResponseSuccess(w, "success", player)
}

// RemovePlayer handles DELETE /api/players/{id} (protected)
func (h *RollupHandler) RemovePlayer(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Member identity required")
		return
	}

	playerID, ok := pathID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Player ID must be a positive integer", nil)
		return
	}

	if err := h.service.RemovePlayer(r.Context(), actor, playerID); err != nil {
		handleServiceError(h.log, w, err, "remove player")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
