package adaptor

import (
	"encoding/json"
	"net/http"

	"club-booking/internal/dto/request"
	"club-booking/internal/usecase"
	"club-booking/pkg/utils"

	"go.uber.org/zap"
)

type TeamHandler struct {
	service usecase.TeamService
	log     *zap.Logger
}

func NewTeamHandler(service usecase.TeamService, log *zap.Logger) *TeamHandler {
	return &TeamHandler{
		service: service,
		log:     log.With(zap.String("handler", "team")),
	}
}

// CreateTeam handles POST /api/teams (protected)
func (h *TeamHandler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Member identity required")
		return
	}

	var req request.CreateTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	team, err := h.service.CreateTeam(r.Context(), actor, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create team")
		return
	}

	utils.ResponseCreated(w, "success", team)
}

// GetTeamByID handles GET /api/teams/{id} (public)
func (h *TeamHandler) GetTeamByID(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Team ID must be a positive integer", nil)
		return
	}

	team, err := h.service.GetTeamByID(r.Context(), teamID)
	if err != nil {
		handleServiceError(h.log, w, err, "get team by ID")
		return
	}

	utils.ResponseSuccess(w, "success", team)
}

// DeleteTeam handles DELETE /api/teams/{id} (protected)
func (h *TeamHandler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Member identity required")
		return
	}

	teamID, ok := pathID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Team ID must be a positive integer", nil)
		return
	}

	if err := h.service.DeleteTeam(r.Context(), actor, teamID); err != nil {
		handleServiceError(h.log, w, err, "delete team")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// AddMember handles POST /api/teams/{id}/members (protected)
func (h *TeamHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Member identity required")
		return
	}

	teamID, ok := pathID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Team ID must be a positive integer", nil)
		return
	}

	var req request.AddTeamMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	member, err := h.service.AddMember(r.Context(), actor, teamID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "add team member")
		return
	}

	utils.ResponseCreated(w, "success", member)
}

// RemoveMember handles DELETE /api/team-members/{id} (protected)
func (h *TeamHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Member identity required")
		return
	}

	entryID, ok := pathID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Roster entry ID must be a positive integer", nil)
		return
	}

	if err := h.service.RemoveMember(r.Context(), actor, entryID); err != nil {
		handleServiceError(h.log, w, err, "remove team member")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// UpdatePosition handles PUT /api/team-members/{id}/position (protected)
func (h *TeamHandler) UpdatePosition(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Member identity required")
		return
	}

	entryID, ok := pathID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Roster entry ID must be a positive integer", nil)
		return
	}

	var req request.UpdatePositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	member, err := h.service.UpdatePosition(r.Context(), actor, entryID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update position")
		return
	}

	utils.ResponseSuccess(w, "success", member)
}

// Respond handles PUT /api/team-members/{id}/respond (protected)
//
// A selection can be answered exactly once; a second decision is rejected
// with a conflict.
func (h *TeamHandler) Respond(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Member identity required")
		return
	}

	entryID, ok := pathID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Roster entry ID must be a positive integer", nil)
		return
	}

	var req request.RespondRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	member, err := h.service.Respond(r.Context(), actor, entryID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "respond to selection")
		return
	}

	utils.ResponseSuccess(w, "success", member)
}

// Substitute handles PUT /api/team-members/{id}/substitute (protected)
func (h *TeamHandler) Substitute(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Member identity required")
		return
	}

	entryID, ok := pathID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Roster entry ID must be a positive integer", nil)
		return
	}

	var req request.SubstituteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	member, err := h.service.Substitute(r.Context(), actor, entryID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "substitute member")
		return
	}

	utils.ResponseSuccess(w, "success", member)
}

// SubstitutionLog handles GET /api/teams/{id}/substitutions (public)
func (h *TeamHandler) SubstitutionLog(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Team ID must be a positive integer", nil)
		return
	}

	log, err := h.service.SubstitutionLog(r.Context(), teamID)
	if err != nil {
		handleServiceError(h.log, w, err, "get substitution log")
		return
	}

	utils.ResponseSuccess(w, "success", log)
}
