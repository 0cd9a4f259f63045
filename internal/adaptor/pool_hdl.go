package adaptor

import (
	"encoding/json"
	"net/http"

	"club-booking/internal/dto/request"
	"club-booking/internal/usecase"
	"club-booking/pkg/utils"

	"go.uber.org/zap"
)

type PoolHandler struct {
	service usecase.PoolService
	log     *zap.Logger
}

func NewPoolHandler(service usecase.PoolService, log *zap.Logger) *PoolHandler {
	return &PoolHandler{
		service: service,
		log:     log.With(zap.String("handler", "pool")),
	}
}

// CreatePool handles POST /api/pools (protected)
func (h *PoolHandler) CreatePool(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Member identity required")
		return
	}

	var req request.CreatePoolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	pool, err := h.service.CreatePool(r.Context(), actor, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create pool")
		return
	}

	utils.ResponseCreated(w, "success", pool)
}

// GetPoolByID handles GET /api/pools/{id} (public)
func (h *PoolHandler) GetPoolByID(w http.ResponseWriter, r *http.Request) {
	poolID, ok := pathID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Pool ID must be a positive integer", nil)
		return
	}

	pool, err := h.service.GetPoolByID(r.Context(), poolID)
	if err != nil {
		handleServiceError(h.log, w, err, "get pool by ID")
		return
	}

	utils.ResponseSuccess(w, "success", pool)
}

// ResolveForBooking handles GET /api/bookings/{id}/pool (public)
//
// The response carries the pool the booking actually uses, which under the
// event strategy may belong to the primary booking of its series.
func (h *PoolHandler) ResolveForBooking(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := pathID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Booking ID must be a positive integer", nil)
		return
	}

	resolution, err := h.service.ResolveForBooking(r.Context(), bookingID)
	if err != nil {
		handleServiceError(h.log, w, err, "resolve pool for booking")
		return
	}

	utils.ResponseSuccess(w, "success", resolution)
}

// Register handles POST /api/bookings/{id}/pool/register (protected)
func (h *PoolHandler) Register(w http.ResponseWriter, r *http.Request) {
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

	registration, err := h.service.Register(r.Context(), actor, bookingID)
	if err != nil {
		handleServiceError(h.log, w, err, "register in pool")
		return
	}

	utils.ResponseCreated(w, "success", registration)
}

// Withdraw handles DELETE /api/bookings/{id}/pool/register (protected)
func (h *PoolHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
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

	if err := h.service.Withdraw(r.Context(), actor, bookingID); err != nil {
		handleServiceError(h.log, w, err, "withdraw from pool")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// TogglePool handles PUT /api/pools/{id}/toggle (protected)
func (h *PoolHandler) TogglePool(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Member identity required")
		return
	}

	poolID, ok := pathID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Pool ID must be a positive integer", nil)
		return
	}

	pool, err := h.service.TogglePool(r.Context(), actor, poolID)
	if err != nil {
		handleServiceError(h.log, w, err, "toggle pool")
		return
	}

	utils.ResponseSuccess(w, "success", pool)
}

// DeletePool handles DELETE /api/pools/{id} (protected)
func (h *PoolHandler) DeletePool(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Member identity required")
		return
	}

	poolID, ok := pathID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Pool ID must be a positive integer", nil)
		return
	}

	if err := h.service.DeletePool(r.Context(), actor, poolID); err != nil {
		handleServiceError(h.log, w, err, "delete pool")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
