package adaptor

import (
	"encoding/json"
	"net/http"
	"strconv"

	"club-booking/internal/dto/request"
	"club-booking/internal/usecase"
	"club-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	series  usecase.SeriesService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, series usecase.SeriesService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		series:  series,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// CreateBooking handles POST /api/bookings (protected)
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Member identity required")
		return
	}

	var req request.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	booking, err := h.service.CreateBooking(r.Context(), actor, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create booking")
		return
	}

	utils.ResponseCreated(w, "success", booking)
}

// ListBookings handles GET /api/bookings (public)
func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	req := &request.ListBookingsRequest{}

	// Parse query parameters
	query := r.URL.Query()
	req.Page = utils.ParseInt(query.Get("page"), 1)
	req.PageSize = utils.ParseInt(query.Get("page_size"), request.DefaultPageSize)
	if from := query.Get("from"); from != "" {
		req.From = &from
	}
	if to := query.Get("to"); to != "" {
		req.To = &to
	}

	bookings, err := h.service.ListBookings(r.Context(), req)
	if err != nil {
		handleServiceError(h.log, w, err, "list bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// GetBookingByID handles GET /api/bookings/{id} (public)
func (h *BookingHandler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := pathID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Booking ID must be a positive integer", nil)
		return
	}

	booking, err := h.service.GetBookingByID(r.Context(), bookingID)
	if err != nil {
		handleServiceError(h.log, w, err, "get booking by ID")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// GetBookingByReference handles GET /api/bookings/reference/{reference} (public)
func (h *BookingHandler) GetBookingByReference(w http.ResponseWriter, r *http.Request) {
	reference := chi.URLParam(r, "reference")
	if reference == "" {
		utils.ResponseBadRequest(w, "Booking reference is required", nil)
		return
	}

	booking, err := h.service.GetBookingByReference(r.Context(), reference)
	if err != nil {
		handleServiceError(h.log, w, err, "get booking by reference")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// UpdateBooking handles PUT /api/bookings/{id} (protected)
func (h *BookingHandler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
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

	var req request.UpdateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	booking, err := h.service.UpdateBooking(r.Context(), actor, bookingID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// DeleteBooking handles DELETE /api/bookings/{id} (protected)
func (h *BookingHandler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
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

	if err := h.service.DeleteBooking(r.Context(), actor, bookingID); err != nil {
		handleServiceError(h.log, w, err, "delete booking")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// DuplicateBooking handles POST /api/bookings/{id}/duplicate (protected)
func (h *BookingHandler) DuplicateBooking(w http.ResponseWriter, r *http.Request) {
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

	var req request.DuplicateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	booking, err := h.service.DuplicateBooking(r.Context(), actor, bookingID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "duplicate booking")
		return
	}

	utils.ResponseCreated(w, "success", booking)
}

// CheckCapacity handles GET /api/capacity (public)
func (h *BookingHandler) CheckCapacity(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	playDate := query.Get("date")
	if playDate == "" {
		utils.ResponseBadRequest(w, "Query parameter 'date' is required", nil)
		return
	}

	session := utils.ParseInt(query.Get("session"), 0)
	if session < 1 {
		utils.ResponseBadRequest(w, "Query parameter 'session' must be a positive integer", nil)
		return
	}

	rinks := utils.ParseInt(query.Get("rinks"), 1)
	if rinks < 1 {
		utils.ResponseBadRequest(w, "Query parameter 'rinks' must be a positive integer", nil)
		return
	}

	// Edit forms pass their own booking id so the slot is probed without it.
	var excludeBookingID *int64
	if raw := query.Get("exclude_booking_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id < 1 {
			utils.ResponseBadRequest(w, "Query parameter 'exclude_booking_id' must be a positive integer", nil)
			return
		}
		excludeBookingID = &id
	}

	result, err := h.service.CheckCapacity(r.Context(), playDate, session, rinks, excludeBookingID)
	if err != nil {
		handleServiceError(h.log, w, err, "check capacity")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

// GetSeries handles GET /api/series/{key} (public)
func (h *BookingHandler) GetSeries(w http.ResponseWriter, r *http.Request) {
	seriesKey := chi.URLParam(r, "key")
	if seriesKey == "" {
		utils.ResponseBadRequest(w, "Series key is required", nil)
		return
	}

	series, err := h.series.GetSeries(r.Context(), seriesKey)
	if err != nil {
		handleServiceError(h.log, w, err, "get series")
		return
	}

	utils.ResponseSuccess(w, "success", series)
}
