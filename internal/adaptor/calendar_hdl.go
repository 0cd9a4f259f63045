package adaptor

import (
	"net/http"

	"club-booking/internal/usecase"
	"club-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CalendarHandler struct {
	service usecase.CalendarService
	log     *zap.Logger
}

func NewCalendarHandler(service usecase.CalendarService, log *zap.Logger) *CalendarHandler {
	return &CalendarHandler{
		service: service,
		log:     log.With(zap.String("handler", "calendar")),
	}
}

// DayView handles GET /api/calendar/{date} (public)
func (h *CalendarHandler) DayView(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	if date == "" {
		utils.ResponseBadRequest(w, "Date is required", nil)
		return
	}

	day, err := h.service.DayView(r.Context(), date)
	if err != nil {
		handleServiceError(h.log, w, err, "get day view")
		return
	}

	utils.ResponseSuccess(w, "success", day)
}

// UsageReport handles GET /api/calendar/usage (public)
func (h *CalendarHandler) UsageReport(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	from := query.Get("from")
	to := query.Get("to")
	if from == "" || to == "" {
		utils.ResponseBadRequest(w, "Query parameters 'from' and 'to' are required", nil)
		return
	}

	report, err := h.service.UsageReport(r.Context(), from, to)
	if err != nil {
		handleServiceError(h.log, w, err, "get usage report")
		return
	}

	utils.ResponseSuccess(w, "success", report)
}
