package adaptor

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"club-booking/internal/data/entity"
	"club-booking/internal/usecase"
	"club-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Booking  *BookingHandler
	Pool     *PoolHandler
	Team     *TeamHandler
	Rollup   *RollupHandler
	Calendar *CalendarHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Booking:  NewBookingHandler(service.Booking, service.Series, log),
		Pool:     NewPoolHandler(service.Pool, log),
		Team:     NewTeamHandler(service.Team, log),
		Rollup:   NewRollupHandler(service.Rollup, log),
		Calendar: NewCalendarHandler(service.Calendar, log),
	}
}

// pathID reads a positive integer URL parameter.
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// actorFrom rebuilds the acting member from the request context. The actor
// middleware guarantees it is present on protected routes.
func actorFrom(r *http.Request) (entity.Actor, bool) {
	id, name, ok := utils.GetActorFromContext(r.Context())
	if !ok {
		return entity.Actor{}, false
	}
	return entity.Actor{ID: id, Name: name}, true
}

// handleServiceError maps service errors onto HTTP responses. All handlers
// share one mapping because the services share one error taxonomy.
func handleServiceError(log *zap.Logger, w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case errors.Is(err, usecase.ErrBookingNotFound),
		errors.Is(err, usecase.ErrPoolNotFound),
		errors.Is(err, usecase.ErrTeamNotFound),
		errors.Is(err, usecase.ErrRosterEntryNotFound),
		errors.Is(err, usecase.ErrPlayerNotFound),
		errors.Is(err, usecase.ErrSeriesNotFound):
		log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, errMsg)

	case errors.Is(err, usecase.ErrCapacityExceeded):
		log.Warn(operation+" failed - capacity exceeded",
			zap.Error(err),
			zap.String("operation", operation))
		var capErr *usecase.CapacityError
		if errors.As(err, &capErr) {
			utils.ResponseConflict(w, errMsg, map[string]int{
				"requested_rinks": capErr.Requested,
				"available_rinks": capErr.Available,
			})
			return
		}
		utils.ResponseConflict(w, errMsg, nil)

	case errors.Is(err, usecase.ErrAlreadyRegistered),
		errors.Is(err, usecase.ErrNotRegistered),
		errors.Is(err, usecase.ErrPoolClosed),
		errors.Is(err, usecase.ErrPoolFull),
		errors.Is(err, usecase.ErrPoolExists),
		errors.Is(err, usecase.ErrAlreadyInvited),
		errors.Is(err, usecase.ErrInvalidTransition):
		log.Warn(operation+" failed - conflicting state",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseConflict(w, errMsg, nil)

	case errors.Is(err, usecase.ErrValidation),
		errors.Is(err, usecase.ErrInvalidSession),
		strings.Contains(errMsg, "invalid"):
		log.Warn("Invalid input for "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
